// Package sink owns the BigQuery destination: provisioning the dataset and
// table, and batching extracted rows into bulk inserts.
package sink

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/alexanderjulianmartinez/spanner-metasync/internal/metadata"
)

// Client is the destination contract the provisioner and batcher consume.
// BigQueryClient implements it for real; tests substitute an in-memory fake.
type Client interface {
	DatasetExists(ctx context.Context) (bool, error)
	CreateDataset(ctx context.Context) error
	TableExists(ctx context.Context) (bool, error)
	CreateTable(ctx context.Context, schema bigquery.Schema) error
	Truncate(ctx context.Context) error
	Insert(ctx context.Context, rows []metadata.Row) error
}
