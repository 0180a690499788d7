package sink

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"

	"github.com/alexanderjulianmartinez/spanner-metasync/internal/config"
	"github.com/alexanderjulianmartinez/spanner-metasync/internal/metadata"
)

// BigQueryClient implements Client against one dataset/table pair.
type BigQueryClient struct {
	client *bigquery.Client
	dest   config.DestinationConfig
}

func NewBigQueryClient(client *bigquery.Client, dest config.DestinationConfig) *BigQueryClient {
	return &BigQueryClient{client: client, dest: dest}
}

func (c *BigQueryClient) dataset() *bigquery.Dataset {
	return c.client.Dataset(c.dest.Dataset)
}

func (c *BigQueryClient) table() *bigquery.Table {
	return c.dataset().Table(c.dest.Table)
}

func (c *BigQueryClient) DatasetExists(ctx context.Context) (bool, error) {
	_, err := c.dataset().Metadata(ctx)
	return exists(err)
}

func (c *BigQueryClient) CreateDataset(ctx context.Context) error {
	return c.dataset().Create(ctx, &bigquery.DatasetMetadata{})
}

func (c *BigQueryClient) TableExists(ctx context.Context) (bool, error) {
	_, err := c.table().Metadata(ctx)
	return exists(err)
}

func (c *BigQueryClient) CreateTable(ctx context.Context, schema bigquery.Schema) error {
	return c.table().Create(ctx, &bigquery.TableMetadata{Schema: schema})
}

func (c *BigQueryClient) Truncate(ctx context.Context) error {
	sql := fmt.Sprintf("TRUNCATE TABLE `%s.%s.%s`", c.dest.Project, c.dest.Dataset, c.dest.Table)
	job, err := c.client.Query(sql).Run(ctx)
	if err != nil {
		return err
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}
	return status.Err()
}

func (c *BigQueryClient) Insert(ctx context.Context, rows []metadata.Row) error {
	return c.table().Inserter().Put(ctx, rows)
}

func exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 404 {
		return false, nil
	}
	return false, err
}
