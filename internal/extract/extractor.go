// Package extract reads column-level schema metadata out of a single Spanner
// database and normalizes it into destination rows.
package extract

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"

	"github.com/alexanderjulianmartinez/spanner-metasync/internal/metadata"
)

// ResultSet is a materialized query result: the column names from the result
// descriptor plus one value slice per row, in descriptor order.
type ResultSet struct {
	Columns []string
	Rows    [][]bigquery.Value
}

// QueryRunner executes the schema-catalog query against a fully-qualified
// database name over a read-only snapshot.
type QueryRunner interface {
	QuerySchema(ctx context.Context, database string) (*ResultSet, error)
}

type Extractor struct {
	runner QueryRunner
}

func New(runner QueryRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extract queries the database's INFORMATION_SCHEMA.COLUMNS and returns one
// row per column, keyed by the result descriptor's field names with the
// spanner_type column renamed to spanner_data_type, plus provenance fields.
// Errors are returned for the caller to classify; a failed extraction
// contributes no rows.
func (e *Extractor) Extract(ctx context.Context, project, instance, database string) ([]metadata.Row, error) {
	name := fmt.Sprintf("projects/%s/instances/%s/databases/%s", project, instance, database)

	rs, err := e.runner.QuerySchema(ctx, name)
	if err != nil {
		return nil, err
	}

	rows := make([]metadata.Row, 0, len(rs.Rows))
	for _, values := range rs.Rows {
		if len(values) != len(rs.Columns) {
			return nil, fmt.Errorf("result row has %d values for %d columns", len(values), len(rs.Columns))
		}

		row := make(metadata.Row, len(rs.Columns)+3)
		for i, col := range rs.Columns {
			key := strings.ToLower(col)
			if key == metadata.SourceTypeField {
				key = metadata.FieldSpannerDataType
			}
			row[key] = values[i]
		}
		row[metadata.FieldProjectID] = project
		row[metadata.FieldInstanceID] = instance
		row[metadata.FieldDatabaseID] = database

		rows = append(rows, row)
	}
	return rows, nil
}
