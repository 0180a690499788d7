// Package metadata defines the flat column-metadata record shared by the
// extraction and sink layers, and the destination table schema it loads into.
package metadata

import "cloud.google.com/go/bigquery"

// Field names added or rewritten on every extracted row.
const (
	FieldProjectID       = "project_id"
	FieldInstanceID      = "instance_id"
	FieldDatabaseID      = "database_id"
	FieldSpannerDataType = "spanner_data_type"

	// SourceTypeField is the backend-native name of the type column in
	// INFORMATION_SCHEMA.COLUMNS. It is renamed to FieldSpannerDataType on
	// output so the row matches the destination schema.
	SourceTypeField = "spanner_type"
)

// Row is one INFORMATION_SCHEMA.COLUMNS record enriched with provenance.
// Keys come from the source result set's own descriptor rather than a fixed
// struct so the mapping survives minor catalog changes.
type Row map[string]bigquery.Value

// Save implements bigquery.ValueSaver. No insert ID is set, so BigQuery does
// not attempt best-effort deduplication across batches.
func (r Row) Save() (map[string]bigquery.Value, string, error) {
	return r, "", nil
}

// TableSchema returns the fixed destination layout. Order matters: the table
// is created with exactly these fields.
func TableSchema() bigquery.Schema {
	return bigquery.Schema{
		{Name: "project_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "instance_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "database_id", Type: bigquery.StringFieldType, Required: true},
		{Name: "table_catalog", Type: bigquery.StringFieldType},
		{Name: "table_schema", Type: bigquery.StringFieldType},
		{Name: "table_name", Type: bigquery.StringFieldType, Required: true},
		{Name: "column_name", Type: bigquery.StringFieldType, Required: true},
		{Name: "ordinal_position", Type: bigquery.IntegerFieldType},
		{Name: "column_default", Type: bigquery.StringFieldType},
		{Name: "is_nullable", Type: bigquery.StringFieldType},
		{Name: "spanner_data_type", Type: bigquery.StringFieldType, Required: true},
		{Name: "is_generated", Type: bigquery.StringFieldType},
		{Name: "generation_expression", Type: bigquery.StringFieldType},
	}
}
