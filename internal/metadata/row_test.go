package metadata

import (
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/require"
)

func TestTableSchemaShape(t *testing.T) {
	schema := TableSchema()
	require.Len(t, schema, 13)

	required := map[string]bool{}
	for _, f := range schema {
		required[f.Name] = f.Required
	}
	for _, name := range []string{
		"project_id", "instance_id", "database_id",
		"table_name", "column_name", "spanner_data_type",
	} {
		require.True(t, required[name], "%s must be REQUIRED", name)
	}
	require.False(t, required["column_default"])
	require.False(t, required["generation_expression"])
}

func TestRowSaveHasNoInsertID(t *testing.T) {
	row := Row{"table_name": "t1"}
	values, insertID, err := row.Save()
	require.NoError(t, err)
	require.Empty(t, insertID)
	require.Equal(t, map[string]bigquery.Value{"table_name": "t1"}, values)
}
