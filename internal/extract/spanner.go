package extract

import (
	"context"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/spanner"
	"cloud.google.com/go/spanner/apiv1/spannerpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// columnsQuery pulls every column of the default schema. Named secondary
// schemas are deliberately excluded.
const columnsQuery = `
	SELECT
		table_catalog,
		table_schema,
		table_name,
		column_name,
		ordinal_position,
		column_default,
		is_nullable,
		spanner_type,
		is_generated,
		generation_expression
	FROM
		INFORMATION_SCHEMA.COLUMNS
	WHERE
		table_schema = ''
`

// SnapshotRunner runs the catalog query over a multi-use read-only snapshot.
// A fresh data client is opened per database and closed before returning, so
// no session handles outlive an extraction call.
type SnapshotRunner struct {
	opts []option.ClientOption
}

func NewSnapshotRunner(opts ...option.ClientOption) *SnapshotRunner {
	return &SnapshotRunner{opts: opts}
}

func (r *SnapshotRunner) QuerySchema(ctx context.Context, database string) (*ResultSet, error) {
	client, err := spanner.NewClient(ctx, database, r.opts...)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	txn := client.ReadOnlyTransaction()
	defer txn.Close()

	it := txn.Query(ctx, spanner.Statement{SQL: columnsQuery})
	defer it.Stop()

	rs := &ResultSet{}
	for {
		row, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		// The descriptor rides along on every row; capture it once instead
		// of hardcoding the catalog's column list.
		if rs.Columns == nil {
			rs.Columns = row.ColumnNames()
		}

		values := make([]bigquery.Value, row.Size())
		for i := 0; i < row.Size(); i++ {
			v, err := decodeColumn(row, i)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		rs.Rows = append(rs.Rows, values)
	}
	return rs, nil
}

// decodeColumn converts one Spanner column value into a BigQuery-insertable
// value. The columns catalog only carries INT64 and STRING fields; anything
// unexpected is read as a nullable string.
func decodeColumn(row *spanner.Row, i int) (bigquery.Value, error) {
	var gcv spanner.GenericColumnValue
	if err := row.Column(i, &gcv); err != nil {
		return nil, err
	}

	switch gcv.Type.GetCode() {
	case spannerpb.TypeCode_INT64:
		var v spanner.NullInt64
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.Int64, nil
	default:
		var v spanner.NullString
		if err := gcv.Decode(&v); err != nil {
			return nil, err
		}
		if !v.Valid {
			return nil, nil
		}
		return v.StringVal, nil
	}
}
