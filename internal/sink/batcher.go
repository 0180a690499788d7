package sink

import (
	"context"
	"errors"

	"cloud.google.com/go/bigquery"
	"github.com/sirupsen/logrus"

	"github.com/alexanderjulianmartinez/spanner-metasync/internal/metadata"
)

// Batcher accumulates rows across source databases and loads them in bulk on
// a project-count cadence. Delivery is at-most-once per batch: rows that the
// sink rejects individually are logged and dropped, never re-buffered.
type Batcher struct {
	client Client
	log    *logrus.Logger
	every  int
	buf    []metadata.Row
}

func NewBatcher(client Client, every int, log *logrus.Logger) *Batcher {
	return &Batcher{client: client, every: every, log: log}
}

func (b *Batcher) Append(rows []metadata.Row) {
	b.buf = append(b.buf, rows...)
}

// Len reports the number of buffered, not yet flushed rows.
func (b *Batcher) Len() int {
	return len(b.buf)
}

// Flush bulk-inserts the buffer. The buffer is cleared whatever the insert
// reports: per-row errors are logged and absorbed, while a transport-level
// failure is returned and aborts the run.
func (b *Batcher) Flush(ctx context.Context) error {
	if len(b.buf) == 0 {
		b.log.Info("no buffered metadata to load")
		return nil
	}

	b.log.WithField("rows", len(b.buf)).Info("loading batch into destination")
	err := b.client.Insert(ctx, b.buf)
	b.buf = nil

	var multi bigquery.PutMultiError
	if errors.As(err, &multi) {
		for _, rowErr := range multi {
			b.log.WithFields(logrus.Fields{
				"row":       rowErr.RowIndex,
				"insert_id": rowErr.InsertID,
			}).Errorf("row rejected by destination: %v", rowErr.Errors)
		}
		return nil
	}
	return err
}

// MaybeFlush applies the cadence policy: flush after every b.every-th
// processed project and always after the last one, with a single flush when
// the last project lands on the cadence boundary.
func (b *Batcher) MaybeFlush(ctx context.Context, processed, total int) error {
	if processed%b.every != 0 && processed != total {
		return nil
	}
	return b.Flush(ctx)
}
