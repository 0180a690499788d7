package sink

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/alexanderjulianmartinez/spanner-metasync/internal/metadata"
)

// Provisioner makes sure the destination exists and starts the run empty.
type Provisioner struct {
	client Client
	log    *logrus.Logger
}

func NewProvisioner(client Client, log *logrus.Logger) *Provisioner {
	return &Provisioner{client: client, log: log}
}

// Ensure creates the dataset and table if absent and truncates the table if
// present. It runs once, before any extraction; this run's output becomes the
// table's only contents. Errors here are fatal to the run.
func (p *Provisioner) Ensure(ctx context.Context) error {
	ok, err := p.client.DatasetExists(ctx)
	if err != nil {
		return fmt.Errorf("check dataset: %w", err)
	}
	if !ok {
		p.log.Info("creating destination dataset")
		if err := p.client.CreateDataset(ctx); err != nil {
			return fmt.Errorf("create dataset: %w", err)
		}
	}

	ok, err = p.client.TableExists(ctx)
	if err != nil {
		return fmt.Errorf("check table: %w", err)
	}
	if !ok {
		p.log.Info("creating destination table")
		if err := p.client.CreateTable(ctx, metadata.TableSchema()); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
		return nil
	}

	p.log.Info("clearing existing destination rows")
	if err := p.client.Truncate(ctx); err != nil {
		return fmt.Errorf("truncate table: %w", err)
	}
	return nil
}
