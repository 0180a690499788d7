// Package pipeline sequences discovery, extraction and batched loading across
// the configured project list. Each project and each database is its own
// fault-isolation boundary: a failure there is logged and skipped, never
// allowed to abort the run.
package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/alexanderjulianmartinez/spanner-metasync/internal/catalog"
	"github.com/alexanderjulianmartinez/spanner-metasync/internal/config"
	"github.com/alexanderjulianmartinez/spanner-metasync/internal/metadata"
	"github.com/alexanderjulianmartinez/spanner-metasync/internal/sink"
	"github.com/alexanderjulianmartinez/spanner-metasync/pkg/types"
)

type Discoverer interface {
	ListResources(ctx context.Context, project string) ([]catalog.Resource, error)
}

type Extractor interface {
	Extract(ctx context.Context, project, instance, database string) ([]metadata.Row, error)
}

type Driver struct {
	cfg         *config.Config
	catalog     Discoverer
	extractor   Extractor
	provisioner *sink.Provisioner
	batcher     *sink.Batcher
	log         *logrus.Logger
}

func NewDriver(cfg *config.Config, cat Discoverer, ext Extractor, prov *sink.Provisioner, batcher *sink.Batcher, log *logrus.Logger) *Driver {
	return &Driver{
		cfg:         cfg,
		catalog:     cat,
		extractor:   ext,
		provisioner: prov,
		batcher:     batcher,
		log:         log,
	}
}

// Run executes one full-refresh pass: provision once, then walk the project
// list in order. Only provisioning and load-transport failures are fatal.
func (d *Driver) Run(ctx context.Context) error {
	d.log.Info("starting Spanner metadata extraction")

	if err := d.provisioner.Ensure(ctx); err != nil {
		return err
	}

	total := len(d.cfg.Projects)
	for i, project := range d.cfg.Projects {
		plog := d.log.WithFields(logrus.Fields{
			"project":  project,
			"progress": i + 1,
			"total":    total,
		})
		plog.Info("processing project")

		resources := d.discover(ctx, plog, project)
		if len(resources) == 0 {
			plog.Info("no Spanner databases found or accessible, skipping")
		} else {
			plog.WithField("databases", len(resources)).Info("found databases to process")
		}

		for _, res := range resources {
			d.extract(ctx, plog, project, res)
		}

		// Cadence runs for every processed project, including empty ones,
		// so the trailing batch is never stranded.
		if err := d.batcher.MaybeFlush(ctx, i+1, total); err != nil {
			return err
		}
	}

	d.log.Info("run complete")
	return nil
}

// discover lists the project's databases, absorbing every failure into an
// empty result. Discovery is never fatal to the run.
func (d *Driver) discover(ctx context.Context, plog *logrus.Entry, project string) []catalog.Resource {
	resources, err := d.catalog.ListResources(ctx, project)
	switch types.Classify(err) {
	case types.StatusOK:
		return resources
	case types.StatusNotFound:
		plog.Warn("project not found")
	case types.StatusPermissionDenied:
		plog.Warn("permission denied listing Spanner resources")
	default:
		plog.WithError(err).Error("failed to list Spanner resources")
	}
	return nil
}

// extract pulls one database's column metadata into the batcher, absorbing
// failures at the database boundary.
func (d *Driver) extract(ctx context.Context, plog *logrus.Entry, project string, res catalog.Resource) {
	dlog := plog.WithFields(logrus.Fields{
		"instance": res.InstanceID,
		"database": res.DatabaseID,
	})
	dlog.Info("querying database")

	rows, err := d.extractor.Extract(ctx, project, res.InstanceID, res.DatabaseID)
	switch types.Classify(err) {
	case types.StatusOK:
		dlog.WithField("rows", len(rows)).Info("extracted metadata rows")
		d.batcher.Append(rows)
	case types.StatusNotFound:
		dlog.Warn("skipped: instance or database not found")
	case types.StatusPermissionDenied:
		dlog.Warn("skipped: permission denied for Spanner API")
	default:
		dlog.WithError(err).Error("error while processing database")
	}
}
