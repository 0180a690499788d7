package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cloud.google.com/go/bigquery"
	"github.com/sirupsen/logrus"

	"github.com/alexanderjulianmartinez/spanner-metasync/internal/catalog"
	"github.com/alexanderjulianmartinez/spanner-metasync/internal/config"
	"github.com/alexanderjulianmartinez/spanner-metasync/internal/extract"
	"github.com/alexanderjulianmartinez/spanner-metasync/internal/pipeline"
	"github.com/alexanderjulianmartinez/spanner-metasync/internal/sink"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "metasync error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		printUsage()
		return nil
	}

	switch args[1] {
	case "run":
		return runPipeline(args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runPipeline(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath == "" {
		return fmt.Errorf("missing required flag: --config")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(os.Stdout)

	ctx := context.Background()

	bqClient, err := bigquery.NewClient(ctx, cfg.Destination.Project)
	if err != nil {
		return fmt.Errorf("create BigQuery client: %w", err)
	}
	defer bqClient.Close()

	admin, err := catalog.NewAdminCatalog(ctx)
	if err != nil {
		return fmt.Errorf("create Spanner admin clients: %w", err)
	}
	defer admin.Close()

	warehouse := sink.NewBigQueryClient(bqClient, cfg.Destination)
	driver := pipeline.NewDriver(
		cfg,
		catalog.New(admin, admin),
		extract.New(extract.NewSnapshotRunner()),
		sink.NewProvisioner(warehouse, log),
		sink.NewBatcher(warehouse, cfg.FlushEvery, log),
		log,
	)
	return driver.Run(ctx)
}

func printUsage() {
	fmt.Print(`metasync - Spanner schema metadata to BigQuery loader

Usage:
  metasync run --config <path>

Commands:
  run       Discover Spanner databases and load column metadata into BigQuery
  help      Show this help message
`)
}
