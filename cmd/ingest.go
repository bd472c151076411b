package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"bulk-ingest/core/batch"
	"bulk-ingest/core/config"
	"bulk-ingest/core/database"
	"bulk-ingest/core/export"
	"bulk-ingest/core/ingest"
	"bulk-ingest/core/loader"
	"bulk-ingest/core/logger"
	"bulk-ingest/core/source"
	"bulk-ingest/core/storage"
	"bulk-ingest/feature/customers"
	"bulk-ingest/feature/orders"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Flags for the ingest command
	ingestLimit      int
	ingestOutput     string
	ingestOutFile    string
	ingestDryRun     bool
	ingestURL        string
	ingestObject     string
	ingestAggregates bool
)

// ingestCmd loads one bulk export into its table.
var ingestCmd = &cobra.Command{
	Use:       "ingest <customers|orders> [path]",
	Short:     "Ingest a bulk export",
	ValidArgs: []string{"customers", "orders"},
	Args:      cobra.RangeArgs(1, 2),
	Long: `Ingest a bulk export for one dataset.

The export is read from the path argument, --url, --object or the SOURCE_*
settings. Rows are upserted into the dataset table unless --output selects a
csv or json file, or --dry-run is given.

Examples:
  # Upsert customers from a local export
  ingest customers ./customers.jsonl

  # Download an orders export and write the first 100 rows to CSV
  ingest orders --url "$RESULT_URL" --limit 100 --output csv --out-file orders.csv

  # Parse and report only
  ingest customers ./customers.jsonl --dry-run`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", 0, "Keep only the first N rows (0 keeps all)")
	ingestCmd.Flags().StringVar(&ingestOutput, "output", "", "Output: database, csv or json")
	ingestCmd.Flags().StringVar(&ingestOutFile, "out-file", "", "Destination file for csv or json output")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Parse, reconcile and map without writing")
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "Download the export from this URL")
	ingestCmd.Flags().StringVar(&ingestObject, "object", "", "Read the export from this key of the storage bucket")
	ingestCmd.Flags().BoolVar(&ingestAggregates, "aggregates", false, "Also write the child aggregate columns to the database")

	RootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIngestFlags(cmd, cfg, args)

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	dataset := args[0]
	l = logger.WithRun(l, uuid.NewString(), dataset)
	l.Info("Starting ingestion", zap.String("output", outputOf(cfg)))

	return datasets(cfg, l).Run(ctx, dataset)
}

// datasetFeature adapts a dataset to the loader registry.
type datasetFeature[R any] struct {
	cfg     *config.Config
	logger  *zap.Logger
	dataset ingest.Dataset[R]
	table   string
}

func (f datasetFeature[R]) Name() string { return f.dataset.Name() }

func (f datasetFeature[R]) Run(ctx context.Context) error {
	_, err := runDataset(ctx, f.cfg, f.logger, f.dataset, f.table)
	return err
}

// datasets registers every known dataset.
func datasets(cfg *config.Config, l *zap.Logger) *loader.Manager {
	mgr := loader.NewManager()
	mgr.Register(datasetFeature[customers.Row]{cfg: cfg, logger: l, dataset: customers.New(), table: cfg.Ingest.CustomersTable})
	mgr.Register(datasetFeature[orders.Row]{cfg: cfg, logger: l, dataset: orders.New(), table: cfg.Ingest.OrdersTable})
	return mgr
}

// applyIngestFlags lets explicit flags and the path argument override configuration.
func applyIngestFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	if len(args) > 1 {
		cfg.Source.Path = args[1]
	}
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Source.URL = ingestURL
	}
	if flags.Changed("object") {
		cfg.Source.Object = ingestObject
	}
	if flags.Changed("limit") {
		cfg.Ingest.Limit = ingestLimit
	}
	if flags.Changed("output") {
		cfg.Ingest.Output = ingestOutput
	}
	if flags.Changed("out-file") {
		cfg.Ingest.OutFile = ingestOutFile
	}
	if flags.Changed("dry-run") {
		cfg.Ingest.DryRun = ingestDryRun
	}
	if flags.Changed("aggregates") {
		cfg.Ingest.AggregateColumns = ingestAggregates
	}
}

func outputOf(cfg *config.Config) string {
	if cfg.Ingest.DryRun {
		return "dry-run"
	}
	return cfg.Ingest.Output
}

// runDataset runs one dataset from source to sink.
func runDataset[R any](ctx context.Context, cfg *config.Config, l *zap.Logger, ds ingest.Dataset[R], table string) (*ingest.Report, error) {
	var client storage.Client
	if cfg.Source.URL == "" && cfg.Source.Object != "" {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		client = c
	}

	src, err := source.New(cfg.Source, client, cfg.Storage.Bucket, l)
	if err != nil {
		return nil, err
	}

	sink, closeSink, err := openSink(cfg, l, ds, table)
	if err != nil {
		return nil, err
	}
	defer closeSink()

	pipeline := ingest.NewPipeline(ds, cfg.Decode, cfg.Ingest.Limit, l)
	report, err := pipeline.Run(ctx, src, sink)
	if err != nil {
		return report, fmt.Errorf("%s ingestion failed: %w", ds.Name(), err)
	}
	return report, nil
}

// openSink builds the destination of the rows. A dry run has no sink.
func openSink[R any](cfg *config.Config, l *zap.Logger, ds ingest.Dataset[R], table string) (ingest.Sink[R], func(), error) {
	noop := func() {}
	if cfg.Ingest.DryRun {
		return nil, noop, nil
	}

	switch cfg.Ingest.Output {
	case ingest.OutputCSV, ingest.OutputJSON:
		path := cfg.Ingest.OutFile
		if path == "" {
			path = ds.Name() + "_export." + cfg.Ingest.Output
		}
		sink, err := export.NewFileSink[R](path, cfg.Ingest.Output, l)
		if err != nil {
			return nil, noop, err
		}
		return sink, noop, nil

	case ingest.OutputDatabase, "":
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		closeDB := func() { closeDatabase(db, l) }

		var omit []string
		if !cfg.Ingest.AggregateColumns {
			omit = ds.AggregateColumns()
		}

		// Verify the table before reading the export; no migration is attempted
		columns, err := database.ModelColumns(new(R))
		if err != nil {
			closeDB()
			return nil, noop, err
		}
		columns = slices.DeleteFunc(columns, func(c string) bool { return slices.Contains(omit, c) })
		if err := database.RequireColumns(db, table, columns); err != nil {
			closeDB()
			return nil, noop, err
		}

		exec, err := batch.NewExecutor[R](db, table, ds.PrimaryKey(), cfg.Batch, l)
		if err != nil {
			closeDB()
			return nil, noop, err
		}
		exec.WithOmit(omit...)
		l.Info("Connected to target database", zap.String("driver", db.Dialector.Name()), zap.String("table", table))
		return exec, closeDB, nil

	default:
		return nil, noop, fmt.Errorf("unsupported output %q (expected database, csv or json)", cfg.Ingest.Output)
	}
}

func closeDatabase(db *gorm.DB, l *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		l.Warn("Failed to close database", zap.Error(err))
	}
}
