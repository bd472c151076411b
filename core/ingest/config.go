package ingest

const (
	OutputDatabase = "database"
	OutputCSV      = "csv"
	OutputJSON     = "json"
)

// Config holds per-run options and the target tables.
type Config struct {
	// CustomersTable receives customer rows.
	CustomersTable string `mapstructure:"customers_table" default:"customers.raw_customers_shopify"`
	// OrdersTable receives order rows.
	OrdersTable string `mapstructure:"orders_table" default:"orders.raw_orders_shopify"`
	// Limit keeps only the first N rows. Zero keeps all.
	Limit int `mapstructure:"limit" default:"0"`
	// Output is one of database, csv, json.
	Output string `mapstructure:"output" default:"database"`
	// OutFile is the destination of csv and json output.
	OutFile string `mapstructure:"out_file" default:""`
	// DryRun stops after mapping; nothing is written.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// AggregateColumns also upserts the child aggregate columns of a dataset.
	// The target table must then have them.
	AggregateColumns bool `mapstructure:"aggregate_columns" default:"false"`
}
