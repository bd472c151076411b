package cmd

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"bulk-ingest/core/batch"
	"bulk-ingest/core/config"
	"bulk-ingest/core/database"
	"bulk-ingest/core/ingest"
	"bulk-ingest/core/ndjson"
	"bulk-ingest/core/source"
	"bulk-ingest/feature/customers"
	"bulk-ingest/feature/orders"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const customersExport = `{"id":"gid://shopify/Order/501","__parentId":"gid://shopify/Customer/101"}
{"id":"gid://shopify/Customer/100","firstName":"Ada","email":"ada@example.com"}
{"id":"gid://shopify/Order/500","__parentId":"gid://shopify/Customer/100"}
{"id":"gid://shopify/Customer/101","firstName":"Grace","note":"says \"hi\", often"}
not json at all`

func testConfig(t *testing.T, export string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "export.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o600))

	return &config.Config{
		Database: database.Config{Driver: database.DriverSQLite, Name: filepath.Join(dir, "ingest.db")},
		Source:   source.Config{Path: path},
		Decode:   ndjson.Config{PreviewLength: 200, EnvelopePath: ndjson.DefaultEnvelopePath},
		Batch:    batch.Config{Size: 1, Attempts: 2},
		Ingest: ingest.Config{
			CustomersTable: "raw_customers_shopify",
			OrdersTable:    "raw_orders_shopify",
			Output:         ingest.OutputDatabase,
		},
	}
}

func openTestDB(t *testing.T, cfg *config.Config) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestRunDataset_Database(t *testing.T) {
	cfg := testConfig(t, customersExport)
	cfg.Ingest.AggregateColumns = true
	db := openTestDB(t, cfg)
	require.NoError(t, db.Table(cfg.Ingest.CustomersTable).AutoMigrate(&customers.Row{}))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		report, err := runDataset[customers.Row](ctx, cfg, zap.NewNop(), customers.New(), cfg.Ingest.CustomersTable)
		require.NoError(t, err)
		assert.True(t, report.Written)
		assert.Equal(t, 2, report.Rows)
		assert.Equal(t, 1, report.BadLines)
	}

	var rows []customers.Row
	require.NoError(t, db.Table(cfg.Ingest.CustomersTable).Order("customer_id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(100), rows[0].CustomerID)
	assert.Equal(t, "Ada", *rows[0].FirstName)
	assert.Equal(t, 1, rows[0].OrderCount)
	assert.Equal(t, int64(101), rows[1].CustomerID)
	assert.Equal(t, 1, rows[1].OrderCount)
}

func TestRunDataset_TableWithoutAggregates(t *testing.T) {
	cfg := testConfig(t, customersExport)
	db := openTestDB(t, cfg)
	table := cfg.Ingest.CustomersTable
	require.NoError(t, db.Table(table).AutoMigrate(&customers.Row{}))
	for _, col := range customers.New().AggregateColumns() {
		require.NoError(t, db.Exec("ALTER TABLE "+table+" DROP COLUMN "+col).Error)
	}

	cols, err := database.GetTableColumns(db, table)
	require.NoError(t, err)
	assert.Len(t, cols, 26)

	report, err := runDataset[customers.Row](context.Background(), cfg, zap.NewNop(), customers.New(), table)
	require.NoError(t, err)
	assert.True(t, report.Written)

	var count int64
	require.NoError(t, db.Table(table).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var name string
	require.NoError(t, db.Table(table).Select("first_name").Where("customer_id = ?", 101).Scan(&name).Error)
	assert.Equal(t, "Grace", name)

	t.Run("AggregatesEnabled", func(t *testing.T) {
		cfg.Ingest.AggregateColumns = true
		_, err := runDataset[customers.Row](context.Background(), cfg, zap.NewNop(), customers.New(), table)
		assert.ErrorContains(t, err, "order_count")
	})
}

func TestRunDataset_MissingTable(t *testing.T) {
	cfg := testConfig(t, customersExport)

	_, err := runDataset[orders.Row](context.Background(), cfg, zap.NewNop(), orders.New(), cfg.Ingest.OrdersTable)
	assert.Error(t, err)
}

func TestRunDataset_CSV(t *testing.T) {
	cfg := testConfig(t, customersExport)
	cfg.Ingest.Output = ingest.OutputCSV
	cfg.Ingest.OutFile = filepath.Join(t.TempDir(), "customers.csv")
	cfg.Ingest.Limit = 1

	report, err := runDataset[customers.Row](context.Background(), cfg, zap.NewNop(), customers.New(), cfg.Ingest.CustomersTable)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Limited)

	f, err := os.Open(cfg.Ingest.OutFile)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "customer_id", records[0][0])
	assert.Equal(t, "100", records[1][0])
}

func TestRunDataset_DryRun(t *testing.T) {
	cfg := testConfig(t, customersExport)
	cfg.Ingest.DryRun = true
	cfg.Database.Driver = "unsupported"

	report, err := runDataset[customers.Row](context.Background(), cfg, zap.NewNop(), customers.New(), cfg.Ingest.CustomersTable)
	require.NoError(t, err)
	assert.False(t, report.Written)
	assert.Equal(t, 2, report.Rows)
}

func TestRunDataset_NoInput(t *testing.T) {
	cfg := testConfig(t, customersExport)
	cfg.Source.Path = ""
	cfg.Ingest.DryRun = true

	_, err := runDataset[customers.Row](context.Background(), cfg, zap.NewNop(), customers.New(), cfg.Ingest.CustomersTable)
	assert.Error(t, err)
}

func TestApplyIngestFlags(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().IntVar(&ingestLimit, "limit", 0, "")
	cmd.Flags().StringVar(&ingestOutput, "output", "", "")
	cmd.Flags().StringVar(&ingestOutFile, "out-file", "", "")
	cmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "")
	cmd.Flags().StringVar(&ingestURL, "url", "", "")
	cmd.Flags().StringVar(&ingestObject, "object", "", "")
	cmd.Flags().BoolVar(&ingestAggregates, "aggregates", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--limit", "5", "--output", "json", "--aggregates"}))

	cfg := &config.Config{Ingest: ingest.Config{Output: ingest.OutputDatabase, OutFile: "keep.json"}}
	applyIngestFlags(cmd, cfg, []string{"customers", "/data/customers.jsonl"})

	assert.Equal(t, 5, cfg.Ingest.Limit)
	assert.Equal(t, "json", cfg.Ingest.Output)
	assert.Equal(t, "keep.json", cfg.Ingest.OutFile)
	assert.True(t, cfg.Ingest.AggregateColumns)
	assert.Equal(t, "/data/customers.jsonl", cfg.Source.Path)
	assert.Empty(t, cfg.Source.URL)
	assert.Equal(t, "json", outputOf(cfg))
}

func TestDatasets(t *testing.T) {
	cfg := testConfig(t, customersExport)
	assert.Equal(t, []string{"customers", "orders"}, datasets(cfg, zap.NewNop()).Names())

	err := datasets(cfg, zap.NewNop()).Run(context.Background(), "products")
	assert.ErrorContains(t, err, "unknown dataset")
}
