// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure PostgreSQL, MySQL or SQLite
// connections from the application's configuration. Every dialect supports the
// multi-row upsert the batch executor relies on.
//
// # Connect
//
// Connect opens a small pool (three connections by default) and verifies it with a
// ping. Each batch transaction checks a connection out and returns it on commit or
// rollback, so nothing is held across batches.
//
// # Schema Inspection
//
// Migrations are out of scope. Before writing, the ingest command calls
// RequireColumns to confirm that the target table exposes every column of the row
// model, and fails fast otherwise.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	cols, _ := database.ModelColumns(&customers.Row{})
//	err = database.RequireColumns(db, "customers.raw_customers_shopify", cols)
package database
