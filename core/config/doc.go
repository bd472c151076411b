// Package config provides configuration management for bulk-ingest.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from the `default` struct tags of
// each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Database: Driver and connection details of the target database
//   - Storage: S3/MinIO credentials and bucket settings
//   - Source: Where the export is read from (path, URL or object key)
//   - Decode: Bad line previews and progress interval
//   - Batch: Batch size, retry attempts, backoff and cooldown
//   - Ingest: Target tables and per-run options
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Batch.Size)
package config
