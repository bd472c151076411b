// Package batch persists rows with idempotent, batched upserts.
//
// Rows sharing a key are folded first, keeping the last one. The rest are
// split into consecutive batches. Each batch is one multi-row
// INSERT ... ON CONFLICT (key) DO UPDATE (ON DUPLICATE KEY UPDATE on MySQL)
// inside its own transaction, so a failed attempt leaves nothing behind.
// Failed batches are retried with linear backoff; a batch that exhausts its
// attempts aborts the run. Successful batches are followed by a cooldown
// pause that bounds the load on the target database. WithOmit leaves columns
// the target table does not have out of both the insert and the update.
//
// # Usage
//
//	exec, err := batch.NewExecutor[customers.Row](db, "customers.raw_customers_shopify", "customer_id", cfg.Batch, log)
//	res, err := exec.Run(ctx, rows)
package batch
