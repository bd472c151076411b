package batch

import (
	"fmt"
	"time"
)

// Config holds configuration for batched persistence.
type Config struct {
	// Size is the maximum number of rows per batch.
	Size int `mapstructure:"size" default:"50"`
	// Attempts is the maximum number of tries per batch.
	Attempts int `mapstructure:"attempts" default:"3"`
	// BackoffMillis is the backoff base; the wait after attempt n is n times this.
	BackoffMillis int `mapstructure:"backoff_millis" default:"250"`
	// CooldownMillis is the pause between two successful batches.
	CooldownMillis int `mapstructure:"cooldown_millis" default:"300"`
}

// Validate reports settings the executor cannot run with.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("batch size must be positive, got %d", c.Size)
	}
	if c.Attempts < 1 {
		return fmt.Errorf("batch attempts must be positive, got %d", c.Attempts)
	}
	if c.BackoffMillis < 0 || c.CooldownMillis < 0 {
		return fmt.Errorf("batch backoff and cooldown must not be negative")
	}
	return nil
}

// Backoff returns the backoff base as a duration.
func (c Config) Backoff() time.Duration {
	return time.Duration(c.BackoffMillis) * time.Millisecond
}

// Cooldown returns the inter-batch pause as a duration.
func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownMillis) * time.Millisecond
}
