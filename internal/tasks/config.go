package tasks

import "time"

// Config tunes the worker pool. Retry and retention policy is per queue; see
// the Config method of each task type.
type Config struct {
	Workers         int
	ReleaseAfter    time.Duration // stuck tasks go back to the queue after this long
	CleanupInterval time.Duration // how often finished tasks are purged
}

// DefaultConfig returns the pool settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = def.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = def.CleanupInterval
	}
	return c
}
