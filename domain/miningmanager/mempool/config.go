package mempool

const defaultMaximumTransactionCount = 0

// Config represents a mempool configuration
type Config struct {
	// MaximumTransactionCount is the number of pending transactions above
	// which the oldest ones are evicted. Zero means no limit.
	MaximumTransactionCount int
}

// DefaultConfig returns the default mempool configuration
func DefaultConfig() *Config {
	return &Config{
		MaximumTransactionCount: defaultMaximumTransactionCount,
	}
}
