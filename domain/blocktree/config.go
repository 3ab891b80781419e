package blocktree

import (
	"github.com/kaspanet/blocktree/domain/consensus/processes/transactionvalidator"
)

// DefaultCutOffAge is the default number of blocks below the tip height
// under which no new block may be added
const DefaultCutOffAge = 10

// Config is a descriptor which specifies the block tree instance configuration.
// Zero values select the defaults.
type Config struct {
	// CutOffAge bounds how far below the tip a new block may still be
	// added: a block is rejected if its height is at most the tip height
	// minus CutOffAge.
	CutOffAge uint64

	// EnablePruning drops nodes that can never be extended again once the
	// tip moves far enough above them.
	EnablePruning bool

	// TransactionValidator decides which transactions of a block may be
	// chained. Defaults to transactionvalidator.New().
	TransactionValidator transactionvalidator.TransactionValidator

	// MaximumPendingTransactions caps the transaction pool. Zero means no
	// limit.
	MaximumPendingTransactions int
}

// DefaultConfig returns the default block tree configuration
func DefaultConfig() *Config {
	return &Config{
		CutOffAge:            DefaultCutOffAge,
		EnablePruning:        false,
		TransactionValidator: transactionvalidator.New(),
	}
}

func (config *Config) withDefaults() *Config {
	withDefaults := *config
	if withDefaults.CutOffAge == 0 {
		withDefaults.CutOffAge = DefaultCutOffAge
	}
	if withDefaults.TransactionValidator == nil {
		withDefaults.TransactionValidator = transactionvalidator.New()
	}
	return &withDefaults
}
