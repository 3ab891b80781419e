package blocktree

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/blocktree/domain/blocknode"
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/blocktree/domain/miningmanager/mempool"
	"github.com/kaspanet/blocktree/domain/utxo"
	"github.com/kaspanet/blocktree/infrastructure/logger"
	"github.com/pkg/errors"
)

// NewGenesisBlock returns a parentless block paying coinbase
func NewGenesisBlock(coinbase *externalapi.DomainTransaction) *externalapi.DomainBlock {
	return &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Version:    0,
			ParentHash: nil,
		},
		Transactions: []*externalapi.DomainTransaction{},
		Coinbase:     coinbase,
	}
}

// New returns a BlockTree holding only the given genesis block. The
// genesis block is trusted: its UTXO set holds exactly the outputs of its
// coinbase. A nil config means DefaultConfig.
func New(genesis *externalapi.DomainBlock, config *Config) (*BlockTree, error) {
	if genesis == nil {
		return nil, errors.New("blocktree.New genesis block is nil")
	}
	if genesis.Coinbase == nil {
		return nil, errors.New("blocktree.New genesis block has no coinbase")
	}
	if genesis.Header == nil {
		return nil, errors.New("blocktree.New genesis block has no header")
	}
	if config == nil {
		config = DefaultConfig()
	}
	config = config.withDefaults()

	utxoSet := utxo.NewSet()
	utxoSet.AddTransactionOutputs(genesis.Coinbase, true)

	genesisHash := consensushashing.BlockHash(genesis)
	genesisNode := blocknode.NewGenesisNode(genesis.Clone(), genesisHash, utxoSet)

	index := blocknode.NewIndex()
	err := index.AddNode(genesisNode)
	if err != nil {
		return nil, err
	}

	bt := &BlockTree{
		cutOffAge:            config.CutOffAge,
		enablePruning:        config.EnablePruning,
		transactionValidator: config.TransactionValidator,
		transactionPool:      mempool.New(&mempool.Config{MaximumTransactionCount: config.MaximumPendingTransactions}),
		index:                index,
		genesis:              genesisNode,
		tip:                  genesisNode,
		nextSequence:         1,
	}

	log.Infof("Initialized block tree with genesis %s (cut-off age %d, pruning %t)",
		genesisHash, bt.cutOffAge, bt.enablePruning)
	log.Tracef("Genesis block: %s", logger.NewLogClosure(func() string {
		return spew.Sdump(genesis)
	}))

	return bt, nil
}
