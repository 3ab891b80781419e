package blocktree

import (
	"sync"

	"github.com/kaspanet/blocktree/domain/blocknode"
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/processes/transactionvalidator"
	"github.com/kaspanet/blocktree/domain/miningmanager/mempool"
	"github.com/kaspanet/blocktree/domain/utxo"
	"github.com/pkg/errors"
)

// BlockTree keeps every accepted block in a tree rooted at a trusted genesis
// block, together with the UTXO set at every node. The tip is the highest
// node; of several nodes of the same height the first one accepted is the
// tip.
//
// BlockTree is safe for concurrent access.
type BlockTree struct {
	// The following fields are set when the instance is created and can't
	// be changed afterwards, so there is no need to protect them with a
	// separate mutex.
	cutOffAge            uint64
	enablePruning        bool
	transactionValidator transactionvalidator.TransactionValidator
	transactionPool      *mempool.Mempool
	index                *blocknode.Index
	genesis              *blocknode.Node

	// treeLock protects the tip and admission.
	treeLock     sync.RWMutex
	tip          *blocknode.Node
	nextSequence uint64

	notificationsLock sync.RWMutex
	notifications     []NotificationCallback
}

// Tip returns the node currently considered canonical
//
// This function is safe for concurrent access.
func (bt *BlockTree) Tip() *blocknode.Node {
	bt.treeLock.RLock()
	defer bt.treeLock.RUnlock()
	return bt.tip
}

// TipHeight returns the height of the tip
//
// This function is safe for concurrent access.
func (bt *BlockTree) TipHeight() uint64 {
	return bt.Tip().Height
}

// TipUTXOSet returns an independent copy of the UTXO set at the tip, to be
// used for building a new block on top of it
//
// This function is safe for concurrent access.
func (bt *BlockTree) TipUTXOSet() *utxo.Set {
	bt.treeLock.RLock()
	defer bt.treeLock.RUnlock()

	// The tip is never pruned so its set is always present.
	utxoSet, _ := bt.index.UTXOSet(bt.tip)
	return utxoSet
}

// UTXOSet returns an independent copy of the UTXO set at the given block
//
// This function is safe for concurrent access.
func (bt *BlockTree) UTXOSet(blockHash *externalapi.DomainHash) (*utxo.Set, error) {
	bt.treeLock.RLock()
	defer bt.treeLock.RUnlock()
	node, ok := bt.index.LookupNode(blockHash)
	if !ok {
		return nil, errors.Errorf("block %s is not in the tree", blockHash)
	}
	utxoSet, ok := bt.index.UTXOSet(node)
	if !ok {
		return nil, errors.Errorf("the UTXO set of block %s was pruned", blockHash)
	}
	return utxoSet, nil
}

// TransactionPool returns the pool of pending transactions
func (bt *BlockTree) TransactionPool() *mempool.Mempool {
	return bt.transactionPool
}

// AddTransaction adds transaction to the transaction pool. The transaction
// is not validated until a block containing it is processed.
//
// This function is safe for concurrent access.
func (bt *BlockTree) AddTransaction(transaction *externalapi.DomainTransaction) {
	bt.transactionPool.AddTransaction(transaction)
}

// Genesis returns the root node of the tree
func (bt *BlockTree) Genesis() *blocknode.Node {
	return bt.genesis
}

// LookupNode returns the node of the given block, if it is in the tree
//
// This function is safe for concurrent access.
func (bt *BlockTree) LookupNode(blockHash *externalapi.DomainHash) (*blocknode.Node, bool) {
	bt.treeLock.RLock()
	defer bt.treeLock.RUnlock()
	return bt.index.LookupNode(blockHash)
}

// HaveBlock returns whether the given block is in the tree
//
// This function is safe for concurrent access.
func (bt *BlockTree) HaveBlock(blockHash *externalapi.DomainHash) bool {
	bt.treeLock.RLock()
	defer bt.treeLock.RUnlock()
	return bt.index.HaveBlock(blockHash)
}

// ChildHashes returns the hashes of the children of the given node, sorted
//
// This function is safe for concurrent access.
func (bt *BlockTree) ChildHashes(node *blocknode.Node) []*externalapi.DomainHash {
	bt.treeLock.RLock()
	defer bt.treeLock.RUnlock()
	return bt.index.ChildHashes(node)
}

// BlockCount returns the number of nodes in the tree
//
// This function is safe for concurrent access.
func (bt *BlockTree) BlockCount() int {
	bt.treeLock.RLock()
	defer bt.treeLock.RUnlock()
	return bt.index.Count()
}

// CutOffAge returns the configured cut-off age
func (bt *BlockTree) CutOffAge() uint64 {
	return bt.cutOffAge
}
