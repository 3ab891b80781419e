package blocktree

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/blocktree/domain/blocknode"
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/ruleerrors"
	"github.com/kaspanet/blocktree/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/blocktree/infrastructure/logger"
	"github.com/pkg/errors"
)

// AddBlock adds block to the tree if it is valid, and returns whether it
// was added. A nil block or header is a programming error and panics.
//
// This function is safe for concurrent access.
func (bt *BlockTree) AddBlock(block *externalapi.DomainBlock) bool {
	return bt.ProcessBlock(block) == nil
}

// ProcessBlock is the main workhorse for handling insertion of new blocks into
// the block tree. It returns nil if the block was added, or a RuleError
// describing why it was rejected. A rejected block leaves the tree, the tip
// and the transaction pool unchanged.
//
// This function is safe for concurrent access.
func (bt *BlockTree) ProcessBlock(block *externalapi.DomainBlock) error {
	if block == nil {
		panic(errors.New("ProcessBlock: block is nil"))
	}
	if block.Header == nil {
		panic(errors.New("ProcessBlock: block header is nil"))
	}

	notifications, err := bt.processBlockWithLock(block)
	if err != nil {
		log.Debugf("Rejected block %s: %s", consensushashing.BlockHash(block), err)
		return err
	}

	bt.sendNotifications(notifications)
	return nil
}

func (bt *BlockTree) processBlockWithLock(block *externalapi.DomainBlock) ([]*Notification, error) {
	bt.treeLock.Lock()
	defer bt.treeLock.Unlock()
	return bt.processBlockNoLock(block)
}

func (bt *BlockTree) processBlockNoLock(block *externalapi.DomainBlock) ([]*Notification, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "processBlockNoLock")
	defer onEnd()

	blockHash := consensushashing.BlockHash(block)
	log.Tracef("Processing block %s: %s", blockHash, logger.NewLogClosure(func() string {
		return spew.Sdump(block)
	}))

	err := bt.checkDuplicateBlock(blockHash)
	if err != nil {
		return nil, err
	}

	parent, err := bt.checkParent(blockHash, block)
	if err != nil {
		return nil, err
	}

	err = bt.checkBlockHeight(parent)
	if err != nil {
		return nil, err
	}

	err = checkCoinbase(blockHash, block)
	if err != nil {
		return nil, err
	}

	parentUTXOSet, ok := bt.index.UTXOSet(parent)
	if !ok {
		return nil, ruleerrors.NewErrBlockTooDeep(parent.Height+1, bt.tip.Height, bt.cutOffAge)
	}

	// The coinbase is kept out of transaction validation.
	acceptedTransactions, utxoSet, invalidTransactions :=
		bt.transactionValidator.ValidateTransactions(parentUTXOSet, block.Transactions)
	if len(acceptedTransactions) != len(block.Transactions) {
		return nil, ruleerrors.NewErrInvalidTransactionsInNewBlock(invalidTransactions)
	}
	utxoSet.AddTransactionOutputs(block.Coinbase, true)

	node := blocknode.NewNode(block.Clone(), blockHash, parent, utxoSet, bt.nextSequence)
	err = bt.index.AddNode(node)
	if err != nil {
		return nil, err
	}
	bt.nextSequence++

	notifications := []*Notification{{
		Type: NTBlockAdded,
		Data: &BlockAddedNotificationData{Block: node.Block, Node: node},
	}}

	if node.Height > bt.tip.Height {
		oldTip := bt.tip
		bt.tip = node
		log.Infof("New tip %s at height %d", node.Hash, node.Height)
		notifications = append(notifications, &Notification{
			Type: NTTipChanged,
			Data: &TipChangedNotificationData{OldTip: oldTip, NewTip: node},
		})

		if bt.enablePruning {
			bt.pruneNoLock()
		}
	}

	bt.transactionPool.RemoveTransactions(acceptedTransactions)

	log.Debugf("Accepted block %s at height %d with %d transactions",
		blockHash, node.Height, len(block.Transactions))

	return notifications, nil
}

func (bt *BlockTree) checkDuplicateBlock(blockHash *externalapi.DomainHash) error {
	if bt.index.HaveBlock(blockHash) {
		return errors.Wrapf(ruleerrors.ErrDuplicateBlock, "already have block %s", blockHash)
	}
	return nil
}

func (bt *BlockTree) checkParent(blockHash *externalapi.DomainHash, block *externalapi.DomainBlock) (
	*blocknode.Node, error) {

	if block.Header.ParentHash == nil {
		return nil, errors.Wrapf(ruleerrors.ErrNoParents, "block %s has no parent", blockHash)
	}

	parent, ok := bt.index.LookupNode(block.Header.ParentHash)
	if !ok {
		return nil, ruleerrors.NewErrMissingParents([]*externalapi.DomainHash{block.Header.ParentHash})
	}
	return parent, nil
}

// checkBlockHeight rejects a child of parent if its height is not above
// the tip height minus the cut-off age
func (bt *BlockTree) checkBlockHeight(parent *blocknode.Node) error {
	height := parent.Height + 1
	if bt.tip.Height >= bt.cutOffAge && height <= bt.tip.Height-bt.cutOffAge {
		return ruleerrors.NewErrBlockTooDeep(height, bt.tip.Height, bt.cutOffAge)
	}
	return nil
}

func checkCoinbase(blockHash *externalapi.DomainHash, block *externalapi.DomainBlock) error {
	if block.Coinbase == nil {
		return errors.Wrapf(ruleerrors.ErrMissingCoinbase, "block %s has no coinbase", blockHash)
	}
	if !block.Coinbase.IsCoinbase() {
		return errors.Wrapf(ruleerrors.ErrCoinbaseHasInputs, "the coinbase of block %s has %d inputs",
			blockHash, len(block.Coinbase.Inputs))
	}
	return nil
}
