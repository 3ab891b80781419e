package blocktree

import (
	"github.com/kaspanet/blocktree/domain/consensus/utils/hashset"
)

// pruneNoLock drops what can no longer be extended: a child of a node below
// the tip height minus the cut-off age would itself be too deep. Such nodes
// on the path from the tip to the genesis keep their node but lose their
// UTXO set. All other such nodes are removed from the tree along with their
// descendants, which can never become tip ancestors.
//
// This function MUST be called with the tree lock held (for writes).
func (bt *BlockTree) pruneNoLock() {
	if bt.tip.Height <= bt.cutOffAge {
		return
	}
	retired := bt.index.RetireNodesBelowHeight(bt.tip.Height - bt.cutOffAge)
	if len(retired) == 0 {
		return
	}

	// Retired nodes are sorted lowest first, so the walk stops as soon as
	// it passes the lowest of them.
	tipAncestors := hashset.New()
	lowestHeight := retired[0].Height
	for current := bt.tip; current != nil && current.Height >= lowestHeight; {
		tipAncestors.Add(current.Hash)
		if current.IsGenesis() {
			break
		}
		current, _ = bt.index.LookupNode(current.ParentHash)
	}

	releasedCount, removedCount := 0, 0
	for _, node := range retired {
		if tipAncestors.Contains(node.Hash) {
			bt.index.ReleaseUTXOSet(node)
			releasedCount++
			continue
		}
		removed := bt.index.RemoveSubtree(node)
		removedCount += removed.Length()
	}

	log.Debugf("Pruned below height %d: released %d UTXO sets, removed %d nodes",
		bt.tip.Height-bt.cutOffAge, releasedCount, removedCount)
}
