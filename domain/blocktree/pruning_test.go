package blocktree

import (
	"testing"

	"github.com/kaspanet/blocktree/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

func TestPruning(t *testing.T) {
	bt, _ := treeSetup(t, newWallet(t), &Config{CutOffAge: 3, EnablePruning: true})

	// genesis(1) - a2 - a3 - a4, and a fork genesis - b2
	mainChain := addChainForTest(t, bt, bt.Genesis().Hash, 3)
	fork := addBlockForTest(t, bt, bt.Genesis().Hash, nil)
	if bt.BlockCount() != 5 {
		t.Fatalf("TestPruning: expected 5 blocks before pruning, got %d", bt.BlockCount())
	}

	// Raising the tip to height 5 retires everything below height 2.
	mainChain = append(mainChain, addBlockForTest(t, bt, mainChain[len(mainChain)-1].Hash, nil))
	if !bt.HaveBlock(bt.Genesis().Hash) {
		t.Fatalf("TestPruning: the genesis node was removed")
	}
	_, err := bt.UTXOSet(bt.Genesis().Hash)
	if err == nil {
		t.Fatalf("TestPruning: the genesis UTXO set was not released")
	}

	// Raising it to height 6 retires height 2: the fork goes away, the
	// main chain node stays without its set.
	addBlockForTest(t, bt, mainChain[len(mainChain)-1].Hash, nil)
	if bt.HaveBlock(fork.Hash) {
		t.Fatalf("TestPruning: fork %s was not removed", fork)
	}
	if len(bt.ChildHashes(bt.Genesis())) != 1 {
		t.Fatalf("TestPruning: the removed fork is still a child of genesis")
	}
	if !bt.HaveBlock(mainChain[0].Hash) {
		t.Fatalf("TestPruning: tip ancestor %s was removed", mainChain[0])
	}
	_, err = bt.UTXOSet(mainChain[0].Hash)
	if err == nil {
		t.Fatalf("TestPruning: the UTXO set of %s was not released", mainChain[0])
	}
	_, err = bt.UTXOSet(mainChain[1].Hash)
	if err != nil {
		t.Fatalf("TestPruning: the UTXO set of %s was released: %+v", mainChain[1], err)
	}
	if bt.BlockCount() != 6 {
		t.Fatalf("TestPruning: expected 6 blocks after pruning, got %d", bt.BlockCount())
	}

	// Pruned or not, blocks that deep are still rejected the same way.
	err = bt.ProcessBlock(PrepareBlockForTest(mainChain[0].Hash, []byte{0}, 1, nil))
	if !errors.Is(err, ruleerrors.ErrBlockTooDeepRule) {
		t.Fatalf("TestPruning: expected ErrBlockTooDeep, got %+v", err)
	}
	err = bt.ProcessBlock(PrepareBlockForTest(fork.Hash, []byte{0}, 1, nil))
	if !errors.Is(err, ruleerrors.ErrMissingParentsRule) {
		t.Fatalf("TestPruning: expected ErrMissingParents for a pruned parent, got %+v", err)
	}
}

func TestNoPruningByDefault(t *testing.T) {
	bt, _ := treeSetup(t, newWallet(t), nil)
	addChainForTest(t, bt, bt.Genesis().Hash, 2*DefaultCutOffAge)

	if bt.BlockCount() != 2*DefaultCutOffAge+1 {
		t.Fatalf("TestNoPruningByDefault: expected %d blocks, got %d", 2*DefaultCutOffAge+1, bt.BlockCount())
	}
	_, err := bt.UTXOSet(bt.Genesis().Hash)
	if err != nil {
		t.Fatalf("TestNoPruningByDefault: the genesis UTXO set was released: %+v", err)
	}
}

func TestPruningRemovesForkSubtree(t *testing.T) {
	bt, _ := treeSetup(t, newWallet(t), &Config{CutOffAge: 3, EnablePruning: true})

	// genesis(1) - a2 - a3 - a4 - a5, and a fork a3 - b4 - b5
	mainChain := addChainForTest(t, bt, bt.Genesis().Hash, 4)
	forkChain := addChainForTest(t, bt, mainChain[1].Hash, 2)

	// Raising the tip to height 8 retires b4. b5 is high enough to be
	// extended on its own, yet it goes away together with its parent.
	mainChain = append(mainChain, addChainForTest(t, bt, mainChain[len(mainChain)-1].Hash, 3)...)
	for _, node := range forkChain {
		if bt.HaveBlock(node.Hash) {
			t.Fatalf("TestPruningRemovesForkSubtree: fork node %s at height %d was not removed", node, node.Height)
		}
	}
	children := bt.ChildHashes(mainChain[1])
	if len(children) != 1 || !children[0].Equal(mainChain[2].Hash) {
		t.Fatalf("TestPruningRemovesForkSubtree: unexpected children of %s: %v", mainChain[1], children)
	}
	if bt.BlockCount() != 8 {
		t.Fatalf("TestPruningRemovesForkSubtree: expected 8 blocks, got %d", bt.BlockCount())
	}
	err := bt.ProcessBlock(PrepareBlockForTest(forkChain[1].Hash, []byte{0}, 1, nil))
	if !errors.Is(err, ruleerrors.ErrMissingParentsRule) {
		t.Fatalf("TestPruningRemovesForkSubtree: expected ErrMissingParents, got %+v", err)
	}

	// A fork above the cut-off can still overtake the tip, and its whole
	// ancestry stays in the tree.
	fork := addChainForTest(t, bt, mainChain[4].Hash, 4)
	if bt.Tip() != fork[len(fork)-1] {
		t.Fatalf("TestPruningRemovesForkSubtree: expected tip %s, got %s", fork[len(fork)-1], bt.Tip())
	}
	assertTipAncestryComplete(t, bt)
}

func assertTipAncestryComplete(t *testing.T, bt *BlockTree) {
	current := bt.Tip()
	for !current.IsGenesis() {
		parent, ok := bt.LookupNode(current.ParentHash)
		if !ok {
			t.Fatalf("tip ancestor %s (parent of %s at height %d) is missing from the tree",
				current.ParentHash, current, current.Height)
		}
		current = parent
	}
	if current != bt.Genesis() {
		t.Fatalf("tip ancestry ends at %s instead of the genesis", current)
	}
}
