package blocknode

import (
	"testing"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/utxo"
)

func testHash(b byte) *externalapi.DomainHash {
	return externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{b})
}

func TestIndexAddNodeLinksChildren(t *testing.T) {
	index := NewIndex()
	genesis := NewGenesisNode(&externalapi.DomainBlock{}, testHash(1), utxo.NewSet())
	if err := index.AddNode(genesis); err != nil {
		t.Fatalf("TestIndexAddNodeLinksChildren: AddNode(genesis): %+v", err)
	}

	first := NewNode(&externalapi.DomainBlock{}, testHash(3), genesis, utxo.NewSet(), 1)
	second := NewNode(&externalapi.DomainBlock{}, testHash(2), genesis, utxo.NewSet(), 2)
	for _, node := range []*Node{first, second} {
		if err := index.AddNode(node); err != nil {
			t.Fatalf("TestIndexAddNodeLinksChildren: AddNode(%s): %+v", node, err)
		}
	}

	if genesis.Height != GenesisHeight || first.Height != GenesisHeight+1 || second.Height != GenesisHeight+1 {
		t.Fatalf("TestIndexAddNodeLinksChildren: unexpected heights %d, %d, %d",
			genesis.Height, first.Height, second.Height)
	}
	if !first.ParentHash.Equal(genesis.Hash) || !genesis.IsGenesis() || first.IsGenesis() {
		t.Fatalf("TestIndexAddNodeLinksChildren: unexpected parent links")
	}

	children := index.ChildHashes(genesis)
	if !externalapi.HashesEqual(children, []*externalapi.DomainHash{second.Hash, first.Hash}) {
		t.Fatalf("TestIndexAddNodeLinksChildren: unexpected children %v", children)
	}
	if index.Count() != 3 {
		t.Fatalf("TestIndexAddNodeLinksChildren: expected 3 nodes, got %d", index.Count())
	}

	orphan := &Node{Hash: testHash(9), ParentHash: testHash(8)}
	if err := index.AddNode(orphan); err == nil {
		t.Fatalf("TestIndexAddNodeLinksChildren: adding a node with an unknown parent succeeded")
	}
	if index.HaveBlock(orphan.Hash) {
		t.Fatalf("TestIndexAddNodeLinksChildren: failed AddNode left the node in the index")
	}
}

func TestIndexRemoveSubtree(t *testing.T) {
	index := NewIndex()
	genesis := NewGenesisNode(&externalapi.DomainBlock{}, testHash(1), utxo.NewSet())
	child := NewNode(&externalapi.DomainBlock{}, testHash(2), genesis, utxo.NewSet(), 1)
	sibling := NewNode(&externalapi.DomainBlock{}, testHash(3), genesis, utxo.NewSet(), 2)
	grandchild := NewNode(&externalapi.DomainBlock{}, testHash(4), child, utxo.NewSet(), 3)
	greatGrandchild := NewNode(&externalapi.DomainBlock{}, testHash(5), grandchild, utxo.NewSet(), 4)
	for _, node := range []*Node{genesis, child, sibling, grandchild, greatGrandchild} {
		if err := index.AddNode(node); err != nil {
			t.Fatalf("TestIndexRemoveSubtree: AddNode(%s): %+v", node, err)
		}
	}

	removed := index.RemoveSubtree(child)
	if removed.Length() != 3 {
		t.Fatalf("TestIndexRemoveSubtree: expected 3 removed nodes, got %s", removed)
	}
	for _, node := range []*Node{child, grandchild, greatGrandchild} {
		if !removed.Contains(node.Hash) || index.HaveBlock(node.Hash) {
			t.Fatalf("TestIndexRemoveSubtree: %s was not removed", node)
		}
	}
	if !index.HaveBlock(sibling.Hash) || index.Count() != 2 {
		t.Fatalf("TestIndexRemoveSubtree: unexpected index size %d", index.Count())
	}
	children := index.ChildHashes(genesis)
	if len(children) != 1 || !children[0].Equal(sibling.Hash) {
		t.Fatalf("TestIndexRemoveSubtree: unexpected children of genesis %v", children)
	}

	if index.RemoveSubtree(grandchild).Length() != 0 {
		t.Fatalf("TestIndexRemoveSubtree: removed an already removed node twice")
	}

	// Removed nodes are never handed out for retirement.
	retired := index.RetireNodesBelowHeight(GenesisHeight + 10)
	if len(retired) != 2 || retired[0] != genesis || retired[1] != sibling {
		t.Fatalf("TestIndexRemoveSubtree: unexpected retired nodes %v", retired)
	}
}

func TestIndexUTXOSetIsCopied(t *testing.T) {
	index := NewIndex()
	set := utxo.NewSet()
	outpoint := externalapi.NewDomainOutpoint(&externalapi.DomainTransactionID{}, 0)
	set.Add(*outpoint, externalapi.NewUTXOEntry(1, nil, true))
	genesis := NewGenesisNode(&externalapi.DomainBlock{}, testHash(1), set)
	_ = index.AddNode(genesis)

	copied, ok := index.UTXOSet(genesis)
	if !ok {
		t.Fatalf("TestIndexUTXOSetIsCopied: genesis has no UTXO set")
	}
	copied.Remove(*outpoint)

	again, _ := index.UTXOSet(genesis)
	if !again.Contains(*outpoint) {
		t.Fatalf("TestIndexUTXOSetIsCopied: mutating a returned set changed the node's set")
	}

	index.ReleaseUTXOSet(genesis)
	if _, ok := index.UTXOSet(genesis); ok {
		t.Fatalf("TestIndexUTXOSetIsCopied: released set still returned")
	}
}

func TestRetireNodesBelowHeight(t *testing.T) {
	index := NewIndex()
	genesis := NewGenesisNode(&externalapi.DomainBlock{}, testHash(1), utxo.NewSet())
	_ = index.AddNode(genesis)
	parent := genesis
	var chain []*Node
	for i := 0; i < 4; i++ {
		node := NewNode(&externalapi.DomainBlock{}, testHash(byte(i+2)), parent, utxo.NewSet(), uint64(i+1))
		_ = index.AddNode(node)
		chain = append(chain, node)
		parent = node
	}

	retired := index.RetireNodesBelowHeight(3)
	if len(retired) != 2 || retired[0] != genesis || retired[1] != chain[0] {
		t.Fatalf("TestRetireNodesBelowHeight: unexpected retired nodes %v", retired)
	}
	if len(index.RetireNodesBelowHeight(3)) != 0 {
		t.Fatalf("TestRetireNodesBelowHeight: nodes were retired twice")
	}
	if index.Count() != 5 {
		t.Fatalf("TestRetireNodesBelowHeight: retiring removed nodes from the index")
	}
}

func TestHeightHeap(t *testing.T) {
	genesis := NewGenesisNode(nil, testHash(1), nil)
	early := NewNode(nil, testHash(2), genesis, nil, 1)
	late := NewNode(nil, testHash(3), genesis, nil, 2)
	grandchild := NewNode(nil, testHash(4), late, nil, 3)

	heightHeap := NewHeightHeap()
	if heightHeap.Peek() != nil {
		t.Fatalf("TestHeightHeap: an empty heap returned a node")
	}
	for _, node := range []*Node{grandchild, late, genesis, early} {
		heightHeap.Push(node)
	}

	for i, expected := range []*Node{genesis, early, late, grandchild} {
		if heightHeap.Peek() != expected {
			t.Fatalf("TestHeightHeap: peek %d: expected %s, got %s", i, expected, heightHeap.Peek())
		}
		if popped := heightHeap.Pop(); popped != expected {
			t.Fatalf("TestHeightHeap: pop %d: expected %s, got %s", i, expected, popped)
		}
	}
	if heightHeap.Len() != 0 {
		t.Fatalf("TestHeightHeap: heap not empty")
	}
}
