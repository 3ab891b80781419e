// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocknode

import (
	"sync"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/hashset"
	"github.com/kaspanet/blocktree/domain/utxo"
	"github.com/pkg/errors"
)

// Index provides facilities for keeping track of an in-memory Index of the
// block tree. It owns every node; nodes refer to each other by hash.
type Index struct {
	sync.RWMutex
	index map[externalapi.DomainHash]*Node

	// byHeight holds every node that was not yet retired, lowest first. It
	// may still hold removed nodes.
	byHeight *HeightHeap
}

// NewIndex returns a new empty instance of a block Index.
func NewIndex() *Index {
	return &Index{
		index:    make(map[externalapi.DomainHash]*Node),
		byHeight: NewHeightHeap(),
	}
}

// HaveBlock returns whether or not the block Index contains the provided hash.
//
// This function is safe for concurrent access.
func (bi *Index) HaveBlock(hash *externalapi.DomainHash) bool {
	bi.RLock()
	defer bi.RUnlock()
	_, hasBlock := bi.index[*hash]
	return hasBlock
}

// LookupNode returns the block node identified by the provided hash. It will
// return false if there is no entry for the hash.
//
// This function is safe for concurrent access.
func (bi *Index) LookupNode(hash *externalapi.DomainHash) (*Node, bool) {
	bi.RLock()
	defer bi.RUnlock()
	node, ok := bi.index[*hash]
	return node, ok
}

// Count returns the number of nodes in the Index
//
// This function is safe for concurrent access.
func (bi *Index) Count() int {
	bi.RLock()
	defer bi.RUnlock()
	return len(bi.index)
}

// AddNode adds the provided node to the block Index and links it into its
// parent's children. The parent, if any, must already be in the Index.
// Duplicate entries are not checked so it is up to caller to avoid adding them.
//
// This function is safe for concurrent access.
func (bi *Index) AddNode(node *Node) error {
	bi.Lock()
	defer bi.Unlock()

	if !node.IsGenesis() {
		parent, ok := bi.index[*node.ParentHash]
		if !ok {
			return errors.Errorf("parent %s of node %s is not in the index", node.ParentHash, node.Hash)
		}
		parent.children.Add(node.Hash)
	}
	bi.index[*node.Hash] = node
	bi.byHeight.Push(node)
	return nil
}

// RemoveSubtree removes the provided node together with all of its
// descendants from the Index, unlinks the node from its parent and returns
// the hashes of the removed nodes. Nothing is removed if the node is no
// longer indexed.
//
// This function is safe for concurrent access.
func (bi *Index) RemoveSubtree(node *Node) hashset.HashSet {
	bi.Lock()
	defer bi.Unlock()

	removed := hashset.New()
	if bi.index[*node.Hash] != node {
		return removed
	}
	if !node.IsGenesis() {
		if parent, ok := bi.index[*node.ParentHash]; ok {
			parent.children.Remove(node.Hash)
		}
	}

	pending := []*Node{node}
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for _, childHash := range current.children.ToSortedSlice() {
			if child, ok := bi.index[*childHash]; ok {
				pending = append(pending, child)
			}
		}
		delete(bi.index, *current.Hash)
		removed.Add(current.Hash)
	}
	return removed
}

// ChildHashes returns the hashes of the node's children, sorted
//
// This function is safe for concurrent access.
func (bi *Index) ChildHashes(node *Node) []*externalapi.DomainHash {
	bi.RLock()
	defer bi.RUnlock()
	return node.children.ToSortedSlice()
}

// UTXOSet returns an independent copy of the node's UTXO set, or false if
// the set was already released.
//
// This function is safe for concurrent access.
func (bi *Index) UTXOSet(node *Node) (*utxo.Set, bool) {
	bi.RLock()
	defer bi.RUnlock()
	if node.utxoSet == nil {
		return nil, false
	}
	return node.utxoSet.Clone(), true
}

// ReleaseUTXOSet drops the node's UTXO set. The node can't be extended
// afterwards.
//
// This function is safe for concurrent access.
func (bi *Index) ReleaseUTXOSet(node *Node) {
	bi.Lock()
	defer bi.Unlock()
	node.utxoSet = nil
}

// RetireNodesBelowHeight removes from consideration, and returns lowest
// first, every indexed node below the given height that was not retired
// before. The nodes themselves stay in the Index. Nodes that were removed
// from the Index are dropped without being returned.
//
// This function is safe for concurrent access.
func (bi *Index) RetireNodesBelowHeight(height uint64) []*Node {
	bi.Lock()
	defer bi.Unlock()

	var retired []*Node
	for bi.byHeight.Len() > 0 && bi.byHeight.Peek().Height < height {
		node := bi.byHeight.Pop()
		if bi.index[*node.Hash] == node {
			retired = append(retired, node)
		}
	}
	return retired
}
