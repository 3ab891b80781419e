// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocknode

import (
	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/kaspanet/blocktree/domain/consensus/utils/hashset"
	"github.com/kaspanet/blocktree/domain/utxo"
)

// GenesisHeight is the height of the root of the tree
const GenesisHeight = 1

// Node represents an accepted block within the block tree. Parent and
// children are referenced by hash and resolved through the Index.
type Node struct {
	// Block is the accepted block. It must be treated as immutable.
	Block *externalapi.DomainBlock

	// Hash is the content identifier of Block.
	Hash *externalapi.DomainHash

	// ParentHash is the hash of the parent node. It is nil only for the
	// genesis node.
	ParentHash *externalapi.DomainHash

	// Height is GenesisHeight for the genesis node and the parent's height
	// plus one for every other node.
	Height uint64

	// Sequence is the admission order of the node. The genesis node has
	// sequence zero.
	Sequence uint64

	// children and utxoSet may change after the node was added to an
	// Index, so they are only accessed through the Index.
	children hashset.HashSet
	utxoSet  *utxo.Set
}

// NewGenesisNode returns the root node of a tree for the given block. The
// node takes ownership of utxoSet.
func NewGenesisNode(block *externalapi.DomainBlock, hash *externalapi.DomainHash, utxoSet *utxo.Set) *Node {
	return &Node{
		Block:    block,
		Hash:     hash,
		Height:   GenesisHeight,
		Sequence: 0,
		children: hashset.New(),
		utxoSet:  utxoSet,
	}
}

// NewNode returns a new node for block as a child of parent. The node takes
// ownership of utxoSet. The parent's children are not updated; that is
// done when the node is added to the Index.
//
// This function is NOT safe for concurrent access.
func NewNode(block *externalapi.DomainBlock, hash *externalapi.DomainHash, parent *Node,
	utxoSet *utxo.Set, sequence uint64) *Node {

	return &Node{
		Block:      block,
		Hash:       hash,
		ParentHash: parent.Hash,
		Height:     parent.Height + 1,
		Sequence:   sequence,
		children:   hashset.New(),
		utxoSet:    utxoSet,
	}
}

// IsGenesis returns if the current block is the genesis block
func (node *Node) IsGenesis() bool {
	return node.ParentHash == nil
}

// Less orders nodes by height, and nodes of equal height by admission order
func (node *Node) Less(other *Node) bool {
	if node.Height == other.Height {
		return node.Sequence < other.Sequence
	}

	return node.Height < other.Height
}

// String returns a string that contains the block Hash.
func (node Node) String() string {
	return node.Hash.String()
}
