package blocknode

import (
	"container/heap"
)

// nodes implements heap.Interface over Node.Less
type nodes []*Node

func (h nodes) Len() int           { return len(h) }
func (h nodes) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h nodes) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *nodes) Push(x interface{}) {
	*h = append(*h, x.(*Node))
}

func (h *nodes) Pop() interface{} {
	last := len(*h) - 1
	node := (*h)[last]
	(*h)[last] = nil
	*h = (*h)[:last]
	return node
}

// HeightHeap is a priority queue of nodes that pops the lowest node first:
// lowest height, then earliest admission. It is not safe for concurrent
// access.
type HeightHeap struct {
	nodes nodes
}

// NewHeightHeap returns an empty HeightHeap
func NewHeightHeap() *HeightHeap {
	return &HeightHeap{}
}

// Push adds node to the heap
func (hh *HeightHeap) Push(node *Node) {
	heap.Push(&hh.nodes, node)
}

// Pop removes and returns the lowest node. The heap must not be empty.
func (hh *HeightHeap) Pop() *Node {
	return heap.Pop(&hh.nodes).(*Node)
}

// Peek returns the lowest node without removing it, or nil if the heap is
// empty.
func (hh *HeightHeap) Peek() *Node {
	if len(hh.nodes) == 0 {
		return nil
	}
	return hh.nodes[0]
}

// Len returns the number of nodes in the heap
func (hh *HeightHeap) Len() int {
	return hh.nodes.Len()
}
