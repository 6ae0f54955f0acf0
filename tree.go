package huffpack

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NodeID addresses a node within a Tree's arena.
type NodeID int32

// InvalidNode is returned by some methods to clearly indicate that no node
// is being returned.
const InvalidNode = NodeID(-1)

// Tree is a Huffman prefix-code tree stored as an arena of nodes.
//
// Leaves occupy the first slots of the arena, one per byte value that is
// present, in ascending byte order.  Every merge appends one internal node,
// so a tree with n leaves always holds exactly 2n-1 nodes.  Nodes refer to
// their children by NodeID; each child has exactly one parent.
//
type Tree struct {
	nodes []node
	root  NodeID
}

type node struct {
	freq   uint64
	left   NodeID
	right  NodeID
	symbol byte
}

func (n node) isLeaf() bool {
	return n.left == InvalidNode
}

// BuildTree builds the Huffman tree for the given frequency table.  It
// returns nil if the table is empty.
//
// Nodes are merged lowest frequency first.  Ties are broken by NodeID, which
// is the order in which nodes entered the queue, so the same table always
// produces the same tree.  Of each merged pair, the first node removed from
// the queue becomes the left child.
//
func BuildTree(freq *FrequencyTable) *Tree {
	symbols := freq.Symbols()
	numLeaves := len(symbols)
	if numLeaves == 0 {
		return nil
	}

	nodes := make([]node, 0, 2*numLeaves-1)
	h := nodeHeap{list: make([]nodeAndFreq, 0, numLeaves)}
	for _, value := range symbols {
		id := NodeID(len(nodes))
		count := uint64(freq[value])
		nodes = append(nodes, node{freq: count, left: InvalidNode, right: InvalidNode, symbol: value})
		h.list = append(h.list, nodeAndFreq{id, count})
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndFreq)
		b := heap.Pop(&h).(nodeAndFreq)

		id := NodeID(len(nodes))
		sum := a.freq + b.freq
		nodes = append(nodes, node{freq: sum, left: a.id, right: b.id})
		heap.Push(&h, nodeAndFreq{id, sum})
	}

	root := heap.Pop(&h).(nodeAndFreq)
	assert.Assertf(len(nodes) == 2*numLeaves-1, "tree has %d nodes, expected %d", len(nodes), 2*numLeaves-1)
	assert.Assertf(root.id == NodeID(len(nodes)-1), "root %d is not the last node %d", root.id, len(nodes)-1)

	return &Tree{nodes: nodes, root: root.id}
}

// Root returns the root of the tree.  If the input had a single distinct
// byte value, the root is itself a leaf.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the number of distinct byte
// values the tree encodes.
func (t *Tree) NumLeaves() int {
	return (len(t.nodes) + 1) / 2
}

// IsLeaf returns true iff id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.nodes[id].isLeaf()
}

// Children returns the left and right children of an internal node.  For a
// leaf, both are InvalidNode.
func (t *Tree) Children(id NodeID) (left NodeID, right NodeID) {
	n := t.nodes[id]
	return n.left, n.right
}

// Walk returns the child reached from id by following one bit: false (0)
// goes left, true (1) goes right.
func (t *Tree) Walk(id NodeID, bit bool) NodeID {
	n := t.nodes[id]
	assert.Assertf(!n.isLeaf(), "cannot walk below leaf %d", id)
	if bit {
		return n.right
	}
	return n.left
}

// Symbol returns the byte value held by a leaf.
func (t *Tree) Symbol(id NodeID) byte {
	n := t.nodes[id]
	assert.Assertf(n.isLeaf(), "node %d is not a leaf", id)
	return n.symbol
}

// Frequency returns the frequency of a leaf, or the summed frequency of an
// internal node's subtree.
func (t *Tree) Frequency(id NodeID) uint64 {
	return t.nodes[id].freq
}

// Depth returns the length of the longest path from the root to a leaf.
func (t *Tree) Depth() int {
	var depth func(id NodeID) int
	depth = func(id NodeID) int {
		n := t.nodes[id]
		if n.isLeaf() {
			return 0
		}
		l, r := depth(n.left), depth(n.right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return depth(t.root)
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.root)
	for id, n := range t.nodes {
		if n.isLeaf() {
			fmt.Fprintf(&buf, "\tNode(%d) = leaf 0x%02x, freq %d\n", id, n.symbol, n.freq)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = {%d, %d}, freq %d\n", id, n.left, n.right, n.freq)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeAndFreq + type nodeHeap {{{

type nodeAndFreq struct {
	id   NodeID
	freq uint64
}

type nodeHeap struct {
	list []nodeAndFreq
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.id < b.id
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndFreq))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
