package huffpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each byte value to its prefix code.  Byte values that do
// not appear in the tree have a zero-length Code.
type CodeTable struct {
	codes   [256]Code
	minSize byte
	maxSize byte
}

// NewCodeTable derives the code for every leaf of the tree.  Descending to a
// left child appends a 0 bit, descending to a right child appends a 1 bit.
//
// A tree whose root is a leaf (a single distinct byte value) has no edges to
// derive a code from; that byte value is assigned the one-bit code "0".
//
// A nil tree yields an empty CodeTable.
//
func NewCodeTable(t *Tree) CodeTable {
	var table CodeTable
	if t == nil {
		return table
	}

	root := t.Root()
	if t.IsLeaf(root) {
		table.assign(t.Symbol(root), MakeCode(1, 0))
		return table
	}

	var visit func(id NodeID, prefix Code)
	visit = func(id NodeID, prefix Code) {
		if t.IsLeaf(id) {
			table.assign(t.Symbol(id), prefix)
			return
		}
		left, right := t.Children(id)
		visit(left, prefix.Append(false))
		visit(right, prefix.Append(true))
	}
	visit(root, Code{})
	return table
}

func (table *CodeTable) assign(value byte, hc Code) {
	assert.Assertf(hc.Size != 0, "byte 0x%02x assigned an empty code", value)
	assert.Assertf(table.codes[value].Size == 0, "byte 0x%02x assigned twice", value)
	table.codes[value] = hc

	if table.minSize == 0 || table.minSize > hc.Size {
		table.minSize = hc.Size
	}
	if table.maxSize < hc.Size {
		table.maxSize = hc.Size
	}
}

// Lookup returns the code for the given byte value.  The result has Size 0
// if the value is not part of the code.
func (table *CodeTable) Lookup(value byte) Code {
	return table.codes[value]
}

// MinSize is the bit length of the shortest code.
func (table *CodeTable) MinSize() byte {
	return table.minSize
}

// MaxSize is the bit length of the longest code.
func (table *CodeTable) MaxSize() byte {
	return table.maxSize
}

// Len returns the number of byte values that have a code.
func (table *CodeTable) Len() int {
	var n int
	for _, hc := range table.codes {
		if hc.Size != 0 {
			n++
		}
	}
	return n
}

// EncodedBits returns the number of bits needed to encode an input with the
// given frequencies.
func (table *CodeTable) EncodedBits(freq *FrequencyTable) uint64 {
	var bits uint64
	for value, count := range freq {
		bits += uint64(count) * uint64(table.codes[value].Size)
	}
	return bits
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (table *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", table.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", table.maxSize)
	for value, hc := range table.codes {
		if hc.Size != 0 {
			fmt.Fprintf(&buf, "\tLookup(0x%02x) = %s\n", value, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
