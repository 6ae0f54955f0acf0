package huffpack

import (
	"bytes"
	"fmt"
)

// Pack concatenates the code of each byte of data, in input order, and packs
// the result into bytes.  It returns the packed bytes and the number of zero
// bits (0 through 7) used to pad the last byte.
//
// Every byte of data must have a code in the table.
//
func Pack(data []byte, codes *CodeTable) (packed []byte, padding uint8, err error) {
	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	w := NewBitWriter(&buf)
	for offset, value := range data {
		hc := codes.Lookup(value)
		if hc.Size == 0 {
			return nil, 0, fmt.Errorf("byte 0x%02x at offset %d: %w", value, offset, ErrNoCode)
		}
		if err = w.WriteCode(hc); err != nil {
			return nil, 0, err
		}
	}

	padding, err = w.Finish()
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), padding, nil
}

// Unpack reverses Pack.  Starting at the root, it follows one bit at a time
// (0 left, 1 right) and emits a byte each time it reaches a leaf, until n
// bytes have been emitted.
//
// The bits consumed must be exactly the 8*len(packed)-padding data bits:
// running out of bits inside a code and leaving data bits unconsumed are
// both reported as ErrCorrupt.
//
func Unpack(packed []byte, padding uint8, t *Tree, n uint64) ([]byte, error) {
	if padding > 7 {
		return nil, fmt.Errorf("%w: padding of %d bits", ErrCorrupt, padding)
	}

	r := NewBitReader(packed, padding)
	if n == 0 {
		if r.Remaining() != 0 {
			return nil, fmt.Errorf("%w: %d data bits but no output expected", ErrCorrupt, r.Remaining())
		}
		return []byte{}, nil
	}
	if t == nil {
		return nil, fmt.Errorf("%w: no code tree for %d bytes of output", ErrCorrupt, n)
	}

	// Every code is at least one bit long.
	if n > r.Remaining() {
		return nil, fmt.Errorf("%w: %d bytes declared but only %d data bits present", ErrCorrupt, n, r.Remaining())
	}

	out := make([]byte, 0, n)
	root := t.Root()
	singleLeaf := t.IsLeaf(root)
	for uint64(len(out)) < n {
		if singleLeaf {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, fmt.Errorf("%w: bit stream ends after %d of %d bytes", ErrCorrupt, len(out), n)
			}
			if bit {
				return nil, fmt.Errorf("%w: unexpected 1 bit at bit offset %d", ErrCorrupt, r.BitsRead()-1)
			}
			out = append(out, t.Symbol(root))
			continue
		}

		id := root
		for !t.IsLeaf(id) {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, fmt.Errorf("%w: bit stream ends inside a code after %d of %d bytes", ErrCorrupt, len(out), n)
			}
			id = t.Walk(id, bit)
		}
		out = append(out, t.Symbol(id))
	}

	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d data bits left over after %d bytes", ErrCorrupt, r.Remaining(), n)
	}
	return out, nil
}
