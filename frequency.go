package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// FrequencyTable maps each byte value to the number of times it occurs in
// the input.  An all-zero table describes an empty input.
type FrequencyTable [256]uint32

// CountFrequencies scans data once and returns its FrequencyTable.
//
// Counts are limited to math.MaxUint32; longer runs of a single byte value
// cannot be described by the container and yield ErrInputTooLarge.
//
func CountFrequencies(data []byte) (FrequencyTable, error) {
	var wide [256]uint64
	for _, b := range data {
		wide[b]++
	}

	var freq FrequencyTable
	for value, count := range wide {
		if count > math.MaxUint32 {
			return FrequencyTable{}, fmt.Errorf("byte 0x%02x: %w", value, ErrInputTooLarge)
		}
		freq[value] = uint32(count)
	}
	return freq, nil
}

// Total returns the sum of all counts, i.e. the length of the original input.
func (freq *FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range freq {
		total += uint64(count)
	}
	return total
}

// Distinct returns the number of byte values with a non-zero count.
func (freq *FrequencyTable) Distinct() int {
	var n int
	for _, count := range freq {
		if count != 0 {
			n++
		}
	}
	return n
}

// IsEmpty returns true iff every count is zero.
func (freq *FrequencyTable) IsEmpty() bool {
	return freq.Distinct() == 0
}

// MaxCount returns the largest count in the table.
func (freq *FrequencyTable) MaxCount() uint32 {
	var largest uint32
	for _, count := range freq {
		if count > largest {
			largest = count
		}
	}
	return largest
}

// Symbols returns the byte values that are present, in ascending order.
func (freq *FrequencyTable) Symbols() []byte {
	out := make([]byte, 0, 256)
	for value, count := range freq {
		if count != 0 {
			out = append(out, byte(value))
		}
	}
	return out
}

// Dump writes a programmer-readable listing of the non-zero counts to the
// given writer.
func (freq *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", freq.Total())
	for _, value := range freq.Symbols() {
		fmt.Fprintf(&buf, "\t0x%02x = %d\n", value, freq[value])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
