package huffpack

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
)

// Flag is the first byte of a non-empty container.
type Flag byte

const (
	// FlagRaw marks a container holding the original bytes verbatim.
	FlagRaw Flag = 0

	// FlagHuffman marks a Huffman-encoded container whose per-symbol
	// counts are 2-byte fields.
	FlagHuffman Flag = 1

	// FlagHuffmanWide marks a Huffman-encoded container whose per-symbol
	// counts are 4-byte fields.  It is used only when some count exceeds
	// 65535, so inputs with smaller counts always use FlagHuffman.
	FlagHuffmanWide Flag = 2

	// FlagEmpty describes the zero-length container.  It is never written.
	FlagEmpty Flag = 0xff
)

// String returns a short name for the flag.
func (f Flag) String() string {
	switch f {
	case FlagRaw:
		return "raw"
	case FlagHuffman:
		return "huffman"
	case FlagHuffmanWide:
		return "huffman-wide"
	case FlagEmpty:
		return "empty"
	default:
		return fmt.Sprintf("Flag(%d)", byte(f))
	}
}

// IsHuffman returns true iff the flag marks a Huffman-encoded container.
func (f Flag) IsHuffman() bool {
	return f == FlagHuffman || f == FlagHuffmanWide
}

// countWidth returns the size in bytes of each per-symbol count field.
func (f Flag) countWidth() int {
	assert.Assertf(f.IsHuffman(), "flag %s has no count fields", f)
	if f == FlagHuffmanWide {
		return 4
	}
	return 2
}

const (
	flagLen     = 1
	distinctLen = 1
	paddingLen  = 1
)

// Header is the decoded header of a container.
type Header struct {
	Flag        Flag
	Frequencies FrequencyTable
	Padding     uint8
}

func huffmanFlagFor(freq *FrequencyTable) Flag {
	if freq.MaxCount() > math.MaxUint16 {
		return FlagHuffmanWide
	}
	return FlagHuffman
}

// EncodedSize returns the size in bytes of the Huffman-encoded container for
// an input with the given frequencies, using the given codes.
func EncodedSize(freq *FrequencyTable, codes *CodeTable) int {
	flag := huffmanFlagFor(freq)
	headerLen := flagLen + distinctLen + freq.Distinct()*(1+flag.countWidth())
	packedLen := int((codes.EncodedBits(freq) + 7) / 8)
	return headerLen + packedLen + paddingLen
}

// Encode builds the container for data.
//
// An empty input yields an empty container.  Otherwise the Huffman-encoded
// form is used if it is strictly smaller than the input; if not, the raw
// form (FlagRaw followed by data) is used, which is never more than one byte
// larger than the input.  The output depends only on data.
//
func Encode(data []byte) ([]byte, Flag, error) {
	if len(data) == 0 {
		return []byte{}, FlagEmpty, nil
	}

	freq, err := CountFrequencies(data)
	if err != nil {
		return nil, FlagEmpty, err
	}
	tree := BuildTree(&freq)
	codes := NewCodeTable(tree)

	size := EncodedSize(&freq, &codes)
	if size >= len(data) {
		out := make([]byte, 0, flagLen+len(data))
		out = append(out, byte(FlagRaw))
		out = append(out, data...)
		return out, FlagRaw, nil
	}

	packed, padding, err := Pack(data, &codes)
	if err != nil {
		return nil, FlagEmpty, err
	}

	hdr := Header{Flag: huffmanFlagFor(&freq), Frequencies: freq, Padding: padding}
	out := make([]byte, 0, size)
	out = hdr.appendPrefix(out)
	out = append(out, packed...)
	out = append(out, padding)
	assert.Assertf(len(out) == size, "container is %d bytes, projected %d", len(out), size)
	return out, hdr.Flag, nil
}

// appendPrefix appends everything that precedes the packed codeword stream:
// the flag, the distinct count, and the (value, count) entries.
func (hdr *Header) appendPrefix(out []byte) []byte {
	symbols := hdr.Frequencies.Symbols()
	out = append(out, byte(hdr.Flag))

	// 256 distinct values do not fit the field and are stored as 0; an
	// encoded container never has zero distinct values.
	out = append(out, byte(len(symbols)))

	for _, value := range symbols {
		count := hdr.Frequencies[value]
		out = append(out, value)
		if hdr.Flag == FlagHuffmanWide {
			out = binary.LittleEndian.AppendUint32(out, count)
		} else {
			out = binary.LittleEndian.AppendUint16(out, uint16(count))
		}
	}
	return out
}

// ParseHeader decodes the header of a container.  It returns the header and
// the payload: the packed codeword stream for a Huffman-encoded container
// (without the trailing padding byte), or the original bytes for a raw one.
func ParseHeader(container []byte) (Header, []byte, error) {
	var hdr Header
	if len(container) == 0 {
		hdr.Flag = FlagEmpty
		return hdr, nil, nil
	}

	hdr.Flag = Flag(container[0])
	rest := container[flagLen:]
	switch hdr.Flag {
	case FlagRaw:
		return hdr, rest, nil
	case FlagHuffman, FlagHuffmanWide:
		// pass
	default:
		return Header{}, nil, fmt.Errorf("%w: unknown flag %d", ErrCorrupt, byte(hdr.Flag))
	}

	if len(rest) < distinctLen {
		return Header{}, nil, fmt.Errorf("%w: truncated header: missing distinct count", ErrCorrupt)
	}
	distinct := int(rest[0])
	if distinct == 0 {
		distinct = 256
	}
	rest = rest[distinctLen:]

	width := hdr.Flag.countWidth()
	entryLen := 1 + width
	if len(rest) < distinct*entryLen {
		return Header{}, nil, fmt.Errorf("%w: truncated header: %d entries need %d bytes, have %d", ErrCorrupt, distinct, distinct*entryLen, len(rest))
	}
	for i := 0; i < distinct; i++ {
		entry := rest[i*entryLen : (i+1)*entryLen]
		value := entry[0]
		var count uint32
		if width == 4 {
			count = binary.LittleEndian.Uint32(entry[1:])
		} else {
			count = uint32(binary.LittleEndian.Uint16(entry[1:]))
		}
		if count == 0 {
			return Header{}, nil, fmt.Errorf("%w: byte 0x%02x has a zero count", ErrCorrupt, value)
		}
		if hdr.Frequencies[value] != 0 {
			return Header{}, nil, fmt.Errorf("%w: byte 0x%02x listed twice", ErrCorrupt, value)
		}
		hdr.Frequencies[value] = count
	}
	rest = rest[distinct*entryLen:]

	if len(rest) < paddingLen {
		return Header{}, nil, fmt.Errorf("%w: truncated container: missing padding count", ErrCorrupt)
	}
	hdr.Padding = rest[len(rest)-1]
	packed := rest[:len(rest)-1]
	if hdr.Padding > 7 {
		return Header{}, nil, fmt.Errorf("%w: padding of %d bits", ErrCorrupt, hdr.Padding)
	}
	if len(packed) == 0 {
		return Header{}, nil, fmt.Errorf("%w: no packed bytes", ErrCorrupt)
	}
	return hdr, packed, nil
}

// Decode reconstructs the original bytes from a container.  A zero-length
// container decodes to a zero-length output.
func Decode(container []byte) ([]byte, error) {
	hdr, payload, err := ParseHeader(container)
	if err != nil {
		return nil, err
	}
	return decodePayload(&hdr, payload)
}

// decodePayload reconstructs the original bytes from a parsed header and the
// payload returned with it by ParseHeader.
func decodePayload(hdr *Header, payload []byte) ([]byte, error) {
	switch hdr.Flag {
	case FlagEmpty:
		return []byte{}, nil
	case FlagRaw:
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	}

	tree := BuildTree(&hdr.Frequencies)
	return Unpack(payload, hdr.Padding, tree, hdr.Frequencies.Total())
}
