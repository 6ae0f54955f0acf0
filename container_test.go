package huffpack

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"text/tabwriter"

	"github.com/klauspost/compress/huff0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/huffpack/internal/testutil"
)

func roundTrip(t *testing.T, data []byte) ([]byte, Flag) {
	t.Helper()
	container, flag, err := Encode(data)
	require.NoError(t, err)
	out, err := Decode(container)
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, out), "round trip mismatch for %d bytes", len(data))
	return container, flag
}

func TestEncode_Empty(t *testing.T) {
	container, flag := roundTrip(t, []byte{})
	assert.Empty(t, container)
	assert.Equal(t, FlagEmpty, flag)

	out, err := Decode(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestEncode_SingleSymbol(t *testing.T) {
	data := testutil.Repeat('x', 238)
	container, flag := roundTrip(t, data)

	assert.Equal(t, FlagHuffman, flag)
	assert.Len(t, container, 36)
	assert.Equal(t, []byte{0x01, 0x01, 'x', 0xee, 0x00}, container[:5])
	assert.Equal(t, make([]byte, 30), container[5:35])
	assert.Equal(t, byte(2), container[35])
}

func TestEncode_Vectors(t *testing.T) {
	var vectors = []struct {
		desc   string // Description of the input
		input  string // Input in hex
		output string // Expected container in hex
		flag   Flag
	}{{
		"a single byte",
		"61", "0061",
		FlagRaw,
	}, {
		"sixteen distinct bytes",
		"000102030405060708090a0b0c0d0e0f", "00000102030405060708090a0b0c0d0e0f",
		FlagRaw,
	}, {
		"19 'a' then 'b'",
		strings.Repeat("61", 19) + "62", "0102611300620100ffffe004",
		FlagHuffman,
	}}

	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			input := testutil.MustDecodeHex(v.input)
			container, flag := roundTrip(t, input)
			assert.Equal(t, v.output, hex.EncodeToString(container))
			assert.Equal(t, v.flag, flag)
		})
	}
}

func TestEncode_Mixed(t *testing.T) {
	data := testutil.NewRand(6).Skewed(10000, 16)
	freq := mustCount(t, data)
	require.LessOrEqual(t, freq.MaxCount(), uint32(65535))

	container, flag := roundTrip(t, data)
	assert.Equal(t, FlagHuffman, flag)
	assert.Less(t, len(container), len(data))
}

func TestEncode_Incompressible(t *testing.T) {
	data := testutil.NewRand(7).Bytes(200)
	container, flag := roundTrip(t, data)

	assert.Equal(t, FlagRaw, flag)
	assert.Len(t, container, len(data)+1)
	assert.Equal(t, byte(FlagRaw), container[0])
	assert.Equal(t, data, container[1:])
}

func TestEncode_NonInflation(t *testing.T) {
	rnd := testutil.NewRand(8)
	for n := 0; n < 300; n += 7 {
		for _, data := range [][]byte{rnd.Bytes(n), rnd.Skewed(n, 4), rnd.Skewed(n, 200)} {
			container, _ := roundTrip(t, data)
			assert.LessOrEqual(t, len(container), len(data)+1, "input of %d bytes", n)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	data := testutil.NewRand(9).Skewed(5000, 64)
	a, _, err := Encode(data)
	require.NoError(t, err)
	b, _, err := Encode(data)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncode_AllByteValues(t *testing.T) {
	data := make([]byte, 0, 256+20000)
	for i := 0; i < 256; i++ {
		data = append(data, byte(i))
	}
	data = append(data, make([]byte, 20000)...)

	container, flag := roundTrip(t, data)
	assert.Equal(t, FlagHuffman, flag)
	assert.Equal(t, byte(0), container[1], "256 distinct values are stored as 0")

	hdr, _, err := ParseHeader(container)
	require.NoError(t, err)
	assert.Equal(t, 256, hdr.Frequencies.Distinct())
	assert.Equal(t, uint32(20001), hdr.Frequencies[0])
}

func TestEncode_WideCounts(t *testing.T) {
	data := append(testutil.Repeat('a', 70000), 'b')
	container, flag := roundTrip(t, data)

	assert.Equal(t, FlagHuffmanWide, flag)
	assert.Len(t, container, 8764)
	assert.Equal(t, []byte{0x02, 0x02, 'a', 0x70, 0x11, 0x01, 0x00, 'b', 0x01, 0x00, 0x00, 0x00}, container[:12])
	assert.Equal(t, byte(7), container[len(container)-1])
}

func TestEncodedSize(t *testing.T) {
	data := testutil.NewRand(10).Skewed(4096, 8)
	freq := mustCount(t, data)
	codes := NewCodeTable(BuildTree(freq))

	container, flag, err := Encode(data)
	require.NoError(t, err)
	require.Equal(t, FlagHuffman, flag)
	assert.Equal(t, len(container), EncodedSize(freq, &codes))
}

func TestParseHeader(t *testing.T) {
	container := testutil.MustDecodeHex("0102611300620100ffffe004")
	hdr, packed, err := ParseHeader(container)
	require.NoError(t, err)

	assert.Equal(t, FlagHuffman, hdr.Flag)
	assert.Equal(t, uint32(19), hdr.Frequencies['a'])
	assert.Equal(t, uint32(1), hdr.Frequencies['b'])
	assert.Equal(t, 2, hdr.Frequencies.Distinct())
	assert.Equal(t, uint8(4), hdr.Padding)
	assert.Equal(t, []byte{0xff, 0xff, 0xe0}, packed)
}

func TestDecode_Corrupt(t *testing.T) {
	var vectors = []struct {
		desc  string
		input string
	}{
		{"unknown flag", "03"},
		{"unknown flag 0xff", "ff00"},
		{"missing distinct count", "01"},
		{"truncated entries", "01026113"},
		{"truncated wide entries", "0201611300"},
		{"zero count", "0101610000"},
		{"duplicate value", "01026101006101000000"},
		{"missing padding count", "0101610100"},
		{"padding too large", "010161010000" + "08"},
		{"no packed bytes", "010161010005"},
		{"total exceeds bits", "01016110000000"},
		{"leftover bits", "01016102000000"},
		{"one bit in a single-symbol stream", "0101610100" + "8007"},
		{"ends inside a code", "0103610100620100630100" + "a005"},
	}

	for _, v := range vectors {
		t.Run(v.desc, func(t *testing.T) {
			input := testutil.MustDecodeHex(v.input)
			var err error
			require.NotPanics(t, func() { _, err = Decode(input) })
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

// TestDecode_Mutations flips bytes of valid containers.  Decoding may fail
// or produce different output, but it must never panic.
func TestDecode_Mutations(t *testing.T) {
	rnd := testutil.NewRand(11)
	for trial := 0; trial < 200; trial++ {
		data := rnd.Skewed(50+rnd.Intn(500), 2+rnd.Intn(40))
		container, _, err := Encode(data)
		require.NoError(t, err)

		mutated := append([]byte(nil), container...)
		for i := 0; i < 1+rnd.Intn(4); i++ {
			mutated[rnd.Intn(len(mutated))] ^= byte(1 + rnd.Intn(255))
		}
		truncated := mutated[:rnd.Intn(len(mutated))]

		for _, input := range [][]byte{mutated, truncated} {
			require.NotPanics(t, func() { _, _ = Decode(input) }, "trial %d", trial)
		}
	}
}

// TestCompressionRatio compares against huff0, another static Huffman coder.
// Our codes are unrestricted Huffman codes, so our packed payload can never
// be larger than huff0's whole output.
func TestCompressionRatio(t *testing.T) {
	var report strings.Builder
	tw := tabwriter.NewWriter(&report, 0, 8, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "input\tsize\thuffpack\thuff0\t")

	rnd := testutil.NewRand(12)
	inputs := []struct {
		name string
		data []byte
	}{
		{"skewed/4", rnd.Skewed(1<<16, 4)},
		{"skewed/16", rnd.Skewed(1<<16, 16)},
		{"skewed/64", rnd.Skewed(1<<16, 64)},
		{"text", testutil.ResizeData([]byte("the quick brown fox jumps over the lazy dog. "), 1<<16)},
	}
	for _, in := range inputs {
		container, flag, err := Encode(in.data)
		require.NoError(t, err)
		require.True(t, flag.IsHuffman(), in.name)

		var s huff0.Scratch
		theirs, _, err := huff0.Compress1X(in.data, &s)
		require.NoError(t, err, in.name)

		_, packed, err := ParseHeader(container)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(packed), len(theirs), in.name)

		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t\n", in.name, len(in.data),
			float64(len(container))/float64(len(in.data)),
			float64(len(theirs))/float64(len(in.data)))
	}
	tw.Flush()
	t.Log("\n" + report.String())
}

func BenchmarkEncode(b *testing.B) {
	data := testutil.NewRand(13).Skewed(1<<16, 32)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Encode(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	data := testutil.NewRand(13).Skewed(1<<16, 32)
	container, _, _ := Encode(data)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(container); err != nil {
			b.Fatal(err)
		}
	}
}

func TestDecodePayload_MatchesDecode(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("a"),
		testutil.Repeat('x', 238),
		testutil.NewRand(24).Skewed(5000, 12),
	}
	for _, data := range inputs {
		container, flag, err := Encode(data)
		require.NoError(t, err)

		hdr, payload, err := ParseHeader(container)
		require.NoError(t, err)
		assert.Equal(t, flag, hdr.Flag)

		out, err := decodePayload(&hdr, payload)
		require.NoError(t, err)
		assert.Equal(t, len(data), len(out))
		assert.True(t, bytes.Equal(data, out))
	}
}
