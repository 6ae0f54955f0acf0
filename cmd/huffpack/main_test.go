package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/huffpack"
	"github.com/chronos-tachyon/huffpack/internal/testutil"
)

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "ab.huf")
	require.NoError(t, os.WriteFile(name, testutil.MustDecodeHex("0102611300620100ffffe004"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, inspect(&buf, huffpack.OSStorage{}, name))

	expect := "flag:     huffman\n" +
		"size:     12.00B\n" +
		"original: 20.00B\n" +
		"distinct: 2\n" +
		"packed:   3 bytes, 4 padding bits\n" +
		"CodeTable{\n" +
		"\tMinSize() = 1\n" +
		"\tMaxSize() = 1\n" +
		"\tLookup(0x61) = \"1\"\n" +
		"\tLookup(0x62) = \"0\"\n" +
		"}\n"
	assert.Equal(t, expect, buf.String())
}

func TestInspect_Raw(t *testing.T) {
	mem := testutil.NewMemStorage()
	mem.Files["a.huf"] = testutil.MustDecodeHex("0061")

	var buf bytes.Buffer
	require.NoError(t, inspect(&buf, mem, "a.huf"))
	assert.Equal(t, "flag:     raw\nsize:     2.00B\noriginal: 1.00B\n", buf.String())
}

func TestInspect_Errors(t *testing.T) {
	mem := testutil.NewMemStorage()
	mem.Files["bad.huf"] = []byte{0x07}

	var buf bytes.Buffer
	assert.ErrorIs(t, inspect(&buf, mem, "bad.huf"), huffpack.ErrCorrupt)
	assert.Error(t, inspect(&buf, mem, "missing.huf"))
	assert.Empty(t, buf.String())
}

func TestCompare(t *testing.T) {
	mem := testutil.NewMemStorage()
	mem.Files["x"] = []byte("hello")
	mem.Files["y"] = []byte("hello")
	mem.Files["z"] = []byte("jello")
	codec := huffpack.New(huffpack.WithStorage(mem))

	var buf bytes.Buffer
	equal, err := compare(&buf, codec, "x", "y")
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = compare(&buf, codec, "x", "z")
	require.NoError(t, err)
	assert.False(t, equal)
	assert.Equal(t, "ok: equal true\nok: equal false\n", buf.String())

	_, err = compare(&buf, codec, "x", "missing")
	assert.ErrorIs(t, err, huffpack.ErrIO)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	r := huffpack.Result{Status: huffpack.StatusOK, Flag: huffpack.FlagHuffman, InputSize: 2048, OutputSize: 1024}
	require.NoError(t, report(&buf, r, nil))
	assert.Equal(t, "ok: huffman, in 2.00KB, out 1.00KB, ratio 0.500\n", buf.String())

	assert.ErrorIs(t, report(&buf, huffpack.Result{}, huffpack.ErrIO), huffpack.ErrIO)
}

func TestFormatSize(t *testing.T) {
	type testRow struct {
		n      int64
		expect string
	}
	testData := [...]testRow{
		{0, "0.00"},
		{12, "12.00"},
		{1023, "1023.00"},
		{1024, "1.00K"},
		{1536, "1.50K"},
		{3 << 20, "3.00M"},
	}
	for _, row := range testData {
		assert.Equal(t, row.expect, formatSize(row.n), "formatSize(%d)", row.n)
	}
}
