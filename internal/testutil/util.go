package testutil

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"sort"
)

// ResizeData resizes the input.  If n <= len(input), the input is truncated.
// Otherwise the input is replicated to fill the missing bytes.
//
// If n > len(input), then len(input) must be > 0.
func ResizeData(input []byte, n int) []byte {
	if len(input) >= n {
		return input[:n]
	}
	if len(input) == 0 {
		panic("testutil: unable to replicate an empty input")
	}
	output := make([]byte, n)
	for i := range output {
		output[i] = input[i%len(input)]
	}
	return output
}

// Repeat returns n copies of the byte b.
func Repeat(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

// MustDecodeHex must decode a hexadecimal string or else panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BuggyReader returns Err after N bytes have been read from R.
type BuggyReader struct {
	R   io.Reader
	N   int64 // Number of valid bytes to read
	Err error // Return this error after N bytes
}

func (br *BuggyReader) Read(buf []byte) (int, error) {
	if br.N <= 0 {
		return 0, br.Err
	}
	if int64(len(buf)) > br.N {
		buf = buf[:br.N]
	}
	n, err := br.R.Read(buf)
	br.N -= int64(n)
	if err == nil && br.N <= 0 {
		return n, br.Err
	}
	return n, err
}

// MemStorage is an in-memory file store with injectable failures.  It has
// the same method set as huffpack.Storage.
type MemStorage struct {
	Files map[string][]byte

	// ReadErr and WriteErr, if non-nil, are returned by every read or
	// write instead of touching Files.
	ReadErr  error
	WriteErr error

	// OpenFaults makes Open hand out a BuggyReader for the named files:
	// the reader fails with FaultErr after the given number of bytes,
	// while Open still reports the full size.
	OpenFaults map[string]int64
	FaultErr   error
}

// NewMemStorage returns an empty MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{Files: make(map[string][]byte)}
}

// ReadFile returns a copy of the named file.
func (m *MemStorage) ReadFile(name string) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	b, ok := m.Files[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return append([]byte(nil), b...), nil
}

// WriteFile stores a copy of data under name.
func (m *MemStorage) WriteFile(name string, data []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Files[name] = append([]byte(nil), data...)
	return nil
}

// Open returns a reader over the named file and its size.
func (m *MemStorage) Open(name string) (io.ReadCloser, int64, error) {
	b, err := m.ReadFile(name)
	if err != nil {
		return nil, 0, err
	}
	var r io.Reader = bytes.NewReader(b)
	if n, ok := m.OpenFaults[name]; ok {
		r = &BuggyReader{R: r, N: n, Err: m.FaultErr}
	}
	return io.NopCloser(r), int64(len(b)), nil
}

// Names returns the stored file names in sorted order.
func (m *MemStorage) Names() []string {
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
