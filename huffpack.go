package huffpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/chronos-tachyon/huffpack/logger"
)

// Status is the outcome of an operation.
type Status byte

const (
	// StatusOK reports that the operation completed.
	StatusOK Status = iota

	// StatusError reports that the operation failed and wrote nothing.
	StatusError
)

// String returns "ok" or "error".
func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "error"
}

// Result reports the outcome of Compress or Decompress.
type Result struct {
	Status Status

	// Flag is the container form that was written (Compress) or read
	// (Decompress).
	Flag Flag

	// InputSize and OutputSize are the byte counts of the file read and
	// the file written.
	InputSize  int64
	OutputSize int64
}

// Ratio returns OutputSize / InputSize, or 1 for an empty input.
func (r Result) Ratio() float64 {
	if r.InputSize == 0 {
		return 1
	}
	return float64(r.OutputSize) / float64(r.InputSize)
}

// Codec compresses and decompresses whole files.  Every call reads its
// input fully into memory and shares no state with other calls.
type Codec struct {
	storage Storage
	log     logger.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithStorage makes the Codec read and write files through s.
func WithStorage(s Storage) Option {
	return func(c *Codec) { c.storage = s }
}

// WithLogger makes the Codec report each outcome to l.
func WithLogger(l logger.Logger) Option {
	return func(c *Codec) { c.log = l }
}

// New returns a Codec.  By default it uses OSStorage and logs nothing.
func New(opts ...Option) *Codec {
	c := &Codec{storage: OSStorage{}, log: logger.Discard}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = New()

// Compress compresses src into dst using the default Codec.
func Compress(src, dst string) (Result, error) { return defaultCodec.Compress(src, dst) }

// Decompress decompresses src into dst using the default Codec.
func Decompress(src, dst string) (Result, error) { return defaultCodec.Decompress(src, dst) }

// Compare reports whether two files are identical using the default Codec.
func Compare(a, b string) (bool, error) { return defaultCodec.Compare(a, b) }

// Compress reads src, encodes it, and writes the container to dst.
func (c *Codec) Compress(src, dst string) (Result, error) {
	result := Result{Status: StatusError, Flag: FlagEmpty}

	data, err := c.storage.ReadFile(src)
	if err != nil {
		return result, c.fail("compress", fmt.Errorf("%w: read %s: %w", ErrIO, src, err))
	}
	result.InputSize = int64(len(data))

	out, flag, err := Encode(data)
	if err != nil {
		return result, c.fail("compress", fmt.Errorf("encode %s: %w", src, err))
	}

	if err = c.storage.WriteFile(dst, out); err != nil {
		return result, c.fail("compress", fmt.Errorf("%w: write %s: %w", ErrIO, dst, err))
	}

	result.Status = StatusOK
	result.Flag = flag
	result.OutputSize = int64(len(out))
	c.log.Infof("compress %s -> %s: %s, %d -> %d bytes", src, dst, flag, result.InputSize, result.OutputSize)
	return result, nil
}

// Decompress reads the container src, decodes it, and writes the original
// bytes to dst.  Nothing is written to dst if the container is corrupt.
func (c *Codec) Decompress(src, dst string) (Result, error) {
	result := Result{Status: StatusError, Flag: FlagEmpty}

	container, err := c.storage.ReadFile(src)
	if err != nil {
		return result, c.fail("decompress", fmt.Errorf("%w: read %s: %w", ErrIO, src, err))
	}
	result.InputSize = int64(len(container))

	hdr, payload, err := ParseHeader(container)
	if err != nil {
		return result, c.fail("decompress", fmt.Errorf("decode %s: %w", src, err))
	}
	result.Flag = hdr.Flag

	data, err := decodePayload(&hdr, payload)
	if err != nil {
		return result, c.fail("decompress", fmt.Errorf("decode %s: %w", src, err))
	}

	if err = c.storage.WriteFile(dst, data); err != nil {
		return result, c.fail("decompress", fmt.Errorf("%w: write %s: %w", ErrIO, dst, err))
	}

	result.Status = StatusOK
	result.OutputSize = int64(len(data))
	c.log.Infof("decompress %s -> %s: %s, %d -> %d bytes", src, dst, hdr.Flag, result.InputSize, result.OutputSize)
	return result, nil
}

const compareChunk = 32 << 10

// Compare reports whether files a and b hold the same bytes.  Files of
// different sizes are unequal without reading their contents.
func (c *Codec) Compare(a, b string) (equal bool, err error) {
	ra, sizeA, err := c.storage.Open(a)
	if err != nil {
		return false, c.fail("compare", fmt.Errorf("%w: open %s: %w", ErrIO, a, err))
	}
	defer ra.Close()

	rb, sizeB, err := c.storage.Open(b)
	if err != nil {
		return false, c.fail("compare", fmt.Errorf("%w: open %s: %w", ErrIO, b, err))
	}
	defer rb.Close()

	if sizeA != sizeB {
		c.log.Infof("compare %s %s: sizes differ (%d != %d)", a, b, sizeA, sizeB)
		return false, nil
	}

	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	for {
		na, errA := io.ReadFull(ra, bufA)
		nb, errB := io.ReadFull(rb, bufB)
		doneA, errA := endOfStream(errA)
		doneB, errB := endOfStream(errB)
		if errA != nil {
			return false, c.fail("compare", fmt.Errorf("%w: read %s: %w", ErrIO, a, errA))
		}
		if errB != nil {
			return false, c.fail("compare", fmt.Errorf("%w: read %s: %w", ErrIO, b, errB))
		}
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			c.log.Infof("compare %s %s: contents differ", a, b)
			return false, nil
		}
		if doneA || doneB {
			// Equal sizes and equal prefixes; a file that changed
			// underneath us shows up as a length mismatch here.
			equal = doneA && doneB
			c.log.Infof("compare %s %s: equal=%t", a, b, equal)
			return equal, nil
		}
	}
}

// endOfStream splits the error from io.ReadFull into "reached the end" and a
// real read error.
func endOfStream(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true, nil
	}
	return false, err
}

func (c *Codec) fail(op string, err error) error {
	c.log.Errorf("%s: %v", op, err)
	return err
}
