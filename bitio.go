package huffpack

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// BitWriter packs codes into bytes, most significant bit first, and keeps
// count of the bits written.
type BitWriter struct {
	bw   *bitio.Writer
	bits uint64
}

// NewBitWriter returns a BitWriter that writes whole bytes to w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{bw: bitio.NewWriter(w)}
}

// WriteCode appends the bits of hc to the stream.
func (w *BitWriter) WriteCode(hc Code) error {
	if err := w.bw.WriteBits(hc.Bits, hc.Size); err != nil {
		return err
	}
	w.bits += uint64(hc.Size)
	return nil
}

// BitsWritten reports the number of bits written so far, not counting
// padding.
func (w *BitWriter) BitsWritten() uint64 { return w.bits }

// Finish pads the last byte with zero bits up to the next byte boundary and
// flushes it.  It returns the number of padding bits, 0 through 7.
func (w *BitWriter) Finish() (padding uint8, err error) {
	if _, err = w.bw.Align(); err != nil {
		return 0, err
	}
	if err = w.bw.Close(); err != nil {
		return 0, err
	}
	return numPads(w.bits), nil
}

// BitReader reads single bits, most significant bit first, from a packed
// byte slice whose final byte carries padding bits.  The padding bits are
// never returned.
type BitReader struct {
	br    *bitio.Reader
	avail uint64
	read  uint64
}

// NewBitReader returns a BitReader over packed that yields exactly
// 8*len(packed)-padding bits.
func NewBitReader(packed []byte, padding uint8) *BitReader {
	total := 8 * uint64(len(packed))
	var avail uint64
	if uint64(padding) < total {
		avail = total - uint64(padding)
	}
	return &BitReader{br: bitio.NewReader(bytes.NewReader(packed)), avail: avail}
}

// ReadBit reads the next bit.  Reading past the last data bit returns
// io.ErrUnexpectedEOF.
func (r *BitReader) ReadBit() (bool, error) {
	if r.read >= r.avail {
		return false, io.ErrUnexpectedEOF
	}
	bit, err := r.br.ReadBool()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return false, err
	}
	r.read++
	return bit, nil
}

// BitsRead reports the number of bits consumed so far.
func (r *BitReader) BitsRead() uint64 { return r.read }

// Remaining reports the number of data bits not yet consumed.
func (r *BitReader) Remaining() uint64 { return r.avail - r.read }

// numPads computes number of bits needed to pad n bits to a byte alignment.
func numPads(n uint64) uint8 {
	return uint8(-n & 7)
}
