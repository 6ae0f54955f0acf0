// Package testutil is a collection of testing helpers for huffpack.
package testutil

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// Rand is a deterministic pseudo-random generator.  Unlike math/rand, its
// output is fixed across Go releases, so generated test inputs (and hence
// expected container sizes) never drift.
type Rand struct {
	blk cipher.Block
	buf [aes.BlockSize]byte
}

// NewRand returns a Rand seeded with seed.
func NewRand(seed int) *Rand {
	var key [aes.BlockSize]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	blk, err := aes.NewCipher(key[:])
	if err != nil {
		panic(err)
	}
	return &Rand{blk: blk}
}

func (r *Rand) next() []byte {
	r.blk.Encrypt(r.buf[:], r.buf[:])
	return r.buf[:]
}

// Uint64 returns a pseudo-random 64-bit value.
func (r *Rand) Uint64() uint64 {
	return binary.LittleEndian.Uint64(r.next())
}

// Intn returns a value in [0, n).  It panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("testutil: Intn called with n <= 0")
	}
	return int(r.Uint64() % uint64(n))
}

// Bytes returns n pseudo-random bytes.
func (r *Rand) Bytes(n int) []byte {
	b := make([]byte, n)
	for bb := b; len(bb) > 0; {
		cnt := copy(bb, r.next())
		bb = bb[cnt:]
	}
	return b
}

// Skewed returns n bytes drawn from an alphabet of the given size, where
// value i is roughly twice as likely as value i+1.  The result compresses
// well under a Huffman code.
func (r *Rand) Skewed(n, alphabet int) []byte {
	if alphabet < 1 || alphabet > 256 {
		panic("testutil: alphabet must be in [1, 256]")
	}
	b := make([]byte, n)
	for i := range b {
		v := 0
		for v < alphabet-1 && r.Intn(2) == 1 {
			v++
		}
		b[i] = byte(v)
	}
	return b
}
