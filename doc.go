// Package huffpack implements a whole-file, byte-oriented Huffman codec.
//
// Compression counts the occurrences of each byte value, builds a Huffman
// tree from the counts, and packs the code of every input byte into a
// container.  The counts are stored in the container so that decompression
// can rebuild the identical tree.  Inputs that would not shrink are stored
// verbatim instead.
//
// Container layout:
//
//     (empty)                  zero-length input
//
//     0x00 data...             raw: the input, verbatim
//
//     0x01 n {value count16}*  Huffman-encoded, 2-byte little-endian counts
//          packed... padding
//
//     0x02 n {value count32}*  Huffman-encoded, 4-byte little-endian counts,
//          packed... padding   used only when some count exceeds 65535
//
// n is the number of distinct byte values, with 0 standing for 256.  The
// packed codeword stream is most significant bit first; padding (0..7) is
// the number of unused low bits in its last byte.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffpack
