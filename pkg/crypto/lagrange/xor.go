package lagrange

import (
	xor "github.com/templexxx/xorsimd"

	"github.com/shsecret/shsecret/pkg/crypto/conway"
)

// mulXorChunk applies out ^= c*in through a per-worker scratch buffer so the
// accumulating XOR runs over whole vectors instead of byte by byte. Used by
// the chunked parallel path; results are bit-identical to MulVectXOR.
func mulXorChunk(c byte, in, out, scratch []byte) {
	s := scratch[:len(in)]
	conway.MulVect(c, in, s)
	xor.Bytes(out, out, s)
}
