package conway

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Digests of the full tables, cross-checked against an independent
// implementation of the minimal-excludant construction. Any change here breaks
// interoperability with existing shares.
const (
	mulTblSHA256 = "6c5a2b2766c7f36f30c73a6dc193f68966a4480e1f87f13dc1aaea70d44b24f1"
	invTblSHA256 = "6380ab2f16ff702987d3db89305abc1d4f794fd0179a27a2f920d3efc8e6c61c"
)

func TestTableDigests(t *testing.T) {
	Init()

	h := sha256.New()
	for i := 0; i < 256; i++ {
		h.Write(mulTbl[i][:])
	}
	assert.Equal(t, mulTblSHA256, hex.EncodeToString(h.Sum(nil)), "multiplication table")

	sum := sha256.Sum256(invTbl[:])
	assert.Equal(t, invTblSHA256, hex.EncodeToString(sum[:]), "inverse table")
}

func TestKnownProducts(t *testing.T) {
	// Spot values of the nim-product, matching published tables of Conway's
	// field on the integers 0..255.
	tests := []struct {
		a, b, want byte
	}{
		{2, 2, 3},
		{2, 3, 1},
		{3, 3, 2},
		{4, 4, 6},
		{6, 14, 2},
		{7, 9, 8},
		{8, 8, 13},
		{16, 16, 24},
		{33, 77, 160},
		{50, 50, 47},
		{80, 200, 40},
		{100, 200, 62},
		{123, 45, 96},
		{200, 200, 180},
		{255, 255, 156},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Mul(tt.a, tt.b), "mul(%d,%d)", tt.a, tt.b)
	}
}

func TestKnownInverses(t *testing.T) {
	tests := []struct {
		a, want byte
	}{
		{1, 1},
		{2, 3},
		{3, 2},
		{4, 15},
		{5, 12},
		{7, 11},
		{10, 8},
		{100, 57},
		{128, 238},
		{200, 140},
		{255, 48},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Inv(tt.a), "inv(%d)", tt.a)
	}
}

func TestFieldAxioms(t *testing.T) {
	t.Run("MultiplicativeIdentity", func(t *testing.T) {
		for a := 0; a < 256; a++ {
			assert.Equal(t, byte(a), Mul(1, byte(a)))
			assert.Equal(t, byte(a), Mul(byte(a), 1))
		}
	})

	t.Run("ZeroAnnihilates", func(t *testing.T) {
		for a := 0; a < 256; a++ {
			assert.Equal(t, byte(0), Mul(0, byte(a)))
			assert.Equal(t, byte(0), Mul(byte(a), 0))
		}
	})

	t.Run("Commutativity", func(t *testing.T) {
		for a := 0; a < 256; a++ {
			for b := 0; b < a; b++ {
				require.Equal(t, Mul(byte(a), byte(b)), Mul(byte(b), byte(a)))
			}
		}
	})

	t.Run("Inverse", func(t *testing.T) {
		for a := 1; a < 256; a++ {
			require.Equal(t, byte(1), Mul(byte(a), Inv(byte(a))), "a=%d", a)
		}
	})

	t.Run("Associativity", func(t *testing.T) {
		// Sampled: the full triple product space is 16M entries.
		for a := 0; a < 256; a += 7 {
			for b := 0; b < 256; b += 11 {
				for c := 0; c < 256; c += 13 {
					x, y, z := byte(a), byte(b), byte(c)
					require.Equal(t, Mul(Mul(x, y), z), Mul(x, Mul(y, z)))
				}
			}
		}
	})

	t.Run("Distributivity", func(t *testing.T) {
		for a := 0; a < 256; a += 5 {
			for b := 0; b < 256; b += 9 {
				for c := 0; c < 256; c += 17 {
					x, y, z := byte(a), byte(b), byte(c)
					require.Equal(t, Mul(x, Add(y, z)), Add(Mul(x, y), Mul(x, z)))
				}
			}
		}
	})
}

func TestDiv(t *testing.T) {
	for a := 0; a < 256; a += 3 {
		for b := 1; b < 256; b += 5 {
			q := Div(byte(a), byte(b))
			assert.Equal(t, byte(a), Mul(q, byte(b)))
		}
	}
}

func TestInvZeroPanics(t *testing.T) {
	assert.Panics(t, func() { Inv(0) })
}

func TestMulVect(t *testing.T) {
	d := make([]byte, 300)
	for i := range d {
		d[i] = byte(i * 31)
	}

	for _, c := range []byte{0, 1, 2, 77, 255} {
		p := make([]byte, len(d))
		MulVect(c, d, p)
		for i := range d {
			require.Equal(t, Mul(c, d[i]), p[i])
		}

		q := make([]byte, len(d))
		copy(q, p)
		MulVectXOR(c, d, q)
		for i := range d {
			require.Equal(t, p[i]^Mul(c, d[i]), q[i])
		}
	}
}

func BenchmarkMulVect(b *testing.B) {
	d := make([]byte, 4096)
	p := make([]byte, 4096)
	for i := range d {
		d[i] = byte(i)
	}
	Init()
	b.SetBytes(int64(len(d)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MulVectXOR(173, d, p)
	}
}
