// Package conway implements GF(256) arithmetic over the Conway field:
// addition is XOR and multiplication is the nim-product, defined by the
// minimal-excludant recurrence
//
//	a*b = mex{ (a'*b) xor (a'*b') xor (a*b') : a' < a, b' < b }
//
// This construction is canonical: it depends on no choice of irreducible
// polynomial, so the resulting table is unique. It is NOT the polynomial-basis
// GF(256) used by AES or Reed-Solomon codes; shares produced over this field
// can only be recombined over this field.
package conway

import "sync"

var (
	mulTbl [256][256]byte
	invTbl [256]byte

	tblOnce sync.Once
)

// Init builds the multiplication and inverse tables. It is called implicitly
// by every field operation, but callers that share the field across goroutines
// may call it once up front; after it returns the tables are read-only and
// all operations are safe for concurrent use.
func Init() {
	tblOnce.Do(buildTables)
}

// buildTables fills mulTbl by the minimal-excludant recurrence, iteratively.
// The table is symmetric, so only the lower triangle is computed. Row and
// column 0 stay zero (the excludant set is empty there and mex{} = 0).
func buildTables() {
	var excluded [256]bool

	for a := 1; a < 256; a++ {
		for b := 1; b <= a; b++ {
			for i := range excluded {
				excluded[i] = false
			}
			for ap := 0; ap < a; ap++ {
				apRow := &mulTbl[ap]
				aRow := &mulTbl[a]
				for bp := 0; bp < b; bp++ {
					excluded[apRow[b]^apRow[bp]^aRow[bp]] = true
				}
			}
			n := 0
			for excluded[n] {
				n++
			}
			mulTbl[a][b] = byte(n)
			mulTbl[b][a] = byte(n)
		}
	}

	for a := 1; a < 256; a++ {
		row := &mulTbl[a]
		for b := 1; b < 256; b++ {
			if row[b] == 1 {
				invTbl[a] = byte(b)
				break
			}
		}
	}
}

// Add returns a+b in GF(256), which is also a-b.
func Add(a, b byte) byte {
	return a ^ b
}

// Mul returns the nim-product of a and b.
func Mul(a, b byte) byte {
	Init()
	return mulTbl[a][b]
}

// Inv returns the multiplicative inverse of a. It panics for a = 0, which has
// no inverse; callers must guard the divisor themselves.
func Inv(a byte) byte {
	Init()
	if a == 0 {
		panic("conway: inverse of zero")
	}
	return invTbl[a]
}

// Div returns a/b. It panics for b = 0.
func Div(a, b byte) byte {
	return Mul(a, Inv(b))
}

// MulRow returns the 256-byte multiplication row for the constant c, for
// callers that multiply long buffers by a fixed coefficient. The row is
// read-only.
func MulRow(c byte) *[256]byte {
	Init()
	return &mulTbl[c]
}

// MulVect writes p[i] = c * d[i] for every i.
func MulVect(c byte, d, p []byte) {
	Init()
	t := mulTbl[c][:256]
	for i := 0; i < len(d); i++ {
		p[i] = t[d[i]]
	}
}

// MulVectXOR updates p[i] ^= c * d[i] for every i.
func MulVectXOR(c byte, d, p []byte) {
	Init()
	t := mulTbl[c][:256]
	for i := 0; i < len(d); i++ {
		p[i] ^= t[d[i]]
	}
}
