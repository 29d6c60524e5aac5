// Package lagrange implements Lagrange interpolation over the Conway field,
// the transform at the heart of the secret sharing scheme: given value buffers
// at distinct input points, it evaluates the unique interpolating polynomial
// at a set of output points, byte position by byte position.
package lagrange

import (
	"runtime"
	"sync"

	"github.com/shsecret/shsecret/pkg/crypto/conway"
)

// MaxPoints is the number of elements in the field, and therefore the largest
// meaningful point count on either side of the transform.
const MaxPoints = 256

// crossProducts fills the two normalization vectors of the interpolation
// formula: inCross[j] is the product over k != j of (x_j + x_k), the value at
// x_j of the product polynomial with factor j removed; outCross[i] is the full
// product evaluated at output point z_i. Both are computed once per transform,
// independent of buffer length.
func crossProducts(inPoints, outPoints []byte, inCross, outCross *[MaxPoints]byte) {
	for j := range inPoints {
		c := byte(1)
		for k := range inPoints {
			if k != j {
				c = conway.Mul(c, inPoints[j]^inPoints[k])
			}
		}
		inCross[j] = c
	}
	for i := range outPoints {
		c := byte(1)
		for k := range inPoints {
			c = conway.Mul(c, outPoints[i]^inPoints[k])
		}
		outCross[i] = c
	}
}

// Transform evaluates the interpolating polynomial defined by inValues at
// inPoints and writes its values at outPoints into outValues.
//
// Caller contract, not validated here: inPoints are pairwise distinct, every
// buffer has the same length, both point counts are at most MaxPoints, and
// input buffers do not alias output buffers. A violated contract may panic or
// produce meaningless output. The transform is deterministic and
// allocation-free; distinct calls may run concurrently.
func Transform(inPoints, outPoints []byte, inValues, outValues [][]byte) {
	if len(inPoints) == 0 {
		return
	}

	var inCross, outCross [MaxPoints]byte
	crossProducts(inPoints, outPoints, &inCross, &outCross)

	ln := len(inValues[0])
	transformRange(inPoints, outPoints, inValues, outValues, &inCross, &outCross, 0, ln, nil)
}

// TransformParallel computes the same bits as Transform with the byte range
// chunked across workers goroutines (workers <= 0 selects GOMAXPROCS). Byte
// positions are fully independent, so workers share only the read-only cross
// products and field tables.
func TransformParallel(inPoints, outPoints []byte, inValues, outValues [][]byte, workers int) {
	if len(inPoints) == 0 {
		return
	}

	var inCross, outCross [MaxPoints]byte
	crossProducts(inPoints, outPoints, &inCross, &outCross)

	ln := len(inValues[0])
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > ln {
		workers = ln
	}
	if workers <= 1 {
		transformRange(inPoints, outPoints, inValues, outValues, &inCross, &outCross, 0, ln, nil)
		return
	}

	chunk := (ln + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < ln; lo += chunk {
		hi := lo + chunk
		if hi > ln {
			hi = ln
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			scratch := make([]byte, hi-lo)
			transformRange(inPoints, outPoints, inValues, outValues, &inCross, &outCross, lo, hi, scratch)
		}(lo, hi)
	}
	wg.Wait()
}

// transformRange evaluates output bytes in [lo, hi). For each output point the
// per-input coefficient out_cross[i] / (in_cross[j] * (z_i + x_j)) is constant
// across byte positions, so input buffers are walked with coefficient-row
// vector multiplies instead of per-byte table chains. When an output point
// coincides with an input point the formula would divide by zero; the
// polynomial equals the input there, so the engine copies it instead.
func transformRange(
	inPoints, outPoints []byte,
	inValues, outValues [][]byte,
	inCross, outCross *[MaxPoints]byte,
	lo, hi int,
	scratch []byte,
) {
	for i := range outPoints {
		out := outValues[i][lo:hi]

		coincident := -1
		for j := range inPoints {
			if outPoints[i] == inPoints[j] {
				coincident = j
				break
			}
		}
		if coincident >= 0 {
			copy(out, inValues[coincident][lo:hi])
			continue
		}

		for j := range inPoints {
			c := conway.Mul(outCross[i], conway.Inv(conway.Mul(inCross[j], outPoints[i]^inPoints[j])))
			in := inValues[j][lo:hi]
			switch {
			case j == 0:
				conway.MulVect(c, in, out)
			case scratch != nil:
				mulXorChunk(c, in, out, scratch)
			default:
				conway.MulVectXOR(c, in, out)
			}
		}
	}
}
