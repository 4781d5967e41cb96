package mat44

import (
	"errors"
	"math"

	"phongtracer/vmath/mat33"
	"phongtracer/vmath/vec4"
)

// ErrSingular is returned when inverting a matrix whose determinant is zero or
// not finite.
var ErrSingular = errors.New("matrix is singular")

// T is a row-major 4x4 matrix.
type T [16]float64

func Identity() T {
	return T{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromRows builds a matrix from its rows, top to bottom.
func FromRows(rows [4][4]float64) T {
	m := T{}
	for r := 0; r < 4; r++ {
		copy(m[r*4:r*4+4], rows[r][:])
	}
	return m
}

func (m T) At(r, c int) float64 {
	return m[r*4+c]
}

func MulMM(a, b T) T {
	result := T{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i*4+j] += a[i*4+k] * b[k*4+j]
			}
		}
	}
	return result
}

// MulMV treats b as a column vector.
func MulMV(a T, b vec4.T) vec4.T {
	return vec4.T{
		a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[1] + a[6]*b[2] + a[7]*b[3],
		a[8]*b[0] + a[9]*b[1] + a[10]*b[2] + a[11]*b[3],
		a[12]*b[0] + a[13]*b[1] + a[14]*b[2] + a[15]*b[3],
	}
}

func Transpose(m T) T {
	transpose := T{}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			transpose[c*4+r] = m[r*4+c]
		}
	}
	return transpose
}

// Submatrix drops row dr and column dc.
func Submatrix(m T, dr, dc int) mat33.T {
	result := mat33.T{}
	i := 0
	for r := 0; r < 4; r++ {
		if r == dr {
			continue
		}
		for c := 0; c < 4; c++ {
			if c == dc {
				continue
			}
			result.Elts[i] = m[r*4+c]
			i++
		}
	}
	return result
}

func Minor(m T, r, c int) float64 {
	return mat33.Determinant(Submatrix(m, r, c))
}

func Cofactor(m T, r, c int) float64 {
	if (r+c)%2 == 1 {
		return -Minor(m, r, c)
	}
	return Minor(m, r, c)
}

// Determinant expands along row 0.
func Determinant(m T) float64 {
	det := 0.0
	for c := 0; c < 4; c++ {
		det += m[c] * Cofactor(m, 0, c)
	}
	return det
}

// Inverse computes the inverse by cofactors.  The cofactor of (r, c) lands at
// (c, r) of the result.
func Inverse(m T) (T, error) {
	det := Determinant(m)
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return T{}, ErrSingular
	}

	inv := T{}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			inv[c*4+r] = Cofactor(m, r, c) / det
		}
	}
	return inv, nil
}

// Equal compares element-wise with the same tolerance as vec4.Equal.
func Equal(a, b T) bool {
	for i := 0; i < 16; i++ {
		if !(math.Abs(a[i]-b[i]) < vec4.Epsilon) {
			return false
		}
	}
	return true
}
