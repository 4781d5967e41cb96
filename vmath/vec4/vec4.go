// Package vec4 implements homogeneous 4-component tuples.
//
// A tuple with w == 1 is a point and a tuple with w == 0 is a free vector.
// The arithmetic below does not enforce that distinction; point - point gives
// a vector and point + vector gives a point only because of how w combines.
package vec4

import (
	"errors"
	"math"
)

// Epsilon is the per-component tolerance used by Equal.
const Epsilon = 1e-7

// ErrDegenerateVector is returned by NormalizeChecked for zero-length input.
var ErrDegenerateVector = errors.New("cannot normalize a zero-length vector")

type T [4]float64

func Point(x, y, z float64) T {
	return T{x, y, z, 1.0}
}

func Vector(x, y, z float64) T {
	return T{x, y, z, 0.0}
}

func (v T) IsPoint() bool {
	return v[3] == 1.0
}

func (v T) IsVector() bool {
	return v[3] == 0.0
}

func (v T) X() float64 { return v[0] }
func (v T) Y() float64 { return v[1] }
func (v T) Z() float64 { return v[2] }

// Norm is the Euclidean length over all four components.
func (v T) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3])
}

// Normalize divides v by its length.  A zero-length v yields NaN components;
// use NormalizeChecked where the input is not known to be non-degenerate.
func Normalize(v T) T {
	return DivVS(v, v.Norm())
}

func NormalizeChecked(v T) (T, error) {
	l := v.Norm()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return T{}, ErrDegenerateVector
	}
	return DivVS(v, l), nil
}

func AddVV(a, b T) T {
	return T{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
		a[3] + b[3],
	}
}

func SubVV(a, b T) T {
	return T{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
		a[3] - b[3],
	}
}

func Negate(a T) T {
	return T{-a[0], -a[1], -a[2], -a[3]}
}

func MulVS(a T, b float64) T {
	return T{
		a[0] * b,
		a[1] * b,
		a[2] * b,
		a[3] * b,
	}
}

// DivVS multiplies by the reciprocal of b.
func DivVS(a T, b float64) T {
	return MulVS(a, 1.0/b)
}

// IProd is the dot product over all four components.
func IProd(a, b T) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// CProd is the cross product of two vectors.  The w components are ignored and
// the result is always a vector.
func CProd(a, b T) T {
	return Vector(
		a[1]*b[2]-a[2]*b[1],
		a[2]*b[0]-a[0]*b[2],
		a[0]*b[1]-a[1]*b[0],
	)
}

// Reflect reflects a about the normal n.
func Reflect(a, n T) T {
	return SubVV(a, MulVS(n, 2*IProd(a, n)))
}

// Equal reports whether every component of a and b differs by less than
// Epsilon.
func Equal(a, b T) bool {
	for i := 0; i < 4; i++ {
		if !(math.Abs(a[i]-b[i]) < Epsilon) {
			return false
		}
	}
	return true
}
