// Package affinetransform builds the canonical 4x4 object-to-world transforms.
package affinetransform

import (
	"math"

	"phongtracer/vmath/mat44"
)

func Identity() mat44.T {
	return mat44.Identity()
}

func Translate(x, y, z float64) mat44.T {
	return mat44.T{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

func Scale(x, y, z float64) mat44.T {
	return mat44.T{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX rotates by r radians about the x axis, counterclockwise when looking
// down the axis toward the origin.
func RotateX(r float64) mat44.T {
	s, c := math.Sincos(r)
	return mat44.T{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

func RotateY(r float64) mat44.T {
	s, c := math.Sincos(r)
	return mat44.T{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func RotateZ(r float64) mat44.T {
	s, c := math.Sincos(r)
	return mat44.T{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Shear moves each coordinate in proportion to the other two; xy is the amount
// x moves in proportion to y, and so on.
func Shear(xy, xz, yx, yz, zx, zy float64) mat44.T {
	return mat44.T{
		1, xy, xz, 0,
		yx, 1, yz, 0,
		zx, zy, 1, 0,
		0, 0, 0, 1,
	}
}

// Compose multiplies the transforms left to right, so the last one listed is
// the first applied to a point.
func Compose(ts ...mat44.T) mat44.T {
	result := mat44.Identity()
	for _, t := range ts {
		result = mat44.MulMM(result, t)
	}
	return result
}

// Chain is Compose in application order: the first transform listed is
// applied first.
func Chain(ts ...mat44.T) mat44.T {
	result := mat44.Identity()
	for _, t := range ts {
		result = mat44.MulMM(t, result)
	}
	return result
}

// NormalTransformMat is the transpose of the inverse of t.  Normals must be
// carried through it rather than t itself, since non-uniform scaling does not
// preserve perpendicularity.
func NormalTransformMat(t mat44.T) (mat44.T, error) {
	inv, err := mat44.Inverse(t)
	if err != nil {
		return mat44.T{}, err
	}
	return mat44.Transpose(inv), nil
}
