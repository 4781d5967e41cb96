package ray

import (
	"phongtracer/vmath/mat44"
	"phongtracer/vmath/vec4"
)

// Ray is a half-line in homogeneous coordinates.  Direction is not required to
// be unit length; object-space rays in particular are scaled by the inverse of
// the object transform.
type Ray struct {
	Origin    vec4.T
	Direction vec4.T
}

func New(origin, direction vec4.T) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
	}
}

// Position returns origin + direction*t.
func (r Ray) Position(t float64) vec4.T {
	return vec4.AddVV(r.Origin, vec4.MulVS(r.Direction, t))
}

func (r Ray) Transform(m mat44.T) Ray {
	return Ray{
		Origin:    mat44.MulMV(m, r.Origin),
		Direction: mat44.MulMV(m, r.Direction),
	}
}
