package contact

import (
	"sort"
)

// Intersection records where along a ray an object was crossed.  It carries
// only the object's identity; callers resolve the shape itself from their own
// registry.
type Intersection struct {
	T        float64
	ObjectID int
}

func New(t float64, objectID int) Intersection {
	return Intersection{
		T:        t,
		ObjectID: objectID,
	}
}

// NoHit is the sentinel returned by Hit when nothing lies ahead of the ray.
func NoHit() Intersection {
	return Intersection{
		T:        0,
		ObjectID: -1,
	}
}

// IsHit reports whether i names an object.  Check this rather than T, since the
// sentinel's T is a perfectly ordinary number.
func (i Intersection) IsHit() bool {
	return i.ObjectID >= 0
}

// Hit selects the intersection with the smallest strictly positive T.
func Hit(xs []Intersection) Intersection {
	best := NoHit()
	for _, x := range xs {
		if x.T <= 0 {
			continue
		}
		if !best.IsHit() || x.T < best.T {
			best = x
		}
	}
	return best
}

// Sort orders xs by ascending T, in place.
func Sort(xs []Intersection) {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].T < xs[j].T
	})
}
