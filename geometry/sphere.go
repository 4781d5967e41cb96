package geometry

import (
	"errors"
	"fmt"
	"math"

	"phongtracer/affinetransform"
	"phongtracer/contact"
	"phongtracer/material"
	"phongtracer/ray"
	"phongtracer/vmath/mat44"
	"phongtracer/vmath/vec4"
)

// ErrInvalidTransform is returned when a shape is given a transform that cannot
// be inverted.  It wraps mat44.ErrSingular.
var ErrInvalidTransform = fmt.Errorf("invalid object transform: %w", mat44.ErrSingular)

// Sphere is a unit sphere centered on the object-space origin.  Its placement
// in the world comes entirely from its transform.
type Sphere struct {
	id int

	Origin vec4.T
	Radius float64

	// The transform that takes object space to world space.
	transform mat44.T

	// The transform that takes a ray from world space to object space.
	worldToObject mat44.T

	// The linear map that takes normal vectors from object space to world
	// space.
	objectToWorldNormals mat44.T

	Material material.Material
}

// NewSphere creates a unit sphere with the identity transform and the default
// material, taking its identity from ids.
func NewSphere(ids *IDAllocator) *Sphere {
	return &Sphere{
		id:                   ids.Next(),
		Origin:               vec4.Point(0, 0, 0),
		Radius:               1.0,
		transform:            mat44.Identity(),
		worldToObject:        mat44.Identity(),
		objectToWorldNormals: mat44.Identity(),
		Material:             material.Default(),
	}
}

func (s *Sphere) ID() int {
	return s.id
}

// Equal compares identities, not geometry.
func (s *Sphere) Equal(o *Sphere) bool {
	return o != nil && s.id == o.id
}

func (s *Sphere) GetMaterial() material.Material {
	return s.Material
}

func (s *Sphere) Transform() mat44.T {
	return s.transform
}

// SetTransform replaces the object-to-world transform.  Singular transforms are
// rejected with ErrInvalidTransform and leave the sphere unchanged, so that
// Intersect and NormalAt never have to invert a degenerate matrix.
func (s *Sphere) SetTransform(m mat44.T) error {
	inv, err := mat44.Inverse(m)
	if errors.Is(err, mat44.ErrSingular) {
		return ErrInvalidTransform
	}
	if err != nil {
		return fmt.Errorf("while inverting transform: %w", err)
	}
	nm, err := affinetransform.NormalTransformMat(m)
	if err != nil {
		return fmt.Errorf("while computing normal transform: %w", err)
	}

	s.transform = m
	s.worldToObject = inv
	s.objectToWorldNormals = nm
	return nil
}

// NormalAt returns the unit surface normal, in world space, at worldPoint.
// worldPoint is assumed to lie on the surface.
func (s *Sphere) NormalAt(worldPoint vec4.T) vec4.T {
	objectPoint := mat44.MulMV(s.worldToObject, worldPoint)
	objectNormal := vec4.SubVV(objectPoint, s.Origin)
	worldNormal := mat44.MulMV(s.objectToWorldNormals, objectNormal)

	// A translation in the transform leaks into w through the transposed
	// inverse.
	worldNormal[3] = 0

	return vec4.Normalize(worldNormal)
}

// Intersect returns the two crossings of r with the sphere, smallest t first,
// or nothing if r misses.  Tangent rays still produce two (equal) records, and
// crossings behind the ray origin are reported with negative t.
func (s *Sphere) Intersect(r ray.Ray) []contact.Intersection {
	objectRay := r.Transform(s.worldToObject)

	sphereToRay := vec4.SubVV(objectRay.Origin, s.Origin)
	a := vec4.IProd(objectRay.Direction, objectRay.Direction)
	b := 2.0 * vec4.IProd(objectRay.Direction, sphereToRay)
	c := vec4.IProd(sphereToRay, sphereToRay) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	root := math.Sqrt(discriminant)
	return []contact.Intersection{
		contact.New((-b-root)/(2*a), s.id),
		contact.New((-b+root)/(2*a), s.id),
	}
}
