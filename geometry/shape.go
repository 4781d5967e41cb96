package geometry

import (
	"phongtracer/contact"
	"phongtracer/material"
	"phongtracer/ray"
	"phongtracer/vmath/vec4"
)

// Shape is anything a world can intersect and shade.
type Shape interface {
	ID() int
	GetMaterial() material.Material
	Intersect(r ray.Ray) []contact.Intersection
	NormalAt(worldPoint vec4.T) vec4.T
}

var _ Shape = (*Sphere)(nil)
