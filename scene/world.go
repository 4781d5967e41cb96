// Package scene holds the shapes and light of a world and renders it.
package scene

import (
	"phongtracer/contact"
	"phongtracer/geometry"
	"phongtracer/light"
	"phongtracer/ray"
	"phongtracer/rgb"
	"phongtracer/vmath/vec4"
)

// World is a set of shapes lit by a single point light.  Shapes must be added
// before rendering starts; a World is safe for concurrent reads only.
type World struct {
	Name  string
	Light light.PointLight

	ids    geometry.IDAllocator
	shapes []geometry.Shape
	byID   map[int]geometry.Shape
}

func NewWorld(name string, l light.PointLight) *World {
	return &World{
		Name:  name,
		Light: l,
		byID:  map[int]geometry.Shape{},
	}
}

// NewSphere creates a default unit sphere owned by the world.
func (w *World) NewSphere() *geometry.Sphere {
	s := geometry.NewSphere(&w.ids)
	w.shapes = append(w.shapes, s)
	w.byID[s.ID()] = s
	return s
}

func (w *World) Shapes() []geometry.Shape {
	return w.shapes
}

func (w *World) Lookup(id int) (geometry.Shape, bool) {
	s, ok := w.byID[id]
	return s, ok
}

// Intersect returns every crossing of r with the world's shapes, sorted by t.
func (w *World) Intersect(r ray.Ray) []contact.Intersection {
	xs := []contact.Intersection{}
	for _, s := range w.shapes {
		xs = append(xs, s.Intersect(r)...)
	}
	contact.Sort(xs)
	return xs
}

// ColorAt shades the nearest hit along r, or returns black if there is none.
func (w *World) ColorAt(r ray.Ray) rgb.T {
	c, _ := w.shade(r)
	return c
}

func (w *World) shade(r ray.Ray) (rgb.T, bool) {
	hit := contact.Hit(w.Intersect(r))
	if !hit.IsHit() {
		return rgb.Black(), false
	}

	s, ok := w.byID[hit.ObjectID]
	if !ok {
		return rgb.Black(), false
	}

	point := r.Position(hit.T)
	normal := s.NormalAt(point)
	eye := vec4.Negate(r.Direction)

	return light.Lighting(s.GetMaterial(), w.Light, point, eye, normal), true
}
