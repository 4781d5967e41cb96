// Package light implements point lights and Phong shading.
package light

import (
	"math"

	"phongtracer/material"
	"phongtracer/rgb"
	"phongtracer/vmath/vec4"
)

// PointLight is an infinitesimal light source with no falloff.
type PointLight struct {
	Intensity rgb.T
	Position  vec4.T
}

func NewPointLight(position vec4.T, intensity rgb.T) PointLight {
	return PointLight{
		Intensity: intensity,
		Position:  position,
	}
}

// Lighting evaluates the Phong reflection model at point, as seen along eye,
// for a surface with the given unit normal.  eye and normal must point away
// from the surface.  The result is not clamped.
func Lighting(m material.Material, l PointLight, point, eye, normal vec4.T) rgb.T {
	effectiveColor := rgb.MulCC(m.Color, l.Intensity)
	toLight := vec4.Normalize(vec4.SubVV(l.Position, point))

	ambient := rgb.MulCS(effectiveColor, m.Ambient)

	lightDotNormal := vec4.IProd(toLight, normal)
	if lightDotNormal < 0 {
		return ambient
	}

	diffuse := rgb.MulCS(effectiveColor, m.Diffuse*lightDotNormal)

	specular := rgb.Black()
	reflected := vec4.Reflect(vec4.Negate(toLight), normal)
	if reflectDotEye := vec4.IProd(reflected, eye); reflectDotEye > 0 {
		specular = rgb.MulCS(l.Intensity, m.Specular*math.Pow(reflectDotEye, m.Shininess))
	}

	return rgb.AddCC(rgb.AddCC(ambient, diffuse), specular)
}
