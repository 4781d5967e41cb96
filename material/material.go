package material

import (
	"phongtracer/rgb"
)

// Material holds the Phong reflection parameters of a surface.
type Material struct {
	Color rgb.T

	// Blend weights for the three Phong terms.
	Ambient  float64
	Diffuse  float64
	Specular float64

	// Shininess is the exponent of the specular highlight.  Larger values give
	// a smaller, tighter highlight.
	Shininess float64
}

func Default() Material {
	return Material{
		Color:     rgb.White(),
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200.0,
	}
}
