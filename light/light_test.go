package light

import (
	"math"
	"testing"

	"phongtracer/material"
	"phongtracer/rgb"
	"phongtracer/vmath/vec4"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLighting(t *testing.T) {
	r2 := math.Sqrt(2) / 2

	testCases := []struct {
		name   string
		light  vec4.T
		eye    vec4.T
		normal vec4.T
		want   rgb.T
	}{
		{
			name:   "eye between light and surface",
			light:  vec4.Point(0, 0, -10),
			eye:    vec4.Vector(0, 0, -1),
			normal: vec4.Vector(0, 0, -1),
			want:   rgb.New(1.9, 1.9, 1.9),
		},
		{
			name:   "eye offset 45 degrees",
			light:  vec4.Point(0, 0, -10),
			eye:    vec4.Vector(0, r2, -r2),
			normal: vec4.Vector(0, 0, -1),
			want:   rgb.New(1.0, 1.0, 1.0),
		},
		{
			name:   "light offset 45 degrees",
			light:  vec4.Point(0, 10, -10),
			eye:    vec4.Vector(0, 0, -1),
			normal: vec4.Vector(0, 0, -1),
			want:   rgb.New(0.7364, 0.7364, 0.7364),
		},
		{
			name:   "eye in the reflection path",
			light:  vec4.Point(0, 10, -10),
			eye:    vec4.Vector(0, -r2, -r2),
			normal: vec4.Vector(0, 0, -1),
			want:   rgb.New(1.6364, 1.6364, 1.6364),
		},
		{
			name:   "light behind the surface",
			light:  vec4.Point(0, 0, 10),
			eye:    vec4.Vector(0, 0, -1),
			normal: vec4.Vector(0, 0, -1),
			want:   rgb.New(0.1, 0.1, 0.1),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewPointLight(tc.light, rgb.White())
			got := Lighting(material.Default(), l, vec4.Point(0, 0, 0), tc.eye, tc.normal)
			if diff := cmp.Diff(got, tc.want, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
				t.Errorf("Bad color; diff (-got +want)\n%s", diff)
			}
		})
	}
}

func TestLightingScalesWithIntensityAndColor(t *testing.T) {
	m := material.Default()
	m.Color = rgb.New(1, 0.5, 0)
	l := NewPointLight(vec4.Point(0, 0, -10), rgb.New(0.5, 1, 1))

	got := Lighting(m, l, vec4.Point(0, 0, 0), vec4.Vector(0, 0, -1), vec4.Vector(0, 0, -1))

	// ambient + diffuse scale with color*intensity, specular with intensity.
	want := rgb.New(
		0.5*(0.1+0.9)+0.5*0.9,
		0.5*(0.1+0.9)+1*0.9,
		0+1*0.9,
	)
	if diff := cmp.Diff(got, want, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Bad color; diff (-got +want)\n%s", diff)
	}
}

func TestLightingGrazingLight(t *testing.T) {
	// Light in the tangent plane: diffuse term is zero but not skipped.
	l := NewPointLight(vec4.Point(10, 0, 0), rgb.White())
	got := Lighting(material.Default(), l, vec4.Point(0, 0, 0), vec4.Vector(0, 0, -1), vec4.Vector(0, 0, -1))
	if diff := cmp.Diff(got, rgb.New(0.1, 0.1, 0.1), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Bad color; diff (-got +want)\n%s", diff)
	}
}
