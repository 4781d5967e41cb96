// Package scenepack loads worlds from YAML scene files.
//
// A scene file looks like:
//
//	name: two-spheres
//	width: 200
//	height: 200
//	light:
//	  position: [-10, 10, -10]
//	  intensity: [1, 1, 1]
//	camera:
//	  eye: [0, 0, -5]
//	  wallZ: 10
//	  wallSize: 7
//	spheres:
//	- transform:
//	  - scale: [1, 0.5, 1]
//	  - translate: [0, 1, 0]
//	  material:
//	    color: [1, 0.2, 1]
//
// Transform steps are listed in the order they are applied to the sphere.
package scenepack

import (
	"context"
	"fmt"
	"os"

	"phongtracer/affinetransform"
	"phongtracer/camera"
	"phongtracer/light"
	"phongtracer/material"
	"phongtracer/rgb"
	"phongtracer/scene"
	"phongtracer/vmath/mat44"
	"phongtracer/vmath/vec4"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"sigs.k8s.io/yaml"
)

const defaultImageSize = 100

type Scene struct {
	Name    string         `json:"name"`
	Width   int            `json:"width,omitempty"`
	Height  int            `json:"height,omitempty"`
	Light   Light          `json:"light"`
	Camera  Camera         `json:"camera"`
	Spheres []SphereConfig `json:"spheres"`
}

type Light struct {
	Position  [3]float64 `json:"position"`
	Intensity [3]float64 `json:"intensity"`
}

type Camera struct {
	Eye      [3]float64 `json:"eye"`
	WallZ    float64    `json:"wallZ"`
	WallSize float64    `json:"wallSize"`
}

type SphereConfig struct {
	Transform []TransformStep `json:"transform,omitempty"`
	Material  *MaterialConfig `json:"material,omitempty"`
}

// TransformStep holds exactly one transform.
type TransformStep struct {
	Translate *[3]float64    `json:"translate,omitempty"`
	Scale     *[3]float64    `json:"scale,omitempty"`
	RotateX   *float64       `json:"rotateX,omitempty"`
	RotateY   *float64       `json:"rotateY,omitempty"`
	RotateZ   *float64       `json:"rotateZ,omitempty"`
	Shear     *[6]float64    `json:"shear,omitempty"`
	Matrix    *[4][4]float64 `json:"matrix,omitempty"`
}

// MaterialConfig overrides fields of the default material.  Unset fields keep
// their default values.
type MaterialConfig struct {
	Color     *[3]float64 `json:"color,omitempty"`
	Ambient   *float64    `json:"ambient,omitempty"`
	Diffuse   *float64    `json:"diffuse,omitempty"`
	Specular  *float64    `json:"specular,omitempty"`
	Shininess *float64    `json:"shininess,omitempty"`
}

// Loaded is a scene ready to render.
type Loaded struct {
	World         *scene.World
	Camera        *camera.Wall
	Width, Height int
}

func LoadScene(ctx context.Context, fileName string) (*Loaded, error) {
	tracer := otel.Tracer("phongtracer/scenepack")
	var span trace.Span
	_, span = tracer.Start(ctx, "LoadScene")
	defer span.End()
	span.SetAttributes(attribute.String("file", fileName))

	fileBytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("while opening scenepack: %w", err)
	}

	loaded, err := Parse(fileBytes)
	if err != nil {
		return nil, fmt.Errorf("while parsing scenepack %s: %w", fileName, err)
	}

	span.SetAttributes(attribute.Int64("spheres", int64(len(loaded.World.Shapes()))))
	return loaded, nil
}

// Parse builds a world from the YAML contents of a scene file.  Unknown fields
// are an error.
func Parse(data []byte) (*Loaded, error) {
	s := &Scene{}
	if err := yaml.UnmarshalStrict(data, s); err != nil {
		return nil, fmt.Errorf("while unmarshaling scene: %w", err)
	}
	return s.Build()
}

func (s *Scene) Build() (*Loaded, error) {
	loaded := &Loaded{
		Width:  s.Width,
		Height: s.Height,
	}
	if loaded.Width == 0 {
		loaded.Width = defaultImageSize
	}
	if loaded.Height == 0 {
		loaded.Height = defaultImageSize
	}
	if loaded.Width < 0 || loaded.Height < 0 {
		return nil, fmt.Errorf("bad image size %dx%d", loaded.Width, loaded.Height)
	}

	cam, err := camera.NewWall(convertPoint(s.Camera.Eye), s.Camera.WallZ, s.Camera.WallSize)
	if err != nil {
		return nil, fmt.Errorf("while building camera: %w", err)
	}
	loaded.Camera = cam

	loaded.World = scene.NewWorld(s.Name, light.NewPointLight(convertPoint(s.Light.Position), convertColor(s.Light.Intensity)))

	for i, sc := range s.Spheres {
		t, err := convertTransform(sc.Transform)
		if err != nil {
			return nil, fmt.Errorf("while converting transform of sphere %d: %w", i, err)
		}

		sphere := loaded.World.NewSphere()
		if err := sphere.SetTransform(t); err != nil {
			return nil, fmt.Errorf("while placing sphere %d: %w", i, err)
		}
		sphere.Material = convertMaterial(sc.Material)
	}

	return loaded, nil
}

func convertPoint(in [3]float64) vec4.T {
	return vec4.Point(in[0], in[1], in[2])
}

func convertColor(in [3]float64) rgb.T {
	return rgb.New(in[0], in[1], in[2])
}

func convertTransform(steps []TransformStep) (mat44.T, error) {
	ts := []mat44.T{}
	for i, step := range steps {
		t, err := convertStep(step)
		if err != nil {
			return mat44.T{}, fmt.Errorf("step %d: %w", i, err)
		}
		ts = append(ts, t)
	}
	return affinetransform.Chain(ts...), nil
}

func convertStep(step TransformStep) (mat44.T, error) {
	found := []mat44.T{}
	if step.Translate != nil {
		found = append(found, affinetransform.Translate(step.Translate[0], step.Translate[1], step.Translate[2]))
	}
	if step.Scale != nil {
		found = append(found, affinetransform.Scale(step.Scale[0], step.Scale[1], step.Scale[2]))
	}
	if step.RotateX != nil {
		found = append(found, affinetransform.RotateX(*step.RotateX))
	}
	if step.RotateY != nil {
		found = append(found, affinetransform.RotateY(*step.RotateY))
	}
	if step.RotateZ != nil {
		found = append(found, affinetransform.RotateZ(*step.RotateZ))
	}
	if step.Shear != nil {
		sh := step.Shear
		found = append(found, affinetransform.Shear(sh[0], sh[1], sh[2], sh[3], sh[4], sh[5]))
	}
	if step.Matrix != nil {
		found = append(found, mat44.FromRows(*step.Matrix))
	}

	if len(found) != 1 {
		return mat44.T{}, fmt.Errorf("want exactly one transform, got %d", len(found))
	}
	return found[0], nil
}

func convertMaterial(in *MaterialConfig) material.Material {
	m := material.Default()
	if in == nil {
		return m
	}
	if in.Color != nil {
		m.Color = convertColor(*in.Color)
	}
	if in.Ambient != nil {
		m.Ambient = *in.Ambient
	}
	if in.Diffuse != nil {
		m.Diffuse = *in.Diffuse
	}
	if in.Specular != nil {
		m.Specular = *in.Specular
	}
	if in.Shininess != nil {
		m.Shininess = *in.Shininess
	}
	return m
}
