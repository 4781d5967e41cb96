package material

import (
	"testing"

	"phongtracer/rgb"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	want := Material{
		Color:     rgb.T{1, 1, 1},
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200,
	}
	if diff := cmp.Diff(Default(), want); diff != "" {
		t.Errorf("Bad default material; diff (-got +want)\n%s", diff)
	}
}
