package camera

import (
	"errors"
	"math"
	"testing"

	"phongtracer/ray"
	"phongtracer/vmath/vec4"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestImageToRay(t *testing.T) {
	c, err := NewWall(vec4.Point(0, 0, -5), 10, 8)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 4x4 pixels over an 8x8 wall: pixel centers sit at -3, -1, 1, 3.
	testCases := []struct {
		name     string
		row, col int
		target   vec4.T
	}{
		{"top left", 0, 0, vec4.Point(-3, 3, 10)},
		{"bottom right", 3, 3, vec4.Point(3, -3, 10)},
		{"top right", 0, 3, vec4.Point(3, 3, 10)},
		{"inner", 2, 1, vec4.Point(-1, -1, 10)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.ImageToRay(tc.row, 4, tc.col, 4)
			want := ray.New(vec4.Point(0, 0, -5), vec4.Normalize(vec4.SubVV(tc.target, vec4.Point(0, 0, -5))))
			if diff := cmp.Diff(got, want, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("Bad ray; diff (-got +want)\n%s", diff)
			}
			if l := got.Direction.Norm(); math.Abs(l-1) > 1e-7 {
				t.Errorf("direction has length %v, want 1", l)
			}
		})
	}
}

func TestImageToRayHitsWall(t *testing.T) {
	c, err := NewWall(vec4.Point(0, 0, -5), 10, 7)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	r := c.ImageToRay(10, 100, 99, 100)
	// Walk the ray to the wall plane.
	s := (10 - r.Origin.Z()) / r.Direction.Z()
	got := r.Position(s)
	want := vec4.Point(-3.5+0.07*99.5, 3.5-0.07*10.5, 10)
	if diff := cmp.Diff(got, want, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Bad wall point; diff (-got +want)\n%s", diff)
	}
}

func TestNewWallRejectsBadGeometry(t *testing.T) {
	if _, err := NewWall(vec4.Point(0, 0, 10), 10, 7); !errors.Is(err, vec4.ErrDegenerateVector) {
		t.Errorf("eye in wall plane: got err %v, want ErrDegenerateVector", err)
	}
	if _, err := NewWall(vec4.Vector(0, 0, -5), 10, 7); err == nil {
		t.Errorf("eye given as a vector: got nil error")
	}
	if _, err := NewWall(vec4.Point(0, 0, -5), 10, 0); err == nil {
		t.Errorf("zero wall size: got nil error")
	}
}
