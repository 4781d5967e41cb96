package camera

import (
	"errors"
	"fmt"

	"phongtracer/ray"
	"phongtracer/vmath/vec4"
)

type Camera interface {
	ImageToRay(curRow, imgRows, curCol, imgCols int) ray.Ray
}

// Wall is a camera that shoots rays from Eye through a square projection
// wall of side WallSize centered on the z axis at z = WallZ.  Row 0 is the
// top of the wall.
type Wall struct {
	Eye      vec4.T
	WallZ    float64
	WallSize float64
}

// NewWall validates the camera geometry.  The eye must be a point that does
// not lie in the wall plane.
func NewWall(eye vec4.T, wallZ, wallSize float64) (*Wall, error) {
	if !eye.IsPoint() {
		return nil, fmt.Errorf("eye %v is not a point", eye)
	}
	if !(wallSize > 0) {
		return nil, fmt.Errorf("wall size must be positive, got %v", wallSize)
	}
	// Rays from an eye in the wall plane never reach the wall.
	if _, err := vec4.NormalizeChecked(vec4.Vector(0, 0, wallZ-eye.Z())); err != nil {
		if errors.Is(err, vec4.ErrDegenerateVector) {
			return nil, fmt.Errorf("eye lies in the wall plane z=%v: %w", wallZ, err)
		}
		return nil, fmt.Errorf("while checking eye: %w", err)
	}

	return &Wall{
		Eye:      eye,
		WallZ:    wallZ,
		WallSize: wallSize,
	}, nil
}

// ImageToRay returns the ray from the eye through the center of the given
// pixel.
func (c *Wall) ImageToRay(curRow, imgRows, curCol, imgCols int) ray.Ray {
	half := c.WallSize / 2
	pixelWidth := c.WallSize / float64(imgCols)
	pixelHeight := c.WallSize / float64(imgRows)

	target := vec4.Point(
		-half+pixelWidth*(float64(curCol)+0.5),
		half-pixelHeight*(float64(curRow)+0.5),
		c.WallZ,
	)

	return ray.New(c.Eye, vec4.Normalize(vec4.SubVV(target, c.Eye)))
}
