// Package rgb is the linear color triple handed between the shading code and
// the canvas.  Components are nominally in [0, 1] but are not clamped until
// Quantize.
package rgb

import "math"

// Epsilon is the per-channel tolerance used by Equal.
const Epsilon = 1e-7

type T [3]float64

func New(r, g, b float64) T {
	return T{r, g, b}
}

func Black() T {
	return T{0, 0, 0}
}

func White() T {
	return T{1, 1, 1}
}

func AddCC(a, b T) T {
	return T{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func SubCC(a, b T) T {
	return T{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// MulCC is the Hadamard (channel-wise) product.
func MulCC(a, b T) T {
	return T{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func MulCS(a T, s float64) T {
	return T{a[0] * s, a[1] * s, a[2] * s}
}

func Equal(a, b T) bool {
	for i := 0; i < 3; i++ {
		if !(math.Abs(a[i]-b[i]) < Epsilon) {
			return false
		}
	}
	return true
}

// Quantize maps each channel onto [0, max].  Values below 0 map to 0, values at
// or above 1 map to max, and everything else is rounded from c*max.
func Quantize(c T, max int) [3]int {
	result := [3]int{}
	for i := 0; i < 3; i++ {
		switch {
		case c[i] <= 0 || math.IsNaN(c[i]):
			result[i] = 0
		case c[i] >= 1:
			result[i] = max
		default:
			result[i] = int(math.Round(c[i] * float64(max)))
		}
	}
	return result
}
