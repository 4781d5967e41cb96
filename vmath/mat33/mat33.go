package mat33

import (
	"phongtracer/vmath/mat22"
)

type T struct {
	Elts [9]float64
}

func (m T) At(r, c int) float64 {
	return m.Elts[r*3+c]
}

// Submatrix drops row dr and column dc.
func Submatrix(m T, dr, dc int) mat22.T {
	result := mat22.T{}
	i := 0
	for r := 0; r < 3; r++ {
		if r == dr {
			continue
		}
		for c := 0; c < 3; c++ {
			if c == dc {
				continue
			}
			result[i] = m.Elts[r*3+c]
			i++
		}
	}
	return result
}

func Minor(m T, r, c int) float64 {
	return mat22.Determinant(Submatrix(m, r, c))
}

func Cofactor(m T, r, c int) float64 {
	if (r+c)%2 == 1 {
		return -Minor(m, r, c)
	}
	return Minor(m, r, c)
}

// Determinant expands along row 0.
func Determinant(m T) float64 {
	det := 0.0
	for c := 0; c < 3; c++ {
		det += m.Elts[c] * Cofactor(m, 0, c)
	}
	return det
}
