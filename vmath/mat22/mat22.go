// Package mat22 holds the 2x2 submatrices that fall out of cofactor expansion.
package mat22

type T [4]float64

func (m T) At(r, c int) float64 {
	return m[r*2+c]
}

func Determinant(m T) float64 {
	return m[0]*m[3] - m[1]*m[2]
}
