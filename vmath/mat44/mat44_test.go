package mat44

import (
	"errors"
	"math"
	"testing"

	"phongtracer/vmath/mat33"
	"phongtracer/vmath/vec4"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestAt(t *testing.T) {
	m := T{
		1, 2, 3, 4,
		5.5, 6.5, 7.5, 8.5,
		9, 10, 11, 12,
		13.5, 14.5, 15.5, 16.5,
	}

	testCases := []struct {
		r, c int
		want float64
	}{
		{0, 0, 1},
		{0, 3, 4},
		{1, 0, 5.5},
		{1, 2, 7.5},
		{2, 2, 11},
		{3, 0, 13.5},
		{3, 2, 15.5},
	}
	for _, tc := range testCases {
		if got := m.At(tc.r, tc.c); got != tc.want {
			t.Errorf("At(%d, %d): got %v, want %v", tc.r, tc.c, got, tc.want)
		}
	}
}

func TestMulMM(t *testing.T) {
	a := T{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 8, 7, 6,
		5, 4, 3, 2,
	}
	b := T{
		-2, 1, 2, 3,
		3, 2, 1, -1,
		4, 3, 6, 5,
		1, 2, 7, 8,
	}
	want := T{
		20, 22, 50, 48,
		44, 54, 114, 108,
		40, 58, 110, 102,
		16, 26, 46, 42,
	}
	if diff := cmp.Diff(MulMM(a, b), want); diff != "" {
		t.Errorf("Bad product; diff (-got +want)\n%s", diff)
	}

	if diff := cmp.Diff(MulMM(a, Identity()), a); diff != "" {
		t.Errorf("Multiplying by identity changed matrix; diff (-got +want)\n%s", diff)
	}
}

func TestMulMV(t *testing.T) {
	a := T{
		1, 2, 3, 4,
		2, 4, 4, 2,
		8, 6, 4, 1,
		0, 0, 0, 1,
	}
	got := MulMV(a, vec4.T{1, 2, 3, 1})
	if diff := cmp.Diff(got, vec4.T{18, 24, 33, 1}); diff != "" {
		t.Errorf("Bad product; diff (-got +want)\n%s", diff)
	}

	v := vec4.T{1, 2, 3, 4}
	if diff := cmp.Diff(MulMV(Identity(), v), v); diff != "" {
		t.Errorf("Identity changed tuple; diff (-got +want)\n%s", diff)
	}
}

func TestTranspose(t *testing.T) {
	m := T{
		0, 9, 3, 0,
		9, 8, 0, 8,
		1, 8, 5, 3,
		0, 0, 5, 8,
	}
	want := T{
		0, 9, 1, 0,
		9, 8, 8, 0,
		3, 0, 5, 5,
		0, 8, 3, 8,
	}
	if diff := cmp.Diff(Transpose(m), want); diff != "" {
		t.Errorf("Bad transpose; diff (-got +want)\n%s", diff)
	}

	if !Equal(Transpose(Identity()), Identity()) {
		t.Errorf("Transpose(Identity()) != Identity()")
	}
}

func TestSubmatrix(t *testing.T) {
	m := T{
		-6, 1, 1, 6,
		-8, 5, 8, 6,
		-1, 0, 8, 2,
		-7, 1, -1, 1,
	}
	want := mat33.T{Elts: [9]float64{
		-6, 1, 6,
		-8, 8, 6,
		-7, -1, 1,
	}}
	if diff := cmp.Diff(Submatrix(m, 2, 1), want); diff != "" {
		t.Errorf("Bad submatrix; diff (-got +want)\n%s", diff)
	}
}

func TestDeterminant(t *testing.T) {
	m := T{
		-2, -8, 3, 5,
		-3, 1, 7, 3,
		1, 2, -9, 6,
		-6, 7, 7, -9,
	}

	wantCofactors := []float64{690, 447, 210, 51}
	for c, want := range wantCofactors {
		if got := Cofactor(m, 0, c); got != want {
			t.Errorf("Cofactor(0, %d): got %v, want %v", c, got, want)
		}
	}
	if got := Determinant(m); got != -4071 {
		t.Errorf("Determinant: got %v, want -4071", got)
	}
}

func TestInverse(t *testing.T) {
	a := T{
		-5, 2, 6, -8,
		1, -5, 1, 8,
		7, 7, -6, -7,
		1, -3, 7, 4,
	}

	if got := Determinant(a); got != 532 {
		t.Errorf("Determinant: got %v, want 532", got)
	}
	if got := Cofactor(a, 2, 3); got != -160 {
		t.Errorf("Cofactor(2, 3): got %v, want -160", got)
	}
	if got := Cofactor(a, 3, 2); got != 105 {
		t.Errorf("Cofactor(3, 2): got %v, want 105", got)
	}

	inv, err := Inverse(a)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The cofactor of (r, c) is stored transposed, at (c, r).
	if got := inv.At(3, 2); got != -160.0/532.0 {
		t.Errorf("inv.At(3, 2): got %v, want %v", got, -160.0/532.0)
	}
	if got := inv.At(2, 3); got != 105.0/532.0 {
		t.Errorf("inv.At(2, 3): got %v, want %v", got, 105.0/532.0)
	}

	want := T{
		0.21805, 0.45113, 0.24060, -0.04511,
		-0.80827, -1.45677, -0.44361, 0.52068,
		-0.07895, -0.22368, -0.05263, 0.19737,
		-0.52256, -0.81391, -0.30075, 0.30639,
	}
	if diff := cmp.Diff(inv, want, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("Bad inverse; diff (-got +want)\n%s", diff)
	}
}

func TestInverseRoundTrips(t *testing.T) {
	ms := []T{
		{
			8, -5, 9, 2,
			7, 5, 6, 1,
			-6, 0, 9, 6,
			-3, 0, -9, -4,
		},
		{
			9, 3, 0, 9,
			-5, -2, -6, -3,
			-4, 9, 6, 4,
			-7, 6, 6, 2,
		},
		Identity(),
	}

	for _, m := range ms {
		inv, err := Inverse(m)
		if err != nil {
			t.Fatalf("Inverse(%v): unexpected error: %v", m, err)
		}
		if got := MulMM(m, inv); !Equal(got, Identity()) {
			t.Errorf("M * Inverse(M): got %v, want identity", got)
		}
	}

	a := T{
		3, -9, 7, 3,
		3, -8, 2, -9,
		-4, 4, 4, 1,
		-6, 5, -1, 1,
	}
	b := T{
		8, 2, 2, 2,
		3, -1, 7, 0,
		7, 0, 5, 4,
		6, -2, 0, 5,
	}
	bInv, err := Inverse(b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := MulMM(MulMM(a, b), bInv); !Equal(got, a) {
		t.Errorf("A * B * Inverse(B): got %v, want %v", got, a)
	}
}

func TestInverseSingular(t *testing.T) {
	m := T{
		-4, 2, -2, -3,
		9, 6, 2, 6,
		0, -5, 1, -5,
		0, 0, 0, 0,
	}

	if _, err := Inverse(m); !errors.Is(err, ErrSingular) {
		t.Errorf("Inverse: got err %v, want ErrSingular", err)
	}
}

func TestFromRows(t *testing.T) {
	got := FromRows([4][4]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 8, 7, 6},
		{5, 4, 3, 2},
	})
	want := T{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 8, 7, 6,
		5, 4, 3, 2,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Bad matrix; diff (-got +want)\n%s", diff)
	}
	if got.At(2, 1) != 8 {
		t.Errorf("At(2, 1): got %v, want 8", got.At(2, 1))
	}
}

func TestInverseNotFinite(t *testing.T) {
	nan := Identity()
	nan[5] = math.NaN()
	inf := Identity()
	inf[10] = math.Inf(1)

	for _, m := range []T{nan, inf} {
		if _, err := Inverse(m); !errors.Is(err, ErrSingular) {
			t.Errorf("Inverse(%v): got err %v, want ErrSingular", m, err)
		}
	}
}
