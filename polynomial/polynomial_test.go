// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package polynomial

import (
	"testing"

	"github.com/ArashPartow/schifra/gf"
)

func field16(t *testing.T) *gf.Field {
	t.Helper()
	f, err := gf.NewField(4, []uint{1, 1, 0, 0, 1}, gf.LogAntilog)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func TestDegAndTrim(t *testing.T) {
	f := field16(t)

	if got := New(f).Deg(); got != -1 {
		t.Fatalf("Deg of zero polynomial = %d, want -1", got)
	}
	p := FromCoefficients(f, []int{1, 2, 0, 0})
	if got := p.Deg(); got != 1 {
		t.Fatalf("Deg = %d, want 1 after trimming trailing zeros", got)
	}
}

func TestAddIsInvolution(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{1, 2, 3})
	b := FromCoefficients(f, []int{4, 5})

	sum := a.Add(b)
	back := sum.Add(b)
	if !back.Equal(a) {
		t.Fatalf("a+b+b = %v, want %v", back.Coefficients(), a.Coefficients())
	}
}

func TestMulDegreeAdds(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{1, 1}) // degree 1
	b := FromCoefficients(f, []int{1, 0, 1}) // degree 2

	product := a.Mul(b)
	if got := product.Deg(); got != 3 {
		t.Fatalf("Deg(a*b) = %d, want 3", got)
	}
}

func TestMulByZeroIsZero(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{1, 2, 3})
	zero := New(f)
	if got := a.Mul(zero); got.Deg() != -1 {
		t.Fatalf("a*0 = %v, want zero polynomial", got.Coefficients())
	}
}

func TestDivModIdentity(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{5, 7, 3, 9, 1})
	b := FromCoefficients(f, []int{2, 1, 1})

	q, r, err := a.DivMod(b)
	if err != nil {
		t.Fatalf("DivMod: %v", err)
	}
	if r.Deg() >= b.Deg() {
		t.Fatalf("remainder degree %d not less than divisor degree %d", r.Deg(), b.Deg())
	}

	reconstructed := q.Mul(b).Add(r)
	if !reconstructed.Equal(a) {
		t.Fatalf("q*b+r = %v, want a = %v", reconstructed.Coefficients(), a.Coefficients())
	}
}

func TestDivModSmallerDividend(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{3, 1})
	b := FromCoefficients(f, []int{1, 1, 1})

	q, r, err := a.DivMod(b)
	if err != nil {
		t.Fatalf("DivMod: %v", err)
	}
	if q.Deg() != -1 {
		t.Fatalf("quotient = %v, want zero polynomial when dividend degree < divisor degree", q.Coefficients())
	}
	if !r.Equal(a) {
		t.Fatalf("remainder = %v, want dividend unchanged", r.Coefficients())
	}
}

func TestDivModByZeroPolynomial(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{1, 2})
	if _, _, err := a.DivMod(New(f)); err == nil {
		t.Fatalf("expected error dividing by the zero polynomial")
	}
}

func TestShlShrRoundTrip(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{1, 2, 3})

	shifted := a.Shl(4)
	if got := shifted.Deg(); got != a.Deg()+4 {
		t.Fatalf("Deg(a<<4) = %d, want %d", got, a.Deg()+4)
	}
	back := shifted.Shr(4)
	if !back.Equal(a) {
		t.Fatalf("(a<<4)>>4 = %v, want %v", back.Coefficients(), a.Coefficients())
	}
}

func TestShrBeyondDegreeIsZero(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{1, 2, 3})
	if got := a.Shr(10); got.Deg() != -1 {
		t.Fatalf("Shr beyond degree = %v, want zero polynomial", got.Coefficients())
	}
}

func TestEvalMatchesHornerByHand(t *testing.T) {
	f := field16(t)
	// p(X) = 1 + 3X + 2X^2
	p := FromCoefficients(f, []int{1, 3, 2})
	v := 5

	want := f.Add(f.Add(1, f.Mul(3, v)), f.Mul(2, f.Mul(v, v)))
	if got := p.Eval(v); got != want {
		t.Fatalf("Eval(%d) = %d, want %d", v, got, want)
	}
}

func TestEvalAtZeroIsConstantTerm(t *testing.T) {
	f := field16(t)
	p := FromCoefficients(f, []int{6, 1, 2})
	if got := p.Eval(0); got != 6 {
		t.Fatalf("Eval(0) = %d, want constant term 6", got)
	}
}

func TestDerivativeDropsOddIndices(t *testing.T) {
	f := field16(t)
	// p(X) = c0 + c1 X + c2 X^2 + c3 X^3 -> p'(X) = c1 + 0*X + c3*X^2 (even powers vanish)
	p := FromCoefficients(f, []int{5, 7, 3, 9})
	d := p.Derivative()

	if got := d.At(0); got != 7 {
		t.Fatalf("derivative[0] = %d, want c1=7", got)
	}
	if got := d.At(1); got != 0 {
		t.Fatalf("derivative[1] = %d, want 0 (even-power term vanishes over GF(2))", got)
	}
	if got := d.At(2); got != 9 {
		t.Fatalf("derivative[2] = %d, want c3=9", got)
	}
}

func TestDerivativeOfConstantIsZero(t *testing.T) {
	f := field16(t)
	p := FromElement(gf.NewElement(f, 4))
	if got := p.Derivative().Deg(); got != -1 {
		t.Fatalf("derivative of a constant = %v, want zero polynomial", got)
	}
}

func TestGCDDividesBothOperands(t *testing.T) {
	f := field16(t)
	a := FromCoefficients(f, []int{1, 1}) // X+1
	b := FromCoefficients(f, []int{1, 0, 1}) // X^2+1 = (X+1)^2 over GF(2)

	// Multiply both by a common factor X+1, then verify the gcd divides both products.
	common := FromCoefficients(f, []int{1, 1})
	p1 := common.Mul(a)
	p2 := common.Mul(b)

	g, err := GCD(p1, p2)
	if err != nil {
		t.Fatalf("GCD: %v", err)
	}
	if _, r, err := p1.DivMod(g); err != nil || r.Deg() != -1 {
		t.Fatalf("gcd does not divide p1: r=%v err=%v", r.Coefficients(), err)
	}
	if _, r, err := p2.DivMod(g); err != nil || r.Deg() != -1 {
		t.Fatalf("gcd does not divide p2: r=%v err=%v", r.Coefficients(), err)
	}
}

func TestMismatchedFieldsYieldInvalidResult(t *testing.T) {
	f1 := field16(t)
	f2, err := gf.NewField(8, []uint{1, 1, 1, 0, 0, 0, 0, 1, 1}, gf.LogAntilog)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}

	a := FromCoefficients(f1, []int{1, 2})
	b := FromCoefficients(f2, []int{1, 2})

	if got := a.Add(b); got.Valid() {
		t.Fatalf("Add across mismatched fields should yield the invalid polynomial")
	}
	if _, _, err := a.DivMod(b); err == nil {
		t.Fatalf("expected error dividing across mismatched fields")
	}
}
