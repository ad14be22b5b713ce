// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

// Package polynomial implements variable-degree polynomials over a
// gf.Field: addition, subtraction, multiplication, division, modulo,
// evaluation, derivative, shifting and gcd.
package polynomial

import (
	"github.com/ArashPartow/schifra/gf"
	"github.com/pkg/errors"
)

// Polynomial is a dense coefficient sequence over a Field, indexed from the
// constant term (index 0) to the highest-degree term. The empty polynomial
// (no coefficients) is the invalid/zero polynomial with Deg() == -1. After
// every mutating operation the sequence is trimmed of trailing zero
// coefficients, so the leading coefficient (if any) is always non-zero.
type Polynomial struct {
	field *gf.Field
	coeff []int // coeff[i] is the coefficient of X^i
}

// New returns the zero polynomial bound to f.
func New(f *gf.Field) Polynomial {
	return Polynomial{field: f}
}

// NewDegree returns the zero polynomial of the given degree (degree+1
// coefficients, all zero) bound to f.
func NewDegree(f *gf.Field, degree int) Polynomial {
	if degree < 0 {
		return New(f)
	}
	return Polynomial{field: f, coeff: make([]int, degree+1)}
}

// FromElement returns the degree-0 polynomial with the given constant term.
func FromElement(e gf.Element) Polynomial {
	p := Polynomial{field: e.Field(), coeff: []int{e.Poly()}}
	p.trim()
	return p
}

// FromCoefficients returns the polynomial with the given coefficients,
// coeff[0] being the constant term. The slice is copied.
func FromCoefficients(f *gf.Field, coeff []int) Polynomial {
	p := Polynomial{field: f, coeff: append([]int(nil), coeff...)}
	p.trim()
	return p
}

// Field returns the field this polynomial is bound to.
func (p Polynomial) Field() *gf.Field { return p.field }

// Deg returns the polynomial's degree; -1 for the zero/invalid polynomial.
func (p Polynomial) Deg() int { return len(p.coeff) - 1 }

// Valid reports whether the polynomial carries any coefficients at all.
func (p Polynomial) Valid() bool { return len(p.coeff) > 0 }

// At returns the coefficient of X^i, or 0 if i exceeds the degree.
func (p Polynomial) At(i int) int {
	if i < 0 || i >= len(p.coeff) {
		return 0
	}
	return p.coeff[i]
}

// Set assigns the coefficient of X^i, growing the polynomial if necessary.
// Callers must call Trim (or perform another operation that trims) if this
// assignment could have zeroed the leading coefficient.
func (p *Polynomial) Set(i, v int) {
	if i < 0 {
		return
	}
	if i >= len(p.coeff) {
		grown := make([]int, i+1)
		copy(grown, p.coeff)
		p.coeff = grown
	}
	p.coeff[i] = v & p.field.Mask()
}

// Clone returns an independent copy.
func (p Polynomial) Clone() Polynomial {
	return Polynomial{field: p.field, coeff: append([]int(nil), p.coeff...)}
}

// trim drops trailing zero coefficients so the leading coefficient (if any)
// is non-zero, per the type's invariant.
func (p *Polynomial) trim() {
	n := len(p.coeff)
	for n > 0 && p.coeff[n-1] == 0 {
		n--
	}
	p.coeff = p.coeff[:n]
}

func (p Polynomial) sameField(o Polynomial) bool {
	return p.field != nil && o.field != nil && p.field.Equal(o.field)
}

// Add returns p+o (identical to Sub over GF(2^m)). Mismatched fields yield
// the invalid (zero-length) polynomial.
func (p Polynomial) Add(o Polynomial) Polynomial {
	if !p.sameField(o) {
		return Polynomial{}
	}
	n := len(p.coeff)
	if len(o.coeff) > n {
		n = len(o.coeff)
	}
	out := Polynomial{field: p.field, coeff: make([]int, n)}
	for i := 0; i < n; i++ {
		out.coeff[i] = p.At(i) ^ o.At(i)
	}
	out.trim()
	return out
}

// Sub returns p-o.
func (p Polynomial) Sub(o Polynomial) Polynomial {
	return p.Add(o)
}

// Mul returns p*o via schoolbook convolution over the field.
func (p Polynomial) Mul(o Polynomial) Polynomial {
	if !p.sameField(o) {
		return Polynomial{}
	}
	if p.Deg() < 0 || o.Deg() < 0 {
		return Polynomial{field: p.field}
	}
	out := Polynomial{field: p.field, coeff: make([]int, p.Deg()+o.Deg()+2)}
	for i, a := range p.coeff {
		if a == 0 {
			continue
		}
		for j, b := range o.coeff {
			if b == 0 {
				continue
			}
			out.coeff[i+j] ^= p.field.Mul(a, b)
		}
	}
	out.trim()
	return out
}

// MulScalar returns p scaled by the element e.
func (p Polynomial) MulScalar(e gf.Element) Polynomial {
	if p.field == nil || !p.field.Equal(e.Field()) {
		return Polynomial{}
	}
	out := Polynomial{field: p.field, coeff: make([]int, len(p.coeff))}
	for i, c := range p.coeff {
		out.coeff[i] = p.field.Mul(c, e.Poly())
	}
	out.trim()
	return out
}

// DivScalar returns p with every coefficient divided by the element e.
// e must be non-zero; division by zero yields 0 for every coefficient.
func (p Polynomial) DivScalar(e gf.Element) Polynomial {
	if p.field == nil || !p.field.Equal(e.Field()) {
		return Polynomial{}
	}
	out := Polynomial{field: p.field, coeff: make([]int, len(p.coeff))}
	for i, c := range p.coeff {
		out.coeff[i] = p.field.Div(c, e.Poly())
	}
	out.trim()
	return out
}

// DivMod performs polynomial long division with the high-degree coefficient
// as pivot: quotient has degree deg(p)-deg(divisor), remainder has degree
// less than deg(divisor). Both results are trimmed.
func (p Polynomial) DivMod(divisor Polynomial) (quotient, remainder Polynomial, err error) {
	if !p.sameField(divisor) {
		return Polynomial{}, Polynomial{}, errors.New("polynomial: DivMod operands belong to different fields")
	}
	if divisor.Deg() < 0 {
		return Polynomial{}, Polynomial{}, errors.New("polynomial: division by the zero polynomial")
	}
	if p.Deg() < divisor.Deg() {
		return Polynomial{field: p.field}, p.Clone(), nil
	}

	f := p.field
	lead := divisor.coeff[divisor.Deg()]
	rem := append([]int(nil), p.coeff...)
	qDeg := p.Deg() - divisor.Deg()
	q := make([]int, qDeg+1)

	for i := p.Deg(); i >= divisor.Deg(); i-- {
		c := f.Div(rem[i], lead)
		q[i-divisor.Deg()] = c
		if c == 0 {
			continue
		}
		for j := 0; j <= divisor.Deg(); j++ {
			rem[i-divisor.Deg()+j] ^= f.Mul(c, divisor.coeff[j])
		}
	}

	quotient = Polynomial{field: f, coeff: q}
	quotient.trim()
	remainder = Polynomial{field: f, coeff: rem[:divisor.Deg()]}
	remainder.trim()
	return quotient, remainder, nil
}

// Div returns p/divisor, discarding the remainder.
func (p Polynomial) Div(divisor Polynomial) (Polynomial, error) {
	q, _, err := p.DivMod(divisor)
	return q, err
}

// Mod returns p mod divisor.
func (p Polynomial) Mod(divisor Polynomial) (Polynomial, error) {
	_, r, err := p.DivMod(divisor)
	return r, err
}

// ModPower returns p mod X^power, i.e. p truncated to its lowest `power`
// coefficients.
func (p Polynomial) ModPower(power int) Polynomial {
	if power < 0 {
		power = 0
	}
	if power > len(p.coeff) {
		power = len(p.coeff)
	}
	out := Polynomial{field: p.field, coeff: append([]int(nil), p.coeff[:power]...)}
	out.trim()
	return out
}

// Shl returns p * X^n (prepend n zero coefficients).
func (p Polynomial) Shl(n int) Polynomial {
	if n <= 0 || p.Deg() < 0 {
		return p.Clone()
	}
	out := Polynomial{field: p.field, coeff: make([]int, len(p.coeff)+n)}
	copy(out.coeff[n:], p.coeff)
	return out
}

// Shr returns p / X^n (drop the n lowest coefficients, or the zero
// polynomial if n exceeds the degree).
func (p Polynomial) Shr(n int) Polynomial {
	if n <= 0 {
		return p.Clone()
	}
	if n >= len(p.coeff) {
		return Polynomial{field: p.field}
	}
	out := Polynomial{field: p.field, coeff: append([]int(nil), p.coeff[n:]...)}
	out.trim()
	return out
}

// Eval evaluates the polynomial at v using Horner-style summation of
// coeff[i]*v^i, with field multiplication throughout.
func (p Polynomial) Eval(v int) int {
	result := 0
	power := 1
	for _, c := range p.coeff {
		if c != 0 {
			result ^= p.field.Mul(c, power)
		}
		power = p.field.Mul(power, v)
	}
	return result
}

// EvalElement evaluates the polynomial at e and returns the result as an
// Element bound to the same field.
func (p Polynomial) EvalElement(e gf.Element) gf.Element {
	return gf.NewElement(p.field, p.Eval(e.Poly()))
}

// Derivative returns the formal derivative over GF(2): even-indexed
// coefficients (after shifting down by one) survive, odd-indexed
// coefficients vanish, since 2*c == 0 for any c in a field of characteristic 2.
func (p Polynomial) Derivative() Polynomial {
	if p.Deg() < 1 {
		return Polynomial{field: p.field}
	}
	out := make([]int, p.Deg())
	for i := 1; i < len(p.coeff); i += 2 {
		out[i-1] = p.coeff[i]
	}
	result := Polynomial{field: p.field, coeff: out}
	result.trim()
	return result
}

// Equal reports whether p and o have identical coefficients over the same field.
func (p Polynomial) Equal(o Polynomial) bool {
	if !p.sameField(o) {
		return p.field == nil && o.field == nil
	}
	if len(p.coeff) != len(o.coeff) {
		return false
	}
	for i := range p.coeff {
		if p.coeff[i] != o.coeff[i] {
			return false
		}
	}
	return true
}

// Coefficients returns a copy of the dense coefficient slice, constant term first.
func (p Polynomial) Coefficients() []int {
	return append([]int(nil), p.coeff...)
}

// GCD returns the greatest common divisor of a and b via the Euclidean
// algorithm: repeatedly replace (a,b) with (b mod a, a) until b mod a is the
// zero polynomial, returning the last non-zero remainder.
func GCD(a, b Polynomial) (Polynomial, error) {
	if !a.sameField(b) {
		return Polynomial{}, errors.New("polynomial: GCD operands belong to different fields")
	}
	for a.Deg() >= 0 {
		_, r, err := b.DivMod(a)
		if err != nil {
			return Polynomial{}, err
		}
		a, b = r, a
	}
	return b, nil
}
