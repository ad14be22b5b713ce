// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package rs

import (
	"github.com/ArashPartow/schifra/gf"
	"github.com/ArashPartow/schifra/polynomial"
	"github.com/pkg/errors"
)

// NewGenerator builds the sequential-root generator polynomial
// g(X) = Prod_{j=0}^{numElements-1} (X + alpha^(initialIndex+j)), the
// standard construction whose roots are the numElements consecutive field
// elements starting at alpha^initialIndex.
func NewGenerator(field *gf.Field, initialIndex, numElements int) (polynomial.Polynomial, error) {
	if initialIndex < 0 || initialIndex >= field.Size() {
		return polynomial.Polynomial{}, errors.Errorf("rs: generator initial index %d outside field range [0, %d)", initialIndex, field.Size())
	}
	if initialIndex+numElements > field.Size() {
		return polynomial.Polynomial{}, errors.Errorf("rs: generator initial index %d plus element count %d exceeds field size %d", initialIndex, numElements, field.Size())
	}

	x := polynomial.FromCoefficients(field, []int{0, 1})
	g := polynomial.FromElement(gf.NewElement(field, 1))

	for i := initialIndex; i < initialIndex+numElements; i++ {
		root := polynomial.FromElement(gf.NewElement(field, field.Alpha(i)))
		g = g.Mul(x.Add(root))
	}

	return g, nil
}
