// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package rs

import (
	"github.com/ArashPartow/schifra/gf"
	"github.com/ArashPartow/schifra/polynomial"
	"github.com/pkg/errors"
)

// Decoder corrects errors and erasures in a received codeword via syndrome
// computation, a modified Berlekamp-Massey search for the error locator
// polynomial, Chien search for its roots, and the Forney algorithm for the
// error magnitudes at those roots.
type Decoder struct {
	valid           bool
	field           *gf.Field
	geo             Geometry
	genInitialIndex int

	rootExponentTable     []int
	syndromeExponentTable []int
	gammaTable            []polynomial.Polynomial
}

// NewDecoder binds field and geo, precomputing the lookup tables the decode
// pipeline reuses on every call. genInitialIndex must match the generator
// polynomial's initial root index used at encode time.
func NewDecoder(field *gf.Field, geo Geometry, genInitialIndex int) *Decoder {
	d := &Decoder{
		valid:           geo.CodeLength == field.Size(),
		field:           field,
		geo:             geo,
		genInitialIndex: genInitialIndex,
	}
	if d.valid {
		d.buildLookupTables()
	}
	return d
}

// Field returns the field this decoder is bound to.
func (d *Decoder) Field() *gf.Field { return d.field }

// Geometry returns the code shape this decoder is bound to.
func (d *Decoder) Geometry() Geometry { return d.geo }

// RootExponentAt exposes the precomputed root-exponent table entry at a
// Chien-search location, for callers (the erasure-stack fast path) that
// share this decoder's Forney-style magnitude computation across many rows
// without re-deriving the table.
func (d *Decoder) RootExponentAt(location int) int { return d.rootExponentTable[location] }

// GammaFactorAt exposes the precomputed (1 + X*alpha^i) factor used to build
// an erasure locator polynomial, for callers that assemble their own gamma
// product across a shared erasure list.
func (d *Decoder) GammaFactorAt(i int) polynomial.Polynomial { return d.gammaTable[i] }

// LoadMessage exposes the receive-polynomial construction (symbol order
// reversal) for callers that need it ahead of their own syndrome/gamma work.
func (d *Decoder) LoadMessage(b *Block) polynomial.Polynomial { return d.loadMessage(b) }

// ComputeSyndromePolynomial exposes syndrome computation for callers
// building their own decode pipeline (the erasure-stack fast path computes
// one syndrome per row up front, before a single shared gamma pass).
func (d *Decoder) ComputeSyndromePolynomial(received polynomial.Polynomial) (polynomial.Polynomial, int) {
	return d.computeSyndrome(received)
}

// ErasureLocationsFor converts codeword-index erasure positions into the
// reversed locator-polynomial positions that index the gamma table
// (GammaFactorAt) when building the erasure locator.
func (d *Decoder) ErasureLocationsFor(erasures []int) []int {
	return d.prepareErasureLocations(erasures)
}

func (d *Decoder) buildLookupTables() {
	n := d.field.Size()

	d.rootExponentTable = make([]int, n+1)
	for i := 0; i <= n; i++ {
		d.rootExponentTable[i] = d.field.Exp(d.field.Alpha(d.geo.CodeLength-i), 1-d.genInitialIndex)
	}

	d.syndromeExponentTable = make([]int, d.geo.FECLength)
	for i := 0; i < d.geo.FECLength; i++ {
		d.syndromeExponentTable[i] = d.field.Alpha(d.genInitialIndex + i)
	}

	d.gammaTable = make([]polynomial.Polynomial, n+1)
	for i := 0; i <= n; i++ {
		d.gammaTable[i] = polynomial.FromCoefficients(d.field, []int{1, d.field.Alpha(i)})
	}
}

// Decode corrects b in place given a list of known erasure positions
// (indices into b.Data; may be nil/empty). It returns a non-nil error when
// the codeword cannot be corrected; b.Error and b.Unrecoverable record why.
func (d *Decoder) Decode(b *Block, erasures []int) error {
	b.ErrorsDetected, b.ErrorsCorrected, b.ZeroNumerators = 0, 0, 0
	b.Unrecoverable = false
	b.Error = NoError

	if !d.valid || len(erasures) > d.geo.FECLength {
		b.ErrorsDetected, b.ErrorsCorrected, b.ZeroNumerators = 0, 0, 0
		b.Unrecoverable = true
		b.Error = DecoderErrorInvalidDecoder
		return errors.New("rs: decoder invalid for this geometry, or too many erasures supplied")
	}

	received := d.loadMessage(b)
	syndrome, errFlag := d.computeSyndrome(received)
	if errFlag == 0 {
		b.ErrorsDetected, b.ErrorsCorrected, b.ZeroNumerators = 0, 0, 0
		b.Unrecoverable = false
		return nil
	}

	lambda := polynomial.FromElement(gf.NewElement(d.field, 1))
	if len(erasures) > 0 {
		locations := d.prepareErasureLocations(erasures)
		for _, loc := range locations {
			lambda = lambda.Mul(d.gammaTable[loc])
		}
	}

	if len(erasures) < d.geo.FECLength {
		lambda = d.modifiedBerlekampMassey(lambda, syndrome, len(erasures))
	}

	errorLocations := d.findRoots(lambda)

	switch {
	case len(errorLocations) == 0:
		// Non-zero syndrome yet no roots found: more errors are present
		// than this code can detect and locate.
		b.ErrorsDetected, b.ErrorsCorrected, b.ZeroNumerators = 0, 0, 0
		b.Unrecoverable = true
		b.Error = DecoderErrorNonZeroSyndrome
		return errors.New("rs: non-zero syndrome but no error locations found")
	case (2*len(errorLocations) - len(erasures)) > d.geo.FECLength:
		b.ErrorsDetected = len(errorLocations)
		b.ErrorsCorrected, b.ZeroNumerators = 0, 0
		b.Unrecoverable = true
		b.Error = DecoderErrorTooManyErrors
		return errors.New("rs: too many errors/erasures for this code to correct")
	default:
		b.ErrorsDetected = len(errorLocations)
	}

	return d.forney(errorLocations, lambda, syndrome, b)
}

// loadMessage reverses b's codeword into a degree CodeLength-1 polynomial,
// the orientation every subsequent step (syndromes, Chien search) expects.
func (d *Decoder) loadMessage(b *Block) polynomial.Polynomial {
	received := polynomial.NewDegree(d.field, d.geo.CodeLength-1)
	for i := 0; i < d.geo.CodeLength; i++ {
		received.Set(d.geo.CodeLength-1-i, b.Data[i])
	}
	return received
}

func (d *Decoder) prepareErasureLocations(erasures []int) []int {
	locations := make([]int, len(erasures))
	for i, loc := range erasures {
		locations[i] = d.geo.CodeLength - 1 - loc
	}
	return locations
}

func (d *Decoder) computeSyndrome(received polynomial.Polynomial) (polynomial.Polynomial, int) {
	syndrome := polynomial.NewDegree(d.field, d.geo.FECLength-1)
	errFlag := 0
	for i := 0; i < d.geo.FECLength; i++ {
		v := received.Eval(d.syndromeExponentTable[i])
		syndrome.Set(i, v)
		errFlag |= v
	}
	return syndrome, errFlag
}

// findRoots performs a Chien search: evaluate the locator polynomial at
// every alpha^i, i in [1, CodeLength], collecting the roots until as many
// have been found as the polynomial's degree demands.
func (d *Decoder) findRoots(lambda polynomial.Polynomial) []int {
	degree := lambda.Deg()
	roots := make([]int, 0, d.geo.FECLength<<1)
	for i := 1; i <= d.geo.CodeLength; i++ {
		if lambda.Eval(d.field.Alpha(i)) == 0 {
			roots = append(roots, i)
			if len(roots) == degree {
				break
			}
		}
	}
	return roots
}

func (d *Decoder) computeDiscrepancy(lambda, syndrome polynomial.Polynomial, l, round int) int {
	upper := l
	if lambda.Deg() < upper {
		upper = lambda.Deg()
	}
	discrepancy := 0
	for i := 0; i <= upper; i++ {
		discrepancy ^= d.field.Mul(lambda.At(i), syndrome.At(round-i))
	}
	return discrepancy
}

// modifiedBerlekampMassey finds the shortest-length LFSR (the error-locator
// polynomial lambda) that reproduces the syndrome sequence, starting from
// the erasure locator and the erasure count as the initial register length.
func (d *Decoder) modifiedBerlekampMassey(lambda, syndrome polynomial.Polynomial, erasureCount int) polynomial.Polynomial {
	i := -1
	l := erasureCount
	previousLambda := lambda.Shl(1)

	for round := erasureCount; round < d.geo.FECLength; round++ {
		discrepancy := d.computeDiscrepancy(lambda, syndrome, l, round)

		if discrepancy != 0 {
			discElem := gf.NewElement(d.field, discrepancy)
			tau := lambda.Sub(previousLambda.MulScalar(discElem))

			if l < round-i {
				tmp := round - i
				i = round - l
				l = tmp
				previousLambda = lambda.DivScalar(discElem)
			}
			lambda = tau
		}
		previousLambda = previousLambda.Shl(1)
	}
	return lambda
}

// forney computes the error-magnitude polynomial and applies each
// correction to b in place.
func (d *Decoder) forney(errorLocations []int, lambda, syndrome polynomial.Polynomial, b *Block) error {
	omega := lambda.Mul(syndrome).ModPower(d.geo.FECLength)
	lambdaDerivative := lambda.Derivative()

	b.ErrorsCorrected = 0
	b.ZeroNumerators = 0

	for _, loc := range errorLocations {
		alphaInverse := d.field.Alpha(loc)
		numerator := d.field.Mul(omega.Eval(alphaInverse), d.rootExponentTable[loc])
		denominator := lambdaDerivative.Eval(alphaInverse)

		if numerator == 0 {
			b.ZeroNumerators++
			continue
		}
		if denominator == 0 {
			b.Unrecoverable = true
			b.Error = DecoderErrorInvalidSymbolCorrection
			return errors.New("rs: zero derivative encountered while correcting an error location")
		}
		b.Data[loc-1] ^= d.field.Div(numerator, denominator)
		b.ErrorsCorrected++
	}

	if lambda.Deg() == b.ErrorsDetected {
		return nil
	}
	b.Unrecoverable = true
	b.Error = DecoderErrorInvalidCodewordCorrection
	return errors.New("rs: error locator degree does not match the corrected error count")
}
