// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package rs

import (
	"github.com/ArashPartow/schifra/gf"
	"github.com/ArashPartow/schifra/polynomial"
	"github.com/pkg/errors"
)

// Encoder performs systematic Reed-Solomon encoding: the message symbols
// pass through unchanged, with FECLength parity symbols appended, computed
// as the message polynomial (shifted into the high-order terms) reduced
// modulo the generator polynomial.
type Encoder struct {
	valid     bool
	field     *gf.Field
	generator polynomial.Polynomial
	geo       Geometry
}

// NewEncoder binds field and generator to geo. generator must have degree
// FECLength, the number of parity symbols it is meant to produce.
func NewEncoder(field *gf.Field, generator polynomial.Polynomial, geo Geometry) (*Encoder, error) {
	if generator.Deg() != geo.FECLength {
		return nil, errors.Errorf("rs: generator degree %d does not match fec length %d", generator.Deg(), geo.FECLength)
	}
	return &Encoder{
		valid:     geo.CodeLength == field.Size(),
		field:     field,
		generator: generator,
		geo:       geo,
	}, nil
}

// Encode computes b's parity symbols in place from its data symbols.
func (e *Encoder) Encode(b *Block) error {
	if !e.valid {
		b.Error = EncoderErrorInvalidEncoder
		return errors.New("rs: encoder geometry does not match the bound field size")
	}

	parities, err := e.msgPoly(b).Mod(e.generator)
	if err != nil {
		b.Error = EncoderErrorIncompatibleGenerator
		return errors.Wrap(err, "rs: encode")
	}

	// The remainder fills at most FECLength parity slots, so its degree is at
	// most FECLength-1. Mod trims leading zero coefficients, so a remainder
	// whose top parity symbols happen to be zero (or an all-zero message,
	// degree -1) has a lower degree and is still valid; only a degree above
	// FECLength-1 means the generator and the bound geometry are inconsistent.
	if deg := parities.Deg(); deg > e.geo.FECLength-1 {
		b.Error = EncoderErrorIncompatibleGenerator
		return errors.New("rs: encode: remainder degree incompatible with generator polynomial")
	}

	mask := e.field.Mask()
	for i := 0; i < e.geo.FECLength; i++ {
		b.Data[e.geo.DataLength+i] = parities.At(e.geo.FECLength-1-i) & mask
	}
	return nil
}

// msgPoly places b's data symbols into the high-order coefficients of a
// degree CodeLength-1 polynomial, reversed, leaving the low FECLength
// coefficients at zero — equivalent to shifting the message left by
// FECLength positions before reduction.
func (e *Encoder) msgPoly(b *Block) polynomial.Polynomial {
	msg := polynomial.NewDegree(e.field, e.geo.CodeLength-1)
	for i := e.geo.FECLength; i < e.geo.CodeLength; i++ {
		msg.Set(i, b.Data[e.geo.CodeLength-1-i])
	}
	return msg
}
