// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

// Package rs implements systematic Reed-Solomon encoding and decoding over a
// gf.Field, following the classical generator-polynomial construction and a
// syndrome/Berlekamp-Massey/Chien-search/Forney decode pipeline.
package rs

import "github.com/pkg/errors"

// Geometry describes a Reed-Solomon code's shape: CodeLength (N) symbols per
// codeword, FECLength (R) of which are parity, and DataLength (K) of which
// carry payload. N == K + R always.
type Geometry struct {
	CodeLength int
	FECLength  int
	DataLength int
}

// NewGeometry validates and constructs a Geometry from a code length and FEC
// length, deriving DataLength = CodeLength - FECLength.
func NewGeometry(codeLength, fecLength int) (Geometry, error) {
	if codeLength <= 0 {
		return Geometry{}, errors.Errorf("rs: code length %d must be positive", codeLength)
	}
	if fecLength <= 0 || fecLength >= codeLength {
		return Geometry{}, errors.Errorf("rs: fec length %d must be in (0, %d)", fecLength, codeLength)
	}
	return Geometry{CodeLength: codeLength, FECLength: fecLength, DataLength: codeLength - fecLength}, nil
}
