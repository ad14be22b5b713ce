// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package rs

import (
	"github.com/ArashPartow/schifra/gf"
	"github.com/ArashPartow/schifra/polynomial"
	"github.com/pkg/errors"
)

// ShortenedEncoder encodes a geometry smaller than the field's natural code
// length by virtually zero-padding the message up to natural length before
// delegating to a natural-length Encoder, then keeping only the parity
// symbols it produces.
type ShortenedEncoder struct {
	inner   *Encoder
	geo     Geometry
	natural Geometry
	padding int
}

// NewShortenedEncoder builds a ShortenedEncoder for geo against field and
// generator, both sized for the field's natural code length.
func NewShortenedEncoder(field *gf.Field, generator polynomial.Polynomial, geo Geometry) (*ShortenedEncoder, error) {
	natural := Geometry{CodeLength: field.Size(), FECLength: geo.FECLength, DataLength: field.Size() - geo.FECLength}
	padding := natural.DataLength - geo.DataLength
	if padding < 0 {
		return nil, errors.Errorf("rs: shortened data length %d exceeds natural capacity %d", geo.DataLength, natural.DataLength)
	}
	inner, err := NewEncoder(field, generator, natural)
	if err != nil {
		return nil, err
	}
	return &ShortenedEncoder{inner: inner, geo: geo, natural: natural, padding: padding}, nil
}

// Encode computes b's parity symbols, treating the missing leading symbols
// as zero without ever materialising them in b.
func (s *ShortenedEncoder) Encode(b *Block) error {
	natural := NewBlock(s.natural)
	copy(natural.Data[s.padding:s.padding+s.geo.DataLength], b.DataSymbols())

	if err := s.inner.Encode(natural); err != nil {
		b.CopyState(natural)
		return err
	}
	copy(b.FECSymbols(), natural.FECSymbols())
	b.CopyState(natural)
	return nil
}

// ShortenedDecoder mirrors ShortenedEncoder for decoding: it rebuilds the
// natural-length codeword with virtual leading zeros, shifts erasure
// positions accordingly, and copies the corrected payload back only on
// success.
type ShortenedDecoder struct {
	inner   *Decoder
	geo     Geometry
	natural Geometry
	padding int
}

// NewShortenedDecoder builds a ShortenedDecoder for geo against field, using
// genInitialIndex consistently with the encoder's generator polynomial.
func NewShortenedDecoder(field *gf.Field, geo Geometry, genInitialIndex int) (*ShortenedDecoder, error) {
	natural := Geometry{CodeLength: field.Size(), FECLength: geo.FECLength, DataLength: field.Size() - geo.FECLength}
	padding := natural.DataLength - geo.DataLength
	if padding < 0 {
		return nil, errors.Errorf("rs: shortened data length %d exceeds natural capacity %d", geo.DataLength, natural.DataLength)
	}
	return &ShortenedDecoder{inner: NewDecoder(field, natural, genInitialIndex), geo: geo, natural: natural, padding: padding}, nil
}

// Decode corrects b in place given erasure positions relative to b's own
// (shortened) indexing.
func (s *ShortenedDecoder) Decode(b *Block, erasures []int) error {
	natural := NewBlock(s.natural)
	copy(natural.Data[s.padding:], b.Data)

	shifted := make([]int, len(erasures))
	for i, e := range erasures {
		shifted[i] = e + s.padding
	}

	err := s.inner.Decode(natural, shifted)
	b.CopyState(natural)
	if err != nil {
		return err
	}
	copy(b.Data, natural.Data[s.padding:])
	return nil
}
