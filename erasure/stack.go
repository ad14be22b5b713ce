// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

// Package erasure spreads a stack of code_length codewords across a square
// interleave so that entire missing codewords (erasures at the scale of a
// whole block, not a single symbol) can be recovered: every row lost in
// storage shows up as a single erased symbol position in every row of the
// transposed stack, which an ordinary Reed-Solomon decoder already knows how
// to fix. When exactly FECLength rows are missing a single shared erasure
// locator serves every row, letting decode skip Berlekamp-Massey entirely.
package erasure

import (
	"github.com/ArashPartow/schifra/gf"
	"github.com/ArashPartow/schifra/interleave"
	"github.com/ArashPartow/schifra/polynomial"
	"github.com/ArashPartow/schifra/rs"
	"github.com/pkg/errors"
)

func rowsOf(blocks []*rs.Block) [][]int {
	rows := make([][]int, len(blocks))
	for i, b := range blocks {
		rows[i] = b.Data
	}
	return rows
}

// StackEncode encodes every block in the stack, then square-transposes the
// stack in place. The stack's stored (wire/disk) form is the transposed
// one; StackDecode and StackDecodeGeneral take it in that form and undo the
// transpose before correcting. FastDecoder.Decode takes the stack with the
// transpose already undone.
func StackEncode(enc *rs.Encoder, blocks []*rs.Block) error {
	for i, b := range blocks {
		if err := enc.Encode(b); err != nil {
			return errors.Wrapf(err, "erasure: failed to encode block %d", i)
		}
	}
	return interleave.Square(rowsOf(blocks))
}

// StackDecodeGeneral recovers a stack given the indices of whole rows of the
// stored (transposed) stack that were lost. It un-transposes the stack, then
// decodes every resulting
// row against the shared missingRows erasure list using an ordinary
// rs.Decoder — mixed errors and erasures within a row are corrected via the
// normal Berlekamp-Massey path. missingRows may contain anywhere from zero
// up to FECLength entries.
func StackDecodeGeneral(dec *rs.Decoder, blocks []*rs.Block, missingRows []int) error {
	if len(missingRows) == 0 {
		return nil
	}
	if err := interleave.Square(rowsOf(blocks)); err != nil {
		return err
	}
	for i, b := range blocks {
		if err := dec.Decode(b, missingRows); err != nil {
			return errors.Wrapf(err, "erasure: failed to decode block %d", i)
		}
	}
	return nil
}

// FastDecoder is the erasure-only fast path: it assumes missingRows names
// exactly FECLength whole rows, all of them genuine erasures with no other
// errors present anywhere in the stack, and nothing else. Given that, a
// single shared erasure-locator polynomial and its derivative serve every
// row, and only one Chien search is needed instead of one per row. Decode
// returns an error when the erasure count or the block count is wrong, or
// when an erasure lies outside the data positions [0, DataLength). Errors
// elsewhere in the stack beyond the named erasures are not detected.
type FastDecoder struct {
	dec *rs.Decoder
}

// NewFastDecoder wraps an rs.Decoder for erasure-only stack recovery.
func NewFastDecoder(dec *rs.Decoder) *FastDecoder {
	return &FastDecoder{dec: dec}
}

// Decoder returns the rs.Decoder backing this fast path.
func (fd *FastDecoder) Decoder() *rs.Decoder { return fd.dec }

// Decode corrects blocks in place. Each block must already hold one
// codeword, i.e. the stored stack's transpose must already be undone, as
// StackDecode does just before calling here; erasures must have exactly
// FECLength entries, one per missing stored row.
func (fd *FastDecoder) Decode(blocks []*rs.Block, erasures []int) error {
	geo := fd.dec.Geometry()
	if len(erasures) != geo.FECLength {
		return errors.Errorf("erasure: fast decoder requires exactly %d erasures, got %d", geo.FECLength, len(erasures))
	}
	if len(blocks) != geo.CodeLength {
		return errors.Errorf("erasure: fast decoder requires %d blocks, got %d", geo.CodeLength, len(blocks))
	}

	field := fd.dec.Field()

	syndromes := make([]polynomial.Polynomial, len(blocks))
	for i, b := range blocks {
		received := fd.dec.LoadMessage(b)
		syndromes[i], _ = fd.dec.ComputeSyndromePolynomial(received)
	}

	locations := fd.dec.ErasureLocationsFor(erasures)
	gamma := polynomial.FromElement(gf.NewElement(field, 1))
	for _, loc := range locations {
		gamma = gamma.Mul(fd.dec.GammaFactorAt(loc))
	}

	gammaRoots := fd.findRootsInData(gamma, geo.DataLength)
	if len(gammaRoots) != gamma.Deg() {
		return errors.New("erasure: could not locate every erasure within the data range; missing rows are not all reconstructible by the fast path")
	}

	omega := make([]polynomial.Polynomial, len(blocks))
	for i := range blocks {
		omega[i] = gamma.Mul(syndromes[i]).ModPower(geo.FECLength)
	}
	gammaDerivative := gamma.Derivative()

	for _, loc := range gammaRoots {
		alphaInverse := field.Alpha(loc)
		denominator := gammaDerivative.Eval(alphaInverse)
		if denominator == 0 {
			return errors.New("erasure: zero derivative encountered while correcting an erasure location")
		}
		rootExponent := fd.dec.RootExponentAt(loc)
		for j, b := range blocks {
			numerator := field.Mul(omega[j].Eval(alphaInverse), rootExponent)
			b.Data[loc-1] ^= field.Div(numerator, denominator)
		}
	}

	return nil
}

// findRootsInData is a Chien search restricted to [1, dataLength]. An
// erasure at codeword position p has its root at p+1, so only erasures at
// data positions [0, dataLength) are found.
func (fd *FastDecoder) findRootsInData(gamma polynomial.Polynomial, dataLength int) []int {
	field := fd.dec.Field()
	degree := gamma.Deg()
	roots := make([]int, 0, degree)
	for i := 1; i <= dataLength; i++ {
		if gamma.Eval(field.Alpha(i)) == 0 {
			roots = append(roots, i)
			if len(roots) == degree {
				break
			}
		}
	}
	return roots
}

// StackDecode mirrors the dispatch a caller holding a FastDecoder would
// want: no missing rows is a no-op, exactly FECLength missing rows takes
// the erasure-only fast path, and anything else (including an erasure
// count the fast path cannot serve) falls back to the general
// Berlekamp-Massey path via the same underlying rs.Decoder.
func StackDecode(fd *FastDecoder, blocks []*rs.Block, missingRows []int) error {
	if len(missingRows) == 0 {
		return nil
	}
	geo := fd.dec.Geometry()
	if len(missingRows) == geo.FECLength {
		if err := interleave.Square(rowsOf(blocks)); err != nil {
			return err
		}
		return fd.Decode(blocks, missingRows)
	}
	return StackDecodeGeneral(fd.dec, blocks, missingRows)
}
