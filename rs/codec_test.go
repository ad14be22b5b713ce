// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package rs

import (
	"testing"

	"github.com/ArashPartow/schifra/gf"
)

// newTestCodec builds a (15,11) code over GF(2^4): 4 parity symbols, able to
// correct up to 2 errors, or 4 erasures, or combinations in between.
func newTestCodec(t *testing.T) (*gf.Field, Geometry, *Encoder, *Decoder) {
	t.Helper()
	f := field15(t)
	geo, err := NewGeometry(15, 4)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	generator, err := NewGenerator(f, 0, geo.FECLength)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	enc, err := NewEncoder(f, generator, geo)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	dec := NewDecoder(f, geo, 0)
	return f, geo, enc, dec
}

func fillPayload(b *Block, seed int) {
	data := b.DataSymbols()
	for i := range data {
		data[i] = (seed + i*7 + 1) & 0xF
	}
}

func payloadsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
