// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package rs

import "testing"

func TestEncodeProducesZeroSyndromeCodeword(t *testing.T) {
	_, geo, enc, dec := newTestCodec(t)

	b := NewBlock(geo)
	fillPayload(b, 3)

	if err := enc.Encode(b); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := dec.Decode(b, nil); err != nil {
		t.Fatalf("Decode of a freshly-encoded codeword failed: %v", err)
	}
	if b.ErrorsDetected != 0 || b.Unrecoverable {
		t.Fatalf("Decode reported errors on a clean codeword: %+v", b)
	}
}

func TestEncodeAllZeroMessageRoundTrips(t *testing.T) {
	_, geo, enc, dec := newTestCodec(t)

	b := NewBlock(geo)
	if err := enc.Encode(b); err != nil {
		t.Fatalf("Encode of an all-zero message: %v", err)
	}
	if b.Error != NoError {
		t.Fatalf("Error = %v, want NoError", b.Error)
	}
	if err := dec.Decode(b, nil); err != nil {
		t.Fatalf("Decode of a freshly-encoded all-zero codeword failed: %v", err)
	}
	if b.ErrorsDetected != 0 || b.Unrecoverable {
		t.Fatalf("Decode reported errors on a clean all-zero codeword: %+v", b)
	}
}

func TestEncodeRejectsGeneratorDegreeMismatch(t *testing.T) {
	f, geo, _, _ := newTestCodec(t)
	badGenerator, err := NewGenerator(f, 0, geo.FECLength+1)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if _, err := NewEncoder(f, badGenerator, geo); err == nil {
		t.Fatalf("expected error constructing an encoder with a mismatched generator degree")
	}
}

func TestEncodeInvalidGeometryField(t *testing.T) {
	f := field15(t)
	geo, err := NewGeometry(10, 4) // CodeLength != field.Size()
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

	b := NewBlock(geo)
	if err := enc.Encode(b); err == nil {
		t.Fatalf("expected error encoding with a geometry that does not match the field size")
	}
	if b.Error != EncoderErrorInvalidEncoder {
		t.Fatalf("Error = %v, want EncoderErrorInvalidEncoder", b.Error)
	}
}
