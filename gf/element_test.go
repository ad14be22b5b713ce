// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package gf

import "testing"

func TestElementArithmetic(t *testing.T) {
	f := gf16(t, LogAntilog)
	a := NewElement(f, 5)
	b := NewElement(f, 9)

	if got := a.Add(b).Poly(); got != f.Add(5, 9) {
		t.Fatalf("Add = %d, want %d", got, f.Add(5, 9))
	}
	if got := a.Mul(b).Poly(); got != f.Mul(5, 9) {
		t.Fatalf("Mul = %d, want %d", got, f.Mul(5, 9))
	}
	if got := a.Div(b).Poly(); got != f.Div(5, 9) {
		t.Fatalf("Div = %d, want %d", got, f.Div(5, 9))
	}
}

func TestElementMismatchedFieldsYieldZero(t *testing.T) {
	f1 := gf16(t, LogAntilog)
	f2, err := NewField(8, []uint{1, 1, 1, 0, 0, 0, 0, 1, 1}, LogAntilog)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}

	a := NewElement(f1, 3)
	b := NewElement(f2, 3)

	if got := a.Add(b); !got.IsZero() {
		t.Fatalf("Add across mismatched fields = %v, want zero element", got)
	}
	if got := a.Mul(b); !got.IsZero() {
		t.Fatalf("Mul across mismatched fields = %v, want zero element", got)
	}
}

func TestElementEqual(t *testing.T) {
	f := gf16(t, LogAntilog)
	a := NewElement(f, 7)
	b := NewElement(f, 7)
	c := NewElement(f, 8)

	if !a.Equal(b) {
		t.Fatalf("equal elements compared unequal")
	}
	if a.Equal(c) {
		t.Fatalf("unequal elements compared equal")
	}
}
