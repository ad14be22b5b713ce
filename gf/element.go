// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package gf

// Element is a scalar bound to a Field: a (field, symbol) value pair.
// The Field pointer is borrowed, never owned — Element never outlives the
// Field it was built from in any meaningful sense, it just carries a
// reference to it. Arithmetic between Elements of different fields is
// rejected by returning the zero Element rather than panicking, matching
// the library-wide "no exceptions inside the codec" contract (spec §7).
type Element struct {
	field  *Field
	symbol int
}

// NewElement constructs an Element bound to f with the given symbol value,
// masked to the field's width.
func NewElement(f *Field, symbol int) Element {
	return Element{field: f, symbol: symbol & f.Mask()}
}

// Field returns the field this element is bound to.
func (e Element) Field() *Field { return e.field }

// Poly returns the raw symbol value (the "polynomial form" in spec terms).
func (e Element) Poly() int { return e.symbol }

func (e Element) sameField(o Element) bool {
	return e.field != nil && o.field != nil && e.field.Equal(o.field)
}

// Add returns e+o. Mismatched fields yield the zero element.
func (e Element) Add(o Element) Element {
	if !e.sameField(o) {
		return Element{}
	}
	return Element{field: e.field, symbol: e.field.Add(e.symbol, o.symbol)}
}

// Sub returns e-o (identical to Add over GF(2^m)).
func (e Element) Sub(o Element) Element {
	return e.Add(o)
}

// Mul returns e*o. Mismatched fields yield the zero element.
func (e Element) Mul(o Element) Element {
	if !e.sameField(o) {
		return Element{}
	}
	return Element{field: e.field, symbol: e.field.Mul(e.symbol, o.symbol)}
}

// Div returns e/o. Mismatched fields, or o==0, yield the zero element.
func (e Element) Div(o Element) Element {
	if !e.sameField(o) || o.symbol == 0 {
		return Element{}
	}
	return Element{field: e.field, symbol: e.field.Div(e.symbol, o.symbol)}
}

// Equal reports value equality: same field, same symbol.
func (e Element) Equal(o Element) bool {
	if e.symbol != o.symbol {
		return false
	}
	if e.field == nil || o.field == nil {
		return e.field == o.field
	}
	return e.field.Equal(o.field)
}

// IsZero reports whether the element's symbol is zero.
func (e Element) IsZero() bool { return e.symbol == 0 }
