// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

// Package symbols packs and unpacks the field elements a codec operates on
// (ints in [0, 2^m)) to and from a plain byte stream, for every symbol
// width a file-streaming wrapper around the codec would need: 2 and 4 bits
// tightly packed several-to-an-octet, 8 bits one-to-one, and 16/24 bits
// spread little-endian across multiple octets.
package symbols

import "github.com/pkg/errors"

// Supported reports whether width is a symbol width this package packs.
func Supported(width int) bool {
	switch width {
	case 2, 4, 8, 16, 24:
		return true
	default:
		return false
	}
}

// Pack encodes symbols (each expected to fit within width bits) into a byte
// stream using the convention for that width:
//
//	width=2:  4 symbols per octet, LSB-first (symbol 0 occupies bits 0-1).
//	width=4:  2 symbols per octet, low nibble then high nibble.
//	width=8:  1 symbol per octet.
//	width=16: little-endian pair of octets per symbol.
//	width=24: three little-endian octets per symbol.
//
// The final partial octet/group, if any, is zero-padded in the unused high
// bits/trailing octets.
func Pack(width int, symbols []int) ([]byte, error) {
	switch width {
	case 2:
		return packSub8(symbols, 2, 4), nil
	case 4:
		return packSub8(symbols, 4, 2), nil
	case 8:
		return pack8(symbols), nil
	case 16:
		return packWide(symbols, 2), nil
	case 24:
		return packWide(symbols, 3), nil
	default:
		return nil, errors.Errorf("symbols: unsupported symbol width %d", width)
	}
}

// Unpack is Pack's inverse: it reads count symbols of the given width back
// out of data. Any padding bits contributed by Pack's final partial octet
// are not meaningful and are not validated against zero.
func Unpack(width int, data []byte, count int) ([]int, error) {
	switch width {
	case 2:
		return unpackSub8(data, 2, 4, count)
	case 4:
		return unpackSub8(data, 4, 2, count)
	case 8:
		return unpack8(data, count)
	case 16:
		return unpackWide(data, 2, count)
	case 24:
		return unpackWide(data, 3, count)
	default:
		return nil, errors.Errorf("symbols: unsupported symbol width %d", width)
	}
}

// packSub8 packs symbols narrower than a byte, perGroup to an octet,
// LSB-first: symbol i within a group occupies bits [i*width, i*width+width).
func packSub8(syms []int, width, perGroup int) []byte {
	out := make([]byte, 0, (len(syms)+perGroup-1)/perGroup)
	var cur byte
	var filled int
	for _, s := range syms {
		cur |= byte(s&((1<<width)-1)) << uint(filled*width)
		filled++
		if filled == perGroup {
			out = append(out, cur)
			cur, filled = 0, 0
		}
	}
	if filled > 0 {
		out = append(out, cur)
	}
	return out
}

func unpackSub8(data []byte, width, perGroup, count int) ([]int, error) {
	needed := (count + perGroup - 1) / perGroup
	if len(data) < needed {
		return nil, errors.Errorf("symbols: need %d octets for %d symbols at width %d, have %d", needed, count, width, len(data))
	}
	out := make([]int, count)
	mask := (1 << width) - 1
	for i := 0; i < count; i++ {
		b := data[i/perGroup]
		shift := uint((i % perGroup) * width)
		out[i] = int((b >> shift) & byte(mask))
	}
	return out, nil
}

func pack8(syms []int) []byte {
	out := make([]byte, len(syms))
	for i, s := range syms {
		out[i] = byte(s)
	}
	return out
}

func unpack8(data []byte, count int) ([]int, error) {
	if len(data) < count {
		return nil, errors.Errorf("symbols: need %d octets for %d symbols at width 8, have %d", count, count, len(data))
	}
	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = int(data[i])
	}
	return out, nil
}

// packWide packs symbols octetsPerSymbol octets apiece, little-endian.
func packWide(syms []int, octetsPerSymbol int) []byte {
	out := make([]byte, len(syms)*octetsPerSymbol)
	for i, s := range syms {
		for o := 0; o < octetsPerSymbol; o++ {
			out[i*octetsPerSymbol+o] = byte(s >> uint(8*o))
		}
	}
	return out
}

func unpackWide(data []byte, octetsPerSymbol, count int) ([]int, error) {
	needed := count * octetsPerSymbol
	if len(data) < needed {
		return nil, errors.Errorf("symbols: need %d octets for %d symbols at %d octets each, have %d", needed, count, octetsPerSymbol, len(data))
	}
	out := make([]int, count)
	for i := 0; i < count; i++ {
		v := 0
		for o := 0; o < octetsPerSymbol; o++ {
			v |= int(data[i*octetsPerSymbol+o]) << uint(8*o)
		}
		out[i] = v
	}
	return out, nil
}
