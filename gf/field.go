// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

// Package gf implements binary extension fields GF(2^m) for m in [2, 16],
// constructed from a caller-supplied primitive polynomial.
package gf

import (
	"hash/fnv"

	"github.com/pkg/errors"
)

// GFError is the sentinel discrete-log value for log(0); it never appears
// as a symbol value and is only ever returned from Field.Index(0).
const GFError = -1

// MinPower and MaxPower bound the supported field degree m in GF(2^m).
const (
	MinPower = 2
	MaxPower = 16
)

// TableMode selects between fully materialised arithmetic tables and the
// log/anti-log fallback. Both paths are required to be bit-identical; the
// switch exists because a (2^m)^2 table is infeasible once m gets large
// (16 GiB at m=16).
type TableMode int

const (
	// LogAntilog performs every Mul/Div/Exp/Inverse through the alpha/index
	// tables, O(1) per op with O(N) memory.
	LogAntilog TableMode = iota
	// Tables precomputes full Mul/Div/Exp/Inverse lookup tables, O((2^m)^2)
	// memory, elided automatically for m >= tableElisionPower.
	Tables
)

// tableElisionPower is the field degree at or above which a Tables request
// is silently downgraded to LogAntilog: a (2^m)^2 table at m=16 is 16 GiB.
const tableElisionPower = 12

// Field is an immutable GF(2^m) instance. Once constructed its tables never
// mutate, so a single Field may be shared by any number of goroutines; it is
// the borrowed, never-owned handle that Element and polynomial.Polynomial
// carry a reference to.
type Field struct {
	power       uint
	size        int // 2^power - 1
	primPoly    []uint
	primPolyKey uint64

	alphaTo []int // alpha[i] = alpha^i, alpha[size] = 1
	indexOf []int // index[v] such that alpha^index[v] = v, index[0] = GFError

	mode       TableMode
	mulTable   [][]int
	divTable   [][]int
	expTable   [][]int
	mulInverse []int
}

// NewField constructs GF(2^power) from a primitive polynomial of degree
// power, given as power+1 coefficients ordered LSB to MSB (0/1 valued).
// mode selects the arithmetic strategy; a Tables request is downgraded to
// LogAntilog for power >= 12 (see tableElisionPower).
func NewField(power uint, primPoly []uint, mode TableMode) (*Field, error) {
	if power < MinPower || power > MaxPower {
		return nil, errors.Errorf("gf: power %d outside supported range [%d, %d]", power, MinPower, MaxPower)
	}
	if len(primPoly) != int(power)+1 {
		return nil, errors.Errorf("gf: primitive polynomial must have %d coefficients, got %d", power+1, len(primPoly))
	}
	if primPoly[power] != 1 {
		return nil, errors.New("gf: primitive polynomial must be of exact degree power (leading coefficient must be 1)")
	}

	if mode == Tables && power >= tableElisionPower {
		mode = LogAntilog
	}

	f := &Field{
		power:       power,
		size:        (1 << power) - 1,
		primPoly:    append([]uint(nil), primPoly...),
		primPolyKey: hashPrimPoly(primPoly),
		mode:        mode,
	}
	f.generate()
	if mode == Tables {
		f.buildTables()
	}
	return f, nil
}

func hashPrimPoly(p []uint) uint64 {
	h := fnv.New64a()
	buf := make([]byte, len(p))
	for i, c := range p {
		if c != 0 {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return h.Sum64()
}

// generate builds alpha/index by the standard LFSR construction described
// in spec.md section 4.1: alpha[0..m-1] are successive powers of two,
// alpha[m] is the XOR of alpha[i] for every i at which the primitive
// polynomial has a set bit, and every subsequent alpha[i] is derived from
// alpha[i-1] by a conditional shift-and-reduce.
func (f *Field) generate() {
	n := f.size
	m := int(f.power)

	f.alphaTo = make([]int, n+1)
	f.indexOf = make([]int, n+1)

	mask := 1
	f.alphaTo[m] = 0
	for i := 0; i < m; i++ {
		f.alphaTo[i] = mask
		f.indexOf[f.alphaTo[i]] = i
		if f.primPoly[i] != 0 {
			f.alphaTo[m] ^= mask
		}
		mask <<= 1
	}
	f.indexOf[f.alphaTo[m]] = m

	mask >>= 1
	for i := m + 1; i < n; i++ {
		if f.alphaTo[i-1] >= mask {
			f.alphaTo[i] = f.alphaTo[m] ^ ((f.alphaTo[i-1] ^ mask) << 1)
		} else {
			f.alphaTo[i] = f.alphaTo[i-1] << 1
		}
		f.indexOf[f.alphaTo[i]] = i
	}

	f.indexOf[0] = GFError
	f.alphaTo[n] = 1
}

func (f *Field) buildTables() {
	n := f.size + 1
	f.mulTable = make([][]int, n)
	f.divTable = make([][]int, n)
	f.expTable = make([][]int, n)
	for i := 0; i < n; i++ {
		f.mulTable[i] = make([]int, n)
		f.divTable[i] = make([]int, n)
		f.expTable[i] = make([]int, n)
		for j := 0; j < n; j++ {
			f.mulTable[i][j] = f.genMul(i, j)
			f.divTable[i][j] = f.genDiv(i, j)
			f.expTable[i][j] = f.genExp(i, j)
		}
	}
	f.mulInverse = make([]int, 2*n)
	for i := 0; i < n; i++ {
		f.mulInverse[i] = f.genInverse(i)
		f.mulInverse[i+n] = f.mulInverse[i]
	}
}

// Power returns m, the field's extension degree.
func (f *Field) Power() uint { return f.power }

// Size returns 2^m - 1, the number of non-zero field elements.
func (f *Field) Size() int { return f.size }

// Mask returns 2^m - 1, usable to truncate arbitrary integers to symbol width.
func (f *Field) Mask() int { return f.size }

// Alpha returns alpha^i for i in [0, size]; Alpha(size) == 1.
func (f *Field) Alpha(i int) int { return f.alphaTo[i] }

// Index returns the discrete log of v: the i such that Alpha(i) == v.
// Index(0) == GFError.
func (f *Field) Index(v int) int { return f.indexOf[v] }

// Mode reports whether this field was built with materialised tables.
func (f *Field) Mode() TableMode { return f.mode }

// Equal reports whether two fields were constructed with the same degree
// and primitive polynomial, so that polynomials/elements built against one
// may be used with the other.
func (f *Field) Equal(other *Field) bool {
	if f == other {
		return true
	}
	if other == nil {
		return false
	}
	return f.power == other.power && f.primPolyKey == other.primPolyKey
}

// normalize reduces x into [0, size) the way the original LFSR-based field
// construction does: repeated single-step wraparound rather than a plain
// modulo, matching schifra_galois_field.hpp's field::normalize exactly.
func (f *Field) normalize(x int) int {
	for x < 0 {
		x += f.size
	}
	for x >= f.size {
		x -= f.size
		x = (x >> f.power) + (x & f.size)
	}
	return x
}

func (f *Field) genMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.alphaTo[f.normalize(f.indexOf[a]+f.indexOf[b])]
}

func (f *Field) genDiv(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.alphaTo[f.normalize(f.indexOf[a]-f.indexOf[b]+f.size)]
}

func (f *Field) genExp(a, n int) int {
	if a == 0 {
		return 0
	}
	if n < 0 {
		for n < 0 {
			n += f.size
		}
		if n == 0 {
			return 1
		}
		return f.alphaTo[f.normalize(f.indexOf[a]*n)]
	}
	if n == 0 {
		return 1
	}
	return f.alphaTo[f.normalize(f.indexOf[a]*n)]
}

func (f *Field) genInverse(v int) int {
	return f.alphaTo[f.normalize(f.size-f.indexOf[v])]
}

// Add returns a XOR b (addition and subtraction coincide over GF(2^m)).
func (f *Field) Add(a, b int) int { return a ^ b }

// Sub returns a XOR b.
func (f *Field) Sub(a, b int) int { return a ^ b }

// Mul returns a*b in the field.
func (f *Field) Mul(a, b int) int {
	if f.mode == Tables {
		return f.mulTable[a][b]
	}
	return f.genMul(a, b)
}

// Div returns a/b in the field. Behaviour is undefined (returns 0) if b==0;
// callers must treat that as a failure at the call site, matching the
// original library's contract.
func (f *Field) Div(a, b int) int {
	if f.mode == Tables {
		return f.divTable[a][b]
	}
	return f.genDiv(a, b)
}

// Exp returns a^n in the field; negative n is handled by repeated addition
// of size until non-negative.
func (f *Field) Exp(a, n int) int {
	if f.mode == Tables {
		for n < 0 {
			n += f.size
		}
		return f.expTable[a][n%f.size]
	}
	return f.genExp(a, n)
}

// Inverse returns the multiplicative inverse of v. v must be non-zero.
func (f *Field) Inverse(v int) int {
	if f.mode == Tables {
		return f.mulInverse[v]
	}
	return f.genInverse(v)
}
