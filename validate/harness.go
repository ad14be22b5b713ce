// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package validate

import (
	"fmt"

	"github.com/ArashPartow/schifra/erasure"
	"github.com/ArashPartow/schifra/gf"
	"github.com/ArashPartow/schifra/polynomial"
	"github.com/ArashPartow/schifra/rs"
	"github.com/pkg/errors"
)

// Harness runs the quantified property sweeps against one constructed
// natural-length codec: round-trip, burst errors, burst erasures, mixed
// errors+erasures, over-capacity diagnostics, the two polynomial identities,
// erasure-channel stack recovery, and shortened-codec equivalence. The named
// end-to-end scenarios (RunScenarios) build their own codecs instead, since
// each names its own field and geometry.
type Harness struct {
	field           *gf.Field
	geo             rs.Geometry
	genInitialIndex int
	generator       polynomial.Polynomial
	enc             *rs.Encoder
	dec             *rs.Decoder
}

// NewHarness builds an encoder/decoder pair for geo against field, rooted at
// generator index genInitialIndex.
func NewHarness(field *gf.Field, geo rs.Geometry, genInitialIndex int) (*Harness, error) {
	generator, err := rs.NewGenerator(field, genInitialIndex, geo.FECLength)
	if err != nil {
		return nil, errors.Wrap(err, "validate: build generator")
	}
	enc, err := rs.NewEncoder(field, generator, geo)
	if err != nil {
		return nil, errors.Wrap(err, "validate: build encoder")
	}
	dec := rs.NewDecoder(field, geo, genInitialIndex)
	return &Harness{
		field:           field,
		geo:             geo,
		genInitialIndex: genInitialIndex,
		generator:       generator,
		enc:             enc,
		dec:             dec,
	}, nil
}

// RunInvariants runs every quantified property sweep and returns one result
// per invariant, in the order spec.md lists them.
func (h *Harness) RunInvariants() []InvariantResult {
	return []InvariantResult{
		h.checkRoundTrip(),
		h.checkBurstErrors(),
		h.checkBurstErasures(),
		h.checkMixedErrorsErasures(),
		h.checkOverCapacity(),
		h.checkDerivativeProductRule(),
		h.checkDivisionIdentity(),
		h.checkErasureChannelRecovery(),
		h.CheckShortenedEquivalence(h.geo.DataLength / 2),
	}
}

func cloneBlock(b *rs.Block) *rs.Block {
	return &rs.Block{Geometry: b.Geometry, Data: append([]int(nil), b.Data...)}
}

func dataEqual(a, b []int) bool {
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

// testMessages returns a handful of data fixtures sized to h.geo.DataLength:
// a few constant fills plus ascending/descending ramps, scaled to the
// field's symbol width, mirroring the spread of fixed test vectors the
// original validator builds rather than relying on any single message shape.
func (h *Harness) testMessages() [][]int {
	k := h.geo.DataLength
	mask := h.field.Mask()
	fills := []int{0x00, 0xAA, 0xA5, 0xFF, 0x5A}

	messages := make([][]int, 0, len(fills)+2)
	for _, v := range fills {
		m := make([]int, k)
		for i := range m {
			m[i] = v & mask
		}
		messages = append(messages, m)
	}

	ramp := make([]int, k)
	for i := range ramp {
		ramp[i] = i & mask
	}
	messages = append(messages, ramp)

	rampDown := make([]int, k)
	for i := range rampDown {
		rampDown[i] = (k - 1 - i) & mask
	}
	messages = append(messages, rampDown)

	return messages
}

func (h *Harness) encodedBlock(message []int) (*rs.Block, error) {
	b := rs.NewBlock(h.geo)
	copy(b.DataSymbols(), message)
	if err := h.enc.Encode(b); err != nil {
		return nil, err
	}
	return b, nil
}

// checkRoundTrip is invariant 1: an uncorrupted codeword decodes to itself
// with zero errors detected or corrected.
func (h *Harness) checkRoundTrip() InvariantResult {
	res := InvariantResult{Name: "round-trip-without-corruption"}
	for _, msg := range h.testMessages() {
		res.Cases++
		b, err := h.encodedBlock(msg)
		if err != nil {
			res.Failures++
			res.Detail = err.Error()
			continue
		}
		want := append([]int(nil), b.Data...)
		if err := h.dec.Decode(b, nil); err != nil {
			res.Failures++
			res.Detail = err.Error()
			continue
		}
		if !dataEqual(b.Data, want) || b.ErrorsDetected != 0 || b.ErrorsCorrected != 0 {
			res.Failures++
		}
	}
	return res
}

// checkBurstErrors is invariant 2: a burst of E consecutive symbol errors,
// E in [1, FECLength/2], starting at every codeword position, is always
// corrected exactly.
func (h *Harness) checkBurstErrors() InvariantResult {
	res := InvariantResult{Name: "burst-errors"}
	n := h.geo.CodeLength
	maxE := h.geo.FECLength / 2
	mask := h.field.Mask()

	for _, msg := range h.testMessages() {
		base, err := h.encodedBlock(msg)
		if err != nil {
			res.Cases++
			res.Failures++
			res.Detail = err.Error()
			continue
		}
		for e := 1; e <= maxE; e++ {
			for start := 0; start < n; start++ {
				res.Cases++
				b := cloneBlock(base)
				for i := 0; i < e; i++ {
					b.Data[(start+i)%n] ^= mask
				}
				if err := h.dec.Decode(b, nil); err != nil {
					res.Failures++
					continue
				}
				if !dataEqual(b.Data, base.Data) || b.ErrorsDetected != e || b.ErrorsCorrected != e {
					res.Failures++
				}
			}
		}
	}
	return res
}

// checkBurstErasures is invariant 3: a burst of S consecutive erasures,
// S in [1, FECLength], starting at every codeword position, is always
// corrected, and errors_detected always equals errors_corrected plus
// zero_numerators.
func (h *Harness) checkBurstErasures() InvariantResult {
	res := InvariantResult{Name: "burst-erasures"}
	n := h.geo.CodeLength
	r := h.geo.FECLength

	for _, msg := range h.testMessages() {
		base, err := h.encodedBlock(msg)
		if err != nil {
			res.Cases++
			res.Failures++
			res.Detail = err.Error()
			continue
		}
		for s := 1; s <= r; s++ {
			for start := 0; start < n; start++ {
				res.Cases++
				b := cloneBlock(base)
				erasures := make([]int, s)
				for i := 0; i < s; i++ {
					pos := (start + i) % n
					b.Data[pos] = 0
					erasures[i] = pos
				}
				if err := h.dec.Decode(b, erasures); err != nil {
					res.Failures++
					continue
				}
				if !dataEqual(b.Data, base.Data) {
					res.Failures++
					continue
				}
				if b.ErrorsDetected != b.ErrorsCorrected+b.ZeroNumerators {
					res.Failures++
				}
			}
		}
	}
	return res
}

// arrangement is how a mixed errors+erasures case lays the two groups of
// corrupted positions out relative to one another, mirroring the original
// validator's "errors then erasures" / "erasures then errors" / interleaved /
// distanced stages.
type arrangement int

const (
	erasuresThenErrors arrangement = iota
	errorsThenErasures
	interleavedErrorsErasures
	spacedErrorsErasures
)

// offsets returns the error and erasure positions (relative to an arbitrary
// start) for errCount errors and eraCount erasures laid out per arr; for
// spacedErrorsErasures, distance extra positions separate the two groups.
func offsets(errCount, eraCount int, arr arrangement, distance int) (errOff, eraOff []int) {
	switch arr {
	case erasuresThenErrors:
		for i := 0; i < eraCount; i++ {
			eraOff = append(eraOff, i)
		}
		for i := 0; i < errCount; i++ {
			errOff = append(errOff, eraCount+i)
		}
	case errorsThenErasures:
		for i := 0; i < errCount; i++ {
			errOff = append(errOff, i)
		}
		for i := 0; i < eraCount; i++ {
			eraOff = append(eraOff, errCount+i)
		}
	case interleavedErrorsErasures:
		pos := 0
		for i := 0; i < errCount || i < eraCount; i++ {
			if i < errCount {
				errOff = append(errOff, pos)
				pos++
			}
			if i < eraCount {
				eraOff = append(eraOff, pos)
				pos++
			}
		}
	case spacedErrorsErasures:
		for i := 0; i < eraCount; i++ {
			eraOff = append(eraOff, i)
		}
		for i := 0; i < errCount; i++ {
			errOff = append(errOff, eraCount+distance+i)
		}
	}
	return errOff, eraOff
}

// checkMixedErrorsErasures is invariant 4: for every (E,S) with 2E+S <=
// FECLength, and for consecutive (both orderings), interleaved, and
// distance-separated arrangements of E errors and S erasures, decode always
// recovers the original codeword. Start position and distance are sampled
// rather than swept exhaustively (start every startStride positions;
// distance from a fixed small set spanning the named [0,10] range) to keep
// the sweep's case count tractable — the original validator bounds its own
// analogous stages the same way (stage7/stage8's "scale" parameter) rather
// than attempting literal exhaustion.
func (h *Harness) checkMixedErrorsErasures() InvariantResult {
	res := InvariantResult{Name: "mixed-errors-and-erasures"}
	n := h.geo.CodeLength
	r := h.geo.FECLength
	mask := h.field.Mask()

	base, err := h.encodedBlock(h.testMessages()[0])
	if err != nil {
		res.Cases, res.Failures = 1, 1
		res.Detail = err.Error()
		return res
	}

	arrangements := []arrangement{erasuresThenErrors, errorsThenErasures, interleavedErrorsErasures, spacedErrorsErasures}
	distances := []int{0, 2, 5, 10}
	const startStride = 3

	for e := 0; 2*e <= r; e++ {
		for s := 0; 2*e+s <= r; s++ {
			if e == 0 && s == 0 {
				continue
			}
			for _, arr := range arrangements {
				ds := []int{0}
				if arr == spacedErrorsErasures {
					ds = distances
				}
				for _, d := range ds {
					if arr == spacedErrorsErasures && e+s+d > n {
						continue // would wrap and collide with itself; not a valid case at this geometry
					}
					errOff, eraOff := offsets(e, s, arr, d)
					for start := 0; start < n; start += startStride {
						res.Cases++
						b := cloneBlock(base)
						for _, off := range errOff {
							b.Data[(start+off)%n] ^= mask
						}
						erasures := make([]int, 0, len(eraOff))
						for _, off := range eraOff {
							pos := (start + off) % n
							b.Data[pos] = 0
							erasures = append(erasures, pos)
						}
						if err := h.dec.Decode(b, erasures); err != nil {
							res.Failures++
							continue
						}
						if !dataEqual(b.Data, base.Data) {
							res.Failures++
						}
					}
				}
			}
		}
	}
	return res
}

// checkOverCapacity is invariant 5: when 2E+S exceeds FECLength, decode must
// either report failure via both a non-nil error and Block.Unrecoverable, or
// neither — the return value must never disagree with the diagnostic field,
// per spec.md section 6's "the return value is redundant with unrecoverable"
// contract. A silent miscorrection (decode succeeds but returns wrong data)
// is explicitly not treated as a failure here: spec.md makes no guarantee
// beyond this consistency for over-capacity corruption.
func (h *Harness) checkOverCapacity() InvariantResult {
	res := InvariantResult{Name: "over-capacity-diagnostics-consistent"}
	n := h.geo.CodeLength
	mask := h.field.Mask()
	overE := h.geo.FECLength/2 + 1

	base, err := h.encodedBlock(h.testMessages()[0])
	if err != nil {
		res.Cases, res.Failures = 1, 1
		res.Detail = err.Error()
		return res
	}

	for start := 0; start < n; start++ {
		res.Cases++
		b := cloneBlock(base)
		for i := 0; i < overE; i++ {
			b.Data[(start+i)%n] ^= mask
		}
		err := h.dec.Decode(b, nil)
		if (err == nil) == b.Unrecoverable {
			res.Failures++
			res.Detail = fmt.Sprintf("start=%d: err=%v but Unrecoverable=%v", start, err, b.Unrecoverable)
		}
	}
	return res
}

// checkDerivativeProductRule is invariant 6: (p*q)' == p'*q + p*q' for
// sample polynomials over the bound field.
func (h *Harness) checkDerivativeProductRule() InvariantResult {
	res := InvariantResult{Name: "derivative-product-rule"}
	mask := h.field.Mask()
	samples := [][]int{
		{1},
		{1, 1},
		{0, 1, 0, 1, 1},
		{mask, mask & 5, 0, 1},
		{mask & 3, mask & 7, mask & 1, mask & 2, mask & 9},
	}

	for _, pc := range samples {
		for _, qc := range samples {
			res.Cases++
			p := polynomial.FromCoefficients(h.field, pc)
			q := polynomial.FromCoefficients(h.field, qc)
			lhs := p.Mul(q).Derivative()
			rhs := p.Derivative().Mul(q).Add(p.Mul(q.Derivative()))
			if !lhs.Equal(rhs) {
				res.Failures++
			}
		}
	}
	return res
}

// checkDivisionIdentity is invariant 7: a == (a/b)*b + (a mod b) for sample
// dividend/divisor pairs.
func (h *Harness) checkDivisionIdentity() InvariantResult {
	res := InvariantResult{Name: "division-identity"}
	mask := h.field.Mask()
	dividends := [][]int{
		{1, 0, 1, 1, 0, 1},
		{mask, mask & 5, 0, 1, mask & 3},
		{0, 0, 1},
	}
	divisors := [][]int{
		{1, 1},
		{0, 1, 1},
		{mask & 1, mask & 2, 1},
	}

	for _, ac := range dividends {
		for _, bc := range divisors {
			res.Cases++
			a := polynomial.FromCoefficients(h.field, ac)
			b := polynomial.FromCoefficients(h.field, bc)
			q, r, err := a.DivMod(b)
			if err != nil {
				res.Failures++
				res.Detail = err.Error()
				continue
			}
			recon := q.Mul(b).Add(r)
			if !recon.Equal(a) {
				res.Failures++
			}
		}
	}
	return res
}

func cloneStack(stack []*rs.Block) []*rs.Block {
	out := make([]*rs.Block, len(stack))
	for i, b := range stack {
		out[i] = cloneBlock(b)
	}
	return out
}

// checkErasureChannelRecovery is invariant 8: clearing up to FECLength whole
// rows of a CodeLength-deep stack and decoding recovers every original byte.
// It exercises the erasure-only fast path, since that path's eligible-row
// restriction (see erasure.FastDecoder) is itself a property worth checking,
// not just the general path already covered by checkBurstErasures.
func (h *Harness) checkErasureChannelRecovery() InvariantResult {
	res := InvariantResult{Name: "erasure-channel-recovery"}
	n := h.geo.CodeLength
	k := h.geo.DataLength

	seed := DeterministicPayload("erasure-channel-recovery", n*k)
	mask := h.field.Mask()

	stack := make([]*rs.Block, n)
	expected := make([]*rs.Block, n)
	for i := 0; i < n; i++ {
		stack[i] = rs.NewBlock(h.geo)
		data := stack[i].DataSymbols()
		for j := range data {
			data[j] = int(seed[i*k+j]) & mask
		}
		expected[i] = cloneBlock(stack[i])
		if err := h.enc.Encode(expected[i]); err != nil {
			res.Cases, res.Failures = 1, 1
			res.Detail = err.Error()
			return res
		}
	}

	if err := erasure.StackEncode(h.enc, stack); err != nil {
		res.Cases, res.Failures = 1, 1
		res.Detail = err.Error()
		return res
	}

	// The fast path's Chien search only covers roots [1, DataLength]; a
	// row's root is row+1, so only rows in [0, DataLength-1] are eligible.
	// Geometries too small to offer FECLength such rows cannot exercise the
	// fast path at all.
	var candidates []int
	for row := 0; row < n; row++ {
		root := row + 1
		if root >= 1 && root <= k {
			candidates = append(candidates, row)
		}
	}

	res.Cases++
	if len(candidates) < h.geo.FECLength {
		res.Failures++
		res.Detail = "geometry offers too few fast-path-eligible rows to exercise a full FECLength erasure"
		return res
	}
	missing := candidates[:h.geo.FECLength]

	cleared := cloneStack(stack)
	for _, row := range missing {
		for i := range cleared[row].Data {
			cleared[row].Data[i] = 0
		}
	}

	fast := erasure.NewFastDecoder(h.dec)
	if err := erasure.StackDecode(fast, cleared, missing); err != nil {
		res.Failures++
		res.Detail = err.Error()
		return res
	}
	for i := range cleared {
		if !dataEqual(cleared[i].Data, expected[i].Data) {
			res.Failures++
			res.Detail = fmt.Sprintf("recovered row %d does not match original", i)
			return res
		}
	}
	return res
}

// CheckShortenedEquivalence is invariant 9: a shortened (FECLength,
// shortData) codec's parity output for a message equals the natural-length
// codec's parity output for that message zero-padded up to DataLength. h
// must have been built with geo.CodeLength == field.Size() (a natural-length
// harness) for this comparison to be meaningful.
func (h *Harness) CheckShortenedEquivalence(shortData int) InvariantResult {
	res := InvariantResult{Name: "shortened-equivalence"}
	if h.geo.CodeLength != h.field.Size() {
		res.Cases, res.Failures = 1, 1
		res.Detail = "harness geometry is not the field's natural length"
		return res
	}

	shortGeo, err := rs.NewGeometry(shortData+h.geo.FECLength, h.geo.FECLength)
	if err != nil {
		res.Cases, res.Failures = 1, 1
		res.Detail = err.Error()
		return res
	}
	shortEnc, err := rs.NewShortenedEncoder(h.field, h.generator, shortGeo)
	if err != nil {
		res.Cases, res.Failures = 1, 1
		res.Detail = err.Error()
		return res
	}

	mask := h.field.Mask()
	for _, pattern := range []int{0x00, 0xAA, 0xFF, 0x5A} {
		res.Cases++
		data := make([]int, shortGeo.DataLength)
		for i := range data {
			data[i] = pattern & mask
		}

		shortBlock := rs.NewBlock(shortGeo)
		copy(shortBlock.DataSymbols(), data)
		if err := shortEnc.Encode(shortBlock); err != nil {
			res.Failures++
			res.Detail = err.Error()
			continue
		}

		padded := make([]int, h.geo.DataLength)
		copy(padded[h.geo.DataLength-shortGeo.DataLength:], data)
		naturalBlock := rs.NewBlock(h.geo)
		copy(naturalBlock.DataSymbols(), padded)
		if err := h.enc.Encode(naturalBlock); err != nil {
			res.Failures++
			res.Detail = err.Error()
			continue
		}

		if !dataEqual(shortBlock.FECSymbols(), naturalBlock.FECSymbols()) {
			res.Failures++
		}
	}
	return res
}
