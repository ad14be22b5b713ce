// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package validate

import (
	"fmt"

	"github.com/ArashPartow/schifra/erasure"
	"github.com/ArashPartow/schifra/gf"
	"github.com/ArashPartow/schifra/rs"
)

// RunScenarios runs every named end-to-end scenario. Unlike the quantified
// invariants, each scenario builds its own field and geometry, since each
// names specific parameters rather than sweeping a shared codec.
func RunScenarios() []ScenarioResult {
	return []ScenarioResult{
		scenarioSmallFieldBurst(),
		scenarioFullErasureBurst(),
		scenarioBoundaryMixedBurst(),
		scenarioShortenedCode(),
		scenarioErasureStack(),
		scenarioCleanRoundTrip(),
	}
}

func fail(name string, err error) ScenarioResult {
	return ScenarioResult{Name: name, Pass: false, Detail: err.Error()}
}

func failf(name, format string, args ...interface{}) ScenarioResult {
	return ScenarioResult{Name: name, Pass: false, Detail: fmt.Sprintf(format, args...)}
}

func intsToBytes(ints []int) []byte {
	out := make([]byte, len(ints))
	for i, v := range ints {
		out[i] = byte(v)
	}
	return out
}

// wideFieldCodec builds the natural-length GF(2^8) codec shared by S2 and S3
// (which corrupt the "A professional is..." quotation) and S5 (the erasure
// stack), each with its own geometry. S4 builds the same field itself for
// its shortened codec.
func wideFieldCodec(geo rs.Geometry, genInitialIndex int) (*gf.Field, *rs.Encoder, *rs.Decoder, error) {
	field, err := gf.NewField(8, []uint{1, 1, 1, 0, 0, 0, 0, 1, 1}, gf.LogAntilog)
	if err != nil {
		return nil, nil, nil, err
	}
	generator, err := rs.NewGenerator(field, genInitialIndex, geo.FECLength)
	if err != nil {
		return nil, nil, nil, err
	}
	enc, err := rs.NewEncoder(field, generator, geo)
	if err != nil {
		return nil, nil, nil, err
	}
	dec := rs.NewDecoder(field, geo, genInitialIndex)
	return field, enc, dec, nil
}

// scenarioSmallFieldBurst is S1: GF(2^4), (N=15, R=7, K=8), all-3s message,
// three scattered single-symbol errors (XOR 0x0F) and no erasures.
func scenarioSmallFieldBurst() ScenarioResult {
	const name = "S1-small-field-burst"

	field, err := gf.NewField(4, []uint{1, 1, 0, 0, 1}, gf.LogAntilog)
	if err != nil {
		return fail(name, err)
	}
	geo, err := rs.NewGeometry(15, 7)
	if err != nil {
		return fail(name, err)
	}
	generator, err := rs.NewGenerator(field, 0, geo.FECLength)
	if err != nil {
		return fail(name, err)
	}
	enc, err := rs.NewEncoder(field, generator, geo)
	if err != nil {
		return fail(name, err)
	}
	dec := rs.NewDecoder(field, geo, 0)

	b := rs.NewBlock(geo)
	data := b.DataSymbols()
	for i := range data {
		data[i] = 3
	}
	if err := enc.Encode(b); err != nil {
		return fail(name, err)
	}
	want := append([]int(nil), b.Data...)

	for _, pos := range []int{0, 3, 6} {
		b.Data[pos] ^= 0x0F
	}
	if err := dec.Decode(b, nil); err != nil {
		return fail(name, err)
	}
	if !dataEqual(b.Data, want) {
		return failf(name, "recovered data %v, want %v", b.Data, want)
	}
	if b.ErrorsDetected != 3 || b.ErrorsCorrected != 3 {
		return failf(name, "errors_detected=%d errors_corrected=%d, want 3/3", b.ErrorsDetected, b.ErrorsCorrected)
	}
	return ScenarioResult{Name: name, Pass: true}
}

// scenarioFullErasureBurst is S2: GF(2^8), (N=255, R=32, K=223), a quotation
// message, every other symbol in positions 0..62 corrupted and declared as
// an erasure (32 positions, exactly FECLength).
func scenarioFullErasureBurst() ScenarioResult {
	const name = "S2-full-erasure-burst"

	geo, err := rs.NewGeometry(255, 32)
	if err != nil {
		return fail(name, err)
	}
	_, enc, dec, err := wideFieldCodec(geo, 120)
	if err != nil {
		return fail(name, err)
	}

	message := "A professional is a person who knows more and more about less and less until they know everything about nothing"
	data := make([]int, geo.DataLength)
	for i, c := range []byte(message) {
		data[i] = int(c)
	}

	b := rs.NewBlock(geo)
	copy(b.DataSymbols(), data)
	if err := enc.Encode(b); err != nil {
		return fail(name, err)
	}

	var erasures []int
	for pos := 0; pos <= 62; pos += 2 {
		b.Data[pos] ^= 0xFF
		erasures = append(erasures, pos)
	}
	if len(erasures) != geo.FECLength {
		return failf(name, "constructed %d erasure positions, want %d", len(erasures), geo.FECLength)
	}

	if err := dec.Decode(b, erasures); err != nil {
		return fail(name, err)
	}
	got := string(intsToBytes(b.DataSymbols()[:len(message)]))
	if got != message {
		return failf(name, "recovered %q, want %q", got, message)
	}
	return ScenarioResult{Name: name, Pass: true}
}

// scenarioBoundaryMixedBurst is S3: the same geometry and message as S2, but
// the first 11 symbols are bit-flipped errors and positions 11-20 (10
// symbols) are declared erasures, so 2E+S = 2*11+10 = 32 exactly saturates
// FECLength.
func scenarioBoundaryMixedBurst() ScenarioResult {
	const name = "S3-boundary-mixed-burst"

	geo, err := rs.NewGeometry(255, 32)
	if err != nil {
		return fail(name, err)
	}
	_, enc, dec, err := wideFieldCodec(geo, 120)
	if err != nil {
		return fail(name, err)
	}

	message := "A professional is a person who knows more and more about less and less until they know everything about nothing"
	data := make([]int, geo.DataLength)
	for i, c := range []byte(message) {
		data[i] = int(c)
	}

	b := rs.NewBlock(geo)
	copy(b.DataSymbols(), data)
	if err := enc.Encode(b); err != nil {
		return fail(name, err)
	}

	for pos := 0; pos < 11; pos++ {
		b.Data[pos] ^= 0xFF
	}
	erasures := make([]int, 0, 10)
	for pos := 11; pos <= 20; pos++ {
		b.Data[pos] = 0
		erasures = append(erasures, pos)
	}

	if err := dec.Decode(b, erasures); err != nil {
		return fail(name, err)
	}
	got := string(intsToBytes(b.DataSymbols()[:len(message)]))
	if got != message {
		return failf(name, "recovered %q, want %q", got, message)
	}
	return ScenarioResult{Name: name, Pass: true}
}

// scenarioShortenedCode is S4: GF(2^8), shortened to (N=72, R=10, K=62),
// a message padded to K, five scattered single-symbol errors.
func scenarioShortenedCode() ScenarioResult {
	const name = "S4-shortened-code"

	field, err := gf.NewField(8, []uint{1, 1, 1, 0, 0, 0, 0, 1, 1}, gf.LogAntilog)
	if err != nil {
		return fail(name, err)
	}
	geo, err := rs.NewGeometry(72, 10)
	if err != nil {
		return fail(name, err)
	}
	generator, err := rs.NewGenerator(field, 120, geo.FECLength)
	if err != nil {
		return fail(name, err)
	}
	enc, err := rs.NewShortenedEncoder(field, generator, geo)
	if err != nil {
		return fail(name, err)
	}
	dec, err := rs.NewShortenedDecoder(field, geo, 120)
	if err != nil {
		return fail(name, err)
	}

	message := "Where did I come from, and what am I supposed to be doing..."
	if len(message) > geo.DataLength {
		return failf(name, "message length %d exceeds data length %d", len(message), geo.DataLength)
	}
	data := make([]int, geo.DataLength)
	for i, c := range []byte(message) {
		data[i] = int(c)
	}

	b := rs.NewBlock(geo)
	copy(b.DataSymbols(), data)
	if err := enc.Encode(b); err != nil {
		return fail(name, err)
	}

	for _, pos := range []int{0, 8, 16, 24, 32} {
		b.Data[pos] ^= 0xFF
	}
	if err := dec.Decode(b, nil); err != nil {
		return fail(name, err)
	}
	got := string(intsToBytes(b.DataSymbols()[:len(message)]))
	if got != message {
		return failf(name, "recovered %q, want %q", got, message)
	}
	return ScenarioResult{Name: name, Pass: true}
}

// scenarioErasureStack is S5: GF(2^8), (N=255, R=20), a stack of 255
// codewords filled with deterministic pseudorandom bytes, encoded and
// square-transposed, then 20 whole rows cleared and recovered through the
// general erasure-stack decode path.
func scenarioErasureStack() ScenarioResult {
	const name = "S5-erasure-stack"

	geo, err := rs.NewGeometry(255, 20)
	if err != nil {
		return fail(name, err)
	}
	field, enc, dec, err := wideFieldCodec(geo, 120)
	if err != nil {
		return fail(name, err)
	}

	n := geo.CodeLength
	k := geo.DataLength
	mask := field.Mask()
	seed := DeterministicPayload("S5-erasure-stack", n*k)

	stack := make([]*rs.Block, n)
	expected := make([]*rs.Block, n)
	for i := 0; i < n; i++ {
		stack[i] = rs.NewBlock(geo)
		data := stack[i].DataSymbols()
		for j := range data {
			data[j] = int(seed[i*k+j]) & mask
		}
		expected[i] = cloneBlock(stack[i])
		if err := enc.Encode(expected[i]); err != nil {
			return fail(name, err)
		}
	}

	if err := erasure.StackEncode(enc, stack); err != nil {
		return fail(name, err)
	}

	var missing []int
	for row := 0; row <= 57; row += 3 {
		missing = append(missing, row)
	}
	if len(missing) != geo.FECLength {
		return failf(name, "constructed %d missing rows, want %d", len(missing), geo.FECLength)
	}
	for _, row := range missing {
		for i := range stack[row].Data {
			stack[row].Data[i] = 0
		}
	}

	if err := erasure.StackDecodeGeneral(dec, stack, missing); err != nil {
		return fail(name, err)
	}
	for i := range stack {
		if !dataEqual(stack[i].Data, expected[i].Data) {
			return failf(name, "row %d did not recover correctly", i)
		}
	}
	return ScenarioResult{Name: name, Pass: true}
}

// scenarioCleanRoundTrip is S6: encode an arbitrary block, decode it with no
// corruption and an empty erasure list, and confirm zero errors detected and
// no mutation of the codeword.
func scenarioCleanRoundTrip() ScenarioResult {
	const name = "S6-clean-round-trip"

	field, err := gf.NewField(4, []uint{1, 1, 0, 0, 1}, gf.LogAntilog)
	if err != nil {
		return fail(name, err)
	}
	geo, err := rs.NewGeometry(15, 4)
	if err != nil {
		return fail(name, err)
	}
	generator, err := rs.NewGenerator(field, 0, geo.FECLength)
	if err != nil {
		return fail(name, err)
	}
	enc, err := rs.NewEncoder(field, generator, geo)
	if err != nil {
		return fail(name, err)
	}
	dec := rs.NewDecoder(field, geo, 0)

	b := rs.NewBlock(geo)
	data := b.DataSymbols()
	for i := range data {
		data[i] = (i*3 + 1) & field.Mask()
	}
	if err := enc.Encode(b); err != nil {
		return fail(name, err)
	}
	want := append([]int(nil), b.Data...)

	if err := dec.Decode(b, nil); err != nil {
		return fail(name, err)
	}
	if !dataEqual(b.Data, want) {
		return failf(name, "decode mutated an uncorrupted codeword: got %v, want %v", b.Data, want)
	}
	if b.ErrorsDetected != 0 {
		return failf(name, "errors_detected=%d, want 0", b.ErrorsDetected)
	}
	return ScenarioResult{Name: name, Pass: true}
}
