// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package rs

// ErrorKind classifies why an encode or decode operation failed.
type ErrorKind int

const (
	NoError ErrorKind = iota
	EncoderErrorInvalidEncoder
	EncoderErrorIncompatibleGenerator
	DecoderErrorInvalidDecoder
	DecoderErrorNonZeroSyndrome
	DecoderErrorTooManyErrors
	DecoderErrorInvalidSymbolCorrection
	DecoderErrorInvalidCodewordCorrection
)

func (e ErrorKind) String() string {
	switch e {
	case NoError:
		return "no error"
	case EncoderErrorInvalidEncoder:
		return "invalid encoder"
	case EncoderErrorIncompatibleGenerator:
		return "incompatible generator polynomial"
	case DecoderErrorInvalidDecoder:
		return "invalid decoder or erasure count exceeds fec length"
	case DecoderErrorNonZeroSyndrome:
		return "non-zero syndrome, no error locations found"
	case DecoderErrorTooManyErrors:
		return "too many errors or erasures to correct"
	case DecoderErrorInvalidSymbolCorrection:
		return "invalid symbol correction"
	case DecoderErrorInvalidCodewordCorrection:
		return "invalid codeword correction"
	default:
		return "unknown error"
	}
}

// Block holds one codeword's symbols plus the diagnostics produced by the
// last Encode/Decode call against it. Data[:DataLength] is payload,
// Data[DataLength:] is parity, per the bound Geometry.
type Block struct {
	Geometry Geometry
	Data     []int

	ErrorsDetected  int
	ErrorsCorrected int
	ZeroNumerators  int
	Unrecoverable   bool
	Error           ErrorKind
}

// NewBlock allocates a zeroed Block sized for geo.
func NewBlock(geo Geometry) *Block {
	return &Block{Geometry: geo, Data: make([]int, geo.CodeLength)}
}

// DataSymbols returns the payload portion of Data.
func (b *Block) DataSymbols() []int { return b.Data[:b.Geometry.DataLength] }

// FECSymbols returns the parity portion of Data.
func (b *Block) FECSymbols() []int { return b.Data[b.Geometry.DataLength:] }

// Reset clears the codeword to value and resets all diagnostics, matching
// the reset entry point a codec calls between uses of a pooled block.
func (b *Block) Reset(value int) {
	for i := range b.Data {
		b.Data[i] = value
	}
	b.ErrorsDetected = 0
	b.ErrorsCorrected = 0
	b.ZeroNumerators = 0
	b.Unrecoverable = false
	b.Error = NoError
}

// CopyState copies only the diagnostic fields from src, leaving Data and
// Geometry untouched. Used by the shortened encoder and decoder to surface
// the inner natural-length block's outcome on the caller's block.
func (b *Block) CopyState(src *Block) {
	b.ErrorsDetected = src.ErrorsDetected
	b.ErrorsCorrected = src.ErrorsCorrected
	b.ZeroNumerators = src.ZeroNumerators
	b.Unrecoverable = src.Unrecoverable
	b.Error = src.Error
}
