// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

// Package interleave reshuffles a stack of codewords across symbol
// positions, spreading a burst error across many codewords so each one
// sees only a scattering of corrupted symbols instead of a concentrated
// burst. Square is its own inverse; Interleave/Deinterleave and
// InterleavePartial/DeinterleavePartial are inverse pairs, so applying one
// and then the other with matching dimensions restores the original stack.
package interleave

import "github.com/pkg/errors"

// Square transposes a row_count x row_count stack in place: rows[i][j] and
// rows[j][i] are swapped for every i<j. This is the self-inverse special
// case used when the stack has exactly as many rows as each row has
// columns.
func Square(rows [][]int) error {
	n := len(rows)
	for i := 0; i < n; i++ {
		if len(rows[i]) != n {
			return errors.Errorf("interleave: Square requires row_count == code_length, row %d has length %d, want %d", i, len(rows[i]), n)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rows[i][j], rows[j][i] = rows[j][i], rows[i][j]
		}
	}
	return nil
}

// Interleave reshapes a row_count x codeLength stack by reading it
// column-major (all rows' symbol 0, then all rows' symbol 1, ...) and
// refilling row-major, so consecutive symbols of the original burst spread
// across consecutive rows of the result.
func Interleave(rows [][]int, codeLength int) [][]int {
	rowCount := len(rows)
	flat := make([]int, 0, rowCount*codeLength)
	for index := 0; index < codeLength; index++ {
		for row := 0; row < rowCount; row++ {
			flat = append(flat, rows[row][index])
		}
	}
	return fillRowMajor(flat, rowCount, codeLength)
}

// Deinterleave is Interleave's inverse: it reads row-major and refills
// column-major.
func Deinterleave(rows [][]int, codeLength int) [][]int {
	rowCount := len(rows)
	flat := make([]int, 0, rowCount*codeLength)
	for row := 0; row < rowCount; row++ {
		flat = append(flat, rows[row][:codeLength]...)
	}
	return fillColumnMajor(flat, rowCount, codeLength)
}

func fillRowMajor(flat []int, rowCount, codeLength int) [][]int {
	out := make([][]int, rowCount)
	for row := 0; row < rowCount; row++ {
		out[row] = append([]int(nil), flat[row*codeLength:(row+1)*codeLength]...)
	}
	return out
}

func fillColumnMajor(flat []int, rowCount, codeLength int) [][]int {
	out := make([][]int, rowCount)
	for row := 0; row < rowCount; row++ {
		out[row] = make([]int, codeLength)
	}
	for k, v := range flat {
		out[k%rowCount][k/rowCount] = v
	}
	return out
}

// InterleavePartial is Interleave for a stack whose final row only has
// partialCodeLength meaningful symbols (the last codeword in a group is
// shorter than the rest, as happens at the tail of a stream). Columns
// before partialCodeLength draw from every row; columns from
// partialCodeLength onward draw from every row except the last. Only the
// first partialCodeLength symbols of the last output row are written back,
// leaving the rest of that row untouched.
func InterleavePartial(rows [][]int, codeLength, partialCodeLength int) ([][]int, error) {
	rowCount := len(rows)
	if partialCodeLength == codeLength {
		return Interleave(rows, codeLength), nil
	}
	if rowCount < 2 {
		return nil, errors.New("interleave: InterleavePartial requires at least two rows")
	}

	aux := make([][]int, rowCount)
	for row := range aux {
		aux[row] = make([]int, codeLength)
	}
	auxRow, auxIndex := 0, 0

	advance := func() {
		auxIndex++
		if auxIndex == codeLength {
			auxIndex = 0
			auxRow++
		}
	}

	for index := 0; index < partialCodeLength; index++ {
		for row := 0; row < rowCount; row++ {
			aux[auxRow][auxIndex] = rows[row][index]
			advance()
		}
	}
	for index := partialCodeLength; index < codeLength; index++ {
		for row := 0; row < rowCount-1; row++ {
			aux[auxRow][auxIndex] = rows[row][index]
			advance()
		}
	}

	out := make([][]int, rowCount)
	for row := 0; row < rowCount-1; row++ {
		out[row] = append([]int(nil), aux[row]...)
	}
	out[rowCount-1] = append([]int(nil), rows[rowCount-1]...)
	copy(out[rowCount-1][:partialCodeLength], aux[rowCount-1][:partialCodeLength])

	return out, nil
}

// DeinterleavePartial is InterleavePartial's inverse.
func DeinterleavePartial(rows [][]int, codeLength, partialCodeLength int) ([][]int, error) {
	rowCount := len(rows)
	if partialCodeLength == codeLength {
		return Deinterleave(rows, codeLength), nil
	}
	if rowCount < 2 {
		return nil, errors.New("interleave: DeinterleavePartial requires at least two rows")
	}

	aux := make([][]int, rowCount)
	for row := range aux {
		aux[row] = make([]int, codeLength)
	}

	auxRow1, auxIndex1 := 0, 0
	auxRow2, auxIndex2 := 0, 0

	advance2 := func() {
		auxIndex2++
		if auxIndex2 == codeLength {
			auxIndex2 = 0
			auxRow2++
		}
	}

	total := partialCodeLength * rowCount
	for i := 0; i < total; i++ {
		aux[auxRow1][auxIndex1] = rows[auxRow2][auxIndex2]
		auxRow1++
		if auxRow1 == rowCount {
			auxRow1 = 0
			auxIndex1++
		}
		advance2()
	}
	for auxIndex1 < codeLength {
		aux[auxRow1][auxIndex1] = rows[auxRow2][auxIndex2]
		auxRow1++
		if auxRow1 == rowCount-1 {
			auxRow1 = 0
			auxIndex1++
		}
		advance2()
	}

	out := make([][]int, rowCount)
	for row := 0; row < rowCount-1; row++ {
		out[row] = append([]int(nil), aux[row]...)
	}
	out[rowCount-1] = append([]int(nil), rows[rowCount-1]...)
	copy(out[rowCount-1][:partialCodeLength], aux[rowCount-1][:partialCodeLength])

	return out, nil
}
