// Copyright (c) 2024 The Schifra-Go Authors. MIT licensed; see LICENSE.

package interleave

import (
	"reflect"
	"testing"
)

func gridEqual(a, b [][]int) bool {
	return reflect.DeepEqual(a, b)
}

func cloneGrid(rows [][]int) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[i] = append([]int(nil), r...)
	}
	return out
}

func TestSquareIsInvolution(t *testing.T) {
	rows := [][]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	original := cloneGrid(rows)

	if err := Square(rows); err != nil {
		t.Fatalf("Square: %v", err)
	}
	if gridEqual(rows, original) {
		t.Fatalf("Square did not change a non-symmetric grid")
	}
	if err := Square(rows); err != nil {
		t.Fatalf("Square (second pass): %v", err)
	}
	if !gridEqual(rows, original) {
		t.Fatalf("Square twice = %v, want original %v", rows, original)
	}
}

func TestSquareRejectsNonSquareInput(t *testing.T) {
	rows := [][]int{{1, 2, 3}, {4, 5, 6}}
	if err := Square(rows); err == nil {
		t.Fatalf("expected error for non-square input")
	}
}

func TestInterleaveDeinterleaveRoundTrip(t *testing.T) {
	rows := [][]int{
		{1, 2, 3, 4, 5},
		{6, 7, 8, 9, 10},
		{11, 12, 13, 14, 15},
	}
	original := cloneGrid(rows)

	interleaved := Interleave(rows, 5)
	if gridEqual(interleaved, original) {
		t.Fatalf("Interleave did not change the grid")
	}

	back := Deinterleave(interleaved, 5)
	if !gridEqual(back, original) {
		t.Fatalf("Deinterleave(Interleave(x)) = %v, want %v", back, original)
	}
}

func TestInterleavePartialRoundTrip(t *testing.T) {
	// Three codewords of length 6, but the final (tail) codeword only has
	// 4 meaningful symbols.
	rows := [][]int{
		{1, 2, 3, 4, 5, 6},
		{7, 8, 9, 10, 11, 12},
		{13, 14, 15, 16, 99, 99}, // last two symbols are padding, not meaningful
	}
	original := cloneGrid(rows)

	interleaved, err := InterleavePartial(rows, 6, 4)
	if err != nil {
		t.Fatalf("InterleavePartial: %v", err)
	}

	back, err := DeinterleavePartial(interleaved, 6, 4)
	if err != nil {
		t.Fatalf("DeinterleavePartial: %v", err)
	}

	for row := 0; row < 2; row++ {
		if !reflect.DeepEqual(back[row], original[row]) {
			t.Fatalf("row %d = %v, want %v", row, back[row], original[row])
		}
	}
	if !reflect.DeepEqual(back[2][:4], original[2][:4]) {
		t.Fatalf("last row's meaningful symbols = %v, want %v", back[2][:4], original[2][:4])
	}
}

func TestInterleavePartialFullLengthMatchesInterleave(t *testing.T) {
	rows := [][]int{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	want := Interleave(rows, 3)
	got, err := InterleavePartial(rows, 3, 3)
	if err != nil {
		t.Fatalf("InterleavePartial: %v", err)
	}
	if !gridEqual(got, want) {
		t.Fatalf("InterleavePartial with partialCodeLength==codeLength = %v, want %v", got, want)
	}
}

func TestInterleavePartialRejectsSingleRow(t *testing.T) {
	rows := [][]int{{1, 2, 3}}
	if _, err := InterleavePartial(rows, 3, 2); err == nil {
		t.Fatalf("expected error for a single-row stack")
	}
}
