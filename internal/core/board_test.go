package core

import "testing"

func TestBoardAddRemove(t *testing.T) {
	b := NewBoard(C(0, 0), C(0, 0), C(1, 2))
	if b.Len() != 2 {
		t.Fatalf("duplicates should collapse, Len() = %d", b.Len())
	}

	b.Add(C(5, 5))
	if !b.Has(C(5, 5)) {
		t.Error("Add() did not insert cell")
	}

	b.Remove(C(5, 5))
	if b.Has(C(5, 5)) {
		t.Error("Remove() did not delete cell")
	}
}

func TestBoardRemoveAbsentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("removing an absent cell should panic")
		}
	}()
	NewBoard().Remove(C(1, 1))
}

func TestBoardFlip(t *testing.T) {
	b := NewBoard()
	if !b.Flip(C(2, 3)) {
		t.Error("first flip should make the cell present")
	}
	if b.Flip(C(2, 3)) {
		t.Error("second flip should make the cell absent")
	}
	if b.Len() != 0 {
		t.Errorf("board should be empty, Len() = %d", b.Len())
	}
}

func TestBoardCellsSorted(t *testing.T) {
	b := NewBoard(C(3, 1), C(-1, 1), C(0, -4), C(2, 0))
	got := b.Cells()
	want := []Cell{C(0, -4), C(2, 0), C(-1, 1), C(3, 1)}

	if len(got) != len(want) {
		t.Fatalf("Cells() len = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Cells()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestBoardBounds(t *testing.T) {
	if _, ok := NewBoard().Bounds(); ok {
		t.Error("empty board must not report bounds")
	}

	b := NewBoard(C(2, 7), C(-4, 1), C(0, 3))
	bounds, ok := b.Bounds()
	if !ok {
		t.Fatal("non-empty board must report bounds")
	}
	want := Bounds{Min: C(-4, 1), Max: C(2, 7)}
	if bounds != want {
		t.Errorf("Bounds() = %+v, expected %+v", bounds, want)
	}
}

func TestBoardCloneEqual(t *testing.T) {
	b := NewBoard(C(1, 1), C(2, 2))
	clone := b.Clone()
	if !b.Equal(clone) {
		t.Fatal("clone should equal original")
	}

	clone.Add(C(3, 3))
	if b.Has(C(3, 3)) {
		t.Error("clone must be independent of the original")
	}
	if b.Equal(clone) {
		t.Error("boards with different cells must not be equal")
	}
}

func TestBoardCountNeighbors(t *testing.T) {
	b := NewBoard(C(0, 0), C(1, 0), C(2, 0), C(1, 1))

	tests := []struct {
		c        Cell
		expected int
	}{
		{C(1, 0), 3},
		{C(1, -1), 3},
		{C(1, 1), 3},
		{C(5, 5), 0},
		{C(0, 1), 3},
	}

	for _, tc := range tests {
		if got := b.CountNeighbors(tc.c); got != tc.expected {
			t.Errorf("CountNeighbors(%v) = %d, expected %d", tc.c, got, tc.expected)
		}
	}
}
