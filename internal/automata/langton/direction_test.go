package langton

import (
	"errors"
	"testing"
)

func TestDirectionTurns(t *testing.T) {
	tests := []struct {
		d         Direction
		wantLeft  Direction
		wantRight Direction
	}{
		{Right, Up, Down},
		{Up, Left, Right},
		{Left, Down, Up},
		{Down, Right, Left},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.TurnLeft(); got != tt.wantLeft {
				t.Errorf("TurnLeft() = %v, expected %v", got, tt.wantLeft)
			}
			if got := tt.d.TurnRight(); got != tt.wantRight {
				t.Errorf("TurnRight() = %v, expected %v", got, tt.wantRight)
			}
			if got := tt.d.TurnLeft().TurnRight(); got != tt.d {
				t.Errorf("TurnLeft().TurnRight() = %v, expected %v", got, tt.d)
			}
		})
	}
}

func TestDirectionVectorAndCode(t *testing.T) {
	tests := []struct {
		d      Direction
		dx, dy int
		code   byte
	}{
		{Right, 1, 0, '0'},
		{Up, 0, 1, '1'},
		{Left, -1, 0, '2'},
		{Down, 0, -1, '3'},
	}

	for _, tt := range tests {
		dx, dy := tt.d.Vector()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Vector() = (%d,%d), expected (%d,%d)", tt.d, dx, dy, tt.dx, tt.dy)
		}
		if got := tt.d.Code(); got != tt.code {
			t.Errorf("%v.Code() = %q, expected %q", tt.d, got, tt.code)
		}
	}
}

func TestDirectionFullCircle(t *testing.T) {
	d := Up
	for i := 0; i < 1000; i++ {
		d = d.TurnLeft()
	}
	if d != Up {
		t.Errorf("1000 quarter turns should return to Up, got %v", d)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"up", Up, false},
		{" Left ", Left, false},
		{"3", Down, false},
		{"0", Right, false},
		{"north", 0, true},
		{"4", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDirection) {
				t.Errorf("ParseDirection(%q) error = %v, expected ErrInvalidDirection", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirection(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestInvalidDirectionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("turning an invalid direction should panic")
		}
	}()
	Direction(7).TurnLeft()
}
