package langton

import (
	"strings"
	"testing"
)

func runPreset(t *testing.T, name string, ticks int) (*Colony, *History, *Detector) {
	t.Helper()
	c, err := NewColonyFromPreset(name)
	if err != nil {
		t.Fatalf("NewColonyFromPreset(%q): %v", name, err)
	}
	h := &History{}
	d := NewDetector()
	for i := 0; i < ticks; i++ {
		c.Next()
		h.Append(c.Ant(0).Heading)
		d.Feed(c.Ant(0).Heading)
	}
	return c, h, d
}

func TestHighwayPatternShape(t *testing.T) {
	if len(HighwayPattern) != 325 {
		t.Fatalf("len(HighwayPattern) = %d, expected 325", len(HighwayPattern))
	}
	if strings.Trim(HighwayPattern, "0123") != "" {
		t.Error("HighwayPattern must only contain heading codes")
	}
	// The highway repeats every 104 moves.
	for i := 104; i < len(HighwayPattern); i++ {
		if HighwayPattern[i] != HighwayPattern[i-104] {
			t.Fatalf("pattern is not 104-periodic at %d", i)
		}
	}
}

func TestS8DetectsHighway(t *testing.T) {
	const want = 3405

	for run := 0; run < 2; run++ {
		_, h, d := runPreset(t, "s8", 4000)
		if !d.Found() {
			t.Fatalf("run %d: s8 never reached the highway", run)
		}
		if d.FoundAt() != want {
			t.Errorf("run %d: detected at tick %d, expected %d", run, d.FoundAt(), want)
		}
		if !Detect(h.String()) {
			t.Errorf("run %d: Detect() disagrees with Detector", run)
		}
	}
}

func TestDetectFirstContainment(t *testing.T) {
	_, h, _ := runPreset(t, "s8", 3405)
	full := h.String()
	if !Detect(full) {
		t.Fatal("pattern should be present after 3405 ticks")
	}
	if Detect(full[:len(full)-1]) {
		t.Error("pattern should not be present one tick earlier")
	}
}

func TestDetectorMatchesDetect(t *testing.T) {
	_, h, _ := runPreset(t, "s8", 3600)
	codes := h.String()

	d := NewDetector()
	for i := 0; i < len(codes); i++ {
		dir, err := ParseDirection(codes[i : i+1])
		if err != nil {
			t.Fatalf("ParseDirection: %v", err)
		}
		got := d.Feed(dir)
		if want := Detect(codes[:i+1]); got != want {
			t.Fatalf("after %d symbols Feed() = %v, Detect() = %v", i+1, got, want)
		}
	}
}

func TestDetectorOverlappingPrefix(t *testing.T) {
	// A false start that shares a long prefix with the real occurrence.
	d := newDetector("0101012")
	for _, c := range "01010101012" {
		dir, _ := ParseDirection(string(c))
		d.Feed(dir)
	}
	if !d.Found() {
		t.Error("detector should find a match after a partial overlap")
	}
	if d.FoundAt() != 11 {
		t.Errorf("FoundAt() = %d, expected 11", d.FoundAt())
	}

	d.Reset()
	if d.Found() || d.Fed() != 0 {
		t.Error("Reset() should clear detector state")
	}
}

func TestPresetHighwayTicks(t *testing.T) {
	tests := []struct {
		preset   string
		tick     uint64
		rotation int
	}{
		{"4pix", 1580, 1},
		{"2pix", 2384, 1},
		{"s8", 3405, 0},
		{"empty", 10332, 1},
		{"1pix", 11702, 3},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			_, h, d := runPreset(t, tt.preset, int(tt.tick)+10)
			if !d.Found() || d.FoundAt() != tt.tick {
				t.Fatalf("detected=%v at %d, expected tick %d", d.Found(), d.FoundAt(), tt.tick)
			}
			if d.Rotation() != tt.rotation {
				t.Errorf("Rotation() = %d, expected %d", d.Rotation(), tt.rotation)
			}
			codes := h.String()
			if !Detect(codes[:tt.tick]) || Detect(codes[:tt.tick-1]) {
				t.Error("Detect() should first hold at the detector's tick")
			}
		})
	}
}

func TestUnperturbedAntReachesHighway(t *testing.T) {
	// The classic single ant on an empty board builds its highway after
	// roughly ten thousand moves, whatever its starting heading.
	for _, heading := range []Direction{Right, Up, Left, Down} {
		c := NewColony(nil, NewAnt(0, 0, heading, true))
		d := NewDetector()
		for i := 0; i < 11000 && !d.Found(); i++ {
			c.Next()
			d.Feed(c.Ant(0).Heading)
		}
		if d.FoundAt() != 10332 {
			t.Errorf("heading %s: detected at %d, expected 10332", heading, d.FoundAt())
		}
		if want := int(heading); d.Rotation() != want {
			t.Errorf("heading %s: Rotation() = %d, expected %d", heading, d.Rotation(), want)
		}
	}
}

func TestRotations(t *testing.T) {
	if Rotations[0] != HighwayPattern {
		t.Fatal("Rotations[0] should be the pattern itself")
	}
	for k, p := range Rotations {
		if len(p) != len(HighwayPattern) {
			t.Fatalf("rotation %d has length %d", k, len(p))
		}
		for i := range p {
			if want := '0' + (HighwayPattern[i]-'0'+byte(k))%4; p[i] != want {
				t.Fatalf("rotation %d differs at %d", k, i)
			}
		}
	}
}
