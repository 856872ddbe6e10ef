package config

import (
	"fmt"
	"time"
)

// SpeedPreset represents a named rate limit for interactive runs.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// ParseSpeed validates a speed preset name. Empty means normal.
func ParseSpeed(s string) (SpeedPreset, error) {
	switch SpeedPreset(s) {
	case "":
		return SpeedNormal, nil
	case SpeedSlow, SpeedNormal, SpeedFast:
		return SpeedPreset(s), nil
	}
	return "", fmt.Errorf("config: unknown speed %q (want slow, normal or fast)", s)
}

// Limit returns the accumulator ceiling for the preset.
func (p SpeedPreset) Limit() int {
	switch p {
	case SpeedSlow:
		return 2
	case SpeedFast:
		return 100
	default:
		return 25
	}
}

// Throttle ramps the tick rate from 1 per second towards the preset limit,
// one step per frame. Switching presets keeps the current rate, clamped to the
// new ceiling on the next frame.
type Throttle struct {
	acc     int
	limit   int
	preset  SpeedPreset
	maxRate int
}

// NewThrottle creates a throttle starting at one tick per second.
// maxRate caps the rate regardless of preset; 0 means no cap.
func NewThrottle(preset SpeedPreset, maxRate int) *Throttle {
	t := &Throttle{maxRate: maxRate}
	t.SetSpeed(preset)
	return t
}

// SetSpeed changes the ceiling.
func (t *Throttle) SetSpeed(preset SpeedPreset) {
	if preset == "" {
		preset = SpeedNormal
	}
	t.preset = preset
	t.limit = preset.Limit()
}

// Speed returns the active preset.
func (t *Throttle) Speed() SpeedPreset {
	return t.preset
}

// Rate returns the current ticks per second.
func (t *Throttle) Rate() int {
	r := 1 + t.acc
	if t.maxRate > 0 && r > t.maxRate {
		r = t.maxRate
	}
	return r
}

// Interval returns the delay before the next frame at the current rate.
func (t *Throttle) Interval() time.Duration {
	return time.Second / time.Duration(t.Rate())
}

// Advance moves the accumulator one step towards the ceiling.
// Paused frames should not call it.
func (t *Throttle) Advance() {
	t.acc = min(t.limit, t.acc+1)
}

// Reset drops the rate back to one tick per second.
func (t *Throttle) Reset() {
	t.acc = 0
}
