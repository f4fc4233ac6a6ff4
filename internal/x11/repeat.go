package x11

import "fmt"

// Bounds accepted by the XKB RepeatKeys control. The defaults match a
// fairly fast but not absurd typing feel.
const (
	DefaultRate  uint16 = 70
	DefaultDelay uint16 = 250

	MinRate  uint16 = 1
	MaxRate  uint16 = 1000
	MinDelay uint16 = 1
)

// RepeatConfig is the desired auto-repeat behavior of the core
// keyboard: how many repeats per second, and how long a key has to be
// held before repeating starts. It is set once from CLI/config input
// and never mutated afterwards.
type RepeatConfig struct {
	Rate  uint16 // repeats per second, 1-1000
	Delay uint16 // milliseconds before the first repeat, >= 1
}

// Validate checks cfg against the ranges the RepeatKeys control
// accepts. Callers must not issue a SetControls request for an invalid
// config.
func (c RepeatConfig) Validate() error {
	if c.Rate < MinRate || c.Rate > MaxRate {
		return fmt.Errorf("key repeat rate has to be between %d and %d, got %d", MinRate, MaxRate, c.Rate)
	}
	if c.Delay < MinDelay {
		return fmt.Errorf("key repeat delay has to be greater than 0, got %d", c.Delay)
	}
	return nil
}

// Interval converts the rate into the wire-level interval between
// repeats in milliseconds. Truncating integer division, recomputed on
// every application.
func (c RepeatConfig) Interval() uint16 {
	return 1000 / c.Rate
}
