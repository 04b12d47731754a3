// Package rng provides the small deterministic generator used to seed
// reproducible default scenarios.
package rng

import (
	"math"
	"time"
)

// Source is a 32-bit counter based generator (mulberry32 mixing). The zero
// value is usable and equivalent to NewSource(0). A Source is not safe for
// concurrent use.
type Source struct {
	state uint32
}

// NewSource returns a generator seeded with seed.
func NewSource(seed uint32) *Source {
	return &Source{state: seed}
}

// SeedFromTime derives the hourly seed used for default scenarios:
// startYear*1e6 + month*1e4 + day*100 + hour, all in UTC, where startYear is
// the year after now.
func SeedFromTime(now time.Time) uint32 {
	u := now.UTC()
	startYear := u.Year() + 1
	seed := startYear*1_000_000 + int(u.Month())*10_000 + u.Day()*100 + u.Hour()
	return uint32(seed)
}

// Float64 returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// Int returns a uniformly distributed integer in [min, max].
func (s *Source) Int(min, max int) int {
	return int(math.Floor(s.Float64()*float64(max-min+1))) + min
}

// Rounded draws uniformly from [min, max] and rounds to the nearest multiple
// of step. Halves round up.
func (s *Source) Rounded(min, max, step float64) float64 {
	raw := min + (max-min)*s.Float64()
	return RoundHalfUp(raw/step) * step
}

// RoundHalfUp rounds to the nearest integer with ties going toward +Inf.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
