package main

import "math/rand"

// Envelope is the per-note amplitude curve. All four parameters are
// expected in [0, 1] for musically sane output, but Sample is defined
// for any real input.
type Envelope struct {
	Attack  float32 // seconds for the 0..1 attack ramp after press
	Release float32 // seconds, from press, for the ramp toward sustain
	Sustain float32 // level held while the key stays down
	Decay   float32 // seconds from key release until silence
}

// NewEnvelope returns the default curve.
func NewEnvelope() Envelope {
	return Envelope{Attack: 1.0, Release: 1.0, Sustain: 0.2, Decay: 1.0}
}

func lerp(t, a, b float32) float32 { return a*(1-t) + b*t }

// ramp is the normalized progress of elapsed through a ramp of length
// dur, clamped to [0, 1]. A zero-length ramp jumps straight to its
// end value instead of dividing by zero.
func ramp(elapsed, dur float32) float32 {
	if dur <= 0 || elapsed >= dur {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return elapsed / dur
}

// Sample returns the amplitude at time now for a note pressed at
// press and, if release is non-nil, released at *release.
//
// While held the curve is a nested double ramp: the attack ramp's
// output is itself used as the interpolation weight toward Sustain
// over Release seconds, with both ramps timed from the press (not
// from the end of the attack). That shape is the instrument's
// signature sound and is kept as is; see envelope tests for the
// pinned values.
func (e Envelope) Sample(now, press float32, release *float32) float32 {
	if release != nil {
		return lerp(ramp(now-*release, e.Decay), e.Sustain, 0)
	}
	attack := lerp(ramp(now-press, e.Attack), 0, 1)
	return lerp(ramp(now-press-e.Attack, e.Release), attack, e.Sustain)
}

// Randomize redraws all four parameters uniformly in [0, 1).
func (e *Envelope) Randomize(rng *rand.Rand) {
	e.Attack = rng.Float32()
	e.Release = rng.Float32()
	e.Sustain = rng.Float32()
	e.Decay = rng.Float32()
}
