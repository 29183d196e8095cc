package main

import (
	"math/rand"
	"testing"
)

// Reference values for the held-note curve. The attack ramp's output is
// the weight of a second ramp toward sustain, both timed from the
// press; these pin that exact shape.
func TestEnvelopeHeldCurve(t *testing.T) {
	e := Envelope{Attack: 1.0, Release: 1.0, Sustain: 0.5, Decay: 1.0}

	cases := []struct {
		now  float32
		want float32
	}{
		{-100, 0},
		{-0.1, 0},
		{0, 0},
		{0.1, 0.1},
		{1, 1},
		{2, 0.5},
		{100, 0.5},
	}
	for _, c := range cases {
		approxEq(t, e.Sample(c.now, 0, nil), c.want)
	}
}

func TestEnvelopeReleaseDecay(t *testing.T) {
	e := Envelope{Attack: 1.0, Release: 1.0, Sustain: 0.5, Decay: 1.0}

	// Fully decayed one Decay after release.
	approxEq(t, e.Sample(3, 0, releasedAt(2)), 0)
	// Halfway through the decay ramp.
	approxEq(t, e.Sample(2.5, 0, releasedAt(2)), 0.25)
	// Before the release time the ramp saturates at sustain.
	approxEq(t, e.Sample(1.5, 0, releasedAt(2)), 0.5)
	// Long after, it stays silent.
	approxEq(t, e.Sample(1000, 0, releasedAt(2)), 0)
}

func TestEnvelopeAttackStartsAtZero(t *testing.T) {
	e := NewEnvelope()
	for _, t0 := range []float32{-3, 0, 0.25, 17.5} {
		approxEq(t, e.Sample(t0, t0, nil), 0)
	}
}

func TestEnvelopeFullDecayProperty(t *testing.T) {
	for _, e := range []Envelope{
		{1, 1, 0.5, 1},
		{0.2, 0.7, 0.9, 0.3},
		{0.5, 0.5, 1.0, 2.0},
	} {
		for _, t1 := range []float32{0, 1.5, 40} {
			approxEq(t, e.Sample(t1+e.Decay, 0, releasedAt(t1)), 0)
		}
	}
}

// Zero-length ramps must resolve to an instantaneous jump to the
// ramp's end value rather than divide by zero.
func TestEnvelopeZeroLengthRamps(t *testing.T) {
	e := Envelope{Attack: 0, Release: 0, Sustain: 0.8, Decay: 0}

	approxEq(t, e.Sample(0, 0, nil), 0.8)
	approxEq(t, e.Sample(5, 0, nil), 0.8)
	approxEq(t, e.Sample(2, 0, releasedAt(2)), 0)
}

func TestEnvelopeRandomizeRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewEnvelope()
	for i := 0; i < 50; i++ {
		e.Randomize(rng)
		for _, p := range []float32{e.Attack, e.Release, e.Sustain, e.Decay} {
			if p < 0 || p >= 1 {
				t.Fatalf("randomized parameter %v outside [0, 1)", p)
			}
		}
	}
}
