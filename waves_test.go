package main

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

func TestLeafVariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		x := rng.Float32()*20 - 10
		approxEq(t, Identity().Gen(x), 1)
		approxEq(t, Null().Gen(x), 0)
		approxEq(t, Constant().Gen(x), x)
		approxEq(t, Sine().Gen(x), float32(math.Sin(float64(x)*math.Pi/2)))
	}
}

func TestSquareParity(t *testing.T) {
	cases := []struct {
		x    float32
		want float32
	}{
		{0, 1},
		{0.5, 1},
		{1, -1},
		{1.9, -1},
		{2.3, 1},
		{-0.5, 1}, // truncates toward zero
		{-1.5, -1},
		// Beyond the int64 range the parity must stay well-defined:
		// every float32 this large is an even integer.
		{1e19, 1},
		{-1e19, 1},
		{3e38, 1},
	}
	for _, c := range cases {
		approxEq(t, Square().Gen(c.x), c.want)
	}
}

func TestTriangleFormula(t *testing.T) {
	cases := []struct {
		x    float32
		want float32
	}{
		{0, -1},
		{1, 0},
		{2, -1},
		{2.5, -0.5},
		{3, 0},
		{-0.5, -1.5}, // remainder keeps the dividend's sign
	}
	for _, c := range cases {
		approxEq(t, Triangle().Gen(c.x), c.want)
	}
}

func TestNoiseRange(t *testing.T) {
	n := Noise(rand.New(rand.NewSource(2)))
	for i := 0; i < 1000; i++ {
		v := n.Gen(0)
		if v < 0 || v >= 1 {
			t.Fatalf("noise sample %v outside [0, 1)", v)
		}
	}
}

func TestIdentityTransformIsIdentity(t *testing.T) {
	lt := IdentityTransform()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		x := rng.Float32()*200 - 100
		approxEq(t, lt.Gen(x), x)
	}
}

func TestLinearTransformComposition(t *testing.T) {
	// constant*x + constant = x*x + x
	lt := Linear(Constant(), Constant())
	for _, x := range []float32{0, 0.5, 1, -2, 3.25} {
		approxEq(t, lt.Gen(x), x*x+x)
	}
}

// An oscillator with identity transforms and a sine terminal must be
// indistinguishable from the bare sine generator.
func TestOscillatorIdentitySine(t *testing.T) {
	osc := NewOscillator()
	sine := Sine()

	for i := 0; i < 100; i++ {
		x := float32(i) / 10
		approxEq(t, osc.Gen(x, 1.0), sine.Gen(x))
	}
	for _, freq := range []float32{130.81, 220, 246.94} {
		for i := 0; i < 50; i++ {
			x := float32(i) / 997
			approxEq(t, osc.Gen(x, freq), sine.Gen(x*freq))
		}
	}
}

// describe flattens a generator graph so two topologies can be
// compared structurally.
func describe(w *WaveGenerator) string {
	if w.Kind == WaveLinear {
		return fmt.Sprintf("linear(%s,%s)", describe(w.Alpha), describe(w.Beta))
	}
	return w.Kind.String()
}

func TestRandomWavePalette(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	sawNested := false
	for i := 0; i < 500; i++ {
		w := randomWave(rng)
		switch w.Kind {
		case WaveIdentity, WaveConstant, WaveSine, WaveSquare, WaveTriangle, WaveNoise:
		case WaveLinear:
			sawNested = true
			if w.Alpha == nil || w.Beta == nil {
				t.Fatal("nested transform with missing branch")
			}
		default:
			t.Fatalf("unexpected variant %v in palette", w.Kind)
		}
		v := w.Gen(1.5)
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("%s produced non-finite %v", describe(w), v)
		}
	}
	if !sawNested {
		t.Fatal("palette never produced a nested transform")
	}
}

func TestRandomizeDeterministicForSeed(t *testing.T) {
	a, b := NewOscillator(), NewOscillator()
	a.Randomize(rand.New(rand.NewSource(5)))
	b.Randomize(rand.New(rand.NewSource(5)))

	if describe(a.TTF) != describe(b.TTF) ||
		describe(a.WTF) != describe(b.WTF) ||
		describe(a.OTF) != describe(b.OTF) {
		t.Fatalf("same seed produced different topologies:\n%s %s %s\n%s %s %s",
			describe(a.TTF), describe(a.WTF), describe(a.OTF),
			describe(b.TTF), describe(b.WTF), describe(b.OTF))
	}
}

func TestOscillatorRandomizeReplacesWholeGraph(t *testing.T) {
	osc := NewOscillator()
	ttf, wtf, otf := osc.TTF, osc.WTF, osc.OTF
	osc.Randomize(rand.New(rand.NewSource(6)))

	if osc.TTF == ttf || osc.WTF == wtf || osc.OTF == otf {
		t.Fatal("randomize reused part of the old graph")
	}
	if osc.TTF.Kind != WaveLinear || osc.WTF.Kind != WaveLinear {
		t.Fatal("time/frequency transforms must stay linear transforms")
	}
}
