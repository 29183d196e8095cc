package main

import (
	"math"
	"math/rand"
)

// WaveKind tags the closed set of wave generator variants.
type WaveKind int

const (
	WaveIdentity WaveKind = iota
	WaveNull
	WaveConstant
	WaveSine
	WaveSquare
	WaveTriangle
	WaveNoise
	WaveLinear
)

func (k WaveKind) String() string {
	switch k {
	case WaveIdentity:
		return "identity"
	case WaveNull:
		return "null"
	case WaveConstant:
		return "constant"
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveTriangle:
		return "triangle"
	case WaveNoise:
		return "noise"
	case WaveLinear:
		return "linear"
	}
	return "unknown"
}

// WaveGenerator maps one scalar to one scalar. It is a tagged sum over
// the variants above: the stateless kinds use no fields, Noise carries
// its own RNG, and Linear composes two sub-generators as
// alpha(x)*x + beta(x).
type WaveGenerator struct {
	Kind  WaveKind
	Alpha *WaveGenerator // Linear only
	Beta  *WaveGenerator // Linear only
	rng   *rand.Rand     // Noise only
}

func Identity() *WaveGenerator { return &WaveGenerator{Kind: WaveIdentity} }
func Null() *WaveGenerator     { return &WaveGenerator{Kind: WaveNull} }
func Constant() *WaveGenerator { return &WaveGenerator{Kind: WaveConstant} }
func Sine() *WaveGenerator     { return &WaveGenerator{Kind: WaveSine} }
func Square() *WaveGenerator   { return &WaveGenerator{Kind: WaveSquare} }
func Triangle() *WaveGenerator { return &WaveGenerator{Kind: WaveTriangle} }

func Noise(rng *rand.Rand) *WaveGenerator {
	return &WaveGenerator{Kind: WaveNoise, rng: rng}
}

func Linear(alpha, beta *WaveGenerator) *WaveGenerator {
	return &WaveGenerator{Kind: WaveLinear, Alpha: alpha, Beta: beta}
}

// IdentityTransform is a linear transform that leaves its input
// unchanged: 1*x + 0.
func IdentityTransform() *WaveGenerator { return Linear(Identity(), Null()) }

// Gen evaluates the generator at x. Pure for every variant except
// Noise, which draws from its RNG. Finite input yields finite output.
func (w *WaveGenerator) Gen(x float32) float32 {
	switch w.Kind {
	case WaveIdentity:
		return 1
	case WaveNull:
		return 0
	case WaveConstant:
		return x
	case WaveSine:
		return float32(math.Sin(float64(x) * math.Pi / 2))
	case WaveSquare:
		// Parity of the truncated integer part. Trunc/Mod stay
		// defined for inputs beyond the int64 range, which randomized
		// graphs can produce by compounding their inputs.
		if math.Mod(math.Trunc(float64(x)), 2) == 0 {
			return 1
		}
		return -1
	case WaveTriangle:
		return float32(math.Mod(float64(x), 2)) - 1
	case WaveNoise:
		return w.rng.Float32()
	case WaveLinear:
		return w.Alpha.Gen(x)*x + w.Beta.Gen(x)
	}
	return 0
}

// randomWave draws one generator uniformly from the palette. Index 0
// yields a nested randomized linear transform, so composition graphs
// grow recursively with probability 1/7 per branch.
func randomWave(rng *rand.Rand) *WaveGenerator {
	switch rng.Intn(7) {
	case 0:
		return randomTransform(rng)
	case 1:
		return Identity()
	case 2:
		return Constant()
	case 3:
		return Sine()
	case 4:
		return Square()
	case 5:
		return Triangle()
	default:
		return Noise(rand.New(rand.NewSource(rng.Int63())))
	}
}

func randomTransform(rng *rand.Rand) *WaveGenerator {
	return Linear(randomWave(rng), randomWave(rng))
}

// Oscillator turns a time value and a frequency into one amplitude
// sample: Gen(t, freq) = OTF(TTF(t) * WTF(freq)). It keeps no time of
// its own; the cursor lives in the Instrument.
type Oscillator struct {
	TTF *WaveGenerator // time transform
	WTF *WaveGenerator // frequency transform
	OTF *WaveGenerator // terminal generator
}

// NewOscillator returns the plain sine oscillator: identity transforms
// and a sine terminal.
func NewOscillator() *Oscillator {
	return &Oscillator{
		TTF: IdentityTransform(),
		WTF: IdentityTransform(),
		OTF: Sine(),
	}
}

func (o *Oscillator) Gen(t, freq float32) float32 {
	return o.OTF.Gen(o.TTF.Gen(t) * o.WTF.Gen(freq))
}

// Randomize replaces both transforms and the terminal generator with
// fresh draws from the palette. The whole graph is swapped at once;
// callers serialize against concurrent Gen via the instrument lock.
func (o *Oscillator) Randomize(rng *rand.Rand) {
	o.TTF = randomTransform(rng)
	o.WTF = randomTransform(rng)
	o.OTF = randomWave(rng)
}
