package main

import (
	"math/rand"
	"sync"
	"time"

	log "github.com/rs/zerolog/log"
)

// Bottom-row keys laid out chromatically from C3, sharps on the home
// row above them.
var defaultPitchTable = map[KeyCode]float32{
	'z': 130.81, // C
	's': 138.59, // C#
	'x': 146.83, // D
	'd': 155.56, // D#
	'c': 164.81, // E
	'v': 174.61, // F
	'g': 185.00, // F#
	'b': 196.00, // G
	'h': 207.65, // G#
	'n': 220.00, // A
	'j': 233.08, // A#
	'm': 246.94, // B
}

// Control keys handled by the instrument or input loop rather than
// mapped to pitches.
const (
	randomizeKey KeyCode = 'r'
	quitKey      KeyCode = 'q'
)

// Instrument is the synthesizer aggregate: one oscillator, one
// envelope, the note buffer, the pitch table and the sample cursor,
// all guarded by a single mutex. The audio callback, the input loop
// and the status loop share one Instrument; every method takes the
// lock once per call, and Generate holds it for a whole device buffer
// so all samples of one buffer see the same topology and note set.
type Instrument struct {
	mu         sync.Mutex
	sampleRate uint32
	cursor     uint64
	oscillator *Oscillator
	envelope   Envelope
	keys       *KeyboardBuffer
	pitch      map[KeyCode]float32
	clock      func() float32 // seconds since startup
	rng        *rand.Rand
}

// NewInstrument builds a plain sine instrument. Timestamps and the
// envelope clock are measured from epoch, which the input driver must
// share. The sample rate stays zero (silence) until the audio backend
// calls SetSampleRate.
func NewInstrument(epoch time.Time, rng *rand.Rand) *Instrument {
	return &Instrument{
		oscillator: NewOscillator(),
		envelope:   NewEnvelope(),
		keys:       NewKeyboardBuffer(),
		pitch:      defaultPitchTable,
		clock:      func() float32 { return float32(time.Since(epoch).Seconds()) },
		rng:        rng,
	}
}

// SetSampleRate is called once by the audio backend before streaming.
func (ins *Instrument) SetSampleRate(rate uint32) {
	ins.mu.Lock()
	defer ins.mu.Unlock()
	ins.sampleRate = rate
}

// Gen produces the i-th sample of the current buffer.
func (ins *Instrument) Gen(i uint64) float32 {
	ins.mu.Lock()
	defer ins.mu.Unlock()
	return ins.gen(i, ins.clock())
}

// AdvanceCursor moves the sample cursor by n, wrapping at the top of
// the uint64 range. Called once per buffer, after every sample of that
// buffer has been produced, so oscillator phase stays continuous
// across buffer boundaries.
func (ins *Instrument) AdvanceCursor(n uint64) {
	ins.mu.Lock()
	defer ins.mu.Unlock()
	ins.cursor += n
}

// Generate fills one device buffer with samples. It satisfies
// pulse.Float32Reader and is reused by the oto backend and the offline
// renderer. One critical section covers the whole buffer and the
// cursor advance.
func (ins *Instrument) Generate(out []float32) (int, error) {
	ins.mu.Lock()
	defer ins.mu.Unlock()
	now := ins.clock()
	for i := range out {
		out[i] = ins.gen(uint64(i), now)
	}
	ins.cursor += uint64(len(out))
	return len(out), nil
}

// gen sums the contribution of every tracked note at buffer offset i.
// Callers hold mu. Notes are mixed without normalization; clipping
// when many keys overlap is the output layer's concern. A key missing
// from the pitch table sounds at 0 Hz.
func (ins *Instrument) gen(i uint64, now float32) float32 {
	if ins.sampleRate == 0 {
		// No format negotiated yet; emit silence rather than NaN.
		return 0
	}
	t := float32(ins.cursor+i) / float32(ins.sampleRate)
	var sample float32
	for code, ne := range ins.keys.events {
		freq := ins.pitch[code]
		amp := ins.envelope.Sample(now, ne.TimePress, ne.TimeRelease)
		sample += ins.oscillator.Gen(t, freq) * amp
	}
	return sample
}

// HandleKeyEvent routes one keystroke: a press of the randomize key
// rebuilds the oscillator graph and envelope wholesale, everything
// else feeds the note buffer. The audio callback contends for the same
// lock on a realtime deadline, so the new state is snapshotted inside
// the critical section and logged only after it is released.
func (ins *Instrument) HandleKeyEvent(ev KeyEvent) {
	ins.mu.Lock()
	if ev.Code != randomizeKey || ev.Kind != KeyPress {
		ins.keys.HandleKeyEvent(ev)
		ins.mu.Unlock()
		return
	}

	ins.oscillator.Randomize(ins.rng)
	ins.envelope.Randomize(ins.rng)
	terminal := ins.oscillator.OTF.Kind
	env := ins.envelope
	ins.mu.Unlock()

	log.Info().
		Stringer("terminal", terminal).
		Float32("attack", env.Attack).
		Float32("release", env.Release).
		Float32("sustain", env.Sustain).
		Float32("decay", env.Decay).
		Msg("randomized")
}

// CleanupEvents drops notes that have fully decayed. The stale limit
// is the envelope's decay time, so a released note stays exactly as
// long as it is audible.
func (ins *Instrument) CleanupEvents() {
	ins.mu.Lock()
	defer ins.mu.Unlock()
	ins.keys.CleanStale(ins.clock(), &ins.envelope.Decay)
}

// InstrumentStatus is a read-only snapshot for inspection.
type InstrumentStatus struct {
	Cursor      uint64
	SampleRate  uint32
	ActiveNotes int
	Envelope    Envelope
}

func (ins *Instrument) Status() InstrumentStatus {
	ins.mu.Lock()
	defer ins.mu.Unlock()
	return InstrumentStatus{
		Cursor:      ins.cursor,
		SampleRate:  ins.sampleRate,
		ActiveNotes: ins.keys.Len(),
		Envelope:    ins.envelope,
	}
}
