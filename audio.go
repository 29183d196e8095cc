package main

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ebitengine/oto/v3"
	"github.com/jfreymuth/pulse"
)

// outputSampleRate is requested from every backend. The engine reads
// whatever rate the backend reports via SetSampleRate, so changing
// this constant is enough to retune the whole pipeline.
const outputSampleRate = 48000

// AudioOutput is a running mono float32 stream pulling samples from
// the instrument until closed.
type AudioOutput interface {
	Close()
}

// NewAudioOutput starts the backend selected on the command line.
func NewAudioOutput(backend string, ins *Instrument) (AudioOutput, error) {
	switch backend {
	case "pulse":
		return NewPulseOutput(ins)
	case "oto":
		return NewOtoOutput(ins)
	default:
		return nil, fmt.Errorf("unknown audio backend %q", backend)
	}
}

// PulseOutput streams through a PulseAudio playback stream fed by
// Instrument.Generate.
type PulseOutput struct {
	client *pulse.Client
	stream *pulse.PlaybackStream
}

func NewPulseOutput(ins *Instrument) (*PulseOutput, error) {
	pc, err := pulse.NewClient(
		pulse.ClientApplicationName("rsynth"),
	)
	if err != nil {
		return nil, fmt.Errorf("pulse.NewClient failed: %w", err)
	}

	ins.SetSampleRate(outputSampleRate)

	playback, err := pc.NewPlayback(pulse.Float32Reader(ins.Generate),
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackSampleRate(outputSampleRate),
	)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("pulse.NewPlayback failed: %w", err)
	}
	playback.Start()
	return &PulseOutput{client: pc, stream: playback}, nil
}

func (p *PulseOutput) Close() {
	p.stream.Close()
	p.client.Close()
}

// OtoOutput streams through an oto v3 player. Oto pulls raw bytes, so
// Read renders into a scratch float32 buffer and re-encodes as
// float32-LE frames.
type OtoOutput struct {
	player *oto.Player
	ins    *Instrument
	buf    []float32
}

func NewOtoOutput(ins *Instrument) (*OtoOutput, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   outputSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("oto.NewContext failed: %w", err)
	}
	<-ready

	ins.SetSampleRate(outputSampleRate)

	o := &OtoOutput{ins: ins}
	o.player = ctx.NewPlayer(o)
	o.player.Play()
	return o, nil
}

func (o *OtoOutput) Read(p []byte) (int, error) {
	n := len(p) / 4
	if len(o.buf) < n {
		o.buf = make([]float32, n)
	}
	samples := o.buf[:n]
	o.ins.Generate(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	return n * 4, nil
}

func (o *OtoOutput) Close() {
	o.player.Close()
}
