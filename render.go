package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ScoreNote schedules one key: pressed at Start, released at Stop,
// both in seconds from the beginning of the render.
type ScoreNote struct {
	Code  KeyCode
	Start float32
	Stop  float32
}

// demoScore is a short phrase over the default pitch table, used by
// the offline render mode.
var demoScore = []ScoreNote{
	{'z', 0.0, 0.8}, // C
	{'c', 0.5, 1.3}, // E
	{'b', 1.0, 1.8}, // G
	{'z', 1.5, 2.3}, // C again, over the G tail
	{'m', 2.0, 2.8}, // B
	{'n', 2.5, 3.5}, // A
}

// renderScore drives the instrument with a manual clock and returns
// the mono sample stream. The same Generate path the live backends use
// produces the samples; only the clock differs, advancing block by
// block instead of in real time.
func renderScore(ins *Instrument, score []ScoreNote, duration float32) []float32 {
	var now float32
	ins.clock = func() float32 { return now }
	ins.SetSampleRate(outputSampleRate)

	events := make([]KeyEvent, 0, 2*len(score))
	for _, n := range score {
		events = append(events,
			KeyEvent{Code: n.Code, Kind: KeyPress, Time: n.Start},
			KeyEvent{Code: n.Code, Kind: KeyRelease, Time: n.Stop},
		)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Time < events[j].Time })

	const blockSize = 256
	total := int(duration * outputSampleRate)
	samples := make([]float32, 0, total)
	block := make([]float32, blockSize)

	rendered := 0
	for rendered < total {
		now = float32(rendered) / outputSampleRate
		for len(events) > 0 && events[0].Time <= now {
			ins.HandleKeyEvent(events[0])
			events = events[1:]
		}
		ins.CleanupEvents()

		n := blockSize
		if rendered+n > total {
			n = total - rendered
		}
		ins.Generate(block[:n])
		samples = append(samples, block[:n]...)
		rendered += n
	}
	return samples
}

// renderWAV renders the score and writes it as 16-bit mono PCM.
func renderWAV(path string, ins *Instrument, score []ScoreNote, duration float32) error {
	samples := renderScore(ins, score, duration)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, outputSampleRate, 16, 1, 1)
	defer encoder.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  outputSampleRate,
			NumChannels: 1,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
