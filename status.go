package main

import (
	"context"
	"time"

	log "github.com/rs/zerolog/log"
)

// runStatus periodically logs a snapshot of the instrument at debug
// level. Read-only; it shares the same lock discipline as every other
// observer of the aggregate.
func runStatus(ctx context.Context, ins *Instrument, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			st := ins.Status()
			log.Debug().
				Uint64("cursor", st.Cursor).
				Uint32("rate", st.SampleRate).
				Int("notes", st.ActiveNotes).
				Float32("sustain", st.Envelope.Sustain).
				Msg("instrument")
		}
	}
}
