package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/eiannone/keyboard"
	log "github.com/rs/zerolog/log"
)

// pollInterval paces the cleanup tick and release detection while no
// key event is pending.
const pollInterval = 25 * time.Millisecond

// KeyTracker synthesizes release events. Terminals only report key
// presses (plus auto-repeat while held), never releases, so a key
// counts as released once no repeat press has arrived within the hold
// window.
type KeyTracker struct {
	held map[KeyCode]float32 // last press time per held key
	hold float32             // seconds of repeat silence before release
}

func NewKeyTracker(hold float32) *KeyTracker {
	return &KeyTracker{held: make(map[KeyCode]float32), hold: hold}
}

// Press records a keystroke and returns the press event to dispatch.
// Repeats of a held key refresh the hold deadline only; the
// KeyboardBuffer keeps the original press time.
func (kt *KeyTracker) Press(code KeyCode, now float32) KeyEvent {
	kt.held[code] = now
	return KeyEvent{Code: code, Kind: KeyPress, Time: now}
}

// Expire returns release events for every key whose repeats have gone
// quiet, in deterministic key order, and forgets those keys.
func (kt *KeyTracker) Expire(now float32) []KeyEvent {
	var released []KeyEvent
	for code, last := range kt.held {
		if now-last >= kt.hold {
			released = append(released, KeyEvent{Code: code, Kind: KeyRelease, Time: now})
			delete(kt.held, code)
		}
	}
	sort.Slice(released, func(i, j int) bool { return released[i].Code < released[j].Code })
	return released
}

// runInput owns the terminal keyboard for the life of the process. It
// forwards timestamped key events to every handler, triggers stale
// cleanup on idle ticks, and returns when the quit key or Esc is seen
// or the context is canceled. The instrument lock is never held while
// waiting for input; each dispatch is its own critical section.
func runInput(ctx context.Context, handlers []KeyboardHandler, epoch time.Time, hold time.Duration) error {
	keys, err := keyboard.GetKeys(16)
	if err != nil {
		return fmt.Errorf("keyboard.GetKeys failed: %w", err)
	}
	defer keyboard.Close()

	tracker := NewKeyTracker(float32(hold.Seconds()))
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	dispatch := func(ev KeyEvent) {
		for _, h := range handlers {
			h.HandleKeyEvent(ev)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			if key.Err != nil {
				return fmt.Errorf("keyboard read failed: %w", key.Err)
			}
			if key.Key == keyboard.KeyEsc || KeyCode(key.Rune) == quitKey {
				log.Info().Msg("quit key")
				return nil
			}
			if key.Rune == 0 {
				continue
			}
			now := float32(time.Since(epoch).Seconds())
			dispatch(tracker.Press(KeyCode(key.Rune), now))
		case <-tick.C:
			now := float32(time.Since(epoch).Seconds())
			for _, ev := range tracker.Expire(now) {
				dispatch(ev)
			}
			for _, h := range handlers {
				h.CleanupEvents()
			}
		}
	}
}
