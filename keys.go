package main

// KeyCode identifies one keyboard key.
type KeyCode rune

// KeyEventKind distinguishes presses from releases.
type KeyEventKind int

const (
	KeyPress KeyEventKind = iota
	KeyRelease
)

// KeyEvent is one keystroke as delivered by the input driver, with the
// driver's timestamp in seconds since startup.
type KeyEvent struct {
	Code KeyCode
	Kind KeyEventKind
	Time float32
}

// KeyboardHandler consumes keystrokes from the input loop.
// CleanupEvents runs on the poll tick whenever no key is pending.
type KeyboardHandler interface {
	HandleKeyEvent(ev KeyEvent)
	CleanupEvents()
}

// NoteEvent records the most recent still-relevant keystroke of one
// key: when it was pressed and, once released, when. A nil TimeRelease
// means the key is still held.
type NoteEvent struct {
	Code        KeyCode
	TimePress   float32
	TimeRelease *float32
}

// DefaultStaleLimit bounds how long a released note is kept when the
// caller has no better estimate of its decay.
const DefaultStaleLimit float32 = 2.0

// KeyboardBuffer tracks the set of notes currently sounding or
// recently released, at most one event per key.
type KeyboardBuffer struct {
	events map[KeyCode]*NoteEvent
}

func NewKeyboardBuffer() *KeyboardBuffer {
	return &KeyboardBuffer{events: make(map[KeyCode]*NoteEvent)}
}

// HandleKeyEvent applies one keystroke to the buffer.
//
// A press of a key that is already tracked keeps the original press
// time. Terminal auto-repeat delivers a press per repeat, and
// restarting the envelope on each would retrigger the note instead of
// holding it. A release records its time once; releases of unknown
// keys are ignored.
func (kb *KeyboardBuffer) HandleKeyEvent(ev KeyEvent) {
	switch ev.Kind {
	case KeyPress:
		if _, ok := kb.events[ev.Code]; !ok {
			kb.events[ev.Code] = &NoteEvent{Code: ev.Code, TimePress: ev.Time}
		}
	case KeyRelease:
		if ne, ok := kb.events[ev.Code]; ok && ne.TimeRelease == nil {
			t := ev.Time
			ne.TimeRelease = &t
		}
	}
}

// CleanStale drops every event released at least limit seconds before
// now; a nil limit falls back to DefaultStaleLimit. Held notes are
// never dropped; they represent keys still physically down.
func (kb *KeyboardBuffer) CleanStale(now float32, limit *float32) {
	lim := DefaultStaleLimit
	if limit != nil {
		lim = *limit
	}
	for code, ne := range kb.events {
		if ne.TimeRelease != nil && now-*ne.TimeRelease >= lim {
			delete(kb.events, code)
		}
	}
}

// Len reports how many notes are tracked.
func (kb *KeyboardBuffer) Len() int { return len(kb.events) }
