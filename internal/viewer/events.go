package viewer

import "time"

// Key identifies the keyboard inputs the viewer reacts to. Hosts translate
// their own key representation into these before calling Handle.
type Key string

const (
	// KeyEscape closes the viewer.
	KeyEscape Key = "escape"
	// KeyPlus zooms in one keyboard step. Hosts map both '+' and '=' here.
	KeyPlus Key = "plus"
	// KeyMinus zooms out one keyboard step.
	KeyMinus Key = "minus"
	// KeyZero resets zoom to actual size.
	KeyZero Key = "zero"
)

// Point is a contact position in surface coordinates.
type Point struct {
	X float64
	Y float64
}

// Event is a single input delivered to the viewer. Each variant carries only
// the numeric fields the state machine consumes, so any host toolkit can
// construct events without the viewer depending on its types.
type Event interface {
	isEvent()
}

// KeyEvent is a key press forwarded by the host's global key dispatcher.
type KeyEvent struct {
	Key Key
}

// WheelEvent is a scroll wheel tick. OnImage reports whether the pointer was
// over the image when the wheel fired.
type WheelEvent struct {
	DeltaY  float64
	OnImage bool
}

// PointerEvent is a click. OnImage distinguishes the image from the overlay
// background around it.
type PointerEvent struct {
	OnImage bool
}

// TouchStartEvent reports the active contacts at the start of a touch.
type TouchStartEvent struct {
	Contacts []Point
}

// TouchMoveEvent reports the active contacts during a touch drag.
type TouchMoveEvent struct {
	Contacts []Point
}

// TouchEndEvent reports a finger lift. At is the event time, used for
// double-tap detection. Contacts holds the contacts still on the surface.
type TouchEndEvent struct {
	At       time.Time
	Contacts []Point
}

// ContextMenuEvent is a long-press or right-click menu request on the image.
type ContextMenuEvent struct{}

func (KeyEvent) isEvent()         {}
func (WheelEvent) isEvent()       {}
func (PointerEvent) isEvent()     {}
func (TouchStartEvent) isEvent()  {}
func (TouchMoveEvent) isEvent()   {}
func (TouchEndEvent) isEvent()    {}
func (ContextMenuEvent) isEvent() {}

