// Package viewer implements the image lightbox: a single overlay and image
// pair with keyboard, wheel, and pinch zoom, double-tap close, and a page
// scroll lock, decoupled from any rendering toolkit. The host translates its
// input into Events and renders whatever the Surface callbacks tell it to.
package viewer

import (
	"math"
	"time"

	"github.com/pagelight/pagelight/internal/logger"
)

// Zoom bounds and input increments. Every scale mutation passes through
// clamp with these bounds.
const (
	MinScale = 1.0
	MaxScale = 3.0

	keyStep         = 0.1
	wheelStep       = 0.12
	doubleTapWindow = 300 * time.Millisecond
)

// Surface is the overlay/image pair the viewer drives. Hosts implement it
// with whatever they render; the viewer never touches a toolkit directly.
type Surface interface {
	SetImage(src string)
	ClearImage()
	SetScale(scale float64)
	Show()
	Hide()
}

// ScrollLocker suspends and restores page scrolling while the overlay is up.
// Lock and Unlock fire exactly once per closed-to-open and open-to-closed
// transition respectively.
type ScrollLocker interface {
	Lock()
	Unlock()
}

// Viewer owns the lightbox state. Construct one per page with New and keep
// it for the page's lifetime; all methods must be called from a single
// goroutine (the host's event loop).
type Viewer struct {
	surface Surface
	lock    ScrollLocker
	log     *logger.Logger

	open          bool
	scale         float64
	src           string
	lastTap       time.Time
	pinchBaseline float64
}

// Option customizes a Viewer at construction time.
type Option func(*Viewer)

// WithLogger attaches a logger for debug traces. A nil logger is fine.
func WithLogger(log *logger.Logger) Option {
	return func(v *Viewer) {
		v.log = log.WithComponent("viewer")
	}
}

// New creates a Viewer bound to the given surface and scroll lock. A nil
// surface disables the viewer entirely: every method becomes a silent no-op,
// mirroring a page missing its overlay markup.
func New(surface Surface, lock ScrollLocker, opts ...Option) *Viewer {
	v := &Viewer{
		surface: surface,
		lock:    lock,
		scale:   MinScale,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Viewer) disabled() bool {
	return v == nil || v.surface == nil
}

// Open shows the overlay with the given image source at actual size. Opening
// while already open swaps the image and still resets the scale, but the
// scroll lock is not re-acquired.
func (v *Viewer) Open(src string) {
	if v.disabled() {
		return
	}

	wasOpen := v.open
	v.scale = MinScale
	v.src = src
	v.surface.SetImage(src)
	v.surface.SetScale(v.scale)
	v.surface.Show()
	v.open = true

	if !wasOpen && v.lock != nil {
		v.lock.Lock()
	}
	v.log.Debug("lightbox opened")
}

// Close hides the overlay and releases the image source. Idempotent. Scale
// is intentionally left alone; the next Open resets it.
func (v *Viewer) Close() {
	if v.disabled() || !v.open {
		return
	}

	v.src = ""
	v.surface.ClearImage()
	v.surface.Hide()
	v.open = false

	if v.lock != nil {
		v.lock.Unlock()
	}
	v.log.Debug("lightbox closed")
}

// IsOpen reports whether the overlay is visible.
func (v *Viewer) IsOpen() bool {
	if v == nil {
		return false
	}
	return v.open
}

// Scale returns the current zoom factor, always within [MinScale, MaxScale].
func (v *Viewer) Scale() float64 {
	if v == nil {
		return MinScale
	}
	return v.scale
}

// Source returns the image source shown, or "" when closed.
func (v *Viewer) Source() string {
	if v == nil {
		return ""
	}
	return v.src
}

// Handle dispatches one input event and reports whether the viewer consumed
// it (consumed wheel events must not scroll the page, a consumed context
// menu must not open). A closed viewer consumes nothing: keys are gated on
// the open state, and pointer, wheel, and touch events can only originate
// from the overlay subtree, which is hidden.
func (v *Viewer) Handle(ev Event) bool {
	if v.disabled() || !v.open {
		return false
	}

	switch e := ev.(type) {
	case KeyEvent:
		return v.handleKey(e)
	case WheelEvent:
		return v.handleWheel(e)
	case PointerEvent:
		if e.OnImage {
			return false
		}
		v.Close()
		return true
	case TouchStartEvent:
		return v.handleTouchStart(e)
	case TouchMoveEvent:
		return v.handleTouchMove(e)
	case TouchEndEvent:
		return v.handleTouchEnd(e)
	case ContextMenuEvent:
		return true
	}
	return false
}

func (v *Viewer) handleKey(e KeyEvent) bool {
	switch e.Key {
	case KeyEscape:
		v.Close()
	case KeyPlus:
		v.setScale(clamp(v.scale+keyStep, MinScale, MaxScale))
	case KeyMinus:
		v.setScale(clamp(v.scale-keyStep, MinScale, MaxScale))
	case KeyZero:
		v.setScale(MinScale)
	default:
		return false
	}
	return true
}

func (v *Viewer) handleWheel(e WheelEvent) bool {
	if !e.OnImage {
		return false
	}

	// Wheel up (negative delta) zooms in.
	switch {
	case e.DeltaY < 0:
		v.setScale(clamp(v.scale+wheelStep, MinScale, MaxScale))
	case e.DeltaY > 0:
		v.setScale(clamp(v.scale-wheelStep, MinScale, MaxScale))
	}
	return true
}

func (v *Viewer) handleTouchStart(e TouchStartEvent) bool {
	if len(e.Contacts) < 2 {
		v.pinchBaseline = 0
		return false
	}

	v.pinchBaseline = distance(e.Contacts[0], e.Contacts[1])
	return v.pinchBaseline > 0
}

func (v *Viewer) handleTouchMove(e TouchMoveEvent) bool {
	if len(e.Contacts) < 2 {
		v.pinchBaseline = 0
		return false
	}
	// A zero or absent baseline means no pinch is in progress. Moves never
	// seed one; that is TouchStart's job.
	if v.pinchBaseline <= 0 {
		return false
	}

	dist := distance(e.Contacts[0], e.Contacts[1])
	if dist <= 0 {
		v.pinchBaseline = 0
		return false
	}

	// Incremental pinch: each move rescales relative to the previous move's
	// distance, not the gesture's first distance.
	v.setScale(clamp(v.scale*(dist/v.pinchBaseline), MinScale, MaxScale))
	v.pinchBaseline = dist
	return true
}

func (v *Viewer) handleTouchEnd(e TouchEndEvent) bool {
	consumed := false
	if !v.lastTap.IsZero() && e.At.Sub(v.lastTap) < doubleTapWindow {
		v.Close()
		consumed = true
	}
	// The timestamp is recorded unconditionally so any tap can pair with
	// the next one.
	v.lastTap = e.At

	if len(e.Contacts) < 2 {
		v.pinchBaseline = 0
	}
	return consumed
}

func (v *Viewer) setScale(scale float64) {
	v.scale = scale
	v.surface.SetScale(scale)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
