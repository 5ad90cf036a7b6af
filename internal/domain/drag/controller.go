package drag

import (
	"sync"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
)

// PointerID identifies one pointing device (mouse, pen, touch contact)
type PointerID int

// Button identifies a pointer button; only the primary button drags
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

// Point is a pointer location in viewport pixels
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// State is the gesture state of one pointer
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Target is the window manager surface the controller repositions
type Target interface {
	Get(name window.Name) (window.Window, bool)
	Move(name window.Name, left, top int) error
}

type gesture struct {
	window window.Name
	offset Point
}

// Controller tracks drag gestures for every pointer
type Controller struct {
	mu       sync.Mutex
	target   Target
	gestures map[PointerID]gesture // Dragging pointers only
}

// NewController creates a controller with every pointer idle
func NewController(target Target) *Controller {
	return &Controller{
		target:   target,
		gestures: make(map[PointerID]gesture),
	}
}

// Press starts a gesture if the press qualifies: primary button, inside the
// title bar, on an open window not already being dragged by another pointer.
// It reports whether a gesture started.
func (c *Controller) Press(p PointerID, b Button, name window.Name, inTitleBar bool, at Point) bool {
	if b != ButtonPrimary || !inTitleBar {
		return false
	}

	win, ok := c.target.Get(name)
	if !ok || !win.Visible() {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for other, g := range c.gestures {
		if other != p && g.window == name {
			return false
		}
	}

	c.gestures[p] = gesture{
		window: name,
		offset: Point{X: at.X - win.Geometry.Left, Y: at.Y - win.Geometry.Top},
	}
	return true
}

// Move repositions the window tracked by p so the captured offset stays
// under the pointer. It reports whether a window moved.
func (c *Controller) Move(p PointerID, at Point) bool {
	c.mu.Lock()
	g, ok := c.gestures[p]
	c.mu.Unlock()
	if !ok {
		return false
	}

	if err := c.target.Move(g.window, at.X-g.offset.X, at.Y-g.offset.Y); err != nil {
		// Window went away mid-gesture
		c.Release(p)
		return false
	}
	return true
}

// Release returns p to Idle. It reports whether a gesture was active.
func (c *Controller) Release(p PointerID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.gestures[p]; !ok {
		return false
	}
	delete(c.gestures, p)
	return true
}

// Cancel ends any gesture on the named window
func (c *Controller) Cancel(name window.Name) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for p, g := range c.gestures {
		if g.window == name {
			delete(c.gestures, p)
		}
	}
}

// Reset ends every gesture
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gestures = make(map[PointerID]gesture)
}

// state returns the gesture state of p and the window it is dragging
func (c *Controller) state(p PointerID) (State, window.Name) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if g, ok := c.gestures[p]; ok {
		return Dragging, g.window
	}
	return Idle, ""
}

// Active returns the number of pointers currently dragging
func (c *Controller) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.gestures)
}
