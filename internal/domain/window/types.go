package window

import (
	"errors"
	"fmt"
)

// Name identifies one of the desktop's fixed windows
type Name string

const (
	Explorer Name = "explorer"
	Recycle  Name = "recycle"
	Terminal Name = "terminal"
)

// Names lists the known windows in desktop icon order
var Names = []Name{Explorer, Recycle, Terminal}

var (
	// ErrUnknownWindow is returned for names outside the known set
	ErrUnknownWindow = errors.New("unknown window")
	// ErrNotOpen is returned when an operation needs an open window
	ErrNotOpen = errors.New("window not open")
	// ErrNoSurface is returned when a window has nothing drawn to snapshot
	ErrNoSurface = errors.New("window has no rendered surface")
)

// Valid reports whether n is a known window
func (n Name) Valid() bool {
	for _, known := range Names {
		if n == known {
			return true
		}
	}
	return false
}

// Title returns the caption shown in the window's title bar
func (n Name) Title() string {
	switch n {
	case Explorer:
		return "File Explorer"
	case Recycle:
		return "Recycle Bin"
	case Terminal:
		return "OS Terminal"
	default:
		return string(n)
	}
}

// Parse converts a user supplied string into a known window name
func Parse(s string) (Name, error) {
	n := Name(s)
	if !n.Valid() {
		return "", fmt.Errorf("parse %q: %w", s, ErrUnknownWindow)
	}
	return n, nil
}

// Geometry is a window's position and size in pixels
type Geometry struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Size is a width/height pair
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window is the state of one open window
type Window struct {
	Name      Name      `json:"name"`
	Title     string    `json:"title"`
	Minimized bool      `json:"minimized"`
	Maximized bool      `json:"maximized"`
	ZOrder    int       `json:"z_order"`
	Geometry  Geometry  `json:"geometry"`
	Saved     *Geometry `json:"saved_geometry,omitempty"` // Pre-maximize geometry
}

// Visible reports whether the window is drawn
func (w Window) Visible() bool {
	return !w.Minimized
}

// clone returns a copy that shares no memory with w
func (w *Window) clone() Window {
	c := *w
	if w.Saved != nil {
		saved := *w.Saved
		c.Saved = &saved
	}
	return c
}
