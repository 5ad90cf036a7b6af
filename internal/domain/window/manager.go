package window

import (
	"fmt"
	"sort"
	"sync"
)

// Config holds configuration for the window manager.
type Config struct {
	Viewport  Size
	Defaults  map[Name]Geometry
	FocusBase int // Initial value of the focus counter
}

// DefaultConfig returns the layout used by the stock desktop.
func DefaultConfig() Config {
	return Config{
		Viewport:  Size{Width: 1280, Height: 720},
		Defaults:  DefaultGeometry(),
		FocusBase: 50,
	}
}

// DefaultGeometry returns the initial placement of every known window,
// staggered so that windows opened together do not fully overlap.
func DefaultGeometry() map[Name]Geometry {
	return map[Name]Geometry{
		Explorer: {Left: 220, Top: 140, Width: 520, Height: 360},
		Recycle:  {Left: 300, Top: 180, Width: 520, Height: 360},
		Terminal: {Left: 380, Top: 210, Width: 600, Height: 380},
	}
}

// Manager orchestrates window lifecycle and stacking
type Manager struct {
	mu       sync.RWMutex
	windows  map[Name]*Window // Open windows only
	order    []Name           // Opening order, used by the taskbar
	focus    int
	viewport Size
	defaults map[Name]Geometry
}

// NewManager creates a window manager with no open windows
func NewManager(cfg Config) *Manager {
	defaults := DefaultGeometry()
	for name, g := range cfg.Defaults {
		defaults[name] = g
	}

	return &Manager{
		windows:  make(map[Name]*Window),
		focus:    cfg.FocusBase,
		viewport: cfg.Viewport,
		defaults: defaults,
	}
}

// Open shows a window, creating it at its default geometry if it was closed,
// and raises it to the front
func (m *Manager) Open(name Name) error {
	if !name.Valid() {
		return fmt.Errorf("open %q: %w", name, ErrUnknownWindow)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	win, ok := m.windows[name]
	if !ok {
		win = &Window{
			Name:     name,
			Title:    name.Title(),
			Geometry: m.defaults[name],
		}
		m.windows[name] = win
		m.order = append(m.order, name)
	}

	win.Minimized = false
	m.raise(win)
	return nil
}

// Close removes a window entirely. Closing a window that is not open is a
// no-op; the return value reports whether anything changed.
func (m *Manager) Close(name Name) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.windows[name]; !ok {
		return false
	}

	delete(m.windows, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Minimize hides an open window without closing it
func (m *Manager) Minimize(name Name) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, ok := m.windows[name]
	if !ok {
		return fmt.Errorf("minimize %q: %w", name, ErrNotOpen)
	}

	win.Minimized = true
	return nil
}

// RestoreFromTaskbar un-minimizes a window and raises it
func (m *Manager) RestoreFromTaskbar(name Name) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, ok := m.windows[name]
	if !ok {
		return fmt.Errorf("restore %q: %w", name, ErrNotOpen)
	}

	win.Minimized = false
	m.raise(win)
	return nil
}

// BringToFront gives a window the next focus value
func (m *Manager) BringToFront(name Name) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, ok := m.windows[name]
	if !ok {
		return fmt.Errorf("focus %q: %w", name, ErrNotOpen)
	}

	m.raise(win)
	return nil
}

// raise assigns the next focus value (must hold lock)
func (m *Manager) raise(win *Window) {
	m.focus++
	win.ZOrder = m.focus
}

// ToggleMaximize fills the viewport with a window, or puts it back where it
// was. A window with no rendered surface (closed or minimized) is left
// untouched and ErrNoSurface is returned.
func (m *Manager) ToggleMaximize(name Name) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, ok := m.windows[name]
	if !ok || win.Minimized {
		return fmt.Errorf("maximize %q: %w", name, ErrNoSurface)
	}

	if !win.Maximized {
		saved := win.Geometry
		win.Saved = &saved
		win.Geometry = Geometry{Width: m.viewport.Width, Height: m.viewport.Height}
		win.Maximized = true
	} else {
		if win.Saved != nil {
			win.Geometry = *win.Saved
		}
		win.Saved = nil
		win.Maximized = false
	}

	m.raise(win)
	return nil
}

// Move repositions a window's top-left corner. There is no clamping; a window
// may end up partially or fully outside the viewport.
func (m *Manager) Move(name Name, left, top int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	win, ok := m.windows[name]
	if !ok {
		return fmt.Errorf("move %q: %w", name, ErrNotOpen)
	}

	win.Geometry.Left = left
	win.Geometry.Top = top
	return nil
}

// ResetSurfaces puts every open window back at its default geometry and
// drops maximize state. Used when the desktop is redrawn after a restart.
func (m *Manager) ResetSurfaces() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, win := range m.windows {
		win.Geometry = m.defaults[name]
		win.Saved = nil
		win.Maximized = false
	}
}

// Get returns a copy of an open window
func (m *Manager) Get(name Name) (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	win, ok := m.windows[name]
	if !ok {
		return Window{}, false
	}
	return win.clone(), true
}

// IsOpen reports whether a window is open (minimized windows count as open)
func (m *Manager) IsOpen(name Name) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.windows[name]
	return ok
}

// IsMinimized reports whether an open window is minimized
func (m *Manager) IsMinimized(name Name) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	win, ok := m.windows[name]
	return ok && win.Minimized
}

// List returns copies of all open windows, lowest z-order first
func (m *Manager) List() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wins := make([]Window, 0, len(m.windows))
	for _, win := range m.windows {
		wins = append(wins, win.clone())
	}
	sort.Slice(wins, func(i, j int) bool {
		return wins[i].ZOrder < wins[j].ZOrder
	})
	return wins
}

// Taskbar returns copies of all open windows in the order they were opened
func (m *Manager) Taskbar() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wins := make([]Window, 0, len(m.order))
	for _, name := range m.order {
		wins = append(wins, m.windows[name].clone())
	}
	return wins
}

// Top returns the open window with the highest z-order
func (m *Manager) Top() (Name, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		top  Name
		best int
	)
	for name, win := range m.windows {
		if top == "" || win.ZOrder > best {
			top, best = name, win.ZOrder
		}
	}
	return top, top != ""
}

// Focus returns the current value of the focus counter
func (m *Manager) Focus() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focus
}
