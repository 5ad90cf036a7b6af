package desktop

import (
	"html"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
)

// Snapshot is the read-only view the page renders
type Snapshot struct {
	SessionID  string       `json:"session_id"`
	Profile    string       `json:"profile"`
	Phase      Phase        `json:"phase"`
	Generation uint64       `json:"generation"`
	Boot       *BootView    `json:"boot,omitempty"`
	Desktop    *DesktopView `json:"desktop,omitempty"`
}

// BootView is present until the desktop is shown
type BootView struct {
	Lines    []string `json:"lines"`
	Progress int      `json:"progress"`
}

// DesktopView is present only once the desktop is shown
type DesktopView struct {
	Clock          string            `json:"clock"`
	Icons          []Icon            `json:"icons"`
	StartMenuOpen  bool              `json:"start_menu_open"`
	StartMenu      []MenuItem        `json:"start_menu"`
	Windows        []window.Window   `json:"windows"` // Lowest z-order first
	Taskbar        []Tile            `json:"taskbar"` // Opening order
	Files          []vfs.File        `json:"files"`
	Trash          []vfs.TrashedFile `json:"trash"`
	Transcript     []string          `json:"transcript"`
	TranscriptHTML []string          `json:"transcript_html"`
	Focus          int               `json:"focus"`    // Focus counter, the highest z-order handed out
	Dragging       int               `json:"dragging"` // Pointers mid-drag
}

// Icon is a desktop shortcut
type Icon struct {
	Window window.Name `json:"window"`
	Label  string      `json:"label"`
}

// MenuItem is a start menu entry. Restart entries have no window.
type MenuItem struct {
	Label   string      `json:"label"`
	Window  window.Name `json:"window,omitempty"`
	Restart bool        `json:"restart,omitempty"`
}

// Tile is a taskbar button for an open window
type Tile struct {
	Window    window.Name `json:"window"`
	Minimized bool        `json:"minimized"`
}

// Icons returns the desktop shortcuts in display order
func Icons() []Icon {
	return []Icon{
		{Window: window.Explorer, Label: "File Explorer"},
		{Window: window.Recycle, Label: "Recycle Bin"},
		{Window: window.Terminal, Label: "Terminal"},
	}
}

// StartMenu returns the start menu entries in display order
func StartMenu() []MenuItem {
	return []MenuItem{
		{Label: "File Explorer", Window: window.Explorer},
		{Label: "Terminal", Window: window.Terminal},
		{Label: "Recycle Bin", Window: window.Recycle},
		{Label: "Restart (simulated)", Restart: true},
	}
}

// Snapshot captures the session's current state
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:  s.id,
		Profile:    s.profile,
		Phase:      s.phase,
		Generation: s.gen,
	}

	if s.phase != PhaseDesktopShown {
		snap.Boot = &BootView{
			Lines:    append([]string{}, s.bootLines...),
			Progress: s.progress,
		}
		return snap
	}

	wins := s.windows.Taskbar()
	tiles := make([]Tile, 0, len(wins))
	for _, w := range wins {
		tiles = append(tiles, Tile{Window: w.Name, Minimized: w.Minimized})
	}

	lines := s.interpreter.Lines()
	// Lines echo user input verbatim; the page gets an escaped copy
	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = html.EscapeString(line)
	}

	snap.Desktop = &DesktopView{
		Clock:          s.now().Format("15:04"),
		Icons:          Icons(),
		StartMenuOpen:  s.startMenu,
		StartMenu:      StartMenu(),
		Windows:        s.windows.List(),
		Taskbar:        tiles,
		Files:          s.files.Files(),
		Trash:          s.files.Trash(),
		Transcript:     lines,
		TranscriptHTML: escaped,
		Focus:          s.windows.Focus(),
		Dragging:       s.drag.Active(),
	}
	return snap
}
