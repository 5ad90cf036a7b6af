package desktop

import (
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/drag"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
)

// Event is an input to a Session. Boot and timer events carry the generation
// they belong to.
type Event interface {
	isEvent()
}

// Boot collaborator reports
type (
	BootLine struct {
		Gen  uint64
		Text string
	}
	BootProgress struct {
		Gen     uint64
		Percent int
	}
	BootFinished struct {
		Gen uint64
	}
)

// Timer completions
type (
	// FadeElapsed moves BootFinishing to DesktopShown
	FadeElapsed struct {
		Gen uint64
	}
	// RestartBooted moves a restarted session from Booting to BootFinishing
	RestartBooted struct {
		Gen uint64
	}
)

// Restart reboots the desktop. Accepted in every phase.
type Restart struct{}

// Desktop input, ignored unless the desktop is shown
type (
	IconActivate struct {
		Window window.Name
	}
	TaskbarClick struct {
		Window window.Name
	}
	StartMenuToggle struct{}
	StartMenuLaunch struct {
		Window window.Name
	}
	TitleMinimize struct {
		Window window.Name
	}
	TitleMaximize struct {
		Window window.Name
	}
	TitleClose struct {
		Window window.Name
	}
	WindowPress struct {
		Window window.Name
	}

	PointerDown struct {
		Pointer  drag.PointerID
		Button   drag.Button
		Window   window.Name // Empty when the press hit no window
		TitleBar bool
		X, Y     int
	}
	PointerMove struct {
		Pointer drag.PointerID
		X, Y    int
	}
	PointerUp struct {
		Pointer drag.PointerID
	}

	DeleteFile struct {
		ID int
	}
	RestoreFile struct {
		ID int
	}
	PurgeFile struct {
		ID int
	}
	EmptyTrash struct{}

	TerminalSubmit struct {
		Line string
	}
	TerminalHistoryUp struct{}
)

func (BootLine) isEvent()          {}
func (BootProgress) isEvent()      {}
func (BootFinished) isEvent()      {}
func (FadeElapsed) isEvent()       {}
func (RestartBooted) isEvent()     {}
func (Restart) isEvent()           {}
func (IconActivate) isEvent()      {}
func (TaskbarClick) isEvent()      {}
func (StartMenuToggle) isEvent()   {}
func (StartMenuLaunch) isEvent()   {}
func (TitleMinimize) isEvent()     {}
func (TitleMaximize) isEvent()     {}
func (TitleClose) isEvent()        {}
func (WindowPress) isEvent()       {}
func (PointerDown) isEvent()       {}
func (PointerMove) isEvent()       {}
func (PointerUp) isEvent()         {}
func (DeleteFile) isEvent()        {}
func (RestoreFile) isEvent()       {}
func (PurgeFile) isEvent()         {}
func (EmptyTrash) isEvent()        {}
func (TerminalSubmit) isEvent()    {}
func (TerminalHistoryUp) isEvent() {}
