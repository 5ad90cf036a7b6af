package desktop

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/drag"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/profile"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
)

// Timer asks the runner to deliver Event after a delay
type Timer struct {
	After time.Duration
	Event Event
}

// Effects tells the runner what a transition needs besides state changes
type Effects struct {
	Changed   bool    // The snapshot should be republished
	StartBoot bool    // Run the boot collaborator for the current generation
	Cancel    bool    // Stop the boot collaborator and every pending timer
	Timers    []Timer // Scheduled after Cancel is honoured
}

// Options configures a Session
type Options struct {
	ID       string
	Profile  *profile.Profile // Defaults to profile.Default()
	Viewport window.Size      // Defaults to 1280x720
	Clock    func() time.Time
	Logger   *zap.Logger
	Recorder Recorder
}

// Session is one simulated desktop. It is not safe for concurrent use; a
// Runner owns it and feeds it one event at a time.
type Session struct {
	id      string
	profile string
	timings profile.Timings

	phase     Phase
	gen       uint64
	startMenu bool
	bootLines []string
	progress  int

	windows     *window.Manager
	files       *vfs.Store
	interpreter *terminal.Interpreter
	drag        *drag.Controller

	now      func() time.Time
	logger   *zap.Logger
	recorder Recorder
}

// NewSession creates a session in the Booting phase. Call Start before the
// first Apply.
func NewSession(opts Options) *Session {
	p := opts.Profile
	if p == nil {
		p = profile.Default()
	}
	if opts.Viewport == (window.Size{}) {
		opts.Viewport = window.DefaultConfig().Viewport
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}

	s := &Session{
		id:       opts.ID,
		profile:  p.Name,
		timings:  p.Timings,
		phase:    PhaseBooting,
		windows:  window.NewManager(p.WindowConfig(opts.Viewport)),
		files:    vfs.NewStore(p.FileList(), vfs.WithClock(opts.Clock)),
		now:      opts.Clock,
		logger:   opts.Logger,
		recorder: opts.Recorder,
	}
	s.drag = drag.NewController(s.windows)
	s.interpreter = terminal.NewInterpreter(
		s.files,
		s,
		terminal.NewTranscript(p.Transcript),
		opts.Logger.Named("terminal"),
	)
	return s
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.phase
}

// Generation returns the current boot generation
func (s *Session) Generation() uint64 {
	return s.gen
}

// Start begins the first boot
func (s *Session) Start() Effects {
	s.gen++
	s.enter(PhaseBooting)
	s.bootLines = nil
	s.progress = 0
	return Effects{Changed: true, StartBoot: true, Cancel: true}
}

// Apply runs one transition
func (s *Session) Apply(ev Event) Effects {
	switch e := ev.(type) {
	case BootLine:
		if !s.current(e.Gen, PhaseBooting) {
			return Effects{}
		}
		s.bootLines = append(s.bootLines, e.Text)
		return changed(true)

	case BootProgress:
		if !s.current(e.Gen, PhaseBooting) {
			return Effects{}
		}
		s.progress = e.Percent
		return changed(true)

	case BootFinished:
		if !s.current(e.Gen, PhaseBooting) {
			return Effects{}
		}
		s.enter(PhaseBootFinishing)
		return Effects{
			Changed: true,
			Timers:  []Timer{{After: s.timings.Fade(), Event: FadeElapsed{Gen: s.gen}}},
		}

	case RestartBooted:
		if !s.current(e.Gen, PhaseBooting) {
			return Effects{}
		}
		s.enter(PhaseBootFinishing)
		return Effects{
			Changed: true,
			Timers:  []Timer{{After: s.timings.RestartShow(), Event: FadeElapsed{Gen: s.gen}}},
		}

	case FadeElapsed:
		if !s.current(e.Gen, PhaseBootFinishing) {
			return Effects{}
		}
		s.enter(PhaseDesktopShown)
		return changed(true)

	case Restart:
		return s.restart()
	}

	if s.phase != PhaseDesktopShown {
		s.logger.Debug("Input ignored while booting", zap.String("phase", string(s.phase)))
		return Effects{}
	}
	return changed(s.applyDesktop(ev))
}

// OpenWindow opens and raises a window and closes the start menu. The
// terminal opens windows through this method too.
func (s *Session) OpenWindow(name window.Name) error {
	if err := s.windows.Open(name); err != nil {
		return err
	}
	s.startMenu = false
	s.recorder.RecordWindowOp("open", string(name))
	return nil
}

// owner returns the window whose controls raise ev, for events that only
// come from inside a window
func owner(ev Event) (window.Name, bool) {
	switch ev.(type) {
	case DeleteFile:
		return window.Explorer, true
	case RestoreFile, PurgeFile, EmptyTrash:
		return window.Recycle, true
	case TerminalSubmit, TerminalHistoryUp:
		return window.Terminal, true
	}
	return "", false
}

// shown reports whether a window is open and not minimized
func (s *Session) shown(name window.Name) bool {
	return s.windows.IsOpen(name) && !s.windows.IsMinimized(name)
}

func (s *Session) applyDesktop(ev Event) bool {
	if name, ok := owner(ev); ok && !s.shown(name) {
		s.logger.Debug("Input for hidden window ignored",
			zap.String("window", string(name)),
			zap.String("event", fmt.Sprintf("%T", ev)),
		)
		return false
	}

	switch e := ev.(type) {
	case IconActivate:
		return s.launch(e.Window)

	case StartMenuLaunch:
		return s.launch(e.Window)

	case StartMenuToggle:
		s.startMenu = !s.startMenu
		return true

	case TaskbarClick:
		if s.windows.IsMinimized(e.Window) {
			return s.windowOp("restore", e.Window, s.windows.RestoreFromTaskbar(e.Window))
		}
		return s.windowOp("focus", e.Window, s.windows.BringToFront(e.Window))

	case TitleMinimize:
		s.drag.Cancel(e.Window)
		return s.windowOp("minimize", e.Window, s.windows.Minimize(e.Window))

	case TitleMaximize:
		return s.windowOp("maximize", e.Window, s.windows.ToggleMaximize(e.Window))

	case TitleClose:
		s.drag.Cancel(e.Window)
		closed := s.windows.Close(e.Window)
		if closed {
			s.recorder.RecordWindowOp("close", string(e.Window))
		}
		return closed

	case WindowPress:
		return s.windowOp("focus", e.Window, s.windows.BringToFront(e.Window))

	case PointerDown:
		raised := false
		if e.Window != "" {
			raised = s.windowOp("focus", e.Window, s.windows.BringToFront(e.Window))
		}
		pressed := s.drag.Press(e.Pointer, e.Button, e.Window, e.TitleBar, drag.Point{X: e.X, Y: e.Y})
		return raised || pressed

	case PointerMove:
		return s.drag.Move(e.Pointer, drag.Point{X: e.X, Y: e.Y})

	case PointerUp:
		s.drag.Release(e.Pointer)
		return false

	case DeleteFile:
		return s.files.Delete(e.ID)

	case RestoreFile:
		return s.files.Restore(e.ID)

	case PurgeFile:
		return s.files.Purge(e.ID)

	case EmptyTrash:
		return s.files.EmptyTrash() > 0

	case TerminalSubmit:
		res := s.interpreter.Execute(e.Line)
		if res.Outcome == terminal.OutcomeIgnored {
			return false
		}
		s.recorder.RecordCommand(res.Command, string(res.Outcome))
		return true

	case TerminalHistoryUp:
		s.interpreter.HistoryPrev()
		return false
	}

	s.logger.Warn("Unhandled event", zap.String("event", fmt.Sprintf("%T", ev)))
	return false
}

func (s *Session) launch(name window.Name) bool {
	if err := s.OpenWindow(name); err != nil {
		s.logger.Debug("Launch failed", zap.String("window", string(name)), zap.Error(err))
		return false
	}
	return true
}

// restart keeps files, trash, transcript and open windows, and redraws the
// windows at their default geometry
func (s *Session) restart() Effects {
	s.gen++
	s.enter(PhaseBooting)
	s.startMenu = false
	s.bootLines = nil
	s.progress = 0
	s.drag.Reset()
	s.windows.ResetSurfaces()

	s.logger.Info("Desktop restarting", zap.Uint64("generation", s.gen))
	return Effects{
		Changed: true,
		Cancel:  true,
		Timers:  []Timer{{After: s.timings.RestartBoot(), Event: RestartBooted{Gen: s.gen}}},
	}
}

// windowOp records a successful window operation and logs a failed one
func (s *Session) windowOp(op string, name window.Name, err error) bool {
	switch {
	case err == nil:
		s.recorder.RecordWindowOp(op, string(name))
		return true
	case errors.Is(err, window.ErrNoSurface):
		return false
	default:
		s.logger.Debug("Window operation failed",
			zap.String("op", op),
			zap.String("window", string(name)),
			zap.Error(err),
		)
		return false
	}
}

// current reports whether a boot or timer event belongs to the running
// generation and arrives in the phase it expects
func (s *Session) current(gen uint64, phase Phase) bool {
	if gen != s.gen {
		s.logger.Debug("Dropped stale event",
			zap.Uint64("event_generation", gen),
			zap.Uint64("generation", s.gen),
		)
		return false
	}
	return s.phase == phase
}

func (s *Session) enter(phase Phase) {
	s.phase = phase
	s.recorder.RecordPhase(string(phase))
}

func changed(ok bool) Effects {
	return Effects{Changed: ok}
}
