package terminal

import (
	"errors"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
)

// HelpText is the single line printed by the help command
const HelpText = "Commands: ls, cd, open, rm, restore, emptybin, clear"

// FileStore is the part of the virtual file store the interpreter uses
type FileStore interface {
	Files() []vfs.File
	FindFile(name string) (vfs.File, bool)
	FindTrashed(name string) (vfs.TrashedFile, bool)
	Delete(id int) bool
	Restore(id int) bool
	EmptyTrash() int
}

// WindowOpener opens desktop windows on behalf of cd and open
type WindowOpener interface {
	OpenWindow(name window.Name) error
}

// Outcome classifies how a command line was handled
type Outcome string

const (
	OutcomeIgnored    Outcome = "ignored"
	OutcomeOK         Outcome = "ok"
	OutcomeFailed     Outcome = "failed"
	OutcomeMissingArg Outcome = "missing_argument"
	OutcomeUnknown    Outcome = "unknown"
)

// Result describes one executed line
type Result struct {
	Command string
	Arg     string
	Outcome Outcome
}

type handler func(in *Interpreter, arg string) Outcome

type command struct {
	needsArg bool
	missing  string // Logged when a required argument is absent
	run      handler
}

var commands = map[string]command{
	"help":     {run: (*Interpreter).help},
	"ls":       {run: (*Interpreter).list},
	"cd":       {needsArg: true, missing: "cd: missing folder", run: (*Interpreter).changeDir},
	"open":     {needsArg: true, missing: "open: missing target", run: (*Interpreter).open},
	"rm":       {needsArg: true, missing: "rm: missing file name", run: (*Interpreter).remove},
	"restore":  {needsArg: true, missing: "restore: missing file", run: (*Interpreter).restore},
	"emptybin": {run: (*Interpreter).emptyBin},
	"clear":    {run: (*Interpreter).clear},
}

// Interpreter executes command lines against the desktop
type Interpreter struct {
	mu         sync.Mutex
	files      FileStore
	windows    WindowOpener
	transcript *Transcript // Protected by mu
	logger     *zap.Logger
}

// NewInterpreter creates an interpreter writing to transcript
func NewInterpreter(files FileStore, windows WindowOpener, transcript *Transcript, logger *zap.Logger) *Interpreter {
	if transcript == nil {
		transcript = NewTranscript(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{
		files:      files,
		windows:    windows,
		transcript: transcript,
		logger:     logger,
	}
}

// Parse splits a line into a command and its first argument. Tokens after
// the first argument are discarded. ok is false for blank input.
func Parse(line string) (cmd, arg string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", false
	}
	if len(fields) > 1 {
		arg = fields[1]
	}
	return fields[0], arg, true
}

// Execute runs one line and appends its output to the transcript
func (in *Interpreter) Execute(line string) Result {
	name, arg, ok := Parse(line)
	if !ok {
		return Result{Outcome: OutcomeIgnored}
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	res := Result{Command: name, Arg: arg}

	cmd, known := commands[name]
	switch {
	case !known:
		in.log("Unknown command: " + name)
		res.Outcome = OutcomeUnknown
	case cmd.needsArg && arg == "":
		in.log(cmd.missing)
		res.Outcome = OutcomeMissingArg
	default:
		res.Outcome = cmd.run(in, arg)
	}

	in.logger.Debug("Command executed",
		zap.String("command", name),
		zap.String("arg", arg),
		zap.String("outcome", string(res.Outcome)),
	)
	return res
}

// HistoryPrev is reserved for recalling earlier input. History is not kept,
// so it always returns an empty line.
func (in *Interpreter) HistoryPrev() string {
	return ""
}

// Lines returns a copy of the transcript
func (in *Interpreter) Lines() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.transcript.Lines()
}

// log appends a prompt-prefixed line (must hold lock)
func (in *Interpreter) log(msg string) {
	in.transcript.Append(Prompt + msg)
}

func (in *Interpreter) help(string) Outcome {
	in.log(HelpText)
	return OutcomeOK
}

func (in *Interpreter) list(pattern string) Outcome {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		in.log("ls: bad pattern " + pattern)
		return OutcomeFailed
	}

	for _, f := range in.files.Files() {
		if pattern != "" {
			if matched, _ := doublestar.Match(pattern, f.Name); !matched {
				continue
			}
		}
		in.log("- " + f.Name)
	}
	return OutcomeOK
}

func (in *Interpreter) changeDir(arg string) Outcome {
	if name, err := window.Parse(arg); err == nil {
		if err := in.windows.OpenWindow(name); err != nil {
			in.logger.Debug("cd could not open window", zap.String("window", arg), zap.Error(err))
			return OutcomeFailed
		}
		in.log("Opened " + arg)
		return OutcomeOK
	}

	if _, ok := in.files.FindFile(arg); ok {
		in.log("Accessing " + arg)
		return OutcomeOK
	}

	in.log("cd: no such file")
	return OutcomeFailed
}

func (in *Interpreter) open(arg string) Outcome {
	err := in.windows.OpenWindow(window.Name(arg))
	switch {
	case errors.Is(err, window.ErrUnknownWindow):
		in.log("open: no such window " + arg)
		return OutcomeFailed
	case err != nil:
		in.logger.Debug("open failed", zap.String("window", arg), zap.Error(err))
		return OutcomeFailed
	}
	return OutcomeOK
}

func (in *Interpreter) remove(arg string) Outcome {
	f, ok := in.files.FindFile(arg)
	if !ok {
		in.log("rm: no such file")
		return OutcomeFailed
	}

	in.files.Delete(f.ID)
	in.log("Deleted " + arg)
	return OutcomeOK
}

func (in *Interpreter) restore(arg string) Outcome {
	f, ok := in.files.FindTrashed(arg)
	if !ok {
		in.log("restore: not in recycle bin")
		return OutcomeFailed
	}

	in.files.Restore(f.ID)
	in.log("Restored " + arg)
	return OutcomeOK
}

func (in *Interpreter) emptyBin(string) Outcome {
	in.files.EmptyTrash()
	in.log("Recycle Bin emptied")
	return OutcomeOK
}

func (in *Interpreter) clear(string) Outcome {
	in.transcript.Clear()
	return OutcomeOK
}
