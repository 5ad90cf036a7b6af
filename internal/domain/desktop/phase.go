package desktop

// Phase is the coarse lifecycle stage of a session
type Phase string

const (
	PhaseBooting       Phase = "booting"
	PhaseBootFinishing Phase = "boot_finishing"
	PhaseDesktopShown  Phase = "desktop_shown"
)

// Recorder receives session activity for metrics
type Recorder interface {
	RecordCommand(command, outcome string)
	RecordWindowOp(op, window string)
	RecordPhase(phase string)
}

type nopRecorder struct{}

func (nopRecorder) RecordCommand(string, string)  {}
func (nopRecorder) RecordWindowOp(string, string) {}
func (nopRecorder) RecordPhase(string)            {}
