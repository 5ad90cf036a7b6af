package desktop

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/boot"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/profile"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
)

// Factory builds runners that share one seed profile
type Factory struct {
	profile  *profile.Profile
	viewport window.Size
	boot     func(p *profile.Profile) boot.Sequence
	logger   *zap.Logger
	recorder Recorder
}

// NewFactory creates a factory using the stock boot sequence
func NewFactory(p *profile.Profile, logger *zap.Logger) *Factory {
	if p == nil {
		p = profile.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		profile:  p,
		viewport: window.DefaultConfig().Viewport,
		boot:     SimulatedBoot,
		logger:   logger,
		recorder: nopRecorder{},
	}
}

// WithViewport sets the size maximized windows fill
func (f *Factory) WithViewport(size window.Size) *Factory {
	f.viewport = size
	return f
}

// WithBoot replaces the boot collaborator constructor
func (f *Factory) WithBoot(fn func(p *profile.Profile) boot.Sequence) *Factory {
	f.boot = fn
	return f
}

// WithRecorder adds metrics recording to every session
func (f *Factory) WithRecorder(rec Recorder) *Factory {
	f.recorder = rec
	return f
}

// Profile returns the seed profile
func (f *Factory) Profile() *profile.Profile {
	return f.profile
}

// New creates a runner for a fresh session with a random id
func (f *Factory) New() *Runner {
	id := uuid.NewString()
	logger := f.logger.With(zap.String("session_id", id))

	session := NewSession(Options{
		ID:       id,
		Profile:  f.profile,
		Viewport: f.viewport,
		Logger:   logger,
		Recorder: f.recorder,
	})
	return NewRunner(session, f.boot(f.profile), logger)
}

// SimulatedBoot returns the stock timed sequence printing the profile's POST
// lines
func SimulatedBoot(p *profile.Profile) boot.Sequence {
	seq := boot.NewSimulated()
	seq.POSTLines = append([]string(nil), p.POSTLines...)
	return seq
}

// InstantBoot returns a sequence that finishes without delay
func InstantBoot(p *profile.Profile) boot.Sequence {
	seq := boot.Instant()
	seq.POSTLines = append([]string(nil), p.POSTLines...)
	return seq
}
