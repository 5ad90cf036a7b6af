package desktop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/boot"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/profile"
	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/window"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func fastProfile() *profile.Profile {
	p := profile.Default()
	p.Timings = profile.Timings{FadeMS: 1, RestartBootMS: 1, RestartShowMS: 1}
	return p
}

// startRunner runs r until the test ends
func startRunner(t *testing.T, r *Runner) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-r.Done()
	})
}

func waitForPhase(t *testing.T, r *Runner, phase Phase, gen uint64) {
	t.Helper()
	require.Eventually(t, func() bool {
		snap := r.Latest()
		return snap.Phase == phase && snap.Generation == gen
	}, waitFor, tick)
}

// blockingBoot reports one line and then waits to be cancelled
type blockingBoot struct {
	cancelled chan struct{}
}

func (b *blockingBoot) Run(ctx context.Context, r boot.Reporter) {
	r.Line("waiting")
	<-ctx.Done()
	close(b.cancelled)
}

func TestRunnerBootsToDesktop(t *testing.T) {
	r := NewFactory(fastProfile(), nil).WithBoot(InstantBoot).New()
	startRunner(t, r)

	waitForPhase(t, r, PhaseDesktopShown, 1)

	snap := r.Latest()
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, "default", snap.Profile)
	require.NotNil(t, snap.Desktop)
	assert.Nil(t, snap.Boot)
}

func TestRunnerCollectsBootOutput(t *testing.T) {
	p := fastProfile()
	p.Timings.FadeMS = 60_000
	r := NewFactory(p, nil).WithBoot(InstantBoot).New()
	startRunner(t, r)

	waitForPhase(t, r, PhaseBootFinishing, 1)

	snap := r.Latest()
	require.NotNil(t, snap.Boot)
	assert.Equal(t, 100, snap.Boot.Progress)
	want := append(boot.DefaultPOSTLines(), boot.DefaultServiceLines()...)
	assert.Equal(t, want, snap.Boot.Lines)
}

func TestRunnerAppliesEvents(t *testing.T) {
	r := NewFactory(fastProfile(), nil).WithBoot(InstantBoot).New()
	startRunner(t, r)
	waitForPhase(t, r, PhaseDesktopShown, 1)

	require.True(t, r.Post(IconActivate{Window: window.Terminal}))
	require.True(t, r.Post(TerminalSubmit{Line: "rm notes.txt"}))

	require.Eventually(t, func() bool {
		desk := r.Latest().Desktop
		return desk != nil && len(desk.Windows) == 1 && len(desk.Trash) == 1
	}, waitFor, tick)
}

func TestRunnerRestart(t *testing.T) {
	r := NewFactory(fastProfile(), nil).WithBoot(InstantBoot).New()
	startRunner(t, r)
	waitForPhase(t, r, PhaseDesktopShown, 1)

	r.Post(Restart{})
	r.Post(Restart{})

	waitForPhase(t, r, PhaseDesktopShown, 3)
}

func TestRunnerRestartCancelsBoot(t *testing.T) {
	seq := &blockingBoot{cancelled: make(chan struct{})}
	r := NewFactory(fastProfile(), nil).
		WithBoot(func(*profile.Profile) boot.Sequence { return seq }).
		New()
	startRunner(t, r)

	require.Eventually(t, func() bool {
		b := r.Latest().Boot
		return b != nil && len(b.Lines) == 1
	}, waitFor, tick)

	r.Post(Restart{})

	select {
	case <-seq.cancelled:
	case <-time.After(waitFor):
		t.Fatal("boot sequence was not cancelled")
	}
	waitForPhase(t, r, PhaseDesktopShown, 2)
}

func TestRunnerUpdates(t *testing.T) {
	r := NewFactory(fastProfile(), nil).WithBoot(InstantBoot).New()
	startRunner(t, r)

	deadline := time.After(waitFor)
	for {
		select {
		case snap := <-r.Updates():
			if snap.Phase == PhaseDesktopShown {
				return
			}
		case <-deadline:
			t.Fatal("desktop never published")
		}
	}
}

func TestRunnerStops(t *testing.T) {
	r := NewFactory(fastProfile(), nil).WithBoot(InstantBoot).New()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()
	waitForPhase(t, r, PhaseDesktopShown, 1)

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(waitFor):
		t.Fatal("runner did not stop")
	}
	assert.False(t, r.Post(StartMenuToggle{}))
}
