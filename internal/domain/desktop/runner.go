package desktop

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/FakeOS/backend/internal/domain/boot"
)

// DefaultInboxSize bounds the number of queued events per session
const DefaultInboxSize = 64

// Runner drives one Session from a single goroutine. Input events, timer
// completions and boot reports all arrive through its inbox, so every
// transition runs to completion before the next one starts.
type Runner struct {
	session *Session
	boot    boot.Sequence
	logger  *zap.Logger

	inbox   chan Event
	updates chan Snapshot
	done    chan struct{}
	once    sync.Once

	mu     sync.RWMutex
	latest Snapshot // Protected by mu

	// Owned by the Run goroutine
	timers     []*time.Timer
	bootCancel context.CancelFunc
	bootWG     sync.WaitGroup
}

// NewRunner creates a runner for session. seq may be nil, in which case the
// boot collaborator finishes immediately.
func NewRunner(session *Session, seq boot.Sequence, logger *zap.Logger) *Runner {
	if seq == nil {
		seq = boot.Instant()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		session: session,
		boot:    seq,
		logger:  logger,
		inbox:   make(chan Event, DefaultInboxSize),
		updates: make(chan Snapshot, 1),
		done:    make(chan struct{}),
		latest:  session.Snapshot(),
	}
}

// ID returns the session id
func (r *Runner) ID() string {
	return r.session.ID()
}

// Post queues an event. It returns false once the runner has stopped.
func (r *Runner) Post(ev Event) bool {
	select {
	case <-r.done:
		return false
	default:
	}

	select {
	case r.inbox <- ev:
		return true
	case <-r.done:
		return false
	}
}

// Updates delivers the snapshot published after each transition. A reader
// that falls behind only sees the newest snapshot.
func (r *Runner) Updates() <-chan Snapshot {
	return r.updates
}

// Latest returns the most recently published snapshot
func (r *Runner) Latest() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// Done is closed when Run returns
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run starts the first boot and processes events until ctx is cancelled.
// It must be called once.
func (r *Runner) Run(ctx context.Context) error {
	defer r.shutdown()

	r.logger.Info("Desktop session started", zap.String("session_id", r.session.ID()))
	r.handle(ctx, r.session.Start())

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Desktop session stopped", zap.String("session_id", r.session.ID()))
			return ctx.Err()
		case ev := <-r.inbox:
			r.handle(ctx, r.session.Apply(ev))
		}
	}
}

func (r *Runner) handle(ctx context.Context, fx Effects) {
	if fx.Cancel {
		r.cancelPending()
	}
	if fx.StartBoot {
		r.startBoot(ctx, r.session.Generation())
	}
	for _, t := range fx.Timers {
		r.schedule(t)
	}
	if fx.Changed {
		r.publish(r.session.Snapshot())
	}
}

func (r *Runner) publish(snap Snapshot) {
	r.mu.Lock()
	r.latest = snap
	r.mu.Unlock()

	// Only this goroutine sends, so after the drain there is room
	select {
	case <-r.updates:
	default:
	}
	r.updates <- snap
}

func (r *Runner) schedule(t Timer) {
	ev := t.Event
	r.timers = append(r.timers, time.AfterFunc(t.After, func() {
		r.Post(ev)
	}))
}

func (r *Runner) startBoot(ctx context.Context, gen uint64) {
	bootCtx, cancel := context.WithCancel(ctx)
	r.bootCancel = cancel

	r.bootWG.Add(1)
	go func() {
		defer r.bootWG.Done()
		r.boot.Run(bootCtx, &bootReporter{runner: r, gen: gen})
	}()
}

// cancelPending stops the boot collaborator and every timer. Events they
// already posted are dropped by their generation.
func (r *Runner) cancelPending() {
	if r.bootCancel != nil {
		r.bootCancel()
		r.bootCancel = nil
	}
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}

func (r *Runner) shutdown() {
	r.once.Do(func() {
		r.cancelPending()
		close(r.done)
		r.bootWG.Wait()
	})
}

// bootReporter forwards boot progress tagged with the generation it was
// started for
type bootReporter struct {
	runner *Runner
	gen    uint64
}

func (b *bootReporter) Line(text string) {
	b.runner.Post(BootLine{Gen: b.gen, Text: text})
}

func (b *bootReporter) Progress(percent int) {
	b.runner.Post(BootProgress{Gen: b.gen, Percent: percent})
}

func (b *bootReporter) Finished() {
	b.runner.Post(BootFinished{Gen: b.gen})
}
