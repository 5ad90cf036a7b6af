package boot

import (
	"context"
	"math/rand"
	"time"
)

// Reporter receives progress from a running sequence
type Reporter interface {
	Line(text string)
	Progress(percent int)
	Finished()
}

// Sequence is a boot collaborator
type Sequence interface {
	// Run reports until the sequence completes or ctx is cancelled. Finished
	// is called only when the sequence completes.
	Run(ctx context.Context, r Reporter)
}

// DefaultPOSTLines returns the firmware lines typed out during boot
func DefaultPOSTLines() []string {
	return []string{
		"AMI BIOS v2.14",
		"CPU: Intel(R) Core(TM) i7-9750H @ 2.60GHz",
		"RAM: 16384MB OK",
		"SATA: 1 devices detected",
		"POST: All systems nominal",
	}
}

// DefaultServiceLines returns the lines printed once loading reaches 100%
func DefaultServiceLines() []string {
	return []string{
		"> initializing services...",
		"> mounting virtual fs...",
		"> starting window manager...",
		"> welcome! launching desktop...",
	}
}

// Simulated is a timed boot sequence: POST lines, a progress bar, then
// service lines
type Simulated struct {
	POSTLines        []string
	ServiceLines     []string
	LineInterval     time.Duration
	PhaseDelay       time.Duration // Between the last POST line and the progress bar
	ProgressInterval time.Duration
	FinishDelay      time.Duration // Between 100% and Finished
	Seed             int64
}

// NewSimulated returns the stock sequence
func NewSimulated() *Simulated {
	return &Simulated{
		POSTLines:        DefaultPOSTLines(),
		ServiceLines:     DefaultServiceLines(),
		LineInterval:     600 * time.Millisecond,
		PhaseDelay:       450 * time.Millisecond,
		ProgressInterval: 150 * time.Millisecond,
		FinishDelay:      1200 * time.Millisecond,
		Seed:             time.Now().UnixNano(),
	}
}

// Instant returns a sequence with the stock output and no delays
func Instant() *Simulated {
	s := NewSimulated()
	s.LineInterval = 0
	s.PhaseDelay = 0
	s.ProgressInterval = 0
	s.FinishDelay = 0
	s.Seed = 1
	return s
}

// Run implements Sequence
func (s *Simulated) Run(ctx context.Context, r Reporter) {
	rng := rand.New(rand.NewSource(s.Seed))

	for _, line := range s.POSTLines {
		if !sleep(ctx, s.LineInterval) {
			return
		}
		r.Line(line)
	}

	if !sleep(ctx, s.PhaseDelay) {
		return
	}

	progress := 0
	for progress < 100 {
		if !sleep(ctx, s.ProgressInterval) {
			return
		}
		progress += rng.Intn(8) + 3
		if progress > 100 {
			progress = 100
		}
		r.Progress(progress)
	}

	for _, line := range s.ServiceLines {
		r.Line(line)
	}

	if !sleep(ctx, s.FinishDelay) {
		return
	}
	r.Finished()
}

// sleep waits for d and reports false if ctx ended first
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
