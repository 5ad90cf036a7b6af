package boot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	lines    []string
	progress []int
	finished int
}

func (r *recorder) Line(text string)     { r.lines = append(r.lines, text) }
func (r *recorder) Progress(percent int) { r.progress = append(r.progress, percent) }
func (r *recorder) Finished()            { r.finished++ }

func TestInstantRun(t *testing.T) {
	rec := &recorder{}

	Instant().Run(context.Background(), rec)

	assert.Equal(t, 1, rec.finished)
	want := append(DefaultPOSTLines(), DefaultServiceLines()...)
	assert.Equal(t, want, rec.lines)

	require.NotEmpty(t, rec.progress)
	assert.Equal(t, 100, rec.progress[len(rec.progress)-1])
	for i := 1; i < len(rec.progress); i++ {
		step := rec.progress[i] - rec.progress[i-1]
		assert.Positive(t, step)
		assert.LessOrEqual(t, step, 10)
	}
}

func TestRunCancelled(t *testing.T) {
	seq := NewSimulated()
	seq.LineInterval = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}

	done := make(chan struct{})
	go func() {
		seq.Run(ctx, rec)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, rec.finished)
	assert.Empty(t, rec.lines)
}

func TestRunAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &recorder{}

	Instant().Run(ctx, rec)

	assert.Equal(t, 0, rec.finished)
}
