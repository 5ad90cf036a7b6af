package vfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock that advances by one second per call
func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func twoFiles() []File {
	return []File{
		{ID: 1, Name: "a.txt", Size: "1KB"},
		{ID: 2, Name: "b.txt", Size: "2KB"},
	}
}

func TestDelete(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(twoFiles(), WithClock(fixedClock(start)))

	require.True(t, s.Delete(1))

	assert.Equal(t, []File{{ID: 2, Name: "b.txt", Size: "2KB"}}, s.Files())
	trash := s.Trash()
	require.Len(t, trash, 1)
	assert.Equal(t, File{ID: 1, Name: "a.txt", Size: "1KB"}, trash[0].File)
	assert.Equal(t, start.Add(time.Second), trash[0].DeletedAt)
}

func TestDeleteUnknownID(t *testing.T) {
	s := NewStore(twoFiles())

	assert.False(t, s.Delete(42))
	assert.Len(t, s.Files(), 2)
	assert.Empty(t, s.Trash())
}

func TestTrashIsMostRecentFirst(t *testing.T) {
	s := NewStore(twoFiles())

	s.Delete(1)
	s.Delete(2)

	trash := s.Trash()
	require.Len(t, trash, 2)
	assert.Equal(t, 2, trash[0].ID)
	assert.Equal(t, 1, trash[1].ID)
}

func TestRestoreRoundTrip(t *testing.T) {
	for _, f := range twoFiles() {
		s := NewStore(twoFiles())

		require.True(t, s.Delete(f.ID))
		require.True(t, s.Restore(f.ID))

		restored, ok := s.FindFile(f.Name)
		require.True(t, ok)
		assert.Equal(t, f, restored)
		assert.Empty(t, s.Trash())
		assert.Equal(t, f.ID, s.Files()[0].ID, "restored file goes to the front")
	}
}

func TestRestoreUnknownID(t *testing.T) {
	s := NewStore(twoFiles())
	s.Delete(1)

	assert.False(t, s.Restore(2))
	assert.Len(t, s.Trash(), 1)
	assert.Len(t, s.Files(), 1)
}

func TestPurge(t *testing.T) {
	s := NewStore(twoFiles())
	s.Delete(1)
	s.Delete(2)

	assert.True(t, s.Purge(1))
	assert.False(t, s.Purge(1))
	assert.False(t, s.Restore(1))

	trash := s.Trash()
	require.Len(t, trash, 1)
	assert.Equal(t, 2, trash[0].ID)
}

func TestEmptyTrash(t *testing.T) {
	s := NewStore(twoFiles())
	s.Delete(1)
	s.Delete(2)

	assert.Equal(t, 2, s.EmptyTrash())
	assert.Empty(t, s.Trash())
	assert.Empty(t, s.Files())
	assert.Equal(t, 0, s.EmptyTrash())
}

func TestActiveAndTrashAreDisjoint(t *testing.T) {
	s := NewStore(DefaultFiles())
	ops := []func(){
		func() { s.Delete(1) },
		func() { s.Delete(3) },
		func() { s.Restore(1) },
		func() { s.Delete(2) },
		func() { s.Purge(3) },
		func() { s.Delete(1) },
		func() { s.Restore(2) },
	}

	for _, op := range ops {
		op()

		active := map[int]bool{}
		for _, f := range s.Files() {
			active[f.ID] = true
		}
		for _, f := range s.Trash() {
			assert.False(t, active[f.ID], "file %d is both active and trashed", f.ID)
		}
	}
}

func TestSeedIsCopied(t *testing.T) {
	seed := twoFiles()
	s := NewStore(seed)

	s.Delete(1)

	assert.Equal(t, "a.txt", seed[0].Name)
	assert.Len(t, seed, 2)
}

func TestFind(t *testing.T) {
	s := NewStore(twoFiles())
	s.Delete(2)

	_, ok := s.FindFile("b.txt")
	assert.False(t, ok)

	trashed, ok := s.FindTrashed("b.txt")
	require.True(t, ok)
	assert.Equal(t, 2, trashed.ID)

	_, ok = s.FindTrashed("a.txt")
	assert.False(t, ok)
}
