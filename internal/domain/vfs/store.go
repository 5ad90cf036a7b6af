package vfs

import (
	"sync"
	"time"
)

// File is an entry in the active file listing
type File struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Size string `json:"size"` // Display string, e.g. "4.2MB"
}

// TrashedFile is a file waiting in the recycle bin
type TrashedFile struct {
	File
	DeletedAt time.Time `json:"deleted_at"`
}

// DefaultFiles returns the files present on a fresh desktop
func DefaultFiles() []File {
	return []File{
		{ID: 1, Name: "project1.zip", Size: "4.2MB"},
		{ID: 2, Name: "design.sketch", Size: "2.6MB"},
		{ID: 3, Name: "notes.txt", Size: "8KB"},
	}
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used to stamp deletions
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store holds active files and the trash, both most-recent-first
type Store struct {
	mu    sync.RWMutex
	files []File        // Protected by mu
	trash []TrashedFile // Protected by mu
	now   func() time.Time
}

// NewStore creates a store seeded with a copy of files
func NewStore(files []File, opts ...Option) *Store {
	s := &Store{
		files: append([]File(nil), files...),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delete moves an active file to the front of the trash
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfFile(s.files, id)
	if i < 0 {
		return false
	}

	f := s.files[i]
	s.files = append(s.files[:i], s.files[i+1:]...)
	s.trash = append([]TrashedFile{{File: f, DeletedAt: s.now()}}, s.trash...)
	return true
}

// Restore moves a trashed file back to the front of the active listing
func (s *Store) Restore(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfTrashed(s.trash, id)
	if i < 0 {
		return false
	}

	f := s.trash[i].File
	s.trash = append(s.trash[:i], s.trash[i+1:]...)
	s.files = append([]File{f}, s.files...)
	return true
}

// Purge permanently removes one trashed file
func (s *Store) Purge(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOfTrashed(s.trash, id)
	if i < 0 {
		return false
	}

	s.trash = append(s.trash[:i], s.trash[i+1:]...)
	return true
}

// EmptyTrash permanently removes every trashed file and returns how many
// were dropped
func (s *Store) EmptyTrash() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.trash)
	s.trash = nil
	return n
}

// Files returns a copy of the active listing
func (s *Store) Files() []File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]File{}, s.files...)
}

// Trash returns a copy of the trash, most recently deleted first
func (s *Store) Trash() []TrashedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TrashedFile{}, s.trash...)
}

// FindFile looks up the first active file with the given name
func (s *Store) FindFile(name string) (File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

// FindTrashed looks up the first trashed file with the given name
func (s *Store) FindTrashed(name string) (TrashedFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.trash {
		if f.Name == name {
			return f, true
		}
	}
	return TrashedFile{}, false
}

func indexOfFile(files []File, id int) int {
	for i, f := range files {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func indexOfTrashed(trash []TrashedFile, id int) int {
	for i, f := range trash {
		if f.ID == id {
			return i
		}
	}
	return -1
}
