// Package progress persists the highest unlocked level.
//
// Saving progress is never critical: a Store swallows every backend failure,
// logging it and falling back to "nothing saved yet".
package progress

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// FirstLevel is the watermark of a player with no saved progress.
const FirstLevel = 1

// Store loads and saves the watermark without ever failing outward.
type Store interface {
	// Load returns the highest unlocked level, or FirstLevel if none is saved
	// or it cannot be read.
	Load() int
	// Save records a new watermark. Failures are dropped.
	Save(level int)
}

// Backend is a fallible watermark store. A missing value loads as 0, nil.
type Backend interface {
	LoadLevel() (int, error)
	SaveLevel(level int) error
}

// BestEffort adapts a Backend into a Store.
type BestEffort struct {
	backend Backend
	log     *log.Logger
}

// NewBestEffort wraps a backend. A nil logger discards warnings.
func NewBestEffort(b Backend, logger *log.Logger) *BestEffort {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BestEffort{backend: b, log: logger}
}

// Load implements Store.
func (s *BestEffort) Load() int {
	if s.backend == nil {
		return FirstLevel
	}
	level, err := s.backend.LoadLevel()
	if err != nil {
		s.log.Warn("progress load failed, starting from level 1", "err", err)
		return FirstLevel
	}
	return max(level, FirstLevel)
}

// Save implements Store.
func (s *BestEffort) Save(level int) {
	if s.backend == nil {
		return
	}
	if err := s.backend.SaveLevel(level); err != nil {
		s.log.Warn("progress save skipped", "lvl", level, "err", err)
	}
}

// Memory is an in-process Backend, used for tests and --progress=memory.
type Memory struct {
	mu    sync.Mutex
	level int
}

// NewMemory creates a memory backend holding level.
func NewMemory(level int) *Memory {
	return &Memory{level: level}
}

// LoadLevel implements Backend.
func (m *Memory) LoadLevel() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level, nil
}

// SaveLevel implements Backend.
func (m *Memory) SaveLevel(level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
	return nil
}

// Ensure backends implement the interfaces
var (
	_ Store   = (*BestEffort)(nil)
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
)
