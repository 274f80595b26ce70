package session

import (
	"sync"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Session serializes every access to its board.
type Session struct {
	ID    string
	Label string // difficulty name or "custom"

	mu        sync.Mutex
	board     *mines.Board
	startedAt time.Time
	touchedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

type Snapshot struct {
	ID             string
	Label          string
	Grid           mines.Grid
	Width          int
	Height         int
	MineCount      int
	RemainingMines int
	State          mines.State
	StartedAt      time.Time
	EndedAt        *time.Time
}

// Do runs fn with exclusive access to the board. ended reports whether
// this call moved the game into a terminal state.
func (s *Session) Do(fn func(b *mines.Board) error) (snap Snapshot, ended bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasOver := s.board.State().Over()
	err = fn(s.board)
	now := s.now()
	s.touchedAt = now
	if !wasOver && s.board.State().Over() {
		s.endedAt = now
		ended = true
	}
	return s.snapshot(), ended, err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:             s.ID,
		Label:          s.Label,
		Grid:           s.board.View(),
		Width:          s.board.Width(),
		Height:         s.board.Height(),
		MineCount:      s.board.Mines(),
		RemainingMines: s.board.RemainingMines(),
		State:          s.board.State(),
		StartedAt:      s.startedAt,
	}
	if !s.endedAt.IsZero() {
		endedAt := s.endedAt
		snap.EndedAt = &endedAt
	}
	return snap
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}
