package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

var Log = logrus.New()

var (
	ErrNotFound  = errors.New("session not found")
	ErrInvalidID = errors.New("invalid session id")
)

/*
Store keeps boards in memory only. Sessions idle for longer than the TTL
are dropped by Sweep, which Run calls periodically.
*/
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Create(board *mines.Board, label string) *Session {
	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		Label:     label,
		board:     board,
		startedAt: now,
		touchedAt: now,
		now:       s.now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	Log.WithFields(logrus.Fields{
		"id":     session.ID,
		"label":  label,
		"params": board.Params().String(),
	}).Debug("session created")
	return session
}

func (s *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions untouched since now-ttl and returns how many went.
func (s *Store) Sweep(now time.Time) int {
	deadline := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, session := range s.sessions {
		if session.idleSince().Before(deadline) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		Log.WithFields(logrus.Fields{
			"evicted":   evicted,
			"remaining": len(s.sessions),
		}).Info("swept idle sessions")
	}
	return evicted
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}
