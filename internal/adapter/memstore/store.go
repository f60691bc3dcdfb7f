// Package memstore implements the session store port with an in-memory map.
// It is the default backend when no database is configured.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/agora-ai/agora/internal/domain"
	"github.com/agora-ai/agora/internal/domain/deliberation"
)

// Store holds sessions in memory. Records are deep-copied on the way in and
// out so callers never share mutable state with the store.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*deliberation.Session
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{sessions: make(map[string]*deliberation.Session)}
}

// CreateSession stores a new session record.
func (s *Store) CreateSession(_ context.Context, sess *deliberation.Session) error {
	cp, err := clone(sess)
	if err != nil {
		return fmt.Errorf("create session %s: %w", sess.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.ID]; exists {
		return fmt.Errorf("create session %s: %w", sess.ID, domain.ErrConflict)
	}
	s.sessions[sess.ID] = cp
	return nil
}

// GetSession returns the session with the given id.
func (s *Store) GetSession(_ context.Context, id string) (*deliberation.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("get session %s: %w", id, domain.ErrNotFound)
	}

	cp, err := clone(sess)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return cp, nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(_ context.Context) ([]deliberation.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]deliberation.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		cp, err := clone(sess)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		result = append(result, *cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateSession replaces the stored record for sess.ID.
func (s *Store) UpdateSession(_ context.Context, sess *deliberation.Session) error {
	cp, err := clone(sess)
	if err != nil {
		return fmt.Errorf("update session %s: %w", sess.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.ID]; !exists {
		return fmt.Errorf("update session %s: %w", sess.ID, domain.ErrNotFound)
	}
	s.sessions[sess.ID] = cp
	return nil
}

// clone deep-copies a session through JSON. Sessions are small; correctness
// beats speed here.
func clone(sess *deliberation.Session) (*deliberation.Session, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	var cp deliberation.Session
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}
