package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agora-ai/agora/internal/domain"
	"github.com/agora-ai/agora/internal/domain/deliberation"
	"github.com/agora-ai/agora/internal/port/sessionstore"
)

// SessionService manages session lifecycle: creation, starting the
// background deliberation, and retrieval.
type SessionService struct {
	store sessionstore.Store
	orch  *Orchestrator

	mu      sync.Mutex
	started map[string]bool
}

// NewSessionService creates a session service.
func NewSessionService(store sessionstore.Store, orch *Orchestrator) *SessionService {
	return &SessionService{store: store, orch: orch, started: make(map[string]bool)}
}

// Create validates the request and stores a new session in the initializing
// state. Deliberation does not begin until Start is called.
func (s *SessionService) Create(ctx context.Context, req deliberation.CreateSessionRequest) (*deliberation.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	mode := s.orch.cfg.Mode
	if req.Mode != "" {
		mode = req.Mode
	}

	now := time.Now().UTC()
	sess := &deliberation.Session{
		ID:        uuid.New().String(),
		Topic:     req.Topic,
		Context:   req.MergedContext(),
		Mode:      deliberation.ParseMode(mode),
		Status:    deliberation.StatusInitializing,
		Phase:     deliberation.PhaseInitialization,
		PhaseName: deliberation.PhaseInitialization.Name(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	s.orch.emit(ctx, sess.ID, deliberation.EventSessionCreated, sess)
	slog.Info("session created", "session_id", sess.ID, "topic", sess.Topic, "mode", sess.Mode)
	return sess, nil
}

// Start launches the deliberation for an initializing session. The run is
// detached from the caller's request context; a second Start on the same
// session is a conflict.
func (s *SessionService) Start(ctx context.Context, id string) (*deliberation.Session, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status != deliberation.StatusInitializing {
		return nil, fmt.Errorf("start session %s: already %s: %w", id, sess.Status, domain.ErrConflict)
	}

	s.mu.Lock()
	if s.started[id] {
		s.mu.Unlock()
		return nil, fmt.Errorf("start session %s: already started: %w", id, domain.ErrConflict)
	}
	s.started[id] = true
	s.mu.Unlock()

	go s.orch.Run(context.Background(), sess)

	slog.Info("deliberation started", "session_id", id)
	return sess, nil
}

// Get returns a session by id.
func (s *SessionService) Get(ctx context.Context, id string) (*deliberation.Session, error) {
	return s.store.GetSession(ctx, id)
}

// List returns all sessions, newest first.
func (s *SessionService) List(ctx context.Context) ([]deliberation.Session, error) {
	return s.store.ListSessions(ctx)
}

// GetReport returns the final report for a completed session.
func (s *SessionService) GetReport(ctx context.Context, id string) (*deliberation.Report, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Results == nil || sess.Results.Report == nil {
		return nil, fmt.Errorf("report for session %s not generated yet: %w", id, domain.ErrNotFound)
	}
	return sess.Results.Report, nil
}
