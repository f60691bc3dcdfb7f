// Package sessionstore defines the persistence port for deliberation
// sessions.
package sessionstore

import (
	"context"

	"github.com/agora-ai/agora/internal/domain/deliberation"
)

// Store holds per-session state for API retrieval. A session's record is
// written only by the orchestrator goroutine driving that session.
type Store interface {
	CreateSession(ctx context.Context, s *deliberation.Session) error
	GetSession(ctx context.Context, id string) (*deliberation.Session, error)
	ListSessions(ctx context.Context) ([]deliberation.Session, error)

	// UpdateSession replaces the stored record for s.ID.
	UpdateSession(ctx context.Context, s *deliberation.Session) error
}
