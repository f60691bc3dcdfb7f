// Package search defines the web-research boundary.
package search

import (
	"context"

	"github.com/agora-ai/agora/internal/domain/research"
)

// Searcher returns a small ranked list of results for a query. A nil
// Searcher means the capability is unavailable and agents fall back to
// general knowledge; absence must never fail a session.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]research.Result, error)
}
