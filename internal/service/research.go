package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/agora-ai/agora/internal/domain/research"
	"github.com/agora-ai/agora/internal/port/cache"
	"github.com/agora-ai/agora/internal/port/search"
)

// Researcher prefetches web evidence for research prompts. Results are
// cached per (topic, focus area) so the experts sharing a focus area reuse
// one query. A nil searcher or any search failure degrades to no evidence;
// research never fails a session.
type Researcher struct {
	searcher   search.Searcher
	cache      cache.Cache
	maxResults int
	ttl        time.Duration
}

// NewResearcher creates a researcher. searcher and cache may be nil.
func NewResearcher(searcher search.Searcher, c cache.Cache, maxResults int, ttl time.Duration) *Researcher {
	return &Researcher{
		searcher:   searcher,
		cache:      c,
		maxResults: maxResults,
		ttl:        ttl,
	}
}

// Findings returns a formatted evidence block for the topic and focus area,
// or "" when search is unavailable or fails.
func (r *Researcher) Findings(ctx context.Context, topic, focus string) string {
	if r == nil || r.searcher == nil {
		return ""
	}

	query := topic + " " + focus
	key := "search:" + query

	if r.cache != nil {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			var results []research.Result
			if err := json.Unmarshal(data, &results); err == nil {
				return formatFindings(results)
			}
		}
	}

	results, err := r.searcher.Search(ctx, query, r.maxResults)
	if err != nil {
		slog.Warn("web search failed, continuing without evidence", "query", query, "error", err)
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	if r.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
				slog.Warn("cache search results failed", "error", err)
			}
		}
	}

	return formatFindings(results)
}

func formatFindings(results []research.Result) string {
	var b []byte
	for i, res := range results {
		b = fmt.Appendf(b, "%d. %s\n   %s\n   Source: %s\n", i+1, res.Title, res.Snippet, res.Source)
	}
	return string(b)
}
