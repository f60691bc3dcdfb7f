package deliberation

import (
	"fmt"
	"strings"
	"time"

	"github.com/agora-ai/agora/internal/domain"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusRunning      Status = "running"
	StatusCompleted    Status = "completed"
	StatusError        Status = "error"
)

// IsTerminal reports whether the session can no longer change state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Session is one deliberation run. A session is mutated only by the
// orchestrator goroutine driving it; sessions share no mutable state.
type Session struct {
	ID        string    `json:"session_id"`
	Topic     string    `json:"policy_topic"`
	Context   string    `json:"background_context"`
	Mode      Mode      `json:"mode"`
	Status    Status    `json:"status"`
	Phase     Phase     `json:"current_phase"`
	PhaseName string    `json:"phase_name"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Results   *Results  `json:"results,omitempty"`
}

// Results accumulates exactly one validated output per (phase, agent) pair.
type Results struct {
	ProblemStatement string            `json:"problem_statement,omitempty"`
	TurnPlan         string            `json:"turn_plan,omitempty"`
	Research         map[string]string `json:"research,omitempty"`
	Debate           DebateRecord      `json:"debate"`
	Votes            map[string]string `json:"votes,omitempty"`
	Announcement     string            `json:"final_announcement,omitempty"`
	Decision         Decision          `json:"final_decision,omitempty"`
	Report           *Report           `json:"final_report,omitempty"`
}

// CreateSessionRequest is the session-creation payload. The optional fields
// are folded into the background context before deliberation starts.
type CreateSessionRequest struct {
	Topic      string `json:"policy_topic"`
	Context    string `json:"background_context"`
	CityData   string `json:"city_data,omitempty"`
	PolicyType string `json:"policy_type,omitempty"`
	TimeRange  string `json:"time_range,omitempty"`
	Interests  string `json:"interests,omitempty"`
	Mode       string `json:"mode,omitempty"`
}

// Validate checks the request. An empty topic is rejected; everything else
// is optional.
func (r CreateSessionRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: policy_topic is required", domain.ErrValidation)
	}
	return nil
}

// MergedContext combines the free-form context with the optional structured
// parameters into the single context string handed to task templates.
func (r CreateSessionRequest) MergedContext() string {
	parts := make([]string, 0, 5)
	if r.Context != "" {
		parts = append(parts, r.Context)
	}
	if r.CityData != "" {
		parts = append(parts, "City data: "+r.CityData)
	}
	if r.PolicyType != "" {
		parts = append(parts, "Policy type: "+r.PolicyType)
	}
	if r.TimeRange != "" {
		parts = append(parts, "Time range: "+r.TimeRange)
	}
	if r.Interests != "" {
		parts = append(parts, "Interests: "+r.Interests)
	}
	return strings.Join(parts, "\n")
}
