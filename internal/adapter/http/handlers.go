package http

import (
	"net/http"

	"github.com/agora-ai/agora/internal/domain/deliberation"
	"github.com/agora-ai/agora/internal/service"
)

// Handlers holds all HTTP handler dependencies.
type Handlers struct {
	sessions *service.SessionService
	registry *service.Registry
}

// NewHandlers creates the handler set.
func NewHandlers(sessions *service.SessionService, registry *service.Registry) *Handlers {
	return &Handlers{sessions: sessions, registry: registry}
}

// CreatePolicy creates a new deliberation session. The session id in the
// response is used to subscribe to WebSocket updates before starting.
func (h *Handlers) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[deliberation.CreateSessionRequest](w, r)
	if !ok {
		return
	}

	sess, err := h.sessions.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "session not found")
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// StartDeliberation launches the background deliberation for a session.
func (h *Handlers) StartDeliberation(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")

	sess, err := h.sessions.Start(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "session not found")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"message":    "Deliberation started",
		"session_id": sess.ID,
	})
}

// GetSession returns the current state of a session, including accumulated
// results.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// ListSessions returns all sessions, newest first.
func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "sessions not found")
		return
	}
	if sessions == nil {
		sessions = []deliberation.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

// GetReport returns the final report of a completed session.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.sessions.GetReport(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type agentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Category string `json:"category"`
	Cluster  string `json:"cluster,omitempty"`
}

// ListAgents returns the static agent panel.
func (h *Handlers) ListAgents(w http.ResponseWriter, _ *http.Request) {
	all := h.registry.All()
	agents := make([]agentResponse, len(all))
	for i, d := range all {
		agents[i] = agentResponse{
			ID:       d.ID,
			Name:     d.Name,
			Role:     d.Role,
			Category: string(d.Category),
			Cluster:  string(d.Cluster),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents": agents,
		"total":  len(agents),
	})
}

// Health is the liveness endpoint.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"total_agents": len(h.registry.All()),
		"experts":      len(h.registry.Experts()),
	})
}
