package deliberation

// Event types streamed to subscribed clients over the session's lifetime.
// The vocabulary is append-only; consumers must ignore unknown types.
const (
	EventSessionCreated       = "session_created"
	EventDeliberationStarted  = "deliberation_started"
	EventPhaseStarted         = "phase_started"
	EventPhaseCompleted       = "phase_completed"
	EventAgentCreated         = "agent_created"
	EventAgentStarted         = "agent_started"
	EventAgentCompleted       = "agent_completed"
	EventDebateRoundStarted   = "debate_round_started"
	EventConsensusCheck       = "consensus_check"
	EventConsensusReached     = "consensus_reached"
	EventVoteCast             = "vote_cast"
	EventResultsAnnounced     = "results_announced"
	EventReportGenerated      = "report_generated"
	EventDeliberationComplete = "deliberation_complete"
	EventDeliberationError    = "deliberation_error"
)

// PhaseEvent is the payload of phase_started and phase_completed. Only the
// fields relevant to the phase are set.
type PhaseEvent struct {
	Phase            int    `json:"phase"`
	PhaseName        string `json:"phase_name"`
	Message          string `json:"message,omitempty"`
	AgentCount       int    `json:"agent_count,omitempty"`
	TotalAgents      int    `json:"total_agents,omitempty"`
	CompletedAgents  int    `json:"completed_agents,omitempty"`
	TotalRounds      int    `json:"total_rounds,omitempty"`
	ConsensusReached bool   `json:"consensus_reached,omitempty"`
	TotalVotes       int    `json:"total_votes,omitempty"`
	FinalDecision    string `json:"final_decision,omitempty"`
}

// AgentEvent is the payload of agent_created, agent_started, and
// agent_completed. Output is truncated before emission.
type AgentEvent struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name,omitempty"`
	Category  string `json:"category,omitempty"`
	Status    string `json:"status,omitempty"`
	Action    string `json:"action,omitempty"`
	Group     string `json:"group,omitempty"`
	Output    string `json:"output,omitempty"`
	Progress  string `json:"progress,omitempty"`
	Round     int    `json:"round,omitempty"`
}

// DebateRoundEvent is the payload of debate_round_started.
type DebateRoundEvent struct {
	Round       int    `json:"round"`
	TotalRounds int    `json:"total_rounds"`
	Message     string `json:"message"`
}

// ConsensusEvent is the payload of consensus_check and consensus_reached.
type ConsensusEvent struct {
	Round          int     `json:"round"`
	ConsensusLevel float64 `json:"consensus_level,omitempty"`
	Message        string  `json:"message"`
}

// VoteEvent is the payload of vote_cast. Vote is truncated before emission.
type VoteEvent struct {
	AgentID string `json:"agent_id"`
	Vote    string `json:"vote"`
}

// ResultsEvent is the payload of results_announced.
type ResultsEvent struct {
	Decision     Decision `json:"decision"`
	Announcement string   `json:"announcement"`
}

// ReportEvent is the payload of report_generated.
type ReportEvent struct {
	Report *Report `json:"report"`
}

// CompleteEvent is the payload of deliberation_complete.
type CompleteEvent struct {
	SessionID       string   `json:"session_id"`
	DurationSeconds float64  `json:"duration_seconds"`
	TotalAgents     int      `json:"total_agents"`
	FinalDecision   Decision `json:"final_decision"`
}

// ErrorEvent is the payload of deliberation_error.
type ErrorEvent struct {
	Error string `json:"error"`
	Phase string `json:"phase"`
}
