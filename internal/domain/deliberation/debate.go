package deliberation

// DebateEntry is one expert's argument in one debate round. Entries are
// immutable once appended to the history.
type DebateEntry struct {
	Round     int    `json:"round"`
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
	Argument  string `json:"argument"`
}

// DebateRecord is the append-only debate history plus its outcome. The
// history is globally ordered by round, then by expert invocation order
// within the round.
type DebateRecord struct {
	History          []DebateEntry `json:"history,omitempty"`
	Rounds           int           `json:"rounds"`
	ConsensusReached bool          `json:"consensus_reached"`
}
