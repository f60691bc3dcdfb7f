// Package deliberation defines the session, phase, and result types for a
// multi-agent policy deliberation run.
package deliberation

// Phase is one ordered step of the fixed deliberation sequence. Phases are
// strictly forward-moving; only Debate may finish before its round cap.
type Phase int

const (
	PhaseInitialization Phase = iota + 1
	PhaseProblemStatement
	PhaseTurnManagement
	PhaseResearch
	PhaseDebate
	PhaseVoting
	PhaseResults
	PhaseFinalReport
)

// Name returns the display name used in progress events.
func (p Phase) Name() string {
	switch p {
	case PhaseInitialization:
		return "Initialization"
	case PhaseProblemStatement:
		return "Problem Statement"
	case PhaseTurnManagement:
		return "Turn Management"
	case PhaseResearch:
		return "Research & Analysis"
	case PhaseDebate:
		return "Structured Debate"
	case PhaseVoting:
		return "Democratic Voting"
	case PhaseResults:
		return "Results Analysis"
	case PhaseFinalReport:
		return "Final Report"
	}
	return "Unknown"
}

// Mode selects which phases a session executes.
type Mode string

const (
	ModeFull         Mode = "full"          // all phases
	ModeQuick        Mode = "quick"         // skip debate
	ModeResearchOnly Mode = "research_only" // stop after research
	ModeDebateOnly   Mode = "debate_only"   // debate through report, no research
)

// ParseMode maps a mode string to a Mode. Unrecognized values fall back to
// ModeFull rather than failing.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeFull, ModeQuick, ModeResearchOnly, ModeDebateOnly:
		return Mode(s)
	}
	return ModeFull
}
