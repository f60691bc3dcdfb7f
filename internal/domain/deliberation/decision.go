package deliberation

import "strings"

// Decision is the final decision label for a deliberated policy.
type Decision string

const (
	DecisionApproved    Decision = "APPROVED"
	DecisionRejected    Decision = "REJECTED"
	DecisionConditional Decision = "CONDITIONAL"
)

// DecideFromAnnouncement derives the decision label from the voting
// coordinator's free-text announcement. This is a textual heuristic that
// trusts the coordinator's own summary framing, not a programmatic tally:
// the first matching keyword family wins, approval checked before rejection.
func DecideFromAnnouncement(announcement string) Decision {
	upper := strings.ToUpper(announcement)
	switch {
	case strings.Contains(upper, "APPROVED") || strings.Contains(upper, "APPROVE"):
		return DecisionApproved
	case strings.Contains(upper, "REJECTED") || strings.Contains(upper, "REJECT"):
		return DecisionRejected
	default:
		return DecisionConditional
	}
}

// VoteTally is a supplementary structured count over the individual vote
// texts. It is reporting-only; the binding decision comes from
// DecideFromAnnouncement.
type VoteTally struct {
	Approve     int `json:"approve"`
	Reject      int `json:"reject"`
	Conditional int `json:"conditional"`
	Unclear     int `json:"unclear"`
}

// TallyVotes scans each vote text for the structured decision line the
// voting task asks for. Conditional approval is checked first so that
// "APPROVE WITH CONDITIONS" does not count as a plain approval.
func TallyVotes(votes map[string]string) VoteTally {
	var t VoteTally
	for _, vote := range votes {
		upper := strings.ToUpper(vote)
		switch {
		case strings.Contains(upper, "APPROVE WITH CONDITIONS") || strings.Contains(upper, "CONDITIONAL"):
			t.Conditional++
		case strings.Contains(upper, "REJECT"):
			t.Reject++
		case strings.Contains(upper, "APPROVE"):
			t.Approve++
		default:
			t.Unclear++
		}
	}
	return t
}
