package deliberation

import "time"

// Report is the flat summary assembled in the final phase. No new agent
// invocation happens here; it is derived entirely from accumulated results.
type Report struct {
	Topic            string    `json:"policy_topic"`
	Timestamp        time.Time `json:"timestamp"`
	ProblemStatement string    `json:"problem_statement"`
	ResearchCount    int       `json:"research_count"`
	DebateRounds     int       `json:"debate_rounds"`
	ConsensusReached bool      `json:"consensus_reached"`
	VoteCount        int       `json:"votes_count"`
	VoteTally        VoteTally `json:"vote_tally"`
	Decision         Decision  `json:"final_decision"`
	Announcement     string    `json:"final_announcement"`
}

// BuildReport assembles the final report from a session's results.
func BuildReport(topic string, now time.Time, res *Results) *Report {
	return &Report{
		Topic:            topic,
		Timestamp:        now,
		ProblemStatement: res.ProblemStatement,
		ResearchCount:    len(res.Research),
		DebateRounds:     res.Debate.Rounds,
		ConsensusReached: res.Debate.ConsensusReached,
		VoteCount:        len(res.Votes),
		VoteTally:        TallyVotes(res.Votes),
		Decision:         res.Decision,
		Announcement:     res.Announcement,
	}
}
