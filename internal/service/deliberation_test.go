package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/agora-ai/agora/internal/adapter/memstore"
	"github.com/agora-ai/agora/internal/config"
	"github.com/agora-ai/agora/internal/domain/deliberation"
	"github.com/agora-ai/agora/internal/port/llm"
)

type stubGenerator struct {
	fn func(req llm.Request) (string, error)
}

func (s stubGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	return s.fn(req)
}

type recordedEvent struct {
	sessionID string
	eventType string
	payload   any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) BroadcastEvent(_ context.Context, sessionID, eventType string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{sessionID, eventType, payload})
}

func (b *recordingBroadcaster) all() []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recordedEvent(nil), b.events...)
}

func (b *recordingBroadcaster) countType(eventType string) int {
	n := 0
	for _, e := range b.all() {
		if e.eventType == eventType {
			n++
		}
	}
	return n
}

func testConfig() config.Deliberation {
	return config.Deliberation{
		Mode:               "full",
		MaxDebateRounds:    3,
		ConsensusThreshold: 70,
		ContextWindow:      5,
		PhaseWorkers:       1,
	}
}

// agreeable answers by phase: unanimous approval and heavy agreement in
// debate, so consensus is reached in round one.
func agreeable(req llm.Request) (string, error) {
	p := req.Prompt
	switch {
	case strings.Contains(p, "Cast your vote"):
		return "Decision: APPROVE\nConfidence: HIGH\nKey Reason: the economic evidence is strong.", nil
	case strings.Contains(p, "Tally votes"):
		return "DECISION: APPROVED\nVOTE TALLY: 24 in favor, 0 opposed\nCONSENSUS LEVEL: Strong", nil
	case strings.Contains(p, "Debate on:"):
		return "I agree with and support the emerging consensus; the policy evidence is aligned and the economic analysis is correct.", nil
	default:
		return validAnalysis, nil
	}
}

// contrarian disagrees in every debate round without ever using agreement
// vocabulary, so consensus is never reached.
func contrarian(req llm.Request) (string, error) {
	p := req.Prompt
	switch {
	case strings.Contains(p, "Cast your vote"):
		return "Decision: REJECT\nConfidence: HIGH\nKey Reason: the fiscal risk outweighs the benefit.", nil
	case strings.Contains(p, "Tally votes"):
		return "DECISION: REJECTED\nVOTE TALLY: 0 in favor, 24 opposed\nCONSENSUS LEVEL: Strong", nil
	case strings.Contains(p, "Debate on:"):
		return "However, this policy works against fiscal prudence; on the contrary, the revenue impact is overstated.", nil
	default:
		return validAnalysis, nil
	}
}

type testEnv struct {
	orch  *Orchestrator
	store *memstore.Store
	bus   *recordingBroadcaster
}

func newTestEnv(t *testing.T, gen func(llm.Request) (string, error), cfg config.Deliberation) *testEnv {
	t.Helper()
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	store := memstore.New()
	bus := &recordingBroadcaster{}
	orch := NewOrchestrator(reg, stubGenerator{fn: gen}, NewResearcher(nil, nil, 0, 0),
		KeywordScorer{}, store, bus, nil, nil, cfg)
	return &testEnv{orch: orch, store: store, bus: bus}
}

func (e *testEnv) runSession(t *testing.T, mode deliberation.Mode) *deliberation.Session {
	t.Helper()
	ctx := context.Background()
	svc := NewSessionService(e.store, e.orch)
	sess, err := svc.Create(ctx, deliberation.CreateSessionRequest{
		Topic: "carbon tax for urban transport",
		Mode:  string(mode),
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	e.orch.Run(ctx, sess)

	stored, err := e.store.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("reload session: %v", err)
	}
	return stored
}

func TestFullDeliberationWithEarlyConsensus(t *testing.T) {
	env := newTestEnv(t, agreeable, testConfig())
	sess := env.runSession(t, deliberation.ModeFull)

	if sess.Status != deliberation.StatusCompleted {
		t.Fatalf("expected completed, got %s (error %q)", sess.Status, sess.Error)
	}
	res := sess.Results
	if res == nil {
		t.Fatal("missing results")
	}
	if res.ProblemStatement == "" || res.TurnPlan == "" {
		t.Fatal("missing orchestration outputs")
	}
	if len(res.Research) != 24 {
		t.Fatalf("expected 24 research entries, got %d", len(res.Research))
	}
	if res.Debate.Rounds != 1 || !res.Debate.ConsensusReached {
		t.Fatalf("expected early consensus in round 1, got rounds=%d reached=%v",
			res.Debate.Rounds, res.Debate.ConsensusReached)
	}
	if len(res.Debate.History) != 24 {
		t.Fatalf("expected 24 debate entries, got %d", len(res.Debate.History))
	}
	if len(res.Votes) != 24 {
		t.Fatalf("expected 24 votes, got %d", len(res.Votes))
	}
	if res.Decision != deliberation.DecisionApproved {
		t.Fatalf("expected APPROVED, got %s", res.Decision)
	}
	if res.Report == nil {
		t.Fatal("missing report")
	}
	if res.Report.ResearchCount != 24 || res.Report.VoteCount != 24 {
		t.Fatalf("report counts wrong: %+v", res.Report)
	}
	if res.Report.VoteTally.Approve != 24 {
		t.Fatalf("expected 24 approvals in tally, got %+v", res.Report.VoteTally)
	}

	if got := env.bus.countType(deliberation.EventPhaseStarted); got != 8 {
		t.Fatalf("expected 8 phase_started events, got %d", got)
	}
	if got := env.bus.countType(deliberation.EventPhaseCompleted); got != 8 {
		t.Fatalf("expected 8 phase_completed events, got %d", got)
	}
	if got := env.bus.countType(deliberation.EventAgentCreated); got != 27 {
		t.Fatalf("expected 27 agent_created events, got %d", got)
	}
	if got := env.bus.countType(deliberation.EventVoteCast); got != 24 {
		t.Fatalf("expected 24 vote_cast events, got %d", got)
	}
	if got := env.bus.countType(deliberation.EventConsensusReached); got != 1 {
		t.Fatalf("expected 1 consensus_reached event, got %d", got)
	}

	events := env.bus.all()
	if events[0].eventType != deliberation.EventSessionCreated {
		t.Fatalf("first event %s, want session_created", events[0].eventType)
	}
	if last := events[len(events)-1].eventType; last != deliberation.EventDeliberationComplete {
		t.Fatalf("last event %s, want deliberation_complete", last)
	}
}

func TestDebateRunsAllRoundsWithoutConsensus(t *testing.T) {
	env := newTestEnv(t, contrarian, testConfig())
	sess := env.runSession(t, deliberation.ModeFull)

	if sess.Status != deliberation.StatusCompleted {
		t.Fatalf("expected completed, got %s (error %q)", sess.Status, sess.Error)
	}
	res := sess.Results
	if res.Debate.Rounds != 3 || res.Debate.ConsensusReached {
		t.Fatalf("expected 3 rounds without consensus, got rounds=%d reached=%v",
			res.Debate.Rounds, res.Debate.ConsensusReached)
	}
	if len(res.Debate.History) != 72 {
		t.Fatalf("expected 72 debate entries, got %d", len(res.Debate.History))
	}
	if res.Decision != deliberation.DecisionRejected {
		t.Fatalf("expected REJECTED, got %s", res.Decision)
	}
	if got := env.bus.countType(deliberation.EventConsensusReached); got != 0 {
		t.Fatalf("expected no consensus_reached events, got %d", got)
	}
	// Consensus is checked after rounds 1 and 2 only.
	if got := env.bus.countType(deliberation.EventConsensusCheck); got != 2 {
		t.Fatalf("expected 2 consensus_check events, got %d", got)
	}
}

func TestQuickModeSkipsDebate(t *testing.T) {
	env := newTestEnv(t, agreeable, testConfig())
	sess := env.runSession(t, deliberation.ModeQuick)

	res := sess.Results
	if res.Debate.Rounds != 0 || len(res.Debate.History) != 0 {
		t.Fatalf("quick mode must skip debate, got %+v", res.Debate)
	}
	if len(res.Votes) != 24 || res.Report == nil {
		t.Fatal("quick mode must still vote and report")
	}
}

func TestResearchOnlyModeStopsAfterResearch(t *testing.T) {
	env := newTestEnv(t, agreeable, testConfig())
	sess := env.runSession(t, deliberation.ModeResearchOnly)

	if sess.Status != deliberation.StatusCompleted {
		t.Fatalf("expected completed, got %s", sess.Status)
	}
	res := sess.Results
	if len(res.Research) != 24 {
		t.Fatalf("expected 24 research entries, got %d", len(res.Research))
	}
	if len(res.Votes) != 0 || res.Report != nil || res.Decision != "" {
		t.Fatal("research-only mode must not vote or report")
	}
}

func TestDebateOnlyModeSkipsResearch(t *testing.T) {
	env := newTestEnv(t, agreeable, testConfig())
	sess := env.runSession(t, deliberation.ModeDebateOnly)

	res := sess.Results
	if len(res.Research) != 0 {
		t.Fatalf("debate-only mode must skip research, got %d entries", len(res.Research))
	}
	if res.Debate.Rounds == 0 || res.Report == nil {
		t.Fatal("debate-only mode must debate and report")
	}
}

func TestInvocationErrorAbortsSession(t *testing.T) {
	boom := errors.New("model unavailable")
	gen := func(req llm.Request) (string, error) {
		if strings.Contains(req.Prompt, "Cast your vote") {
			return "", boom
		}
		return agreeable(req)
	}
	env := newTestEnv(t, gen, testConfig())
	sess := env.runSession(t, deliberation.ModeFull)

	if sess.Status != deliberation.StatusError {
		t.Fatalf("expected error status, got %s", sess.Status)
	}
	if !strings.Contains(sess.Error, "model unavailable") {
		t.Fatalf("session error %q missing cause", sess.Error)
	}
	if sess.PhaseName != "Democratic Voting" {
		t.Fatalf("expected failure in voting phase, got %s", sess.PhaseName)
	}
	if got := env.bus.countType(deliberation.EventDeliberationError); got != 1 {
		t.Fatalf("expected 1 deliberation_error event, got %d", got)
	}
	if got := env.bus.countType(deliberation.EventDeliberationComplete); got != 0 {
		t.Fatalf("errored session must not emit deliberation_complete, got %d", got)
	}
}

func TestInvalidResearchOutputFallsBack(t *testing.T) {
	gen := func(req llm.Request) (string, error) {
		if strings.Contains(req.Prompt, "Research and analyze") {
			return "```python\nimport this\nprint('a poem about code, not policy at all')\n```", nil
		}
		return agreeable(req)
	}
	env := newTestEnv(t, gen, testConfig())
	sess := env.runSession(t, deliberation.ModeFull)

	if sess.Status != deliberation.StatusCompleted {
		t.Fatalf("expected completed, got %s (error %q)", sess.Status, sess.Error)
	}
	for id, out := range sess.Results.Research {
		if !strings.Contains(out, "placeholder response") {
			t.Fatalf("research output for %s not replaced by fallback", id)
		}
	}
}

func TestBoundedFanOutPreservesEventOrder(t *testing.T) {
	cfg := testConfig()
	cfg.PhaseWorkers = 4
	env := newTestEnv(t, agreeable, cfg)
	sess := env.runSession(t, deliberation.ModeFull)

	if sess.Status != deliberation.StatusCompleted {
		t.Fatalf("expected completed, got %s (error %q)", sess.Status, sess.Error)
	}
	if len(sess.Results.Research) != 24 {
		t.Fatalf("expected 24 research entries, got %d", len(sess.Results.Research))
	}

	// Research completion events must arrive in registry group order even
	// though invocations ran concurrently.
	reg, _ := NewRegistry()
	var want []string
	for _, g := range reg.ResearchGroups() {
		for _, d := range g.Experts {
			want = append(want, d.ID)
		}
	}

	var got []string
	for _, e := range env.bus.all() {
		ev, ok := e.payload.(deliberation.AgentEvent)
		if !ok || ev.Action != "conducting research" {
			continue
		}
		got = append(got, ev.AgentID)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d research agent_started events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestDebateContextWindow(t *testing.T) {
	history := []deliberation.DebateEntry{}
	for i := 0; i < 8; i++ {
		history = append(history, deliberation.DebateEntry{
			Round: 1, AgentID: "a", AgentName: "A",
			Argument: strings.Repeat("x", 400),
		})
	}

	got := buildDebateContext(history, 2, "b", 5)
	if n := strings.Count(got, "**A (Round 1):**"); n != 5 {
		t.Fatalf("expected window of 5 arguments, got %d", n)
	}
	// Each embedded argument is truncated to 300 characters.
	if strings.Contains(got, strings.Repeat("x", 301)) {
		t.Fatal("argument not truncated in context")
	}
}

func TestDebateContextEmptyHistory(t *testing.T) {
	if got := buildDebateContext(nil, 1, "a", 5); !strings.Contains(got, "among the first to speak") {
		t.Fatalf("unexpected empty-history context %q", got)
	}
}

func TestDebateContextExcludesOwnCurrentRoundEntry(t *testing.T) {
	history := []deliberation.DebateEntry{
		{Round: 1, AgentID: "a", AgentName: "A", Argument: "mine"},
	}
	if got := buildDebateContext(history, 1, "a", 5); !strings.Contains(got, "No previous arguments in this round yet") {
		t.Fatalf("own argument must be excluded, got %q", got)
	}
}
