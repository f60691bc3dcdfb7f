package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	agoraotel "github.com/agora-ai/agora/internal/adapter/otel"
	"github.com/agora-ai/agora/internal/config"
	"github.com/agora-ai/agora/internal/domain/agent"
	"github.com/agora-ai/agora/internal/domain/deliberation"
	"github.com/agora-ai/agora/internal/port/broadcast"
	"github.com/agora-ai/agora/internal/port/llm"
	"github.com/agora-ai/agora/internal/port/messagequeue"
	"github.com/agora-ai/agora/internal/port/sessionstore"
)

const (
	maxOutputEventLen = 500
	maxVoteEventLen   = 200
	maxContextArgLen  = 300
)

// Orchestrator drives a deliberation session through its phases. One
// orchestrator serves all sessions; per-session state lives entirely in the
// Session record each Run call owns.
type Orchestrator struct {
	registry    *Registry
	gen         llm.Generator
	researcher  *Researcher
	scorer      ConsensusScorer
	store       sessionstore.Store
	broadcaster broadcast.Broadcaster
	queue       messagequeue.Queue // optional
	metrics     *agoraotel.Metrics // optional
	cfg         config.Deliberation
}

// NewOrchestrator creates an orchestrator. queue and metrics may be nil.
func NewOrchestrator(
	registry *Registry,
	gen llm.Generator,
	researcher *Researcher,
	scorer ConsensusScorer,
	store sessionstore.Store,
	broadcaster broadcast.Broadcaster,
	queue messagequeue.Queue,
	metrics *agoraotel.Metrics,
	cfg config.Deliberation,
) *Orchestrator {
	return &Orchestrator{
		registry:    registry,
		gen:         gen,
		researcher:  researcher,
		scorer:      scorer,
		store:       store,
		broadcaster: broadcaster,
		queue:       queue,
		metrics:     metrics,
		cfg:         cfg,
	}
}

// Run executes the full deliberation for sess, mutating it through the phase
// sequence and persisting after every transition. Any invocation failure
// aborts the remaining phases and marks the session errored.
func (o *Orchestrator) Run(ctx context.Context, sess *deliberation.Session) {
	start := time.Now()
	ctx, span := agoraotel.StartSessionSpan(ctx, sess.ID, string(sess.Mode))
	defer span.End()

	if o.metrics != nil {
		o.metrics.SessionsStarted.Add(ctx, 1)
	}

	sess.Status = deliberation.StatusRunning
	sess.Results = &deliberation.Results{}
	o.persist(ctx, sess)

	o.emit(ctx, sess.ID, deliberation.EventDeliberationStarted, map[string]string{
		"session_id":   sess.ID,
		"policy_topic": sess.Topic,
	})

	if err := o.runPhases(ctx, sess); err != nil {
		slog.Error("deliberation failed", "session_id", sess.ID, "phase", sess.PhaseName, "error", err)
		sess.Status = deliberation.StatusError
		sess.Error = err.Error()
		o.persist(ctx, sess)
		o.emit(ctx, sess.ID, deliberation.EventDeliberationError, deliberation.ErrorEvent{
			Error: err.Error(),
			Phase: sess.PhaseName,
		})
		if o.metrics != nil {
			o.metrics.SessionsFailed.Add(ctx, 1)
		}
		return
	}

	sess.Status = deliberation.StatusCompleted
	o.persist(ctx, sess)

	duration := time.Since(start)
	if o.metrics != nil {
		o.metrics.SessionsCompleted.Add(ctx, 1)
		o.metrics.SessionDuration.Record(ctx, duration.Seconds())
		o.metrics.DebateRounds.Record(ctx, int64(sess.Results.Debate.Rounds))
	}

	o.emit(ctx, sess.ID, deliberation.EventDeliberationComplete, deliberation.CompleteEvent{
		SessionID:       sess.ID,
		DurationSeconds: duration.Seconds(),
		TotalAgents:     len(o.registry.All()),
		FinalDecision:   sess.Results.Decision,
	})
	slog.Info("deliberation complete", "session_id", sess.ID,
		"duration", duration, "decision", sess.Results.Decision)
}

// runPhases executes the phase sequence selected by the session mode.
func (o *Orchestrator) runPhases(ctx context.Context, sess *deliberation.Session) error {
	if err := o.phaseInitialization(ctx, sess); err != nil {
		return err
	}
	if err := o.phaseProblemStatement(ctx, sess); err != nil {
		return err
	}
	if err := o.phaseTurnManagement(ctx, sess); err != nil {
		return err
	}

	if sess.Mode != deliberation.ModeDebateOnly {
		if err := o.phaseResearch(ctx, sess); err != nil {
			return err
		}
	}
	if sess.Mode == deliberation.ModeResearchOnly {
		return nil
	}
	if sess.Mode != deliberation.ModeQuick {
		if err := o.phaseDebate(ctx, sess); err != nil {
			return err
		}
	}
	if err := o.phaseVoting(ctx, sess); err != nil {
		return err
	}
	if err := o.phaseResults(ctx, sess); err != nil {
		return err
	}
	return o.phaseFinalReport(ctx, sess)
}

// enterPhase advances the session to the phase and emits phase_started.
func (o *Orchestrator) enterPhase(ctx context.Context, sess *deliberation.Session, p deliberation.Phase, started deliberation.PhaseEvent) {
	sess.Phase = p
	sess.PhaseName = p.Name()
	o.persist(ctx, sess)

	started.Phase = int(p)
	started.PhaseName = p.Name()
	o.emit(ctx, sess.ID, deliberation.EventPhaseStarted, started)
	slog.Info("phase started", "session_id", sess.ID, "phase", sess.PhaseName)
}

func (o *Orchestrator) completePhase(ctx context.Context, sess *deliberation.Session, completed deliberation.PhaseEvent) {
	completed.Phase = int(sess.Phase)
	completed.PhaseName = sess.PhaseName
	o.persist(ctx, sess)
	o.emit(ctx, sess.ID, deliberation.EventPhaseCompleted, completed)
}

// invoke runs one agent invocation with tracing and metrics.
func (o *Orchestrator) invoke(ctx context.Context, d agent.Descriptor, phase deliberation.Phase, prompt string) (string, error) {
	ctx, span := agoraotel.StartInvocationSpan(ctx, d.ID, phase.Name())
	defer span.End()

	if o.metrics != nil {
		o.metrics.Invocations.Add(ctx, 1)
	}

	out, err := o.gen.Generate(ctx, llm.Request{
		Role:      d.Role,
		Goal:      d.Goal,
		Backstory: d.Backstory,
		Prompt:    prompt,
	})
	if err != nil {
		if o.metrics != nil {
			o.metrics.InvocationErrors.Add(ctx, 1)
		}
		return "", fmt.Errorf("invoke %s: %w", d.ID, err)
	}
	return out, nil
}

// --- Phase 1: Initialization ---

func (o *Orchestrator) phaseInitialization(ctx context.Context, sess *deliberation.Session) error {
	o.enterPhase(ctx, sess, deliberation.PhaseInitialization, deliberation.PhaseEvent{
		Message: "Initializing all expert agents...",
	})

	for _, d := range o.registry.All() {
		o.emit(ctx, sess.ID, deliberation.EventAgentCreated, deliberation.AgentEvent{
			AgentID:   d.ID,
			AgentName: d.Name,
			Category:  string(d.Category),
			Status:    "initialized",
		})
	}

	o.completePhase(ctx, sess, deliberation.PhaseEvent{
		AgentCount: len(o.registry.All()),
	})
	return nil
}

// --- Phase 2: Problem Statement ---

func (o *Orchestrator) phaseProblemStatement(ctx context.Context, sess *deliberation.Session) error {
	o.enterPhase(ctx, sess, deliberation.PhaseProblemStatement, deliberation.PhaseEvent{
		Message: "Clarifying the policy challenge...",
	})
	ctx, span := agoraotel.StartPhaseSpan(ctx, sess.ID, sess.PhaseName)
	defer span.End()

	d, err := o.registry.Get(agent.IDProblemStatement)
	if err != nil {
		return err
	}

	o.emit(ctx, sess.ID, deliberation.EventAgentStarted, deliberation.AgentEvent{
		AgentID:   d.ID,
		AgentName: d.Name,
		Action:    "clarifying problem",
	})

	out, err := o.invoke(ctx, d, deliberation.PhaseProblemStatement, problemStatementPrompt(sess.Topic, sess.Context))
	if err != nil {
		return err
	}
	sess.Results.ProblemStatement = o.sanitize(d.Name, sess.Topic, out)

	o.emit(ctx, sess.ID, deliberation.EventAgentCompleted, deliberation.AgentEvent{
		AgentID: d.ID,
		Output:  truncate(out, maxOutputEventLen),
	})

	o.completePhase(ctx, sess, deliberation.PhaseEvent{})
	return nil
}

// --- Phase 3: Turn Management ---

func (o *Orchestrator) phaseTurnManagement(ctx context.Context, sess *deliberation.Session) error {
	o.enterPhase(ctx, sess, deliberation.PhaseTurnManagement, deliberation.PhaseEvent{
		Message: "Establishing discussion rules...",
	})
	ctx, span := agoraotel.StartPhaseSpan(ctx, sess.ID, sess.PhaseName)
	defer span.End()

	d, err := o.registry.Get(agent.IDTurnManagement)
	if err != nil {
		return err
	}

	o.emit(ctx, sess.ID, deliberation.EventAgentStarted, deliberation.AgentEvent{
		AgentID:   d.ID,
		AgentName: d.Name,
		Action:    "planning discussion",
	})

	out, err := o.invoke(ctx, d, deliberation.PhaseTurnManagement, turnManagementPrompt(sess.Topic, o.registry.ExpertNames()))
	if err != nil {
		return err
	}
	sess.Results.TurnPlan = out

	o.emit(ctx, sess.ID, deliberation.EventAgentCompleted, deliberation.AgentEvent{
		AgentID: d.ID,
		Output:  truncate(out, maxOutputEventLen),
	})

	o.completePhase(ctx, sess, deliberation.PhaseEvent{})
	return nil
}

// --- Phase 4: Research & Analysis ---

func (o *Orchestrator) phaseResearch(ctx context.Context, sess *deliberation.Session) error {
	groups := o.registry.ResearchGroups()

	type assignment struct {
		desc  agent.Descriptor
		group string
		focus string
	}
	var work []assignment
	for _, g := range groups {
		for _, d := range g.Experts {
			work = append(work, assignment{desc: d, group: g.Label, focus: focusArea(d.Cluster)})
		}
	}

	o.enterPhase(ctx, sess, deliberation.PhaseResearch, deliberation.PhaseEvent{
		Message:     "All experts conducting research...",
		TotalAgents: len(work),
	})
	ctx, span := agoraotel.StartPhaseSpan(ctx, sess.ID, sess.PhaseName)
	defer span.End()

	sess.Results.Research = make(map[string]string, len(work))

	completed := 0
	err := o.forEach(ctx, len(work), o.cfg.PhaseWorkers,
		func(ctx context.Context, i int) (string, error) {
			w := work[i]
			var evidence string
			if w.desc.HasCapability(agent.CapabilityResearch) {
				evidence = o.researcher.Findings(ctx, sess.Topic, w.focus)
			}
			return o.invoke(ctx, w.desc, deliberation.PhaseResearch, researchPrompt(sess.Topic, w.focus, evidence))
		},
		func(ctx context.Context, i int) {
			w := work[i]
			o.emit(ctx, sess.ID, deliberation.EventAgentStarted, deliberation.AgentEvent{
				AgentID:   w.desc.ID,
				AgentName: displayName(w.desc.ID),
				Action:    "conducting research",
				Group:     w.group,
			})
		},
		func(ctx context.Context, i int, out string) {
			w := work[i]
			sess.Results.Research[w.desc.ID] = o.sanitize(displayName(w.desc.ID), sess.Topic, out)
			completed++
			o.emit(ctx, sess.ID, deliberation.EventAgentCompleted, deliberation.AgentEvent{
				AgentID:  w.desc.ID,
				Output:   truncate(out, maxOutputEventLen),
				Progress: fmt.Sprintf("%d/%d", completed, len(work)),
			})
		})
	if err != nil {
		return err
	}

	o.completePhase(ctx, sess, deliberation.PhaseEvent{
		CompletedAgents: completed,
	})
	return nil
}

// --- Phase 5: Structured Debate ---

func (o *Orchestrator) phaseDebate(ctx context.Context, sess *deliberation.Session) error {
	o.enterPhase(ctx, sess, deliberation.PhaseDebate, deliberation.PhaseEvent{
		Message: "Experts engaging in dynamic debate...",
	})
	ctx, span := agoraotel.StartPhaseSpan(ctx, sess.ID, sess.PhaseName)
	defer span.End()

	experts := o.registry.Experts()
	maxRounds := o.cfg.MaxDebateRounds
	record := &sess.Results.Debate

	for round := 1; round <= maxRounds; round++ {
		record.Rounds = round
		o.emit(ctx, sess.ID, deliberation.EventDebateRoundStarted, deliberation.DebateRoundEvent{
			Round:       round,
			TotalRounds: maxRounds,
			Message:     fmt.Sprintf("Round %d: Agents presenting arguments and rebuttals...", round),
		})

		roundArguments := make([]string, 0, len(experts))

		// Debate is inherently sequential: each prompt embeds the arguments
		// made earlier in the same round.
		for i, d := range experts {
			o.emit(ctx, sess.ID, deliberation.EventAgentStarted, deliberation.AgentEvent{
				AgentID:   d.ID,
				AgentName: displayName(d.ID),
				Action:    fmt.Sprintf("debating (Round %d)", round),
				Progress:  fmt.Sprintf("Round %d: %d/%d", round, i+1, len(experts)),
			})

			priorArgs := buildDebateContext(record.History, round, d.ID, o.cfg.ContextWindow)
			out, err := o.invoke(ctx, d, deliberation.PhaseDebate, debatePrompt(sess.Topic, round, priorArgs))
			if err != nil {
				return err
			}

			roundArguments = append(roundArguments, out)
			record.History = append(record.History, deliberation.DebateEntry{
				Round:     round,
				AgentID:   d.ID,
				AgentName: displayName(d.ID),
				Argument:  out,
			})

			o.emit(ctx, sess.ID, deliberation.EventAgentCompleted, deliberation.AgentEvent{
				AgentID: d.ID,
				Output:  truncate(out, maxOutputEventLen),
				Round:   round,
			})
		}
		o.persist(ctx, sess)

		if round < maxRounds {
			level := o.scorer.Score(roundArguments)
			msg := "Continuing debate..."
			if level >= o.cfg.ConsensusThreshold {
				msg = "High agreement reached!"
			}
			o.emit(ctx, sess.ID, deliberation.EventConsensusCheck, deliberation.ConsensusEvent{
				Round:          round,
				ConsensusLevel: level,
				Message:        fmt.Sprintf("Consensus level: %.0f%% - %s", level, msg),
			})

			if level >= o.cfg.ConsensusThreshold {
				record.ConsensusReached = true
				o.emit(ctx, sess.ID, deliberation.EventConsensusReached, deliberation.ConsensusEvent{
					Round:   round,
					Message: "Strong consensus reached among experts!",
				})
				break
			}
		}
	}

	o.completePhase(ctx, sess, deliberation.PhaseEvent{
		TotalRounds:      record.Rounds,
		ConsensusReached: record.ConsensusReached,
	})
	return nil
}

// buildDebateContext formats the most recent prior arguments for an expert's
// debate prompt. Arguments are truncated; window bounds how many appear.
func buildDebateContext(history []deliberation.DebateEntry, currentRound int, currentAgent string, window int) string {
	if len(history) == 0 {
		return "No previous arguments yet. You are among the first to speak."
	}

	var relevant []deliberation.DebateEntry
	for _, e := range history {
		if e.Round < currentRound || (e.Round == currentRound && e.AgentID != currentAgent) {
			relevant = append(relevant, e)
		}
	}
	if len(relevant) == 0 {
		return "No previous arguments in this round yet."
	}
	if len(relevant) > window {
		relevant = relevant[len(relevant)-window:]
	}

	parts := make([]string, len(relevant))
	for i, e := range relevant {
		parts[i] = fmt.Sprintf("**%s (Round %d):**\n%s...", e.AgentName, e.Round, truncate(e.Argument, maxContextArgLen))
	}
	return strings.Join(parts, "\n\n")
}

// --- Phase 6: Democratic Voting ---

func (o *Orchestrator) phaseVoting(ctx context.Context, sess *deliberation.Session) error {
	o.enterPhase(ctx, sess, deliberation.PhaseVoting, deliberation.PhaseEvent{
		Message: "Experts casting votes...",
	})
	ctx, span := agoraotel.StartPhaseSpan(ctx, sess.ID, sess.PhaseName)
	defer span.End()

	experts := o.registry.Experts()
	sess.Results.Votes = make(map[string]string, len(experts))

	err := o.forEach(ctx, len(experts), o.cfg.PhaseWorkers,
		func(ctx context.Context, i int) (string, error) {
			return o.invoke(ctx, experts[i], deliberation.PhaseVoting, votingPrompt(sess.Topic))
		},
		func(ctx context.Context, i int) {
			o.emit(ctx, sess.ID, deliberation.EventAgentStarted, deliberation.AgentEvent{
				AgentID:   experts[i].ID,
				AgentName: displayName(experts[i].ID),
				Action:    "voting",
				Progress:  fmt.Sprintf("%d/%d", i+1, len(experts)),
			})
		},
		func(ctx context.Context, i int, out string) {
			id := experts[i].ID
			sess.Results.Votes[id] = out
			o.emit(ctx, sess.ID, deliberation.EventVoteCast, deliberation.VoteEvent{
				AgentID: id,
				Vote:    truncate(out, maxVoteEventLen),
			})
			o.emit(ctx, sess.ID, deliberation.EventAgentCompleted, deliberation.AgentEvent{
				AgentID: id,
				Output:  truncate(out, maxOutputEventLen),
			})
		})
	if err != nil {
		return err
	}

	o.completePhase(ctx, sess, deliberation.PhaseEvent{
		TotalVotes: len(sess.Results.Votes),
	})
	return nil
}

// --- Phase 7: Results Analysis ---

func (o *Orchestrator) phaseResults(ctx context.Context, sess *deliberation.Session) error {
	o.enterPhase(ctx, sess, deliberation.PhaseResults, deliberation.PhaseEvent{
		Message: "Tallying votes and analyzing results...",
	})
	ctx, span := agoraotel.StartPhaseSpan(ctx, sess.ID, sess.PhaseName)
	defer span.End()

	d, err := o.registry.Get(agent.IDVotingCoordinator)
	if err != nil {
		return err
	}

	o.emit(ctx, sess.ID, deliberation.EventAgentStarted, deliberation.AgentEvent{
		AgentID:   d.ID,
		AgentName: "Voting Coordinator",
		Action:    "announcing results",
	})

	expertIDs := make([]string, len(o.registry.Experts()))
	for i, e := range o.registry.Experts() {
		expertIDs[i] = e.ID
	}

	out, err := o.invoke(ctx, d, deliberation.PhaseResults,
		coordinationPrompt(sess.Topic, votesSummary(expertIDs, sess.Results.Votes)))
	if err != nil {
		return err
	}

	sess.Results.Announcement = out
	sess.Results.Decision = deliberation.DecideFromAnnouncement(out)

	o.emit(ctx, sess.ID, deliberation.EventResultsAnnounced, deliberation.ResultsEvent{
		Decision:     sess.Results.Decision,
		Announcement: truncate(out, maxOutputEventLen),
	})

	o.completePhase(ctx, sess, deliberation.PhaseEvent{
		FinalDecision: string(sess.Results.Decision),
	})
	return nil
}

// --- Phase 8: Final Report ---

func (o *Orchestrator) phaseFinalReport(ctx context.Context, sess *deliberation.Session) error {
	o.enterPhase(ctx, sess, deliberation.PhaseFinalReport, deliberation.PhaseEvent{
		Message: "Generating comprehensive report...",
	})

	sess.Results.Report = deliberation.BuildReport(sess.Topic, time.Now().UTC(), sess.Results)

	o.emit(ctx, sess.ID, deliberation.EventReportGenerated, deliberation.ReportEvent{
		Report: sess.Results.Report,
	})

	o.completePhase(ctx, sess, deliberation.PhaseEvent{})
	return nil
}

// --- helpers ---

// sanitize validates an agent's output as policy prose, replacing it with
// the deterministic fallback when it fails and stripping code remnants when
// it passes.
func (o *Orchestrator) sanitize(role, topic, out string) string {
	valid, reason := ValidatePolicyOutput(out)
	if !valid {
		slog.Warn("invalid agent output, using fallback", "role", role, "reason", reason)
		return FallbackResponse(role, topic)
	}
	return ExtractPolicyContent(out)
}

// forEach runs n independent invocations with at most workers in flight.
// started and done fire in index order regardless of completion order, so
// the emitted event stream is deterministic. Any error cancels the
// remaining work.
func (o *Orchestrator) forEach(
	ctx context.Context,
	n, workers int,
	run func(ctx context.Context, i int) (string, error),
	started func(ctx context.Context, i int),
	done func(ctx context.Context, i int, out string),
) error {
	if workers <= 1 {
		for i := range n {
			started(ctx, i)
			out, err := run(ctx, i)
			if err != nil {
				return err
			}
			done(ctx, i, out)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	outs := make([]string, n)
	finished := make([]bool, n)
	next := 0

	for i := range n {
		g.Go(func() error {
			out, err := run(gctx, i)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			outs[i] = out
			finished[i] = true
			for next < n && finished[next] {
				started(ctx, next)
				done(ctx, next, outs[next])
				next++
			}
			return nil
		})
	}
	return g.Wait()
}

// emit fans one event out to WebSocket subscribers and, when configured, the
// message queue. Both paths are best-effort.
func (o *Orchestrator) emit(ctx context.Context, sessionID, eventType string, payload any) {
	o.broadcaster.BroadcastEvent(ctx, sessionID, eventType, payload)

	if o.queue == nil {
		return
	}
	envelope := struct {
		Type      string    `json:"type"`
		SessionID string    `json:"session_id"`
		Timestamp time.Time `json:"timestamp"`
		Payload   any       `json:"payload,omitempty"`
	}{eventType, sessionID, time.Now().UTC(), payload}

	data, err := json.Marshal(envelope)
	if err != nil {
		slog.Error("marshal queue event", "type", eventType, "error", err)
		return
	}
	subject := messagequeue.SubjectEvents + "." + sessionID
	if err := o.queue.Publish(ctx, subject, data); err != nil {
		slog.Error("publish event to queue", "subject", subject, "error", err)
	}
}

func (o *Orchestrator) persist(ctx context.Context, sess *deliberation.Session) {
	sess.UpdatedAt = time.Now().UTC()
	if err := o.store.UpdateSession(ctx, sess); err != nil {
		slog.Error("persist session", "session_id", sess.ID, "error", err)
	}
}

// truncate cuts s at n bytes for event payloads.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
