package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agora-ai/agora/internal/domain"
	"github.com/agora-ai/agora/internal/domain/deliberation"
)

func newSessionService(t *testing.T) (*SessionService, *testEnv) {
	t.Helper()
	env := newTestEnv(t, agreeable, testConfig())
	return NewSessionService(env.store, env.orch), env
}

func TestCreateRejectsEmptyTopic(t *testing.T) {
	svc, _ := newSessionService(t)
	_, err := svc.Create(context.Background(), deliberation.CreateSessionRequest{Topic: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateDefaultsUnknownMode(t *testing.T) {
	svc, _ := newSessionService(t)
	sess, err := svc.Create(context.Background(), deliberation.CreateSessionRequest{
		Topic: "rent control",
		Mode:  "turbo",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.Mode != deliberation.ModeFull {
		t.Fatalf("unknown mode must default to full, got %s", sess.Mode)
	}
	if sess.Status != deliberation.StatusInitializing {
		t.Fatalf("new session must be initializing, got %s", sess.Status)
	}
	if sess.ID == "" {
		t.Fatal("missing session id")
	}
}

func TestCreateMergesStructuredContext(t *testing.T) {
	svc, _ := newSessionService(t)
	sess, err := svc.Create(context.Background(), deliberation.CreateSessionRequest{
		Topic:      "congestion pricing",
		Context:    "downtown core",
		CityData:   "population 2.1M",
		PolicyType: "transport",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := "downtown core\nCity data: population 2.1M\nPolicy type: transport"
	if sess.Context != want {
		t.Fatalf("merged context %q, want %q", sess.Context, want)
	}
}

func TestStartUnknownSession(t *testing.T) {
	svc, _ := newSessionService(t)
	_, err := svc.Start(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStartRunsDeliberationToCompletion(t *testing.T) {
	svc, env := newSessionService(t)
	ctx := context.Background()

	sess, err := svc.Create(ctx, deliberation.CreateSessionRequest{Topic: "carbon tax"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Start(ctx, sess.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Second start races the background run; whichever state it observes,
	// it must be refused.
	if _, err := svc.Start(ctx, sess.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict on double start, got %v", err)
	}

	deadline := time.After(10 * time.Second)
	for {
		stored, err := env.store.GetSession(ctx, sess.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if stored.Status.IsTerminal() {
			if stored.Status != deliberation.StatusCompleted {
				t.Fatalf("expected completed, got %s (error %q)", stored.Status, stored.Error)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("session did not finish, still %s in phase %s", stored.Status, stored.PhaseName)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestGetReportBeforeCompletion(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, deliberation.CreateSessionRequest{Topic: "carbon tax"})
	_, err := svc.GetReport(ctx, sess.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing report, got %v", err)
	}
}

func TestListSessions(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, deliberation.CreateSessionRequest{Topic: "a"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, deliberation.CreateSessionRequest{Topic: "b"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
}
