package service

import (
	"errors"
	"testing"

	"github.com/agora-ai/agora/internal/domain"
	"github.com/agora-ai/agora/internal/domain/agent"
)

func TestRegistryCatalog(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if got := len(r.All()); got != 27 {
		t.Fatalf("expected 27 agents, got %d", got)
	}
	if got := len(r.Experts()); got != 24 {
		t.Fatalf("expected 24 domain experts, got %d", got)
	}

	for _, id := range []string{agent.IDProblemStatement, agent.IDTurnManagement, agent.IDVotingCoordinator} {
		d, err := r.Get(id)
		if err != nil {
			t.Fatalf("missing orchestration role %s: %v", id, err)
		}
		if d.Category != agent.CategoryOrchestration {
			t.Fatalf("role %s has category %s", id, d.Category)
		}
		if d.IsExpert() {
			t.Fatalf("orchestration role %s counted as expert", id)
		}
	}
}

func TestRegistryUnknownID(t *testing.T) {
	r, _ := NewRegistry()
	_, err := r.Get("quantum")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistryDuplicateID(t *testing.T) {
	_, err := newRegistry([]agent.Descriptor{
		{ID: agent.IDProblemStatement, Category: agent.CategoryOrchestration},
		{ID: agent.IDTurnManagement, Category: agent.CategoryOrchestration},
		{ID: agent.IDVotingCoordinator, Category: agent.CategoryOrchestration},
		{ID: "economic", Category: agent.CategoryCore},
		{ID: "economic", Category: agent.CategoryCore},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for duplicate id, got %v", err)
	}
}

func TestRegistryMissingOrchestrationRole(t *testing.T) {
	_, err := newRegistry([]agent.Descriptor{
		{ID: agent.IDProblemStatement, Category: agent.CategoryOrchestration},
		{ID: "economic", Category: agent.CategoryCore},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing role, got %v", err)
	}
}

func TestResearchGroupsOrder(t *testing.T) {
	r, _ := NewRegistry()
	groups := r.ResearchGroups()

	wantLabels := []string{
		"Economic Analysis", "Social Welfare", "Geospatial",
		"Income Inequality", "Resource Management", "Adaptation", "Legal",
	}
	if len(groups) != len(wantLabels) {
		t.Fatalf("expected %d groups, got %d", len(wantLabels), len(groups))
	}

	total := 0
	for i, g := range groups {
		if g.Label != wantLabels[i] {
			t.Fatalf("group %d: expected %q, got %q", i, wantLabels[i], g.Label)
		}
		total += len(g.Experts)
	}
	if total != 24 {
		t.Fatalf("expected 24 experts across groups, got %d", total)
	}

	// The core analyst leads its cluster.
	if groups[0].Experts[0].ID != "economic" {
		t.Fatalf("expected economic core first, got %s", groups[0].Experts[0].ID)
	}
	if groups[0].Experts[0].Category != agent.CategoryCore {
		t.Fatalf("expected core category, got %s", groups[0].Experts[0].Category)
	}
}
