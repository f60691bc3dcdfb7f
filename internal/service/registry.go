package service

import (
	"fmt"

	"github.com/agora-ai/agora/internal/domain"
	"github.com/agora-ai/agora/internal/domain/agent"
)

// ResearchGroup is one topical cluster of experts invoked together during
// the research phase.
type ResearchGroup struct {
	Label   string
	Experts []agent.Descriptor
}

// Registry is the validated, immutable agent panel. It is built once at
// startup and shared read-only across all sessions.
type Registry struct {
	all     []agent.Descriptor
	byID    map[string]agent.Descriptor
	experts []agent.Descriptor
}

// NewRegistry builds a registry from the static catalog, validating that ids
// are unique and that the three orchestration roles are present.
func NewRegistry() (*Registry, error) {
	return newRegistry(agent.Catalog())
}

func newRegistry(all []agent.Descriptor) (*Registry, error) {
	r := &Registry{
		all:  all,
		byID: make(map[string]agent.Descriptor, len(all)),
	}
	for _, d := range all {
		if d.ID == "" {
			return nil, fmt.Errorf("registry: descriptor %q has empty id: %w", d.Name, domain.ErrValidation)
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate agent id %q: %w", d.ID, domain.ErrValidation)
		}
		r.byID[d.ID] = d
		if d.IsExpert() {
			r.experts = append(r.experts, d)
		}
	}
	for _, id := range []string{agent.IDProblemStatement, agent.IDTurnManagement, agent.IDVotingCoordinator} {
		if _, ok := r.byID[id]; ok {
			continue
		}
		return nil, fmt.Errorf("registry: missing orchestration role %q: %w", id, domain.ErrValidation)
	}
	return r, nil
}

// All returns every descriptor in registry order.
func (r *Registry) All() []agent.Descriptor {
	return r.all
}

// Get returns the descriptor for id. An unknown id is a programming error in
// the phase tables and fails the session rather than being skipped.
func (r *Registry) Get(id string) (agent.Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return agent.Descriptor{}, fmt.Errorf("registry: unknown agent id %q: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

// Experts returns the domain experts in registry order. This is the fixed
// invocation order for the debate and voting phases.
func (r *Registry) Experts() []agent.Descriptor {
	return r.experts
}

// ExpertNames returns the display names of all domain experts.
func (r *Registry) ExpertNames() []string {
	names := make([]string, len(r.experts))
	for i, d := range r.experts {
		names[i] = d.Name
	}
	return names
}

// ResearchGroups returns the experts grouped by topical cluster in reporting
// order. Within a group the core analyst comes before its sub-experts,
// preserving registry order.
func (r *Registry) ResearchGroups() []ResearchGroup {
	groups := make([]ResearchGroup, 0, len(agent.ClusterOrder()))
	for _, cluster := range agent.ClusterOrder() {
		g := ResearchGroup{Label: agent.ClusterLabel(cluster)}
		for _, d := range r.experts {
			if d.Cluster == cluster {
				g.Experts = append(g.Experts, d)
			}
		}
		if len(g.Experts) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
