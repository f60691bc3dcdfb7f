// Package agent defines the expert persona descriptors that make up the
// deliberation panel.
package agent

// Category groups descriptors by their function in the deliberation.
type Category string

const (
	// CategoryOrchestration marks the three roles that run the process
	// itself (problem framing, turn management, vote coordination).
	CategoryOrchestration Category = "orchestration"
	// CategoryCore marks the six top-level domain analysts.
	CategoryCore Category = "core"
	// CategorySubExpert marks the specialized mixture-of-experts personas.
	CategorySubExpert Category = "sub_expert"
)

// Cluster is the topical grouping used for research task specialization
// and progress reporting.
type Cluster string

const (
	ClusterEconomic   Cluster = "economic"
	ClusterSocial     Cluster = "social"
	ClusterGeospatial Cluster = "geospatial"
	ClusterIncome     Cluster = "income"
	ClusterResource   Cluster = "resource"
	ClusterFeedback   Cluster = "feedback"
	ClusterLegal      Cluster = "legal"
)

// Capability names an external ability a persona may use during research.
type Capability string

// CapabilityResearch grants access to the web-search boundary. Personas
// without it answer from general knowledge only.
const CapabilityResearch Capability = "research"

// Descriptor is the immutable configuration of one persona. Descriptors are
// created once at startup and shared read-only across sessions.
type Descriptor struct {
	ID           string
	Name         string
	Role         string
	Goal         string
	Backstory    string
	Category     Category
	Cluster      Cluster // empty for orchestration roles
	Capabilities []Capability
}

// HasCapability reports whether the descriptor carries the given capability.
func (d Descriptor) HasCapability(c Capability) bool {
	for _, have := range d.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// IsExpert reports whether the descriptor is a domain expert (anything other
// than the three orchestration roles).
func (d Descriptor) IsExpert() bool {
	return d.Category != CategoryOrchestration
}
