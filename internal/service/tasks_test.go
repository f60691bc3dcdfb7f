package service

import (
	"strings"
	"testing"

	"github.com/agora-ai/agora/internal/domain/agent"
)

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"economic":         "Economic",
		"economic_macro":   "Economic Macro",
		"healthcare_welfare": "Healthcare Welfare",
	}
	for in, want := range cases {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFocusAreaPerCluster(t *testing.T) {
	cases := map[agent.Cluster]string{
		agent.ClusterEconomic:   "Economic Impact and Fiscal Analysis",
		agent.ClusterSocial:     "Social Welfare and Community Impact",
		agent.ClusterGeospatial: "Geospatial and Demographic Analysis",
		agent.ClusterIncome:     "Income Distribution and Inequality",
		agent.ClusterResource:   "Resource Management and Allocation",
		agent.ClusterFeedback:   "Policy Adaptation and Monitoring",
		agent.ClusterLegal:      "Legal Compliance and Regulatory Framework",
	}
	for c, want := range cases {
		if got := focusArea(c); got != want {
			t.Errorf("focusArea(%s) = %q, want %q", c, got, want)
		}
	}
	if got := focusArea(agent.Cluster("")); got != "General Policy Analysis" {
		t.Errorf("unexpected default focus area %q", got)
	}
}

func TestPromptsAreDeterministic(t *testing.T) {
	a := researchPrompt("carbon tax", "Economic Impact and Fiscal Analysis", "1. Finding")
	b := researchPrompt("carbon tax", "Economic Impact and Fiscal Analysis", "1. Finding")
	if a != b {
		t.Fatal("same inputs must produce the same prompt")
	}
}

func TestResearchPromptEvidenceSections(t *testing.T) {
	with := researchPrompt("carbon tax", "Legal Compliance and Regulatory Framework", "1. Court ruling")
	if !strings.Contains(with, "WEB SEARCH FINDINGS") || !strings.Contains(with, "1. Court ruling") {
		t.Fatal("evidence block missing from prompt")
	}

	without := researchPrompt("carbon tax", "Legal Compliance and Regulatory Framework", "")
	if !strings.Contains(without, "No web search results are available") {
		t.Fatal("general-knowledge fallback missing from prompt")
	}
}

func TestDebatePromptEmbedsRoundAndContext(t *testing.T) {
	p := debatePrompt("congestion pricing", 2, "**Economic (Round 1):**\nprior argument...")
	if !strings.Contains(p, "Round 2 Debate on: congestion pricing") {
		t.Fatalf("round header missing: %q", p)
	}
	if !strings.Contains(p, "prior argument") {
		t.Fatal("prior arguments missing from prompt")
	}
}

func TestEmptyTopicStillProducesPrompt(t *testing.T) {
	p := problemStatementPrompt("", "")
	if p == "" {
		t.Fatal("empty topic must still yield instruction text")
	}
	if !strings.Contains(p, "YOUR TASK") {
		t.Fatal("task body missing")
	}
}

func TestVotesSummaryOrdersAndFormats(t *testing.T) {
	votes := map[string]string{
		"social":   "Decision: REJECT",
		"economic": "Decision: APPROVE",
	}
	got := votesSummary([]string{"economic", "social"}, votes)

	econ := strings.Index(got, "Economic:")
	soc := strings.Index(got, "Social:")
	if econ == -1 || soc == -1 {
		t.Fatalf("missing vote entries: %q", got)
	}
	if econ > soc {
		t.Fatal("votes not in expert order")
	}
}

func TestVotesSummaryEmpty(t *testing.T) {
	if got := votesSummary(nil, nil); got != "No votes were cast." {
		t.Fatalf("unexpected empty summary %q", got)
	}
}
