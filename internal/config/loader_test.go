package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agora.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.Server.Port)
	}
	if cfg.Deliberation.MaxDebateRounds != 3 || cfg.Deliberation.ConsensusThreshold != 70 {
		t.Fatalf("unexpected deliberation defaults %+v", cfg.Deliberation)
	}
	if cfg.Deliberation.PhaseWorkers != 1 {
		t.Fatalf("phase workers must default to sequential, got %d", cfg.Deliberation.PhaseWorkers)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
deliberation:
  mode: quick
  max_debate_rounds: 5
search:
  cache_ttl: 1h
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port not overridden: %q", cfg.Server.Port)
	}
	if cfg.Deliberation.Mode != "quick" || cfg.Deliberation.MaxDebateRounds != 5 {
		t.Fatalf("deliberation not overridden: %+v", cfg.Deliberation)
	}
	if cfg.Search.CacheTTL != time.Hour {
		t.Fatalf("cache ttl not overridden: %v", cfg.Search.CacheTTL)
	}
	// Untouched sections keep their defaults.
	if cfg.LLM.Model != "asi1-mini" {
		t.Fatalf("default model lost: %q", cfg.LLM.Model)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
`)
	t.Setenv("AGORA_PORT", "7070")
	t.Setenv("AGORA_PHASE_WORKERS", "4")
	t.Setenv("AGORA_CONSENSUS_THRESHOLD", "85.5")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("env must win over yaml, got %q", cfg.Server.Port)
	}
	if cfg.Deliberation.PhaseWorkers != 4 {
		t.Fatalf("phase workers not set from env: %d", cfg.Deliberation.PhaseWorkers)
	}
	if cfg.Deliberation.ConsensusThreshold != 85.5 {
		t.Fatalf("threshold not set from env: %v", cfg.Deliberation.ConsensusThreshold)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeConfigFile(t, `
deliberation:
  max_debate_rounds: 0
`)
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected validation error for zero debate rounds")
	}

	path = writeConfigFile(t, `
deliberation:
  consensus_threshold: 101
`)
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected validation error for out-of-range threshold")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a map")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}
