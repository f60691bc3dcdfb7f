// Package config provides hierarchical configuration loading for Agora.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the Agora deliberation service.
// Everything is injected explicitly at construction time; no package reads
// the environment after startup.
type Config struct {
	Server       Server       `yaml:"server"`
	Postgres     Postgres     `yaml:"postgres"`
	NATS         NATS         `yaml:"nats"`
	LLM          LLM          `yaml:"llm"`
	Search       Search       `yaml:"search"`
	Cache        Cache        `yaml:"cache"`
	Logging      Logging      `yaml:"logging"`
	Breaker      Breaker      `yaml:"breaker"`
	Telemetry    Telemetry    `yaml:"telemetry"`
	Deliberation Deliberation `yaml:"deliberation"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Postgres holds the optional durable session store configuration.
// An empty DSN selects the in-memory store.
type Postgres struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
}

// NATS holds the optional JetStream event fan-out configuration.
// An empty URL disables fan-out.
type NATS struct {
	URL string `yaml:"url"`
}

// LLM holds the text-generation boundary configuration.
type LLM struct {
	URL         string        `yaml:"url"`
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"` // per-invocation deadline
}

// Search holds the web-research boundary configuration. A missing API key
// degrades research to general knowledge; it is never fatal.
type Search struct {
	APIKey     string        `yaml:"api_key"`
	MaxResults int           `yaml:"max_results"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

// Cache holds the in-process result cache configuration.
type Cache struct {
	MaxSizeMB int64 `yaml:"max_size_mb"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Breaker holds circuit breaker configuration for outbound HTTP calls.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Telemetry holds OpenTelemetry export configuration. An empty endpoint
// disables export.
type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Deliberation holds orchestrator tuning.
type Deliberation struct {
	Mode               string  `yaml:"mode"`                // full | quick | research_only | debate_only
	MaxDebateRounds    int     `yaml:"max_debate_rounds"`   // round cap (default: 3)
	ConsensusThreshold float64 `yaml:"consensus_threshold"` // early-exit score on 0-100 (default: 70)
	ContextWindow      int     `yaml:"context_window"`      // prior arguments embedded per debate prompt (default: 5)
	PhaseWorkers       int     `yaml:"phase_workers"`       // concurrent invocations within a phase (default: 1, the sequential reference behavior)
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:3000",
		},
		Postgres: Postgres{
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
		},
		LLM: LLM{
			URL:         "http://localhost:4000/v1",
			Model:       "asi1-mini",
			Temperature: 0.3,
			Timeout:     2 * time.Minute,
		},
		Search: Search{
			MaxResults: 5,
			CacheTTL:   15 * time.Minute,
		},
		Cache: Cache{
			MaxSizeMB: 64,
		},
		Logging: Logging{
			Level:   "info",
			Service: "agora",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Deliberation: Deliberation{
			Mode:               "full",
			MaxDebateRounds:    3,
			ConsensusThreshold: 70,
			ContextWindow:      5,
			PhaseWorkers:       1,
		},
	}
}
