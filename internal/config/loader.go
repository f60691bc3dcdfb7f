package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "agora.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "AGORA_PORT")
	setString(&cfg.Server.CORSOrigin, "AGORA_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "AGORA_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "AGORA_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "AGORA_PG_MAX_CONN_LIFETIME")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.LLM.URL, "AGORA_LLM_URL")
	setString(&cfg.LLM.APIKey, "AGORA_LLM_API_KEY")
	setString(&cfg.LLM.Model, "AGORA_LLM_MODEL")
	setFloat64(&cfg.LLM.Temperature, "AGORA_LLM_TEMPERATURE")
	setDuration(&cfg.LLM.Timeout, "AGORA_LLM_TIMEOUT")
	setString(&cfg.Search.APIKey, "AGORA_SEARCH_API_KEY")
	setInt(&cfg.Search.MaxResults, "AGORA_SEARCH_MAX_RESULTS")
	setDuration(&cfg.Search.CacheTTL, "AGORA_SEARCH_CACHE_TTL")
	setInt64(&cfg.Cache.MaxSizeMB, "AGORA_CACHE_SIZE_MB")
	setString(&cfg.Logging.Level, "AGORA_LOG_LEVEL")
	setString(&cfg.Logging.Service, "AGORA_LOG_SERVICE")
	setInt(&cfg.Breaker.MaxFailures, "AGORA_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "AGORA_BREAKER_TIMEOUT")
	setString(&cfg.Telemetry.OTLPEndpoint, "AGORA_OTLP_ENDPOINT")
	setString(&cfg.Deliberation.Mode, "AGORA_MODE")
	setInt(&cfg.Deliberation.MaxDebateRounds, "AGORA_MAX_DEBATE_ROUNDS")
	setFloat64(&cfg.Deliberation.ConsensusThreshold, "AGORA_CONSENSUS_THRESHOLD")
	setInt(&cfg.Deliberation.ContextWindow, "AGORA_CONTEXT_WINDOW")
	setInt(&cfg.Deliberation.PhaseWorkers, "AGORA_PHASE_WORKERS")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.LLM.URL == "" {
		return errors.New("llm.url is required")
	}
	if cfg.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if cfg.Deliberation.MaxDebateRounds < 1 {
		return errors.New("deliberation.max_debate_rounds must be >= 1")
	}
	if cfg.Deliberation.ConsensusThreshold < 0 || cfg.Deliberation.ConsensusThreshold > 100 {
		return errors.New("deliberation.consensus_threshold must be in [0, 100]")
	}
	if cfg.Deliberation.PhaseWorkers < 1 {
		return errors.New("deliberation.phase_workers must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
