package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "agora"

// Metrics holds all deliberation metric instruments.
type Metrics struct {
	SessionsStarted   metric.Int64Counter
	SessionsCompleted metric.Int64Counter
	SessionsFailed    metric.Int64Counter
	Invocations       metric.Int64Counter
	InvocationErrors  metric.Int64Counter
	SessionDuration   metric.Float64Histogram
	DebateRounds      metric.Int64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.SessionsStarted, err = meter.Int64Counter("agora.sessions.started",
		metric.WithDescription("Number of deliberation sessions started"))
	if err != nil {
		return nil, err
	}

	m.SessionsCompleted, err = meter.Int64Counter("agora.sessions.completed",
		metric.WithDescription("Number of deliberation sessions completed"))
	if err != nil {
		return nil, err
	}

	m.SessionsFailed, err = meter.Int64Counter("agora.sessions.failed",
		metric.WithDescription("Number of deliberation sessions failed"))
	if err != nil {
		return nil, err
	}

	m.Invocations, err = meter.Int64Counter("agora.invocations",
		metric.WithDescription("Number of agent invocations"))
	if err != nil {
		return nil, err
	}

	m.InvocationErrors, err = meter.Int64Counter("agora.invocation.errors",
		metric.WithDescription("Number of failed agent invocations"))
	if err != nil {
		return nil, err
	}

	m.SessionDuration, err = meter.Float64Histogram("agora.session.duration_seconds",
		metric.WithDescription("Session duration in seconds"))
	if err != nil {
		return nil, err
	}

	m.DebateRounds, err = meter.Int64Histogram("agora.debate.rounds",
		metric.WithDescription("Debate rounds executed per session"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
