package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "agora"

// StartSessionSpan starts a span covering a full deliberation run.
func StartSessionSpan(ctx context.Context, sessionID, mode string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "deliberation",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("session.mode", mode),
		),
	)
}

// StartPhaseSpan starts a span for one deliberation phase.
func StartPhaseSpan(ctx context.Context, sessionID, phase string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "phase",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("phase.name", phase),
		),
	)
}

// StartInvocationSpan starts a span for a single agent invocation.
func StartInvocationSpan(ctx context.Context, agentID, phase string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "invocation",
		trace.WithAttributes(
			attribute.String("agent.id", agentID),
			attribute.String("phase.name", phase),
		),
	)
}
