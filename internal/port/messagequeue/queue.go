// Package messagequeue defines the message queue port (interface).
package messagequeue

import "context"

// Queue is the port interface for publishing session events to off-process
// consumers (dashboards, archivers). Publishing is best-effort; a failed
// publish is logged, never surfaced to the session.
type Queue interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Close shuts down the queue connection.
	Close() error
}

// SubjectEvents is the subject prefix for deliberation progress events.
// The session id is appended as the final token: deliberation.events.{id}.
const SubjectEvents = "deliberation.events"
