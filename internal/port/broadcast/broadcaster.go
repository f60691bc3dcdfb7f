// Package broadcast defines the port for streaming progress events to
// subscribed clients.
package broadcast

import "context"

// Broadcaster delivers a typed event to every client subscribed to the
// session. Delivery is fire-and-forget: order of emission is preserved per
// session but there is no acknowledgment or replay.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, sessionID, eventType string, payload any)
}
