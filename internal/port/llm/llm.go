// Package llm defines the text-generation boundary. The orchestrator treats
// this capability as opaque: given a persona and a prompt, produce text.
package llm

import "context"

// Request carries the persona framing and the task prompt for one invocation.
type Request struct {
	Role      string
	Goal      string
	Backstory string
	Prompt    string
}

// Generator produces text for a persona-framed prompt. Implementations must
// honor ctx cancellation; latency is the dominant source of session
// wall-clock time.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
