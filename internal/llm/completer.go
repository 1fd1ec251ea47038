// Package llm wraps the text-completion service behind a small injectable
// interface. Responses are best-effort text; callers must never assume valid
// JSON comes back.
package llm

import (
	"context"
)

// Request is a single completion request: a system persona, a user prompt and
// a sampling temperature (creative tasks higher, analytical lower).
type Request struct {
	System      string
	User        string
	Temperature float64
}

// Completer produces a free-form text completion for a request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleteText calls c and renders any transport or service error as an
// "Error: ..." string instead of propagating it. Downstream parsing treats
// that text like any other unparseable response, so a broken dependency
// degrades the step rather than aborting the workflow.
func CompleteText(ctx context.Context, c Completer, req Request) string {
	text, err := c.Complete(ctx, req)
	if err != nil {
		return "Error: " + err.Error()
	}
	return text
}
