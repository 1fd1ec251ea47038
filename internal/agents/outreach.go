package agents

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"automark/internal/bus"
	"automark/internal/contextstore"
	"automark/internal/llm"
)

// Outreach drafts cold emails, influencer pitches and media pitches.
type Outreach struct {
	shared
}

// NewOutreach constructs an outreach agent.
func NewOutreach(store *contextstore.Store, completer llm.Completer, b *bus.Bus, logger *zap.Logger) *Outreach {
	return &Outreach{shared: newShared(store, completer, b, logger)}
}

// OutreachOptions carries outreach-specific task options.
type OutreachOptions struct {
	// RecipientType narrows the outreach (e.g. "influencer", "partner", "media").
	RecipientType string
}

// ExecuteTask generates outreach content for the task, appends the record to
// the store and returns it. The latest copywriter slogan, when present, is
// fed into the prompt so messaging stays consistent; that read goes through
// the store, never through another agent's memory.
func (a *Outreach) ExecuteTask(ctx context.Context, task string, opts OutreachOptions) (contextstore.OutreachOutput, error) {
	brief := a.store.Brief()
	summary := a.store.ContextSummary()

	brandMessage := ""
	snapshot := a.store.Snapshot()
	if n := len(snapshot.CopywriterOutputs); n > 0 {
		brandMessage = snapshot.CopywriterOutputs[n-1].Content.Slogan
	}

	response := llm.CompleteText(ctx, a.completer, llm.Request{
		System:      Persona("outreach"),
		User:        outreachPrompt(brief, brandMessage, summary, task, opts.RecipientType),
		Temperature: outreachTemperature,
	})

	var content contextstore.OutreachContent
	if err := llm.UnmarshalResponse(response, &content); err != nil {
		a.logger.Warn("outreach response unparseable, using fallback", zap.Error(err))
		content = contextstore.OutreachContent{RawResponse: response}
	} else {
		content.RawResponse = ""
	}

	output := contextstore.OutreachOutput{
		Task:    task,
		Content: content,
		Agent:   contextstore.AgentOutreach,
	}
	if err := a.store.AddOutreachOutput(output); err != nil {
		return output, fmt.Errorf("persist outreach output: %w", err)
	}
	a.notifyManager(contextstore.AgentOutreach, task)
	return output, nil
}

func outreachPrompt(brief, brandMessage, summary, task, recipientType string) string {
	var b strings.Builder
	b.WriteString("Based on the following campaign brief and context, create outreach content:\n\n")
	fmt.Fprintf(&b, "Campaign Brief: %s\n\n", brief)
	fmt.Fprintf(&b, "Brand Message: %s\n\n", brandMessage)
	fmt.Fprintf(&b, "Context from team: %s\n\n", summary)
	fmt.Fprintf(&b, "Task: %s\n", task)
	if recipientType != "" {
		fmt.Fprintf(&b, "Recipient type: %s\n", recipientType)
	}
	b.WriteString(`
Please generate:
1. A cold outreach email (professional, concise, value-focused)
2. An influencer collaboration pitch (engaging, partnership-focused)
3. A media/press pitch (newsworthy angle)
4. A follow-up email template (for non-responses)

Format your response as JSON with this structure:
{
    "cold_outreach_email": {
        "subject": "...",
        "body": "...",
        "call_to_action": "..."
    },
    "influencer_pitch": {
        "subject": "...",
        "body": "...",
        "value_proposition": "..."
    },
    "media_pitch": {
        "subject": "...",
        "body": "...",
        "news_angle": "..."
    },
    "follow_up_template": {
        "subject": "...",
        "body": "..."
    }
}`)
	return b.String()
}
