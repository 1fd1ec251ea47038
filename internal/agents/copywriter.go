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

// Copywriter generates ad copy, slogans and social media captions.
type Copywriter struct {
	shared
}

// NewCopywriter constructs a copywriter bound to the shared store and an
// injected completion handle.
func NewCopywriter(store *contextstore.Store, completer llm.Completer, b *bus.Bus, logger *zap.Logger) *Copywriter {
	return &Copywriter{shared: newShared(store, completer, b, logger)}
}

// CopyOptions carries copywriter-specific task options.
type CopyOptions struct {
	// BrandInfo is optional additional brand context embedded in the prompt.
	BrandInfo string
}

// ExecuteTask generates marketing copy for the task, appends the record to
// the store and returns it. The returned error only reflects persistence
// failure; completion problems degrade to a fallback record.
func (a *Copywriter) ExecuteTask(ctx context.Context, task string, opts CopyOptions) (contextstore.CopyOutput, error) {
	brief := a.store.Brief()
	summary := a.store.ContextSummary()

	response := llm.CompleteText(ctx, a.completer, llm.Request{
		System:      Persona("copywriter"),
		User:        copywriterPrompt(brief, summary, task, opts.BrandInfo),
		Temperature: copywriterTemperature,
	})

	var content contextstore.CopyContent
	if err := llm.UnmarshalResponse(response, &content); err != nil {
		a.logger.Warn("copywriter response unparseable, using fallback", zap.Error(err))
		content = fallbackCopyContent(response)
	} else {
		content.RawResponse = ""
	}

	output := contextstore.CopyOutput{
		Task:    task,
		Content: content,
		Agent:   contextstore.AgentCopywriter,
	}
	if err := a.store.AddCopywriterOutput(output); err != nil {
		return output, fmt.Errorf("persist copywriter output: %w", err)
	}
	a.notifyManager(contextstore.AgentCopywriter, task)
	return output, nil
}

func fallbackCopyContent(raw string) contextstore.CopyContent {
	return contextstore.CopyContent{
		Slogan:            "Generated from response",
		InstagramCaptions: []contextstore.Caption{},
		FacebookAds:       []contextstore.FacebookAd{},
		RawResponse:       raw,
	}
}

func copywriterPrompt(brief, summary, task, brandInfo string) string {
	var b strings.Builder
	b.WriteString("Based on the following campaign brief and context, create marketing copy:\n\n")
	fmt.Fprintf(&b, "Campaign Brief: %s\n\n", brief)
	fmt.Fprintf(&b, "Context from team: %s\n\n", summary)
	fmt.Fprintf(&b, "Task: %s\n", task)
	if brandInfo != "" {
		fmt.Fprintf(&b, "Additional brand information: %s\n", brandInfo)
	}
	b.WriteString(`
Please generate:
1. A core brand slogan/tagline (1-2 lines)
2. 3 Instagram captions (different tones: inspirational, informative, call-to-action)
3. 2 Facebook ad copy variations (short and long form)
4. 1 Twitter/X post
5. 1 LinkedIn post

Format your response as JSON with this structure:
{
    "slogan": "your slogan here",
    "instagram_captions": [
        {"tone": "inspirational", "caption": "..."},
        {"tone": "informative", "caption": "..."},
        {"tone": "call-to-action", "caption": "..."}
    ],
    "facebook_ads": [
        {"type": "short", "copy": "..."},
        {"type": "long", "copy": "..."}
    ],
    "twitter_post": "...",
    "linkedin_post": "..."
}`)
	return b.String()
}
