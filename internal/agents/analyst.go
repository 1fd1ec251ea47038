package agents

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"automark/internal/bus"
	"automark/internal/contextstore"
	"automark/internal/dataset"
	"automark/internal/llm"
)

// Analyst suggests audience segments and channels, optionally grounded on a
// marketing dataset.
type Analyst struct {
	shared
	data *dataset.Dataset
}

// NewAnalyst constructs a data analyst. data may be nil; the prompt then notes
// that no dataset is available.
func NewAnalyst(store *contextstore.Store, completer llm.Completer, data *dataset.Dataset, b *bus.Bus, logger *zap.Logger) *Analyst {
	return &Analyst{shared: newShared(store, completer, b, logger), data: data}
}

// ExecuteTask analyzes data for the task, appends the record to the store and
// returns it.
func (a *Analyst) ExecuteTask(ctx context.Context, task string) (contextstore.AnalystOutput, error) {
	brief := a.store.Brief()
	summary := a.store.ContextSummary()

	response := llm.CompleteText(ctx, a.completer, llm.Request{
		System:      Persona("data_analyst"),
		User:        analystPrompt(brief, summary, a.data.Summary(), task),
		Temperature: analystTemperature,
	})

	var analysis contextstore.Analysis
	if err := llm.UnmarshalResponse(response, &analysis); err != nil {
		a.logger.Warn("analyst response unparseable, using fallback", zap.Error(err))
		analysis = fallbackAnalysis(response)
	} else {
		analysis.RawResponse = ""
	}

	output := contextstore.AnalystOutput{
		Task:     task,
		Analysis: analysis,
		Agent:    contextstore.AgentAnalyst,
	}
	if err := a.store.AddDataAnalystOutput(output); err != nil {
		return output, fmt.Errorf("persist analyst output: %w", err)
	}
	a.notifyManager(contextstore.AgentAnalyst, task)
	return output, nil
}

func fallbackAnalysis(raw string) contextstore.Analysis {
	return contextstore.Analysis{
		TargetAudiences:       []contextstore.AudienceSegment{},
		RecommendedChannels:   []contextstore.ChannelRecommendation{},
		TimingRecommendations: "Based on general best practices",
		SuggestedKPIs:         []string{"reach", "engagement", "conversions"},
		RawResponse:           raw,
	}
}

func analystPrompt(brief, summary, dataSummary, task string) string {
	var b strings.Builder
	b.WriteString("Based on the following campaign brief, context, and dataset, provide data-driven recommendations:\n\n")
	fmt.Fprintf(&b, "Campaign Brief: %s\n\n", brief)
	fmt.Fprintf(&b, "Context from team: %s\n\n", summary)
	fmt.Fprintf(&b, "Dataset Information:\n%s\n\n", dataSummary)
	fmt.Fprintf(&b, "Task: %s\n", task)
	b.WriteString(`
Please provide:
1. Target audience segments (with demographics, psychographics, and data-backed reasoning)
2. Recommended marketing channels (prioritized with rationale)
3. Optimal timing/frequency suggestions
4. Key performance indicators (KPIs) to track

Format your response as JSON with this structure:
{
    "target_audiences": [
        {
            "segment_name": "...",
            "demographics": "...",
            "psychographics": "...",
            "size_estimate": "...",
            "data_evidence": "..."
        }
    ],
    "recommended_channels": [
        {
            "channel": "...",
            "priority": "high/medium/low",
            "rationale": "...",
            "expected_reach": "..."
        }
    ],
    "timing_recommendations": "...",
    "suggested_kpis": ["...", "..."]
}`)
	return b.String()
}
