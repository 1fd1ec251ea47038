package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"automark/internal/agents"
	"automark/internal/contextstore"
	"automark/internal/llm"
)

// RoundOutputs bundles the current round's specialist outputs for evaluation
// and integration. Nil entries mean the specialist has not produced output.
type RoundOutputs struct {
	Copy     *contextstore.CopyOutput
	Analysis *contextstore.AnalystOutput
	Outreach *contextstore.OutreachOutput
}

// Evaluate scores the round's outputs against the brief and plan. The
// fallback verdict is deliberately optimistic (ready_for_final true, no
// revision requests): when the model is unusable, terminating beats looping.
func (m *Manager) Evaluate(ctx context.Context, brief string, plan *contextstore.Plan, outputs RoundOutputs) Evaluation {
	response := llm.CompleteText(ctx, m.completer, llm.Request{
		System:      agents.Persona("reviewer"),
		User:        evaluatePrompt(brief, plan, outputs),
		Temperature: evaluateTemperature,
	})

	// A response that omits ready_for_final counts as ready.
	eval := Evaluation{ReadyForFinal: true}
	if err := llm.UnmarshalResponse(response, &eval); err != nil {
		m.logger.Warn("evaluation response unparseable, using optimistic fallback", zap.Error(err))
		return fallbackEvaluation(response)
	}
	eval.RawResponse = ""
	return eval
}

func fallbackEvaluation(raw string) Evaluation {
	return Evaluation{
		OverallScore:       7,
		Strengths:          []string{"Outputs generated"},
		ImprovementsNeeded: []string{},
		RevisionRequests:   []RevisionRequest{},
		ReadyForFinal:      true,
		RawResponse:        raw,
	}
}

func evaluatePrompt(brief string, plan *contextstore.Plan, outputs RoundOutputs) string {
	var b strings.Builder
	b.WriteString("Review the campaign outputs against the brief and plan:\n\n")
	fmt.Fprintf(&b, "Brief: %s\n\n", brief)
	fmt.Fprintf(&b, "Plan: %s\n\n", jsonOrNA(plan))
	fmt.Fprintf(&b, "Copywriter Output: %s\n\n", jsonOrNA(outputs.Copy))
	fmt.Fprintf(&b, "Data Analyst Output: %s\n\n", jsonOrNA(outputs.Analysis))
	fmt.Fprintf(&b, "Outreach Output: %s\n\n", jsonOrNA(outputs.Outreach))
	b.WriteString(`Evaluate each output and determine:
1. Overall quality score (1-10)
2. What's working well
3. What needs improvement
4. Specific revision requests (if any)

Format as JSON:
{
    "overall_score": 8,
    "strengths": ["..."],
    "improvements_needed": ["..."],
    "revision_requests": [
        {
            "agent": "copywriter/data_analyst/outreach",
            "issue": "...",
            "request": "..."
        }
    ],
    "ready_for_final": true/false
}`)
	return b.String()
}

// jsonOrNA renders v as indented JSON, or "Not available" for nil values.
func jsonOrNA(v any) string {
	switch t := v.(type) {
	case *contextstore.Plan:
		if t == nil {
			return "Not available"
		}
	case *contextstore.CopyOutput:
		if t == nil {
			return "Not available"
		}
	case *contextstore.AnalystOutput:
		if t == nil {
			return "Not available"
		}
	case *contextstore.OutreachOutput:
		if t == nil {
			return "Not available"
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "Not available"
	}
	return string(data)
}
