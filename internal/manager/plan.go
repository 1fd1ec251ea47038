package manager

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"automark/internal/agents"
	"automark/internal/contextstore"
	"automark/internal/llm"
)

// CreatePlan breaks the brief into a structured plan with subtasks for each
// specialist. The plan is regenerated from scratch each revision round. When
// the model response is unusable the hardcoded generic plan is returned so
// the workflow can always proceed.
func (m *Manager) CreatePlan(ctx context.Context, brief string) contextstore.Plan {
	response := llm.CompleteText(ctx, m.completer, llm.Request{
		System:      agents.Persona("manager"),
		User:        planPrompt(brief),
		Temperature: planTemperature,
	})

	var plan contextstore.Plan
	if err := llm.UnmarshalResponse(response, &plan); err != nil {
		m.logger.Warn("plan response unparseable, using fallback plan", zap.Error(err))
		return fallbackPlan(response)
	}
	plan.RawResponse = ""
	return plan
}

func fallbackPlan(raw string) contextstore.Plan {
	return contextstore.Plan{
		Strategy: "Execute a multi-channel marketing campaign",
		CopywriterTasks: []string{
			"Create brand slogan and tagline",
			"Generate social media captions for Instagram, Facebook, Twitter, LinkedIn",
		},
		DataAnalystTasks: []string{
			"Identify target audience segments",
			"Recommend best marketing channels",
		},
		OutreachTasks: []string{
			"Draft influencer collaboration pitches",
			"Create outreach email templates",
		},
		Deliverables: []string{
			"Complete content library",
			"Audience targeting strategy",
			"Outreach templates",
		},
		RawResponse: raw,
	}
}

func planPrompt(brief string) string {
	return fmt.Sprintf(`Analyze this campaign brief and create a detailed execution plan:

Brief: %s

Create a plan that includes:
1. Overall campaign strategy (2-3 sentences)
2. Specific tasks for the Copywriter agent
3. Specific tasks for the Data Analyst agent
4. Specific tasks for the Outreach agent
5. Expected deliverables

Format your response as JSON:
{
    "strategy": "...",
    "copywriter_tasks": ["task 1", "task 2"],
    "data_analyst_tasks": ["task 1", "task 2"],
    "outreach_tasks": ["task 1", "task 2"],
    "deliverables": ["deliverable 1", "deliverable 2"]
}`, brief)
}
