package llm

import (
	"context"
	"strings"
)

// Mock is a deterministic, offline completer used for end-to-end testing of
// the workflow without a completion service. It inspects the prompt to decide
// which canned response applies.
type Mock struct {
	// Respond overrides the canned behavior when set.
	Respond func(req Request) (string, error)
}

func (m *Mock) Complete(_ context.Context, req Request) (string, error) {
	if m.Respond != nil {
		return m.Respond(req)
	}
	switch {
	case strings.Contains(req.User, "create a detailed execution plan"):
		return mockPlanResponse, nil
	case strings.Contains(req.User, "create marketing copy"):
		return mockCopyResponse, nil
	case strings.Contains(req.User, "data-driven recommendations"):
		return mockAnalysisResponse, nil
	case strings.Contains(req.User, "create outreach content"):
		return mockOutreachResponse, nil
	case strings.Contains(req.User, "Review the campaign outputs"):
		return mockEvaluationResponse, nil
	default:
		return `{}`, nil
	}
}

const mockPlanResponse = `{
  "strategy": "Run a focused multi-channel campaign emphasizing the product's core benefit.",
  "copywriter_tasks": ["Create brand slogan and tagline", "Write social media captions"],
  "data_analyst_tasks": ["Identify target audience segments", "Recommend best marketing channels"],
  "outreach_tasks": ["Draft influencer collaboration pitches", "Create outreach email templates"],
  "deliverables": ["Content library", "Audience targeting strategy", "Outreach templates"]
}`

const mockCopyResponse = `{
  "slogan": "Make Every Day Count",
  "instagram_captions": [
    {"tone": "inspirational", "caption": "Start strong. Stay strong."},
    {"tone": "informative", "caption": "Built for people who get things done."},
    {"tone": "call-to-action", "caption": "Try it today and see the difference."}
  ],
  "facebook_ads": [
    {"type": "short", "copy": "The smarter choice is here."},
    {"type": "long", "copy": "Discover why thousands have already switched. Quality you can trust, value you can see."}
  ],
  "twitter_post": "The wait is over. #launch",
  "linkedin_post": "We are excited to announce our latest launch, built with our customers in mind."
}`

const mockAnalysisResponse = `{
  "target_audiences": [
    {
      "segment_name": "Urban professionals 25-40",
      "demographics": "25-40, metro areas, mid-to-high income",
      "psychographics": "Value convenience and quality",
      "size_estimate": "2M",
      "data_evidence": "Highest engagement rates in historical campaigns"
    }
  ],
  "recommended_channels": [
    {"channel": "Instagram", "priority": "high", "rationale": "Strongest historical CTR", "expected_reach": "800k"},
    {"channel": "Email", "priority": "medium", "rationale": "Best conversion per dollar", "expected_reach": "150k"}
  ],
  "timing_recommendations": "Launch midweek, peak posting 6-8pm local time",
  "suggested_kpis": ["reach", "engagement", "conversions"]
}`

const mockOutreachResponse = `{
  "cold_outreach_email": {"subject": "A quick idea for your audience", "body": "Hi, I wanted to share something your readers may genuinely find useful.", "call_to_action": "Open to a quick call next week?"},
  "influencer_pitch": {"subject": "Partnership idea", "body": "We love your content and think our launch is a natural fit for your audience.", "value_proposition": "Early access plus revenue share"},
  "media_pitch": {"subject": "Story idea: a launch your readers will care about", "body": "We are launching a product that addresses a problem your coverage has highlighted.", "news_angle": "First in its category"},
  "follow_up_template": {"subject": "Following up", "body": "Just floating this back to the top of your inbox."}
}`

const mockEvaluationResponse = `{
  "overall_score": 8,
  "strengths": ["Consistent messaging across channels", "Clear audience definition"],
  "improvements_needed": [],
  "revision_requests": [],
  "ready_for_final": true
}`
