// Package contextstore holds the durable record of one campaign's accumulated
// state. It is the sole source of cross-agent information: every specialist
// appends its output here and reads the others' work back through the summary.
package contextstore

import "encoding/json"

// Agent tags identify which specialist produced a record.
const (
	AgentCopywriter = "copywriter"
	AgentAnalyst    = "data_analyst"
	AgentOutreach   = "outreach"
	AgentManager    = "manager"
)

// Context is the single persisted aggregate for one campaign run.
// Output lists are append-only: every invocation appends a new entry, and
// consumers wanting "latest" take the last element.
type Context struct {
	CampaignID         string           `json:"campaign_id"`
	Brief              string           `json:"brief"`
	CreatedAt          string           `json:"created_at"`
	UpdatedAt          string           `json:"updated_at"`
	ManagerPlan        *Plan            `json:"manager_plan"`
	CopywriterOutputs  []CopyOutput     `json:"copywriter_outputs"`
	DataAnalystOutputs []AnalystOutput  `json:"data_analyst_outputs"`
	OutreachOutputs    []OutreachOutput `json:"outreach_outputs"`
	Revisions          []Revision       `json:"revisions"`
	FinalOutput        *FinalReport     `json:"final_output"`
}

// Plan is the manager's task assignment, regenerated from scratch each
// revision round (replaced, never accumulated).
type Plan struct {
	Strategy         string   `json:"strategy"`
	CopywriterTasks  []string `json:"copywriter_tasks"`
	DataAnalystTasks []string `json:"data_analyst_tasks"`
	OutreachTasks    []string `json:"outreach_tasks"`
	Deliverables     []string `json:"deliverables"`
	// RawResponse carries the unparseable model text when the plan is the
	// hardcoded fallback. Empty on a parsed plan.
	RawResponse string `json:"raw_response,omitempty"`
}

// IsFallback reports whether the plan is the fallback variant.
func (p Plan) IsFallback() bool { return p.RawResponse != "" }

// CopyOutput is one copywriter invocation's record.
type CopyOutput struct {
	Task      string      `json:"task"`
	Content   CopyContent `json:"content"`
	Agent     string      `json:"agent"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// CopyContent is the copywriter's structured output.
type CopyContent struct {
	Slogan            string       `json:"slogan"`
	InstagramCaptions []Caption    `json:"instagram_captions"`
	FacebookAds       []FacebookAd `json:"facebook_ads"`
	TwitterPost       string       `json:"twitter_post"`
	LinkedInPost      string       `json:"linkedin_post"`
	RawResponse       string       `json:"raw_response,omitempty"`
}

func (c CopyContent) IsFallback() bool { return c.RawResponse != "" }

// Caption is one social caption with its intended tone.
type Caption struct {
	Tone    string `json:"tone"`
	Caption string `json:"caption"`
}

// FacebookAd is one ad copy variation.
type FacebookAd struct {
	Type string `json:"type"`
	Copy string `json:"copy"`
}

// AnalystOutput is one data-analyst invocation's record.
type AnalystOutput struct {
	Task      string   `json:"task"`
	Analysis  Analysis `json:"analysis"`
	Agent     string   `json:"agent"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// Analysis is the data analyst's structured output.
type Analysis struct {
	TargetAudiences       []AudienceSegment       `json:"target_audiences"`
	RecommendedChannels   []ChannelRecommendation `json:"recommended_channels"`
	TimingRecommendations string                  `json:"timing_recommendations"`
	SuggestedKPIs         []string                `json:"suggested_kpis"`
	RawResponse           string                  `json:"raw_response,omitempty"`
}

func (a Analysis) IsFallback() bool { return a.RawResponse != "" }

// AudienceSegment describes one target audience.
type AudienceSegment struct {
	SegmentName    string `json:"segment_name"`
	Demographics   string `json:"demographics"`
	Psychographics string `json:"psychographics"`
	SizeEstimate   string `json:"size_estimate"`
	DataEvidence   string `json:"data_evidence"`
}

// ChannelRecommendation describes one prioritized marketing channel.
type ChannelRecommendation struct {
	Channel       string `json:"channel"`
	Priority      string `json:"priority"`
	Rationale     string `json:"rationale"`
	ExpectedReach string `json:"expected_reach"`
}

// OutreachOutput is one outreach invocation's record.
type OutreachOutput struct {
	Task      string          `json:"task"`
	Content   OutreachContent `json:"content"`
	Agent     string          `json:"agent"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// OutreachContent is the outreach agent's structured output.
type OutreachContent struct {
	ColdOutreachEmail EmailTemplate `json:"cold_outreach_email"`
	InfluencerPitch   Pitch         `json:"influencer_pitch"`
	MediaPitch        MediaPitch    `json:"media_pitch"`
	FollowUpTemplate  FollowUpEmail `json:"follow_up_template"`
	RawResponse       string        `json:"raw_response,omitempty"`
}

func (o OutreachContent) IsFallback() bool { return o.RawResponse != "" }

// EmailTemplate is a cold outreach email draft.
type EmailTemplate struct {
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	CallToAction string `json:"call_to_action"`
}

// Pitch is an influencer collaboration pitch.
type Pitch struct {
	Subject          string `json:"subject"`
	Body             string `json:"body"`
	ValueProposition string `json:"value_proposition"`
}

// MediaPitch is a press pitch with a news angle.
type MediaPitch struct {
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	NewsAngle string `json:"news_angle"`
}

// FollowUpEmail is a follow-up template for non-responses.
type FollowUpEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Revision records one revision request raised by the evaluator.
type Revision struct {
	Agent         string          `json:"agent"`
	Feedback      string          `json:"feedback"`
	RevisedOutput json.RawMessage `json:"revised_output"`
	Timestamp     string          `json:"timestamp"`
}

// FinalReport is the integrator's terminal artifact, the contract surfaced to
// any presentation layer or file export.
type FinalReport struct {
	CampaignBrief         string            `json:"campaign_brief"`
	Strategy              string            `json:"strategy"`
	TargetAudience        string            `json:"target_audience"`
	CoreMessage           string            `json:"core_message"`
	RecommendedChannels   []string          `json:"recommended_channels"`
	ContentExamples       ContentExamples   `json:"content_examples"`
	OutreachTemplates     OutreachTemplates `json:"outreach_templates"`
	KPIs                  []string          `json:"kpis"`
	TimingRecommendations string            `json:"timing_recommendations"`
}

// ContentExamples groups the copywriter's verbatim content blocks.
type ContentExamples struct {
	Slogan            string       `json:"slogan"`
	InstagramCaptions []Caption    `json:"instagram_captions"`
	FacebookAds       []FacebookAd `json:"facebook_ads"`
	TwitterPost       string       `json:"twitter_post"`
	LinkedInPost      string       `json:"linkedin_post"`
}

// OutreachTemplates groups the outreach agent's three templates.
type OutreachTemplates struct {
	ColdEmail       EmailTemplate `json:"cold_email"`
	InfluencerPitch Pitch         `json:"influencer_pitch"`
	MediaPitch      MediaPitch    `json:"media_pitch"`
}
