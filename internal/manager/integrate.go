package manager

import (
	"automark/internal/contextstore"
)

// DefaultAudience is used when the analyst produced no audience segments.
const DefaultAudience = "General audience"

// Integrate merges the plan and the three specialist outputs into the final
// campaign report. It is pure and total: every field has a default, so a
// partially-empty round still yields a complete, well-typed report. No
// completion call happens here; once integrated, the result is fixed.
func Integrate(brief string, plan *contextstore.Plan, outputs RoundOutputs) contextstore.FinalReport {
	var copyContent contextstore.CopyContent
	if outputs.Copy != nil {
		copyContent = outputs.Copy.Content
	}
	var analysis contextstore.Analysis
	if outputs.Analysis != nil {
		analysis = outputs.Analysis.Analysis
	}
	var outreach contextstore.OutreachContent
	if outputs.Outreach != nil {
		outreach = outputs.Outreach.Content
	}

	strategy := ""
	if plan != nil {
		strategy = plan.Strategy
	}

	audience := DefaultAudience
	if len(analysis.TargetAudiences) > 0 && analysis.TargetAudiences[0].SegmentName != "" {
		audience = analysis.TargetAudiences[0].SegmentName
	}

	channels := make([]string, 0, len(analysis.RecommendedChannels))
	for _, ch := range analysis.RecommendedChannels {
		channels = append(channels, ch.Channel)
	}

	captions := copyContent.InstagramCaptions
	if captions == nil {
		captions = []contextstore.Caption{}
	}
	ads := copyContent.FacebookAds
	if ads == nil {
		ads = []contextstore.FacebookAd{}
	}
	kpis := analysis.SuggestedKPIs
	if kpis == nil {
		kpis = []string{}
	}

	return contextstore.FinalReport{
		CampaignBrief:       brief,
		Strategy:            strategy,
		TargetAudience:      audience,
		CoreMessage:         copyContent.Slogan,
		RecommendedChannels: channels,
		ContentExamples: contextstore.ContentExamples{
			Slogan:            copyContent.Slogan,
			InstagramCaptions: captions,
			FacebookAds:       ads,
			TwitterPost:       copyContent.TwitterPost,
			LinkedInPost:      copyContent.LinkedInPost,
		},
		OutreachTemplates: contextstore.OutreachTemplates{
			ColdEmail:       outreach.ColdOutreachEmail,
			InfluencerPitch: outreach.InfluencerPitch,
			MediaPitch:      outreach.MediaPitch,
		},
		KPIs:                  kpis,
		TimingRecommendations: analysis.TimingRecommendations,
	}
}
