// Package report renders a finished campaign for humans and for machines:
// a readable text summary and a condensed JSON digest.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"automark/internal/contextstore"
)

const rule = "======================================================================"
const thinRule = "----------------------------------------------------------------------"

// emailPreviewLen bounds the email draft excerpt in the condensed digest.
const emailPreviewLen = 100

// Render formats the final report as a readable text summary.
func Render(r contextstore.FinalReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\nCAMPAIGN PLAN GENERATED\n%s\n\n", rule, rule)

	if r.CampaignBrief != "" {
		fmt.Fprintf(&b, "Brief: %s\n\n", r.CampaignBrief)
	}
	if r.Strategy != "" {
		fmt.Fprintf(&b, "Strategy: %s\n\n", r.Strategy)
	}
	if r.TargetAudience != "" {
		fmt.Fprintf(&b, "Target Audience: %s\n\n", r.TargetAudience)
	}
	if r.CoreMessage != "" {
		fmt.Fprintf(&b, "Core Message: %s\n\n", r.CoreMessage)
	}

	if len(r.RecommendedChannels) > 0 {
		b.WriteString("Recommended Channels:\n")
		for _, channel := range r.RecommendedChannels {
			if channel != "" {
				fmt.Fprintf(&b, "   - %s\n", channel)
			}
		}
		b.WriteString("\n")
	}

	renderContent(&b, r.ContentExamples)
	renderOutreach(&b, r.OutreachTemplates)

	if len(r.KPIs) > 0 {
		b.WriteString("Suggested KPIs:\n")
		for _, kpi := range r.KPIs {
			if kpi != "" {
				fmt.Fprintf(&b, "   - %s\n", kpi)
			}
		}
		b.WriteString("\n")
	}
	if r.TimingRecommendations != "" {
		fmt.Fprintf(&b, "Timing: %s\n\n", r.TimingRecommendations)
	}

	fmt.Fprintf(&b, "%s\nCampaign plan complete. See the context file for full details.\n%s\n", rule, rule)
	return b.String()
}

func renderContent(b *strings.Builder, content contextstore.ContentExamples) {
	empty := content.Slogan == "" && len(content.InstagramCaptions) == 0 &&
		len(content.FacebookAds) == 0 && content.TwitterPost == "" && content.LinkedInPost == ""
	if empty {
		return
	}

	fmt.Fprintf(b, "Content Examples:\n%s\n", thinRule)
	if content.Slogan != "" {
		fmt.Fprintf(b, "\nSlogan: %s\n\n", content.Slogan)
	}
	if len(content.InstagramCaptions) > 0 {
		b.WriteString("Instagram Captions:\n")
		for i, caption := range content.InstagramCaptions {
			fmt.Fprintf(b, "   %d. [%s] %s\n", i+1, caption.Tone, caption.Caption)
		}
		b.WriteString("\n")
	}
	if len(content.FacebookAds) > 0 {
		b.WriteString("Facebook Ads:\n")
		for i, ad := range content.FacebookAds {
			fmt.Fprintf(b, "   %d. [%s] %s\n", i+1, ad.Type, ad.Copy)
		}
		b.WriteString("\n")
	}
	if content.TwitterPost != "" {
		fmt.Fprintf(b, "Twitter/X Post: %s\n\n", content.TwitterPost)
	}
	if content.LinkedInPost != "" {
		fmt.Fprintf(b, "LinkedIn Post: %s\n\n", content.LinkedInPost)
	}
}

func renderOutreach(b *strings.Builder, outreach contextstore.OutreachTemplates) {
	cold := outreach.ColdEmail
	pitch := outreach.InfluencerPitch
	if cold.Subject == "" && cold.Body == "" && pitch.Subject == "" && pitch.Body == "" {
		return
	}

	fmt.Fprintf(b, "Outreach Templates:\n%s\n", thinRule)
	if cold.Subject != "" || cold.Body != "" {
		b.WriteString("\nCold Outreach Email:\n")
		if cold.Subject != "" {
			fmt.Fprintf(b, "   Subject: %s\n", cold.Subject)
		}
		if cold.Body != "" {
			fmt.Fprintf(b, "   Body: %s\n", cold.Body)
		}
		b.WriteString("\n")
	}
	if pitch.Subject != "" || pitch.Body != "" {
		b.WriteString("Influencer Pitch:\n")
		if pitch.Subject != "" {
			fmt.Fprintf(b, "   Subject: %s\n", pitch.Subject)
		}
		if pitch.Body != "" {
			fmt.Fprintf(b, "   Body: %s\n", pitch.Body)
		}
		b.WriteString("\n")
	}
}

// Condensed is the machine-facing digest of a campaign.
type Condensed struct {
	TargetAudience  string   `json:"target_audience"`
	CoreMessage     string   `json:"core_message"`
	ContentExamples []string `json:"content_examples"`
}

// Condense flattens the report into the digest shape. Content examples keep
// their channel prefix so a consumer can tell them apart.
func Condense(r contextstore.FinalReport) Condensed {
	audience := r.TargetAudience
	if audience == "" {
		audience = "General audience"
	}
	out := Condensed{
		TargetAudience:  audience,
		CoreMessage:     r.CoreMessage,
		ContentExamples: []string{},
	}

	content := r.ContentExamples
	if content.Slogan != "" {
		out.ContentExamples = append(out.ContentExamples, "Slogan: "+content.Slogan)
	}
	for _, caption := range content.InstagramCaptions {
		out.ContentExamples = append(out.ContentExamples, "Instagram: "+caption.Caption)
	}
	for _, ad := range content.FacebookAds {
		out.ContentExamples = append(out.ContentExamples, "Facebook: "+ad.Copy)
	}
	if content.TwitterPost != "" {
		out.ContentExamples = append(out.ContentExamples, "Twitter: "+content.TwitterPost)
	}
	if content.LinkedInPost != "" {
		out.ContentExamples = append(out.ContentExamples, "LinkedIn: "+content.LinkedInPost)
	}
	if body := r.OutreachTemplates.ColdEmail.Body; body != "" {
		preview := body
		if len(preview) > emailPreviewLen {
			preview = preview[:emailPreviewLen]
		}
		out.ContentExamples = append(out.ContentExamples, "Email draft: "+preview+"...")
	}
	return out
}

// EncodeCondensed returns the condensed digest as indented JSON.
func EncodeCondensed(r contextstore.FinalReport) (string, error) {
	data, err := json.MarshalIndent(Condense(r), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode condensed report: %w", err)
	}
	return string(data), nil
}

// WriteCondensed saves the condensed digest JSON to path.
func WriteCondensed(r contextstore.FinalReport, path string) error {
	data, err := EncodeCondensed(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write condensed report: %w", err)
	}
	return nil
}
