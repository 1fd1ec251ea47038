package agents

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"automark/internal/bus"
	"automark/internal/contextstore"
	"automark/internal/dataset"
	"automark/internal/llm"
)

func newTestStore(t *testing.T) *contextstore.Store {
	t.Helper()
	return contextstore.New(filepath.Join(t.TempDir(), "campaign_context.json"), nil)
}

func TestCopywriterParsesStructuredResponse(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetBrief("Promote eco-friendly water bottle"); err != nil {
		t.Fatalf("set brief: %v", err)
	}
	msgBus := bus.New()
	cw := NewCopywriter(store, &llm.Mock{}, msgBus, nil)

	out, err := cw.ExecuteTask(context.Background(), "Create brand slogan", CopyOptions{})
	if err != nil {
		t.Fatalf("execute task: %v", err)
	}
	if out.Content.IsFallback() {
		t.Fatalf("expected parsed content, got fallback: %q", out.Content.RawResponse)
	}
	if out.Content.Slogan == "" || len(out.Content.InstagramCaptions) != 3 {
		t.Fatalf("unexpected content: %+v", out.Content)
	}
	if out.Agent != contextstore.AgentCopywriter {
		t.Fatalf("unexpected agent tag %q", out.Agent)
	}

	persisted := store.Snapshot().CopywriterOutputs
	if len(persisted) != 1 || persisted[0].Content.Slogan != out.Content.Slogan {
		t.Fatalf("output not persisted: %+v", persisted)
	}
	notes := msgBus.MessagesFor(contextstore.AgentManager, bus.TypeNotification)
	if len(notes) != 1 || notes[0].FromAgent != contextstore.AgentCopywriter {
		t.Fatalf("expected completion notification, got %+v", notes)
	}
}

func TestCopywriterFallbackKeepsRawResponse(t *testing.T) {
	store := newTestStore(t)
	raw := "Sure! Here are some ideas for your campaign, in prose."
	completer := &llm.Mock{Respond: func(llm.Request) (string, error) {
		return raw, nil
	}}
	cw := NewCopywriter(store, completer, nil, nil)

	out, err := cw.ExecuteTask(context.Background(), "Create brand slogan", CopyOptions{})
	if err != nil {
		t.Fatalf("execute task: %v", err)
	}
	if !out.Content.IsFallback() {
		t.Fatalf("expected fallback content")
	}
	if out.Content.RawResponse != raw {
		t.Fatalf("raw response altered: %q", out.Content.RawResponse)
	}
	if out.Content.Slogan != "Generated from response" {
		t.Fatalf("unexpected fallback slogan %q", out.Content.Slogan)
	}
	if out.Content.InstagramCaptions == nil || out.Content.FacebookAds == nil {
		t.Fatalf("fallback lists must be empty, not nil")
	}
}

func TestCopywriterRendersUpstreamError(t *testing.T) {
	store := newTestStore(t)
	completer := &llm.Mock{Respond: func(llm.Request) (string, error) {
		return "", errors.New("rate limited")
	}}
	cw := NewCopywriter(store, completer, nil, nil)

	out, err := cw.ExecuteTask(context.Background(), "Create brand slogan", CopyOptions{})
	if err != nil {
		t.Fatalf("execute task: %v", err)
	}
	if out.Content.RawResponse != "Error: rate limited" {
		t.Fatalf("expected rendered error in raw response, got %q", out.Content.RawResponse)
	}
}

func TestAnalystPromptWithoutDataset(t *testing.T) {
	store := newTestStore(t)
	var prompt string
	completer := &llm.Mock{Respond: func(req llm.Request) (string, error) {
		prompt = req.User
		return "{}", nil
	}}
	analyst := NewAnalyst(store, completer, nil, nil, nil)

	if _, err := analyst.ExecuteTask(context.Background(), "Analyze audience"); err != nil {
		t.Fatalf("execute task: %v", err)
	}
	if !strings.Contains(prompt, dataset.NoDataSummary) {
		t.Fatalf("prompt should note missing dataset:\n%s", prompt)
	}
}

func TestAnalystParsesStructuredResponse(t *testing.T) {
	store := newTestStore(t)
	analyst := NewAnalyst(store, &llm.Mock{}, nil, nil, nil)

	out, err := analyst.ExecuteTask(context.Background(), "Identify segments")
	if err != nil {
		t.Fatalf("execute task: %v", err)
	}
	if out.Analysis.IsFallback() {
		t.Fatalf("expected parsed analysis, got fallback")
	}
	if len(out.Analysis.TargetAudiences) == 0 || len(out.Analysis.RecommendedChannels) == 0 {
		t.Fatalf("unexpected analysis: %+v", out.Analysis)
	}
	if len(store.Snapshot().DataAnalystOutputs) != 1 {
		t.Fatalf("analyst output not persisted")
	}
}

func TestAnalystFallbackDefaults(t *testing.T) {
	store := newTestStore(t)
	completer := &llm.Mock{Respond: func(llm.Request) (string, error) {
		return "no structure here", nil
	}}
	analyst := NewAnalyst(store, completer, nil, nil, nil)

	out, err := analyst.ExecuteTask(context.Background(), "Identify segments")
	if err != nil {
		t.Fatalf("execute task: %v", err)
	}
	a := out.Analysis
	if !a.IsFallback() || a.RawResponse != "no structure here" {
		t.Fatalf("expected fallback with raw text, got %+v", a)
	}
	if a.TimingRecommendations != "Based on general best practices" {
		t.Fatalf("unexpected fallback timing %q", a.TimingRecommendations)
	}
	want := []string{"reach", "engagement", "conversions"}
	if len(a.SuggestedKPIs) != len(want) {
		t.Fatalf("unexpected fallback KPIs %v", a.SuggestedKPIs)
	}
	for i, kpi := range want {
		if a.SuggestedKPIs[i] != kpi {
			t.Fatalf("unexpected fallback KPIs %v", a.SuggestedKPIs)
		}
	}
}

func TestOutreachUsesLatestSlogan(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddCopywriterOutput(contextstore.CopyOutput{
		Task:    "slogan",
		Agent:   contextstore.AgentCopywriter,
		Content: contextstore.CopyContent{Slogan: "Drink green, live clean"},
	}); err != nil {
		t.Fatalf("seed copywriter output: %v", err)
	}

	var prompt string
	completer := &llm.Mock{Respond: func(req llm.Request) (string, error) {
		prompt = req.User
		return "{}", nil
	}}
	outreach := NewOutreach(store, completer, nil, nil)

	if _, err := outreach.ExecuteTask(context.Background(), "Draft emails", OutreachOptions{}); err != nil {
		t.Fatalf("execute task: %v", err)
	}
	if !strings.Contains(prompt, "Brand Message: Drink green, live clean") {
		t.Fatalf("prompt missing brand message:\n%s", prompt)
	}
}

func TestOutreachFallbackKeepsRawOnly(t *testing.T) {
	store := newTestStore(t)
	completer := &llm.Mock{Respond: func(llm.Request) (string, error) {
		return "plain text pitch", nil
	}}
	outreach := NewOutreach(store, completer, nil, nil)

	out, err := outreach.ExecuteTask(context.Background(), "Draft emails", OutreachOptions{})
	if err != nil {
		t.Fatalf("execute task: %v", err)
	}
	if !out.Content.IsFallback() || out.Content.RawResponse != "plain text pitch" {
		t.Fatalf("expected raw-only fallback, got %+v", out.Content)
	}
	if out.Content.ColdOutreachEmail.Subject != "" {
		t.Fatalf("fallback should leave templates empty")
	}
}

func TestPersonasEmbedded(t *testing.T) {
	for _, name := range []string{"copywriter", "data_analyst", "outreach", "manager", "reviewer"} {
		if Persona(name) == "" {
			t.Fatalf("missing persona %q", name)
		}
	}
}
