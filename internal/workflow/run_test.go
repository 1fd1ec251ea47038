package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"automark/internal/agents"
	"automark/internal/audit"
	"automark/internal/bus"
	"automark/internal/contextstore"
	"automark/internal/llm"
	"automark/internal/manager"
)

func newTestRunner(t *testing.T, completer llm.Completer) (*Runner, *contextstore.Store, *bus.Bus, string) {
	t.Helper()
	dir := t.TempDir()
	store := contextstore.New(filepath.Join(dir, "campaign_context.json"), nil)
	msgBus := bus.New()
	auditPath := filepath.Join(dir, "audit.sqlite")
	runner := NewRunner(Deps{
		Store:      store,
		Manager:    manager.New(completer, nil),
		Copywriter: agents.NewCopywriter(store, completer, msgBus, nil),
		Analyst:    agents.NewAnalyst(store, completer, nil, msgBus, nil),
		Outreach:   agents.NewOutreach(store, completer, msgBus, nil),
		Bus:        msgBus,
		Audit:      audit.NewLogger(auditPath),
	})
	return runner, store, msgBus, auditPath
}

func TestExecuteCampaignSingleRound(t *testing.T) {
	runner, store, msgBus, auditPath := newTestRunner(t, &llm.Mock{})

	result, err := runner.ExecuteCampaign(context.Background(), "Promote eco-friendly water bottle", 1)
	if err != nil {
		t.Fatalf("execute campaign: %v", err)
	}
	if result.Rounds != 1 {
		t.Fatalf("expected one round, got %d", result.Rounds)
	}
	if result.Degraded {
		t.Fatalf("mock round should not be degraded")
	}
	if !strings.HasPrefix(result.CampaignID, "campaign_") {
		t.Fatalf("unexpected campaign id %q", result.CampaignID)
	}
	if result.Report.CoreMessage == "" || result.Report.TargetAudience == "" {
		t.Fatalf("incomplete final report: %+v", result.Report)
	}

	snap := store.Snapshot()
	if snap.FinalOutput == nil {
		t.Fatalf("final output not persisted")
	}
	if snap.ManagerPlan == nil {
		t.Fatalf("plan not persisted")
	}
	if len(snap.CopywriterOutputs) != 1 || len(snap.DataAnalystOutputs) != 1 || len(snap.OutreachOutputs) != 1 {
		t.Fatalf("expected one output per specialist: %d/%d/%d",
			len(snap.CopywriterOutputs), len(snap.DataAnalystOutputs), len(snap.OutreachOutputs))
	}
	if len(snap.Revisions) != 0 {
		t.Fatalf("mock evaluation requests no revisions, got %+v", snap.Revisions)
	}

	notes := msgBus.MessagesFor(contextstore.AgentManager, bus.TypeNotification)
	if len(notes) != 3 {
		t.Fatalf("expected 3 completion notifications, got %d", len(notes))
	}
	if _, err := os.Stat(auditPath); err != nil {
		t.Fatalf("audit log not created: %v", err)
	}
}

func TestExecuteCampaignZeroRevisionsStillRunsOneRound(t *testing.T) {
	runner, store, _, _ := newTestRunner(t, &llm.Mock{})

	result, err := runner.ExecuteCampaign(context.Background(), "Launch fitness app", 0)
	if err != nil {
		t.Fatalf("execute campaign: %v", err)
	}
	if result.Rounds != 1 {
		t.Fatalf("expected exactly one round with zero revisions allowed, got %d", result.Rounds)
	}
	if store.Snapshot().FinalOutput == nil {
		t.Fatalf("campaign must still reach integration")
	}
}

func TestExecuteCampaignRevisionLoop(t *testing.T) {
	evaluations := 0
	completer := &llm.Mock{Respond: func(req llm.Request) (string, error) {
		if strings.Contains(req.User, "Review the campaign outputs") {
			evaluations++
			if evaluations == 1 {
				return `{
					"overall_score": 5,
					"strengths": [],
					"improvements_needed": ["slogan too generic"],
					"revision_requests": [
						{"agent": "copywriter", "issue": "generic slogan", "request": "Make the slogan product-specific"}
					],
					"ready_for_final": true
				}`, nil
			}
			return `{"overall_score": 8, "strengths": ["improved"], "improvements_needed": [], "revision_requests": [], "ready_for_final": true}`, nil
		}
		return (&llm.Mock{}).Complete(context.Background(), req)
	}}
	runner, store, _, _ := newTestRunner(t, completer)

	result, err := runner.ExecuteCampaign(context.Background(), "Promote bottle", 2)
	if err != nil {
		t.Fatalf("execute campaign: %v", err)
	}
	if result.Rounds != 2 {
		t.Fatalf("expected two rounds, got %d", result.Rounds)
	}
	if evaluations != 2 {
		t.Fatalf("expected two evaluations, got %d", evaluations)
	}

	snap := store.Snapshot()
	if len(snap.CopywriterOutputs) != 2 {
		t.Fatalf("revision round should re-run specialists, got %d copy outputs", len(snap.CopywriterOutputs))
	}
	if len(snap.Revisions) != 1 {
		t.Fatalf("expected one recorded revision request, got %d", len(snap.Revisions))
	}
	if snap.Revisions[0].Agent != "copywriter" || snap.Revisions[0].Feedback != "Make the slogan product-specific" {
		t.Fatalf("unexpected revision record: %+v", snap.Revisions[0])
	}
}

func TestExecuteCampaignDegradedOnUpstreamErrors(t *testing.T) {
	completer := &llm.Mock{Respond: func(llm.Request) (string, error) {
		return "total nonsense, no JSON anywhere", nil
	}}
	runner, store, _, _ := newTestRunner(t, completer)

	result, err := runner.ExecuteCampaign(context.Background(), "Promote bottle", 2)
	if err != nil {
		t.Fatalf("degraded campaign must still complete: %v", err)
	}
	if !result.Degraded {
		t.Fatalf("expected degraded result")
	}
	if result.Rounds != 1 {
		t.Fatalf("fallback evaluation must not loop, got %d rounds", result.Rounds)
	}
	final := store.Snapshot().FinalOutput
	if final == nil {
		t.Fatalf("degraded campaign must still produce a final report")
	}
	if final.TargetAudience != manager.DefaultAudience {
		t.Fatalf("expected default audience, got %q", final.TargetAudience)
	}
}

func TestExecuteCampaignHonorsCancellation(t *testing.T) {
	runner, _, _, _ := newTestRunner(t, &llm.Mock{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.ExecuteCampaign(ctx, "Promote bottle", 1); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
