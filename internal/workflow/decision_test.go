package workflow

import (
	"testing"

	"automark/internal/contextstore"
	"automark/internal/manager"
)

func evalWith(requests int, ready bool) *manager.Evaluation {
	e := &manager.Evaluation{ReadyForFinal: ready}
	for i := 0; i < requests; i++ {
		e.RevisionRequests = append(e.RevisionRequests, manager.RevisionRequest{Agent: "copywriter"})
	}
	return e
}

func TestDecideCeilingAlwaysFinalizes(t *testing.T) {
	state := &State{
		RevisionCount: 1,
		MaxRevisions:  1,
		Evaluation:    evalWith(2, true),
	}
	if got := Decide(state); got != BranchFinalize {
		t.Fatalf("at ceiling expected finalize, got %s", got)
	}

	state.RevisionCount = 3
	if got := Decide(state); got != BranchFinalize {
		t.Fatalf("past ceiling expected finalize, got %s", got)
	}
}

func TestDecideRevisesOnlyWhenRequestedAndReady(t *testing.T) {
	cases := []struct {
		name     string
		requests int
		ready    bool
		want     Branch
	}{
		{"requests and ready", 1, true, BranchRevise},
		{"requests but not ready", 1, false, BranchFinalize},
		{"ready but no requests", 0, true, BranchFinalize},
		{"neither", 0, false, BranchFinalize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := &State{
				RevisionCount: 1,
				MaxRevisions:  2,
				Evaluation:    evalWith(tc.requests, tc.ready),
			}
			if got := Decide(state); got != tc.want {
				t.Fatalf("Decide() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDecideFinalizesOnUpstreamError(t *testing.T) {
	state := &State{
		RevisionCount: 1,
		MaxRevisions:  2,
		Evaluation:    evalWith(1, true),
		Copy: &contextstore.CopyOutput{Content: contextstore.CopyContent{
			RawResponse: "Error: connection refused",
		}},
	}
	if got := Decide(state); got != BranchFinalize {
		t.Fatalf("expected finalize when completion service is down, got %s", got)
	}
}

func TestDecideFinalizesWithoutEvaluation(t *testing.T) {
	state := &State{RevisionCount: 0, MaxRevisions: 2}
	if got := Decide(state); got != BranchFinalize {
		t.Fatalf("expected finalize with no evaluation, got %s", got)
	}
}

func TestSuccessorsTransitionTable(t *testing.T) {
	if got := Successors(NodePlan, ""); len(got) != 3 {
		t.Fatalf("plan should fan out to three specialists, got %v", got)
	}
	for _, n := range []Node{NodeCopywriter, NodeAnalyst, NodeOutreach} {
		got := Successors(n, "")
		if len(got) != 1 || got[0] != NodeEvaluate {
			t.Fatalf("%s should lead to evaluate, got %v", n, got)
		}
	}
	if got := Successors(NodeEvaluate, BranchRevise); len(got) != 1 || got[0] != NodePlan {
		t.Fatalf("revise should return to plan, got %v", got)
	}
	if got := Successors(NodeEvaluate, BranchFinalize); len(got) != 1 || got[0] != NodeIntegrate {
		t.Fatalf("finalize should lead to integrate, got %v", got)
	}
	if got := Successors(NodeIntegrate, ""); len(got) != 1 || got[0] != NodeDone {
		t.Fatalf("integrate should lead to done, got %v", got)
	}
	if got := Successors(NodeDone, ""); got != nil {
		t.Fatalf("done is terminal, got %v", got)
	}
}
