// Package workflow drives one campaign execution as an explicit finite-state
// machine: plan -> {copywriter, analyst, outreach} -> evaluate ->
// (revise -> plan | finalize -> integrate) -> done. The transition table and
// the revision decision are pure and testable without a completion service.
package workflow

import (
	"automark/internal/contextstore"
	"automark/internal/manager"
)

// Node names a workflow state.
type Node string

const (
	NodePlan       Node = "plan"
	NodeCopywriter Node = "copywriter"
	NodeAnalyst    Node = "data_analyst"
	NodeOutreach   Node = "outreach"
	NodeEvaluate   Node = "evaluate"
	NodeIntegrate  Node = "integrate"
	NodeDone       Node = "done"
)

// Branch labels the evaluate node's outgoing edge.
type Branch string

const (
	BranchRevise   Branch = "revise"
	BranchFinalize Branch = "finalize"
)

// State is the transient, orchestrator-local workflow state. It is created
// fresh per execution and discarded after the terminal node; durable facts
// live in the context store, which mirrors it at checkpoints.
type State struct {
	Brief      string
	Plan       *contextstore.Plan
	Copy       *contextstore.CopyOutput
	Analysis   *contextstore.AnalystOutput
	Outreach   *contextstore.OutreachOutput
	Evaluation *manager.Evaluation
	Final      *contextstore.FinalReport

	RevisionCount int
	MaxRevisions  int
}

// Outputs bundles the state's current round for the manager.
func (s *State) Outputs() manager.RoundOutputs {
	return manager.RoundOutputs{Copy: s.Copy, Analysis: s.Analysis, Outreach: s.Outreach}
}

// Successors returns the states reachable from node. The three specialist
// states are mutually independent: plan fans out to all of them, and evaluate
// must not run until all have completed (the runner joins on them).
func Successors(node Node, branch Branch) []Node {
	switch node {
	case NodePlan:
		return []Node{NodeCopywriter, NodeAnalyst, NodeOutreach}
	case NodeCopywriter, NodeAnalyst, NodeOutreach:
		return []Node{NodeEvaluate}
	case NodeEvaluate:
		if branch == BranchRevise {
			return []Node{NodePlan}
		}
		return []Node{NodeIntegrate}
	case NodeIntegrate:
		return []Node{NodeDone}
	default:
		return nil
	}
}
