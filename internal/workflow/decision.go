package workflow

import "strings"

// upstreamErrorMarker is how the completion layer renders a failed call into
// the fallback record's raw text.
const upstreamErrorMarker = "Error:"

// Decide chooses the evaluate node's outgoing edge. Pure function of the
// transient state, no side effects.
//
// Rules, in order:
//  1. The revision ceiling always wins: at or past max revisions, finalize.
//  2. If the copywriter's fallback text carries an upstream error marker, the
//     completion service itself is broken; finalize rather than spend another
//     round against a dead dependency.
//  3. Revise only when the evaluation raised at least one revision request
//     AND marked the outputs ready_for_final. ready_for_final here means
//     "well-formed enough to be worth revising", not "good enough to ship";
//     it gates whether revision is meaningful, independent of the score.
//  4. Otherwise finalize.
func Decide(state *State) Branch {
	if state.RevisionCount >= state.MaxRevisions {
		return BranchFinalize
	}

	if state.Copy != nil && strings.Contains(state.Copy.Content.RawResponse, upstreamErrorMarker) {
		return BranchFinalize
	}

	if state.Evaluation == nil {
		return BranchFinalize
	}
	hasRequests := len(state.Evaluation.RevisionRequests) > 0
	if hasRequests && state.Evaluation.ReadyForFinal && state.RevisionCount < state.MaxRevisions {
		return BranchRevise
	}
	return BranchFinalize
}
