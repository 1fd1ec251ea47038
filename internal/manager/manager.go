// Package manager implements the campaign manager's three responsibilities:
// decomposing a brief into a plan, evaluating specialist outputs, and merging
// everything into the final report.
package manager

import (
	"go.uber.org/zap"

	"automark/internal/llm"
)

// Temperatures favor consistency for planning and review.
const (
	planTemperature     = 0.6
	evaluateTemperature = 0.5
)

// Manager holds the injected completion handle used for planning and
// evaluation. Integration is pure and needs no service.
type Manager struct {
	completer llm.Completer
	logger    *zap.Logger
}

// New constructs a manager around an injected completion handle.
func New(completer llm.Completer, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{completer: completer, logger: logger}
}

// Evaluation is the quality gate's verdict over one round of outputs.
type Evaluation struct {
	OverallScore       float64           `json:"overall_score"`
	Strengths          []string          `json:"strengths"`
	ImprovementsNeeded []string          `json:"improvements_needed"`
	RevisionRequests   []RevisionRequest `json:"revision_requests"`
	ReadyForFinal      bool              `json:"ready_for_final"`
	RawResponse        string            `json:"raw_response,omitempty"`
}

// IsFallback reports whether the evaluation is the optimistic fallback.
func (e Evaluation) IsFallback() bool { return e.RawResponse != "" }

// RevisionRequest asks one agent to address one issue.
type RevisionRequest struct {
	Agent   string `json:"agent"`
	Issue   string `json:"issue"`
	Request string `json:"request"`
}
