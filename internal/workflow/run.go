package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"automark/internal/agents"
	"automark/internal/audit"
	"automark/internal/bus"
	"automark/internal/contextstore"
	"automark/internal/manager"
	"automark/internal/memory"
)

// Default task descriptions used when a plan carries no tasks for an agent.
const (
	defaultCopyTask     = "Create marketing copy"
	defaultAnalystTask  = "Analyze audience and channels"
	defaultOutreachTask = "Create outreach content"
)

// Deps bundles everything a Runner needs. Bus, Audit and Memory are
// optional; a nil value disables that concern without changing the workflow.
type Deps struct {
	Store      *contextstore.Store
	Manager    *manager.Manager
	Copywriter *agents.Copywriter
	Analyst    *agents.Analyst
	Outreach   *agents.Outreach
	Bus        *bus.Bus
	Audit      *audit.Logger
	Memory     *memory.Memory
	Logger     *zap.Logger
}

// Runner walks one campaign through the workflow state machine.
type Runner struct {
	deps Deps
}

// NewRunner constructs a runner over injected dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Runner{deps: deps}
}

// Result summarizes one finished campaign execution.
type Result struct {
	CampaignID string
	Report     contextstore.FinalReport
	// Rounds is the number of specialist rounds that ran, including the
	// initial one.
	Rounds int
	// Degraded reports whether any specialist finished on fallback content.
	Degraded bool
}

// ExecuteCampaign runs the full workflow for one brief and returns the final
// report. The store mirrors every checkpoint, so a crash mid-run leaves a
// readable partial context behind. maxRevisions bounds the rework loop; the
// evaluate node counts one revision per pass regardless of the branch taken.
func (r *Runner) ExecuteCampaign(ctx context.Context, brief string, maxRevisions int) (Result, error) {
	log := r.deps.Logger

	if err := r.deps.Store.SetBrief(brief); err != nil {
		return Result{}, fmt.Errorf("start campaign: %w", err)
	}
	campaignID := r.deps.Store.Snapshot().CampaignID
	log.Info("starting campaign execution",
		zap.String("campaign_id", campaignID),
		zap.Int("max_revisions", maxRevisions))
	r.logEvent(campaignID, contextstore.AgentManager, audit.EventCampaignStarted, map[string]any{
		"brief":         brief,
		"max_revisions": maxRevisions,
	})

	state := &State{Brief: brief, MaxRevisions: maxRevisions}

	node := NodePlan
	for node != NodeDone {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("campaign aborted at %s: %w", node, err)
		}

		var err error
		switch node {
		case NodePlan:
			node, err = r.planNode(ctx, state, campaignID)
		case NodeEvaluate:
			node, err = r.evaluateNode(ctx, state, campaignID)
		case NodeIntegrate:
			node, err = r.integrateNode(ctx, state, campaignID)
		default:
			err = fmt.Errorf("workflow reached unexpected node %s", node)
		}
		if err != nil {
			return Result{}, err
		}
	}

	return Result{
		CampaignID: campaignID,
		Report:     *state.Final,
		Rounds:     state.RevisionCount,
		Degraded:   degraded(state),
	}, nil
}

func degraded(state *State) bool {
	if state.Copy != nil && state.Copy.Content.IsFallback() {
		return true
	}
	if state.Analysis != nil && state.Analysis.Analysis.IsFallback() {
		return true
	}
	if state.Outreach != nil && state.Outreach.Content.IsFallback() {
		return true
	}
	return false
}

// planNode regenerates the plan and fans out to the three specialists. The
// specialists run concurrently and the node returns only after all three have
// finished, so evaluate always sees a complete round.
func (r *Runner) planNode(ctx context.Context, state *State, campaignID string) (Node, error) {
	r.deps.Logger.Info("manager creating campaign plan")
	plan := r.deps.Manager.CreatePlan(ctx, state.Brief)
	if err := r.deps.Store.SetManagerPlan(plan); err != nil {
		return NodeDone, fmt.Errorf("persist plan: %w", err)
	}
	state.Plan = &plan
	r.logEvent(campaignID, contextstore.AgentManager, audit.EventPlanCreated, map[string]any{
		"strategy": plan.Strategy,
		"fallback": plan.IsFallback(),
	})

	var (
		wg          sync.WaitGroup
		copyOut     contextstore.CopyOutput
		analysisOut contextstore.AnalystOutput
		outreachOut contextstore.OutreachOutput
		copyErr     error
		analysisErr error
		outreachErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		r.deps.Logger.Info("copywriter generating marketing copy")
		task := joinTasks(plan.CopywriterTasks, defaultCopyTask)
		copyOut, copyErr = r.deps.Copywriter.ExecuteTask(ctx, task, agents.CopyOptions{})
	}()
	go func() {
		defer wg.Done()
		r.deps.Logger.Info("data analyst analyzing audience and channels")
		task := joinTasks(plan.DataAnalystTasks, defaultAnalystTask)
		analysisOut, analysisErr = r.deps.Analyst.ExecuteTask(ctx, task)
	}()
	go func() {
		defer wg.Done()
		r.deps.Logger.Info("outreach creating outreach templates")
		task := joinTasks(plan.OutreachTasks, defaultOutreachTask)
		outreachOut, outreachErr = r.deps.Outreach.ExecuteTask(ctx, task, agents.OutreachOptions{})
	}()
	wg.Wait()

	for _, err := range []error{copyErr, analysisErr, outreachErr} {
		if err != nil {
			return NodeDone, fmt.Errorf("specialist round: %w", err)
		}
	}
	state.Copy = &copyOut
	state.Analysis = &analysisOut
	state.Outreach = &outreachOut

	for _, agent := range []string{contextstore.AgentCopywriter, contextstore.AgentAnalyst, contextstore.AgentOutreach} {
		r.logEvent(campaignID, agent, audit.EventSpecialistFinished, map[string]any{
			"round": state.RevisionCount + 1,
		})
	}
	return NodeEvaluate, nil
}

// evaluateNode scores the round, records revision requests and picks the
// outgoing branch.
func (r *Runner) evaluateNode(ctx context.Context, state *State, campaignID string) (Node, error) {
	r.deps.Logger.Info("manager evaluating outputs")
	evaluation := r.deps.Manager.Evaluate(ctx, state.Brief, state.Plan, state.Outputs())
	state.Evaluation = &evaluation
	state.RevisionCount++

	r.logEvent(campaignID, contextstore.AgentManager, audit.EventEvaluationRecorded, map[string]any{
		"overall_score":     evaluation.OverallScore,
		"ready_for_final":   evaluation.ReadyForFinal,
		"revision_requests": len(evaluation.RevisionRequests),
		"fallback":          evaluation.IsFallback(),
	})

	for _, req := range evaluation.RevisionRequests {
		if err := r.deps.Store.AddRevision(req.Agent, req.Request, nil); err != nil {
			return NodeDone, fmt.Errorf("record revision request: %w", err)
		}
		if r.deps.Bus != nil {
			r.deps.Bus.Send(bus.NewMessage(contextstore.AgentManager, req.Agent, bus.TypeRequest, map[string]string{
				"issue":   req.Issue,
				"request": req.Request,
			}))
		}
		r.logEvent(campaignID, contextstore.AgentManager, audit.EventRevisionRequested, map[string]any{
			"agent":   req.Agent,
			"issue":   req.Issue,
			"request": req.Request,
		})
	}

	branch := Decide(state)
	r.deps.Logger.Info("evaluation complete",
		zap.Float64("overall_score", evaluation.OverallScore),
		zap.Int("revision_count", state.RevisionCount),
		zap.String("branch", string(branch)))
	return Successors(NodeEvaluate, branch)[0], nil
}

// integrateNode merges the round into the final report and persists it.
// Storing the campaign in memory is best-effort.
func (r *Runner) integrateNode(ctx context.Context, state *State, campaignID string) (Node, error) {
	r.deps.Logger.Info("manager integrating all outputs")
	report := manager.Integrate(state.Brief, state.Plan, state.Outputs())
	if err := r.deps.Store.SetFinalOutput(report); err != nil {
		return NodeDone, fmt.Errorf("persist final report: %w", err)
	}
	state.Final = &report
	r.logEvent(campaignID, contextstore.AgentManager, audit.EventCampaignFinalized, map[string]any{
		"revision_count": state.RevisionCount,
	})

	if r.deps.Memory != nil {
		if err := r.deps.Memory.StoreCampaign(ctx, campaignID, state.Brief, report); err != nil {
			r.deps.Logger.Warn("could not store campaign in memory", zap.Error(err))
		}
	}
	return NodeDone, nil
}

// logEvent writes an audit event when a logger is wired. Audit failures are
// logged and swallowed.
func (r *Runner) logEvent(campaignID, actor, eventType string, payload map[string]any) {
	if r.deps.Audit == nil {
		return
	}
	if err := r.deps.Audit.LogEvent(campaignID, actor, eventType, payload); err != nil {
		r.deps.Logger.Warn("audit event not recorded",
			zap.String("type", eventType), zap.Error(err))
	}
}

func joinTasks(tasks []string, fallback string) string {
	if len(tasks) == 0 {
		return fallback
	}
	return strings.Join(tasks, " | ")
}
