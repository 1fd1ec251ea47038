package contextstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store persists a campaign Context to a single JSON file. Every mutator
// writes the full structure to disk before returning, so a crash between
// workflow steps loses at most the in-flight step. Single-writer-per-process;
// concurrent processes sharing one file are unsupported.
type Store struct {
	path   string
	logger *zap.Logger

	mu  sync.Mutex
	ctx Context
}

// New opens (or initializes) a store at path. A missing or corrupt file is
// recovered by starting from an empty context, never reported as an error.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{path: path, logger: logger}
	s.ctx = s.load()
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

func (s *Store) load() Context {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return emptyContext()
	}
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		s.logger.Warn("context file unreadable, starting fresh",
			zap.String("path", s.path), zap.Error(err))
		return emptyContext()
	}
	return ctx
}

func emptyContext() Context {
	return Context{
		CopywriterOutputs:  []CopyOutput{},
		DataAnalystOutputs: []AnalystOutput{},
		OutreachOutputs:    []OutreachOutput{},
		Revisions:          []Revision{},
	}
}

// persist writes the full context atomically: marshal, write a temp file in
// the same directory, then rename over the target. No partial record is ever
// visible on disk. Callers must hold s.mu.
func (s *Store) persist() error {
	s.ctx.UpdatedAt = now()

	data, err := json.MarshalIndent(s.ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure context dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".campaign_context-*.json")
	if err != nil {
		return fmt.Errorf("create temp context file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write context: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp context file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace context file: %w", err)
	}
	return nil
}

// SetBrief stores the initial campaign brief and assigns a campaign id.
func (s *Store) SetBrief(brief string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Brief = brief
	s.ctx.CreatedAt = now()
	s.ctx.CampaignID = "campaign_" + uuid.NewString()
	return s.persist()
}

// SetManagerPlan stores the manager's task breakdown, replacing any prior plan.
func (s *Store) SetManagerPlan(plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.ManagerPlan = &plan
	return s.persist()
}

// AddCopywriterOutput appends a copywriter record, stamping it.
func (s *Store) AddCopywriterOutput(output CopyOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	output.Timestamp = now()
	s.ctx.CopywriterOutputs = append(s.ctx.CopywriterOutputs, output)
	return s.persist()
}

// AddDataAnalystOutput appends a data-analyst record, stamping it.
func (s *Store) AddDataAnalystOutput(output AnalystOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	output.Timestamp = now()
	s.ctx.DataAnalystOutputs = append(s.ctx.DataAnalystOutputs, output)
	return s.persist()
}

// AddOutreachOutput appends an outreach record, stamping it.
func (s *Store) AddOutreachOutput(output OutreachOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	output.Timestamp = now()
	s.ctx.OutreachOutputs = append(s.ctx.OutreachOutputs, output)
	return s.persist()
}

// AddRevision records a revision request and its (possibly empty) response.
func (s *Store) AddRevision(agent, feedback string, revisedOutput json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(revisedOutput) == 0 {
		revisedOutput = json.RawMessage(`{}`)
	}
	s.ctx.Revisions = append(s.ctx.Revisions, Revision{
		Agent:         agent,
		Feedback:      feedback,
		RevisedOutput: revisedOutput,
		Timestamp:     now(),
	})
	return s.persist()
}

// SetFinalOutput stores the final integrated campaign report.
func (s *Store) SetFinalOutput(report FinalReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.FinalOutput = &report
	return s.persist()
}

// Clear resets the context for a new campaign.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = emptyContext()
	return s.persist()
}

// Snapshot returns a copy of the current context.
func (s *Store) Snapshot() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Brief returns the current campaign brief.
func (s *Store) Brief() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Brief
}

// ContextSummary produces the deterministic text digest used as prompt
// memory. It is intentionally lossy: output lists appear as counts, not
// content, to bound prompt size.
func (s *Store) ContextSummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []string
	if s.ctx.Brief != "" {
		lines = append(lines, "Brief: "+s.ctx.Brief)
	}
	if s.ctx.ManagerPlan != nil {
		planJSON, err := json.MarshalIndent(s.ctx.ManagerPlan, "", "  ")
		if err == nil {
			lines = append(lines, "Plan: "+string(planJSON))
		}
	}
	if n := len(s.ctx.CopywriterOutputs); n > 0 {
		lines = append(lines, fmt.Sprintf("Copywriter outputs: %d items", n))
	}
	if n := len(s.ctx.DataAnalystOutputs); n > 0 {
		lines = append(lines, fmt.Sprintf("Data analyst outputs: %d items", n))
	}
	if n := len(s.ctx.OutreachOutputs); n > 0 {
		lines = append(lines, fmt.Sprintf("Outreach outputs: %d items", n))
	}
	return strings.Join(lines, "\n")
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
