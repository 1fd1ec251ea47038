// Package audit writes workflow events to a SQLite-backed log. Logging is
// best-effort: the orchestrator never fails a campaign over an audit error.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Event types recorded over a campaign's lifetime.
const (
	EventCampaignStarted    = "campaign_started"
	EventPlanCreated        = "plan_created"
	EventSpecialistFinished = "specialist_finished"
	EventEvaluationRecorded = "evaluation_recorded"
	EventRevisionRequested  = "revision_requested"
	EventCampaignFinalized  = "campaign_finalized"
)

// Logger writes audit events to a specific SQLite DB path.
type Logger struct {
	DBPath string
}

// NewLogger returns a Logger bound to the provided DB path.
func NewLogger(dbPath string) *Logger {
	return &Logger{DBPath: dbPath}
}

// LogEvent writes one audit event. The actor is the agent or component that
// caused the event; the payload is marshaled to JSON.
func (l *Logger) LogEvent(campaignID, actor, eventType string, payload any) error {
	if l == nil || l.DBPath == "" {
		return nil
	}
	absPath, err := filepath.Abs(l.DBPath)
	if err != nil {
		return fmt.Errorf("resolve audit db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("ensure audit db dir: %w", err)
	}
	return writeEvent(absPath, campaignID, actor, eventType, payload)
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts DATETIME NOT NULL,
			campaign_id TEXT NOT NULL,
			actor TEXT NOT NULL,
			type TEXT NOT NULL,
			payload_json TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

func writeEvent(dbPath, campaignID, actor, eventType string, payload any) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open audit db: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := ensureSchema(db); err != nil {
		return err
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = db.Exec(
		"INSERT INTO events (ts, campaign_id, actor, type, payload_json) VALUES (?, ?, ?, ?, ?)",
		time.Now().UTC(),
		campaignID,
		actor,
		eventType,
		string(payloadJSON),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}

	return nil
}
