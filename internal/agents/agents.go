// Package agents implements the three content-producing specialists. All
// three share one flow: read brief and context summary from the store, build
// a fixed prompt embedding a required JSON schema, call the completion
// service at a tuned temperature, parse or fall back, append to the store.
// A malformed or failed completion never aborts a specialist; it degrades the
// structured fields to defaults while preserving the raw text.
package agents

import (
	"go.uber.org/zap"

	"automark/internal/bus"
	"automark/internal/contextstore"
	"automark/internal/llm"
)

// Temperatures are tuned per specialist: creative tasks sample higher,
// analytical tasks lower.
const (
	copywriterTemperature = 0.8
	analystTemperature    = 0.6
	outreachTemperature   = 0.7
)

type shared struct {
	store     *contextstore.Store
	completer llm.Completer
	bus       *bus.Bus
	logger    *zap.Logger
}

func newShared(store *contextstore.Store, completer llm.Completer, b *bus.Bus, logger *zap.Logger) shared {
	if logger == nil {
		logger = zap.NewNop()
	}
	return shared{store: store, completer: completer, bus: b, logger: logger}
}

// notifyManager posts a completion notification on the bus, when one is wired.
func (s *shared) notifyManager(agent, task string) {
	if s.bus == nil {
		return
	}
	s.bus.Send(bus.NewMessage(agent, contextstore.AgentManager, bus.TypeNotification, map[string]string{
		"task":   task,
		"status": "completed",
	}))
}
