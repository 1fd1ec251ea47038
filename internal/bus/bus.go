// Package bus implements an in-process message bus for agent coordination:
// request/response correlation, per-agent delivery queries and statistics.
package bus

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageType classifies agent messages.
type MessageType string

const (
	TypeRequest      MessageType = "request"
	TypeResponse     MessageType = "response"
	TypeNotification MessageType = "notification"
	TypeQuery        MessageType = "query"
	TypeProposal     MessageType = "proposal"
)

// Message is a structured agent-to-agent message.
type Message struct {
	MessageID        string            `json:"message_id"`
	FromAgent        string            `json:"from_agent"`
	ToAgent          string            `json:"to_agent"`
	Type             MessageType       `json:"message_type"`
	Content          map[string]string `json:"content"`
	Timestamp        string            `json:"timestamp"`
	RequiresResponse bool              `json:"requires_response"`
	CorrelationID    string            `json:"correlation_id,omitempty"`
}

// NewMessage builds a message with a fresh id and timestamp.
func NewMessage(from, to string, typ MessageType, content map[string]string) Message {
	return Message{
		MessageID: uuid.NewString(),
		FromAgent: from,
		ToAgent:   to,
		Type:      typ,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Stats summarizes bus traffic.
type Stats struct {
	TotalMessages   int
	PendingRequests int
	ByType          map[MessageType]int
	ByAgent         map[string]int
}

// Bus records messages between agents. Safe for concurrent use.
type Bus struct {
	mu       sync.Mutex
	messages []Message
	pending  map[string]Message // message_id -> unanswered request
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{pending: make(map[string]Message)}
}

// Send records a message. Requests that require a response are tracked until
// a response arrives carrying their id as correlation_id.
func (b *Bus) Send(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msg)
	if msg.RequiresResponse && msg.Type == TypeRequest {
		b.pending[msg.MessageID] = msg
	}
	if msg.Type == TypeResponse && msg.CorrelationID != "" {
		delete(b.pending, msg.CorrelationID)
	}
}

// MessagesFor returns messages addressed to agent, optionally filtered by type
// (empty string matches all).
func (b *Bus) MessagesFor(agent string, typ MessageType) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Message
	for _, msg := range b.messages {
		if msg.ToAgent != agent {
			continue
		}
		if typ != "" && msg.Type != typ {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// PendingRequestsFor returns unanswered requests addressed to agent.
func (b *Bus) PendingRequestsFor(agent string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Message
	for _, msg := range b.pending {
		if msg.ToAgent == agent {
			out = append(out, msg)
		}
	}
	return out
}

// Respond builds a response to original, correlated to its id.
func (b *Bus) Respond(original Message, content map[string]string) Message {
	resp := NewMessage(original.ToAgent, original.FromAgent, TypeResponse, content)
	resp.CorrelationID = original.MessageID
	return resp
}

// Statistics returns counts of messages by type and sending agent.
func (b *Bus) Statistics() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	stats := Stats{
		TotalMessages:   len(b.messages),
		PendingRequests: len(b.pending),
		ByType:          make(map[MessageType]int),
		ByAgent:         make(map[string]int),
	}
	for _, msg := range b.messages {
		stats.ByType[msg.Type]++
		stats.ByAgent[msg.FromAgent]++
	}
	return stats
}

// Clear drops all messages and pending requests.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = nil
	b.pending = make(map[string]Message)
}
