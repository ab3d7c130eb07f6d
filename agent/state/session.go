package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// DefaultMaxTurns bounds the transcript kept per session. Older turns
	// are dropped from the front.
	DefaultMaxTurns = 40
)

var (
	ErrNilSessionState = errors.New("session state is nil")
	ErrInvalidSession  = errors.New("session id is empty")
)

// Turn is one message in a conversation, either the user's or the final
// supervisor reply (tagged with the specialist that produced it).
type Turn struct {
	Role    string              `json:"role"`
	Agent   contractx.AgentType `json:"agent,omitempty"`
	Content string              `json:"content"`
	At      time.Time           `json:"at"`
}

// ConversationState is the per-session checkpoint the supervisor loads and
// saves around every turn.
type ConversationState struct {
	SessionID string    `json:"session_id"`
	Turns     []Turn    `json:"turns,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewConversationState(sessionID string, now time.Time) *ConversationState {
	return &ConversationState{
		SessionID: sessionID,
		UpdatedAt: now.UTC(),
	}
}

func (s *ConversationState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

func (s *ConversationState) AppendUserTurn(content string, now time.Time) {
	s.appendTurn(Turn{Role: RoleUser, Content: content, At: now.UTC()})
}

func (s *ConversationState) AppendAssistantTurn(agent contractx.AgentType, content string, now time.Time) {
	s.appendTurn(Turn{Role: RoleAssistant, Agent: agent, Content: content, At: now.UTC()})
}

func (s *ConversationState) appendTurn(turn Turn) {
	s.Turns = append(s.Turns, turn)
	s.Truncate(DefaultMaxTurns)
}

// Truncate drops the oldest turns so at most maxTurns remain.
func (s *ConversationState) Truncate(maxTurns int) {
	if maxTurns <= 0 || len(s.Turns) <= maxTurns {
		return
	}
	s.Turns = append([]Turn(nil), s.Turns[len(s.Turns)-maxTurns:]...)
}

// HistoryText renders the transcript as plain "role: content" lines for
// inclusion in prompts. Empty when the conversation has no prior turns.
func (s *ConversationState) HistoryText() string {
	if s == nil || len(s.Turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, turn := range s.Turns {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *ConversationState) Validate() error {
	if s == nil {
		return ErrNilSessionState
	}
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	for i, turn := range s.Turns {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return fmt.Errorf("turn %d has unknown role %q", i, turn.Role)
		}
	}
	return nil
}

// Clone returns a deep copy, so store implementations can hand out state
// without sharing the turn slice.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return nil
	}
	out := *s
	out.Turns = append([]Turn(nil), s.Turns...)
	return &out
}
