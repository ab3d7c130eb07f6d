package supervisornode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	statex "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
	Agent contractx.AgentType
}

type GraphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session *statex.ConversationState
	History string

	Decision       contractx.RouteDecision
	SpecialistResp contractx.SpecialistResponse

	Message string
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}
