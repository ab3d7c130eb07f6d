package supervisor

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	nodex "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/nodes/supervisor"
	statex "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

// Supervisor owns one full turn: load the session, route to a specialist,
// compose the reply, checkpoint the transcript.
type Supervisor struct {
	store  statex.Store
	models contractx.Registry

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(store statex.Store, models contractx.Registry) (*Supervisor, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if models == nil {
		return nil, errors.New("model registry is required")
	}

	s := &Supervisor{
		store:  store,
		models: models,
		now:    time.Now,
	}

	graphRunner, err := s.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

func (s *Supervisor) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
