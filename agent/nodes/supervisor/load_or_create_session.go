package supervisornode

import (
	"context"
	"errors"
	"fmt"
	"time"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	statex "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/state"
)

func LoadOrCreateSession(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	st, err := loadOrCreateSession(ctx, store, in.SessionID, in.Now)
	if err != nil {
		return nil, err
	}

	in.Session = st
	in.History = st.HistoryText()
	return in, nil
}

func loadOrCreateSession(
	ctx context.Context,
	store statex.Store,
	sessionID string,
	now time.Time,
) (*statex.ConversationState, error) {
	st, err := store.Load(ctx, sessionID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, statex.ErrStateNotFound) {
		return nil, err
	}

	return statex.NewConversationState(sessionID, now), nil
}
