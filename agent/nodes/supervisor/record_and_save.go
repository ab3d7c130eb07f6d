package supervisornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	statex "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/state"
)

// RecordTurnAndSave appends the exchanged turns to the transcript and
// checkpoints the session. The reply is only visible to later turns once the
// save succeeds.
func RecordTurnAndSave(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Session.AppendUserTurn(in.Text, in.Now)
	in.Session.AppendAssistantTurn(in.Decision.Agent, in.Message, in.Now)
	in.Session.Touch(in.Now)

	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if err := store.Save(ctx, in.Session); err != nil {
		return nil, err
	}

	return in, nil
}
