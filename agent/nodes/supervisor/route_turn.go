package supervisornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

// RouteTurn asks the supervisor model which specialist owns the current turn.
func RouteTurn(
	ctx context.Context,
	in *GraphState,
	router contractx.Router,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	decision, err := router.Route(ctx, contractx.RouteRequest{
		UserMessage: in.Text,
		History:     in.History,
		Now:         in.Now,
	})
	if err != nil {
		return nil, err
	}

	in.Decision = decision
	return in, nil
}
