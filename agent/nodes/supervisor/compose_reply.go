package supervisornode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

// ComposeReply rewrites the specialist's answer into the single supervisor
// voice the user sees.
func ComposeReply(
	ctx context.Context,
	in *GraphState,
	composer contractx.Composer,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	message, err := composer.Compose(ctx, contractx.ComposeRequest{
		UserMessage:       in.Text,
		Agent:             in.Decision.Agent,
		SpecialistMessage: in.SpecialistResp.Message,
		ToolResults:       in.SpecialistResp.ToolResults,
	})
	if err != nil {
		return nil, err
	}

	in.Message = strings.TrimSpace(message)
	return in, nil
}
