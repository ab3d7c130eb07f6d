package supervisornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Message)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: composed reply is empty", contractx.ErrValidation)
	}
	return GraphOutput{
		Reply: reply,
		Agent: in.Decision.Agent,
	}, nil
}
