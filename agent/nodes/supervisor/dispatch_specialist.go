package supervisornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

func DispatchSpecialist(
	ctx context.Context,
	in *GraphState,
	models contractx.Registry,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	specialist, err := pickSpecialist(in.Decision.Agent, models)
	if err != nil {
		return nil, err
	}

	resp, err := specialist.Run(ctx, contractx.SpecialistRequest{
		UserMessage: in.Text,
		History:     in.History,
	})
	if err != nil {
		return nil, err
	}

	in.SpecialistResp = resp
	return in, nil
}

func pickSpecialist(agent contractx.AgentType, models contractx.Registry) (contractx.Specialist, error) {
	switch agent {
	case contractx.AgentTypeCatalog:
		return models.Catalog(), nil
	case contractx.AgentTypeOrder:
		return models.Order(), nil
	case contractx.AgentTypeDatabase:
		return models.Database(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported agent=%q", contractx.ErrValidation, agent)
	}
}
