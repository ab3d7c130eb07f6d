package specialist

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	llmx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/llm"
	promptx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/prompt"
	toolx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/tool"
)

type registryImpl struct {
	router   contractx.Router
	composer contractx.Composer
	catalog  contractx.Specialist
	order    contractx.Specialist
	database contractx.Specialist
}

func (r *registryImpl) Router() contractx.Router {
	return r.router
}

func (r *registryImpl) Composer() contractx.Composer {
	return r.composer
}

func (r *registryImpl) Catalog() contractx.Specialist {
	return r.catalog
}

func (r *registryImpl) Order() contractx.Specialist {
	return r.order
}

func (r *registryImpl) Database() contractx.Specialist {
	return r.database
}

// NewRegistry builds one model per agent type and wires each specialist to
// its tool surface on the gateway.
func NewRegistry(ctx context.Context, cfg llmx.Config, gateway *toolx.Gateway) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if gateway == nil {
		return nil, fmt.Errorf("%w: tool gateway is required", contractx.ErrValidation)
	}

	prompts := promptx.LoadPromptSet()

	supervisorModelCfg := cfg.OpenRouterFor(contractx.AgentTypeSupervisor)
	supervisorModel, err := supervisorModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create supervisor model: %v", contractx.ErrModelInvoke, err)
	}

	router, err := newRouter(ctx, supervisorModel, prompts.Supervisor)
	if err != nil {
		return nil, err
	}
	composer, err := newComposer(ctx, supervisorModel, prompts.Compose)
	if err != nil {
		return nil, err
	}

	specialists := map[contractx.AgentType]*specialistImpl{}
	for agentType, systemPrompt := range map[contractx.AgentType]string{
		contractx.AgentTypeCatalog:  prompts.Catalog,
		contractx.AgentTypeOrder:    prompts.Order,
		contractx.AgentTypeDatabase: prompts.Database,
	} {
		modelCfg := cfg.OpenRouterFor(agentType)
		chatModel, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create %s model: %v", contractx.ErrModelInvoke, agentType, err)
		}

		infos, executor := gateway.BuildForAgent(agentType)
		spec, err := newSpecialist(ctx, agentType, chatModel, systemPrompt, infos, executor)
		if err != nil {
			return nil, err
		}
		specialists[agentType] = spec
	}

	return &registryImpl{
		router:   router,
		composer: composer,
		catalog:  specialists[contractx.AgentTypeCatalog],
		order:    specialists[contractx.AgentTypeOrder],
		database: specialists[contractx.AgentTypeDatabase],
	}, nil
}
