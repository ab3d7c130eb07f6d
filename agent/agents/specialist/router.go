package specialist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

type routerImpl struct {
	runner compose.Runnable[map[string]any, routerLLMOutput]
}

type routerLLMOutput struct {
	Agent  string `json:"agent"`
	Reason string `json:"reason,omitempty"`
}

func newRouter(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*routerImpl, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: supervisor routing prompt", contractx.ErrPromptMissing)
	}
	runner, err := compileRouterGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile router graph: %v", contractx.ErrModelInvoke, err)
	}
	return &routerImpl{runner: runner}, nil
}

func (r *routerImpl) Route(ctx context.Context, req contractx.RouteRequest) (contractx.RouteDecision, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return contractx.RouteDecision{}, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	payload := map[string]any{
		"user_message": req.UserMessage,
		"history":      req.History,
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return contractx.RouteDecision{}, fmt.Errorf("%w: marshal router payload: %v", contractx.ErrValidation, err)
	}

	out, err := r.runner.Invoke(ctx, map[string]any{
		"input": string(inputBytes),
	})
	if err != nil {
		return contractx.RouteDecision{}, fmt.Errorf("%w: router invoke: %v", contractx.ErrModelInvoke, err)
	}

	decision := contractx.RouteDecision{
		Agent:  contractx.AgentType(strings.ToLower(strings.TrimSpace(out.Agent))),
		Reason: strings.TrimSpace(out.Reason),
	}
	if !isRoutableAgent(decision.Agent) {
		return contractx.RouteDecision{}, fmt.Errorf("%w: unsupported agent=%q", contractx.ErrSchemaViolation, out.Agent)
	}
	return decision, nil
}

func isRoutableAgent(agent contractx.AgentType) bool {
	switch agent {
	case contractx.AgentTypeCatalog, contractx.AgentTypeOrder, contractx.AgentTypeDatabase:
		return true
	default:
		return false
	}
}
