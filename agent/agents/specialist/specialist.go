package specialist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	toolx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/tool"
)

type specialistImpl struct {
	agentType      contractx.AgentType
	toolRunner     compose.Runnable[map[string]any, *schema.Message]
	finalizeRunner compose.Runnable[map[string]any, specialistLLMOutput]
	runtimeRunner  compose.Runnable[contractx.SpecialistRequest, contractx.SpecialistResponse]
	executor       toolx.Executor
	allowedTools   map[string]struct{}
}

type specialistLLMOutput struct {
	Message string `json:"message"`
}

func newSpecialist(
	ctx context.Context,
	agentType contractx.AgentType,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	tools []*schema.ToolInfo,
	executor toolx.Executor,
) (*specialistImpl, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: specialist=%s", contractx.ErrPromptMissing, agentType)
	}
	if executor == nil {
		return nil, fmt.Errorf("%w: executor is required for specialist=%s", contractx.ErrValidation, agentType)
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools for specialist=%s: %v", contractx.ErrModelInvoke, agentType, err)
	}
	toolRunner, err := compileToolPlanningGraph(ctx, toolModel, systemPrompt, agentType)
	if err != nil {
		return nil, fmt.Errorf("%w: compile tool planner graph: %v", contractx.ErrModelInvoke, err)
	}

	finalizeRunner, err := compileFinalizeGraph(ctx, chatModel, systemPrompt, agentType)
	if err != nil {
		return nil, fmt.Errorf("%w: compile finalize graph: %v", contractx.ErrModelInvoke, err)
	}

	allowedTools := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		allowedTools[t.Name] = struct{}{}
	}

	spec := &specialistImpl{
		agentType:      agentType,
		toolRunner:     toolRunner,
		finalizeRunner: finalizeRunner,
		executor:       executor,
		allowedTools:   allowedTools,
	}

	runtimeRunner, err := compileSpecialistRuntimeGraph(ctx, agentType, spec.runToolPlanning, spec.runToolsAndFinalize)
	if err != nil {
		return nil, fmt.Errorf("%w: compile specialist runtime graph: %v", contractx.ErrModelInvoke, err)
	}
	spec.runtimeRunner = runtimeRunner

	return spec, nil
}

func (s *specialistImpl) Run(ctx context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return contractx.SpecialistResponse{}, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}
	out, err := s.runtimeRunner.Invoke(ctx, req)
	if err != nil {
		return contractx.SpecialistResponse{}, err
	}
	return out, nil
}

func (s *specialistImpl) runToolPlanning(ctx context.Context, req contractx.SpecialistRequest) (*schema.Message, error) {
	payload := map[string]any{
		"mode":         "act",
		"user_message": req.UserMessage,
		"history":      req.History,
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal tool planning payload: %v", contractx.ErrValidation, err)
	}

	msg, err := s.toolRunner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: tool planning invoke: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty tool planning response", contractx.ErrSchemaViolation)
	}
	return msg, nil
}

// runToolsAndFinalize executes the planned tool calls and asks the model for
// the user-facing message given the raw results.
func (s *specialistImpl) runToolsAndFinalize(
	ctx context.Context,
	req contractx.SpecialistRequest,
	planMsg *schema.Message,
) (contractx.SpecialistResponse, error) {
	toolRequests, err := toToolRequests(planMsg.ToolCalls)
	if err != nil {
		return contractx.SpecialistResponse{}, err
	}

	results := make([]contractx.ToolResult, 0, len(toolRequests))
	for _, tr := range toolRequests {
		if _, ok := s.allowedTools[tr.Tool]; !ok {
			return contractx.SpecialistResponse{}, fmt.Errorf("%w: tool=%s is not allowed for agent=%s", contractx.ErrSchemaViolation, tr.Tool, s.agentType)
		}
		result, err := s.executor(ctx, tr.Tool, tr.Args)
		if err != nil {
			return contractx.SpecialistResponse{}, err
		}
		results = append(results, result)
	}

	payload := map[string]any{
		"mode":         "finalize",
		"user_message": req.UserMessage,
		"history":      req.History,
		"tool_results": results,
	}
	input, err := json.Marshal(payload)
	if err != nil {
		return contractx.SpecialistResponse{}, fmt.Errorf("%w: marshal finalize payload: %v", contractx.ErrValidation, err)
	}

	out, err := s.finalizeRunner.Invoke(ctx, map[string]any{
		"input": string(input),
	})
	if err != nil {
		return contractx.SpecialistResponse{}, fmt.Errorf("%w: finalize invoke: %v", contractx.ErrModelInvoke, err)
	}

	message := strings.TrimSpace(out.Message)
	if message == "" {
		return contractx.SpecialistResponse{}, fmt.Errorf("%w: specialist message is empty", contractx.ErrSchemaViolation)
	}

	return contractx.SpecialistResponse{
		Message:     message,
		ToolResults: results,
	}, nil
}

func directReply(msg *schema.Message) (contractx.SpecialistResponse, error) {
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return contractx.SpecialistResponse{}, fmt.Errorf("%w: specialist returned neither tool calls nor a message", contractx.ErrSchemaViolation)
	}
	return contractx.SpecialistResponse{Message: content}, nil
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}
