package specialist

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

func compileRouterGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, routerLLMOutput], error) {
	runner, err := compileStructuredLLMGraph[routerLLMOutput](ctx, chatModel, systemPrompt, "supervisor.router_graph")
	if err != nil {
		return nil, fmt.Errorf("compile router graph: %w", err)
	}
	return runner, nil
}

func compileComposerGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, composerLLMOutput], error) {
	runner, err := compileStructuredLLMGraph[composerLLMOutput](ctx, chatModel, systemPrompt, "supervisor.composer_graph")
	if err != nil {
		return nil, fmt.Errorf("compile composer graph: %w", err)
	}
	return runner, nil
}

func compileFinalizeGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	agentType contractx.AgentType,
) (compose.Runnable[map[string]any, specialistLLMOutput], error) {
	name := fmt.Sprintf("specialist.%s.finalize_graph", agentType)
	runner, err := compileStructuredLLMGraph[specialistLLMOutput](ctx, chatModel, systemPrompt, name)
	if err != nil {
		return nil, fmt.Errorf("compile specialist finalize graph: %w", err)
	}
	return runner, nil
}

func compileToolPlanningGraph(
	ctx context.Context,
	toolModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	agentType contractx.AgentType,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add tool planning prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", toolModel); err != nil {
		return nil, fmt.Errorf("add tool planning model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add tool planning edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add tool planning edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add tool planning edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(fmt.Sprintf("specialist.%s.tool_planning_graph", agentType)))
	if err != nil {
		return nil, fmt.Errorf("compile tool planning graph: %w", err)
	}
	return runner, nil
}

type specialistGraphState struct {
	Req     contractx.SpecialistRequest
	PlanMsg *schema.Message
}

func compileSpecialistRuntimeGraph(
	ctx context.Context,
	agentType contractx.AgentType,
	planFlow func(context.Context, contractx.SpecialistRequest) (*schema.Message, error),
	executeFlow func(context.Context, contractx.SpecialistRequest, *schema.Message) (contractx.SpecialistResponse, error),
) (compose.Runnable[contractx.SpecialistRequest, contractx.SpecialistResponse], error) {
	graph := compose.NewGraph[contractx.SpecialistRequest, contractx.SpecialistResponse]()

	if err := graph.AddLambdaNode("plan_tools",
		compose.InvokableLambda(func(ctx context.Context, req contractx.SpecialistRequest) (*specialistGraphState, error) {
			msg, err := planFlow(ctx, req)
			if err != nil {
				return nil, err
			}
			return &specialistGraphState{Req: req, PlanMsg: msg}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add specialist plan node: %w", err)
	}

	if err := graph.AddLambdaNode("direct_reply",
		compose.InvokableLambda(func(ctx context.Context, in *specialistGraphState) (contractx.SpecialistResponse, error) {
			if in == nil || in.PlanMsg == nil {
				return contractx.SpecialistResponse{}, fmt.Errorf("%w: specialist graph state is nil", contractx.ErrValidation)
			}
			return directReply(in.PlanMsg)
		}),
	); err != nil {
		return nil, fmt.Errorf("add specialist direct reply node: %w", err)
	}

	if err := graph.AddLambdaNode("execute_and_finalize",
		compose.InvokableLambda(func(ctx context.Context, in *specialistGraphState) (contractx.SpecialistResponse, error) {
			if in == nil || in.PlanMsg == nil {
				return contractx.SpecialistResponse{}, fmt.Errorf("%w: specialist graph state is nil", contractx.ErrValidation)
			}
			return executeFlow(ctx, in.Req, in.PlanMsg)
		}),
	); err != nil {
		return nil, fmt.Errorf("add specialist execute node: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *specialistGraphState) (string, error) {
			if in == nil || in.PlanMsg == nil {
				return "", fmt.Errorf("%w: specialist graph state is nil", contractx.ErrValidation)
			}
			if len(in.PlanMsg.ToolCalls) == 0 {
				return "direct_reply", nil
			}
			return "execute_and_finalize", nil
		},
		map[string]bool{
			"direct_reply":         true,
			"execute_and_finalize": true,
		},
	)

	if err := graph.AddBranch("plan_tools", branch); err != nil {
		return nil, fmt.Errorf("add specialist runtime branch: %w", err)
	}
	if err := graph.AddEdge(compose.START, "plan_tools"); err != nil {
		return nil, fmt.Errorf("add specialist runtime edge start->plan: %w", err)
	}
	if err := graph.AddEdge("direct_reply", compose.END); err != nil {
		return nil, fmt.Errorf("add specialist runtime edge direct->end: %w", err)
	}
	if err := graph.AddEdge("execute_and_finalize", compose.END); err != nil {
		return nil, fmt.Errorf("add specialist runtime edge execute->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(fmt.Sprintf("specialist.%s.runtime_graph", agentType)))
	if err != nil {
		return nil, fmt.Errorf("compile specialist runtime graph: %w", err)
	}
	return runner, nil
}

func compileStructuredLLMGraph[T any](
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
	graphName string,
) (compose.Runnable[map[string]any, T], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("{input}"),
	)

	parser := schema.NewMessageJSONParser[T](&schema.MessageJSONParseConfig{
		ParseFrom: schema.MessageParseFromContent,
	})

	graph := compose.NewGraph[map[string]any, T]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add structured prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add structured model node: %w", err)
	}
	if err := graph.AddLambdaNode("parse_json", compose.MessageParser(parser)); err != nil {
		return nil, fmt.Errorf("add structured parser node: %w", err)
	}

	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add structured edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add structured edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", "parse_json"); err != nil {
		return nil, fmt.Errorf("add structured edge model->parse: %w", err)
	}
	if err := graph.AddEdge("parse_json", compose.END); err != nil {
		return nil, fmt.Errorf("add structured edge parse->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile structured graph: %w", err)
	}
	return runner, nil
}
