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

type composerImpl struct {
	runner compose.Runnable[map[string]any, composerLLMOutput]
}

type composerLLMOutput struct {
	Message string `json:"message"`
}

func newComposer(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*composerImpl, error) {
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: supervisor compose prompt", contractx.ErrPromptMissing)
	}
	runner, err := compileComposerGraph(ctx, chatModel, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: compile composer graph: %v", contractx.ErrModelInvoke, err)
	}
	return &composerImpl{runner: runner}, nil
}

// Compose turns one specialist's output into the final user-facing answer.
func (c *composerImpl) Compose(ctx context.Context, req contractx.ComposeRequest) (string, error) {
	payload := map[string]any{
		"user_message":       req.UserMessage,
		"agent":              req.Agent,
		"specialist_message": req.SpecialistMessage,
		"tool_results":       req.ToolResults,
	}
	inputBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal composer payload: %v", contractx.ErrValidation, err)
	}

	out, err := c.runner.Invoke(ctx, map[string]any{
		"input": string(inputBytes),
	})
	if err != nil {
		return "", fmt.Errorf("%w: composer invoke: %v", contractx.ErrModelInvoke, err)
	}

	message := strings.TrimSpace(out.Message)
	if message == "" {
		return "", fmt.Errorf("%w: composed message is empty", contractx.ErrSchemaViolation)
	}
	return message, nil
}
