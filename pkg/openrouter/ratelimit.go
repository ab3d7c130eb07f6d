package openrouter

import (
	"context"
	"errors"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"
)

// rateLimitedChatModel throttles Generate/Stream calls with a shared token
// bucket. WithTools keeps the wrapper, so tool-bound copies share the same
// limiter.
type rateLimitedChatModel struct {
	inner   einomodel.ToolCallingChatModel
	limiter *rate.Limiter
}

func RateLimited(inner einomodel.ToolCallingChatModel, limiter *rate.Limiter) (einomodel.ToolCallingChatModel, error) {
	if inner == nil {
		return nil, errors.New("chat model is required")
	}
	if limiter == nil {
		return inner, nil
	}
	return &rateLimitedChatModel{
		inner:   inner,
		limiter: limiter,
	}, nil
}

func (m *rateLimitedChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return m.inner.Generate(ctx, input, opts...)
}

func (m *rateLimitedChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return m.inner.Stream(ctx, input, opts...)
}

func (m *rateLimitedChatModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	bound, err := m.inner.WithTools(tools)
	if err != nil {
		return nil, err
	}
	return &rateLimitedChatModel{
		inner:   bound,
		limiter: m.limiter,
	}, nil
}
