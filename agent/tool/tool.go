package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

const (
	ToolCatalogSearch  = "catalog.search"
	ToolDatabaseSearch = "database.search"
	ToolOrderCreate    = "order.create"
)

// Executor runs one tool call. Argument and store failures are reported
// through ToolResult.Error so the model can react to them; only gateway
// misuse surfaces as a Go error.
type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// Gateway binds the tool surface to the music store. Each agent type sees
// exactly one tool.
type Gateway struct {
	store contractx.MusicStore
}

func NewGateway(store contractx.MusicStore) (*Gateway, error) {
	if store == nil {
		return nil, errors.New("music store is required")
	}
	return &Gateway{store: store}, nil
}

func (g *Gateway) Execute(ctx context.Context, agentType contractx.AgentType, req contractx.ToolRequest) (contractx.ToolResult, error) {
	executor := g.ExecutorForAgent(agentType)
	return executor(ctx, req.Tool, req.Args)
}

// BuildForAgent returns the tool schemas plus the executor for one agent type.
func (g *Gateway) BuildForAgent(agentType contractx.AgentType) ([]*schema.ToolInfo, Executor) {
	return InfosForAgent(agentType), g.ExecutorForAgent(agentType)
}

func (g *Gateway) ExecutorForAgent(agentType contractx.AgentType) Executor {
	fallback := unavailableExecutor(agentType)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		if !toolAllowed(agentType, tool) {
			return fallback(ctx, tool, args)
		}
		switch tool {
		case ToolCatalogSearch:
			return g.executeCatalogSearch(ctx, tool, args)
		case ToolDatabaseSearch:
			return g.executeDatabaseSearch(ctx, tool, args)
		case ToolOrderCreate:
			return g.executeOrderCreate(ctx, tool, args)
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func unavailableExecutor(agentType contractx.AgentType) Executor {
	return func(_ context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable for agent=%s", tool, agentType),
		}, nil
	}
}

func toolAllowed(agentType contractx.AgentType, tool string) bool {
	switch agentType {
	case contractx.AgentTypeCatalog:
		return tool == ToolCatalogSearch
	case contractx.AgentTypeOrder:
		return tool == ToolOrderCreate
	case contractx.AgentTypeDatabase:
		return tool == ToolDatabaseSearch
	default:
		return false
	}
}

func InfosForAgent(agentType contractx.AgentType) []*schema.ToolInfo {
	switch agentType {
	case contractx.AgentTypeCatalog:
		return []*schema.ToolInfo{
			{
				Name: ToolCatalogSearch,
				Desc: "Search for up to 5 tracks matching a genre in the Chinook database. The genre name is case-sensitive.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"genre": {Type: schema.String, Desc: "Exact genre name, e.g. Rock", Required: true},
				}),
			},
		}
	case contractx.AgentTypeOrder:
		return []*schema.ToolInfo{
			{
				Name: ToolOrderCreate,
				Desc: "Create a new invoice with line items for a customer's cart and return the invoice id.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"customer_id": {Type: schema.Integer, Desc: "Id of the customer placing the order", Required: true},
					"cart": {
						Type:     schema.Array,
						Desc:     "Cart items, each with track_id, unit_price and quantity",
						Required: true,
						ElemInfo: &schema.ParameterInfo{
							Type: schema.Object,
							SubParams: map[string]*schema.ParameterInfo{
								"track_id":   {Type: schema.Integer, Desc: "Track identifier", Required: true},
								"unit_price": {Type: schema.Number, Desc: "Price per unit", Required: true},
								"quantity":   {Type: schema.Integer, Desc: "Number of units", Required: true},
							},
						},
					},
				}),
			},
		}
	case contractx.AgentTypeDatabase:
		return []*schema.ToolInfo{
			{
				Name: ToolDatabaseSearch,
				Desc: "Execute a SQL SELECT statement against the Chinook database and return up to 100 rows. Only SELECT is allowed.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"query": {Type: schema.String, Desc: "A SQL SELECT statement", Required: true},
				}),
			},
		}
	default:
		return nil
	}
}
