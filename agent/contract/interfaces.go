package contract

import "context"

// MusicStore is the boundary over the Chinook database. These three
// operations are the entire store surface the agents consume.
type MusicStore interface {
	CatalogSearch(ctx context.Context, genre string) ([]TrackHit, error)
	AdHocQuery(ctx context.Context, query string) ([][]any, error)
	CreateOrder(ctx context.Context, customerID int64, cart []CartItem) (int64, error)
}

type Router interface {
	Route(ctx context.Context, req RouteRequest) (RouteDecision, error)
}

type Specialist interface {
	Run(ctx context.Context, req SpecialistRequest) (SpecialistResponse, error)
}

type Composer interface {
	Compose(ctx context.Context, req ComposeRequest) (string, error)
}

type Registry interface {
	Router() Router
	Composer() Composer
	Catalog() Specialist
	Order() Specialist
	Database() Specialist
}

type ToolGateway interface {
	Execute(ctx context.Context, agentType AgentType, req ToolRequest) (ToolResult, error)
}
