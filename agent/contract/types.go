package contract

import "time"

type AgentType string

const (
	AgentTypeSupervisor AgentType = "supervisor"
	AgentTypeCatalog    AgentType = "catalog"
	AgentTypeOrder      AgentType = "order"
	AgentTypeDatabase   AgentType = "database"
)

// TrackHit is one catalog search result row.
type TrackHit struct {
	TrackID int64  `json:"track_id"`
	Name    string `json:"name"`
}

// CartItem is a single (track, price, quantity) tuple submitted as part of
// an order request. Zero values are treated as missing fields by validation.
type CartItem struct {
	TrackID   int64   `json:"track_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
}

type RouteRequest struct {
	UserMessage string    `json:"user_message"`
	History     string    `json:"history"`
	Now         time.Time `json:"now"`
}

// RouteDecision names the single specialist that handles the current turn.
type RouteDecision struct {
	Agent  AgentType `json:"agent"`
	Reason string    `json:"reason,omitempty"`
}

type SpecialistRequest struct {
	UserMessage string `json:"user_message"`
	History     string `json:"history"`
}

type SpecialistResponse struct {
	Message     string       `json:"message"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

type ComposeRequest struct {
	UserMessage       string       `json:"user_message"`
	Agent             AgentType    `json:"agent"`
	SpecialistMessage string       `json:"specialist_message"`
	ToolResults       []ToolResult `json:"tool_results,omitempty"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
