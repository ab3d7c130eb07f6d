package tool

import (
	"context"
	"fmt"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

type fakeMusicStore struct {
	catalogHits []contractx.TrackHit
	catalogErr  error

	queryRows [][]any
	queryErr  error

	invoiceID int64
	orderErr  error

	gotGenre      string
	gotQuery      string
	gotCustomerID int64
	gotCart       []contractx.CartItem
}

func (f *fakeMusicStore) CatalogSearch(_ context.Context, genre string) ([]contractx.TrackHit, error) {
	f.gotGenre = genre
	return f.catalogHits, f.catalogErr
}

func (f *fakeMusicStore) AdHocQuery(_ context.Context, query string) ([][]any, error) {
	f.gotQuery = query
	return f.queryRows, f.queryErr
}

func (f *fakeMusicStore) CreateOrder(_ context.Context, customerID int64, cart []contractx.CartItem) (int64, error) {
	f.gotCustomerID = customerID
	f.gotCart = cart
	return f.invoiceID, f.orderErr
}

func TestBuildForAgentCatalog(t *testing.T) {
	t.Parallel()

	gateway, err := NewGateway(&fakeMusicStore{})
	if err != nil {
		t.Fatalf("NewGateway() error = %v", err)
	}

	infos, executor := gateway.BuildForAgent(contractx.AgentTypeCatalog)
	if len(infos) != 1 {
		t.Fatalf("expected 1 tool info, got %d", len(infos))
	}
	if infos[0].Name != ToolCatalogSearch {
		t.Fatalf("unexpected tool: %s", infos[0].Name)
	}
	if executor == nil {
		t.Fatal("executor must not be nil")
	}
}

func TestNewGatewayRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := NewGateway(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestExecuteCatalogSearch(t *testing.T) {
	t.Parallel()

	store := &fakeMusicStore{
		catalogHits: []contractx.TrackHit{{TrackID: 1, Name: "Walk This Way"}},
	}
	gateway, _ := NewGateway(store)

	out, err := gateway.Execute(context.Background(), contractx.AgentTypeCatalog, contractx.ToolRequest{
		Tool: ToolCatalogSearch,
		Args: map[string]any{"genre": " Rock "},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	if store.gotGenre != "Rock" {
		t.Fatalf("genre must be trimmed before the store call, got %q", store.gotGenre)
	}
	result, ok := out.Result.(CatalogSearchOutput)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if len(result.Tracks) != 1 || result.Tracks[0].Name != "Walk This Way" {
		t.Fatalf("unexpected tracks: %+v", result.Tracks)
	}
}

func TestExecuteCatalogSearchMissingGenre(t *testing.T) {
	t.Parallel()

	gateway, _ := NewGateway(&fakeMusicStore{})
	out, err := gateway.Execute(context.Background(), contractx.AgentTypeCatalog, contractx.ToolRequest{
		Tool: ToolCatalogSearch,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected tool error for missing genre")
	}
}

func TestExecuteDatabaseSearch(t *testing.T) {
	t.Parallel()

	store := &fakeMusicStore{
		queryRows: [][]any{{int64(1), "Rock"}},
	}
	gateway, _ := NewGateway(store)

	out, err := gateway.Execute(context.Background(), contractx.AgentTypeDatabase, contractx.ToolRequest{
		Tool: ToolDatabaseSearch,
		Args: map[string]any{"query": "select * from Genre"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	result, ok := out.Result.(DatabaseSearchOutput)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("unexpected rows: %+v", result.Rows)
	}
}

func TestExecuteDatabaseSearchStoreErrorIsSoft(t *testing.T) {
	t.Parallel()

	store := &fakeMusicStore{
		queryErr: fmt.Errorf("%w: only SELECT queries are allowed", contractx.ErrInvalidArgument),
	}
	gateway, _ := NewGateway(store)

	out, err := gateway.Execute(context.Background(), contractx.AgentTypeDatabase, contractx.ToolRequest{
		Tool: ToolDatabaseSearch,
		Args: map[string]any{"query": "drop table Genre"},
	})
	if err != nil {
		t.Fatalf("store failures must surface as tool errors, got %v", err)
	}
	if !strings.Contains(out.Error, "SELECT") {
		t.Fatalf("tool error must carry the store cause, got %q", out.Error)
	}
}

func TestExecuteOrderCreate(t *testing.T) {
	t.Parallel()

	store := &fakeMusicStore{invoiceID: 413}
	gateway, _ := NewGateway(store)

	out, err := gateway.Execute(context.Background(), contractx.AgentTypeOrder, contractx.ToolRequest{
		Tool: ToolOrderCreate,
		Args: map[string]any{
			// JSON-decoded numbers are float64.
			"customer_id": float64(12),
			"cart": []any{
				map[string]any{"track_id": float64(1), "unit_price": 0.99, "quantity": float64(2)},
				map[string]any{"TrackId": float64(2), "UnitPrice": 1.29, "Quantity": float64(1)},
			},
		},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	result, ok := out.Result.(OrderCreateOutput)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if result.InvoiceID != 413 {
		t.Fatalf("unexpected invoice id: %d", result.InvoiceID)
	}
	if store.gotCustomerID != 12 {
		t.Fatalf("unexpected customer id: %d", store.gotCustomerID)
	}
	if len(store.gotCart) != 2 || store.gotCart[1].TrackID != 2 || store.gotCart[1].Quantity != 1 {
		t.Fatalf("unexpected cart: %+v", store.gotCart)
	}
}

func TestExecuteOrderCreateMalformedItem(t *testing.T) {
	t.Parallel()

	store := &fakeMusicStore{invoiceID: 1}
	gateway, _ := NewGateway(store)

	out, err := gateway.Execute(context.Background(), contractx.AgentTypeOrder, contractx.ToolRequest{
		Tool: ToolOrderCreate,
		Args: map[string]any{
			"customer_id": float64(12),
			"cart": []any{
				map[string]any{"track_id": float64(1), "unit_price": 0.99},
			},
		},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.Error, "cart item 0") {
		t.Fatalf("error must name the offending item, got %q", out.Error)
	}
	if store.gotCart != nil {
		t.Fatal("store must not be called for a malformed cart")
	}
}

func TestExecuteToolOutsideAllowList(t *testing.T) {
	t.Parallel()

	gateway, _ := NewGateway(&fakeMusicStore{})
	out, err := gateway.Execute(context.Background(), contractx.AgentTypeCatalog, contractx.ToolRequest{
		Tool: ToolOrderCreate,
		Args: map[string]any{"customer_id": float64(1), "cart": []any{}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.Error, "unavailable") {
		t.Fatalf("expected unavailable tool error, got %q", out.Error)
	}
}
