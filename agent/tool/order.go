package tool

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

type OrderCreateOutput struct {
	InvoiceID int64 `json:"invoice_id"`
}

func (g *Gateway) executeOrderCreate(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
	rawCustomer, ok := args["customer_id"]
	if !ok {
		return contractx.ToolResult{Tool: tool, Error: "customer_id is required"}, nil
	}
	customerID, err := coerceInt64(rawCustomer)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: fmt.Sprintf("customer_id: %v", err)}, nil
	}

	rawCart, ok := args["cart"]
	if !ok {
		return contractx.ToolResult{Tool: tool, Error: "cart is required"}, nil
	}
	cart, err := parseCart(rawCart)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	invoiceID, err := g.store.CreateOrder(ctx, customerID, cart)
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	return contractx.ToolResult{
		Tool: tool,
		Result: OrderCreateOutput{
			InvoiceID: invoiceID,
		},
	}, nil
}

// parseCart turns the decoded JSON cart into typed items. A failure on any
// item rejects the whole cart, naming the item.
func parseCart(raw any) ([]contractx.CartItem, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("cart must be an array, got %T", raw)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("cart must contain at least one item")
	}

	cart := make([]contractx.CartItem, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cart item %d must be an object, got %T", i, entry)
		}
		item, err := parseCartItem(obj)
		if err != nil {
			return nil, fmt.Errorf("cart item %d: %w", i, err)
		}
		cart = append(cart, item)
	}
	return cart, nil
}

func parseCartItem(obj map[string]any) (contractx.CartItem, error) {
	rawTrack, ok := itemField(obj, "track_id", "TrackId")
	if !ok {
		return contractx.CartItem{}, fmt.Errorf("track_id is required")
	}
	trackID, err := coerceInt64(rawTrack)
	if err != nil {
		return contractx.CartItem{}, fmt.Errorf("track_id: %w", err)
	}

	rawPrice, ok := itemField(obj, "unit_price", "UnitPrice")
	if !ok {
		return contractx.CartItem{}, fmt.Errorf("unit_price is required")
	}
	price, err := coerceFloat64(rawPrice)
	if err != nil {
		return contractx.CartItem{}, fmt.Errorf("unit_price: %w", err)
	}

	rawQty, ok := itemField(obj, "quantity", "Quantity")
	if !ok {
		return contractx.CartItem{}, fmt.Errorf("quantity is required")
	}
	qty, err := coerceInt64(rawQty)
	if err != nil {
		return contractx.CartItem{}, fmt.Errorf("quantity: %w", err)
	}

	return contractx.CartItem{
		TrackID:   trackID,
		UnitPrice: price,
		Quantity:  qty,
	}, nil
}
