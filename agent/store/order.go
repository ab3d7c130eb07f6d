package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

// CreateOrder inserts one Invoice header plus one InvoiceLine per cart item
// inside a single transaction and returns the generated invoice id. The whole
// cart is validated before the store is touched; a failure partway through
// the line inserts rolls back the header as well, so no partial order is ever
// observable.
func (s *Store) CreateOrder(ctx context.Context, customerID int64, cart []contractx.CartItem) (int64, error) {
	if customerID <= 0 {
		return 0, fmt.Errorf("%w: customer id must be positive", contractx.ErrInvalidArgument)
	}
	if len(cart) == 0 {
		return 0, fmt.Errorf("%w: cart must contain at least one item", contractx.ErrInvalidArgument)
	}

	total := 0.0
	for i, item := range cart {
		if err := validateCartItem(item); err != nil {
			return 0, fmt.Errorf("%w: cart item %d: %v", contractx.ErrInvalidArgument, i, err)
		}
		total += item.UnitPrice * float64(item.Quantity)
	}

	invoice := &Invoice{
		CustomerID:  customerID,
		InvoiceDate: s.now().UTC(),
		Total:       total,
	}

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(invoice).Exec(ctx); err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}

		lines := make([]InvoiceLine, 0, len(cart))
		for _, item := range cart {
			lines = append(lines, InvoiceLine{
				InvoiceID: invoice.InvoiceID,
				TrackID:   item.TrackID,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
			})
		}
		if _, err := tx.NewInsert().Model(&lines).Exec(ctx); err != nil {
			return fmt.Errorf("insert invoice lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: create order: %v", contractx.ErrStore, err)
	}

	return invoice.InvoiceID, nil
}

// validateCartItem treats zero values as missing fields: a typed record has
// no way to distinguish "absent" from zero, and no legal Chinook order line
// carries a zero track id or quantity.
func validateCartItem(item contractx.CartItem) error {
	if item.TrackID <= 0 {
		return fmt.Errorf("track_id is missing or not positive (got %d)", item.TrackID)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity is missing or not positive (got %d)", item.Quantity)
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("unit_price must not be negative (got %v)", item.UnitPrice)
	}
	return nil
}
