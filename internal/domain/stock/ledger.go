package stock

import (
	"context"
	"fmt"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/tx"
	"stockroom/pkg/logger"
)

// Ledger is the only component allowed to change stock quantities.
type Ledger struct {
	repo      Repository
	txManager tx.Manager
}

// NewLedger creates a stock Ledger.
func NewLedger(repo Repository, txManager tx.Manager) *Ledger {
	return &Ledger{repo: repo, txManager: txManager}
}

// GetQuantity returns the on-hand quantity for warehouse+sku.
// A missing row reads as zero, never as not-found.
func (l *Ledger) GetQuantity(ctx context.Context, warehouseID, sku int64) (int64, error) {
	line, err := l.repo.GetLine(ctx, warehouseID, sku)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get stock line: %w", err)
	}
	return line.Quantity, nil
}

// Debit removes qty units from a warehouse. The row is read under a
// FOR UPDATE lock so concurrent debits of the same pair serialize; a
// failed debit leaves the quantity unchanged.
func (l *Ledger) Debit(ctx context.Context, warehouseID, sku, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("debit quantity must be positive").
			WithDetail("quantity", qty)
	}

	return l.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		available := int64(0)
		line, err := l.repo.GetLineForUpdate(ctx, warehouseID, sku)
		switch {
		case err == nil:
			available = line.Quantity
		case apperror.IsNotFound(err):
			// absent row reads as zero
		default:
			return fmt.Errorf("lock stock line: %w", err)
		}

		if available < qty {
			return apperror.NewInsufficientStock(warehouseID, sku, qty, available)
		}

		if err := l.repo.SetQuantity(ctx, warehouseID, sku, available-qty); err != nil {
			return fmt.Errorf("set stock quantity: %w", err)
		}
		return nil
	})
}

// Credit adds qty units to a warehouse, creating the row when absent.
func (l *Ledger) Credit(ctx context.Context, warehouseID, sku, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("credit quantity must be positive").
			WithDetail("quantity", qty)
	}

	return l.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := l.repo.UpsertAdd(ctx, warehouseID, sku, qty); err != nil {
			return fmt.Errorf("credit stock: %w", err)
		}
		return nil
	})
}

// AttachItem registers a SKU in a warehouse with zero quantity so it
// shows up in warehouse listings before the first receipt.
func (l *Ledger) AttachItem(ctx context.Context, warehouseID, sku int64) error {
	if err := l.repo.Attach(ctx, warehouseID, sku); err != nil {
		if apperror.IsCode(err, apperror.CodeDuplicate) {
			return apperror.NewConflict("item is already attached to warehouse").
				WithDetail("warehouseId", warehouseID).
				WithDetail("sku", sku)
		}
		return fmt.Errorf("attach item: %w", err)
	}

	logger.Info(ctx, "attached item to warehouse",
		"warehouse_id", warehouseID,
		"sku", sku,
	)
	return nil
}

// DetachItem removes a SKU's ledger row from a warehouse. Rows with
// remaining quantity cannot be detached.
func (l *Ledger) DetachItem(ctx context.Context, warehouseID, sku int64) error {
	return l.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		line, err := l.repo.GetLineForUpdate(ctx, warehouseID, sku)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("stock line", fmt.Sprintf("%d/%d", warehouseID, sku))
			}
			return fmt.Errorf("lock stock line: %w", err)
		}

		if line.Quantity != 0 {
			return apperror.NewConflict("cannot detach item with remaining stock").
				WithDetail("warehouseId", warehouseID).
				WithDetail("sku", sku).
				WithDetail("quantity", line.Quantity)
		}

		if err := l.repo.Remove(ctx, warehouseID, sku); err != nil {
			return fmt.Errorf("detach item: %w", err)
		}
		return nil
	})
}

// WarehouseStock returns all ledger rows of a warehouse.
func (l *Ledger) WarehouseStock(ctx context.Context, warehouseID int64) ([]Line, error) {
	return l.repo.LinesByWarehouse(ctx, warehouseID)
}

// TotalAvailability sums a SKU's quantity across all warehouses.
func (l *Ledger) TotalAvailability(ctx context.Context, sku int64) (int64, error) {
	lines, err := l.repo.LinesBySKU(ctx, sku)
	if err != nil {
		return 0, fmt.Errorf("get stock lines: %w", err)
	}

	var total int64
	for _, line := range lines {
		total += line.Quantity
	}
	return total, nil
}
