// Package transfer moves stock between warehouses atomically.
package transfer

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain/catalogs/warehouse"
	"stockroom/internal/domain/stock"
	"stockroom/pkg/logger"
)

// Movement describes a completed transfer for the audit trail.
type Movement struct {
	SourceID   int64     `json:"sourceId"`
	TargetID   int64     `json:"targetId"`
	SKU        int64     `json:"sku"`
	Quantity   int64     `json:"quantity"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Recorder persists transfer movements for audit.
// Implemented by the postgres audit trail.
type Recorder interface {
	RecordTransfer(ctx context.Context, m Movement) error
}

// Coordinator orchestrates stock transfers between warehouses.
// It owns no stock arithmetic: both legs go through the ledger.
type Coordinator struct {
	ledger     *stock.Ledger
	warehouses warehouse.Repository
	txManager  tx.Manager
	recorder   Recorder
}

// NewCoordinator creates a transfer Coordinator. The recorder may be
// nil when audit is disabled.
func NewCoordinator(ledger *stock.Ledger, warehouses warehouse.Repository, txManager tx.Manager, recorder Recorder) *Coordinator {
	return &Coordinator{
		ledger:     ledger,
		warehouses: warehouses,
		txManager:  txManager,
		recorder:   recorder,
	}
}

// Transfer moves qty units of a SKU from source to target in one
// transaction. Either the debit and the credit both land or neither
// does. A soft-deleted warehouse counts as missing.
func (c *Coordinator) Transfer(ctx context.Context, sourceID, targetID, sku, qty int64) error {
	if sourceID == targetID {
		return apperror.NewValidation("source and target warehouses must differ").
			WithDetail("warehouseId", sourceID)
	}
	if qty <= 0 {
		return apperror.NewValidation("transfer quantity must be positive").
			WithDetail("quantity", qty)
	}

	// Warehouse resolution shares the transaction with both legs, so a
	// warehouse deleted mid-flight cannot slip into the transfer.
	err := c.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, id := range []int64{sourceID, targetID} {
			ok, err := c.warehouses.Exists(ctx, id)
			if err != nil {
				return fmt.Errorf("check warehouse %d: %w", id, err)
			}
			if !ok {
				return apperror.NewNotFound("warehouse", id)
			}
		}

		if err := c.ledger.Debit(ctx, sourceID, sku, qty); err != nil {
			return err
		}
		return c.ledger.Credit(ctx, targetID, sku, qty)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock transferred",
		"source_id", sourceID,
		"target_id", targetID,
		"sku", sku,
		"quantity", qty,
	)

	if c.recorder != nil {
		m := Movement{
			SourceID:   sourceID,
			TargetID:   targetID,
			SKU:        sku,
			Quantity:   qty,
			OccurredAt: time.Now().UTC(),
		}
		// Audit runs after commit; a recording failure must not undo
		// a transfer that already happened.
		if err := c.recorder.RecordTransfer(ctx, m); err != nil {
			logger.Warn(ctx, "transfer audit record failed", "error", err)
		}
	}

	return nil
}
