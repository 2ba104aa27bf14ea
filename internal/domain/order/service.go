package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/tx"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/cart"
	"stockroom/internal/domain/catalogs/item"
	"stockroom/pkg/logger"
)

// SnapshotReader is the cart surface the materializer needs.
type SnapshotReader interface {
	Snapshot(ctx context.Context, cartID string) (cart.Snapshot, error)
	UnmaterializedCartIDs(ctx context.Context) ([]string, error)
}

// Recorder persists fulfillment events for audit.
// Implemented by the postgres audit trail; may be nil.
type Recorder interface {
	RecordFulfillment(ctx context.Context, orderID int64) error
}

// Service materializes carts into orders and runs the order state
// machine.
type Service struct {
	repo      Repository
	carts     SnapshotReader
	items     item.Repository
	txManager tx.Manager
	recorder  Recorder
}

// NewService creates an order Service.
func NewService(repo Repository, carts SnapshotReader, items item.Repository, txManager tx.Manager, recorder Recorder) *Service {
	return &Service{
		repo:      repo,
		carts:     carts,
		items:     items,
		txManager: txManager,
		recorder:  recorder,
	}
}

// GetByID retrieves an order with its items.
func (s *Service) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("order", id)
		}
		return nil, err
	}
	return o, nil
}

// GetByCartID retrieves the order a cart materialized into.
func (s *Service) GetByCartID(ctx context.Context, cartID string) (*Order, error) {
	o, err := s.repo.GetByCartID(ctx, cartID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("order", cartID)
		}
		return nil, err
	}
	return o, nil
}

// List retrieves orders by filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.List(ctx, filter)
}

// MaterializeFromCart turns a cart into a pending order. The operation
// is idempotent per cart: the first call creates the order, every later
// call returns that same order unchanged.
func (s *Service) MaterializeFromCart(ctx context.Context, cartID string) (*Order, error) {
	existing, err := s.repo.GetByCartID(ctx, cartID)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("get order by cart: %w", err)
	}

	snap, err := s.carts.Snapshot(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if snap.IsEmpty() {
		return nil, apperror.NewValidation("cannot create an order from an empty cart").
			WithDetail("cartId", cartID)
	}

	items, total, err := s.priceLines(ctx, snap.Lines)
	if err != nil {
		return nil, err
	}

	o := &Order{
		CustomerID: snap.CustomerID,
		CartID:     snap.CartID,
		Status:     StatusPending,
		Total:      total,
		Items:      items,
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, o)
	})
	if err != nil {
		// A concurrent materialization of the same cart hit the unique
		// index first; its order is the canonical one.
		if apperror.IsCode(err, apperror.CodeDuplicate) {
			return s.GetByCartID(ctx, cartID)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	logger.Info(ctx, "order materialized",
		"order_id", o.ID,
		"cart_id", cartID,
		"total", o.Total.String(),
	)
	return o, nil
}

// Fulfill flips a pending order to fulfilled. The transition is one
// way: fulfilling an already-fulfilled order fails. The status check
// and the flip share one transaction over a row-locked read, so of two
// concurrent fulfillments exactly one succeeds.
func (s *Service) Fulfill(ctx context.Context, orderID int64) (bool, error) {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		o, err := s.repo.GetForUpdate(ctx, orderID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("order", orderID)
			}
			return err
		}
		if o.IsFulfilled() {
			return apperror.NewAlreadyFulfilled(orderID)
		}
		return s.repo.UpdateStatus(ctx, orderID, StatusFulfilled)
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return false, err
		}
		return false, fmt.Errorf("fulfill order: %w", err)
	}

	logger.Info(ctx, "order fulfilled", "order_id", orderID)

	if s.recorder != nil {
		if err := s.recorder.RecordFulfillment(ctx, orderID); err != nil {
			logger.Warn(ctx, "fulfillment audit record failed", "error", err)
		}
	}
	return true, nil
}

// UpdateFromCart refreshes a pending order's lines from its cart,
// re-capturing today's prices. Fulfilled orders are immutable.
func (s *Service) UpdateFromCart(ctx context.Context, orderID int64) (*Order, error) {
	o, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsFulfilled() {
		return nil, apperror.NewConflict("fulfilled orders cannot be updated").
			WithDetail("orderId", orderID)
	}

	snap, err := s.carts.Snapshot(ctx, o.CartID)
	if err != nil {
		return nil, err
	}
	if snap.IsEmpty() {
		return nil, apperror.NewValidation("cannot update an order from an empty cart").
			WithDetail("cartId", o.CartID)
	}

	items, total, err := s.priceLines(ctx, snap.Lines)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.Total = total

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.ReplaceItems(ctx, o)
	})
	if err != nil {
		return nil, fmt.Errorf("update order from cart: %w", err)
	}
	return o, nil
}

// SyncAllUnmaterializedCarts materializes every non-empty cart that
// has no order yet. Per-cart failures are logged and aggregated; the
// sweep keeps going. Safe to re-run at any time: a clean pass over
// carts that all materialize (or that are empty) returns nil.
func (s *Service) SyncAllUnmaterializedCarts(ctx context.Context) error {
	ids, err := s.carts.UnmaterializedCartIDs(ctx)
	if err != nil {
		return fmt.Errorf("list unmaterialized carts: %w", err)
	}

	var errs error
	created := 0
	for _, cartID := range ids {
		if _, err := s.MaterializeFromCart(ctx, cartID); err != nil {
			logger.Warn(ctx, "cart sync failed", "cart_id", cartID, "error", err)
			errs = multierr.Append(errs, fmt.Errorf("cart %s: %w", cartID, err))
			continue
		}
		created++
	}

	logger.Info(ctx, "cart sweep finished",
		"scanned", len(ids),
		"materialized", created,
		"failed", len(multierr.Errors(errs)),
	)
	return errs
}

func (s *Service) priceLines(ctx context.Context, lines []cart.Line) ([]Item, types.Money, error) {
	items := make([]Item, 0, len(lines))
	total := types.Zero()

	for _, line := range lines {
		it, err := s.items.GetActive(ctx, line.SKU)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, types.Zero(), apperror.NewNotFound("item", line.SKU)
			}
			return nil, types.Zero(), err
		}

		items = append(items, Item{
			SKU:       line.SKU,
			Quantity:  line.Quantity,
			UnitPrice: it.ListPrice,
		})
		total = total.Add(it.ListPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}

	return items, types.RoundMoney(total), nil
}
