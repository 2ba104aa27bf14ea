package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/tx"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/catalogs/item"
	"stockroom/pkg/logger"
)

// Service provides cart business logic.
type Service struct {
	repo      Repository
	items     item.Repository
	txManager tx.Manager
}

// NewService creates a cart Service.
func NewService(repo Repository, items item.Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, items: items, txManager: txManager}
}

// Create opens an empty cart for a customer.
func (s *Service) Create(ctx context.Context, customerID int64) (*Cart, error) {
	if customerID <= 0 {
		return nil, apperror.NewValidation("customer id is required")
	}

	c := NewCart(customerID)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	logger.Info(ctx, "cart created", "cart_id", c.ID, "customer_id", customerID)
	return c, nil
}

// GetByID retrieves a cart with its lines.
func (s *Service) GetByID(ctx context.Context, cartID string) (*Cart, error) {
	c, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("cart", cartID)
		}
		return nil, err
	}
	return c, nil
}

// GetByCustomer retrieves a customer's carts.
func (s *Service) GetByCustomer(ctx context.Context, customerID int64) ([]*Cart, error) {
	return s.repo.GetByCustomer(ctx, customerID)
}

// AddItem puts qty units of a SKU into the cart, merging with an
// existing line. Only active, live items can be added.
func (s *Service) AddItem(ctx context.Context, cartID string, sku, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", qty)
	}

	if _, err := s.items.GetActive(ctx, sku); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("item", sku)
		}
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.GetByID(ctx, cartID)
		if err != nil {
			return err
		}

		current := lineQuantity(c, sku)
		if err := s.repo.UpsertLine(ctx, cartID, sku, current+qty); err != nil {
			return fmt.Errorf("upsert cart line: %w", err)
		}
		return s.repo.Touch(ctx, cartID)
	})
}

// RemoveItem takes qty units of a SKU out of the cart. When the line
// drops to zero or below it is removed entirely.
func (s *Service) RemoveItem(ctx context.Context, cartID string, sku, qty int64) error {
	if qty <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", qty)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.GetByID(ctx, cartID)
		if err != nil {
			return err
		}

		current := lineQuantity(c, sku)
		if current == 0 {
			return apperror.NewNotFound("cart line", sku)
		}

		remaining := current - qty
		if remaining <= 0 {
			if err := s.repo.DeleteLine(ctx, cartID, sku); err != nil {
				return fmt.Errorf("delete cart line: %w", err)
			}
		} else {
			if err := s.repo.UpsertLine(ctx, cartID, sku, remaining); err != nil {
				return fmt.Errorf("upsert cart line: %w", err)
			}
		}
		return s.repo.Touch(ctx, cartID)
	})
}

// Clear removes every line from the cart.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetByID(ctx, cartID); err != nil {
			return err
		}
		if err := s.repo.ClearLines(ctx, cartID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return s.repo.Touch(ctx, cartID)
	})
}

// Delete removes the cart entirely.
func (s *Service) Delete(ctx context.Context, cartID string) error {
	if _, err := s.GetByID(ctx, cartID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, cartID)
}

// Total prices the cart's current lines at today's list prices.
// Inactive or deleted items price at zero.
func (s *Service) Total(ctx context.Context, cartID string) (types.Money, error) {
	c, err := s.GetByID(ctx, cartID)
	if err != nil {
		return types.Zero(), err
	}

	total := types.Zero()
	for _, line := range c.Items {
		it, err := s.items.GetActive(ctx, line.SKU)
		if err != nil {
			if apperror.IsNotFound(err) {
				continue
			}
			return types.Zero(), err
		}
		total = total.Add(it.ListPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return types.RoundMoney(total), nil
}

// Snapshot returns the point-in-time read used for materialization.
func (s *Service) Snapshot(ctx context.Context, cartID string) (Snapshot, error) {
	c, err := s.GetByID(ctx, cartID)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		CartID:     c.ID,
		CustomerID: c.CustomerID,
		Lines:      make([]Line, 0, len(c.Items)),
	}
	for _, line := range c.Items {
		snap.Lines = append(snap.Lines, Line{SKU: line.SKU, Quantity: line.Quantity})
	}
	return snap, nil
}

// UnmaterializedCartIDs lists non-empty carts that no order refers to
// yet.
func (s *Service) UnmaterializedCartIDs(ctx context.Context) ([]string, error) {
	return s.repo.UnmaterializedCartIDs(ctx)
}

func lineQuantity(c *Cart, sku int64) int64 {
	for _, line := range c.Items {
		if line.SKU == sku {
			return line.Quantity
		}
	}
	return 0
}
