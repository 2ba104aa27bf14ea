// Package app is the in-process boundary of the core. Every public
// operation is exposed as a method returning a result.Result envelope,
// so callers never see raw domain errors.
package app

import (
	"context"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/result"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/cart"
	"stockroom/internal/domain/catalogs/warehouse"
	"stockroom/internal/domain/order"
	"stockroom/internal/domain/packages"
	"stockroom/internal/domain/stock"
	"stockroom/internal/domain/transfer"
	"stockroom/pkg/logger"
)

// Lifecycle is the soft-delete surface every catalog service exposes.
type Lifecycle interface {
	Delete(ctx context.Context, id int64) error
	Undelete(ctx context.Context, id int64) error
}

// Service is the application facade over the domain services.
type Service struct {
	ledger     *stock.Ledger
	transfers  *transfer.Coordinator
	carts      *cart.Service
	orders     *order.Service
	packages   *packages.Service
	warehouses *warehouse.Service

	// lifecycles maps aggregate kind to its soft-delete surface.
	lifecycles map[string]Lifecycle
}

// Config wires the facade.
type Config struct {
	Ledger     *stock.Ledger
	Transfers  *transfer.Coordinator
	Carts      *cart.Service
	Orders     *order.Service
	Packages   *packages.Service
	Warehouses *warehouse.Service
	Lifecycles map[string]Lifecycle
}

// New creates the facade.
func New(cfg Config) *Service {
	return &Service{
		ledger:     cfg.Ledger,
		transfers:  cfg.Transfers,
		carts:      cfg.Carts,
		orders:     cfg.Orders,
		packages:   cfg.Packages,
		warehouses: cfg.Warehouses,
		lifecycles: cfg.Lifecycles,
	}
}

// --- Stock ---

// StockQuantity reads the on-hand quantity for warehouse+sku.
func (s *Service) StockQuantity(ctx context.Context, warehouseID, sku int64) result.Result[int64] {
	qty, err := s.ledger.GetQuantity(ctx, warehouseID, sku)
	return result.Of(qty, err)
}

// WarehouseStock lists all stock lines of a warehouse.
func (s *Service) WarehouseStock(ctx context.Context, warehouseID int64) result.Result[[]stock.Line] {
	lines, err := s.ledger.WarehouseStock(ctx, warehouseID)
	return result.Of(lines, err)
}

// TotalAvailability sums a SKU across warehouses.
func (s *Service) TotalAvailability(ctx context.Context, sku int64) result.Result[int64] {
	total, err := s.ledger.TotalAvailability(ctx, sku)
	return result.Of(total, err)
}

// AttachItem registers a SKU in a warehouse at zero quantity.
func (s *Service) AttachItem(ctx context.Context, warehouseID, sku int64) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.ledger.AttachItem(ctx, warehouseID, sku))
}

// DetachItem removes a zero-quantity SKU from a warehouse.
func (s *Service) DetachItem(ctx context.Context, warehouseID, sku int64) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.ledger.DetachItem(ctx, warehouseID, sku))
}

// CreditStock receives qty units into a warehouse.
func (s *Service) CreditStock(ctx context.Context, warehouseID, sku, qty int64) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.ledger.Credit(ctx, warehouseID, sku, qty))
}

// DebitStock issues qty units out of a warehouse.
func (s *Service) DebitStock(ctx context.Context, warehouseID, sku, qty int64) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.ledger.Debit(ctx, warehouseID, sku, qty))
}

// TransferStock moves stock between warehouses atomically.
func (s *Service) TransferStock(ctx context.Context, sourceID, targetID, sku, qty int64) result.Result[struct{}] {
	err := s.transfers.Transfer(ctx, sourceID, targetID, sku, qty)
	if err != nil && !apperror.IsAppError(err) {
		logger.Error(ctx, "transfer failed", "error", err)
	}
	return result.OfNoContent[struct{}](err)
}

// WarehouseUtilization reports on-hand quantity against advisory capacity.
func (s *Service) WarehouseUtilization(ctx context.Context, warehouseID int64) result.Result[warehouse.Utilization] {
	u, err := s.warehouses.Utilization(ctx, warehouseID)
	return result.Of(u, err)
}

// --- Carts ---

// CreateCart opens an empty cart for a customer.
func (s *Service) CreateCart(ctx context.Context, customerID int64) result.Result[*cart.Cart] {
	c, err := s.carts.Create(ctx, customerID)
	return result.Of(c, err)
}

// GetCart retrieves a cart with its lines.
func (s *Service) GetCart(ctx context.Context, cartID string) result.Result[*cart.Cart] {
	c, err := s.carts.GetByID(ctx, cartID)
	return result.Of(c, err)
}

// CartsByCustomer lists a customer's carts.
func (s *Service) CartsByCustomer(ctx context.Context, customerID int64) result.Result[[]*cart.Cart] {
	cs, err := s.carts.GetByCustomer(ctx, customerID)
	return result.Of(cs, err)
}

// AddCartItem merges qty units of a SKU into the cart.
func (s *Service) AddCartItem(ctx context.Context, cartID string, sku, qty int64) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.carts.AddItem(ctx, cartID, sku, qty))
}

// RemoveCartItem takes qty units of a SKU out of the cart.
func (s *Service) RemoveCartItem(ctx context.Context, cartID string, sku, qty int64) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.carts.RemoveItem(ctx, cartID, sku, qty))
}

// ClearCart removes all lines.
func (s *Service) ClearCart(ctx context.Context, cartID string) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.carts.Clear(ctx, cartID))
}

// DeleteCart removes the cart entirely.
func (s *Service) DeleteCart(ctx context.Context, cartID string) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.carts.Delete(ctx, cartID))
}

// CartTotal prices the cart at current list prices.
func (s *Service) CartTotal(ctx context.Context, cartID string) result.Result[types.Money] {
	total, err := s.carts.Total(ctx, cartID)
	return result.Of(total, err)
}

// CartSnapshot returns the point-in-time cart read.
func (s *Service) CartSnapshot(ctx context.Context, cartID string) result.Result[cart.Snapshot] {
	snap, err := s.carts.Snapshot(ctx, cartID)
	return result.Of(snap, err)
}

// --- Orders ---

// CreateOrderFromCart materializes a cart into a pending order.
// Idempotent per cart.
func (s *Service) CreateOrderFromCart(ctx context.Context, cartID string) result.Result[*order.Order] {
	o, err := s.orders.MaterializeFromCart(ctx, cartID)
	return result.Of(o, err)
}

// GetOrder retrieves an order with its items.
func (s *Service) GetOrder(ctx context.Context, orderID int64) result.Result[*order.Order] {
	o, err := s.orders.GetByID(ctx, orderID)
	return result.Of(o, err)
}

// OrderByCart retrieves the order a cart materialized into.
func (s *Service) OrderByCart(ctx context.Context, cartID string) result.Result[*order.Order] {
	o, err := s.orders.GetByCartID(ctx, cartID)
	return result.Of(o, err)
}

// ListOrders lists orders by filter.
func (s *Service) ListOrders(ctx context.Context, filter order.ListFilter) result.Result[[]*order.Order] {
	os, err := s.orders.List(ctx, filter)
	return result.Of(os, err)
}

// FulfillOrder flips a pending order to fulfilled.
func (s *Service) FulfillOrder(ctx context.Context, orderID int64) result.Result[bool] {
	ok, err := s.orders.Fulfill(ctx, orderID)
	return result.Of(ok, err)
}

// UpdateOrderFromCart re-captures a pending order from its cart.
func (s *Service) UpdateOrderFromCart(ctx context.Context, orderID int64) result.Result[*order.Order] {
	o, err := s.orders.UpdateFromCart(ctx, orderID)
	return result.Of(o, err)
}

// SyncOrders materializes every cart that has no order yet.
func (s *Service) SyncOrders(ctx context.Context) result.Result[struct{}] {
	return result.OfNoContent[struct{}](s.orders.SyncAllUnmaterializedCarts(ctx))
}

// --- Packages ---

// PackageContract runs the contract calculator for a package.
func (s *Service) PackageContract(ctx context.Context, packageID int64) result.Result[packages.ContractSummary] {
	summary, err := s.packages.Contract(ctx, packageID)
	return result.Of(summary, err)
}

// PackagesByCustomer lists a customer's packages.
func (s *Service) PackagesByCustomer(ctx context.Context, customerID int64) result.Result[[]*packages.Package] {
	ps, err := s.packages.GetByCustomer(ctx, customerID)
	return result.Of(ps, err)
}

// --- Lifecycle ---

// DeleteEntity soft-deletes an aggregate by kind and id.
func (s *Service) DeleteEntity(ctx context.Context, kind string, id int64) result.Result[struct{}] {
	lc, ok := s.lifecycles[kind]
	if !ok {
		return result.FromError[struct{}](apperror.NewNotFound("entity kind", kind))
	}
	return result.OfNoContent[struct{}](lc.Delete(ctx, id))
}

// UndeleteEntity restores a soft-deleted aggregate.
func (s *Service) UndeleteEntity(ctx context.Context, kind string, id int64) result.Result[struct{}] {
	lc, ok := s.lifecycles[kind]
	if !ok {
		return result.FromError[struct{}](apperror.NewNotFound("entity kind", kind))
	}
	return result.OfNoContent[struct{}](lc.Undelete(ctx, id))
}
