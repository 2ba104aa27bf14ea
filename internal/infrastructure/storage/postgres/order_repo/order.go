package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain/order"
	"stockroom/internal/infrastructure/storage/postgres"
)

// OrderRepo implements order.Repository over orders and order_items.
// orders.cart_id carries a unique index: the database is the final
// arbiter of one-order-per-cart.
type OrderRepo struct {
	txm *postgres.TxManager
}

var _ order.Repository = (*OrderRepo)(nil)

// NewOrderRepo creates the order repository.
func NewOrderRepo(txm *postgres.TxManager) *OrderRepo {
	return &OrderRepo{txm: txm}
}

func (r *OrderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the order and its items, assigning the id.
func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	q := r.builder().
		Insert("orders").
		Columns("customer_id", "cart_id", "status", "total", "created_at", "updated_at").
		Values(o.CustomerID, o.CartID, o.Status, o.Total, squirrel.Expr("now()"), squirrel.Expr("now()")).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&o.ID); err != nil {
		return postgres.TranslateConstraintErr(err, "order", "insert")
	}

	return r.insertItems(ctx, o)
}

// GetByID retrieves an order with items.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, fmt.Sprintf("%d", id))
}

// GetByCartID retrieves the order materialized from a cart.
func (r *OrderRepo) GetByCartID(ctx context.Context, cartID string) (*order.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"cart_id": cartID}, cartID)
}

func (r *OrderRepo) getOne(ctx context.Context, cond squirrel.Eq, key string) (*order.Order, error) {
	q := r.builder().
		Select("id", "customer_id", "cart_id", "status", "total", "created_at", "updated_at").
		From("orders").
		Where(cond)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	o := &order.Order{}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("order", key)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetForUpdate retrieves an order row-locked for a status transition.
// Items are not loaded; a concurrent fulfillment blocks here until the
// first transaction commits.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	q := r.builder().
		Select("id", "customer_id", "cart_id", "status", "total", "created_at", "updated_at").
		From("orders").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	o := &order.Order{}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("order", id)
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// UpdateStatus persists a status flip.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	q := r.builder().
		Update("orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("order", id)
	}
	return nil
}

// ReplaceItems swaps the order's items and total.
func (r *OrderRepo) ReplaceItems(ctx context.Context, o *order.Order) error {
	delQ := r.builder().
		Delete("order_items").
		Where(squirrel.Eq{"order_id": o.ID})

	sql, args, err := delQ.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}

	if err := r.insertItems(ctx, o); err != nil {
		return err
	}

	updQ := r.builder().
		Update("orders").
		Set("total", o.Total).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": o.ID})

	sql, args, err = updQ.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	return nil
}

// List retrieves orders without item details.
func (r *OrderRepo) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	q := r.builder().
		Select("id", "customer_id", "cart_id", "status", "total", "created_at", "updated_at").
		From("orders").
		OrderBy("created_at DESC")

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var orders []*order.Order
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &orders, sql, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepo) insertItems(ctx context.Context, o *order.Order) error {
	if len(o.Items) == 0 {
		return nil
	}

	q := r.builder().
		Insert("order_items").
		Columns("order_id", "sku", "quantity", "unit_price")
	for _, it := range o.Items {
		q = q.Values(o.ID, it.SKU, it.Quantity, it.UnitPrice)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

func (r *OrderRepo) loadItems(ctx context.Context, o *order.Order) error {
	q := r.builder().
		Select("order_id", "sku", "quantity", "unit_price").
		From("order_items").
		Where(squirrel.Eq{"order_id": o.ID}).
		OrderBy("sku")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build items query: %w", err)
	}

	o.Items = o.Items[:0]
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &o.Items, sql, args...); err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	return nil
}
