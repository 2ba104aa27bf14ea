// Package order_repo provides PostgreSQL repositories for carts and
// orders.
package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain/cart"
	"stockroom/internal/infrastructure/storage/postgres"
)

// CartRepo implements cart.Repository over carts and cart_items.
type CartRepo struct {
	txm *postgres.TxManager
}

var _ cart.Repository = (*CartRepo)(nil)

// NewCartRepo creates the cart repository.
func NewCartRepo(txm *postgres.TxManager) *CartRepo {
	return &CartRepo{txm: txm}
}

func (r *CartRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts an empty cart.
func (r *CartRepo) Create(ctx context.Context, c *cart.Cart) error {
	q := r.builder().
		Insert("carts").
		Columns("id", "customer_id", "created_at", "updated_at").
		Values(c.ID, c.CustomerID, c.CreatedAt, c.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateConstraintErr(err, "cart", "insert")
	}
	return nil
}

// GetByID retrieves a cart with its lines.
func (r *CartRepo) GetByID(ctx context.Context, cartID string) (*cart.Cart, error) {
	q := r.builder().
		Select("id", "customer_id", "created_at", "updated_at").
		From("carts").
		Where(squirrel.Eq{"id": cartID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	c := &cart.Cart{}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("cart", cartID)
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	if err := r.loadItems(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByCustomer retrieves a customer's carts, newest first.
func (r *CartRepo) GetByCustomer(ctx context.Context, customerID int64) ([]*cart.Cart, error) {
	q := r.builder().
		Select("id", "customer_id", "created_at", "updated_at").
		From("carts").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var cs []*cart.Cart
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &cs, sql, args...); err != nil {
		return nil, fmt.Errorf("carts by customer: %w", err)
	}

	for _, c := range cs {
		if err := r.loadItems(ctx, c); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// UpsertLine creates or replaces the line for (cartID, sku).
func (r *CartRepo) UpsertLine(ctx context.Context, cartID string, sku, quantity int64) error {
	sql := `
		INSERT INTO cart_items (cart_id, sku, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, sku)
		DO UPDATE SET quantity = EXCLUDED.quantity`

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, cartID, sku, quantity); err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

// DeleteLine removes the line for (cartID, sku).
func (r *CartRepo) DeleteLine(ctx context.Context, cartID string, sku int64) error {
	q := r.builder().
		Delete("cart_items").
		Where(squirrel.Eq{"cart_id": cartID, "sku": sku})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

// ClearLines removes all lines of a cart.
func (r *CartRepo) ClearLines(ctx context.Context, cartID string) error {
	q := r.builder().
		Delete("cart_items").
		Where(squirrel.Eq{"cart_id": cartID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Delete removes the cart and its lines.
func (r *CartRepo) Delete(ctx context.Context, cartID string) error {
	if err := r.ClearLines(ctx, cartID); err != nil {
		return err
	}

	q := r.builder().
		Delete("carts").
		Where(squirrel.Eq{"id": cartID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("cart", cartID)
	}
	return nil
}

// Touch stamps the cart's updated_at.
func (r *CartRepo) Touch(ctx context.Context, cartID string) error {
	q := r.builder().
		Update("carts").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": cartID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("touch cart: %w", err)
	}
	return nil
}

// UnmaterializedCartIDs returns ids of non-empty carts no order refers
// to. Empty carts are skipped: they cannot materialize, and listing
// them would keep every sweep failing until the cart gets a line.
func (r *CartRepo) UnmaterializedCartIDs(ctx context.Context) ([]string, error) {
	sql := `
		SELECT c.id
		FROM carts c
		LEFT JOIN orders o ON o.cart_id = c.id
		WHERE o.id IS NULL
		  AND EXISTS (SELECT 1 FROM cart_items i WHERE i.cart_id = c.id)
		ORDER BY c.created_at`

	rows, err := r.txm.GetQuerier(ctx).Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("unmaterialized carts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan cart id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *CartRepo) loadItems(ctx context.Context, c *cart.Cart) error {
	q := r.builder().
		Select("cart_id", "sku", "quantity").
		From("cart_items").
		Where(squirrel.Eq{"cart_id": c.ID}).
		OrderBy("sku")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build items query: %w", err)
	}

	c.Items = c.Items[:0]
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &c.Items, sql, args...); err != nil {
		return fmt.Errorf("load cart items: %w", err)
	}
	return nil
}
