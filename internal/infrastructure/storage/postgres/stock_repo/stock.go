// Package stock_repo provides the PostgreSQL stock ledger repository.
package stock_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain/stock"
	"stockroom/internal/infrastructure/storage/postgres"
)

// StockRepo implements stock.Repository over the stock_lines table.
type StockRepo struct {
	txm *postgres.TxManager
}

var _ stock.Repository = (*StockRepo)(nil)

// NewStockRepo creates the stock repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{txm: txm}
}

func (r *StockRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetLine returns the ledger row for warehouse+sku.
func (r *StockRepo) GetLine(ctx context.Context, warehouseID, sku int64) (stock.Line, error) {
	return r.getLine(ctx, warehouseID, sku, false)
}

// GetLineForUpdate returns the row with a FOR UPDATE lock.
func (r *StockRepo) GetLineForUpdate(ctx context.Context, warehouseID, sku int64) (stock.Line, error) {
	return r.getLine(ctx, warehouseID, sku, true)
}

func (r *StockRepo) getLine(ctx context.Context, warehouseID, sku int64, forUpdate bool) (stock.Line, error) {
	var line stock.Line

	q := r.builder().
		Select("warehouse_id", "sku", "quantity", "updated_at").
		From("stock_lines").
		Where(squirrel.Eq{"warehouse_id": warehouseID, "sku": sku})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return line, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &line, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return line, apperror.NewNotFound("stock line", fmt.Sprintf("%d/%d", warehouseID, sku))
		}
		return line, fmt.Errorf("get stock line: %w", err)
	}

	return line, nil
}

// SetQuantity persists the new quantity for an existing row.
func (r *StockRepo) SetQuantity(ctx context.Context, warehouseID, sku, quantity int64) error {
	q := r.builder().
		Update("stock_lines").
		Set("quantity", quantity).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"warehouse_id": warehouseID, "sku": sku})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("stock line", fmt.Sprintf("%d/%d", warehouseID, sku))
	}
	return nil
}

// UpsertAdd creates the row at zero if absent, then adds delta.
func (r *StockRepo) UpsertAdd(ctx context.Context, warehouseID, sku, delta int64) error {
	sql := `
		INSERT INTO stock_lines (warehouse_id, sku, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (warehouse_id, sku)
		DO UPDATE SET quantity = stock_lines.quantity + EXCLUDED.quantity,
		              updated_at = now()`

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, warehouseID, sku, delta); err != nil {
		return fmt.Errorf("upsert stock line: %w", err)
	}
	return nil
}

// Attach registers a SKU in a warehouse with zero quantity.
func (r *StockRepo) Attach(ctx context.Context, warehouseID, sku int64) error {
	q := r.builder().
		Insert("stock_lines").
		Columns("warehouse_id", "sku", "quantity", "updated_at").
		Values(warehouseID, sku, 0, squirrel.Expr("now()"))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateConstraintErr(err, "stock line", "insert")
	}
	return nil
}

// Remove deletes the ledger row.
func (r *StockRepo) Remove(ctx context.Context, warehouseID, sku int64) error {
	q := r.builder().
		Delete("stock_lines").
		Where(squirrel.Eq{"warehouse_id": warehouseID, "sku": sku})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("remove stock line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("stock line", fmt.Sprintf("%d/%d", warehouseID, sku))
	}
	return nil
}

// LinesByWarehouse returns all rows of a warehouse.
func (r *StockRepo) LinesByWarehouse(ctx context.Context, warehouseID int64) ([]stock.Line, error) {
	q := r.builder().
		Select("warehouse_id", "sku", "quantity", "updated_at").
		From("stock_lines").
		Where(squirrel.Eq{"warehouse_id": warehouseID}).
		OrderBy("sku")

	return r.selectLines(ctx, q)
}

// LinesBySKU returns rows for a SKU across warehouses.
func (r *StockRepo) LinesBySKU(ctx context.Context, sku int64) ([]stock.Line, error) {
	q := r.builder().
		Select("warehouse_id", "sku", "quantity", "updated_at").
		From("stock_lines").
		Where(squirrel.Eq{"sku": sku}).
		OrderBy("warehouse_id")

	return r.selectLines(ctx, q)
}

// TotalInWarehouse sums quantities across a warehouse.
func (r *StockRepo) TotalInWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	q := r.builder().
		Select("COALESCE(SUM(quantity), 0)").
		From("stock_lines").
		Where(squirrel.Eq{"warehouse_id": warehouseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var total int64
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("total in warehouse: %w", err)
	}
	return total, nil
}

func (r *StockRepo) selectLines(ctx context.Context, q squirrel.SelectBuilder) ([]stock.Line, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []stock.Line
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select stock lines: %w", err)
	}
	return lines, nil
}
