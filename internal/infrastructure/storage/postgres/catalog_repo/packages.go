package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain/packages"
	"stockroom/internal/infrastructure/storage/postgres"
)

// PackageRepo implements packages.Repository. Package headers live in
// the packages table; lines and notes in package_items/package_notes.
type PackageRepo struct {
	*BaseRepo[*packages.Package]
	txm *postgres.TxManager
}

var _ packages.Repository = (*PackageRepo)(nil)

// NewPackageRepo creates the Package repository.
func NewPackageRepo(txm *postgres.TxManager) *PackageRepo {
	return &PackageRepo{
		BaseRepo: NewBaseRepo(
			"packages",
			postgres.ExtractDBColumns[packages.Package](),
			"name",
			func() *packages.Package { return &packages.Package{} },
			txm,
		),
		txm: txm,
	}
}

// GetByID retrieves a live package with items and notes.
func (r *PackageRepo) GetByID(ctx context.Context, id int64) (*packages.Package, error) {
	p, err := r.BaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetAnyByID retrieves a package regardless of deletion mark, with
// items and notes.
func (r *PackageRepo) GetAnyByID(ctx context.Context, id int64) (*packages.Package, error) {
	p, err := r.BaseRepo.GetAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByCustomer retrieves the customer's live packages with children.
func (r *PackageRepo) GetByCustomer(ctx context.Context, customerID int64) ([]*packages.Package, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ps []*packages.Package
	if err := pgxscan.Select(ctx, r.Querier(ctx), &ps, sql, args...); err != nil {
		return nil, fmt.Errorf("packages by customer: %w", err)
	}

	for _, p := range ps {
		if err := r.loadChildren(ctx, p); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

// AddItem inserts a package line.
func (r *PackageRepo) AddItem(ctx context.Context, packageID int64, it packages.Item) error {
	it.PackageID = packageID

	q := r.Builder().
		Insert("package_items").
		Columns("package_id", "sku", "quantity", "unit_price", "warranty_months", "serial_number", "notes").
		Values(it.PackageID, it.SKU, it.Quantity, it.UnitPrice, it.WarrantyMonths, it.SerialNumber, it.Notes)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateConstraintErr(err, "package_items", "insert")
	}
	return nil
}

// RemoveItem deletes the line for (packageID, sku).
func (r *PackageRepo) RemoveItem(ctx context.Context, packageID, sku int64) error {
	q := r.Builder().
		Delete("package_items").
		Where(squirrel.Eq{"package_id": packageID, "sku": sku})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete package item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("package item", sku)
	}
	return nil
}

// AddNote inserts a note.
func (r *PackageRepo) AddNote(ctx context.Context, packageID int64, n packages.Note) error {
	n.PackageID = packageID

	q := r.Builder().
		Insert("package_notes").
		Columns("id", "package_id", "title", "content", "created_by", "created_at").
		Values(n.ID, n.PackageID, n.Title, n.Content, n.CreatedBy, n.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateConstraintErr(err, "package_notes", "insert")
	}
	return nil
}

// RemoveNote deletes a note by id.
func (r *PackageRepo) RemoveNote(ctx context.Context, packageID int64, noteID string) error {
	q := r.Builder().
		Delete("package_notes").
		Where(squirrel.Eq{"package_id": packageID, "id": noteID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete package note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("package note", noteID)
	}
	return nil
}

func (r *PackageRepo) loadChildren(ctx context.Context, p *packages.Package) error {
	itemsQ := r.Builder().
		Select("package_id", "sku", "quantity", "unit_price", "warranty_months", "serial_number", "notes").
		From("package_items").
		Where(squirrel.Eq{"package_id": p.ID}).
		OrderBy("sku")

	sql, args, err := itemsQ.ToSql()
	if err != nil {
		return fmt.Errorf("build items query: %w", err)
	}
	p.Items = p.Items[:0]
	if err := pgxscan.Select(ctx, r.Querier(ctx), &p.Items, sql, args...); err != nil {
		return fmt.Errorf("load package items: %w", err)
	}

	notesQ := r.Builder().
		Select("id", "package_id", "title", "content", "created_by", "created_at").
		From("package_notes").
		Where(squirrel.Eq{"package_id": p.ID}).
		OrderBy("created_at")

	sql, args, err = notesQ.ToSql()
	if err != nil {
		return fmt.Errorf("build notes query: %w", err)
	}
	p.Notes = p.Notes[:0]
	if err := pgxscan.Select(ctx, r.Querier(ctx), &p.Notes, sql, args...); err != nil {
		return fmt.Errorf("load package notes: %w", err)
	}

	return nil
}
