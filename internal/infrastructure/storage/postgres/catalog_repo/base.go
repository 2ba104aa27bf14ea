// Package catalog_repo provides PostgreSQL implementations for catalog
// repositories. Embed BaseRepo in a specific repository to inherit the
// common CRUD surface.
package catalog_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain"
	"stockroom/internal/infrastructure/storage/postgres"
)

// identified is what BaseRepo needs from an entity to round-trip ids
// through INSERT ... RETURNING.
type identified interface {
	GetID() int64
	SetID(id int64)
	GetVersion() int
}

// BaseRepo provides common CRUD operations for catalog entities.
type BaseRepo[T identified] struct {
	tableName  string
	selectCols []string
	searchCol  string
	newFn      func() T
	txm        *postgres.TxManager
}

// NewBaseRepo creates a base catalog repository. searchCol is the
// column substring search runs against, usually "name".
func NewBaseRepo[T identified](
	tableName string,
	selectCols []string,
	searchCol string,
	newFn func() T,
	txm *postgres.TxManager,
) *BaseRepo[T] {
	if searchCol == "" {
		searchCol = "name"
	}
	return &BaseRepo[T]{
		tableName:  tableName,
		selectCols: selectCols,
		searchCol:  searchCol,
		newFn:      newFn,
		txm:        txm,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholders.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the pool or the context-carried transaction.
func (r *BaseRepo[T]) Querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// Create inserts a new entity using its "db" tags, letting the
// database assign the id.
func (r *BaseRepo[T]) Create(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	// Only columns the table actually has, and never the id
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return postgres.TranslateConstraintErr(err, r.tableName, "insert")
	}
	entity.SetID(id)

	return nil
}

// Update modifies an existing entity with optimistic locking.
func (r *BaseRepo[T]) Update(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	version := entity.GetVersion()

	// Exclude immutable fields from SET
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" {
			continue // never update ID
		}
		if col == "version" {
			continue // version is managed here (optimistic locking)
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entity.GetID()}).
		Where(squirrel.Eq{"version": version}) // optimistic lock: expect current version

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entity.GetID())
	}

	return nil
}

// BaseSelect creates a SELECT builder over the repo's columns.
func (r *BaseRepo[T]) BaseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// GetByID retrieves a live entity by ID. Soft-deleted rows read as
// not found.
func (r *BaseRepo[T]) GetByID(ctx context.Context, entityID int64) (T, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// GetAnyByID retrieves an entity regardless of deletion mark. This is
// the recovery path used by the soft-delete policy.
func (r *BaseRepo[T]) GetAnyByID(ctx context.Context, entityID int64) (T, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// List retrieves entities with filtering and pagination.
func (r *BaseRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.BaseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{r.searchCol: "%" + filter.Search + "%"})
	}

	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	// Count total (before pagination)
	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

// Exists checks if a live entity exists.
func (r *BaseRepo[T]) Exists(ctx context.Context, entityID int64) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}

// SetDeletionMark sets or clears the deletion mark.
func (r *BaseRepo[T]) SetDeletionMark(ctx context.Context, entityID int64, marked bool) error {
	q := r.Builder().
		Update(r.tableName).
		Set("deletion_mark", marked).
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set deletion mark: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute set deletion mark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID)
	}

	return nil
}

// GetForUpdate retrieves an entity by ID with a row lock.
func (r *BaseRepo[T]) GetForUpdate(ctx context.Context, entityID int64) (T, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Suffix("FOR UPDATE")

	return r.FindOne(ctx, q)
}

// FindOne executes a SELECT query and returns a single entity.
func (r *BaseRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, "matching query")
		}
		return entity, fmt.Errorf("find one: %w", err)
	}

	return entity, nil
}

func (r *BaseRepo[T]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols)+3)
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}
	allowed["id"] = struct{}{}
	allowed["created_at"] = struct{}{}
	allowed["updated_at"] = struct{}{}

	if orderBy == "" {
		return r.searchCol + " ASC", nil
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy).WithDetail("field", field)
	}

	return field + " " + direction, nil
}
