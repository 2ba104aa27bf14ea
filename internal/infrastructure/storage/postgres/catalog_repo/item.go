package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/item"
	"stockroom/internal/infrastructure/storage/postgres"
)

// ItemRepo implements item.Repository.
type ItemRepo struct {
	*BaseRepo[*item.Item]
}

var _ item.Repository = (*ItemRepo)(nil)

// NewItemRepo creates the Item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseRepo: NewBaseRepo(
			"items",
			postgres.ExtractDBColumns[item.Item](),
			"name",
			func() *item.Item { return &item.Item{} },
			txm,
		),
	}
}

// GetActive retrieves a live item flagged active.
func (r *ItemRepo) GetActive(ctx context.Context, id int64) (*item.Item, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"is_active": true}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListByCategory retrieves live items of a category.
func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID int64, filter domain.ListFilter) (domain.ListResult[*item.Item], error) {
	// Category scoping rides on the generic filter via id restriction,
	// so reuse List after resolving the category's item ids.
	q := r.Builder().
		Select("id").
		From("items").
		Where(squirrel.Eq{"category_id": categoryID}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		return domain.ListResult[*item.Item]{}, err
	}

	rows, err := r.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return domain.ListResult[*item.Item]{}, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return domain.ListResult[*item.Item]{}, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return domain.ListResult[*item.Item]{}, err
	}

	if len(ids) == 0 {
		return domain.ListResult[*item.Item]{Items: []*item.Item{}, Limit: filter.Limit, Offset: filter.Offset}, nil
	}

	filter.IDs = ids
	return r.List(ctx, filter)
}
