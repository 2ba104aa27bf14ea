// Package lifecycle implements the soft-delete state machine shared by
// all catalog aggregates. Records are never physically removed; the
// deletion mark excludes them from reads and stock operations until
// they are restored.
package lifecycle

import (
	"context"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
)

// Store is the minimal persistence surface the policy needs.
type Store[T entity.Deletable] interface {
	// GetAnyByID retrieves an entity regardless of deletion mark.
	GetAnyByID(ctx context.Context, id int64) (T, error)

	// SetDeletionMark sets or clears the deletion mark.
	SetDeletionMark(ctx context.Context, id int64, marked bool) error
}

// Policy applies the soft-delete transition rules over a Store.
type Policy[T entity.Deletable] struct {
	store      Store[T]
	entityName string
}

// NewPolicy creates a Policy for the given store.
func NewPolicy[T entity.Deletable](store Store[T], entityName string) *Policy[T] {
	return &Policy[T]{store: store, entityName: entityName}
}

// Delete marks the entity deleted. Deleting an already-deleted entity
// succeeds without change.
func (p *Policy[T]) Delete(ctx context.Context, id int64) error {
	ent, err := p.store.GetAnyByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(p.entityName, id)
		}
		return err
	}
	if ent.IsDeleted() {
		return nil
	}
	return p.store.SetDeletionMark(ctx, id, true)
}

// Undelete clears the deletion mark. Restoring an entity whose mark is
// not set fails: the caller asked to restore something that is active.
func (p *Policy[T]) Undelete(ctx context.Context, id int64) error {
	ent, err := p.store.GetAnyByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(p.entityName, id)
		}
		return err
	}
	if !ent.IsDeleted() {
		return apperror.NewNotDeleted(p.entityName, id)
	}
	return p.store.SetDeletionMark(ctx, id, false)
}
