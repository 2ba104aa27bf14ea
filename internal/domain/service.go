// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain/lifecycle"
)

// CatalogService provides business logic for catalog entities.
type CatalogService[T interface {
	entity.Validatable
	entity.Deletable
}] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]
	policy    *lifecycle.Policy[T]

	// entityName for error messages
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T interface {
	entity.Validatable
	entity.Deletable
}] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T interface {
	entity.Validatable
	entity.Deletable
}](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		policy:     lifecycle.NewPolicy[T](cfg.Repo, cfg.EntityName),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If the entity already returns a structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but ensure not-found is mapped to the correct entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

// Create creates a new catalog entity.
func (s *CatalogService[T]) Create(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, ent); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, ent); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// After-create hooks run outside the transaction; failures do not
	// undo the created entity.
	_ = s.hooks.Run(ctx, AfterCreate, ent)

	return nil
}

// GetByID retrieves a live entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID int64) (T, error) {
	ent, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return ent, s.normalizeGetErr(err, entityID)
	}
	return ent, nil
}

// Update updates an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, ent T) error {
	if err := ent.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, ent); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, ent); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.Run(ctx, AfterUpdate, ent)

	return nil
}

// Delete soft-deletes the entity. Deleting an already-deleted entity
// is a no-op.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID int64) error {
	ent, err := s.repo.GetAnyByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID)
	}

	if err := s.hooks.Run(ctx, BeforeDelete, ent); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.policy.Delete(ctx, entityID)
	})
	if err != nil {
		return err
	}

	_ = s.hooks.Run(ctx, AfterDelete, ent)

	return nil
}

// Undelete restores a soft-deleted entity. Restoring an entity that is
// not deleted fails with a NOT_DELETED error.
func (s *CatalogService[T]) Undelete(ctx context.Context, entityID int64) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.policy.Undelete(ctx, entityID)
	})
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if a live entity exists.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID int64) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}
