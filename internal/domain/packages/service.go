package packages

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/tx"
	"stockroom/internal/core/types"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/item"
)

// ContractSummary is the calculator output for one package.
type ContractSummary struct {
	PackageID          int64         `json:"packageId"`
	TotalPrice         types.Money   `json:"totalPrice"`
	DiscountedPrice    types.Money   `json:"discountedPrice"`
	TotalContractValue types.Money   `json:"totalContractValue"`
	ContractEnd        time.Time     `json:"contractEnd"`
	Active             bool          `json:"active"`
	RemainingTime      time.Duration `json:"remainingTime"`
}

// Service provides business logic for customer packages.
type Service struct {
	*domain.CatalogService[*Package]
	repo      Repository
	items     item.Repository
	txManager tx.Manager

	// now is swappable in tests
	now func() time.Time
}

// NewService creates a package Service.
func NewService(repo Repository, items item.Repository, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Package]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "package",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
		items:          items,
		txManager:      txm,
		now:            time.Now,
	}
}

// GetByCustomer retrieves a customer's live packages.
func (s *Service) GetByCustomer(ctx context.Context, customerID int64) ([]*Package, error) {
	return s.repo.GetByCustomer(ctx, customerID)
}

// AddItem adds a line to a package. When the caller passes a zero unit
// price the current list price of the item is captured instead.
func (s *Service) AddItem(ctx context.Context, packageID int64, it Item) error {
	if it.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("quantity", it.Quantity)
	}
	if it.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative")
	}

	if _, err := s.GetByID(ctx, packageID); err != nil {
		return err
	}

	if it.UnitPrice.IsZero() {
		catalogItem, err := s.items.GetActive(ctx, it.SKU)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("item", it.SKU)
			}
			return err
		}
		it.UnitPrice = catalogItem.ListPrice
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.AddItem(ctx, packageID, it); err != nil {
			return fmt.Errorf("add package item: %w", err)
		}
		return nil
	})
}

// RemoveItem deletes a package line.
func (s *Service) RemoveItem(ctx context.Context, packageID, sku int64) error {
	if _, err := s.GetByID(ctx, packageID); err != nil {
		return err
	}
	if err := s.repo.RemoveItem(ctx, packageID, sku); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("package item", sku)
		}
		return err
	}
	return nil
}

// AddNote attaches a note to a package.
func (s *Service) AddNote(ctx context.Context, packageID int64, title, content, createdBy string) (Note, error) {
	if title == "" {
		return Note{}, apperror.NewValidation("note title is required")
	}
	if _, err := s.GetByID(ctx, packageID); err != nil {
		return Note{}, err
	}

	n := NewNote(title, content, createdBy)
	if err := s.repo.AddNote(ctx, packageID, n); err != nil {
		return Note{}, fmt.Errorf("add package note: %w", err)
	}
	return n, nil
}

// RemoveNote deletes a note from a package.
func (s *Service) RemoveNote(ctx context.Context, packageID int64, noteID string) error {
	if _, err := s.GetByID(ctx, packageID); err != nil {
		return err
	}
	if err := s.repo.RemoveNote(ctx, packageID, noteID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("package note", noteID)
		}
		return err
	}
	return nil
}

// Contract runs the contract calculator for a package.
func (s *Service) Contract(ctx context.Context, packageID int64) (ContractSummary, error) {
	p, err := s.GetByID(ctx, packageID)
	if err != nil {
		return ContractSummary{}, err
	}

	now := s.now()
	return ContractSummary{
		PackageID:          p.ID,
		TotalPrice:         p.TotalPrice(),
		DiscountedPrice:    p.DiscountedPrice(),
		TotalContractValue: p.TotalContractValue(),
		ContractEnd:        p.ContractEnd(),
		Active:             p.IsContractActive(now),
		RemainingTime:      p.RemainingContractTime(now),
	}, nil
}
