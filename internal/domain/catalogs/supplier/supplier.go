// Package supplier provides the Supplier catalog.
package supplier

import (
	"context"
	"regexp"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Supplier represents a goods vendor.
type Supplier struct {
	entity.Catalog

	ContactEmail *string `db:"contact_email" json:"contactEmail,omitempty"`
	ContactPhone *string `db:"contact_phone" json:"contactPhone,omitempty"`
	Address      *string `db:"address" json:"address,omitempty"`
	Active       bool    `db:"is_active" json:"isActive"`
}

// NewSupplier creates an active Supplier with the given name.
func NewSupplier(name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(name),
		Active:  true,
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}
	if s.ContactEmail != nil && *s.ContactEmail != "" && !emailRe.MatchString(*s.ContactEmail) {
		return apperror.NewValidation("invalid contact email").
			WithDetail("field", "contactEmail").
			WithDetail("value", *s.ContactEmail)
	}
	return nil
}

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]
}

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
}

// NewService creates a Supplier service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "supplier",
		}),
	}
}
