// Package customer provides the Customer catalog. Customers own carts,
// orders and packages.
package customer

import (
	"context"
	"strings"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
)

// Customer represents a buying party.
type Customer struct {
	entity.BaseEntity

	FirstName string  `db:"first_name" json:"firstName"`
	LastName  string  `db:"last_name" json:"lastName"`
	Email     string  `db:"email" json:"email"`
	Phone     *string `db:"phone" json:"phone,omitempty"`
	Address   *string `db:"address" json:"address,omitempty"`
}

// NewCustomer creates a Customer with required fields.
func NewCustomer(firstName, lastName, email string) *Customer {
	return &Customer{
		BaseEntity: entity.NewBaseEntity(),
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
	}
}

// FullName returns the display name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if c.FirstName == "" {
		return apperror.NewValidation("first name is required").
			WithDetail("field", "firstName")
	}
	if c.LastName == "" {
		return apperror.NewValidation("last name is required").
			WithDetail("field", "lastName")
	}
	if c.Email == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	return nil
}

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// GetByEmail retrieves a live customer by email.
	GetByEmail(ctx context.Context, email string) (*Customer, error)
}

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo Repository
}

// NewService creates a Customer service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
			Repo:       repo,
			TxManager:  txm,
			EntityName: "customer",
		}),
		repo: repo,
	}
}

// GetByEmail retrieves a customer by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	return s.repo.GetByEmail(ctx, email)
}
