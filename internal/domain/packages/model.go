// Package packages provides customer equipment packages: a bundle of
// items sold under a term contract with a monthly fee.
package packages

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
	"stockroom/internal/core/types"
)

// Item is one package line. UnitPrice is captured when the line is
// added and does not track later catalog changes.
type Item struct {
	PackageID      int64       `db:"package_id" json:"-"`
	SKU            int64       `db:"sku" json:"sku"`
	Quantity       int64       `db:"quantity" json:"quantity"`
	UnitPrice      types.Money `db:"unit_price" json:"unitPrice"`
	WarrantyMonths *int        `db:"warranty_months" json:"warrantyMonths,omitempty"`
	SerialNumber   *string     `db:"serial_number" json:"serialNumber,omitempty"`
	Notes          string      `db:"notes" json:"notes,omitempty"`
}

// Note is a free-form annotation attached to a package.
type Note struct {
	ID        string    `db:"id" json:"id"`
	PackageID int64     `db:"package_id" json:"-"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewNote creates a Note with a generated id.
func NewNote(title, content, createdBy string) Note {
	return Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
}

// Package is a customer's contracted bundle.
type Package struct {
	entity.Catalog

	CustomerID         int64       `db:"customer_id" json:"customerId"`
	ContractStartDate  time.Time   `db:"contract_start_date" json:"contractStartDate"`
	ContractTermMonths int         `db:"contract_term_months" json:"contractTermMonths"`
	MonthlyFee         types.Money `db:"monthly_fee" json:"monthlyFee"`
	SetupFee           types.Money `db:"setup_fee" json:"setupFee"`
	DiscountAmount     types.Money `db:"discount_amount" json:"discountAmount"`

	Items []Item `db:"-" json:"items"`
	Notes []Note `db:"-" json:"notes"`
}

// NewPackage creates a Package for a customer.
func NewPackage(customerID int64, name string, start time.Time, termMonths int) *Package {
	return &Package{
		Catalog:            entity.NewCatalog(name),
		CustomerID:         customerID,
		ContractStartDate:  start,
		ContractTermMonths: termMonths,
	}
}

// Validate implements entity.Validatable.
func (p *Package) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if p.CustomerID <= 0 {
		return apperror.NewValidation("customer id is required").
			WithDetail("field", "customerId")
	}
	if p.ContractTermMonths < 0 {
		return apperror.NewValidation("contract term cannot be negative").
			WithDetail("field", "contractTermMonths")
	}
	if p.MonthlyFee.IsNegative() || p.SetupFee.IsNegative() || p.DiscountAmount.IsNegative() {
		return apperror.NewValidation("fees cannot be negative")
	}
	return nil
}
