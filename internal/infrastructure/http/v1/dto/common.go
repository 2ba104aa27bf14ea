// Package dto provides Data Transfer Objects for API requests.
package dto

// --- Stock ---

// TransferRequest moves stock between warehouses.
type TransferRequest struct {
	SourceID int64 `json:"sourceId" binding:"required"`
	TargetID int64 `json:"targetId" binding:"required"`
	SKU      int64 `json:"sku" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
}

// AdjustmentRequest credits or debits a single warehouse.
type AdjustmentRequest struct {
	SKU      int64 `json:"sku" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
}

// AttachRequest registers a SKU in a warehouse.
type AttachRequest struct {
	SKU int64 `json:"sku" binding:"required"`
}

// --- Carts ---

// CreateCartRequest opens a cart.
type CreateCartRequest struct {
	CustomerID int64 `json:"customerId" binding:"required"`
}

// CartLineRequest adds or removes cart quantity.
type CartLineRequest struct {
	SKU      int64 `json:"sku" binding:"required"`
	Quantity int64 `json:"quantity" binding:"required"`
}

// --- Orders ---

// CreateOrderRequest materializes a cart.
type CreateOrderRequest struct {
	CartID string `json:"cartId" binding:"required"`
}

// --- Packages ---

// PackageItemRequest adds a line to a package.
type PackageItemRequest struct {
	SKU            int64   `json:"sku" binding:"required"`
	Quantity       int64   `json:"quantity" binding:"required"`
	UnitPrice      string  `json:"unitPrice"`
	WarrantyMonths *int    `json:"warrantyMonths"`
	SerialNumber   *string `json:"serialNumber"`
	Notes          string  `json:"notes"`
}

// PackageNoteRequest attaches a note to a package.
type PackageNoteRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content"`
	CreatedBy string `json:"createdBy"`
}
