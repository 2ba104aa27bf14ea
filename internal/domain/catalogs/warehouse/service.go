package warehouse

import (
	"context"

	"stockroom/internal/core/tx"
	"stockroom/internal/domain"
)

// StockTotals reports aggregate on-hand quantity per warehouse.
// Implemented by the stock repository.
type StockTotals interface {
	TotalInWarehouse(ctx context.Context, warehouseID int64) (int64, error)
}

// Utilization describes how full a warehouse is against its advisory
// capacity.
type Utilization struct {
	WarehouseID int64   `json:"warehouseId"`
	OnHand      int64   `json:"onHand"`
	Capacity    int64   `json:"capacity"`
	Ratio       float64 `json:"ratio"` // 0 when capacity is unbounded
}

// Service provides business logic for the Warehouse catalog.
type Service struct {
	*domain.CatalogService[*Warehouse]
	repo   Repository
	totals StockTotals
}

// NewService creates a Warehouse service.
func NewService(repo Repository, totals StockTotals, txm tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "warehouse",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
		totals:         totals,
	}
}

// Utilization returns on-hand quantity against advisory capacity.
// Capacity is never enforced; this is a reporting read only.
func (s *Service) Utilization(ctx context.Context, warehouseID int64) (Utilization, error) {
	wh, err := s.GetByID(ctx, warehouseID)
	if err != nil {
		return Utilization{}, err
	}

	onHand, err := s.totals.TotalInWarehouse(ctx, warehouseID)
	if err != nil {
		return Utilization{}, err
	}

	u := Utilization{
		WarehouseID: wh.ID,
		OnHand:      onHand,
		Capacity:    wh.Capacity,
	}
	if wh.Capacity > 0 {
		u.Ratio = float64(onHand) / float64(wh.Capacity)
	}
	return u, nil
}
