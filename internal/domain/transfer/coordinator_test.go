package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/warehouse"
	"stockroom/internal/domain/stock"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type lineKey struct {
	warehouseID int64
	sku         int64
}

type fakeStockRepo struct {
	lines map[lineKey]int64
}

func (r *fakeStockRepo) GetLine(ctx context.Context, warehouseID, sku int64) (stock.Line, error) {
	qty, ok := r.lines[lineKey{warehouseID, sku}]
	if !ok {
		return stock.Line{}, apperror.NewNotFound("stock line", sku)
	}
	return stock.Line{WarehouseID: warehouseID, SKU: sku, Quantity: qty}, nil
}

func (r *fakeStockRepo) GetLineForUpdate(ctx context.Context, warehouseID, sku int64) (stock.Line, error) {
	return r.GetLine(ctx, warehouseID, sku)
}

func (r *fakeStockRepo) SetQuantity(ctx context.Context, warehouseID, sku, quantity int64) error {
	r.lines[lineKey{warehouseID, sku}] = quantity
	return nil
}

func (r *fakeStockRepo) UpsertAdd(ctx context.Context, warehouseID, sku, delta int64) error {
	r.lines[lineKey{warehouseID, sku}] += delta
	return nil
}

func (r *fakeStockRepo) Attach(ctx context.Context, warehouseID, sku int64) error { return nil }
func (r *fakeStockRepo) Remove(ctx context.Context, warehouseID, sku int64) error { return nil }

func (r *fakeStockRepo) LinesByWarehouse(ctx context.Context, warehouseID int64) ([]stock.Line, error) {
	return nil, nil
}

func (r *fakeStockRepo) LinesBySKU(ctx context.Context, sku int64) ([]stock.Line, error) {
	return nil, nil
}

func (r *fakeStockRepo) TotalInWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	return 0, nil
}

// fakeWarehouseRepo only answers Exists; the coordinator never touches
// the rest of the catalog surface.
type fakeWarehouseRepo struct {
	existing map[int64]bool
}

func (r *fakeWarehouseRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.existing[id], nil
}

func (r *fakeWarehouseRepo) Create(ctx context.Context, w *warehouse.Warehouse) error { return nil }

func (r *fakeWarehouseRepo) GetByID(ctx context.Context, id int64) (*warehouse.Warehouse, error) {
	return nil, apperror.NewNotFound("warehouse", id)
}

func (r *fakeWarehouseRepo) GetAnyByID(ctx context.Context, id int64) (*warehouse.Warehouse, error) {
	return nil, apperror.NewNotFound("warehouse", id)
}

func (r *fakeWarehouseRepo) Update(ctx context.Context, w *warehouse.Warehouse) error { return nil }

func (r *fakeWarehouseRepo) SetDeletionMark(ctx context.Context, id int64, marked bool) error {
	return nil
}

func (r *fakeWarehouseRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*warehouse.Warehouse], error) {
	return domain.ListResult[*warehouse.Warehouse]{}, nil
}

type fakeRecorder struct {
	movements []Movement
	err       error
}

func (r *fakeRecorder) RecordTransfer(ctx context.Context, m Movement) error {
	if r.err != nil {
		return r.err
	}
	r.movements = append(r.movements, m)
	return nil
}

func newTestCoordinator(recorder Recorder) (*Coordinator, *fakeStockRepo) {
	repo := &fakeStockRepo{lines: map[lineKey]int64{
		{1, 100}: 50,
		{2, 100}: 10,
	}}
	txm := passthroughTxManager{}
	ledger := stock.NewLedger(repo, txm)
	warehouses := &fakeWarehouseRepo{existing: map[int64]bool{1: true, 2: true}}
	return NewCoordinator(ledger, warehouses, txm, recorder), repo
}

func TestTransfer_ConservesStock(t *testing.T) {
	coord, repo := newTestCoordinator(nil)

	require.NoError(t, coord.Transfer(context.Background(), 1, 2, 100, 30))

	assert.Equal(t, int64(20), repo.lines[lineKey{1, 100}])
	assert.Equal(t, int64(40), repo.lines[lineKey{2, 100}])
}

func TestTransfer_CreatesTargetRow(t *testing.T) {
	coord, repo := newTestCoordinator(nil)
	delete(repo.lines, lineKey{2, 100})

	require.NoError(t, coord.Transfer(context.Background(), 1, 2, 100, 5))

	assert.Equal(t, int64(5), repo.lines[lineKey{2, 100}])
}

func TestTransfer_InsufficientSourceLeavesBothUnchanged(t *testing.T) {
	coord, repo := newTestCoordinator(nil)

	err := coord.Transfer(context.Background(), 1, 2, 100, 51)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	assert.Equal(t, int64(50), repo.lines[lineKey{1, 100}])
	assert.Equal(t, int64(10), repo.lines[lineKey{2, 100}])
}

func TestTransfer_RejectsSameWarehouse(t *testing.T) {
	coord, _ := newTestCoordinator(nil)

	err := coord.Transfer(context.Background(), 1, 1, 100, 5)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestTransfer_RejectsNonPositiveQuantity(t *testing.T) {
	coord, _ := newTestCoordinator(nil)

	for _, qty := range []int64{0, -3} {
		err := coord.Transfer(context.Background(), 1, 2, 100, qty)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "qty=%d", qty)
	}
}

func TestTransfer_MissingWarehouseIsNotFound(t *testing.T) {
	coord, repo := newTestCoordinator(nil)

	err := coord.Transfer(context.Background(), 1, 9, 100, 5)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, int64(50), repo.lines[lineKey{1, 100}])
}

func TestTransfer_RecordsMovement(t *testing.T) {
	recorder := &fakeRecorder{}
	coord, _ := newTestCoordinator(recorder)

	require.NoError(t, coord.Transfer(context.Background(), 1, 2, 100, 7))

	require.Len(t, recorder.movements, 1)
	m := recorder.movements[0]
	assert.Equal(t, int64(1), m.SourceID)
	assert.Equal(t, int64(2), m.TargetID)
	assert.Equal(t, int64(100), m.SKU)
	assert.Equal(t, int64(7), m.Quantity)
	assert.False(t, m.OccurredAt.IsZero())
}

func TestTransfer_RecorderFailureDoesNotFailTransfer(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("audit store down")}
	coord, repo := newTestCoordinator(recorder)

	require.NoError(t, coord.Transfer(context.Background(), 1, 2, 100, 5))
	assert.Equal(t, int64(45), repo.lines[lineKey{1, 100}])
}

type txMarkKey struct{}

// markingTxManager tags the context while a transaction is open, so
// fakes can tell transactional from ambient reads.
type markingTxManager struct{}

func (markingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, txMarkKey{}, true))
}

type txAwareWarehouseRepo struct {
	fakeWarehouseRepo
	sawTx []bool
}

func (r *txAwareWarehouseRepo) Exists(ctx context.Context, id int64) (bool, error) {
	r.sawTx = append(r.sawTx, ctx.Value(txMarkKey{}) != nil)
	return r.fakeWarehouseRepo.Exists(ctx, id)
}

func TestTransfer_ResolvesWarehousesInsideTransaction(t *testing.T) {
	repo := &fakeStockRepo{lines: map[lineKey]int64{{1, 100}: 50}}
	txm := markingTxManager{}
	ledger := stock.NewLedger(repo, txm)
	warehouses := &txAwareWarehouseRepo{
		fakeWarehouseRepo: fakeWarehouseRepo{existing: map[int64]bool{1: true, 2: true}},
	}
	coord := NewCoordinator(ledger, warehouses, txm, nil)

	require.NoError(t, coord.Transfer(context.Background(), 1, 2, 100, 5))

	// Both resolutions must see the open transaction: a warehouse
	// deleted mid-flight then rolls the transfer back with it.
	require.Len(t, warehouses.sawTx, 2)
	for i, saw := range warehouses.sawTx {
		assert.True(t, saw, "warehouse check %d ran outside the transaction", i)
	}
}
