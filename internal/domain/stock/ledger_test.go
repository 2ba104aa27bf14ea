package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type lineKey struct {
	warehouseID int64
	sku         int64
}

// fakeRepo keeps ledger rows in memory. Attach creates a zero row,
// SetQuantity requires the row to exist, like the real table.
type fakeRepo struct {
	lines map[lineKey]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{lines: make(map[lineKey]int64)}
}

func (r *fakeRepo) GetLine(ctx context.Context, warehouseID, sku int64) (Line, error) {
	qty, ok := r.lines[lineKey{warehouseID, sku}]
	if !ok {
		return Line{}, apperror.NewNotFound("stock line", sku)
	}
	return Line{WarehouseID: warehouseID, SKU: sku, Quantity: qty}, nil
}

func (r *fakeRepo) GetLineForUpdate(ctx context.Context, warehouseID, sku int64) (Line, error) {
	return r.GetLine(ctx, warehouseID, sku)
}

func (r *fakeRepo) SetQuantity(ctx context.Context, warehouseID, sku, quantity int64) error {
	r.lines[lineKey{warehouseID, sku}] = quantity
	return nil
}

func (r *fakeRepo) UpsertAdd(ctx context.Context, warehouseID, sku, delta int64) error {
	r.lines[lineKey{warehouseID, sku}] += delta
	return nil
}

func (r *fakeRepo) Attach(ctx context.Context, warehouseID, sku int64) error {
	key := lineKey{warehouseID, sku}
	if _, ok := r.lines[key]; ok {
		return apperror.NewDuplicate("stock line", "sku", "dup")
	}
	r.lines[key] = 0
	return nil
}

func (r *fakeRepo) Remove(ctx context.Context, warehouseID, sku int64) error {
	delete(r.lines, lineKey{warehouseID, sku})
	return nil
}

func (r *fakeRepo) LinesByWarehouse(ctx context.Context, warehouseID int64) ([]Line, error) {
	var out []Line
	for k, qty := range r.lines {
		if k.warehouseID == warehouseID {
			out = append(out, Line{WarehouseID: k.warehouseID, SKU: k.sku, Quantity: qty})
		}
	}
	return out, nil
}

func (r *fakeRepo) LinesBySKU(ctx context.Context, sku int64) ([]Line, error) {
	var out []Line
	for k, qty := range r.lines {
		if k.sku == sku {
			out = append(out, Line{WarehouseID: k.warehouseID, SKU: k.sku, Quantity: qty})
		}
	}
	return out, nil
}

func (r *fakeRepo) TotalInWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	var total int64
	for k, qty := range r.lines {
		if k.warehouseID == warehouseID {
			total += qty
		}
	}
	return total, nil
}

func newTestLedger() (*Ledger, *fakeRepo) {
	repo := newFakeRepo()
	return NewLedger(repo, passthroughTxManager{}), repo
}

func TestGetQuantity_MissingRowReadsZero(t *testing.T) {
	ledger, _ := newTestLedger()

	qty, err := ledger.GetQuantity(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestCredit_CreatesRowWhenAbsent(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	require.NoError(t, ledger.Credit(ctx, 1, 100, 25))

	qty, err := ledger.GetQuantity(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(25), qty)
}

func TestCredit_RejectsNonPositive(t *testing.T) {
	ledger, _ := newTestLedger()

	for _, qty := range []int64{0, -5} {
		err := ledger.Credit(context.Background(), 1, 100, qty)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "qty=%d", qty)
	}
}

func TestDebit_ReducesQuantity(t *testing.T) {
	ledger, repo := newTestLedger()
	ctx := context.Background()
	repo.lines[lineKey{1, 100}] = 50

	require.NoError(t, ledger.Debit(ctx, 1, 100, 30))

	qty, err := ledger.GetQuantity(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(20), qty)
}

func TestDebit_InsufficientStockLeavesQuantityUnchanged(t *testing.T) {
	ledger, repo := newTestLedger()
	ctx := context.Background()
	repo.lines[lineKey{1, 100}] = 10

	err := ledger.Debit(ctx, 1, 100, 11)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	qty, err := ledger.GetQuantity(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)
}

func TestDebit_AbsentRowReadsZeroAvailable(t *testing.T) {
	ledger, _ := newTestLedger()

	err := ledger.Debit(context.Background(), 1, 100, 1)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
}

func TestDebit_RejectsNonPositive(t *testing.T) {
	ledger, repo := newTestLedger()
	repo.lines[lineKey{1, 100}] = 50

	for _, qty := range []int64{0, -1} {
		err := ledger.Debit(context.Background(), 1, 100, qty)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "qty=%d", qty)
	}
}

func TestAttachItem_DuplicateAttachConflicts(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	require.NoError(t, ledger.AttachItem(ctx, 1, 100))

	err := ledger.AttachItem(ctx, 1, 100)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}

func TestDetachItem(t *testing.T) {
	ledger, repo := newTestLedger()
	ctx := context.Background()

	t.Run("removes zero-quantity row", func(t *testing.T) {
		require.NoError(t, ledger.AttachItem(ctx, 1, 100))
		require.NoError(t, ledger.DetachItem(ctx, 1, 100))

		_, ok := repo.lines[lineKey{1, 100}]
		assert.False(t, ok)
	})

	t.Run("rejects remaining stock", func(t *testing.T) {
		repo.lines[lineKey{1, 200}] = 5

		err := ledger.DetachItem(ctx, 1, 200)
		assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
		assert.Equal(t, int64(5), repo.lines[lineKey{1, 200}])
	})

	t.Run("missing row is not found", func(t *testing.T) {
		err := ledger.DetachItem(ctx, 1, 300)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestTotalAvailability_SumsAcrossWarehouses(t *testing.T) {
	ledger, repo := newTestLedger()
	repo.lines[lineKey{1, 100}] = 10
	repo.lines[lineKey{2, 100}] = 15
	repo.lines[lineKey{3, 200}] = 99

	total, err := ledger.TotalAvailability(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
}
