package order

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
	"stockroom/internal/domain"
	"stockroom/internal/domain/cart"
	"stockroom/internal/domain/catalogs/item"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOrderRepo struct {
	nextID  int64
	byID    map[int64]*Order
	byCart  map[string]*Order
	creates int

	// failCreateWithDuplicate simulates losing the unique-index race:
	// the insert fails but a canonical order for the cart exists.
	failCreateWithDuplicate *Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: make(map[int64]*Order), byCart: make(map[string]*Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *Order) error {
	r.creates++
	if r.failCreateWithDuplicate != nil {
		r.byCart[r.failCreateWithDuplicate.CartID] = r.failCreateWithDuplicate
		r.byID[r.failCreateWithDuplicate.ID] = r.failCreateWithDuplicate
		return apperror.NewDuplicate("order", "cart_id", o.CartID)
	}
	if _, ok := r.byCart[o.CartID]; ok {
		return apperror.NewDuplicate("order", "cart_id", o.CartID)
	}
	r.nextID++
	o.ID = r.nextID
	r.byID[o.ID] = o
	r.byCart[o.CartID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, apperror.NewNotFound("order", id)
	}
	return o, nil
}

func (r *fakeOrderRepo) GetByCartID(ctx context.Context, cartID string) (*Order, error) {
	o, ok := r.byCart[cartID]
	if !ok {
		return nil, apperror.NewNotFound("order", cartID)
	}
	return o, nil
}

func (r *fakeOrderRepo) GetForUpdate(ctx context.Context, id int64) (*Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	o, ok := r.byID[id]
	if !ok {
		return apperror.NewNotFound("order", id)
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) ReplaceItems(ctx context.Context, o *Order) error {
	stored, ok := r.byID[o.ID]
	if !ok {
		return apperror.NewNotFound("order", o.ID)
	}
	stored.Items = o.Items
	stored.Total = o.Total
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	var out []*Order
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

type fakeCarts struct {
	snapshots map[string]cart.Snapshot
}

func (c *fakeCarts) Snapshot(ctx context.Context, cartID string) (cart.Snapshot, error) {
	snap, ok := c.snapshots[cartID]
	if !ok {
		return cart.Snapshot{}, apperror.NewNotFound("cart", cartID)
	}
	return snap, nil
}

// Empty carts are excluded, matching the repository contract.
func (c *fakeCarts) UnmaterializedCartIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(c.snapshots))
	for id, snap := range c.snapshots {
		if snap.IsEmpty() {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeItemRepo struct {
	items map[int64]*item.Item
}

func (r *fakeItemRepo) GetActive(ctx context.Context, id int64) (*item.Item, error) {
	it, ok := r.items[id]
	if !ok || !it.Active {
		return nil, apperror.NewNotFound("item", id)
	}
	return it, nil
}

func (r *fakeItemRepo) Create(ctx context.Context, it *item.Item) error { return nil }

func (r *fakeItemRepo) GetByID(ctx context.Context, id int64) (*item.Item, error) {
	return r.GetActive(ctx, id)
}

func (r *fakeItemRepo) GetAnyByID(ctx context.Context, id int64) (*item.Item, error) {
	return r.GetActive(ctx, id)
}

func (r *fakeItemRepo) Update(ctx context.Context, it *item.Item) error { return nil }

func (r *fakeItemRepo) SetDeletionMark(ctx context.Context, id int64, marked bool) error {
	return nil
}

func (r *fakeItemRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*item.Item], error) {
	return domain.ListResult[*item.Item]{}, nil
}

func (r *fakeItemRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.items[id]
	return ok, nil
}

func (r *fakeItemRepo) ListByCategory(ctx context.Context, categoryID int64, filter domain.ListFilter) (domain.ListResult[*item.Item], error) {
	return domain.ListResult[*item.Item]{}, nil
}

func priced(id int64, price string) *item.Item {
	it := item.NewItem("test item", types.MustMoney(price))
	it.ID = id
	return it
}

type fixture struct {
	svc   *Service
	repo  *fakeOrderRepo
	carts *fakeCarts
}

func newFixture() fixture {
	repo := newFakeOrderRepo()
	carts := &fakeCarts{snapshots: map[string]cart.Snapshot{
		"cart-1": {
			CartID:     "cart-1",
			CustomerID: 7,
			Lines: []cart.Line{
				{SKU: 100, Quantity: 2},
				{SKU: 200, Quantity: 1},
			},
		},
	}}
	items := &fakeItemRepo{items: map[int64]*item.Item{
		100: priced(100, "19.99"),
		200: priced(200, "5.00"),
	}}
	svc := NewService(repo, carts, items, passthroughTxManager{}, nil)
	return fixture{svc: svc, repo: repo, carts: carts}
}

func TestMaterializeFromCart_CreatesPendingOrder(t *testing.T) {
	f := newFixture()

	o, err := f.svc.MaterializeFromCart(context.Background(), "cart-1")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(7), o.CustomerID)
	assert.Equal(t, "cart-1", o.CartID)
	require.Len(t, o.Items, 2)
	assert.True(t, o.Total.Equal(types.MustMoney("44.98")), "total = %s", o.Total)
	assert.True(t, o.Items[0].UnitPrice.Equal(types.MustMoney("19.99")))
}

func TestMaterializeFromCart_IsIdempotentPerCart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.MaterializeFromCart(ctx, "cart-1")
	require.NoError(t, err)

	// Cart edits after materialization must not leak into the order.
	f.carts.snapshots["cart-1"] = cart.Snapshot{
		CartID:     "cart-1",
		CustomerID: 7,
		Lines:      []cart.Line{{SKU: 100, Quantity: 99}},
	}

	second, err := f.svc.MaterializeFromCart(ctx, "cart-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, 1, f.repo.creates)
}

func TestMaterializeFromCart_LostInsertRaceReturnsCanonicalOrder(t *testing.T) {
	f := newFixture()
	winner := &Order{ID: 42, CartID: "cart-1", Status: StatusPending}
	f.repo.failCreateWithDuplicate = winner

	o, err := f.svc.MaterializeFromCart(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), o.ID)
}

func TestMaterializeFromCart_EmptyCartRejected(t *testing.T) {
	f := newFixture()
	f.carts.snapshots["empty"] = cart.Snapshot{CartID: "empty", CustomerID: 7}

	_, err := f.svc.MaterializeFromCart(context.Background(), "empty")
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestFulfill_IsOneWay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	o, err := f.svc.MaterializeFromCart(ctx, "cart-1")
	require.NoError(t, err)

	ok, err := f.svc.Fulfill(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.svc.Fulfill(ctx, o.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeAlreadyFulfilled))
}

// serialTxManager models row-level locking: transactions run one at a
// time, so the second fulfillment observes the first one's write.
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type countingRecorder struct {
	mu           sync.Mutex
	fulfillments int
}

func (r *countingRecorder) RecordFulfillment(ctx context.Context, orderID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fulfillments++
	return nil
}

func TestFulfill_ConcurrentCallsFulfillExactlyOnce(t *testing.T) {
	repo := newFakeOrderRepo()
	carts := &fakeCarts{snapshots: map[string]cart.Snapshot{
		"cart-1": {
			CartID:     "cart-1",
			CustomerID: 7,
			Lines:      []cart.Line{{SKU: 100, Quantity: 1}},
		},
	}}
	items := &fakeItemRepo{items: map[int64]*item.Item{100: priced(100, "19.99")}}
	recorder := &countingRecorder{}
	svc := NewService(repo, carts, items, &serialTxManager{}, recorder)
	ctx := context.Background()

	o, err := svc.MaterializeFromCart(ctx, "cart-1")
	require.NoError(t, err)

	start := make(chan struct{})
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = svc.Fulfill(ctx, o.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case apperror.IsCode(err, apperror.CodeAlreadyFulfilled):
			rejected++
		default:
			t.Fatalf("unexpected fulfillment error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one fulfillment may win")
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 1, recorder.fulfillments, "audit must record the single winner")
}

func TestFulfill_MissingOrderIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Fulfill(context.Background(), 999)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateFromCart_RecapturesLinesAndPrices(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	o, err := f.svc.MaterializeFromCart(ctx, "cart-1")
	require.NoError(t, err)

	f.carts.snapshots["cart-1"] = cart.Snapshot{
		CartID:     "cart-1",
		CustomerID: 7,
		Lines:      []cart.Line{{SKU: 200, Quantity: 3}},
	}

	updated, err := f.svc.UpdateFromCart(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Total.Equal(types.MustMoney("15.00")), "total = %s", updated.Total)
}

func TestUpdateFromCart_FulfilledOrderIsImmutable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	o, err := f.svc.MaterializeFromCart(ctx, "cart-1")
	require.NoError(t, err)

	_, err = f.svc.Fulfill(ctx, o.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateFromCart(ctx, o.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}

func TestSyncAllUnmaterializedCarts_ContinuesPastFailures(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.carts.snapshots["bad-sku"] = cart.Snapshot{
		CartID:     "bad-sku",
		CustomerID: 8,
		Lines:      []cart.Line{{SKU: 999, Quantity: 1}},
	}
	f.carts.snapshots["cart-2"] = cart.Snapshot{
		CartID:     "cart-2",
		CustomerID: 9,
		Lines:      []cart.Line{{SKU: 100, Quantity: 1}},
	}

	err := f.svc.SyncAllUnmaterializedCarts(ctx)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)

	// Both resolvable carts materialized despite the failing one.
	for _, cartID := range []string{"cart-1", "cart-2"} {
		_, err := f.svc.GetByCartID(ctx, cartID)
		assert.NoError(t, err, "cart %s", cartID)
	}
}

func TestSyncAllUnmaterializedCarts_SkipsEmptyCarts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.carts.snapshots["empty"] = cart.Snapshot{CartID: "empty", CustomerID: 8}

	// An open empty cart must not keep the sweep failing.
	err := f.svc.SyncAllUnmaterializedCarts(ctx)
	require.NoError(t, err)

	_, err = f.svc.GetByCartID(ctx, "empty")
	assert.True(t, apperror.IsNotFound(err))
}
