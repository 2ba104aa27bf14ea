package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/types"
	"stockroom/internal/domain"
	"stockroom/internal/domain/catalogs/item"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCartRepo struct {
	carts map[string]*Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*Cart)}
}

func (r *fakeCartRepo) Create(ctx context.Context, c *Cart) error {
	r.carts[c.ID] = c
	return nil
}

func (r *fakeCartRepo) GetByID(ctx context.Context, cartID string) (*Cart, error) {
	c, ok := r.carts[cartID]
	if !ok {
		return nil, apperror.NewNotFound("cart", cartID)
	}
	return c, nil
}

func (r *fakeCartRepo) GetByCustomer(ctx context.Context, customerID int64) ([]*Cart, error) {
	var out []*Cart
	for _, c := range r.carts {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) UpsertLine(ctx context.Context, cartID string, sku, quantity int64) error {
	c := r.carts[cartID]
	for i := range c.Items {
		if c.Items[i].SKU == sku {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	c.Items = append(c.Items, Item{CartID: cartID, SKU: sku, Quantity: quantity})
	return nil
}

func (r *fakeCartRepo) DeleteLine(ctx context.Context, cartID string, sku int64) error {
	c := r.carts[cartID]
	for i := range c.Items {
		if c.Items[i].SKU == sku {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCartRepo) ClearLines(ctx context.Context, cartID string) error {
	r.carts[cartID].Items = nil
	return nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, cartID string) error {
	delete(r.carts, cartID)
	return nil
}

func (r *fakeCartRepo) Touch(ctx context.Context, cartID string) error { return nil }

func (r *fakeCartRepo) UnmaterializedCartIDs(ctx context.Context) ([]string, error) {
	return nil, nil
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

func newTestService() (*Service, *fakeCartRepo) {
	repo := newFakeCartRepo()
	router := item.NewItem("router", types.MustMoney("89.99"))
	router.ID = 100
	inactive := item.NewItem("legacy modem", types.MustMoney("10.00"))
	inactive.ID = 300
	inactive.Active = false
	items := &fakeItemRepo{items: map[int64]*item.Item{
		100: router,
		300: inactive,
	}}
	return NewService(repo, items, passthroughTxManager{}), repo
}

func mustCreate(t *testing.T, svc *Service) *Cart {
	t.Helper()
	c, err := svc.Create(context.Background(), 7)
	require.NoError(t, err)
	return c
}

func TestCreate_RequiresCustomer(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 0)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestAddItem_MergesQuantities(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c := mustCreate(t, svc)

	require.NoError(t, svc.AddItem(ctx, c.ID, 100, 2))
	require.NoError(t, svc.AddItem(ctx, c.ID, 100, 3))

	stored := repo.carts[c.ID]
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(5), stored.Items[0].Quantity)
}

func TestAddItem_RejectsInactiveItem(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc)

	err := svc.AddItem(context.Background(), c.ID, 300, 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc)

	err := svc.AddItem(context.Background(), c.ID, 100, 0)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRemoveItem(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	t.Run("partial removal leaves remainder", func(t *testing.T) {
		c := mustCreate(t, svc)
		require.NoError(t, svc.AddItem(ctx, c.ID, 100, 5))

		require.NoError(t, svc.RemoveItem(ctx, c.ID, 100, 2))

		stored := repo.carts[c.ID]
		require.Len(t, stored.Items, 1)
		assert.Equal(t, int64(3), stored.Items[0].Quantity)
	})

	t.Run("removing full quantity deletes the line", func(t *testing.T) {
		c := mustCreate(t, svc)
		require.NoError(t, svc.AddItem(ctx, c.ID, 100, 2))

		require.NoError(t, svc.RemoveItem(ctx, c.ID, 100, 2))
		assert.Empty(t, repo.carts[c.ID].Items)
	})

	t.Run("removing more than held deletes the line", func(t *testing.T) {
		c := mustCreate(t, svc)
		require.NoError(t, svc.AddItem(ctx, c.ID, 100, 2))

		require.NoError(t, svc.RemoveItem(ctx, c.ID, 100, 10))
		assert.Empty(t, repo.carts[c.ID].Items)
	})

	t.Run("missing line is not found", func(t *testing.T) {
		c := mustCreate(t, svc)

		err := svc.RemoveItem(ctx, c.ID, 100, 1)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestTotal_PricesAtCurrentListPrice(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c := mustCreate(t, svc)

	require.NoError(t, svc.AddItem(ctx, c.ID, 100, 2))
	// A line whose item has since gone inactive prices at zero.
	repo.carts[c.ID].Items = append(repo.carts[c.ID].Items, Item{CartID: c.ID, SKU: 300, Quantity: 4})

	total, err := svc.Total(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(types.MustMoney("179.98")), "total = %s", total)
}

func TestSnapshot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("captures lines", func(t *testing.T) {
		c := mustCreate(t, svc)
		require.NoError(t, svc.AddItem(ctx, c.ID, 100, 2))

		snap, err := svc.Snapshot(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, snap.CartID)
		assert.Equal(t, int64(7), snap.CustomerID)
		require.Len(t, snap.Lines, 1)
		assert.False(t, snap.IsEmpty())
	})

	t.Run("empty cart snapshot is empty", func(t *testing.T) {
		c := mustCreate(t, svc)

		snap, err := svc.Snapshot(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, snap.IsEmpty())
	})
}

func TestClearAndDelete(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	c := mustCreate(t, svc)
	require.NoError(t, svc.AddItem(ctx, c.ID, 100, 1))

	require.NoError(t, svc.Clear(ctx, c.ID))
	assert.Empty(t, repo.carts[c.ID].Items)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err := svc.GetByID(ctx, c.ID)
	assert.True(t, apperror.IsNotFound(err))
}
