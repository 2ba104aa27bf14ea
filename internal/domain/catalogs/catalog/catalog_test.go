package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/domain"
)

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	nextID   int64
	catalogs map[int64]*Catalog
}

func (r *fakeRepo) Create(ctx context.Context, c *Catalog) error {
	r.nextID++
	c.ID = r.nextID
	r.catalogs[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*Catalog, error) {
	c, ok := r.catalogs[id]
	if !ok || c.DeletionMark {
		return nil, apperror.NewNotFound("catalog", id)
	}
	return c, nil
}

func (r *fakeRepo) GetAnyByID(ctx context.Context, id int64) (*Catalog, error) {
	c, ok := r.catalogs[id]
	if !ok {
		return nil, apperror.NewNotFound("catalog", id)
	}
	return c, nil
}

func (r *fakeRepo) Update(ctx context.Context, c *Catalog) error { return nil }

func (r *fakeRepo) SetDeletionMark(ctx context.Context, id int64, marked bool) error {
	c, ok := r.catalogs[id]
	if !ok {
		return apperror.NewNotFound("catalog", id)
	}
	c.DeletionMark = marked
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Catalog], error) {
	return domain.ListResult[*Catalog]{}, nil
}

func (r *fakeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	c, ok := r.catalogs[id]
	return ok && !c.DeletionMark, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{catalogs: make(map[int64]*Catalog)}
	return NewService(repo, passthroughTxManager{}), repo
}

func TestNewCatalogIsActive(t *testing.T) {
	c := NewCatalog("Retail Catalog")
	assert.Equal(t, "Retail Catalog", c.Name)
	assert.True(t, c.Active)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Create(context.Background(), NewCatalog(""))
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCatalogSoftDeleteLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c := NewCatalog("Seasonal")
	require.NoError(t, svc.Create(ctx, c))

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err := svc.GetByID(ctx, c.ID)
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, svc.Undelete(ctx, c.ID))
	got, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seasonal", got.Name)
}
