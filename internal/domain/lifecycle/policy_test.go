package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
)

type record struct {
	entity.BaseEntity
}

type fakeStore struct {
	records map[int64]*record
	marks   int // SetDeletionMark call count
}

func (s *fakeStore) GetAnyByID(ctx context.Context, id int64) (*record, error) {
	r, ok := s.records[id]
	if !ok {
		return nil, apperror.NewNotFound("record", id)
	}
	return r, nil
}

func (s *fakeStore) SetDeletionMark(ctx context.Context, id int64, marked bool) error {
	s.marks++
	s.records[id].DeletionMark = marked
	return nil
}

func newTestPolicy() (*Policy[*record], *fakeStore) {
	store := &fakeStore{records: map[int64]*record{
		1: {},
		2: {BaseEntity: entity.BaseEntity{DeletionMark: true}},
	}}
	return NewPolicy[*record](store, "record"), store
}

func TestDelete_MarksEntity(t *testing.T) {
	policy, store := newTestPolicy()

	require.NoError(t, policy.Delete(context.Background(), 1))
	assert.True(t, store.records[1].DeletionMark)
}

func TestDelete_AlreadyDeletedIsNoOp(t *testing.T) {
	policy, store := newTestPolicy()

	require.NoError(t, policy.Delete(context.Background(), 2))
	assert.Zero(t, store.marks)
	assert.True(t, store.records[2].DeletionMark)
}

func TestDelete_MissingIsNotFound(t *testing.T) {
	policy, _ := newTestPolicy()

	err := policy.Delete(context.Background(), 99)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUndelete_ClearsMark(t *testing.T) {
	policy, store := newTestPolicy()

	require.NoError(t, policy.Undelete(context.Background(), 2))
	assert.False(t, store.records[2].DeletionMark)
}

func TestUndelete_ActiveEntityFails(t *testing.T) {
	policy, store := newTestPolicy()

	err := policy.Undelete(context.Background(), 1)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotDeleted))
	assert.Zero(t, store.marks)
}

func TestUndelete_MissingIsNotFound(t *testing.T) {
	policy, _ := newTestPolicy()

	err := policy.Undelete(context.Background(), 99)
	assert.True(t, apperror.IsNotFound(err))
}
