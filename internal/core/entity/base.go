package entity

import (
	"context"
	"time"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Deletable is implemented by entities subject to the soft-delete lifecycle.
type Deletable interface {
	GetID() int64
	IsDeleted() bool
	MarkDeleted()
	Undelete()
}

// BaseEntity contains common fields for all persisted aggregates.
type BaseEntity struct {
	// ID is the database-assigned primary key.
	ID int64 `db:"id" json:"id"`

	// DeletionMark indicates a soft-deleted entity.
	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`

	// Version for optimistic locking (incremented on each update).
	Version int `db:"version" json:"version"`

	// Audit timestamps.
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBaseEntity creates a BaseEntity with timestamps set; the ID is
// assigned by the repository on insert.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the primary key.
func (b *BaseEntity) GetID() int64 {
	return b.ID
}

// SetID assigns the primary key (used by the repository after insert).
func (b *BaseEntity) SetID(id int64) {
	b.ID = id
}

// Touch updates the UpdatedAt timestamp and increments version.
func (b *BaseEntity) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// GetVersion returns the optimistic lock version.
func (b *BaseEntity) GetVersion() int {
	return b.Version
}

// SetVersion updates the version number (used by the repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}

// IsDeleted reports whether the deletion mark is set.
func (b *BaseEntity) IsDeleted() bool {
	return b.DeletionMark
}

// MarkDeleted sets the deletion mark.
func (b *BaseEntity) MarkDeleted() {
	b.DeletionMark = true
}

// Undelete clears the deletion mark.
func (b *BaseEntity) Undelete() {
	b.DeletionMark = false
}
