package services

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Row is one stored document. Key is an optional unique lookup value
// (account email); it is empty for ordinary records.
type Row[T any] struct {
	ID        string
	OwnerID   string
	Key       string
	Data      T
	CreatedAt time.Time
}

// Table is the persistence the reference API needs: owner-scoped documents
// with no business rules of their own.
type Table[T any] interface {
	Insert(ctx context.Context, row Row[T]) error
	Get(ctx context.Context, id string) (Row[T], error)
	GetByKey(ctx context.Context, key string) (Row[T], error)
	// ListByOwner returns rows in creation order.
	ListByOwner(ctx context.Context, ownerID string) ([]Row[T], error)
	Update(ctx context.Context, id string, data T) error
	Delete(ctx context.Context, id string) error
}

// Data strips rows down to their documents.
func Data[T any](rows []Row[T]) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Data)
	}
	return out
}
