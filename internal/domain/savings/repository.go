package savings

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uint64) (*Entry, error)
	// ListByUserID returns entries in stored (id ascending) order; the
	// balance fold depends on that ordering.
	ListByUserID(ctx context.Context, userID uint64) ([]*Entry, error)
	Save(ctx context.Context, e *Entry) error
}
