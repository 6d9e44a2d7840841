package loan

import "context"

// ListFilter narrows the admin listing; zero values mean "no filter".
type ListFilter struct {
	Status   Status
	Category Category
	Page     int
	Limit    int
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the loan row for the current transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	GetPendingByUserID(ctx context.Context, userID uint64) (*Loan, error)
	ListByUserID(ctx context.Context, userID uint64) ([]*Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]*Loan, error)
	// List returns the filtered page newest-applied first, plus the
	// unpaginated total for the filter.
	List(ctx context.Context, f ListFilter) ([]*Loan, int64, error)
	Save(ctx context.Context, l *Loan) error
}
