package repayment

import "context"

type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	GetByID(ctx context.Context, id uint64) (*Repayment, error)
	// CountCompletedByLoanID is the source of the next EMI sequence number.
	CountCompletedByLoanID(ctx context.Context, loanID uint64) (int64, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]*Repayment, error)
	ListByUserID(ctx context.Context, userID uint64) ([]*Repayment, error)
}
