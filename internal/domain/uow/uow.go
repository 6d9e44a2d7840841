package uow

import (
	"context"

	"microfin-backend/internal/domain/loan"
	"microfin-backend/internal/domain/repayment"
	"microfin-backend/internal/domain/savings"
)

type Repos struct {
	Loans      loan.Repository
	Repayments repayment.Repository
	Savings    savings.Repository
}

// UnitOfWork runs compound mutations atomically: everything inside fn
// commits together or not at all (repayment insert + loan completion,
// savings edit + balance revalidation).
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in.
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
