package repaymentmock

import (
	"context"
	"errors"

	domain "microfin-backend/internal/domain/repayment"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("repaymentmock: method not implemented")

type Repo struct {
	CreateFn                 func(ctx context.Context, r *domain.Repayment) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Repayment, error)
	CountCompletedByLoanIDFn func(ctx context.Context, loanID uint64) (int64, error)
	ListByLoanIDFn           func(ctx context.Context, loanID uint64) ([]*domain.Repayment, error)
	ListByUserIDFn           func(ctx context.Context, userID uint64) ([]*domain.Repayment, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Repayment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) CountCompletedByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountCompletedByLoanIDFn != nil {
		return m.CountCompletedByLoanIDFn(ctx, loanID)
	}
	return 0, errUnimplemented
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]*domain.Repayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByUserID(ctx context.Context, userID uint64) ([]*domain.Repayment, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}
