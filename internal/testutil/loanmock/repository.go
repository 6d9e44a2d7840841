package loanmock

import (
	"context"
	"errors"

	domain "microfin-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock satisfying loan.Repository. Fill in
// only the fields a test needs.
type Repo struct {
	CreateFn             func(ctx context.Context, l *domain.Loan) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn   func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetPendingByUserIDFn func(ctx context.Context, userID uint64) (*domain.Loan, error)
	ListByUserIDFn       func(ctx context.Context, userID uint64) ([]*domain.Loan, error)
	ListByStatusFn       func(ctx context.Context, status domain.Status) ([]*domain.Loan, error)
	ListFn               func(ctx context.Context, f domain.ListFilter) ([]*domain.Loan, int64, error)
	SaveFn               func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetPendingByUserID(ctx context.Context, userID uint64) (*domain.Loan, error) {
	if m.GetPendingByUserIDFn != nil {
		return m.GetPendingByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByUserID(ctx context.Context, userID uint64) ([]*domain.Loan, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]*domain.Loan, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
