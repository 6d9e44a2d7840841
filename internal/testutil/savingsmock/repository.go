package savingsmock

import (
	"context"
	"errors"

	domain "microfin-backend/internal/domain/savings"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("savingsmock: method not implemented")

type Repo struct {
	CreateFn       func(ctx context.Context, e *domain.Entry) error
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.Entry, error)
	ListByUserIDFn func(ctx context.Context, userID uint64) ([]*domain.Entry, error)
	SaveFn         func(ctx context.Context, e *domain.Entry) error
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Entry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByUserID(ctx context.Context, userID uint64) ([]*domain.Entry, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, e *domain.Entry) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}
