package mysql

import (
	"context"

	"gorm.io/gorm"

	savingsDomain "microfin-backend/internal/domain/savings"
)

type SavingsRepository struct{ db *gorm.DB }

func NewSavingsRepository(db *gorm.DB) *SavingsRepository {
	return &SavingsRepository{db: db}
}

func (r *SavingsRepository) Create(ctx context.Context, e *savingsDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *SavingsRepository) Save(ctx context.Context, e *savingsDomain.Entry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *SavingsRepository) GetByID(ctx context.Context, id uint64) (*savingsDomain.Entry, error) {
	var out savingsDomain.Entry
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// ListByUserID returns stored order (id ascending); the balance fold
// depends on it.
func (r *SavingsRepository) ListByUserID(ctx context.Context, userID uint64) ([]*savingsDomain.Entry, error) {
	var out []*savingsDomain.Entry
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
