package mysql

import (
	"context"

	"gorm.io/gorm"

	repayDomain "microfin-backend/internal/domain/repayment"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository {
	return &RepaymentRepository{db: db}
}

func (r *RepaymentRepository) Create(ctx context.Context, rec *repayDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RepaymentRepository) GetByID(ctx context.Context, id uint64) (*repayDomain.Repayment, error) {
	var out repayDomain.Repayment
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *RepaymentRepository) CountCompletedByLoanID(ctx context.Context, loanID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&repayDomain.Repayment{}).
		Where("loan_id = ? AND status = ?", loanID, repayDomain.StatusCompleted).
		Count(&n)
	return n, res.Error
}

func (r *RepaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]*repayDomain.Repayment, error) {
	var out []*repayDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("emi_number ASC").
		Find(&out)
	return out, res.Error
}

func (r *RepaymentRepository) ListByUserID(ctx context.Context, userID uint64) ([]*repayDomain.Repayment, error) {
	var out []*repayDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("payment_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}
