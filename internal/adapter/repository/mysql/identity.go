package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"microfin-backend/internal/domain/identity"
)

// kycRecord mirrors the KYC collaborator's table; the core only reads
// the columns the identity port exposes.
type kycRecord struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	UserID      uint64    `gorm:"column:user_id;uniqueIndex:ux_kyc_user"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;type:date"`
	Status      string    `gorm:"column:status;size:16"`
}

func (kycRecord) TableName() string { return "kyc_records" }

type IdentityRepository struct{ db *gorm.DB }

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

var _ identity.Verifier = (*IdentityRepository)(nil)

func (r *IdentityRepository) ProfileOf(ctx context.Context, userID uint64) (*identity.Profile, error) {
	var rec kycRecord
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec)
	if res.Error != nil {
		return nil, res.Error
	}
	return &identity.Profile{
		UserID:      rec.UserID,
		DateOfBirth: rec.DateOfBirth,
		Status:      identity.Status(rec.Status),
	}, nil
}
