package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDisbursed Status = "disbursed"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDisbursed, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool { return s == StatusRejected || s == StatusCompleted }

type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"loan_id"`
	UserID          uint64         `gorm:"column:user_id;index:idx_loans_user" json:"user_id"`
	Category        Category       `gorm:"column:category;size:16;index:idx_loans_category" json:"category"`
	Amount          int64          `gorm:"column:amount" json:"amount"`
	InterestRate    float64        `gorm:"column:interest_rate;type:decimal(6,3)" json:"interest_rate"`
	TenureMonths    int            `gorm:"column:tenure_months" json:"tenure_months"`
	MonthlyEMI      int64          `gorm:"column:monthly_emi" json:"monthly_emi"`
	Purpose         string         `gorm:"column:purpose;type:text" json:"purpose"`
	Status          Status         `gorm:"column:status;size:16;default:'pending';index:idx_loans_status" json:"status"`
	RejectionReason string         `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	AppliedAt       time.Time      `gorm:"column:applied_at" json:"applied_at"`
	ApprovedBy      *uint64        `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DisbursedAt     *time.Time     `gorm:"column:disbursed_at" json:"disbursed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Editable reports whether amount/rate/tenure/purpose edits are allowed.
// Once a loan is disbursed its terms are frozen.
func (l *Loan) Editable() bool {
	return l.Status == StatusPending || l.Status == StatusApproved
}

// RecomputeEMI refreshes the stored installment from the current terms.
// Must be called whenever amount, rate or tenure changes.
func (l *Loan) RecomputeEMI() {
	l.MonthlyEMI = ComputeEMI(l.Amount, l.InterestRate, l.TenureMonths)
}
