package repayment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusPending   Status = "pending"
)

type Method string

const (
	MethodBkash        Method = "bKash"
	MethodNagad        Method = "Nagad"
	MethodRocket       Method = "Rocket"
	MethodBankTransfer Method = "bank_transfer"
	MethodCash         Method = "cash"
)

func (m Method) Valid() bool {
	switch m {
	case MethodBkash, MethodNagad, MethodRocket, MethodBankTransfer, MethodCash:
		return true
	}
	return false
}

type Repayment struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"repayment_id"`
	LoanID     uint64         `gorm:"column:loan_id;index:idx_repayments_loan" json:"loan_id"`
	UserID     uint64         `gorm:"column:user_id;index:idx_repayments_user" json:"user_id"`
	AmountPaid int64          `gorm:"column:amount_paid" json:"amount_paid"`
	Method     Method         `gorm:"column:payment_method;size:16" json:"payment_method"`
	PaidAt     time.Time      `gorm:"column:payment_date;type:date" json:"payment_date"`
	Reference  string         `gorm:"column:transaction_reference;size:64" json:"transaction_reference,omitempty"`
	LateFee    int64          `gorm:"column:late_fee" json:"late_fee"`
	EMINumber  int            `gorm:"column:emi_number" json:"emi_number"`
	Status     Status         `gorm:"column:status;size:16;default:'completed'" json:"status"`
	RecordedBy uint64         `gorm:"column:recorded_by" json:"recorded_by"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Repayment) TableName() string { return "repayments" }
