package savings

import (
	"time"

	"gorm.io/gorm"
)

type TxType string

const (
	TypeDeposit    TxType = "deposit"
	TypeWithdrawal TxType = "withdrawal"
)

func (t TxType) Valid() bool { return t == TypeDeposit || t == TypeWithdrawal }

type Entry struct {
	ID          uint64         `gorm:"primaryKey;column:id" json:"saving_id"`
	UserID      uint64         `gorm:"column:user_id;index:idx_savings_user" json:"user_id"`
	Amount      int64          `gorm:"column:amount" json:"amount"`
	Type        TxType         `gorm:"column:transaction_type;size:16" json:"transaction_type"`
	Date        time.Time      `gorm:"column:date;type:date" json:"date"`
	Description string         `gorm:"column:description;type:text" json:"description,omitempty"`
	RecordedBy  uint64         `gorm:"column:recorded_by" json:"recorded_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Entry) TableName() string { return "savings" }

// Balance folds entries in stored order: +amount for deposits, -amount
// for withdrawals. Callers enforce that the result never goes negative.
func Balance(entries []*Entry) int64 {
	var bal int64
	for _, e := range entries {
		switch e.Type {
		case TypeDeposit:
			bal += e.Amount
		case TypeWithdrawal:
			bal -= e.Amount
		}
	}
	return bal
}
