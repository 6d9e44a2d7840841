package savings

import (
	"time"

	"microfin-backend/internal/domain/authz"
	domain "microfin-backend/internal/domain/savings"
)

type Actor struct {
	ID   uint64     `json:"-"`
	Role authz.Role `json:"-"`
}

type RecordInput struct {
	Actor       Actor
	UserID      uint64        `json:"user_id"`
	Amount      int64         `json:"amount"`
	Type        domain.TxType `json:"transaction_type"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
}

type UpdateInput struct {
	Actor       Actor
	EntryID     uint64
	Amount      *int64         `json:"amount"`
	Type        *domain.TxType `json:"transaction_type"`
	Date        *time.Time     `json:"date"`
	Description *string        `json:"description"`
}

type HistoryResult struct {
	UserID           uint64          `json:"user_id"`
	CurrentBalance   int64           `json:"current_balance"`
	TotalDeposits    int64           `json:"total_deposits"`
	TotalWithdrawals int64           `json:"total_withdrawals"`
	TransactionCount int             `json:"transaction_count"`
	Transactions     []*domain.Entry `json:"transactions"`
}
