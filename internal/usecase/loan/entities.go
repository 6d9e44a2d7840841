package loan

import (
	domain "microfin-backend/internal/domain/loan"

	"microfin-backend/internal/domain/authz"
)

// Actor identifies who invokes an operation; mutating operations run it
// through the authz policy.
type Actor struct {
	ID   uint64     `json:"-"`
	Role authz.Role `json:"-"`
}

type ApplyInput struct {
	Actor         Actor
	UserID        uint64          `json:"user_id"`
	Category      domain.Category `json:"category"`
	Amount        int64           `json:"amount"`
	TenureMonths  int             `json:"tenure_months"`
	Purpose       string          `json:"purpose"`
	MonthlyIncome int64           `json:"monthly_income"`
}

type UpdateStatusInput struct {
	Actor           Actor
	LoanID          uint64
	Status          domain.Status `json:"status"`
	RejectionReason string        `json:"rejection_reason"`
	// ApprovedAmount, when non-zero on approval, revises the principal
	// and recomputes the installment.
	ApprovedAmount int64 `json:"approved_amount"`
}

type EditInput struct {
	Actor        Actor
	LoanID       uint64
	Amount       *int64   `json:"amount"`
	InterestRate *float64 `json:"interest_rate"`
	TenureMonths *int     `json:"tenure_months"`
	Purpose      *string  `json:"purpose"`
}

type ListInput struct {
	Status   domain.Status
	Category domain.Category
	Page     int
	Limit    int
}

type ListResult struct {
	Loans      []*domain.Loan `json:"loans"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"total_pages"`
}
