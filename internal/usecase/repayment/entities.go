package repayment

import (
	"time"

	"microfin-backend/internal/domain/authz"
	domain "microfin-backend/internal/domain/repayment"
)

type Actor struct {
	ID   uint64     `json:"-"`
	Role authz.Role `json:"-"`
}

type RecordInput struct {
	Actor      Actor
	LoanID     uint64        `json:"loan_id"`
	AmountPaid int64         `json:"amount_paid"`
	Method     domain.Method `json:"payment_method"`
	PaidAt     time.Time     `json:"payment_date"`
	Reference  string        `json:"transaction_reference"`
}

// ScheduleRow is one line of the derived EMI schedule; never persisted.
type ScheduleRow struct {
	EMINumber  int           `json:"emi_number"`
	DueDate    time.Time     `json:"due_date"`
	EMIAmount  int64         `json:"emi_amount"`
	Status     string        `json:"status"` // paid | overdue | pending
	PaidAt     *time.Time    `json:"payment_date,omitempty"`
	AmountPaid int64         `json:"amount_paid,omitempty"`
	LateFee    int64         `json:"late_fee,omitempty"`
	Method     domain.Method `json:"payment_method,omitempty"`
	Reference  string        `json:"transaction_reference,omitempty"`
}

type ScheduleResult struct {
	LoanID        uint64        `json:"loan_id"`
	Schedule      []ScheduleRow `json:"emi_schedule"`
	TotalPaid     int64         `json:"total_paid"`
	RemainingEMIs int           `json:"remaining_emis"`
}

type OverdueLoan struct {
	LoanID       uint64    `json:"loan_id"`
	UserID       uint64    `json:"user_id"`
	Category     string    `json:"category"`
	EMINumber    int       `json:"emi_number"`
	EMIAmount    int64     `json:"emi_amount"`
	DueDate      time.Time `json:"due_date"`
	DaysOverdue  int       `json:"days_overdue"`
	LateFee      int64     `json:"late_fee"`
	TotalDue     int64     `json:"total_amount_due"`
}

type OverdueResult struct {
	Overdue      []OverdueLoan `json:"overdue"`
	TotalOverdue int           `json:"total_overdue"`
	TotalDue     int64         `json:"total_overdue_amount"`
}
