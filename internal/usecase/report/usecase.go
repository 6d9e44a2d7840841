// Package report aggregates the loan and repayment ledgers into the
// portfolio-at-risk view. Read-only; shares the due-date routine with the
// repayment ledger so the two cannot disagree on what is overdue.
package report

import (
	"context"
	"time"

	loanDomain "microfin-backend/internal/domain/loan"
	repayDomain "microfin-backend/internal/domain/repayment"
)

type Portfolio struct {
	TotalDisbursed   int64   `json:"total_disbursed_amount"`
	DisbursedCount   int     `json:"disbursed_count"`
	OverdueAmount    int64   `json:"overdue_amount"`
	OverdueCount     int     `json:"overdue_count"`
	PortfolioAtRisk  float64 `json:"portfolio_at_risk_pct"`
}

type Usecase struct {
	loanRepo  loanDomain.Repository
	repayRepo repayDomain.Repository

	nowFn func() time.Time
}

func NewUsecase(loans loanDomain.Repository, repayments repayDomain.Repository) *Usecase {
	return &Usecase{loanRepo: loans, repayRepo: repayments, nowFn: func() time.Time { return time.Now().UTC() }}
}

// Portfolio sums outstanding disbursed principal and the EMI amounts
// currently overdue; portfolio at risk is their ratio as a percentage.
func (u *Usecase) Portfolio(ctx context.Context) (*Portfolio, error) {
	loans, err := u.loanRepo.ListByStatus(ctx, loanDomain.StatusDisbursed)
	if err != nil {
		return nil, err
	}

	today := repayDomain.DateOnly(u.nowFn())
	out := &Portfolio{}
	for _, l := range loans {
		out.TotalDisbursed += l.Amount
		out.DisbursedCount++
		if l.DisbursedAt == nil {
			continue
		}
		completed, err := u.repayRepo.CountCompletedByLoanID(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		nextEMI := int(completed) + 1
		if nextEMI > l.TenureMonths {
			continue
		}
		if repayDomain.DueDate(*l.DisbursedAt, nextEMI).Before(today) {
			out.OverdueAmount += l.MonthlyEMI
			out.OverdueCount++
		}
	}
	if out.TotalDisbursed > 0 {
		out.PortfolioAtRisk = float64(out.OverdueAmount) / float64(out.TotalDisbursed) * 100
	}
	return out, nil
}
