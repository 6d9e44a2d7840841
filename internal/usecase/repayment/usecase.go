package repayment

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"microfin-backend/internal/domain/authz"
	loanDomain "microfin-backend/internal/domain/loan"
	domain "microfin-backend/internal/domain/repayment"
	"microfin-backend/internal/domain/uow"
	"microfin-backend/pkg/apperr"
	"microfin-backend/pkg/id"
)

type Usecase struct {
	loanRepo loanDomain.Repository
	repo     domain.Repository
	uow      uow.UnitOfWork

	// nowFn is swapped in tests to pin the overdue clock.
	nowFn func() time.Time
}

func NewUsecase(loans loanDomain.Repository, repayments domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loanRepo: loans, repo: repayments, uow: tx, nowFn: func() time.Time { return time.Now().UTC() }}
}

// Record persists one installment payment. The repayment insert and a
// possible loan completion commit in the same transaction, with the loan
// row locked up-front.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*domain.Repayment, error) {
	if !authz.Allowed(in.Actor.Role, authz.OpRecordRepayment) {
		return nil, apperr.Unauthorizedf("role %q may not record repayments", in.Actor.Role)
	}
	if in.LoanID == 0 || in.AmountPaid <= 0 || in.PaidAt.IsZero() {
		return nil, apperr.Validationf("loan id, amount, payment method and date are required")
	}
	if !in.Method.Valid() {
		return nil, apperr.Validationf("invalid payment method %q", in.Method)
	}
	// Clients that do not bring a gateway reference get a generated one,
	// in the same 32-hex shape the idempotency layer accepts.
	if in.Reference == "" {
		in.Reference = id.NewHex32()
	}

	var rec *domain.Repayment
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusDisbursed {
			return apperr.Conflictf("can only add repayments for disbursed loans (status %q)", l.Status)
		}

		completed, err := r.Repayments.CountCompletedByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		nextEMI := int(completed) + 1
		if nextEMI > l.TenureMonths {
			return apperr.Conflictf("all EMIs for this loan have been paid")
		}

		dueDate := domain.DueDate(*l.DisbursedAt, nextEMI)
		daysLate := domain.DaysLate(dueDate, in.PaidAt)
		lateFee := domain.LateFee(l.MonthlyEMI, daysLate)

		if due := l.MonthlyEMI + lateFee; in.AmountPaid < due {
			return apperr.Validationf("insufficient payment: amount due %d (EMI %d, late fee %d)", due, l.MonthlyEMI, lateFee)
		}

		rec = &domain.Repayment{
			LoanID:     l.ID,
			UserID:     l.UserID,
			AmountPaid: in.AmountPaid,
			Method:     in.Method,
			PaidAt:     in.PaidAt,
			Reference:  in.Reference,
			LateFee:    lateFee,
			EMINumber:  nextEMI,
			Status:     domain.StatusCompleted,
			RecordedBy: in.Actor.ID,
		}
		if err := r.Repayments.Create(ctx, rec); err != nil {
			return err
		}

		// The Nth completed installment closes the loan in the same tx.
		if nextEMI == l.TenureMonths {
			l.Status = loanDomain.StatusCompleted
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			log.Printf("loan %d completed after EMI %d", l.ID, nextEMI)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("loan %d not found", in.LoanID)
		}
		return nil, err
	}
	return rec, nil
}

// Schedule derives the full EMI plan for a loan: one row per installment
// 1..tenure with due date and paid/overdue/pending status.
func (u *Usecase) Schedule(ctx context.Context, loanID uint64) (*ScheduleResult, error) {
	l, err := u.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("loan %d not found", loanID)
		}
		return nil, err
	}
	if l.DisbursedAt == nil {
		return nil, apperr.Conflictf("loan %d has not been disbursed", loanID)
	}

	payments, err := u.repo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	byEMI := make(map[int]*domain.Repayment, len(payments))
	var totalPaid int64
	completed := 0
	for _, p := range payments {
		if p.Status != domain.StatusCompleted {
			continue
		}
		byEMI[p.EMINumber] = p
		totalPaid += p.AmountPaid
		completed++
	}

	today := domain.DateOnly(u.nowFn())
	rows := make([]ScheduleRow, 0, l.TenureMonths)
	for n := 1; n <= l.TenureMonths; n++ {
		due := domain.DueDate(*l.DisbursedAt, n)
		row := ScheduleRow{EMINumber: n, DueDate: due, EMIAmount: l.MonthlyEMI, Status: "pending"}
		if p, ok := byEMI[n]; ok {
			paidAt := p.PaidAt
			row.Status = "paid"
			row.PaidAt = &paidAt
			row.AmountPaid = p.AmountPaid
			row.LateFee = p.LateFee
			row.Method = p.Method
			row.Reference = p.Reference
		} else if due.Before(today) {
			row.Status = "overdue"
		}
		rows = append(rows, row)
	}

	return &ScheduleResult{
		LoanID:        l.ID,
		Schedule:      rows,
		TotalPaid:     totalPaid,
		RemainingEMIs: l.TenureMonths - completed,
	}, nil
}

// ListOverdue scans every disbursed loan for a next unpaid installment
// whose due date has passed, ordered most-overdue first. The late fee is
// the amount accruing as of today.
func (u *Usecase) ListOverdue(ctx context.Context) (*OverdueResult, error) {
	loans, err := u.loanRepo.ListByStatus(ctx, loanDomain.StatusDisbursed)
	if err != nil {
		return nil, err
	}

	today := domain.DateOnly(u.nowFn())
	out := &OverdueResult{Overdue: []OverdueLoan{}}
	for _, l := range loans {
		if l.DisbursedAt == nil {
			continue
		}
		completed, err := u.repo.CountCompletedByLoanID(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		nextEMI := int(completed) + 1
		if nextEMI > l.TenureMonths {
			continue
		}
		due := domain.DueDate(*l.DisbursedAt, nextEMI)
		if !due.Before(today) {
			continue
		}
		days := domain.DaysLate(due, today)
		fee := domain.LateFee(l.MonthlyEMI, days)
		out.Overdue = append(out.Overdue, OverdueLoan{
			LoanID:      l.ID,
			UserID:      l.UserID,
			Category:    string(l.Category),
			EMINumber:   nextEMI,
			EMIAmount:   l.MonthlyEMI,
			DueDate:     due,
			DaysOverdue: days,
			LateFee:     fee,
			TotalDue:    l.MonthlyEMI + fee,
		})
	}

	sort.SliceStable(out.Overdue, func(i, j int) bool {
		return out.Overdue[i].DaysOverdue > out.Overdue[j].DaysOverdue
	})
	out.TotalOverdue = len(out.Overdue)
	for _, o := range out.Overdue {
		out.TotalDue += o.TotalDue
	}
	return out, nil
}

// ListByLoan returns a loan's repayment history, newest first.
func (u *Usecase) ListByLoan(ctx context.Context, loanID uint64) ([]*domain.Repayment, error) {
	if _, err := u.loanRepo.GetByID(ctx, loanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("loan %d not found", loanID)
		}
		return nil, err
	}
	recs, err := u.repo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].PaidAt.After(recs[j].PaidAt) })
	return recs, nil
}

// ListByUser returns a user's repayment history, newest first.
func (u *Usecase) ListByUser(ctx context.Context, userID uint64) ([]*domain.Repayment, error) {
	recs, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].PaidAt.After(recs[j].PaidAt) })
	return recs, nil
}
