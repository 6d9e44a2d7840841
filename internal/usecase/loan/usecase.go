package loan

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"microfin-backend/internal/domain/authz"
	"microfin-backend/internal/domain/identity"
	domain "microfin-backend/internal/domain/loan"
	"microfin-backend/pkg/apperr"
)

type Usecase struct {
	repo     domain.Repository
	verifier identity.Verifier
}

func NewUsecase(r domain.Repository, v identity.Verifier) *Usecase {
	return &Usecase{repo: r, verifier: v}
}

// Apply creates a loan application in pending state. All checks happen
// before the insert; a rejected application writes nothing.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*domain.Loan, error) {
	if !authz.Allowed(in.Actor.Role, authz.OpApplyLoan) {
		return nil, apperr.Unauthorizedf("role %q may not apply for loans", in.Actor.Role)
	}
	if in.UserID == 0 || in.Amount <= 0 || in.TenureMonths <= 0 || in.Purpose == "" || in.MonthlyIncome <= 0 {
		return nil, apperr.Validationf("all required fields must be provided")
	}

	cfg, ok := domain.ConfigFor(in.Category)
	if !ok {
		return nil, apperr.Validationf("invalid loan category %q", in.Category)
	}
	if in.TenureMonths < cfg.MinTenure || in.TenureMonths > cfg.MaxTenure {
		return nil, apperr.Validationf("tenure must be between %d-%d months", cfg.MinTenure, cfg.MaxTenure)
	}

	profile, err := u.verifier.ProfileOf(ctx, in.UserID)
	if err != nil || profile.Status != identity.StatusVerified {
		return nil, apperr.Conflictf("KYC verification required before loan application")
	}

	// One outstanding application at a time.
	pending, err := u.repo.GetPendingByUserID(ctx, in.UserID)
	switch {
	case err == nil:
		return nil, apperr.Conflictf("user %d already has a pending loan application (loan %d)", in.UserID, pending.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	elig := domain.CheckEligibility(in.Amount, in.MonthlyIncome, cfg, profile.AgeAt(now))
	if !elig.Eligible {
		return nil, apperr.Validationf("%s", elig.Reason)
	}

	l := &domain.Loan{
		UserID:       in.UserID,
		Category:     in.Category,
		Amount:       in.Amount,
		InterestRate: cfg.InterestRate,
		TenureMonths: in.TenureMonths,
		MonthlyEMI:   domain.ComputeEMI(in.Amount, cfg.InterestRate, in.TenureMonths),
		Purpose:      in.Purpose,
		Status:       domain.StatusPending,
		AppliedAt:    now,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// transitions is the loan state machine; absent keys are terminal states.
var transitions = map[domain.Status][]domain.Status{
	domain.StatusPending:   {domain.StatusApproved, domain.StatusRejected},
	domain.StatusApproved:  {domain.StatusDisbursed},
	domain.StatusDisbursed: {domain.StatusCompleted},
}

func canTransition(from, to domain.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves a loan through the state machine. Approval may
// revise the amount (installment recomputed at the stored rate/tenure);
// disbursal stamps the timestamp that anchors all due-date arithmetic.
func (u *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*domain.Loan, error) {
	if !authz.Allowed(in.Actor.Role, authz.OpUpdateLoanStatus) {
		return nil, apperr.Unauthorizedf("role %q may not update loan status", in.Actor.Role)
	}
	if !in.Status.Valid() {
		return nil, apperr.Validationf("invalid status %q", in.Status)
	}
	if in.Status == domain.StatusRejected && in.RejectionReason == "" {
		return nil, apperr.Validationf("rejection reason is required")
	}

	l, err := u.repo.GetByID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("loan %d not found", in.LoanID)
		}
		return nil, err
	}

	if l.Status == domain.StatusDisbursed && in.Status == domain.StatusPending {
		return nil, apperr.Conflictf("cannot change a disbursed loan back to pending")
	}
	if !canTransition(l.Status, in.Status) {
		return nil, apperr.Conflictf("cannot move loan from %q to %q", l.Status, in.Status)
	}

	now := time.Now().UTC()
	switch in.Status {
	case domain.StatusApproved:
		l.ApprovedBy = &in.Actor.ID
		l.ApprovedAt = &now
		if in.ApprovedAmount > 0 && in.ApprovedAmount != l.Amount {
			l.Amount = in.ApprovedAmount
			l.RecomputeEMI()
		}
	case domain.StatusRejected:
		l.RejectionReason = in.RejectionReason
	case domain.StatusDisbursed:
		l.DisbursedAt = &now
	}
	l.Status = in.Status

	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	log.Printf("loan %d status -> %s by actor %d", l.ID, l.Status, in.Actor.ID)
	return l, nil
}

// Edit changes terms while the loan is still pending or approved. The
// update is validated on a copy and committed in a single save, so a
// rejected edit changes nothing.
func (u *Usecase) Edit(ctx context.Context, in EditInput) (*domain.Loan, error) {
	if !authz.Allowed(in.Actor.Role, authz.OpEditLoan) {
		return nil, apperr.Unauthorizedf("role %q may not edit loans", in.Actor.Role)
	}

	l, err := u.repo.GetByID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("loan %d not found", in.LoanID)
		}
		return nil, err
	}
	if !l.Editable() {
		return nil, apperr.Conflictf("cannot edit loan in status %q", l.Status)
	}

	termsChanged := false
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, apperr.Validationf("amount must be greater than 0")
		}
		l.Amount = *in.Amount
		termsChanged = true
	}
	if in.InterestRate != nil {
		if *in.InterestRate < 0 {
			return nil, apperr.Validationf("interest rate must not be negative")
		}
		l.InterestRate = *in.InterestRate
		termsChanged = true
	}
	if in.TenureMonths != nil {
		if *in.TenureMonths <= 0 {
			return nil, apperr.Validationf("tenure must be greater than 0")
		}
		l.TenureMonths = *in.TenureMonths
		termsChanged = true
	}
	if in.Purpose != nil {
		l.Purpose = *in.Purpose
	}
	if termsChanged {
		l.RecomputeEMI()
	}

	if err := u.repo.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*domain.Loan, error) {
	l, err := u.repo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("loan %d not found", loanID)
		}
		return nil, err
	}
	return l, nil
}

func (u *Usecase) ListByUser(ctx context.Context, userID uint64) ([]*domain.Loan, error) {
	return u.repo.ListByUserID(ctx, userID)
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = 10
	}
	loans, total, err := u.repo.List(ctx, domain.ListFilter{
		Status:   in.Status,
		Category: in.Category,
		Page:     in.Page,
		Limit:    in.Limit,
	})
	if err != nil {
		return nil, err
	}
	pages := (total + int64(in.Limit) - 1) / int64(in.Limit)
	return &ListResult{Loans: loans, Page: in.Page, Limit: in.Limit, Total: total, TotalPages: pages}, nil
}

// Configs exposes the category table (bounds and rates) to the API.
func (u *Usecase) Configs() map[domain.Category]domain.CategoryConfig {
	return domain.Configs()
}
