package savings

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"microfin-backend/internal/domain/authz"
	domain "microfin-backend/internal/domain/savings"
	"microfin-backend/internal/domain/uow"
	"microfin-backend/pkg/apperr"
)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

// Record appends a deposit or withdrawal. The balance check and the
// insert share one transaction so two concurrent withdrawals cannot both
// pass the check.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*domain.Entry, error) {
	if !authz.Allowed(in.Actor.Role, authz.OpRecordSavings) {
		return nil, apperr.Unauthorizedf("role %q may not record savings", in.Actor.Role)
	}
	if !in.Type.Valid() {
		return nil, apperr.Validationf("transaction type must be %q or %q", domain.TypeDeposit, domain.TypeWithdrawal)
	}
	if in.Amount <= 0 {
		return nil, apperr.Validationf("amount must be greater than 0")
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}
	// Customers may only move their own savings; staff may target anyone.
	userID := in.UserID
	if !in.Actor.Role.Staff() {
		userID = in.Actor.ID
	}
	if userID == 0 {
		return nil, apperr.Validationf("user id is required")
	}

	entry := &domain.Entry{
		UserID:      userID,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        in.Date,
		Description: in.Description,
		RecordedBy:  in.Actor.ID,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if in.Type == domain.TypeWithdrawal {
			entries, err := r.Savings.ListByUserID(ctx, userID)
			if err != nil {
				return err
			}
			if bal := domain.Balance(entries); bal < in.Amount {
				return apperr.Conflictf("insufficient balance: available %d", bal)
			}
		}
		return r.Savings.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Update edits an existing entry and revalidates the owner's entire
// history. A would-be-negative balance aborts the transaction, so the
// stored entry is untouched on failure.
func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*domain.Entry, error) {
	if !authz.Allowed(in.Actor.Role, authz.OpUpdateSavings) {
		return nil, apperr.Unauthorizedf("role %q may not update savings entries", in.Actor.Role)
	}
	if in.Amount != nil && *in.Amount <= 0 {
		return nil, apperr.Validationf("amount must be greater than 0")
	}
	if in.Type != nil && !in.Type.Valid() {
		return nil, apperr.Validationf("transaction type must be %q or %q", domain.TypeDeposit, domain.TypeWithdrawal)
	}

	var updated *domain.Entry
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		entry, err := r.Savings.GetByID(ctx, in.EntryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("savings entry %d not found", in.EntryID)
			}
			return err
		}
		if in.Amount != nil {
			entry.Amount = *in.Amount
		}
		if in.Type != nil {
			entry.Type = *in.Type
		}
		if in.Date != nil {
			entry.Date = *in.Date
		}
		if in.Description != nil {
			entry.Description = *in.Description
		}
		if err := r.Savings.Save(ctx, entry); err != nil {
			return err
		}

		entries, err := r.Savings.ListByUserID(ctx, entry.UserID)
		if err != nil {
			return err
		}
		if bal := domain.Balance(entries); bal < 0 {
			return apperr.Conflictf("update would result in negative balance")
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *Usecase) BalanceOf(ctx context.Context, userID uint64) (int64, error) {
	entries, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return domain.Balance(entries), nil
}

// History returns a user's entries newest first, with running totals.
func (u *Usecase) History(ctx context.Context, userID uint64) (*HistoryResult, error) {
	entries, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := &HistoryResult{UserID: userID, TransactionCount: len(entries)}
	res.CurrentBalance = domain.Balance(entries)
	for _, e := range entries {
		switch e.Type {
		case domain.TypeDeposit:
			res.TotalDeposits += e.Amount
		case domain.TypeWithdrawal:
			res.TotalWithdrawals += e.Amount
		}
	}
	sorted := make([]*domain.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	res.Transactions = sorted
	return res, nil
}
