package loan

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"microfin-backend/internal/domain/authz"
	"microfin-backend/internal/domain/identity"
	domain "microfin-backend/internal/domain/loan"
	"microfin-backend/internal/testutil/identitymock"
	"microfin-backend/internal/testutil/loanmock"
	"microfin-backend/pkg/apperr"
)

var (
	adminActor    = Actor{ID: 1, Role: authz.RoleAdmin}
	customerActor = Actor{ID: 2, Role: authz.RoleCustomer}
)

func verifiedAdult() *identitymock.Verifier {
	return identitymock.Verified(time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC))
}

func noPendingRepo() *loanmock.Repo {
	return &loanmock.Repo{
		GetPendingByUserIDFn: func(ctx context.Context, userID uint64) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func TestApply_Success(t *testing.T) {
	repo := noPendingRepo()
	repo.CreateFn = func(ctx context.Context, l *domain.Loan) error {
		l.ID = 7
		return nil
	}
	uc := NewUsecase(repo, verifiedAdult())

	l, err := uc.Apply(context.Background(), ApplyInput{
		Actor:         customerActor,
		UserID:        2,
		Category:      domain.CategorySalary,
		Amount:        150_000,
		TenureMonths:  24,
		Purpose:       "home renovation",
		MonthlyIncome: 50_000,
	})
	if err != nil {
		t.Fatalf("Apply err: %v", err)
	}
	if l.Status != domain.StatusPending {
		t.Fatalf("status = %s, want pending", l.Status)
	}
	if l.InterestRate != 15 {
		t.Fatalf("rate = %v, want category rate 15", l.InterestRate)
	}
	if l.MonthlyEMI != domain.ComputeEMI(150_000, 15, 24) {
		t.Fatalf("EMI = %d, want computed from terms", l.MonthlyEMI)
	}
	if l.AppliedAt.IsZero() {
		t.Fatal("applied_at not stamped")
	}
}

func TestApply_RejectsWhenPendingLoanExists(t *testing.T) {
	repo := &loanmock.Repo{
		GetPendingByUserIDFn: func(ctx context.Context, userID uint64) (*domain.Loan, error) {
			return &domain.Loan{ID: 3, UserID: userID, Status: domain.StatusPending}, nil
		},
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			t.Fatal("Create must not be called when a pending loan exists")
			return nil
		},
	}
	uc := NewUsecase(repo, verifiedAdult())

	_, err := uc.Apply(context.Background(), ApplyInput{
		Actor: customerActor, UserID: 2, Category: domain.CategorySalary,
		Amount: 150_000, TenureMonths: 24, Purpose: "x", MonthlyIncome: 50_000,
	})
	if !apperr.IsKind(err, apperr.KindStateConflict) {
		t.Fatalf("want state-conflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "pending loan") {
		t.Fatalf("error %q should mention the pending loan", err)
	}
}

func TestApply_RejectsUnverifiedKYC(t *testing.T) {
	verifier := &identitymock.Verifier{
		ProfileOfFn: func(ctx context.Context, userID uint64) (*identity.Profile, error) {
			return &identity.Profile{UserID: userID, Status: identity.StatusPending}, nil
		},
	}
	uc := NewUsecase(noPendingRepo(), verifier)

	_, err := uc.Apply(context.Background(), ApplyInput{
		Actor: customerActor, UserID: 2, Category: domain.CategorySalary,
		Amount: 150_000, TenureMonths: 24, Purpose: "x", MonthlyIncome: 50_000,
	})
	if !apperr.IsKind(err, apperr.KindStateConflict) || !strings.Contains(err.Error(), "KYC") {
		t.Fatalf("want KYC conflict, got %v", err)
	}
}

func TestApply_RejectsBadCategoryAndTenure(t *testing.T) {
	uc := NewUsecase(noPendingRepo(), verifiedAdult())

	_, err := uc.Apply(context.Background(), ApplyInput{
		Actor: customerActor, UserID: 2, Category: domain.Category("payday"),
		Amount: 10_000, TenureMonths: 6, Purpose: "x", MonthlyIncome: 50_000,
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("want validation error for category, got %v", err)
	}

	// salary tenure is 12-60
	_, err = uc.Apply(context.Background(), ApplyInput{
		Actor: customerActor, UserID: 2, Category: domain.CategorySalary,
		Amount: 150_000, TenureMonths: 6, Purpose: "x", MonthlyIncome: 50_000,
	})
	if !apperr.IsKind(err, apperr.KindValidation) || !strings.Contains(err.Error(), "tenure") {
		t.Fatalf("want tenure validation error, got %v", err)
	}
}

func TestApply_RejectsOnEligibility(t *testing.T) {
	uc := NewUsecase(noPendingRepo(), verifiedAdult())

	// EMI far above half the income
	_, err := uc.Apply(context.Background(), ApplyInput{
		Actor: customerActor, UserID: 2, Category: domain.CategorySalary,
		Amount: 1_000_000, TenureMonths: 24, Purpose: "x", MonthlyIncome: 10_000,
	})
	if !apperr.IsKind(err, apperr.KindValidation) || !strings.Contains(err.Error(), "50%") {
		t.Fatalf("want income-ratio rejection, got %v", err)
	}
}

func TestUpdateStatus_ApproveWithRevisedAmount(t *testing.T) {
	stored := &domain.Loan{
		ID: 5, UserID: 2, Category: domain.CategorySalary, Status: domain.StatusPending,
		Amount: 200_000, InterestRate: 15, TenureMonths: 24,
		MonthlyEMI: domain.ComputeEMI(200_000, 15, 24),
	}
	var saved *domain.Loan
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) { return stored, nil },
		SaveFn:    func(ctx context.Context, l *domain.Loan) error { saved = l; return nil },
	}
	uc := NewUsecase(repo, verifiedAdult())

	l, err := uc.UpdateStatus(context.Background(), UpdateStatusInput{
		Actor: adminActor, LoanID: 5, Status: domain.StatusApproved, ApprovedAmount: 150_000,
	})
	if err != nil {
		t.Fatalf("UpdateStatus err: %v", err)
	}
	if saved == nil {
		t.Fatal("loan not saved")
	}
	if l.Amount != 150_000 || l.MonthlyEMI != domain.ComputeEMI(150_000, 15, 24) {
		t.Fatalf("revised amount not applied: amount=%d emi=%d", l.Amount, l.MonthlyEMI)
	}
	if l.ApprovedAt == nil || l.ApprovedBy == nil || *l.ApprovedBy != adminActor.ID {
		t.Fatal("approval stamps missing")
	}
}

func TestUpdateStatus_RejectRequiresReason(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, verifiedAdult())
	_, err := uc.UpdateStatus(context.Background(), UpdateStatusInput{
		Actor: adminActor, LoanID: 5, Status: domain.StatusRejected,
	})
	if !apperr.IsKind(err, apperr.KindValidation) || !strings.Contains(err.Error(), "reason") {
		t.Fatalf("want reason-required validation, got %v", err)
	}
}

func TestUpdateStatus_DisbursedNeverBackToPending(t *testing.T) {
	now := time.Now().UTC()
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
			return &domain.Loan{ID: 5, Status: domain.StatusDisbursed, DisbursedAt: &now}, nil
		},
	}
	uc := NewUsecase(repo, verifiedAdult())
	_, err := uc.UpdateStatus(context.Background(), UpdateStatusInput{
		Actor: adminActor, LoanID: 5, Status: domain.StatusPending,
	})
	if !apperr.IsKind(err, apperr.KindStateConflict) {
		t.Fatalf("want state-conflict, got %v", err)
	}
}

func TestUpdateStatus_DisbursalStampsTimestamp(t *testing.T) {
	stored := &domain.Loan{ID: 5, Status: domain.StatusApproved, Amount: 100_000, InterestRate: 15, TenureMonths: 12}
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) { return stored, nil },
	}
	uc := NewUsecase(repo, verifiedAdult())
	l, err := uc.UpdateStatus(context.Background(), UpdateStatusInput{
		Actor: adminActor, LoanID: 5, Status: domain.StatusDisbursed,
	})
	if err != nil {
		t.Fatalf("UpdateStatus err: %v", err)
	}
	if l.DisbursedAt == nil {
		t.Fatal("disbursed loan must carry a disbursement timestamp")
	}
}

func TestUpdateStatus_InvalidTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.Status
	}{
		{domain.StatusPending, domain.StatusDisbursed},
		{domain.StatusPending, domain.StatusCompleted},
		{domain.StatusRejected, domain.StatusApproved},
		{domain.StatusCompleted, domain.StatusDisbursed},
		{domain.StatusApproved, domain.StatusRejected},
	}
	for _, c := range cases {
		repo := &loanmock.Repo{
			GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
				return &domain.Loan{ID: 5, Status: c.from}, nil
			},
		}
		uc := NewUsecase(repo, verifiedAdult())
		_, err := uc.UpdateStatus(context.Background(), UpdateStatusInput{
			Actor: adminActor, LoanID: 5, Status: c.to, RejectionReason: "r",
		})
		if !apperr.IsKind(err, apperr.KindStateConflict) {
			t.Fatalf("%s -> %s: want state-conflict, got %v", c.from, c.to, err)
		}
	}
}

func TestUpdateStatus_CustomerForbidden(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, verifiedAdult())
	_, err := uc.UpdateStatus(context.Background(), UpdateStatusInput{
		Actor: customerActor, LoanID: 5, Status: domain.StatusApproved,
	})
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}

func TestEdit_PurposeOnlyKeepsEMI(t *testing.T) {
	emi := domain.ComputeEMI(150_000, 15, 24)
	stored := &domain.Loan{
		ID: 5, Status: domain.StatusPending,
		Amount: 150_000, InterestRate: 15, TenureMonths: 24, MonthlyEMI: emi,
	}
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) { return stored, nil },
	}
	uc := NewUsecase(repo, verifiedAdult())

	purpose := "updated purpose"
	l, err := uc.Edit(context.Background(), EditInput{Actor: adminActor, LoanID: 5, Purpose: &purpose})
	if err != nil {
		t.Fatalf("Edit err: %v", err)
	}
	if l.MonthlyEMI != emi {
		t.Fatalf("purpose-only edit changed EMI: %d -> %d", emi, l.MonthlyEMI)
	}
	if l.Purpose != purpose {
		t.Fatalf("purpose not applied: %q", l.Purpose)
	}
}

func TestEdit_TermChangeRecomputesEMI(t *testing.T) {
	stored := &domain.Loan{
		ID: 5, Status: domain.StatusApproved,
		Amount: 150_000, InterestRate: 15, TenureMonths: 24,
		MonthlyEMI: domain.ComputeEMI(150_000, 15, 24),
	}
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) { return stored, nil },
	}
	uc := NewUsecase(repo, verifiedAdult())

	rate := 0.0
	l, err := uc.Edit(context.Background(), EditInput{Actor: adminActor, LoanID: 5, InterestRate: &rate})
	if err != nil {
		t.Fatalf("Edit err: %v", err)
	}
	// zero-rate policy: even split
	if l.MonthlyEMI != 6_250 {
		t.Fatalf("EMI after zero-rate edit = %d, want 6250", l.MonthlyEMI)
	}
}

func TestEdit_DisbursedLoanRejected(t *testing.T) {
	now := time.Now().UTC()
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
			return &domain.Loan{ID: 5, Status: domain.StatusDisbursed, DisbursedAt: &now}, nil
		},
	}
	uc := NewUsecase(repo, verifiedAdult())
	amount := int64(100_000)
	_, err := uc.Edit(context.Background(), EditInput{Actor: adminActor, LoanID: 5, Amount: &amount})
	if !apperr.IsKind(err, apperr.KindStateConflict) {
		t.Fatalf("want state-conflict, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(repo, verifiedAdult())
	_, err := uc.Get(context.Background(), 99)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("want not-found, got %v", err)
	}
}
