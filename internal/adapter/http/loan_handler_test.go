package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	loanDomain "microfin-backend/internal/domain/loan"
	"microfin-backend/internal/testutil/identitymock"
	"microfin-backend/internal/testutil/loanmock"
	uc "microfin-backend/internal/usecase/loan"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newLoanHandler(repo *loanmock.Repo) *LoanHandler {
	verifier := identitymock.Verified(time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC))
	return NewLoanHandler(uc.NewUsecase(repo, verifier))
}

func doJSON(e *echo.Echo, method, target, body string, hdrs map[string]string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdrs {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

var staffHeaders = map[string]string{"Ax-Actor-Id": "1", "Ax-Actor-Role": "admin"}

func TestLoanHandler_Apply_Created(t *testing.T) {
	repo := &loanmock.Repo{
		GetPendingByUserIDFn: func(ctx context.Context, userID uint64) (*loanDomain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, l *loanDomain.Loan) error {
			l.ID = 42
			return nil
		},
	}
	h := newLoanHandler(repo)
	e := newEcho()

	body := `{"user_id":2,"category":"salary","amount":150000,"tenure_months":24,"purpose":"home renovation","monthly_income":50000}`
	rec, c := doJSON(e, http.MethodPost, "/loans/apply", body,
		map[string]string{"Ax-Actor-Id": "2", "Ax-Actor-Role": "customer"})

	if err := h.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var got loanDomain.Loan
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 42 || got.Status != loanDomain.StatusPending {
		t.Fatalf("body = %+v", got)
	}
}

func TestLoanHandler_Apply_ValidationFailed(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{})
	e := newEcho()

	rec, c := doJSON(e, http.MethodPost, "/loans/apply",
		`{"category":"payday","amount":-1}`, staffHeaders)

	if err := h.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Details) == 0 {
		t.Fatalf("want field details, got %+v", resp)
	}
}

func TestLoanHandler_Apply_MissingActorHeaders(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{})
	e := newEcho()

	rec, c := doJSON(e, http.MethodPost, "/loans/apply", `{}`, nil)
	if err := h.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoanHandler_Apply_PendingConflict(t *testing.T) {
	repo := &loanmock.Repo{
		GetPendingByUserIDFn: func(ctx context.Context, userID uint64) (*loanDomain.Loan, error) {
			return &loanDomain.Loan{ID: 3, UserID: userID, Status: loanDomain.StatusPending}, nil
		},
	}
	h := newLoanHandler(repo)
	e := newEcho()

	body := `{"user_id":2,"category":"salary","amount":150000,"tenure_months":24,"purpose":"x","monthly_income":50000}`
	rec, c := doJSON(e, http.MethodPost, "/loans/apply", body,
		map[string]string{"Ax-Actor-Id": "2", "Ax-Actor-Role": "customer"})

	if err := h.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body)
	}
}

func TestLoanHandler_UpdateStatus_CustomerForbidden(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{})
	e := newEcho()

	rec, c := doJSON(e, http.MethodPatch, "/loans/update-status/5", `{"status":"approved"}`,
		map[string]string{"Ax-Actor-Id": "2", "Ax-Actor-Role": "customer"})
	c.SetParamNames("loan_id")
	c.SetParamValues("5")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", rec.Code, rec.Body)
	}
}

func TestLoanHandler_Get_NotFound(t *testing.T) {
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := newLoanHandler(repo)
	e := newEcho()

	rec, c := doJSON(e, http.MethodGet, "/loans/99", "", nil)
	c.SetParamNames("loan_id")
	c.SetParamValues("99")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestLoanHandler_Get_BadPathParam(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{})
	e := newEcho()

	rec, c := doJSON(e, http.MethodGet, "/loans/abc", "", nil)
	c.SetParamNames("loan_id")
	c.SetParamValues("abc")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLoanHandler_List_Defaults(t *testing.T) {
	var gotFilter loanDomain.ListFilter
	repo := &loanmock.Repo{
		ListFn: func(ctx context.Context, f loanDomain.ListFilter) ([]*loanDomain.Loan, int64, error) {
			gotFilter = f
			return []*loanDomain.Loan{}, 0, nil
		},
	}
	h := newLoanHandler(repo)
	e := newEcho()

	rec, c := doJSON(e, http.MethodGet, "/loans/all?page=0&limit=-5", "", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotFilter.Page != 1 || gotFilter.Limit != 10 {
		t.Fatalf("filter = %+v, want page 1 / limit 10 defaults", gotFilter)
	}
}

func TestLoanHandler_Configs(t *testing.T) {
	h := newLoanHandler(&loanmock.Repo{})
	e := newEcho()

	rec, c := doJSON(e, http.MethodGet, "/loans/config", "", nil)
	if err := h.Configs(c); err != nil {
		t.Fatalf("Configs: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got map[string]loanDomain.CategoryConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("categories = %d, want 4", len(got))
	}
}
