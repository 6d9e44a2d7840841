package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	repayDomain "microfin-backend/internal/domain/repayment"
	uc "microfin-backend/internal/usecase/repayment"
)

type RepaymentHandler struct{ uc *uc.Usecase }

func NewRepaymentHandler(u *uc.Usecase) *RepaymentHandler { return &RepaymentHandler{uc: u} }

type recordRepaymentReq struct {
	LoanID     uint64 `json:"loan_id"               validate:"required"`
	AmountPaid int64  `json:"amount_paid"           validate:"required,gt=0"`
	Method     string `json:"payment_method"        validate:"required,paymethod"`
	// Canonical date `YYYY-MM-DD`, aligned with the schema DATE column.
	PaymentDate string `json:"payment_date"          validate:"required,datetime=2006-01-02"`
	Reference   string `json:"transaction_reference"`
}

func (h *RepaymentHandler) Record(c echo.Context) error {
	actorID, role, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req recordRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	paidAt, err := parseDate(req.PaymentDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payment_date"})
	}
	rec, err := h.uc.Record(c.Request().Context(), uc.RecordInput{
		Actor:      uc.Actor{ID: actorID, Role: role},
		LoanID:     req.LoanID,
		AmountPaid: req.AmountPaid,
		Method:     repayDomain.Method(req.Method),
		PaidAt:     paidAt,
		Reference:  req.Reference,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *RepaymentHandler) Schedule(c echo.Context) error {
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	res, err := h.uc.Schedule(c.Request().Context(), loanID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *RepaymentHandler) Overdue(c echo.Context) error {
	res, err := h.uc.ListOverdue(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *RepaymentHandler) ListByLoan(c echo.Context) error {
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	recs, err := h.uc.ListByLoan(c.Request().Context(), loanID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *RepaymentHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id path param"})
	}
	recs, err := h.uc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, recs)
}
