package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	loanDomain "microfin-backend/internal/domain/loan"
	uc "microfin-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *uc.Usecase }

func NewLoanHandler(u *uc.Usecase) *LoanHandler { return &LoanHandler{uc: u} }

type applyLoanReq struct {
	UserID        uint64 `json:"user_id"        validate:"required"`
	Category      string `json:"category"       validate:"required,loancategory"`
	Amount        int64  `json:"amount"         validate:"required,gt=0"`
	TenureMonths  int    `json:"tenure_months"  validate:"required,gt=0"`
	Purpose       string `json:"purpose"        validate:"required"`
	MonthlyIncome int64  `json:"monthly_income" validate:"required,gt=0"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	actorID, role, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	l, err := h.uc.Apply(c.Request().Context(), uc.ApplyInput{
		Actor:         uc.Actor{ID: actorID, Role: role},
		UserID:        req.UserID,
		Category:      loanDomain.Category(req.Category),
		Amount:        req.Amount,
		TenureMonths:  req.TenureMonths,
		Purpose:       req.Purpose,
		MonthlyIncome: req.MonthlyIncome,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

type updateStatusReq struct {
	Status          string `json:"status"           validate:"required,loanstatus"`
	RejectionReason string `json:"rejection_reason"`
	ApprovedAmount  int64  `json:"approved_amount"  validate:"gte=0"`
}

func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	actorID, role, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	l, err := h.uc.UpdateStatus(c.Request().Context(), uc.UpdateStatusInput{
		Actor:           uc.Actor{ID: actorID, Role: role},
		LoanID:          loanID,
		Status:          loanDomain.Status(req.Status),
		RejectionReason: req.RejectionReason,
		ApprovedAmount:  req.ApprovedAmount,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type editLoanReq struct {
	Amount       *int64   `json:"amount"`
	InterestRate *float64 `json:"interest_rate"`
	TenureMonths *int     `json:"tenure_months"`
	Purpose      *string  `json:"purpose"`
}

func (h *LoanHandler) Edit(c echo.Context) error {
	actorID, role, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	var req editLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	l, err := h.uc.Edit(c.Request().Context(), uc.EditInput{
		Actor:        uc.Actor{ID: actorID, Role: role},
		LoanID:       loanID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TenureMonths: req.TenureMonths,
		Purpose:      req.Purpose,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) Get(c echo.Context) error {
	loanID, err := pathID(c, "loan_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id path param"})
	}
	l, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id path param"})
	}
	loans, err := h.uc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) List(c echo.Context) error {
	var in uc.ListInput
	in.Status = loanDomain.Status(c.QueryParam("status"))
	in.Category = loanDomain.Category(c.QueryParam("category"))
	in.Page = atoiDefault(c.QueryParam("page"), 1)
	in.Limit = atoiDefault(c.QueryParam("limit"), 10)
	res, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LoanHandler) Configs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Configs())
}
