package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	savingsDomain "microfin-backend/internal/domain/savings"
	uc "microfin-backend/internal/usecase/savings"
)

type SavingsHandler struct{ uc *uc.Usecase }

func NewSavingsHandler(u *uc.Usecase) *SavingsHandler { return &SavingsHandler{uc: u} }

type recordSavingsReq struct {
	UserID      uint64 `json:"user_id"`
	Amount      int64  `json:"amount"           validate:"required,gt=0"`
	Type        string `json:"transaction_type" validate:"required,txntype"`
	Date        string `json:"date"             validate:"required,datetime=2006-01-02"`
	Description string `json:"description"`
}

func (h *SavingsHandler) Record(c echo.Context) error {
	actorID, role, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	var req recordSavingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
	}
	e, err := h.uc.Record(c.Request().Context(), uc.RecordInput{
		Actor:       uc.Actor{ID: actorID, Role: role},
		UserID:      req.UserID,
		Amount:      req.Amount,
		Type:        savingsDomain.TxType(req.Type),
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

type updateSavingsReq struct {
	Amount      *int64  `json:"amount"`
	Type        *string `json:"transaction_type"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

func (h *SavingsHandler) Update(c echo.Context) error {
	actorID, role, ok := actor(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid actor headers"})
	}
	entryID, err := pathID(c, "saving_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid saving_id path param"})
	}
	var req updateSavingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	in := uc.UpdateInput{
		Actor:       uc.Actor{ID: actorID, Role: role},
		EntryID:     entryID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Type != nil {
		t := savingsDomain.TxType(*req.Type)
		in.Type = &t
	}
	if req.Date != nil {
		var d time.Time
		if d, err = parseDate(*req.Date); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		}
		in.Date = &d
	}
	e, err := h.uc.Update(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *SavingsHandler) Balance(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id path param"})
	}
	bal, err := h.uc.BalanceOf(c.Request().Context(), userID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user_id": userID, "balance": bal})
}

func (h *SavingsHandler) History(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user_id path param"})
	}
	res, err := h.uc.History(c.Request().Context(), userID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
