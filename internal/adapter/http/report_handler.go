package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	uc "microfin-backend/internal/usecase/report"
)

type ReportHandler struct{ uc *uc.Usecase }

func NewReportHandler(u *uc.Usecase) *ReportHandler { return &ReportHandler{uc: u} }

func (h *ReportHandler) Portfolio(c echo.Context) error {
	res, err := h.uc.Portfolio(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
