package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"microfin-backend/internal/domain/authz"
	"microfin-backend/pkg/apperr"
)

// actor reads the authenticated identity the auth collaborator put on the
// request. Token verification itself happens upstream; the core only
// needs id and role.
func actor(c echo.Context) (uint64, authz.Role, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id")), 10, 64)
	if err != nil || id == 0 {
		return 0, "", false
	}
	role := authz.Role(strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Role")))
	if !role.Valid() {
		return 0, "", false
	}
	return id, role, true
}

func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func atoiDefault(s string, d int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return d
	}
	return n
}

// writeErr maps business-error kinds onto HTTP statuses; anything without
// a kind is a 500.
func writeErr(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindStateConflict:
		status = http.StatusConflict
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindUnauthorized:
		status = http.StatusForbidden
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}
