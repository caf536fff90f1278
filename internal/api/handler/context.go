package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/captable/captable-api/internal/core/domain"
)

// currentUser extracts the acting user injected by the Auth middleware and
// fast-fails with 401 before any service call when it is missing; presence
// proves the middleware ran.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
