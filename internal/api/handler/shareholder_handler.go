package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/captable/captable-api/internal/core/ports"
)

// ShareholderHandler handles HTTP requests for shareholder operations.
type ShareholderHandler struct {
	service ports.ShareholderService
}

func NewShareholderHandler(service ports.ShareholderService) *ShareholderHandler {
	return &ShareholderHandler{service: service}
}

type createShareholderRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=5"`
}

// List returns every shareholder with their aggregate share totals.
//
// @Summary      List shareholders with total shares
// @Tags         shareholders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.ShareholderSummary
// @Failure      403  {object}  map[string]string
// @Router       /api/shareholders [get]
func (h *ShareholderHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Create opens a new shareholder account.
//
// @Summary      Create a shareholder
// @Tags         shareholders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShareholderRequest  true  "Shareholder details"
// @Success      201   {object}  domain.Shareholder
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/shareholders [post]
func (h *ShareholderHandler) Create(c echo.Context) error {
	var req createShareholderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateShareholderInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}
