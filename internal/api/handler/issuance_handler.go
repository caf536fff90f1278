package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/captable/captable-api/internal/core/ports"
)

// IssuanceHandler handles HTTP requests for share issuances and their
// certificates.
type IssuanceHandler struct {
	issuances    ports.IssuanceService
	certificates ports.CertificateService
}

func NewIssuanceHandler(issuances ports.IssuanceService, certificates ports.CertificateService) *IssuanceHandler {
	return &IssuanceHandler{issuances: issuances, certificates: certificates}
}

// Share count and price limits are enforced by the service so the check
// ordering (role, count, price, existence) stays observable; binding only validates
// shape. Price is a decimal struct, which the validator cannot range-check.
type createIssuanceRequest struct {
	ShareholderID  int64           `json:"shareholder_id" validate:"required"`
	NumberOfShares int64           `json:"number_of_shares"`
	Price          decimal.Decimal `json:"price"`
}

// List returns the issuances visible to the caller.
//
// @Summary      List share issuances
// @Tags         issuances
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.IssuanceView
// @Failure      400  {object}  map[string]string
// @Router       /api/issuances [get]
func (h *IssuanceHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.issuances.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Create records a new share issuance.
//
// @Summary      Issue shares to a shareholder
// @Tags         issuances
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIssuanceRequest  true  "Issuance details"
// @Success      201   {object}  domain.ShareIssuance
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/issuances [post]
func (h *IssuanceHandler) Create(c echo.Context) error {
	var req createIssuanceRequest
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

	created, err := h.issuances.Create(c.Request().Context(), ports.CreateIssuanceInput{
		ShareholderID:  req.ShareholderID,
		NumberOfShares: req.NumberOfShares,
		Price:          req.Price,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Certificate renders the PDF certificate for one issuance.
//
// @Summary      Download a share certificate
// @Tags         issuances
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  int  true  "Issuance id"
// @Success      200  {file}    binary
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/issuances/{id}/certificate [get]
func (h *IssuanceHandler) Certificate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid issuance id")
	}

	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	doc, err := h.certificates.Generate(c.Request().Context(), id, actor)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "application/pdf", doc)
}
