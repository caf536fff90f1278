package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/captable/captable-api/internal/core/ports"
)

// AuditHandler exposes the audit log.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List returns the full audit log.
//
// @Summary      List audit events
// @Tags         audits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AuditEvent
// @Failure      403  {object}  map[string]string
// @Router       /api/audits [get]
func (h *AuditHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	events, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
