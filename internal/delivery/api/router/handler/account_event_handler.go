package handler

import (
	"funntour/internal/errors"
	"funntour/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AccountEventHandler serves the audit trail recorded by the event worker.
type AccountEventHandler struct {
	auditUC usecase.AccountAuditUsecase
}

// NewAccountEventHandler is the constructor for AccountEventHandler
func NewAccountEventHandler(auditUC usecase.AccountAuditUsecase) *AccountEventHandler {
	return &AccountEventHandler{auditUC: auditUC}
}

// ListUserEvents handles GET /users/:id/events
func (h *AccountEventHandler) ListUserEvents(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	events, err := h.auditUC.ListUserEvents(c.Request().Context(), id, page)
	if err != nil {
		return errors.WithStack(err)
	}

	return pageOK(c, page, events, toAccountEventResponse)
}
