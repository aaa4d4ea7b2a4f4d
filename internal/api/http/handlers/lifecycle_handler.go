package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-helpdesk/internal/api/dto"
	"github.com/spec-kit/tutor-helpdesk/internal/auth"
	"github.com/spec-kit/tutor-helpdesk/internal/observability"
	"github.com/spec-kit/tutor-helpdesk/internal/service"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

// LifecycleHandler runs tutor actions on tickets.
type LifecycleHandler struct {
	lifecycle *service.LifecycleService
	flashes   *FlashResponder
	metrics   *observability.Metrics
}

// NewLifecycleHandler constructs handler.
func NewLifecycleHandler(lifecycle *service.LifecycleService, flashes *FlashResponder, metrics *observability.Metrics) *LifecycleHandler {
	return &LifecycleHandler{lifecycle: lifecycle, flashes: flashes, metrics: metrics}
}

// UpdateTicket POST /update-ticket.
func (h *LifecycleHandler) UpdateTicket(c *fiber.Ctx) error {
	values := formValues(c)
	action := values[fieldAction]
	outcome := h.lifecycle.Apply(c.UserContext(), action, values[fieldTicketID], auth.UserFromContext(c))
	h.record(action, outcome)
	return h.flashes.Redirect(c, pathViewTickets, outcome.Flash)
}

// EditTicket POST /edit-ticket.
func (h *LifecycleHandler) EditTicket(c *fiber.Ctx) error {
	values := formValues(c)
	outcome := h.lifecycle.ApplyEdit(c.UserContext(), values[fieldTicketID], auth.UserFromContext(c), editInput(values))
	h.record("Edit", outcome)
	return h.flashes.Redirect(c, pathViewTickets, outcome.Flash)
}

// TicketHistory GET /tickets/:id/history.
func (h *LifecycleHandler) TicketHistory(c *fiber.Ctx) error {
	entries, err := h.lifecycle.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.TicketHistoryView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyView(entry))
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *LifecycleHandler) record(action string, outcome service.Outcome) {
	code := "OK"
	if !outcome.OK() {
		code = apperrors.ToDomainError(outcome.Err).Code
	}
	h.metrics.RecordTransition(action, code)
}
