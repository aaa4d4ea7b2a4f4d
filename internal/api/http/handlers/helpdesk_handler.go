package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-helpdesk/internal/api/dto"
	"github.com/spec-kit/tutor-helpdesk/internal/auth"
	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
	"github.com/spec-kit/tutor-helpdesk/internal/service"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

// Redirect targets.
const (
	pathIndex        = "/"
	pathCreateTicket = "/create-ticket"
	pathViewTickets  = "/view-tickets"
)

// HelpdeskHandler serves the student pages and the tutor queue.
type HelpdeskHandler struct {
	tickets    *service.TicketService
	broadcasts *service.BroadcastService
	flashes    *FlashResponder
}

// NewHelpdeskHandler constructs handler.
func NewHelpdeskHandler(tickets *service.TicketService, broadcasts *service.BroadcastService, flashes *FlashResponder) *HelpdeskHandler {
	return &HelpdeskHandler{tickets: tickets, broadcasts: broadcasts, flashes: flashes}
}

// Index GET /.
func (h *HelpdeskHandler) Index(c *fiber.Ctx) error {
	messages, err := h.broadcasts.Active(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.IndexResponse{
		Messages: messageViews(messages),
		User:     userView(auth.UserFromContext(c)),
		Flash:    h.flashes.Pop(c),
	}})
}

// CreateTicketForm GET /create-ticket.
func (h *HelpdeskHandler) CreateTicketForm(c *fiber.Ctx) error {
	problemTypes, err := h.tickets.ProblemTypes(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.CreateTicketFormResponse{
		Fields:       intakeFields,
		Modes:        modeOptions,
		ProblemTypes: problemTypeOptions(problemTypes),
		Identity:     userView(auth.UserFromContext(c)),
		Flash:        h.flashes.Pop(c),
	}})
}

// CreateTicket POST /create-ticket.
func (h *HelpdeskHandler) CreateTicket(c *fiber.Ctx) error {
	var identity *service.Identity
	if user := auth.UserFromContext(c); user != nil {
		identity = &service.Identity{Email: user.Email, Name: user.Name}
	}

	outcome := h.tickets.Submit(c.UserContext(), service.IntakeForm(formValues(c)), identity)
	if !outcome.OK() {
		return h.flashes.Redirect(c, pathCreateTicket, outcome.Flash)
	}
	return h.flashes.Redirect(c, pathIndex, outcome.Flash)
}

// ViewTickets GET /view-tickets. An optional status query narrows the list,
// e.g. ?status=Open,Claimed.
func (h *HelpdeskHandler) ViewTickets(c *fiber.Ctx) error {
	filter, err := parseTicketFilter(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListTickets(c.UserContext(), filter)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	counts, err := h.tickets.CountByStatus(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	items := make([]dto.TicketView, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketView(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{
		Tickets: items,
		Counts:  counts,
		Flash:   h.flashes.Pop(c),
	}})
}

func parseTicketFilter(c *fiber.Ctx) (repository.TicketFilter, error) {
	var filter repository.TicketFilter
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return filter, nil
	}
	for _, part := range strings.Split(raw, ",") {
		status := domain.TicketStatus(strings.TrimSpace(part))
		if !status.Valid() {
			return filter, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": part})
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	return filter, nil
}
