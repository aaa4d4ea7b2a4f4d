package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

func TestSubmitCreatesOpenTicket(t *testing.T) {
	h := newHarness(t)
	form := IntakeForm{
		FieldEmail:      "a@b.com",
		FieldFullName:   "A B",
		FieldAssignment: "hw1",
		FieldQuestion:   "why?",
		FieldMode:       "2",
	}

	out := h.intake.Submit(context.Background(), form, nil)
	if !out.OK() {
		t.Fatalf("unexpected failure %+v", out)
	}
	if out.Flash.Category != domain.FlashSuccess || out.Flash.Message != MsgTicketCreated {
		t.Fatalf("unexpected flash %+v", out.Flash)
	}

	stored := h.get(t, out.Ticket.ID)
	if stored.Status != domain.TicketStatusOpen || stored.Mode != domain.TicketModeOnline {
		t.Fatalf("unexpected ticket %+v", stored)
	}
	if stored.TutorID != nil || stored.TimeClaimed != nil || stored.SessionDuration != nil {
		t.Fatal("new ticket must not carry lifecycle fields")
	}
}

func TestSubmitInvalidModePersistsNothing(t *testing.T) {
	h := newHarness(t)
	form := validForm()
	form[FieldMode] = "7"

	out := h.intake.Submit(context.Background(), form, nil)
	if !errors.Is(out.Err, ErrInvalidMode) || out.Flash.Message != MsgInvalidMode {
		t.Fatalf("expected invalid mode, got %+v", out)
	}
	if h.store.TicketCount() != 0 {
		t.Fatal("rejected submission must not be stored")
	}
}

func TestSubmitUsesIdentity(t *testing.T) {
	h := newHarness(t)
	form := validForm()
	delete(form, FieldEmail)
	delete(form, FieldFullName)

	out := h.intake.Submit(context.Background(), form, &Identity{Email: h.student.Email, Name: h.student.Name})
	if !out.OK() {
		t.Fatalf("unexpected failure %+v", out)
	}
	if out.Ticket.StudentEmail != h.student.Email || out.Ticket.StudentName != h.student.Name {
		t.Fatalf("identity not applied: %+v", out.Ticket)
	}
}

func TestSubmitStoreFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperrors.CodeIntegrity, MsgCreateIntegrity},
		{"check violation", &pgconn.PgError{Code: "23514"}, apperrors.CodeIntegrity, MsgCreateIntegrity},
		{"connection lost", errors.New("conn closed"), apperrors.CodeInternal, MsgCreateUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.tickets.createErr = tc.err

			out := h.intake.Submit(context.Background(), validForm(), nil)
			if out.OK() {
				t.Fatal("expected failure")
			}
			if got := apperrors.ToDomainError(out.Err).Code; got != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, got)
			}
			if out.Flash.Category != domain.FlashError || out.Flash.Message != tc.message {
				t.Fatalf("unexpected flash %+v", out.Flash)
			}
			if h.store.TicketCount() != 0 {
				t.Fatal("failed insert must not leave a ticket")
			}
		})
	}
}

func TestListTicketsIncludesClosed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	first := h.openTicket(t)
	h.openTicket(t)

	h.lifecycle.Apply(ctx, ActionClaim, first, h.tutor)
	h.lifecycle.Apply(ctx, ActionClose, first, h.tutor)

	all, err := h.intake.ListTickets(ctx, repository.TicketFilter{})
	if err != nil {
		t.Fatalf("ListTickets: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(all))
	}

	counts, err := h.intake.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[domain.TicketStatusClosed] != 1 || counts[domain.TicketStatusOpen] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}
