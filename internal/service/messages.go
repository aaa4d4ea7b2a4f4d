package service

import (
	"net/http"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

// User-facing status messages. Clients and tests match these verbatim.
const (
	MsgTicketCreated      = "Ticket created successfully!"
	MsgEmptyEmail         = "Could not submit ticket, email must not be empty!"
	MsgEmptyName          = "Could not submit ticket, name must not be empty!"
	MsgEmptyAssignment    = "Could not submit ticket, assignment name must not be empty!"
	MsgEmptyQuestion      = "Could not submit ticket, question must not be empty!"
	MsgInvalidProblemType = "Could not submit ticket, must select a valid problem type!"
	MsgInvalidMode        = "Could not submit ticket, must select a valid mode!"
	MsgCreateIntegrity    = "Could not submit ticket, invalid data."
	MsgCreateUnknown      = "Could not submit ticket, unknown reason."

	MsgTicketClaimed  = "Ticket claimed!"
	MsgTicketClosed   = "Ticket closed!"
	MsgTicketReopened = "Ticket reopened!"
	MsgTicketUpdated  = "Ticket updated!"
	MsgTicketNotFound = "Could not find ticket!"
	MsgUnknownAction  = "Unknown ticket action!"
	MsgNotClaimed     = "Ticket must be claimed before it can be closed!"
	MsgAlreadyOpen    = "Ticket is already open!"
	MsgEditProblem    = "Could not update ticket, must select a valid problem type!"
	MsgEditTutor      = "Could not update ticket, tutor not found!"
	MsgUpdateUnknown  = "Could not update ticket, unknown reason."
	MsgTutorRequired  = "You must be a tutor to do that!"

	MsgLoginFailed = "Invalid email or password!"
)

// Sentinel errors. Compare with errors.Is; matching is by code.
var (
	ErrEmptyEmail         = apperrors.NewDomainError(apperrors.CodeEmptyEmail, MsgEmptyEmail, http.StatusBadRequest, nil)
	ErrEmptyName          = apperrors.NewDomainError(apperrors.CodeEmptyName, MsgEmptyName, http.StatusBadRequest, nil)
	ErrEmptyAssignment    = apperrors.NewDomainError(apperrors.CodeEmptyAssignment, MsgEmptyAssignment, http.StatusBadRequest, nil)
	ErrEmptyQuestion      = apperrors.NewDomainError(apperrors.CodeEmptyQuestion, MsgEmptyQuestion, http.StatusBadRequest, nil)
	ErrInvalidProblemType = apperrors.NewDomainError(apperrors.CodeInvalidProblemType, MsgInvalidProblemType, http.StatusBadRequest, nil)
	ErrInvalidMode        = apperrors.NewDomainError(apperrors.CodeInvalidMode, MsgInvalidMode, http.StatusBadRequest, nil)

	ErrTicketNotFound = apperrors.NewDomainError(apperrors.CodeNotFound, MsgTicketNotFound, http.StatusNotFound, nil)
	ErrUnknownAction  = apperrors.NewDomainError(apperrors.CodeUnknownAction, MsgUnknownAction, http.StatusBadRequest, nil)
	ErrNotClaimed     = apperrors.NewDomainError(apperrors.CodeNotClaimed, MsgNotClaimed, http.StatusConflict, nil)
	ErrAlreadyOpen    = apperrors.NewDomainError(apperrors.CodeAlreadyOpen, MsgAlreadyOpen, http.StatusConflict, nil)
	ErrTutorRequired  = apperrors.NewDomainError(apperrors.CodeForbidden, MsgTutorRequired, http.StatusForbidden, nil)
	ErrLoginFailed    = apperrors.NewDomainError(apperrors.CodeUnauthorized, MsgLoginFailed, http.StatusUnauthorized, nil)
)

// Edit rejections carry their own wording but share the intake codes.
var (
	errEditProblemType = apperrors.NewDomainError(apperrors.CodeInvalidProblemType, MsgEditProblem, http.StatusBadRequest, nil)
	errEditTutor       = apperrors.NewDomainError(apperrors.CodeNotFound, MsgEditTutor, http.StatusNotFound, map[string]any{"resource": "tutor"})
)

func createFailed(err error) error {
	if apperrors.IsIntegrityViolation(err) {
		return apperrors.NewIntegrityError(MsgCreateIntegrity, err)
	}
	return &apperrors.DomainError{
		Code:       apperrors.CodeInternal,
		Message:    MsgCreateUnknown,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func updateFailed(err error) error {
	return &apperrors.DomainError{
		Code:       apperrors.CodeInternal,
		Message:    MsgUpdateUnknown,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Outcome is the single user-visible result of one request.
type Outcome struct {
	Ticket *domain.Ticket
	Flash  domain.Flash
	Err    error
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

func successOutcome(ticket *domain.Ticket, category domain.FlashCategory, message string) Outcome {
	return Outcome{Ticket: ticket, Flash: domain.Flash{Category: category, Message: message}}
}

// failureOutcome turns err into a flash. ALREADY_OPEN is informational;
// everything else is an error.
func failureOutcome(err error) Outcome {
	de := apperrors.ToDomainError(err)
	category := domain.FlashError
	if de.Code == apperrors.CodeAlreadyOpen {
		category = domain.FlashInfo
	}
	message := de.Message
	if de.Code == apperrors.CodeInternal && message == apperrors.MsgInternal {
		message = MsgUpdateUnknown
	}
	return Outcome{Flash: domain.Flash{Category: category, Message: message}, Err: err}
}
