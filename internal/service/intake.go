package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// Intake form field names.
const (
	FieldEmail      = "email"
	FieldFullName   = "fullname"
	FieldCourse     = "course"
	FieldSection    = "section"
	FieldAssignment = "assignment"
	FieldQuestion   = "question"
	FieldProblem    = "problem"
	FieldMode       = "mode"
)

// IntakeForm holds raw submitted values. A missing key means the field was
// not submitted at all, which is different from an empty value.
type IntakeForm map[string]string

func (f IntakeForm) lookup(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

// Identity is an already authenticated submitter. When present its email and
// name win over the submitted ones.
type Identity struct {
	Email string
	Name  string
}

// ValidateIntake checks a creation submission and builds the unpersisted
// ticket. Checks run in a fixed order and the first failure is returned
// alone.
func ValidateIntake(form IntakeForm, identity *Identity, problemTypes *domain.ProblemTypeSet, now time.Time) (*domain.Ticket, error) {
	email := form[FieldEmail]
	name := form[FieldFullName]
	if identity != nil {
		email = identity.Email
		name = identity.Name
	}

	if email == "" {
		return nil, ErrEmptyEmail
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	assignment := strings.TrimSpace(form[FieldAssignment])
	if assignment == "" {
		return nil, ErrEmptyAssignment
	}
	question := strings.TrimSpace(form[FieldQuestion])
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	var problemType *int64
	if raw, ok := form.lookup(FieldProblem); ok && strings.TrimSpace(raw) != "" {
		id, err := parseProblemType(raw, problemTypes)
		if err != nil {
			return nil, err
		}
		problemType = &id
	}

	mode := domain.TicketModeInPerson
	if raw, ok := form.lookup(FieldMode); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || !domain.TicketMode(parsed).Valid() {
			return nil, ErrInvalidMode
		}
		mode = domain.TicketMode(parsed)
	}

	return &domain.Ticket{
		StudentEmail:     email,
		StudentName:      name,
		Course:           optionalString(form, FieldCourse),
		Section:          optionalString(form, FieldSection),
		AssignmentName:   assignment,
		SpecificQuestion: question,
		ProblemType:      problemType,
		Mode:             mode,
		Status:           domain.TicketStatusOpen,
		CreatedAt:        now,
	}, nil
}

func parseProblemType(raw string, problemTypes *domain.ProblemTypeSet) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || !problemTypes.Contains(id) {
		return 0, ErrInvalidProblemType
	}
	return id, nil
}

func optionalString(form IntakeForm, key string) *string {
	v, ok := form.lookup(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}
