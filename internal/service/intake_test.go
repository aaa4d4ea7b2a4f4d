package service

import (
	"errors"
	"testing"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

var testProblemTypes = domain.NewProblemTypeSet([]domain.ProblemType{
	{ID: 1, Name: "Syntax error"},
	{ID: 2, Name: "Logic error"},
})

func validForm() IntakeForm {
	return IntakeForm{
		FieldEmail:      "a@b.com",
		FieldFullName:   "A B",
		FieldCourse:     "CS 101",
		FieldSection:    "002",
		FieldAssignment: "hw1",
		FieldQuestion:   "why?",
		FieldProblem:    "2",
		FieldMode:       "1",
	}
}

func TestValidateIntakeAccepts(t *testing.T) {
	ticket, err := ValidateIntake(validForm(), nil, testProblemTypes, baseTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("expected Open, got %s", ticket.Status)
	}
	if ticket.Mode != domain.TicketModeInPerson {
		t.Errorf("expected InPerson, got %s", ticket.Mode)
	}
	if ticket.StudentEmail != "a@b.com" || ticket.StudentName != "A B" {
		t.Errorf("unexpected student %q %q", ticket.StudentEmail, ticket.StudentName)
	}
	if ticket.AssignmentName != "hw1" || ticket.SpecificQuestion != "why?" {
		t.Errorf("unexpected assignment/question %q %q", ticket.AssignmentName, ticket.SpecificQuestion)
	}
	if ticket.ProblemType == nil || *ticket.ProblemType != 2 {
		t.Errorf("expected problem type 2, got %v", ticket.ProblemType)
	}
	if ticket.Course == nil || *ticket.Course != "CS 101" {
		t.Errorf("unexpected course %v", ticket.Course)
	}
	if !ticket.CreatedAt.Equal(baseTime) {
		t.Errorf("expected created_at %s, got %s", baseTime, ticket.CreatedAt)
	}
	if ticket.TutorID != nil || ticket.TimeClaimed != nil || ticket.SessionDuration != nil || ticket.SuccessfulSession {
		t.Error("lifecycle fields must start empty")
	}
}

func TestValidateIntakeRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(IntakeForm)
		expected error
		message  string
	}{
		{"empty email", func(f IntakeForm) { f[FieldEmail] = "" }, ErrEmptyEmail, MsgEmptyEmail},
		{"missing name", func(f IntakeForm) { delete(f, FieldFullName) }, ErrEmptyName, MsgEmptyName},
		{"empty assignment", func(f IntakeForm) { f[FieldAssignment] = "" }, ErrEmptyAssignment, MsgEmptyAssignment},
		{"whitespace assignment", func(f IntakeForm) { f[FieldAssignment] = "   " }, ErrEmptyAssignment, MsgEmptyAssignment},
		{"whitespace question", func(f IntakeForm) { f[FieldQuestion] = "      \t" }, ErrEmptyQuestion, MsgEmptyQuestion},
		{"unknown problem type", func(f IntakeForm) { f[FieldProblem] = "99" }, ErrInvalidProblemType, MsgInvalidProblemType},
		{"non-numeric problem type", func(f IntakeForm) { f[FieldProblem] = "type1" }, ErrInvalidProblemType, MsgInvalidProblemType},
		{"bogus mode", func(f IntakeForm) { f[FieldMode] = "bogus" }, ErrInvalidMode, MsgInvalidMode},
		{"out of range mode", func(f IntakeForm) { f[FieldMode] = "7" }, ErrInvalidMode, MsgInvalidMode},
		{"empty mode", func(f IntakeForm) { f[FieldMode] = "" }, ErrInvalidMode, MsgInvalidMode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(form)
			ticket, err := ValidateIntake(form, nil, testProblemTypes, baseTime)
			if ticket != nil {
				t.Fatal("expected no ticket")
			}
			if !errors.Is(err, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, err)
			}
			if err.Error() != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, err.Error())
			}
		})
	}
}

func TestValidateIntakeFirstErrorWins(t *testing.T) {
	form := validForm()
	form[FieldAssignment] = "   "
	form[FieldQuestion] = ""
	form[FieldProblem] = "99"
	form[FieldMode] = "bogus"

	_, err := ValidateIntake(form, nil, testProblemTypes, baseTime)
	if !errors.Is(err, ErrEmptyAssignment) {
		t.Fatalf("expected EMPTY_ASSIGNMENT, got %v", err)
	}

	form[FieldEmail] = ""
	_, err = ValidateIntake(form, nil, testProblemTypes, baseTime)
	if !errors.Is(err, ErrEmptyEmail) {
		t.Fatalf("expected EMPTY_EMAIL, got %v", err)
	}
}

func TestValidateIntakeIdentityOverridesForm(t *testing.T) {
	form := validForm()
	form[FieldEmail] = ""
	delete(form, FieldFullName)

	ticket, err := ValidateIntake(form, &Identity{Email: "test@test.email", Name: "John Doe"}, testProblemTypes, baseTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.StudentEmail != "test@test.email" || ticket.StudentName != "John Doe" {
		t.Errorf("identity not applied: %q %q", ticket.StudentEmail, ticket.StudentName)
	}
}

func TestValidateIntakeOptionalFields(t *testing.T) {
	form := IntakeForm{
		FieldEmail:      "a@b.com",
		FieldFullName:   "A B",
		FieldAssignment: " hw2 ",
		FieldQuestion:   "how?",
		FieldProblem:    "  ",
		FieldCourse:     "",
	}
	ticket, err := ValidateIntake(form, nil, testProblemTypes, baseTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.Mode != domain.TicketModeInPerson {
		t.Errorf("absent mode defaults to InPerson, got %s", ticket.Mode)
	}
	if ticket.ProblemType != nil || ticket.Course != nil || ticket.Section != nil {
		t.Error("blank optional fields must stay nil")
	}
	if ticket.AssignmentName != "hw2" {
		t.Errorf("expected trimmed assignment, got %q", ticket.AssignmentName)
	}

	form[FieldMode] = "2"
	ticket, err = ValidateIntake(form, nil, testProblemTypes, baseTime)
	if err != nil || ticket.Mode != domain.TicketModeOnline {
		t.Fatalf("expected Online, got %v %v", ticket, err)
	}
}
