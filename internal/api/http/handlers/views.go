package handlers

import (
	"strconv"

	"github.com/spec-kit/tutor-helpdesk/internal/api/dto"
	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/service"
)

func ticketView(t *domain.Ticket) dto.TicketView {
	view := dto.TicketView{
		ID:                t.ID,
		StudentEmail:      t.StudentEmail,
		StudentName:       t.StudentName,
		Course:            t.Course,
		Section:           t.Section,
		AssignmentName:    t.AssignmentName,
		SpecificQuestion:  t.SpecificQuestion,
		ProblemType:       t.ProblemType,
		Mode:              t.Mode.String(),
		Status:            t.Status,
		TutorID:           t.TutorID,
		TimeClaimed:       t.TimeClaimed,
		TimeClosed:        t.TimeClosed,
		TutorNotes:        t.TutorNotes,
		SuccessfulSession: t.SuccessfulSession,
		CreatedAt:         t.CreatedAt,
	}
	if t.SessionDuration != nil {
		formatted := service.FormatDuration(*t.SessionDuration)
		view.SessionDuration = &formatted
	}
	return view
}

func historyView(h domain.TicketHistory) dto.TicketHistoryView {
	return dto.TicketHistoryView{
		ChangeType: h.ChangeType,
		ChangedBy:  h.ChangedBy,
		OldValue:   h.OldValue,
		NewValue:   h.NewValue,
		CreatedAt:  h.CreatedAt,
	}
}

func userView(u *domain.User) *dto.UserView {
	if u == nil {
		return nil
	}
	return &dto.UserView{ID: u.ID, Name: u.Name, Email: u.Email, Permission: u.Permission}
}

func messageViews(items []domain.Message) []dto.MessageView {
	views := make([]dto.MessageView, 0, len(items))
	for _, m := range items {
		views = append(views, dto.MessageView{Body: m.Body, StartsAt: m.StartsAt, EndsAt: m.EndsAt})
	}
	return views
}

func problemTypeOptions(set *domain.ProblemTypeSet) []dto.Option {
	items := set.All()
	options := make([]dto.Option, 0, len(items))
	for _, pt := range items {
		options = append(options, dto.Option{Value: strconv.FormatInt(pt.ID, 10), Label: pt.Name})
	}
	return options
}

var modeOptions = []dto.Option{
	{Value: strconv.Itoa(int(domain.TicketModeInPerson)), Label: domain.TicketModeInPerson.String()},
	{Value: strconv.Itoa(int(domain.TicketModeOnline)), Label: domain.TicketModeOnline.String()},
}

var intakeFields = []dto.FormField{
	{Name: service.FieldEmail, Label: "Email", Required: true},
	{Name: service.FieldFullName, Label: "Full name", Required: true},
	{Name: service.FieldCourse, Label: "Course"},
	{Name: service.FieldSection, Label: "Section"},
	{Name: service.FieldAssignment, Label: "Assignment name", Required: true},
	{Name: service.FieldQuestion, Label: "Specific question", Required: true},
	{Name: service.FieldProblem, Label: "Problem type"},
	{Name: service.FieldMode, Label: "Mode"},
}
