package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-helpdesk/internal/service"
)

// Lifecycle form field names.
const (
	fieldTicketID   = "ticketID"
	fieldAction     = "action"
	fieldTutor      = "tutor"
	fieldNotes      = "notes"
	fieldSuccessful = "successful"
)

// formValues collects the submitted fields. Keys that were not sent are
// absent from the map, keys sent empty map to "". The first value wins.
func formValues(c *fiber.Ctx) map[string]string {
	values := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if _, seen := values[k]; !seen {
			values[k] = string(value)
		}
	})
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if form, err := c.MultipartForm(); err == nil {
			for k, v := range form.Value {
				if _, seen := values[k]; !seen && len(v) > 0 {
					values[k] = v[0]
				}
			}
		}
	}
	return values
}

func optional(values map[string]string, key string) *string {
	v, ok := values[key]
	if !ok {
		return nil
	}
	return &v
}

func editInput(values map[string]string) service.EditInput {
	_, successful := values[fieldSuccessful]
	return service.EditInput{
		Course:            optional(values, service.FieldCourse),
		Section:           optional(values, service.FieldSection),
		AssignmentName:    optional(values, service.FieldAssignment),
		SpecificQuestion:  optional(values, service.FieldQuestion),
		ProblemType:       optional(values, service.FieldProblem),
		TutorID:           optional(values, fieldTutor),
		TutorNotes:        optional(values, fieldNotes),
		SuccessfulSession: successful,
	}
}
