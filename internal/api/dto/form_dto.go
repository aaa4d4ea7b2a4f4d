package dto

import "github.com/spec-kit/tutor-helpdesk/internal/domain"

// FormField describes one intake input.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// Option is a selectable value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CreateTicketFormResponse is the schema the intake page renders.
type CreateTicketFormResponse struct {
	Fields       []FormField   `json:"fields"`
	Modes        []Option      `json:"modes"`
	ProblemTypes []Option      `json:"problem_types"`
	Identity     *UserView     `json:"identity"`
	Flash        *domain.Flash `json:"flash"`
}
