package dto

import (
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// UserView is the public part of a user.
type UserView struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	Permission domain.PermissionLevel `json:"permission"`
}

// MessageView is an active broadcast banner.
type MessageView struct {
	Body     string    `json:"body"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// IndexResponse backs the landing page.
type IndexResponse struct {
	Messages []MessageView `json:"messages"`
	User     *UserView     `json:"user"`
	Flash    *domain.Flash `json:"flash"`
}
