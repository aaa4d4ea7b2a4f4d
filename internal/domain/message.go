package domain

import "time"

// Message is a broadcast banner shown on the landing page.
type Message struct {
	ID       string
	Body     string
	StartsAt time.Time
	EndsAt   time.Time
}

// ActiveAt reports whether now falls inside the validity window.
func (m Message) ActiveAt(now time.Time) bool {
	return !now.Before(m.StartsAt) && !now.After(m.EndsAt)
}
