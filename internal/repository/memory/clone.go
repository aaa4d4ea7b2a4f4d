package memory

import (
	"strings"
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// cloneTicket copies pointer fields so callers never share state with the store.
func cloneTicket(t domain.Ticket) domain.Ticket {
	t.Course = cloneString(t.Course)
	t.Section = cloneString(t.Section)
	t.TutorID = cloneString(t.TutorID)
	t.TutorNotes = cloneString(t.TutorNotes)
	if t.ProblemType != nil {
		v := *t.ProblemType
		t.ProblemType = &v
	}
	t.TimeClaimed = cloneTime(t.TimeClaimed)
	t.TimeClosed = cloneTime(t.TimeClosed)
	if t.SessionDuration != nil {
		v := *t.SessionDuration
		t.SessionDuration = &v
	}
	return t
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
