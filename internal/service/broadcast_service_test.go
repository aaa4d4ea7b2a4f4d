package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/repository/memory"
)

func TestBroadcastActive(t *testing.T) {
	store := memory.New()
	store.AddMessage(domain.Message{Body: "Closed for spring break", StartsAt: baseTime.Add(-time.Hour), EndsAt: baseTime.Add(time.Hour)})
	store.AddMessage(domain.Message{Body: "Midterm review", StartsAt: baseTime.Add(time.Hour), EndsAt: baseTime.Add(2 * time.Hour)})

	svc := NewBroadcastService(store.Messages(), func() time.Time { return baseTime })
	msgs, err := svc.Active(context.Background())
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Body != "Closed for spring break" {
		t.Fatalf("unexpected messages %+v", msgs)
	}
}
