package service

import (
	"context"
	"time"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
)

// BroadcastService serves the landing page banners.
type BroadcastService struct {
	messages repository.MessageRepository
	now      func() time.Time
}

// NewBroadcastService builds the service. A nil clock means UTC wall time.
func NewBroadcastService(messages repository.MessageRepository, clock func() time.Time) *BroadcastService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &BroadcastService{messages: messages, now: clock}
}

// Active returns messages whose validity window contains the current time.
func (s *BroadcastService) Active(ctx context.Context) ([]domain.Message, error) {
	now := s.now()
	items, err := s.messages.ListActive(ctx, now)
	if err != nil {
		return nil, err
	}
	active := make([]domain.Message, 0, len(items))
	for _, msg := range items {
		if msg.ActiveAt(now) {
			active = append(active, msg)
		}
	}
	return active, nil
}
