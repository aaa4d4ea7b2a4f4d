package service

import (
	"errors"
	"testing"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

func TestFailureOutcomeMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category domain.FlashCategory
		message  string
	}{
		{"bare error", errors.New("boom"), domain.FlashError, MsgUpdateUnknown},
		{"generic internal", apperrors.NewInternalError(errors.New("boom")), domain.FlashError, MsgUpdateUnknown},
		{"create failure keeps its wording", createFailed(errors.New("boom")), domain.FlashError, MsgCreateUnknown},
		{"domain rejection", errEditTutor, domain.FlashError, MsgEditTutor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := failureOutcome(tc.err)
			if out.OK() {
				t.Fatal("expected failure")
			}
			if out.Flash.Category != tc.category || out.Flash.Message != tc.message {
				t.Fatalf("unexpected flash %+v", out.Flash)
			}
		})
	}
}
