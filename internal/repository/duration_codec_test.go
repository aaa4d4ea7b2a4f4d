package repository

import (
	"testing"
	"time"
)

func TestDurationMicrosRoundTripKeepsNil(t *testing.T) {
	if durationToMicros(nil) != nil {
		t.Error("nil duration must stay NULL")
	}
	if microsToDuration(nil) != nil {
		t.Error("NULL column must stay nil")
	}
}

func TestDurationMicrosBeyondOneDay(t *testing.T) {
	d := 26*time.Hour + 3*time.Minute + 4*time.Second + 500*time.Microsecond
	us := durationToMicros(&d)
	if us == nil || *us != d.Microseconds() {
		t.Fatalf("unexpected micros %v", us)
	}
	back := microsToDuration(us)
	if back == nil || *back != d {
		t.Fatalf("expected %s, got %v", d, back)
	}
}
