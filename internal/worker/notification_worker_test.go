package worker

import "testing"

type countingNotifier struct{ calls int }

func (n *countingNotifier) RegisterHandlers() { n.calls++ }

func TestStartNotificationWorker(t *testing.T) {
	n := &countingNotifier{}
	StartNotificationWorker(n, nil)
	if n.calls != 1 {
		t.Fatalf("expected one registration, got %d", n.calls)
	}
	StartNotificationWorker(nil, nil)
}
