package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// QueueCounter reports queue sizes by status.
type QueueCounter interface {
	CountByStatus(ctx context.Context) (map[domain.TicketStatus]int, error)
}

// DigestWorker logs a periodic summary of the ticket queue.
type DigestWorker struct {
	engine  *cron.Cron
	spec    string
	counter QueueCounter
	logger  *zap.Logger
	timeout time.Duration
}

// NewDigestWorker builds a worker that runs on the given cron spec in UTC.
func NewDigestWorker(spec string, counter QueueCounter, logger *zap.Logger) *DigestWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DigestWorker{
		engine:  cron.New(cron.WithLocation(time.UTC)),
		spec:    spec,
		counter: counter,
		logger:  logger,
		timeout: 10 * time.Second,
	}
}

// Start registers the job and starts the scheduler.
func (w *DigestWorker) Start() error {
	if _, err := w.engine.AddFunc(w.spec, w.RunOnce); err != nil {
		return err
	}
	w.engine.Start()
	w.logger.Info("queue digest scheduled", zap.String("cron", w.spec))
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (w *DigestWorker) Stop() {
	<-w.engine.Stop().Done()
}

// RunOnce logs the current queue sizes.
func (w *DigestWorker) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	counts, err := w.counter.CountByStatus(ctx)
	if err != nil {
		w.logger.Error("queue digest failed", zap.Error(err))
		return
	}
	w.logger.Info("queue digest",
		zap.Int("open", counts[domain.TicketStatusOpen]),
		zap.Int("claimed", counts[domain.TicketStatusClaimed]),
		zap.Int("closed", counts[domain.TicketStatusClosed]),
	)
}
