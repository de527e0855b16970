package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// defaultBatchSize bounds how many records one relay pass picks up.
const defaultBatchSize = 100

// OutboxRelayJob drains the outbox every second. Events go to the broker,
// notifications to the email provider. A record is only marked sent after a
// successful dispatch, so delivery is at-least-once; failures reschedule the
// record with linear backoff.
type OutboxRelayJob struct {
	outboxRepo  ports.OutboxRepository
	publisher   ports.EventPublisher
	notifier    ports.Notifier
	cron        *cron.Cron
	logger      *slog.Logger
	batchSize   int
	backoffBase time.Duration
}

// NewOutboxRelayJob creates the relay. backoffBase scales the retry delay:
// a record that failed n times waits n*backoffBase before the next attempt.
func NewOutboxRelayJob(
	outboxRepo ports.OutboxRepository,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	backoffBase time.Duration,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		outboxRepo:  outboxRepo,
		publisher:   publisher,
		notifier:    notifier,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "outbox_relay_job"),
		batchSize:   defaultBatchSize,
		backoffBase: backoffBase,
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// RunOnce performs a single relay pass. A failed record never aborts the
// pass; the rest of the batch still gets its chance.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) {
	records, err := j.outboxRepo.FetchPending(ctx, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox fetch failed", "error", err)
		return
	}

	for _, record := range records {
		if err = j.dispatch(ctx, record); err != nil {
			nextAttempt := time.Now().UTC().Add(time.Duration(record.Attempts+1) * j.backoffBase)
			j.logger.WarnContext(ctx, "Outbox dispatch failed",
				"record", record.ID.String(),
				"kind", record.Kind,
				"tag", record.Tag,
				"attempts", record.Attempts+1,
				"error", err,
			)
			if markErr := j.outboxRepo.MarkFailed(ctx, record.ID, nextAttempt); markErr != nil {
				j.logger.ErrorContext(ctx, "Outbox mark-failed failed",
					"record", record.ID.String(), "error", markErr)
			}
			continue
		}

		if err = j.outboxRepo.MarkSent(ctx, record.ID); err != nil {
			// the dispatch went out; the record will be re-sent, which
			// at-least-once allows
			j.logger.ErrorContext(ctx, "Outbox mark-sent failed",
				"record", record.ID.String(), "error", err)
		}
	}
}

func (j *OutboxRelayJob) dispatch(ctx context.Context, record outbox.Record) error {
	switch record.Kind {
	case outbox.KindNotification:
		notification, err := record.DecodeNotification()
		if err != nil {
			return err
		}
		return j.notifier.Send(ctx, notification)
	default:
		return j.publisher.Publish(ctx, record.Tag, record.Payload)
	}
}
