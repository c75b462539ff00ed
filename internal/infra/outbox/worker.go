package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubcore/internal/domain/transaction"
	"clubcore/internal/infra/mailer"
	"clubcore/internal/infra/repository"
	"clubcore/internal/pkg/clock"
	"clubcore/internal/pkg/config"
	"clubcore/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Worker drains the notification_jobs outbox on a ticker. Jobs are
// claimed and marked inside one DB transaction per batch; a crash
// mid-batch just requeues the uncommitted claims.
type Worker struct {
	pool   *pgxpool.Pool
	repo   *repository.NotificationRepository
	mailer mailer.Mailer
	clk    clock.Clock
	cfg    config.OutboxConfig
	done   chan struct{}
}

func NewWorker(pool *pgxpool.Pool, m mailer.Mailer, clk clock.Clock, cfg config.OutboxConfig) *Worker {
	return &Worker{
		pool:   pool,
		repo:   repository.NewNotificationRepository(),
		mailer: m,
		clk:    clk,
		cfg:    cfg,
		done:   make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Worker) Stop() {
	<-w.done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				slog.Error("outbox batch failed", "error", err.Error())
			}
		}
	}
}

func (w *Worker) processBatch(ctx context.Context) error {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	jobs, err := w.repo.DequeueJobs(ctx, tx, int32(w.cfg.BatchSize))
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if err := w.deliver(job); err != nil {
			slog.Warn("notification delivery failed",
				"job_id", job.ID, "topic", job.Topic, "attempt", job.Attempts+1, "error", err.Error())

			retryAt := w.clk.Now().Add(w.cfg.PollInterval * time.Duration(job.Attempts+1))
			if markErr := w.repo.MarkJobFailed(ctx, tx, job.ID, int32(w.cfg.MaxAttempts), retryAt, err.Error()); markErr != nil {
				return markErr
			}
			continue
		}

		if err := w.repo.MarkJobSent(ctx, tx, job.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (w *Worker) deliver(job repository.NotificationJob) error {
	switch job.Topic {
	case shared.TopicPaymentConfirmed:
		var payload shared.ConfirmationEmailPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return err
		}
		subject, body := renderConfirmation(payload)
		return w.mailer.Send(payload.Email, subject, body)
	default:
		slog.Warn("unknown notification topic, dropping", "job_id", job.ID, "topic", job.Topic)
		return nil
	}
}

func renderConfirmation(p shared.ConfirmationEmailPayload) (subject, body string) {
	if p.Kind == transaction.KindRegistration.String() {
		subject = "Registration confirmed"
	} else {
		subject = "Order confirmed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", subject)
	fmt.Fprintf(&b, "<p>Payment received for transaction %s.</p>", p.TransactionID)
	b.WriteString("<ul>")
	for _, li := range p.LineItems {
		fmt.Fprintf(&b, "<li>%s x%d @ %d</li>", li.Name, li.Quantity, li.UnitPrice)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Total: %d</p>", p.TotalAmount)

	return subject, b.String()
}
