package repository

import (
	"context"
	"time"

	"clubcore/internal/infra"
	"clubcore/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// CreateJob enqueues a notification inside the caller's transaction, so a
// job exists iff the state change it announces committed.
func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at)
		 VALUES ($1, $2, $3, $4, 'queued', $5)`,
		uuid.New(), kind, topic, payload, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
	RunAt    time.Time
}

// DequeueJobs claims due jobs for the outbox worker. SKIP LOCKED keeps
// concurrent workers from double-sending the same job.
func (r *NotificationRepository) DequeueJobs(ctx context.Context, tx db.DBTX, limit int32) ([]NotificationJob, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, kind, topic, payload, attempts, run_at
		 FROM notification_jobs
		 WHERE status = 'queued' AND run_at <= now()
		 ORDER BY run_at
		 LIMIT $1
		 FOR UPDATE SKIP LOCKED`,
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to dequeue notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts, &j.RunAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}

	return jobs, nil
}

func (r *NotificationRepository) MarkJobSent(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE notification_jobs
		 SET status = 'sent', attempts = attempts + 1, updated_at = now()
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkJobFailed reschedules the job with backoff, or parks it as 'error'
// once attempts are exhausted.
func (r *NotificationRepository) MarkJobFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, maxAttempts int32, retryAt time.Time, cause string) error {
	_, err := tx.Exec(ctx,
		`UPDATE notification_jobs
		 SET attempts = attempts + 1,
		     last_error = $2,
		     status = CASE WHEN attempts + 1 >= $3 THEN 'error' ELSE 'queued' END,
		     run_at = CASE WHEN attempts + 1 >= $3 THEN run_at ELSE $4 END,
		     updated_at = now()
		 WHERE id = $1`,
		id, cause, maxAttempts, retryAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
