package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
	"github.com/TechnoServe/pima-integration/pkg/database"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

var jobColumns = []string{
	"id", "payload", "job_type", "external_id", "status",
	"retry_count", "last_retried_at", "error", "created_at", "updated_at",
}

// JobRepository is the durable queue store. Status writes run directly on the
// connection, never inside a job's transaction: an outcome must survive the
// rollback of the work that produced it.
type JobRepository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewJobRepository(db database.DB, logger ectologger.Logger) *JobRepository {
	return &JobRepository{
		db:     db,
		logger: logger,
	}
}

// Enqueue inserts a job keyed by the external submission id. Re-delivery of a
// submission that is already queued (or already processed) is a no-op.
func (r *JobRepository) Enqueue(ctx context.Context, jobType, externalID string, payload json.RawMessage) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "store.JobRepository.Enqueue")
	defer span.End()

	if externalID == "" {
		return false, apperrors.NewMalformedPayloadf("submission id is required")
	}
	if jobType == "" {
		return false, apperrors.NewMalformedPayloadf("form name is required")
	}

	ib := database.NewInsertBuilder()
	ib = ib.InsertInto("jobs").
		Cols("id", "payload", "job_type", "external_id", "status").
		Values(uuid.New(), []byte(payload), jobType, externalID, models.JobStatusNew).
		OnConflictDoNothing("external_id")

	query, args := ib.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"job_type":    jobType,
			"external_id": externalID,
		}).Error("Failed to enqueue job")
		return false, apperrors.NewStoreError(err, "failed to enqueue job")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewStoreError(err, "failed to read enqueue result")
	}
	return affected > 0, nil
}

// ClaimBatch returns jobs eligible for dispatch: new jobs plus failed jobs
// under the retry ceiling, oldest first. Claiming does not change status; a
// crashed dispatcher leaves the batch dispatchable.
func (r *JobRepository) ClaimBatch(ctx context.Context, limit, maxRetries int) ([]models.Job, error) {
	ctx, span := tracing.StartSpan(ctx, "store.JobRepository.ClaimBatch")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(jobColumns...)
	sb.From("jobs")
	sb.Where(
		sb.Or(
			sb.Equal("status", models.JobStatusNew),
			sb.And(
				sb.Equal("status", models.JobStatusFailed),
				sb.LessThan("retry_count", maxRetries),
			),
		),
	)
	sb.OrderBy("created_at ASC")
	sb.Limit(limit)

	query, args := sb.Build()
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to claim job batch")
		return nil, apperrors.NewStoreError(err, "failed to claim job batch")
	}
	return jobs, nil
}

// MarkCompleted records a successful attempt and clears any previous error.
func (r *JobRepository) MarkCompleted(ctx context.Context, jobID uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "store.JobRepository.MarkCompleted")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update("jobs")
	ub.Set(
		ub.Assign("status", models.JobStatusCompleted),
		ub.Assign("error", nil),
		ub.Assign("updated_at", time.Now().UTC()),
	)
	ub.Where(ub.Equal("id", jobID))

	query, args := ub.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("Failed to mark job %s completed", jobID)
		return apperrors.NewStoreError(err, "failed to record job outcome")
	}
	return nil
}

// MarkFailed records a failed attempt, bumping the retry count and stamping
// the retry time. Once retry_count reaches the ceiling the job is terminal.
func (r *JobRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, jobErr string) error {
	ctx, span := tracing.StartSpan(ctx, "store.JobRepository.MarkFailed")
	defer span.End()

	now := time.Now().UTC()
	ub := database.NewUpdateBuilder()
	ub.Update("jobs")
	ub.Set(
		ub.Assign("status", models.JobStatusFailed),
		ub.Incr("retry_count"),
		ub.Assign("last_retried_at", now),
		ub.Assign("error", jobErr),
		ub.Assign("updated_at", now),
	)
	ub.Where(ub.Equal("id", jobID))

	query, args := ub.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("Failed to mark job %s failed", jobID)
		return apperrors.NewStoreError(err, "failed to record job outcome")
	}
	return nil
}

// Requeue resets a job for manual retry, clearing its retry budget.
func (r *JobRepository) Requeue(ctx context.Context, jobID uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "store.JobRepository.Requeue")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update("jobs")
	ub.Set(
		ub.Assign("status", models.JobStatusNew),
		ub.Assign("retry_count", 0),
		ub.Assign("error", nil),
		ub.Assign("updated_at", time.Now().UTC()),
	)
	ub.Where(ub.Equal("id", jobID))

	query, args := ub.Build()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Errorf("Failed to requeue job %s", jobID)
		return apperrors.NewStoreError(err, "failed to requeue job")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError(err, "failed to read requeue result")
	}
	if affected == 0 {
		return apperrors.NewNotFoundf("job", "job %s not found", jobID)
	}
	return nil
}

// Summarize reports queue counts by status. Exhausted counts failed jobs at
// or over the retry ceiling; they are excluded from the failed count.
func (r *JobRepository) Summarize(ctx context.Context, maxRetries int) (models.QueueSummary, error) {
	ctx, span := tracing.StartSpan(ctx, "store.JobRepository.Summarize")
	defer span.End()

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'new') AS new,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'failed' AND retry_count < $1) AS failed,
			COUNT(*) FILTER (WHERE status = 'failed' AND retry_count >= $1) AS exhausted
		FROM jobs`

	var summary models.QueueSummary
	if err := r.db.GetContext(ctx, &summary, query, maxRetries); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to summarize queue")
		return models.QueueSummary{}, apperrors.NewStoreError(err, "failed to summarize queue")
	}
	return summary, nil
}

// ListFailed returns failed jobs, most recently retried first.
func (r *JobRepository) ListFailed(ctx context.Context, limit, offset int) ([]models.Job, error) {
	ctx, span := tracing.StartSpan(ctx, "store.JobRepository.ListFailed")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select(jobColumns...)
	sb.From("jobs")
	sb.Where(sb.Equal("status", models.JobStatusFailed))
	sb.OrderBy("last_retried_at DESC NULLS LAST")
	sb.Limit(limit)
	sb.Offset(offset)

	query, args := sb.Build()
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list failed jobs")
		return nil, apperrors.NewStoreError(err, "failed to list failed jobs")
	}
	return jobs, nil
}

// CountDispatchable returns the number of jobs currently eligible for dispatch.
func (r *JobRepository) CountDispatchable(ctx context.Context, maxRetries int) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "store.JobRepository.CountDispatchable")
	defer span.End()

	query := `
		SELECT COUNT(*)
		FROM jobs
		WHERE status = 'new' OR (status = 'failed' AND retry_count < $1)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, maxRetries); err != nil {
		return 0, apperrors.NewStoreError(err, "failed to count dispatchable jobs")
	}
	return count, nil
}
