package queue

import (
	"context"
	"errors"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/config"
	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/orchestrators"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/internal/store"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
	"github.com/TechnoServe/pima-integration/pkg/database"
	"github.com/TechnoServe/pima-integration/pkg/kafka"
	"github.com/TechnoServe/pima-integration/pkg/metrics"
	"github.com/TechnoServe/pima-integration/pkg/redis"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

const dispatchLockKey = "jobs:dispatch"

// OutcomePublisher publishes job outcome events after each attempt.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, event kafka.OutcomeEvent) error
}

// DispatchResult summarizes one dispatch run.
type DispatchResult struct {
	Claimed   int `json:"claimed"`
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Dispatcher drains the job queue. Each job runs its full orchestration chain
// inside its own transaction; the outcome is recorded on the raw connection so
// it survives the rollback of a failed job.
type Dispatcher struct {
	cfg      *config.Config
	db       database.DB
	jobs     *store.JobRepository
	registry *orchestrators.Registry
	locker   *redis.Locker
	outcomes OutcomePublisher
	actorID  *uuid.UUID
	logger   ectologger.Logger
}

func NewDispatcher(
	cfg *config.Config,
	db database.DB,
	jobs *store.JobRepository,
	registry *orchestrators.Registry,
	locker *redis.Locker,
	outcomes OutcomePublisher,
	logger ectologger.Logger,
) *Dispatcher {
	var actorID *uuid.UUID
	if cfg.IngestionActorID != "" {
		if id, err := uuid.Parse(cfg.IngestionActorID); err == nil {
			actorID = &id
		} else {
			logger.WithError(err).Errorf("Invalid ingestion actor id %q, rows will carry no actor", cfg.IngestionActorID)
		}
	}

	return &Dispatcher{
		cfg:      cfg,
		db:       db,
		jobs:     jobs,
		registry: registry,
		locker:   locker,
		outcomes: outcomes,
		actorID:  actorID,
		logger:   logger,
	}
}

// DispatchBatch claims and processes one batch of eligible jobs. The batch
// runs under a distributed lock so concurrent replicas do not double process;
// a held lock means another replica is draining and this run is a no-op.
func (d *Dispatcher) DispatchBatch(ctx context.Context) (DispatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "queue.Dispatcher.DispatchBatch")
	defer span.End()

	lock, err := d.locker.Acquire(ctx, dispatchLockKey, d.cfg.DispatchLockTTL)
	if err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			d.logger.WithContext(ctx).Info("Dispatch lock held elsewhere, skipping run")
			return DispatchResult{}, nil
		}
		return DispatchResult{}, err
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			d.logger.WithContext(ctx).WithError(err).Error("Failed to release dispatch lock")
		}
	}()

	jobs, err := d.jobs.ClaimBatch(ctx, d.cfg.DispatchBatchSize, d.cfg.JobMaxRetries)
	if err != nil {
		return DispatchResult{}, err
	}

	result := DispatchResult{Claimed: len(jobs)}
	for i := range jobs {
		switch d.processJob(ctx, &jobs[i]) {
		case models.JobStatusCompleted:
			result.Completed++
		case models.JobStatusFailed:
			result.Failed++
		default:
			result.Skipped++
		}
	}

	if depth, err := d.jobs.CountDispatchable(ctx, d.cfg.JobMaxRetries); err == nil {
		metrics.QueueDepth.Set(float64(depth))
	}

	d.logger.WithContext(ctx).WithFields(map[string]any{
		"claimed":   result.Claimed,
		"completed": result.Completed,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	}).Info("Dispatched job batch")
	return result, nil
}

// processJob runs one job and records its outcome. The returned status is the
// job's new queue status; skips complete the job without doing work.
func (d *Dispatcher) processJob(ctx context.Context, job *models.Job) string {
	ctx, span := tracing.StartSpan(ctx, "queue.Dispatcher.processJob")
	defer span.End()

	started := time.Now()
	status, jobErr := d.runJob(ctx, job)
	metrics.JobDuration.WithLabelValues(job.JobType).Observe(time.Since(started).Seconds())

	var errText string
	switch status {
	case models.JobStatusCompleted:
		if err := d.jobs.MarkCompleted(ctx, job.ID); err != nil {
			d.logger.WithContext(ctx).WithError(err).Errorf("Failed to record outcome for job %s", job.ID)
		}
		metrics.JobsProcessedTotal.WithLabelValues(job.JobType, "completed").Inc()
	case models.JobStatusFailed:
		errText = jobErr.Error()
		if err := d.jobs.MarkFailed(ctx, job.ID, errText); err != nil {
			d.logger.WithContext(ctx).WithError(err).Errorf("Failed to record outcome for job %s", job.ID)
		}
		metrics.JobsProcessedTotal.WithLabelValues(job.JobType, "failed").Inc()
		job.RetryCount++
	default:
		// Skips are terminal successes: the submission is recognized but
		// carries nothing to ingest.
		errText = jobErr.Error()
		if err := d.jobs.MarkCompleted(ctx, job.ID); err != nil {
			d.logger.WithContext(ctx).WithError(err).Errorf("Failed to record outcome for job %s", job.ID)
		}
		metrics.JobsProcessedTotal.WithLabelValues(job.JobType, "skipped").Inc()
		status = models.JobStatusCompleted
	}

	d.publishOutcome(ctx, job, status, errText)
	return status
}

// runJob executes the orchestration chain inside a fresh transaction. The
// returned status is "" for skips.
func (d *Dispatcher) runJob(ctx context.Context, job *models.Job) (string, error) {
	txCtx, tx, err := d.db.GetTx(ctx, nil)
	if err != nil {
		return models.JobStatusFailed, err
	}

	cache := resolver.NewCache()
	if err := d.registry.Process(txCtx, cache, job.JobType, job.Payload, d.actorID); err != nil {
		if rbErr := tx.Rollback(txCtx); rbErr != nil {
			d.logger.WithContext(ctx).WithError(rbErr).Errorf("Failed to roll back job %s", job.ID)
		}
		if apperrors.IsSkip(err) {
			d.logger.WithContext(ctx).WithFields(map[string]any{
				"job_id":   job.ID,
				"job_type": job.JobType,
				"reason":   err.Error(),
			}).Info("Skipped job")
			return "", err
		}
		d.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"job_id":      job.ID,
			"job_type":    job.JobType,
			"external_id": job.ExternalID,
			"retry_count": job.RetryCount,
		}).Error("Job failed")
		return models.JobStatusFailed, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return models.JobStatusFailed, err
	}
	return models.JobStatusCompleted, nil
}

func (d *Dispatcher) publishOutcome(ctx context.Context, job *models.Job, status, errText string) {
	if d.outcomes == nil {
		return
	}
	event := kafka.OutcomeEvent{
		JobID:      job.ID.String(),
		JobType:    job.JobType,
		ExternalID: job.ExternalID,
		Status:     status,
		RetryCount: job.RetryCount,
		Error:      errText,
		Timestamp:  time.Now().UTC(),
	}
	if err := d.outcomes.PublishOutcome(ctx, event); err != nil {
		d.logger.WithContext(ctx).WithError(err).Errorf("Failed to publish outcome for job %s", job.ID)
	}
}
