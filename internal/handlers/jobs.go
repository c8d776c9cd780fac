package handlers

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/TechnoServe/pima-integration/config"
	"github.com/TechnoServe/pima-integration/internal/queue"
	"github.com/TechnoServe/pima-integration/internal/store"
)

// JobHandler exposes queue operations: manual dispatch, inspection, and retry.
type JobHandler struct {
	cfg        *config.Config
	jobs       *store.JobRepository
	dispatcher *queue.Dispatcher
	logger     ectologger.Logger
}

func NewJobHandler(cfg *config.Config, jobs *store.JobRepository, dispatcher *queue.Dispatcher, logger ectologger.Logger) *JobHandler {
	return &JobHandler{
		cfg:        cfg,
		jobs:       jobs,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *JobHandler) Register(g *echo.Group) {
	g.POST("/dispatch", h.Dispatch)
	g.GET("/summary", h.Summary)
	g.GET("/failed", h.ListFailed)
	g.POST("/:id/retry", h.Retry)
}

// Dispatch runs one dispatch batch immediately.
func (h *JobHandler) Dispatch(c echo.Context) error {
	result, err := h.dispatcher.DispatchBatch(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Summary reports queue counts by status.
func (h *JobHandler) Summary(c echo.Context) error {
	summary, err := h.jobs.Summarize(c.Request().Context(), h.cfg.JobMaxRetries)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// ListFailedQuery is the query for listing failed jobs.
type ListFailedQuery struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// ListFailed lists failed jobs, most recently retried first.
func (h *JobHandler) ListFailed(c echo.Context) error {
	var q ListFailedQuery
	if err := c.Bind(&q); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	if q.Limit == 0 {
		q.Limit = 50
	}

	jobs, err := h.jobs.ListFailed(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Retry requeues a job for another attempt with a fresh retry budget.
func (h *JobHandler) Retry(c echo.Context) error {
	ctx := c.Request().Context()

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	if err := h.jobs.Requeue(ctx, jobID); err != nil {
		return err
	}

	h.logger.WithContext(ctx).WithFields(map[string]any{
		"job_id": jobID,
	}).Info("Requeued job")
	return c.JSON(http.StatusOK, map[string]string{"status": "requeued"})
}
