package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/TechnoServe/pima-integration/internal/store"
	"github.com/TechnoServe/pima-integration/internal/transform"
	"github.com/TechnoServe/pima-integration/pkg/metrics"
)

// SubmissionHandler accepts CommCare form submissions into the job queue.
type SubmissionHandler struct {
	jobs   *store.JobRepository
	logger ectologger.Logger
}

func NewSubmissionHandler(jobs *store.JobRepository, logger ectologger.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		jobs:   jobs,
		logger: logger,
	}
}

func (h *SubmissionHandler) Register(g *echo.Group) {
	g.POST("", h.CreateSubmission)
}

// SubmissionResponse reports whether the submission was newly queued.
type SubmissionResponse struct {
	JobType    string `json:"job_type"`
	ExternalID string `json:"external_id"`
	Enqueued   bool   `json:"enqueued"`
}

// CreateSubmission enqueues one raw form submission. The job type is the
// form's @name; re-delivery of an already queued submission is acknowledged
// without enqueueing again.
func (h *SubmissionHandler) CreateSubmission(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	payload, err := transform.ParsePayload(body)
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	jobType := payload.FormName()
	externalID := payload.SubmissionID()

	enqueued, err := h.jobs.Enqueue(ctx, jobType, externalID, json.RawMessage(body))
	if err != nil {
		return err
	}

	if enqueued {
		metrics.JobsEnqueuedTotal.WithLabelValues(jobType).Inc()
		h.logger.WithContext(ctx).WithFields(map[string]any{
			"job_type":    jobType,
			"external_id": externalID,
		}).Info("Enqueued submission")
	} else {
		h.logger.WithContext(ctx).WithFields(map[string]any{
			"job_type":    jobType,
			"external_id": externalID,
		}).Info("Submission already queued")
	}

	return c.JSON(http.StatusAccepted, SubmissionResponse{
		JobType:    jobType,
		ExternalID: externalID,
		Enqueued:   enqueued,
	})
}
