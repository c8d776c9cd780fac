package transform

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

// AttendanceTransformer maps one farmer's presence at a training session.
type AttendanceTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewAttendanceTransformer(r *resolver.Resolver, logger ectologger.Logger) *AttendanceTransformer {
	return &AttendanceTransformer{
		resolver: r,
		logger:   logger,
	}
}

// Transform builds an attendance record for a single farmer external id. The
// farmer column varies by caller (commcare case id for registrations and full
// attendance).
func (t *AttendanceTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload, farmerExternalID, farmerColumn string) (*models.Attendance, error) {
	trainingSessionID, err := t.resolver.Resolve(ctx, cache, "Training Session", p.Form().String("training_session"), "commcare_case_id", "training_sessions")
	if err != nil {
		return nil, err
	}
	farmerID, err := t.resolver.Resolve(ctx, cache, "Farmer", farmerExternalID, farmerColumn, "farmers")
	if err != nil {
		return nil, err
	}

	form := p.Form()
	sessionExternalID := form.String("training_session")
	status := "Present"

	var dateAttended string
	switch p.FormName() {
	case "Attendance Full - Current Module":
		dateAttended = form.String("date")
	case "Farmer Registration":
		dateAttended = form.String("registration_date")
	default:
		return nil, apperrors.NewSkip("unhandled attendance form: " + p.FormName())
	}

	return &models.Attendance{
		SubmissionID:      sessionExternalID + farmerExternalID,
		FarmerID:          farmerID,
		TrainingSessionID: trainingSessionID,
		DateAttended:      ParseDate(dateAttended),
		Status:            &status,
	}, nil
}
