package orchestrators

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/internal/store"
	"github.com/TechnoServe/pima-integration/internal/transform"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

// AttendanceLightOrchestrator ingests attendance light forms: the farmer
// trainer's (or advisor's) per session headcount lands on the training
// session row itself.
type AttendanceLightOrchestrator struct {
	engine      *store.Engine
	transformer *transform.TrainingSessionTransformer
	logger      ectologger.Logger
}

func NewAttendanceLightOrchestrator(engine *store.Engine, transformer *transform.TrainingSessionTransformer, logger ectologger.Logger) *AttendanceLightOrchestrator {
	return &AttendanceLightOrchestrator{
		engine:      engine,
		transformer: transformer,
		logger:      logger,
	}
}

func (o *AttendanceLightOrchestrator) Process(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.AttendanceLightOrchestrator.Process")
	defer span.End()

	return o.ProcessTrainingSession(ctx, cache, p, actorID)
}

// ProcessTrainingSession updates the training session addressed by the form.
func (o *AttendanceLightOrchestrator) ProcessTrainingSession(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	session, err := o.transformer.Transform(ctx, cache, p)
	if err != nil {
		return err
	}

	id, _, err := o.engine.Upsert(ctx, store.TrainingSessionSpec, session, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"training_session_id": id,
	}).Info("Upserted training session")
	return nil
}

// AttendanceFullOrchestrator ingests full attendance forms: the training
// session update plus one attendance row per listed farmer.
type AttendanceFullOrchestrator struct {
	engine      *store.Engine
	light       *AttendanceLightOrchestrator
	transformer *transform.AttendanceTransformer
	logger      ectologger.Logger
}

func NewAttendanceFullOrchestrator(engine *store.Engine, light *AttendanceLightOrchestrator, transformer *transform.AttendanceTransformer, logger ectologger.Logger) *AttendanceFullOrchestrator {
	return &AttendanceFullOrchestrator{
		engine:      engine,
		light:       light,
		transformer: transformer,
		logger:      logger,
	}
}

func (o *AttendanceFullOrchestrator) Process(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.AttendanceFullOrchestrator.Process")
	defer span.End()

	if err := o.light.ProcessTrainingSession(ctx, cache, p, actorID); err != nil {
		return err
	}
	return o.ProcessAttendance(ctx, cache, p, "commcare_case_id", actorID)
}

// ProcessAttendance fans one attendance row out per farmer external id. Which
// form field carries the ids depends on the survey detail; registration forms
// carry the new farmer's subcase, full attendance a space separated roster.
func (o *AttendanceFullOrchestrator) ProcessAttendance(ctx context.Context, cache *resolver.Cache, p transform.Payload, farmerColumn string, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.AttendanceFullOrchestrator.ProcessAttendance")
	defer span.End()

	form := p.Form()
	surveyDetail := form.String("survey_detail")
	if surveyDetail == "" {
		surveyDetail = "Attendance Full - Current Module"
	}

	var raw string
	switch surveyDetail {
	case "New Farmer New Household", "New Farmer Existing Household":
		raw = form.Map("subcase_0").Map("case").String("@case_id")
	case "Existing Farmer Change in FFG":
		raw = form.Map("existing_farmer_change_in_ffg").String("old_farmer_id")
	case "Attendance Full - Current Module":
		raw = form.String("present_participants")
	}

	for _, externalID := range transform.SplitMultiselect(raw) {
		attendance, err := o.transformer.Transform(ctx, cache, p, externalID, farmerColumn)
		if err != nil {
			return err
		}
		id, _, err := o.engine.Upsert(ctx, store.AttendanceSpec, attendance, actorID)
		if err != nil {
			return err
		}
		o.logger.WithContext(ctx).WithFields(map[string]any{
			"attendance_id": id,
			"farmer":        externalID,
		}).Info("Upserted attendance")
	}
	return nil
}
