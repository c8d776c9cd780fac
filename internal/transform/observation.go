package transform

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

// ObservationTransformer maps training and demo plot observation forms.
type ObservationTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewObservationTransformer(r *resolver.Resolver, logger ectologger.Logger) *ObservationTransformer {
	return &ObservationTransformer{
		resolver: r,
		logger:   logger,
	}
}

func (t *ObservationTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload) (*models.Observation, error) {
	form := p.Form()

	switch form.String("survey_type") {
	case "Training Observation - Agronomy":
		obs := t.mapTrainingObservation(p)

		trainerID, err := t.resolver.Resolve(ctx, cache, "Trainer", form.String("trainer_salesforce_id"), "sf_id", "users")
		if err != nil {
			return nil, err
		}
		observerID, err := t.resolver.Resolve(ctx, cache, "Observer", form.String("Observer"), "sf_id", "users")
		if err != nil {
			return nil, err
		}
		farmerGroupID, err := t.resolver.Resolve(ctx, cache, "Training Group", form.String("Which_Group_Is_Farmer_Trainer_Teaching"), "commcare_case_id", "farmer_groups")
		if err != nil {
			return nil, err
		}
		trainingSessionID, err := t.resolver.Resolve(ctx, cache, "Training Session", form.String("selected_session"), "commcare_case_id", "training_sessions")
		if err != nil {
			return nil, err
		}

		obs.TrainerID = &trainerID
		obs.ObserverID = observerID
		obs.FarmerGroupID = farmerGroupID
		obs.TrainingSessionID = &trainingSessionID
		return obs, nil

	case "Demo Plot Observation":
		obs := t.mapDemoPlotObservation(p)

		observerID, err := t.resolver.Resolve(ctx, cache, "Observer", form.String("observer"), "sf_id", "users")
		if err != nil {
			return nil, err
		}
		farmerGroupID, err := t.resolver.Resolve(ctx, cache, "Training Group", form.String("training_group"), "commcare_case_id", "farmer_groups")
		if err != nil {
			return nil, err
		}

		obs.ObserverID = observerID
		obs.FarmerGroupID = farmerGroupID
		return obs, nil

	default:
		return nil, apperrors.NewSkip("unhandled observation survey type: " + form.String("survey_type"))
	}
}

func (t *ObservationTransformer) mapTrainingObservation(p Payload) *models.Observation {
	form := p.Form()
	participants := form.Map("Current_session_participants")
	update := form.Map("case").Map("update")
	gps := t.parseObservationGPS(p)

	comments := fmt.Sprintf("Did Well: '%s'; To Improve: '%s'",
		update.String("Did_Well"), update.String("To_Improve"))

	return &models.Observation{
		SubmissionID:         p.SubmissionID(),
		ObservationType:      "Training",
		ObservationDate:      ParseDate(form.String("Date")),
		LocationGPSLatitude:  gps.Latitude,
		LocationGPSLongitude: gps.Longitude,
		LocationGPSAltitude:  gps.Altitude,
		FemaleAttendees:      ParseIntPtr(participants.String("Female_Participants_In_Attendance")),
		MaleAttendees:        ParseIntPtr(participants.String("Male_Participants_In_Attendance")),
		TotalAttendees:       ParseIntPtr(participants.String("Total_Participants_In_Attendance")),
		Comments:             &comments,
	}
}

func (t *ObservationTransformer) mapDemoPlotObservation(p Payload) *models.Observation {
	form := p.Form()
	gps := t.parseObservationGPS(p)

	return &models.Observation{
		SubmissionID:         p.SubmissionID(),
		ObservationType:      "Demo Plot",
		ObservationDate:      ParseDate(form.String("date")),
		LocationGPSLatitude:  gps.Latitude,
		LocationGPSLongitude: gps.Longitude,
		LocationGPSAltitude:  gps.Altitude,
		Comments:             StringPtr(form.String("visit_comments")),
	}
}

// Observation forms carry the device location in form meta; the demo plot
// form also records an explicit GPS question.
func (t *ObservationTransformer) parseObservationGPS(p Payload) GPS {
	form := p.Form()
	raw := form.Map("meta").Map("location").String("#text")
	if raw == "" {
		raw = form.Map("gps_information").String("gps_location")
	}
	return ParseGPS(raw)
}

// ObservationResultTransformer maps one scored criterion or feedback answer.
type ObservationResultTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewObservationResultTransformer(r *resolver.Resolver, logger ectologger.Logger) *ObservationResultTransformer {
	return &ObservationResultTransformer{
		resolver: r,
		logger:   logger,
	}
}

// ObservationResultInput is one exploded result produced by the orchestrator.
type ObservationResultInput struct {
	SubmissionID  string
	Criterion     string
	QuestionKey   string
	ResultText    *string
	ResultNumeric *float64
	// Photo is the attachment name for the section photo, if any.
	Photo string
}

func (t *ObservationResultTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload, in ObservationResultInput) (*models.ObservationResult, error) {
	observationID, err := t.resolver.Resolve(ctx, cache, "Observation", p.SubmissionID(), "submission_id", "observations")
	if err != nil {
		return nil, err
	}

	return &models.ObservationResult{
		SubmissionID:  in.SubmissionID,
		ObservationID: observationID,
		Criterion:     in.Criterion,
		QuestionKey:   in.QuestionKey,
		ResultText:    in.ResultText,
		ResultNumeric: in.ResultNumeric,
	}, nil
}
