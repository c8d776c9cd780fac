package transform

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
)

// Check types.
const (
	CheckTypeFarmVisit           = "Farm Visit"
	CheckTypeTrainingObservation = "Training Observation"
)

// CheckTransformer maps per farmer attendance spot checks captured during
// farm visits and training observations.
type CheckTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewCheckTransformer(r *resolver.Resolver, logger ectologger.Logger) *CheckTransformer {
	return &CheckTransformer{
		resolver: r,
		logger:   logger,
	}
}

// Transform builds a check from the per farmer question block. checkType
// selects the farm visit or training observation layout.
func (t *CheckTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload, farmerBlock Map, checkType string) (*models.Check, error) {
	form := p.Form()

	switch checkType {
	case CheckTypeFarmVisit:
		check := t.mapFarmVisitCheck(p, farmerBlock)

		farmVisitID, err := t.resolver.Resolve(ctx, cache, "Farm Visit", FarmVisitSubmissionID(p), "submission_id", "farm_visits")
		if err != nil {
			return nil, err
		}
		checkerID, err := t.resolver.Resolve(ctx, cache, "Checker", form.String("trainer"), "sf_id", "users")
		if err != nil {
			return nil, err
		}
		farmerID, err := t.resolver.Resolve(ctx, cache, "Farmer", farmerBlock.String("farmer_id"), "commcare_case_id", "farmers")
		if err != nil {
			return nil, err
		}
		trainingSessionID, err := t.resolver.Resolve(ctx, cache, "Training Session", form.String("training_session"), "commcare_case_id", "training_sessions")
		if err != nil {
			return nil, err
		}

		check.FarmVisitID = &farmVisitID
		check.CheckerID = checkerID
		check.FarmerID = &farmerID
		check.TrainingSessionID = &trainingSessionID
		return check, nil

	case CheckTypeTrainingObservation:
		check := t.mapObservationCheck(p, farmerBlock)

		observationID, err := t.resolver.Resolve(ctx, cache, "Training Observation", p.SubmissionID(), "submission_id", "observations")
		if err != nil {
			return nil, err
		}
		checkerID, err := t.resolver.Resolve(ctx, cache, "Checker", form.String("Observer"), "sf_id", "users")
		if err != nil {
			return nil, err
		}
		farmerID, err := t.resolver.Resolve(ctx, cache, "Farmer", farmerBlock.String("participant_id"), "commcare_case_id", "farmers")
		if err != nil {
			return nil, err
		}
		trainingSessionID, err := t.resolver.Resolve(ctx, cache, "Training Session", form.String("selected_session"), "commcare_case_id", "training_sessions")
		if err != nil {
			return nil, err
		}

		check.ObservationID = &observationID
		check.CheckerID = checkerID
		check.FarmerID = &farmerID
		check.TrainingSessionID = &trainingSessionID
		return check, nil

	default:
		return &models.Check{}, nil
	}
}

func (t *CheckTransformer) mapFarmVisitCheck(p Payload, farmerBlock Map) *models.Check {
	return &models.Check{
		SubmissionID:               fmt.Sprintf("CHK-%s-%s", p.SubmissionID(), farmerBlock.String("farmer_id")),
		CheckType:                  CheckTypeFarmVisit,
		DateCompleted:              ParseDate(p.Form().String("date_of_visit")),
		AttendedTrainings:          ParseYesNo(farmerBlock.String("attended_training")),
		NumberOfTrainingsAttended:  ParseIntPtr(farmerBlock.String("number_of_trainings")),
		AttendedLastMonthsTraining: attendedLastMonth(farmerBlock.String("Attendend_Previous_Training_Module")),
	}
}

func (t *CheckTransformer) mapObservationCheck(p Payload, farmerBlock Map) *models.Check {
	return &models.Check{
		SubmissionID:               fmt.Sprintf("CHK-%s-%s", p.SubmissionID(), farmerBlock.String("participant_id")),
		CheckType:                  CheckTypeTrainingObservation,
		DateCompleted:              ParseDate(p.Form().String("Date")),
		AttendedLastMonthsTraining: attendedLastMonth(farmerBlock.String("Attendend_Previous_Training_Module")),
	}
}

// attendedLastMonth collapses the three way answer: a month with no training
// offered counts as not attended, anything unanswered stays null.
func attendedLastMonth(answer string) *bool {
	switch answer {
	case "Yes":
		return BoolPtr(true)
	case "No", "No_training_was_offered":
		return BoolPtr(false)
	default:
		return nil
	}
}
