package transform

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

// TrainingSessionTransformer maps attendance and registration forms onto
// training session records.
type TrainingSessionTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewTrainingSessionTransformer(r *resolver.Resolver, logger ectologger.Logger) *TrainingSessionTransformer {
	return &TrainingSessionTransformer{
		resolver: r,
		logger:   logger,
	}
}

// Transform builds a training session record from an attendance payload. The
// trainer is resolved by Salesforce id.
func (t *TrainingSessionTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload) (*models.TrainingSession, error) {
	trainerID, err := t.resolver.Resolve(ctx, cache, "Trainer", p.Form().String("trainer"), "sf_id", "users")
	if err != nil {
		return nil, err
	}

	session, err := t.mapSession(p)
	if err != nil {
		return nil, err
	}
	session.TrainerID = &trainerID
	return session, nil
}

func (t *TrainingSessionTransformer) mapSession(p Payload) (*models.TrainingSession, error) {
	form := p.Form()
	formName := p.FormName()
	surveyType := form.String("survey_type")
	surveyDetail := form.String("survey_detail")
	session := form.String("session")

	attendanceLight := formName == "Attendance Light - Current Module" ||
		(formName == "Followup" && surveyType == "Attendance Light")

	switch {
	case attendanceLight && (session == "first_session" || session == ""):
		return t.mapLightFirstSession(p), nil
	case attendanceLight && session == "second_session":
		return t.mapLightSecondSession(p), nil
	case formName == "Attendance Full - Current Module":
		return t.mapFullSession(p), nil
	case surveyDetail == "New Farmer New Household",
		surveyDetail == "New Farmer Existing Household",
		surveyDetail == "Existing Farmer Change in FFG":
		return t.mapRegistrationSession(p), nil
	default:
		return nil, apperrors.NewSkip("unhandled training session form: " + formName)
	}
}

// Attendance light from the farmer trainer records session one.
func (t *TrainingSessionTransformer) mapLightFirstSession(p Payload) *models.TrainingSession {
	form := p.Form()
	participants := form.Map("Current_session_participants")
	gps := ParseGPS(form.String("gps_coordinates"))

	return &models.TrainingSession{
		CommCareCaseID:               form.String("selected_training_module"),
		DateSession1:                 ParseDate(participants.String("date")),
		MaleAttendeesSession1:        ParseIntPtr(participants.String("male_attendance")),
		FemaleAttendeesSession1:      ParseIntPtr(participants.String("female_attendance")),
		TotalAttendeesSession1:       ParseIntPtr(participants.String("total_attendance")),
		LocationGPSLatitudeSession1:  gps.Latitude,
		LocationGPSLongitudeSession1: gps.Longitude,
		LocationGPSAltitudeSession1:  gps.Altitude,
	}
}

// Attendance light from the agronomy advisor records session two.
func (t *TrainingSessionTransformer) mapLightSecondSession(p Payload) *models.TrainingSession {
	form := p.Form()
	participants := form.Map("Current_session_participants")
	gps := ParseGPS(form.String("gps_coordinates"))

	return &models.TrainingSession{
		CommCareCaseID:               form.String("selected_training_module"),
		DateSession2:                 ParseDate(participants.String("date")),
		MaleAttendeesSession2:        ParseIntPtr(participants.String("male_attendance")),
		FemaleAttendeesSession2:      ParseIntPtr(participants.String("female_attendance")),
		TotalAttendeesSession2:       ParseIntPtr(participants.String("total_attendance")),
		LocationGPSLatitudeSession2:  gps.Latitude,
		LocationGPSLongitudeSession2: gps.Longitude,
		LocationGPSAltitudeSession2:  gps.Altitude,
	}
}

func (t *TrainingSessionTransformer) mapFullSession(p Payload) *models.TrainingSession {
	form := p.Form()
	gps := ParseGPS(form.String("gps_coordinates"))

	return &models.TrainingSession{
		CommCareCaseID:               form.String("training_session"),
		DateSession1:                 ParseDate(form.String("date")),
		LocationGPSLatitudeSession1:  gps.Latitude,
		LocationGPSLongitudeSession1: gps.Longitude,
		LocationGPSAltitudeSession1:  gps.Altitude,
	}
}

func (t *TrainingSessionTransformer) mapRegistrationSession(p Payload) *models.TrainingSession {
	form := p.Form()

	return &models.TrainingSession{
		CommCareCaseID: form.String("selected_training_module"),
		DateSession1:   ParseDate(form.String("date")),
	}
}
