package models

import (
	"time"

	"github.com/google/uuid"
)

// TrainingSession carries the incoming values for a training session upsert.
// Pointer fields are nullable; nil values never erase stored data.
type TrainingSession struct {
	CommCareCaseID string     `db:"commcare_case_id"`
	TrainerID      *uuid.UUID `db:"trainer_id"`
	ModuleID       *uuid.UUID `db:"module_id"`
	FarmerGroupID  *uuid.UUID `db:"farmer_group_id"`

	DateSession1 *time.Time `db:"date_session_1"`
	DateSession2 *time.Time `db:"date_session_2"`

	MaleAttendeesSession1   *int `db:"male_attendees_session_1"`
	FemaleAttendeesSession1 *int `db:"female_attendees_session_1"`
	TotalAttendeesSession1  *int `db:"total_attendees_session_1"`

	MaleAttendeesSession2   *int `db:"male_attendees_session_2"`
	FemaleAttendeesSession2 *int `db:"female_attendees_session_2"`
	TotalAttendeesSession2  *int `db:"total_attendees_session_2"`

	LocationGPSLatitudeSession1  *float64 `db:"location_gps_latitude_session_1"`
	LocationGPSLongitudeSession1 *float64 `db:"location_gps_longitude_session_1"`
	LocationGPSAltitudeSession1  *float64 `db:"location_gps_altitude_session_1"`

	LocationGPSLatitudeSession2  *float64 `db:"location_gps_latitude_session_2"`
	LocationGPSLongitudeSession2 *float64 `db:"location_gps_longitude_session_2"`
	LocationGPSAltitudeSession2  *float64 `db:"location_gps_altitude_session_2"`
}

// Attendance links a farmer to a training session.
type Attendance struct {
	SubmissionID      string     `db:"submission_id"`
	FarmerID          uuid.UUID  `db:"farmer_id"`
	TrainingSessionID uuid.UUID  `db:"training_session_id"`
	DateAttended      *time.Time `db:"date_attended"`
	Status            *string    `db:"status"`
}

// Observation is a training or demo plot observation.
type Observation struct {
	SubmissionID      string     `db:"submission_id"`
	ObservationType   string     `db:"observation_type"`
	ObserverID        uuid.UUID  `db:"observer_id"`
	TrainerID         *uuid.UUID `db:"trainer_id"`
	FarmerGroupID     uuid.UUID  `db:"farmer_group_id"`
	TrainingSessionID *uuid.UUID `db:"training_session_id"`
	ObservationDate   *time.Time `db:"observation_date"`

	LocationGPSLatitude  *float64 `db:"location_gps_latitude"`
	LocationGPSLongitude *float64 `db:"location_gps_longitude"`
	LocationGPSAltitude  *float64 `db:"location_gps_altitude"`

	FemaleAttendees *int    `db:"female_attendees"`
	MaleAttendees   *int    `db:"male_attendees"`
	TotalAttendees  *int    `db:"total_attendees"`
	Comments        *string `db:"comments"`
}

// ObservationResult is a single scored criterion or feedback answer.
type ObservationResult struct {
	SubmissionID  string    `db:"submission_id"`
	ObservationID uuid.UUID `db:"observation_id"`
	Criterion     string    `db:"criterion"`
	QuestionKey   string    `db:"question_key"`
	ResultText    *string   `db:"result_text"`
	ResultNumeric *float64  `db:"result_numeric"`
	ResultBoolean *bool     `db:"result_boolean"`
	ResultURL     *string   `db:"result_url"`
}

// Check is a per-farmer spot check captured during visits and observations.
type Check struct {
	SubmissionID               string     `db:"submission_id"`
	FarmerID                   *uuid.UUID `db:"farmer_id"`
	CheckerID                  uuid.UUID  `db:"checker_id"`
	ObservationID              *uuid.UUID `db:"observation_id"`
	FarmVisitID                *uuid.UUID `db:"farm_visit_id"`
	TrainingSessionID          *uuid.UUID `db:"training_session_id"`
	CheckType                  string     `db:"check_type"`
	DateCompleted              *time.Time `db:"date_completed"`
	AttendedTrainings          *bool      `db:"attended_trainings"`
	NumberOfTrainingsAttended  *int       `db:"number_of_trainings_attended"`
	AttendedLastMonthsTraining *bool      `db:"attended_last_months_training"`
}
