package models

import (
	"time"

	"github.com/google/uuid"
)

// Wetmill carries the incoming values for a wet mill upsert.
type Wetmill struct {
	WetMillUniqueID       string     `db:"wet_mill_unique_id"`
	CommCareCaseID        *string    `db:"commcare_case_id"`
	UserID                uuid.UUID  `db:"user_id"`
	Name                  *string    `db:"name"`
	MillStatus            *string    `db:"mill_status"`
	ExportingStatus       *string    `db:"exporting_status"`
	VerticalIntegration   *string    `db:"vertical_integration"`
	Programme             *string    `db:"programme"`
	Country               *string    `db:"country"`
	ManagerName           *string    `db:"manager_name"`
	ManagerRole           *string    `db:"manager_role"`
	Comments              *string    `db:"comments"`
	WetmillCounter        *float64   `db:"wetmill_counter"`
	RegistrationDate      *time.Time `db:"registration_date"`
	OfficeGPSLatitude     *float64   `db:"office_gps_latitude"`
	OfficeGPSLongitude    *float64   `db:"office_gps_longitude"`
	BASignatureURL        *string    `db:"ba_signature_url"`
	ManagerSignatureURL   *string    `db:"manager_signature_url"`
	TorPagePictureURL     *string    `db:"tor_page_picture_url"`
	OfficeEntranceURL     *string    `db:"office_entrance_picture_url"`
}

// WetmillVisit carries the incoming values for a wet mill visit upsert.
type WetmillVisit struct {
	SubmissionID         string     `db:"submission_id"`
	WetmillID            uuid.UUID  `db:"wetmill_id"`
	UserID               uuid.UUID  `db:"user_id"`
	FormName             string     `db:"form_name"`
	VisitDate            *time.Time `db:"visit_date"`
	EntrancePhotographURL *string   `db:"entrance_photograph_url"`

	LocationGPSLatitude  *float64 `db:"location_gps_latitude"`
	LocationGPSLongitude *float64 `db:"location_gps_longitude"`
	LocationGPSAltitude  *float64 `db:"location_gps_altitude"`
}

// WVSurveyResponse is one allow-listed survey captured during a wet mill visit.
type WVSurveyResponse struct {
	SubmissionID    string     `db:"submission_id"`
	FormVisitID     uuid.UUID  `db:"form_visit_id"`
	SurveyType      string     `db:"survey_type"`
	CompletedDate   *time.Time `db:"completed_date"`
	GeneralFeedback *string    `db:"general_feedback"`
}

// WVSurveyQuestionResponse is a single exploded survey answer.
type WVSurveyQuestionResponse struct {
	SubmissionID     string     `db:"submission_id"`
	SurveyResponseID uuid.UUID  `db:"survey_response_id"`
	SectionName      *string    `db:"section_name"`
	QuestionName     string     `db:"question_name"`
	FieldType        string     `db:"field_type"`
	ValueText        *string    `db:"value_text"`
	ValueNumber      *float64   `db:"value_number"`
	ValueBoolean     *bool      `db:"value_boolean"`
	ValueDate        *time.Time `db:"value_date"`
	ValueGPS         *string    `db:"value_gps"`
}
