package models

import (
	"time"

	"github.com/google/uuid"
)

// FarmVisit carries the incoming values for a farm visit upsert.
type FarmVisit struct {
	SubmissionID             string     `db:"submission_id"`
	VisitedHouseholdID       uuid.UUID  `db:"visited_household_id"`
	VisitedPrimaryFarmerID   uuid.UUID  `db:"visited_primary_farmer_id"`
	VisitedSecondaryFarmerID *uuid.UUID `db:"visited_secondary_farmer_id"`
	TrainingSessionID        *uuid.UUID `db:"training_session_id"`
	VisitingStaffID          uuid.UUID  `db:"visiting_staff_id"`
	DateVisited              *time.Time `db:"date_visited"`
	FarmVisitType            string     `db:"farm_visit_type"`
	VisitComments            *string    `db:"visit_comments"`
	LatestVisit              *bool      `db:"latest_visit"`

	LocationGPSLatitude  *float64 `db:"location_gps_latitude"`
	LocationGPSLongitude *float64 `db:"location_gps_longitude"`
	LocationGPSAltitude  *float64 `db:"location_gps_altitude"`
}

// FVBestPractice is one best practice section observed during a farm visit.
type FVBestPractice struct {
	SubmissionID     string    `db:"submission_id"`
	FarmVisitID      uuid.UUID `db:"farm_visit_id"`
	BestPracticeType string    `db:"best_practice_type"`
	IsBPVerified     bool      `db:"is_bp_verified"`
}

// FVBestPracticeAnswer is a single question answer under a best practice.
type FVBestPracticeAnswer struct {
	SubmissionID     string    `db:"submission_id"`
	FVBestPracticeID uuid.UUID `db:"fv_best_practice_id"`
	QuestionKey      string    `db:"question_key"`
	AnswerText       *string   `db:"answer_text"`
	AnswerNumeric    *float64  `db:"answer_numeric"`
	AnswerBoolean    *bool     `db:"answer_boolean"`
	AnswerURL        *string   `db:"answer_url"`
}

// Farm is a field inventory plot recorded during a farm visit.
type Farm struct {
	SubmissionID                string     `db:"submission_id"`
	FarmVisitID                 uuid.UUID  `db:"farm_visit_id"`
	HouseholdID                 *uuid.UUID `db:"household_id"`
	FarmName                    string     `db:"farm_name"`
	TNSID                       string     `db:"tns_id"`
	FarmSizeCoffeeTrees         *int       `db:"farm_size_coffee_trees"`
	FarmSizeLandMeasurements    *float64   `db:"farm_size_land_measurements"`
	MainCoffeeField             *bool      `db:"main_coffee_field"`
	PlantingMonthAndYear        *time.Time `db:"planting_month_and_year"`
	PlantedOutOfSeason          *bool      `db:"planted_out_of_season"`
	PlantedOutOfSeasonComments  *string    `db:"planted_out_of_season_comments"`
	PlantedOnVisitDate          *bool      `db:"planted_on_visit_date"`

	LocationGPSLatitude  *float64 `db:"location_gps_latitude"`
	LocationGPSLongitude *float64 `db:"location_gps_longitude"`
	LocationGPSAltitude  *float64 `db:"location_gps_altitude"`
}

// CoffeeVariety is one variety count on a field inventory plot.
type CoffeeVariety struct {
	SubmissionID  string    `db:"submission_id"`
	FarmID        uuid.UUID `db:"farm_id"`
	VarietyName   string    `db:"variety_name"`
	NumberOfTrees int       `db:"number_of_trees"`
}

// Image verification statuses.
const ImageVerificationPending = "Pending"

// Image is a form attachment linked to an ingested record.
type Image struct {
	SubmissionID       string    `db:"submission_id"`
	ImageReferenceType string    `db:"image_reference_type"`
	ImageReferenceID   uuid.UUID `db:"image_reference_id"`
	ImageDescription   *string   `db:"image_description"`
	ImageURL           string    `db:"image_url"`
	VerificationStatus string    `db:"verification_status"`
}
