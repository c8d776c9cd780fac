package models

import "github.com/google/uuid"

// Farmer statuses.
const (
	FarmerStatusActive   = "Active"
	FarmerStatusInactive = "Inactive"
)

// Farmer carries the incoming values for a farmer upsert.
type Farmer struct {
	CommCareCaseID           string     `db:"commcare_case_id"`
	TNSID                    *string    `db:"tns_id"`
	HouseholdID              *uuid.UUID `db:"household_id"`
	FarmerGroupID            *uuid.UUID `db:"farmer_group_id"`
	FirstName                *string    `db:"first_name"`
	MiddleName               *string    `db:"middle_name"`
	LastName                 *string    `db:"last_name"`
	OtherID                  *string    `db:"other_id"`
	Gender                   *string    `db:"gender"`
	Age                      *int       `db:"age"`
	PhoneNumber              *string    `db:"phone_number"`
	IsPrimaryHouseholdMember *bool      `db:"is_primary_household_member"`
	Status                   *string    `db:"status"`
	StatusNotes              *string    `db:"status_notes"`
	SendToCommCare           *bool      `db:"send_to_commcare"`
	SendToCommCareStatus     *string    `db:"send_to_commcare_status"`
}

// Household carries the incoming values for a household upsert.
type Household struct {
	TNSID           string     `db:"tns_id"`
	CommCareCaseID  *string    `db:"commcare_case_id"`
	FarmerGroupID   *uuid.UUID `db:"farmer_group_id"`
	HouseholdName   *string    `db:"household_name"`
	HouseholdNumber *int       `db:"household_number"`
	NumberOfTrees   *int       `db:"number_of_trees"`
	FarmSize        *float64   `db:"farm_size"`
	FarmSizeBefore  *float64   `db:"farm_size_before"`
	FarmSizeAfter   *float64   `db:"farm_size_after"`
	FarmSizeSince   *float64   `db:"farm_size_since"`
	Status          *string    `db:"status"`
}
