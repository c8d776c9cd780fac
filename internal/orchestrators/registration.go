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

// ParticipantRegistrationOrchestrator ingests farmer registration and update
// forms: household first, then the farmer, then any replacement deactivation,
// then the registration's attendance rows.
type ParticipantRegistrationOrchestrator struct {
	engine     *store.Engine
	farmers    *store.FarmerStore
	attendance *AttendanceFullOrchestrator
	households *transform.HouseholdTransformer
	farmerTx   *transform.FarmerTransformer
	logger     ectologger.Logger
}

func NewParticipantRegistrationOrchestrator(
	engine *store.Engine,
	farmers *store.FarmerStore,
	attendance *AttendanceFullOrchestrator,
	households *transform.HouseholdTransformer,
	farmerTx *transform.FarmerTransformer,
	logger ectologger.Logger,
) *ParticipantRegistrationOrchestrator {
	return &ParticipantRegistrationOrchestrator{
		engine:     engine,
		farmers:    farmers,
		attendance: attendance,
		households: households,
		farmerTx:   farmerTx,
		logger:     logger,
	}
}

func (o *ParticipantRegistrationOrchestrator) Process(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.ParticipantRegistrationOrchestrator.Process")
	defer span.End()

	if err := o.processHousehold(ctx, cache, p, actorID); err != nil {
		return err
	}
	return o.processFarmer(ctx, cache, p, actorID)
}

func (o *ParticipantRegistrationOrchestrator) processHousehold(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	household, err := o.households.Transform(ctx, cache, p)
	if err != nil {
		return err
	}
	id, _, err := o.engine.Upsert(ctx, store.HouseholdSpec, household, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"household_id": id,
	}).Info("Upserted household")
	return nil
}

func (o *ParticipantRegistrationOrchestrator) processFarmer(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	farmer, err := o.farmerTx.Transform(ctx, cache, p)
	if err != nil {
		return err
	}
	id, _, err := o.engine.Upsert(ctx, store.FarmerSpec, farmer, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"farmer_id": id,
	}).Info("Upserted farmer")

	if err := o.handleDeactivation(ctx, p, actorID); err != nil {
		return err
	}
	return o.attendance.ProcessAttendance(ctx, cache, p, "commcare_case_id", actorID)
}

// handleDeactivation retires the farmer being replaced when the registration
// fills an already occupied household spot. The condition blocks arrive under
// literal dotted keys at the top of the form.
func (o *ParticipantRegistrationOrchestrator) handleDeactivation(ctx context.Context, p transform.Payload, actorID *uuid.UUID) error {
	form := p.Form()
	bothFilled := form.Map("existing_household.both_filled").String("replaced_member_full")
	primaryFilled := form.Map("existing_household.primary_spot_filled").String("primary_replace_adding")
	secondaryFilled := form.Map("existing_household.secondary_spot_filled").String("secondary_replace_adding")
	existing := form.Map("existing_household")

	switch {
	case bothFilled == "1" || primaryFilled == "2":
		if oldID := existing.String("existing_primary_farmer_id"); oldID != "" {
			return o.farmers.Deactivate(ctx, oldID, actorID)
		}
	case bothFilled == "2" || secondaryFilled == "2":
		if oldID := existing.String("existing_secondary_farmer_id"); oldID != "" {
			return o.farmers.Deactivate(ctx, oldID, actorID)
		}
	default:
		o.logger.WithContext(ctx).Info("Skipping participant deactivation")
	}
	return nil
}
