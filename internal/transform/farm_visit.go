package transform

import (
	"context"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
)

// FarmVisitTransformer maps farm visit forms onto farm visit records.
type FarmVisitTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewFarmVisitTransformer(r *resolver.Resolver, logger ectologger.Logger) *FarmVisitTransformer {
	return &FarmVisitTransformer{
		resolver: r,
		logger:   logger,
	}
}

// FarmVisitSubmissionID derives the farm visit natural key for a submission.
func FarmVisitSubmissionID(p Payload) string {
	return "FV-" + p.SubmissionID()
}

func (t *FarmVisitTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload) (*models.FarmVisit, error) {
	form := p.Form()
	visit := t.mapVisit(p)

	visitingStaffID, err := t.resolver.Resolve(ctx, cache, "Visiting Staff", form.String("trainer"), "sf_id", "users")
	if err != nil {
		return nil, err
	}
	visit.VisitingStaffID = visitingStaffID

	switch {
	case p.FormName() == "Farm Visit Full" && form.String("new_farmer") == "1":
		// Inline registration visit: the household was just created and the
		// new farmer is the visit's subcase.
		householdID, err := t.resolver.Resolve(ctx, cache, "Household",
			form.Map("participant_data").Map("farmer_registration_details").String("Household_Id"),
			"tns_id", "households")
		if err != nil {
			return nil, err
		}
		primaryFarmerID, err := t.resolver.Resolve(ctx, cache, "Primary Farmer",
			form.Map("subcase_0").Map("case").String("@case_id"),
			"commcare_case_id", "farmers")
		if err != nil {
			return nil, err
		}
		visit.VisitedHouseholdID = householdID
		visit.VisitedPrimaryFarmerID = primaryFarmerID
		return visit, nil

	case p.FormName() == "Farm Visit Full":
		if err := t.resolveVisitedFarmers(ctx, cache, visit, form.String("farm_being_visted"), form.String("secondary_farmer")); err != nil {
			return nil, err
		}
		if err := t.resolveTrainingSession(ctx, cache, visit, form.String("training_session")); err != nil {
			return nil, err
		}
		return visit, nil

	case p.FormName() == "Farm Visit - AA":
		// The advisor form carries the visited farmers as one space separated
		// field: primary first, secondary optional.
		farmers := strings.Fields(form.String("farm_being_visted"))
		primary, secondary := "", ""
		if len(farmers) > 0 {
			primary = farmers[0]
		}
		if len(farmers) > 1 {
			secondary = farmers[1]
		}
		if err := t.resolveVisitedFarmers(ctx, cache, visit, primary, secondary); err != nil {
			return nil, err
		}
		if err := t.resolveTrainingSession(ctx, cache, visit, form.String("training_session")); err != nil {
			return nil, err
		}
		return visit, nil

	default:
		return visit, nil
	}
}

func (t *FarmVisitTransformer) resolveVisitedFarmers(ctx context.Context, cache *resolver.Cache, visit *models.FarmVisit, primaryExternalID, secondaryExternalID string) error {
	primaryFarmerID, err := t.resolver.Resolve(ctx, cache, "Primary Farmer", primaryExternalID, "commcare_case_id", "farmers")
	if err != nil {
		return err
	}
	householdID, err := t.resolver.ResolveColumn(ctx, cache, "Primary Farmer", primaryExternalID, "commcare_case_id", "farmers", "household_id")
	if err != nil {
		return err
	}
	visit.VisitedPrimaryFarmerID = primaryFarmerID
	visit.VisitedHouseholdID = householdID

	if secondaryExternalID != "" {
		secondaryFarmerID, err := t.resolver.Resolve(ctx, cache, "Secondary Farmer", secondaryExternalID, "commcare_case_id", "farmers")
		if err != nil {
			return err
		}
		visit.VisitedSecondaryFarmerID = &secondaryFarmerID
	}
	return nil
}

func (t *FarmVisitTransformer) resolveTrainingSession(ctx context.Context, cache *resolver.Cache, visit *models.FarmVisit, externalID string) error {
	trainingSessionID, err := t.resolver.Resolve(ctx, cache, "Training Session", externalID, "commcare_case_id", "training_sessions")
	if err != nil {
		return err
	}
	visit.TrainingSessionID = &trainingSessionID
	return nil
}

func (t *FarmVisitTransformer) mapVisit(p Payload) *models.FarmVisit {
	form := p.Form()
	gps := t.parseVisitGPS(p)

	return &models.FarmVisit{
		SubmissionID:         FarmVisitSubmissionID(p),
		DateVisited:          ParseDate(form.String("date_of_visit")),
		FarmVisitType:        form.String("survey_type"),
		VisitComments:        StringPtr(form.String("farm_visit_comments")),
		LatestVisit:          BoolPtr(true),
		LocationGPSLatitude:  gps.Latitude,
		LocationGPSLongitude: gps.Longitude,
		LocationGPSAltitude:  gps.Altitude,
	}
}

// Ethiopia's form nests the coordinates under the best practice block.
func (t *FarmVisitTransformer) parseVisitGPS(p Payload) GPS {
	form := p.Form()
	if form.String("survey_type") == "Farm Visit Full - ET" {
		return ParseGPS(form.Map("best_practice_questions").String("gps_coordinates"))
	}
	return ParseGPS(form.String("gps_coordinates"))
}
