package transform

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

// HouseholdTransformer maps registration and update forms onto household
// records.
type HouseholdTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewHouseholdTransformer(r *resolver.Resolver, logger ectologger.Logger) *HouseholdTransformer {
	return &HouseholdTransformer{
		resolver: r,
		logger:   logger,
	}
}

func (t *HouseholdTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload) (*models.Household, error) {
	form := p.Form()

	groupExternalID := form.String("Training_Group_Id")
	if isPRFarmVisitRegistration(p) {
		groupExternalID = form.Map("participant_data").Map("farmer_registration_details").String("Training_Group_Id")
	}

	farmerGroupID, err := t.resolver.Resolve(ctx, cache, "Farmer Group", groupExternalID, "commcare_case_id", "farmer_groups")
	if err != nil {
		return nil, err
	}

	household, err := t.mapHousehold(p)
	if err != nil {
		return nil, err
	}
	household.FarmerGroupID = &farmerGroupID
	return household, nil
}

func (t *HouseholdTransformer) mapHousehold(p Payload) (*models.Household, error) {
	form := p.Form()
	surveyDetail := form.String("survey_detail")
	primaryMember := form.String("Farmer_Number") == "1"

	registration := surveyDetail == "New Farmer New Household" ||
		surveyDetail == "New Farmer Existing Household" ||
		surveyDetail == "Existing Farmer Change in FFG"

	switch {
	case registration && primaryMember:
		return t.mapRegistrationPrimary(p), nil
	case registration:
		return t.mapRegistrationSecondary(p), nil
	case surveyDetail == "Participant Update":
		return t.mapUpdate(p), nil
	case isPRFarmVisitRegistration(p):
		return t.mapPRFarmVisitRegistration(p), nil
	default:
		return nil, apperrors.NewSkip("unhandled household form: " + p.FormName())
	}
}

// Primary member registrations carry the full household profile. Ethiopia
// measures coffee by farm area, every other country by tree count.
func (t *HouseholdTransformer) mapRegistrationPrimary(p Payload) *models.Household {
	form := p.Form()
	country := form.String("coffee_project_country")

	h := &models.Household{
		TNSID:           form.String("Household_Id"),
		HouseholdName:   StringPtr(form.String("Household_Number")),
		HouseholdNumber: ParseIntPtr(form.String("Household_Number")),
		Status:          StringPtr(models.FarmerStatusActive),
	}

	if size := farmSize(p); size != nil {
		if country == "Ethiopia" {
			h.FarmSize = size
		} else {
			trees := int(*size)
			h.NumberOfTrees = &trees
		}
	}

	if country == "Puerto Rico" {
		participant := form.Map("participant_data")
		h.FarmSizeBefore = ParseFloatPtr(participant.String("farm_size_3_years_and_older"))
		h.FarmSizeAfter = ParseFloatPtr(participant.String("farm_size_under_3_years"))
	}
	return h
}

func (t *HouseholdTransformer) mapRegistrationSecondary(p Payload) *models.Household {
	form := p.Form()

	return &models.Household{
		TNSID:           form.String("Household_Id"),
		HouseholdName:   StringPtr(form.String("Household_Number")),
		HouseholdNumber: ParseIntPtr(form.String("Household_Number")),
		Status:          StringPtr(models.FarmerStatusActive),
	}
}

func (t *HouseholdTransformer) mapUpdate(p Payload) *models.Household {
	form := p.Form()
	country := form.String("coffee_project_country")

	h := &models.Household{
		TNSID:  form.String("Household_Id"),
		Status: StringPtr(models.FarmerStatusActive),
	}
	if size := farmSize(p); size != nil {
		if country == "Ethiopia" {
			h.FarmSize = size
		} else {
			trees := int(*size)
			h.NumberOfTrees = &trees
		}
	}
	return h
}

func (t *HouseholdTransformer) mapPRFarmVisitRegistration(p Payload) *models.Household {
	form := p.Form()
	details := form.Map("participant_data").Map("farmer_registration_details")
	zero := 0.0

	h := &models.Household{
		TNSID:           form.String("Household_Id"),
		HouseholdName:   StringPtr(details.String("Household_Number")),
		HouseholdNumber: ParseIntPtr(details.String("Household_Number")),
		FarmSizeBefore:  ParseFloatPtr(form.Map("participant_data").String("farm_size_3_years_and_older")),
		FarmSizeAfter:   ParseFloatPtr(form.Map("participant_data").String("farm_size_under_3_years")),
		FarmSizeSince:   &zero,
		Status:          StringPtr(models.FarmerStatusActive),
	}
	if size := farmSize(p); size != nil {
		trees := int(*size)
		h.NumberOfTrees = &trees
	}
	return h
}

// farmSize picks the tree count or area for the form variant, nil when the
// form carries none.
func farmSize(p Payload) *float64 {
	form := p.Form()
	surveyDetail := form.String("survey_detail")
	formName := p.FormName()

	if (formName == "Farmer Registration" && surveyDetail != "Existing Farmer Change in FFG") ||
		formName == "Edit Farmer Details" || formName == "Field Day Farmer Registration" {
		return ParseFloatPtr(form.String("Number_of_Trees"))
	}

	change := form.Map("existing_farmer_change_in_ffg")
	if change.String("former_farmer_primary_secondary_yn") == "Yes" {
		return ParseFloatPtr(change.String("former_farmer_coffeetrees"))
	}
	return nil
}
