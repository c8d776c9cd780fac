package transform

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

// FarmerTransformer maps registration and update forms onto farmer records.
type FarmerTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewFarmerTransformer(r *resolver.Resolver, logger ectologger.Logger) *FarmerTransformer {
	return &FarmerTransformer{
		resolver: r,
		logger:   logger,
	}
}

func (t *FarmerTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload) (*models.Farmer, error) {
	form := p.Form()

	groupExternalID := form.String("Training_Group_Id")
	householdExternalID := form.String("Household_Id")
	if isPRFarmVisitRegistration(p) {
		details := form.Map("participant_data").Map("farmer_registration_details")
		groupExternalID = details.String("Training_Group_Id")
		householdExternalID = details.String("Household_Id")
	}

	farmerGroupID, err := t.resolver.Resolve(ctx, cache, "Farmer Group", groupExternalID, "commcare_case_id", "farmer_groups")
	if err != nil {
		return nil, err
	}
	householdID, err := t.resolver.Resolve(ctx, cache, "Household", householdExternalID, "tns_id", "households")
	if err != nil {
		return nil, err
	}

	farmer, err := t.mapFarmer(p)
	if err != nil {
		return nil, err
	}
	farmer.FarmerGroupID = &farmerGroupID
	farmer.HouseholdID = &householdID
	return farmer, nil
}

func (t *FarmerTransformer) mapFarmer(p Payload) (*models.Farmer, error) {
	form := p.Form()
	surveyDetail := form.String("survey_detail")

	switch {
	case surveyDetail == "New Farmer New Household", surveyDetail == "New Farmer Existing Household":
		return t.mapNewFarmer(p), nil
	case surveyDetail == "Existing Farmer Change in FFG":
		return t.mapChangeOfGroup(p), nil
	case surveyDetail == "Participant Update":
		return t.mapUpdate(p), nil
	case isPRFarmVisitRegistration(p):
		return t.mapPRFarmVisitRegistration(p), nil
	default:
		return nil, apperrors.NewSkip("unhandled farmer form: " + p.FormName())
	}
}

func (t *FarmerTransformer) mapNewFarmer(p Payload) *models.Farmer {
	form := p.Form()
	primary := form.String("Primary_Household_Member") == "Yes"

	return &models.Farmer{
		CommCareCaseID:           form.Map("subcase_0").Map("case").String("@case_id"),
		TNSID:                    StringPtr(form.String("Farmer_Id")),
		FirstName:                StringPtr(form.String("First_Name")),
		MiddleName:               StringPtr(form.String("Middle_Name")),
		LastName:                 StringPtr(form.String("Last_Name")),
		OtherID:                  otherIDNumber(p, p.Form()),
		Gender:                   StringPtr(form.String("Gender")),
		Age:                      ParseIntPtr(form.String("Age")),
		PhoneNumber:              StringPtr(form.String("Phone_Number")),
		IsPrimaryHouseholdMember: BoolPtr(primary),
		Status:                   StringPtr(models.FarmerStatusActive),
		SendToCommCare:           BoolPtr(false),
		SendToCommCareStatus:     StringPtr("Pending"),
	}
}

// A farmer moving between groups keeps their existing case id; only the
// identifiers and group linkage change.
func (t *FarmerTransformer) mapChangeOfGroup(p Payload) *models.Farmer {
	form := p.Form()
	primary := form.String("Primary_Household_Member") == "Yes"

	return &models.Farmer{
		CommCareCaseID:           form.Map("existing_farmer_change_in_ffg").String("old_farmer_id"),
		TNSID:                    StringPtr(form.String("Farmer_Id")),
		OtherID:                  otherIDNumber(p, p.Form()),
		IsPrimaryHouseholdMember: BoolPtr(primary),
		Status:                   StringPtr(models.FarmerStatusActive),
		SendToCommCare:           BoolPtr(false),
		SendToCommCareStatus:     StringPtr("Pending"),
	}
}

func (t *FarmerTransformer) mapUpdate(p Payload) *models.Farmer {
	form := p.Form()
	primary := form.String("Primary_Household_Member") == "Yes"

	return &models.Farmer{
		CommCareCaseID:           form.Map("case").String("@case_id"),
		TNSID:                    StringPtr(form.String("Farmer_Id")),
		FirstName:                StringPtr(form.String("First_Name")),
		MiddleName:               StringPtr(form.String("Middle_Name")),
		LastName:                 StringPtr(form.String("Last_Name")),
		OtherID:                  otherIDNumber(p, p.Form()),
		Gender:                   StringPtr(form.String("Gender")),
		Age:                      ParseIntPtr(form.String("Age")),
		PhoneNumber:              StringPtr(form.String("Phone_Number")),
		IsPrimaryHouseholdMember: BoolPtr(primary),
		Status:                   StringPtr(models.FarmerStatusActive),
		SendToCommCare:           BoolPtr(false),
		SendToCommCareStatus:     StringPtr("Pending"),
	}
}

// Puerto Rico farm visits can register a new farmer inline; the registration
// fields live under participant_data.farmer_registration_details and the new
// case id is the visit's subcase.
func (t *FarmerTransformer) mapPRFarmVisitRegistration(p Payload) *models.Farmer {
	form := p.Form()
	details := form.Map("participant_data").Map("farmer_registration_details")

	return &models.Farmer{
		CommCareCaseID:           form.Map("subcase_0").Map("case").String("@case_id"),
		TNSID:                    StringPtr(details.String("Farmer_Id")),
		FirstName:                StringPtr(details.String("First_Name")),
		MiddleName:               StringPtr(details.String("Middle_Name")),
		LastName:                 StringPtr(details.String("Last_Name")),
		OtherID:                  otherIDNumber(p, details),
		Gender:                   StringPtr(details.String("Gender")),
		Age:                      ParseIntPtr(details.String("Age")),
		PhoneNumber:              StringPtr(details.String("Phone_Number")),
		IsPrimaryHouseholdMember: BoolPtr(true),
		Status:                   StringPtr(models.FarmerStatusActive),
		SendToCommCare:           BoolPtr(false),
		SendToCommCareStatus:     StringPtr("Pending"),
	}
}

// otherIDNumber picks the first populated secondary identifier. Only the
// registration and edit forms carry one.
func otherIDNumber(p Payload, fields Map) *string {
	surveyDetail := p.Form().String("survey_detail")
	formName := p.FormName()

	eligible := (formName == "Farmer Registration" && surveyDetail != "Existing Farmer Change in FFG") ||
		formName == "Edit Farmer Details" ||
		isPRFarmVisitRegistration(p)
	if !eligible {
		return nil
	}

	for _, key := range []string{"National_ID_Number", "Cooperative_Membership_Number", "Grower_Number"} {
		if v := fields.String(key); v != "" {
			return &v
		}
	}
	empty := ""
	return &empty
}

// isPRFarmVisitRegistration reports whether a Puerto Rico farm visit is
// registering a new farmer inline.
func isPRFarmVisitRegistration(p Payload) bool {
	form := p.Form()
	return form.String("survey_type") == "Farm Visit Full - PR" && form.String("new_farmer") == "1"
}
