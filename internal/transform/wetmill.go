package transform

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/mapping"
	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

// WetmillTransformer maps wet mill registration forms.
type WetmillTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewWetmillTransformer(r *resolver.Resolver, logger ectologger.Logger) *WetmillTransformer {
	return &WetmillTransformer{
		resolver: r,
		logger:   logger,
	}
}

func (t *WetmillTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload) (*models.Wetmill, error) {
	form := p.Form()
	caseID := form.Map("case").String("@case_id")

	// The registering business advisor owns the mill record; their staff id
	// hangs off the project role case.
	userID, err := t.resolver.ResolveColumn(ctx, cache, "Project Role", caseID, "commcare_case_id", "project_staff_roles", "staff_id")
	if err != nil {
		return nil, err
	}

	mill, err := t.mapWetmill(p)
	if err != nil {
		return nil, err
	}
	mill.UserID = userID
	return mill, nil
}

func (t *WetmillTransformer) mapWetmill(p Payload) (*models.Wetmill, error) {
	form := p.Form()
	details := form.Map("wet_mill_details")
	surveyType := form.String("survey_type")

	uniqueID := form.String("wetmill_tns_id")
	if uniqueID == "" {
		return nil, apperrors.NewMalformedPayloadf("wet mill registration is missing wetmill_tns_id").AddEntity("Wetmill")
	}

	gps := ParseGPS(details.String("office_gps"))

	return &models.Wetmill{
		WetMillUniqueID:     uniqueID,
		CommCareCaseID:      StringPtr(form.Map("subcase_0").Map("case").String("@case_id")),
		Name:                StringPtr(details.String("mill_registered_name")),
		MillStatus:          StringPtr(mapping.MapMillStatus(details.String("mill_status"), surveyType)),
		ExportingStatus:     StringPtr(mapping.MapCode(details.String("exporting_status"), mapping.ExportingStatusText, "Undefined")),
		VerticalIntegration: StringPtr(mapping.MapCode(details.String("vertical_integration"), mapping.VerticalIntegrationText, "Undefined")),
		ManagerName:         StringPtr(details.String("manager_name")),
		ManagerRole:         StringPtr(mapping.MapManagerRole(details.String("manager_role"), details.String("manager_role_other"), surveyType)),
		Comments:            StringPtr(details.String("comments")),
		Programme:           StringPtr(form.String("programme")),
		Country:             StringPtr(form.String("country")),
		RegistrationDate:    ParseDate(form.String("registration_date")),
		OfficeGPSLatitude:   gps.Latitude,
		OfficeGPSLongitude:  gps.Longitude,
		BASignatureURL:      StringPtr(AttachmentURLFor(p, details.String("ba_signature"))),
		ManagerSignatureURL: StringPtr(AttachmentURLFor(p, details.String("manager_signature"))),
		TorPagePictureURL:   StringPtr(AttachmentURLFor(p, details.String("tor_page_picture"))),
		OfficeEntranceURL:   StringPtr(AttachmentURLFor(p, details.String("office_entrance_picture"))),
	}, nil
}
