package transform

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
)

// WetmillVisitSubmissionID derives the visit natural key.
func WetmillVisitSubmissionID(p Payload) string {
	return "WV-" + p.SubmissionID()
}

// SurveyResponseSubmissionID derives the per survey natural key.
func SurveyResponseSubmissionID(p Payload, surveyType string) string {
	return fmt.Sprintf("SR-%s-%s", p.SubmissionID(), surveyType)
}

// WetmillVisitTransformer maps wet mill visit forms.
type WetmillVisitTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewWetmillVisitTransformer(r *resolver.Resolver, logger ectologger.Logger) *WetmillVisitTransformer {
	return &WetmillVisitTransformer{
		resolver: r,
		logger:   logger,
	}
}

func (t *WetmillVisitTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload) (*models.WetmillVisit, error) {
	form := p.Form()
	caseID := form.Map("case").String("@case_id")

	wetmillID, err := t.resolver.Resolve(ctx, cache, "Wetmill", caseID, "commcare_case_id", "wetmills")
	if err != nil {
		return nil, err
	}
	// The visit inherits the mill's owning business advisor.
	userID, err := t.resolver.ResolveColumn(ctx, cache, "Wetmill", caseID, "commcare_case_id", "wetmills", "user_id")
	if err != nil {
		return nil, err
	}

	visit := t.mapVisit(p)
	visit.WetmillID = wetmillID
	visit.UserID = userID
	return visit, nil
}

func (t *WetmillVisitTransformer) mapVisit(p Payload) *models.WetmillVisit {
	form := p.Form()
	intro := form.Map("introduction")
	gps := ParseGPS(intro.String("gps"))

	return &models.WetmillVisit{
		SubmissionID:          WetmillVisitSubmissionID(p),
		FormName:              form.String("survey_type"),
		VisitDate:             ParseDate(form.String("date")),
		EntrancePhotographURL: StringPtr(AttachmentURLFor(p, intro.String("wetmill_entrance_photograph"))),
		LocationGPSLatitude:   gps.Latitude,
		LocationGPSLongitude:  gps.Longitude,
		LocationGPSAltitude:   gps.Altitude,
	}
}

// WVSurveyResponseTransformer maps one allow-listed survey of a wet mill visit.
type WVSurveyResponseTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewWVSurveyResponseTransformer(r *resolver.Resolver, logger ectologger.Logger) *WVSurveyResponseTransformer {
	return &WVSurveyResponseTransformer{
		resolver: r,
		logger:   logger,
	}
}

func (t *WVSurveyResponseTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload, surveyType string, content Map) (*models.WVSurveyResponse, error) {
	formVisitID, err := t.resolver.Resolve(ctx, cache, "Wetmill Visit", WetmillVisitSubmissionID(p), "submission_id", "wetmill_visits")
	if err != nil {
		return nil, err
	}

	return &models.WVSurveyResponse{
		SubmissionID:    SurveyResponseSubmissionID(p, surveyType),
		FormVisitID:     formVisitID,
		SurveyType:      surveyType,
		CompletedDate:   ParseDate(p.Form().String("date")),
		GeneralFeedback: StringPtr(content.String("general_feedback")),
	}, nil
}

// WVSurveyQuestionResponseTransformer maps one exploded survey answer.
type WVSurveyQuestionResponseTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewWVSurveyQuestionResponseTransformer(r *resolver.Resolver, logger ectologger.Logger) *WVSurveyQuestionResponseTransformer {
	return &WVSurveyQuestionResponseTransformer{
		resolver: r,
		logger:   logger,
	}
}

func (t *WVSurveyQuestionResponseTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload, surveyType, sectionName, questionName string, answer any, submissionID string) (*models.WVSurveyQuestionResponse, error) {
	surveyResponseID, err := t.resolver.Resolve(ctx, cache, "Survey Response", SurveyResponseSubmissionID(p, surveyType), "submission_id", "wv_survey_responses")
	if err != nil {
		return nil, err
	}

	record := classifyAnswer(answer)
	record.SubmissionID = submissionID
	record.SurveyResponseID = surveyResponseID
	record.SectionName = StringPtr(sectionName)
	record.QuestionName = questionName
	return record, nil
}

// classifyAnswer infers the typed value column for a survey answer. Strings
// are probed as boolean ("TRUE"/"FALSE"/"1"/"0"), then date, then number,
// falling back to text; native JSON booleans and numbers keep their type.
func classifyAnswer(answer any) *models.WVSurveyQuestionResponse {
	record := &models.WVSurveyQuestionResponse{FieldType: "text"}

	switch v := answer.(type) {
	case string:
		val := strings.TrimSpace(v)
		switch strings.ToUpper(val) {
		case "TRUE", "1":
			record.FieldType = "boolean"
			record.ValueBoolean = BoolPtr(true)
			return record
		case "FALSE", "0":
			record.FieldType = "boolean"
			record.ValueBoolean = BoolPtr(false)
			return record
		}
		if d, err := time.Parse("2006-01-02", val); err == nil {
			record.FieldType = "date"
			record.ValueDate = &d
			return record
		}
		if n, err := strconv.ParseFloat(val, 64); err == nil {
			record.FieldType = "number"
			record.ValueNumber = &n
			return record
		}
		record.ValueText = StringPtr(val)
	case bool:
		record.FieldType = "boolean"
		record.ValueBoolean = BoolPtr(v)
	case float64:
		record.FieldType = "number"
		record.ValueNumber = &v
	case nil:
	default:
		record.ValueText = StringPtr(Stringify(answer))
	}
	return record
}
