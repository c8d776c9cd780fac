package orchestrators

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/config"
	"github.com/TechnoServe/pima-integration/internal/mapping"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/internal/store"
	"github.com/TechnoServe/pima-integration/internal/transform"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

// WetmillRegistrationOrchestrator ingests wet mill registration forms.
type WetmillRegistrationOrchestrator struct {
	engine   *store.Engine
	wetmills *transform.WetmillTransformer
	logger   ectologger.Logger
}

func NewWetmillRegistrationOrchestrator(engine *store.Engine, wetmills *transform.WetmillTransformer, logger ectologger.Logger) *WetmillRegistrationOrchestrator {
	return &WetmillRegistrationOrchestrator{
		engine:   engine,
		wetmills: wetmills,
		logger:   logger,
	}
}

func (o *WetmillRegistrationOrchestrator) Process(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.WetmillRegistrationOrchestrator.Process")
	defer span.End()

	wetmill, err := o.wetmills.Transform(ctx, cache, p)
	if err != nil {
		return err
	}
	id, _, err := o.engine.Upsert(ctx, store.WetmillSpec, wetmill, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"wetmill_id": id,
	}).Info("Upserted wetmill")
	return nil
}

// WetmillVisitOrchestrator ingests wet mill visit forms: the visit row, one
// survey response per recognized survey block, and the exploded per question
// responses.
type WetmillVisitOrchestrator struct {
	cfg       *config.Config
	engine    *store.Engine
	visits    *transform.WetmillVisitTransformer
	responses *transform.WVSurveyResponseTransformer
	questions *transform.WVSurveyQuestionResponseTransformer
	logger    ectologger.Logger
}

func NewWetmillVisitOrchestrator(
	cfg *config.Config,
	engine *store.Engine,
	visits *transform.WetmillVisitTransformer,
	responses *transform.WVSurveyResponseTransformer,
	questions *transform.WVSurveyQuestionResponseTransformer,
	logger ectologger.Logger,
) *WetmillVisitOrchestrator {
	return &WetmillVisitOrchestrator{
		cfg:       cfg,
		engine:    engine,
		visits:    visits,
		responses: responses,
		questions: questions,
		logger:    logger,
	}
}

func (o *WetmillVisitOrchestrator) Process(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.WetmillVisitOrchestrator.Process")
	defer span.End()

	form := p.Form()

	visit, err := o.visits.Transform(ctx, cache, p)
	if err != nil {
		return err
	}
	visitID, _, err := o.engine.Upsert(ctx, store.WetmillVisitSpec, visit, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"wetmill_visit_id": visitID,
	}).Info("Upserted wetmill visit")

	urlString := fmt.Sprintf("%s/a/%s/api/form/attachment/%s",
		o.cfg.CommCareBaseURL, p.Domain(), p.InstanceID())

	for name, raw := range form.Map("surveys") {
		if !mapping.AllowedSurveys[name] {
			o.logger.WithContext(ctx).WithFields(map[string]any{
				"survey": name,
			}).Info("Skipping unrecognized survey")
			continue
		}
		content, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if err := o.processSurvey(ctx, cache, p, name, transform.Map(content), urlString, form, actorID); err != nil {
			return err
		}
	}
	return nil
}

func (o *WetmillVisitOrchestrator) processSurvey(ctx context.Context, cache *resolver.Cache, p transform.Payload, name string, content transform.Map, urlString string, form transform.Map, actorID *uuid.UUID) error {
	transformed := transform.SurveyTransformations[name](content, urlString, form)

	response, err := o.responses.Transform(ctx, cache, p, name, transformed)
	if err != nil {
		return err
	}
	responseID, _, err := o.engine.Upsert(ctx, store.WVSurveyResponseSpec, response, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"wv_survey_response_id": responseID,
		"survey":                name,
	}).Info("Upserted wetmill survey response")

	// Explode the transformed survey into one row per question. Sections can
	// be lists of repeats, objects of questions, or bare scalars.
	for section, value := range transformed {
		switch v := value.(type) {
		case []any:
			for i := range v {
				submissionID := fmt.Sprintf("SQR-%s-%s-%s-%d", p.SubmissionID(), name, section, i+1)
				if err := o.processQuestion(ctx, cache, p, name, section, section, v[i], submissionID, actorID); err != nil {
					return err
				}
			}
		case map[string]any:
			for question, answer := range v {
				if list, ok := answer.([]any); ok {
					for i := range list {
						submissionID := fmt.Sprintf("SQR-%s-%s-%s-%s-%d", p.SubmissionID(), name, section, question, i+1)
						if err := o.processQuestion(ctx, cache, p, name, section, question, list[i], submissionID, actorID); err != nil {
							return err
						}
					}
					continue
				}
				if strings.HasSuffix(question, "_label") {
					continue
				}
				submissionID := fmt.Sprintf("SQR-%s-%s-%s-%s", p.SubmissionID(), name, section, question)
				if err := o.processQuestion(ctx, cache, p, name, section, question, answer, submissionID, actorID); err != nil {
					return err
				}
			}
		default:
			if strings.HasSuffix(section, "_label") || strings.HasPrefix(section, "survey_") {
				continue
			}
			submissionID := fmt.Sprintf("SQR-%s-%s-%s", p.SubmissionID(), name, section)
			if err := o.processQuestion(ctx, cache, p, name, "", section, value, submissionID, actorID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *WetmillVisitOrchestrator) processQuestion(ctx context.Context, cache *resolver.Cache, p transform.Payload, surveyType, sectionName, questionName string, answer any, submissionID string, actorID *uuid.UUID) error {
	question, err := o.questions.Transform(ctx, cache, p, surveyType, sectionName, questionName, answer, submissionID)
	if err != nil {
		return err
	}
	if _, _, err := o.engine.Upsert(ctx, store.WVSurveyQuestionResponseSpec, question, actorID); err != nil {
		return err
	}
	return nil
}
