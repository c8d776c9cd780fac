package orchestrators

import (
	"context"
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

// ObservationOrchestrator ingests training and demo plot observation forms:
// the observation row, its photo, the exploded observer and participant
// feedback results, the demo plot criteria, and the participant checks.
type ObservationOrchestrator struct {
	cfg     *config.Config
	engine  *store.Engine
	images  *imageWriter
	obs     *transform.ObservationTransformer
	results *transform.ObservationResultTransformer
	checks  *transform.CheckTransformer
	logger  ectologger.Logger
}

func NewObservationOrchestrator(
	cfg *config.Config,
	engine *store.Engine,
	images *imageWriter,
	obs *transform.ObservationTransformer,
	results *transform.ObservationResultTransformer,
	checks *transform.CheckTransformer,
	logger ectologger.Logger,
) *ObservationOrchestrator {
	return &ObservationOrchestrator{
		cfg:     cfg,
		engine:  engine,
		images:  images,
		obs:     obs,
		results: results,
		checks:  checks,
		logger:  logger,
	}
}

var participantBlocks = []string{"One", "Two", "Three"}

// participantMetaKeys are roster fields inside a participant feedback block
// that are not feedback answers.
var participantMetaKeys = map[string]bool{
	"participant_count":                  true,
	"Attendend_Previous_Training_Module": true,
	"participant_selected":               true,
	"participant_name":                   true,
}

func (o *ObservationOrchestrator) Process(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.ObservationOrchestrator.Process")
	defer span.End()

	form := p.Form()

	observation, err := o.obs.Transform(ctx, cache, p)
	if err != nil {
		return err
	}
	obsID, _, err := o.engine.Upsert(ctx, store.ObservationSpec, observation, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"observation_id": obsID,
	}).Info("Upserted observation")

	// Demo plot forms photograph the plot, training observations the
	// attendees.
	url := transform.AttachmentURLFor(p, form.String("Demo_Plot_Photo"))
	description := "Demo Plot Photo"
	if form.String("Demo_Plot_Photo") == "" {
		url = transform.AttachmentURLFor(p, form.String("Photo"))
		description = "Attendees Photo"
	}
	if err := o.images.write(ctx, p, url, "observations", obsID, description, actorID); err != nil {
		return err
	}

	if err := o.processObserverFeedback(ctx, cache, p, actorID); err != nil {
		return err
	}
	if err := o.processParticipantFeedback(ctx, cache, p, actorID); err != nil {
		return err
	}
	if o.checksEnabled(p) {
		if err := o.processChecks(ctx, cache, p, actorID); err != nil {
			return err
		}
	}
	return o.processDemoPlotCriteria(ctx, cache, p, actorID)
}

// checksEnabled gates the participant check sections on the app builds that
// carry them.
func (o *ObservationOrchestrator) checksEnabled(p transform.Payload) bool {
	appID := p.AppID()
	build := p.BuildVersion()
	return (appID == o.cfg.FarmVisitChecksAppID1 && build >= o.cfg.FarmVisitChecksMinBuild1) ||
		(appID == o.cfg.FarmVisitChecksAppID2 && build > o.cfg.ObservationChecksMinBuild2)
}

func (o *ObservationOrchestrator) processObserverFeedback(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	ratings := p.Form().Map("Ratings_and_Comments")
	for question, answer := range ratings {
		in := transform.ObservationResultInput{
			SubmissionID: p.SubmissionID() + "-" + question,
			Criterion:    "Observer Feedback",
			QuestionKey:  question,
			ResultText:   transform.StringPtr(transform.Stringify(answer)),
		}
		if _, err := o.processResult(ctx, cache, p, in, actorID); err != nil {
			return err
		}
	}
	return nil
}

func (o *ObservationOrchestrator) processParticipantFeedback(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	form := p.Form()
	for _, ordinal := range participantBlocks {
		block := form.Map("Participant_" + ordinal + "_Feedback")
		for subKey, answer := range block {
			if participantMetaKeys[subKey] {
				continue
			}
			question := "Participant_" + ordinal + "_Feedback_" + subKey
			in := transform.ObservationResultInput{
				SubmissionID: p.SubmissionID() + "-" + question,
				Criterion:    "Participant Feedback",
				QuestionKey:  question,
				ResultText:   transform.StringPtr(transform.Stringify(answer)),
			}
			if _, err := o.processResult(ctx, cache, p, in, actorID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *ObservationOrchestrator) processChecks(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	form := p.Form()
	for _, ordinal := range participantBlocks {
		block := form.Map("Participant_" + ordinal + "_Feedback")
		if len(block) == 0 {
			continue
		}
		check, err := o.checks.Transform(ctx, cache, p, block, transform.CheckTypeTrainingObservation)
		if err != nil {
			return err
		}
		id, _, err := o.engine.Upsert(ctx, store.CheckSpec, check, actorID)
		if err != nil {
			return err
		}
		o.logger.WithContext(ctx).WithFields(map[string]any{
			"check_id": id,
		}).Info("Upserted observation check")
	}
	return nil
}

// processDemoPlotCriteria explodes the best practice sections of a demo plot
// observation into one result per answer, with the section photo attached to
// each.
func (o *ObservationOrchestrator) processDemoPlotCriteria(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	sections := p.Form().Map("best_practice_questions")
	for _, criterion := range mapping.DPOCriteria {
		block := sections.Map(criterion.Section)
		if block == nil {
			continue
		}

		var photo string
		for key := range block {
			if strings.HasSuffix(key, "_Photo") || strings.HasSuffix(key, "_photo") {
				photo = block.String(key)
			}
		}

		for question, answer := range block {
			if strings.HasSuffix(question, "_Photo") || strings.HasSuffix(question, "_photo") {
				continue
			}

			if mapping.DPOMultiselect[question] {
				for _, token := range transform.SplitMultiselect(transform.Stringify(answer)) {
					in := transform.ObservationResultInput{
						SubmissionID: p.SubmissionID() + "-" + question + "-" + token,
						Criterion:    criterion.Criterion,
						QuestionKey:  question,
						ResultText:   transform.StringPtr(mapping.DPOAnswerText[question][token]),
						Photo:        photo,
					}
					if err := o.processCriterionResult(ctx, cache, p, in, criterion.Criterion, actorID); err != nil {
						return err
					}
				}
				continue
			}

			raw := transform.Stringify(answer)
			text := mapping.DPOAnswerText[question][raw]
			in := transform.ObservationResultInput{
				SubmissionID: p.SubmissionID() + "-" + question,
				Criterion:    criterion.Criterion,
				QuestionKey:  question,
				ResultText:   transform.StringPtr(text),
				Photo:        photo,
			}
			if text == "" {
				in.ResultNumeric = transform.ParseFloatPtr(raw)
			}
			if err := o.processCriterionResult(ctx, cache, p, in, criterion.Criterion, actorID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *ObservationOrchestrator) processCriterionResult(ctx context.Context, cache *resolver.Cache, p transform.Payload, in transform.ObservationResultInput, criterion string, actorID *uuid.UUID) error {
	resultID, err := o.processResult(ctx, cache, p, in, actorID)
	if err != nil {
		return err
	}
	if in.Photo == "" {
		return nil
	}
	url := transform.AttachmentURLFor(p, in.Photo)
	return o.images.write(ctx, p, url, "observation_results", resultID, criterion, actorID)
}

func (o *ObservationOrchestrator) processResult(ctx context.Context, cache *resolver.Cache, p transform.Payload, in transform.ObservationResultInput, actorID *uuid.UUID) (uuid.UUID, error) {
	result, err := o.results.Transform(ctx, cache, p, in)
	if err != nil {
		return uuid.Nil, err
	}
	id, _, err := o.engine.Upsert(ctx, store.ObservationResultSpec, result, actorID)
	if err != nil {
		return uuid.Nil, err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"observation_result_id": id,
		"question":              in.QuestionKey,
	}).Info("Upserted observation result")
	return id, nil
}
