package orchestrators

import (
	"strings"

	"context"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/config"
	"github.com/TechnoServe/pima-integration/internal/mapping"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/internal/store"
	"github.com/TechnoServe/pima-integration/internal/transform"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

// FarmVisitOrchestrator ingests farm visit forms: the visit row, its photos,
// the best practice sections and answers, the field inventory plots with
// their varieties, and the per farmer attendance checks.
type FarmVisitOrchestrator struct {
	cfg          *config.Config
	engine       *store.Engine
	images       *imageWriter
	registration *ParticipantRegistrationOrchestrator
	visits       *transform.FarmVisitTransformer
	bps          *transform.FVBestPracticeTransformer
	bpAnswers    *transform.FVBestPracticeAnswerTransformer
	farms        *transform.FarmTransformer
	varieties    *transform.CoffeeVarietyTransformer
	checks       *transform.CheckTransformer
	logger       ectologger.Logger
}

func NewFarmVisitOrchestrator(
	cfg *config.Config,
	engine *store.Engine,
	images *imageWriter,
	registration *ParticipantRegistrationOrchestrator,
	visits *transform.FarmVisitTransformer,
	bps *transform.FVBestPracticeTransformer,
	bpAnswers *transform.FVBestPracticeAnswerTransformer,
	farms *transform.FarmTransformer,
	varieties *transform.CoffeeVarietyTransformer,
	checks *transform.CheckTransformer,
	logger ectologger.Logger,
) *FarmVisitOrchestrator {
	return &FarmVisitOrchestrator{
		cfg:          cfg,
		engine:       engine,
		images:       images,
		registration: registration,
		visits:       visits,
		bps:          bps,
		bpAnswers:    bpAnswers,
		farms:        farms,
		varieties:    varieties,
		checks:       checks,
		logger:       logger,
	}
}

func (o *FarmVisitOrchestrator) Process(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.FarmVisitOrchestrator.Process")
	defer span.End()

	form := p.Form()

	// Puerto Rico visits can register a brand new farmer inline; that
	// registration must land before the visit resolves against it.
	if form.String("survey_type") == "Farm Visit Full - PR" && form.String("new_farmer") == "1" {
		if err := o.registration.Process(ctx, cache, p, actorID); err != nil {
			return err
		}
	} else {
		o.logger.WithContext(ctx).Info("Skipping participant registration")
	}

	return o.processFarmVisit(ctx, cache, p, actorID)
}

func (o *FarmVisitOrchestrator) processFarmVisit(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error {
	form := p.Form()

	visit, err := o.visits.Transform(ctx, cache, p)
	if err != nil {
		return err
	}
	visitID, _, err := o.engine.Upsert(ctx, store.FarmVisitSpec, visit, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"farm_visit_id": visitID,
	}).Info("Upserted farm visit")

	photoURL := transform.AttachmentURLFor(p, form.String("farm_visit_photo"))
	if err := o.images.write(ctx, p, photoURL, "farm_visits", visitID, "Farm Visit Photo", actorID); err != nil {
		return err
	}

	// Best practice sections are the object valued children of the best
	// practice block.
	for section := range form.Map("best_practice_questions") {
		block := form.Map("best_practice_questions").Map(section)
		if block == nil {
			continue
		}
		if err := o.processBestPractice(ctx, cache, p, section, block, actorID); err != nil {
			return err
		}
	}

	// Loose top level questions fold into one catch-all section. Signature
	// attachments in the ignore list become visit images instead.
	loose := transform.Map{}
	for question, answer := range form {
		if !mapping.FVQuestionsIgnored[question] {
			loose[question] = answer
			continue
		}
		if strings.Contains(question, "signature") {
			url := transform.AttachmentURLFor(p, form.String(question))
			if err := o.images.write(ctx, p, url, "farm_visits", visitID, question, actorID); err != nil {
				return err
			}
		}
	}
	if len(loose) > 0 {
		if err := o.processBestPractice(ctx, cache, p, "other", loose, actorID); err != nil {
			return err
		}
	}

	// Field inventory plots arrive as a list, or a bare object for a single
	// plot survey.
	fis := form.Map("field_inventory_survey")
	if plots := fis.List("general_plot_information"); plots != nil {
		for _, raw := range plots {
			plot, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if err := o.processFISFarm(ctx, cache, p, transform.Map(plot), actorID); err != nil {
				return err
			}
		}
	} else if plot := fis.Map("general_plot_information"); plot != nil {
		if err := o.processFISFarm(ctx, cache, p, plot, actorID); err != nil {
			return err
		}
	}

	if p.FormName() == "Farm Visit - AA" && o.checksEnabled(p) {
		for _, farmer := range []string{"farmer_1_questions", "farmer_2_questions"} {
			block := form.Map(farmer)
			if farmer == "farmer_2_questions" && block == nil {
				continue
			}
			if err := o.processCheck(ctx, cache, p, block, actorID); err != nil {
				return err
			}
		}
	}

	return nil
}

// checksEnabled gates the farmer check sections on the app builds that carry
// them.
func (o *FarmVisitOrchestrator) checksEnabled(p transform.Payload) bool {
	appID := p.AppID()
	build := p.BuildVersion()
	return (appID == o.cfg.FarmVisitChecksAppID1 && build >= o.cfg.FarmVisitChecksMinBuild1) ||
		(appID == o.cfg.FarmVisitChecksAppID2 && build >= o.cfg.FarmVisitChecksMinBuild2)
}

func (o *FarmVisitOrchestrator) processBestPractice(ctx context.Context, cache *resolver.Cache, p transform.Payload, section string, block transform.Map, actorID *uuid.UUID) error {
	bp, err := o.bps.Transform(ctx, cache, p, section)
	if err != nil {
		return err
	}
	bpID, _, err := o.engine.Upsert(ctx, store.FVBestPracticeSpec, bp, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"fv_best_practice_id": bpID,
		"section":             section,
	}).Info("Upserted farm visit best practice")

	for question := range block {
		answer := block.String(question)
		lower := strings.ToLower(question)
		if strings.Contains(lower, "photo") || strings.Contains(lower, "image") {
			url := transform.AttachmentURLFor(p, answer)
			if strings.HasSuffix(url, ".jpg") || strings.HasSuffix(url, ".png") || strings.HasSuffix(url, ".heic") {
				if err := o.images.write(ctx, p, url, "fv_best_practices", bpID, question, actorID); err != nil {
					return err
				}
			}
			continue
		}

		other := block.String(question + "_other")
		if mapping.FVBPMultiselect[question] {
			for _, token := range transform.SplitMultiselect(answer) {
				if err := o.processBestPracticeAnswer(ctx, cache, p, transform.BestPracticeAnswer{
					Section:     section,
					Question:    question,
					Answer:      token,
					Multiselect: true,
					Other:       other,
				}, actorID); err != nil {
					return err
				}
			}
			continue
		}
		if err := o.processBestPracticeAnswer(ctx, cache, p, transform.BestPracticeAnswer{
			Section:  section,
			Question: question,
			Answer:   answer,
			Other:    other,
		}, actorID); err != nil {
			return err
		}
	}
	return nil
}

func (o *FarmVisitOrchestrator) processBestPracticeAnswer(ctx context.Context, cache *resolver.Cache, p transform.Payload, a transform.BestPracticeAnswer, actorID *uuid.UUID) error {
	record, err := o.bpAnswers.Transform(ctx, cache, p, a)
	if err != nil {
		return err
	}
	id, _, err := o.engine.Upsert(ctx, store.FVBestPracticeAnswerSpec, record, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"fv_best_practice_answer_id": id,
		"question":                   a.Question,
	}).Info("Upserted farm visit best practice answer")
	return nil
}

func (o *FarmVisitOrchestrator) processFISFarm(ctx context.Context, cache *resolver.Cache, p transform.Payload, plot transform.Map, actorID *uuid.UUID) error {
	farm, err := o.farms.Transform(ctx, cache, p, plot)
	if err != nil {
		return err
	}
	farmID, _, err := o.engine.Upsert(ctx, store.FarmSpec, farm, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"farm_id": farmID,
	}).Info("Upserted field inventory farm")

	for _, code := range transform.SplitMultiselect(plot.String("varieties")) {
		variety, err := o.varieties.Transform(ctx, cache,
			farm.SubmissionID, code,
			plot.String("other_variety"),
			transform.ParseIntPtr(plot.String("variety_"+code)))
		if err != nil {
			return err
		}
		id, _, err := o.engine.Upsert(ctx, store.CoffeeVarietySpec, variety, actorID)
		if err != nil {
			return err
		}
		o.logger.WithContext(ctx).WithFields(map[string]any{
			"coffee_variety_id": id,
			"variety":           code,
		}).Info("Upserted coffee variety")
	}

	plotPhotoURL := transform.AttachmentURLFor(p, plot.String("plot_photo"))
	return o.images.write(ctx, p, plotPhotoURL, "farms", farmID, "Farm Photo", actorID)
}

func (o *FarmVisitOrchestrator) processCheck(ctx context.Context, cache *resolver.Cache, p transform.Payload, block transform.Map, actorID *uuid.UUID) error {
	check, err := o.checks.Transform(ctx, cache, p, block, transform.CheckTypeFarmVisit)
	if err != nil {
		return err
	}
	id, _, err := o.engine.Upsert(ctx, store.CheckSpec, check, actorID)
	if err != nil {
		return err
	}
	o.logger.WithContext(ctx).WithFields(map[string]any{
		"check_id": id,
	}).Info("Upserted farm visit check")
	return nil
}
