package orchestrators

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/config"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/internal/store"
	"github.com/TechnoServe/pima-integration/internal/transform"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
	"github.com/TechnoServe/pima-integration/pkg/database"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

// Orchestrator runs the full processing chain for one form submission.
type Orchestrator interface {
	Process(ctx context.Context, cache *resolver.Cache, p transform.Payload, actorID *uuid.UUID) error
}

// Registry routes job types to their orchestrators.
type Registry struct {
	orchestrators map[string]Orchestrator
	logger        ectologger.Logger
}

// NewRegistry wires the full orchestration graph over one database handle.
func NewRegistry(cfg *config.Config, db database.DB, logger ectologger.Logger) *Registry {
	r := resolver.NewResolver(db, logger)
	engine := store.NewEngine(db, logger)
	farmers := store.NewFarmerStore(db, logger)
	images := &imageWriter{engine: engine, logger: logger}

	light := NewAttendanceLightOrchestrator(engine, transform.NewTrainingSessionTransformer(r, logger), logger)
	full := NewAttendanceFullOrchestrator(engine, light, transform.NewAttendanceTransformer(r, logger), logger)
	registration := NewParticipantRegistrationOrchestrator(
		engine, farmers, full,
		transform.NewHouseholdTransformer(r, logger),
		transform.NewFarmerTransformer(r, logger),
		logger,
	)
	farmVisit := NewFarmVisitOrchestrator(cfg, engine, images, registration,
		transform.NewFarmVisitTransformer(r, logger),
		transform.NewFVBestPracticeTransformer(r, logger),
		transform.NewFVBestPracticeAnswerTransformer(r, logger),
		transform.NewFarmTransformer(r, logger),
		transform.NewCoffeeVarietyTransformer(r, logger),
		transform.NewCheckTransformer(r, logger),
		logger,
	)
	observation := NewObservationOrchestrator(cfg, engine, images,
		transform.NewObservationTransformer(r, logger),
		transform.NewObservationResultTransformer(r, logger),
		transform.NewCheckTransformer(r, logger),
		logger,
	)
	wetmillRegistration := NewWetmillRegistrationOrchestrator(engine, transform.NewWetmillTransformer(r, logger), logger)
	wetmillVisit := NewWetmillVisitOrchestrator(cfg, engine,
		transform.NewWetmillVisitTransformer(r, logger),
		transform.NewWVSurveyResponseTransformer(r, logger),
		transform.NewWVSurveyQuestionResponseTransformer(r, logger),
		logger,
	)

	return &Registry{
		logger: logger,
		orchestrators: map[string]Orchestrator{
			"Farmer Registration":                registration,
			"Edit Farmer Details":                registration,
			"Attendance Full - Current Module":   full,
			"Field Day Attendance Full":          full,
			"Field Day Farmer Registration":      full,
			"Attendance Light - Current Module":  light,
			"Followup":                           light,
			"Training Observation":               observation,
			"Demo Plot Observation":              observation,
			"Farm Visit Full":                    farmVisit,
			"Farm Visit - AA":                    farmVisit,
			"Wet Mill Registration Form":         wetmillRegistration,
			"Wet Mill Visit":                     wetmillVisit,
		},
	}
}

// Process parses the raw payload and runs the orchestrator registered for
// jobType. An unregistered type is an UnhandledJobType error.
func (reg *Registry) Process(ctx context.Context, cache *resolver.Cache, jobType string, raw json.RawMessage, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "orchestrators.Registry.Process")
	defer span.End()

	o, ok := reg.orchestrators[jobType]
	if !ok {
		return apperrors.NewUnhandledJobType(jobType)
	}

	p, err := transform.ParsePayload(raw)
	if err != nil {
		return apperrors.NewMalformedPayloadf("%v", err)
	}
	return o.Process(ctx, cache, p, actorID)
}

// JobTypes returns the registered job types.
func (reg *Registry) JobTypes() []string {
	types := make([]string, 0, len(reg.orchestrators))
	for t := range reg.orchestrators {
		types = append(types, t)
	}
	return types
}

// imageWriter persists one form attachment linked to an ingested record. A
// blank URL is a no-op; most photos are optional.
type imageWriter struct {
	engine *store.Engine
	logger ectologger.Logger
}

func (w *imageWriter) write(ctx context.Context, p transform.Payload, imageURL, table string, refID uuid.UUID, description string, actorID *uuid.UUID) error {
	if imageURL == "" {
		return nil
	}
	img := transform.MapImage(p, imageURL, transform.NewImageReference(table, refID), description)
	if _, _, err := w.engine.Upsert(ctx, store.ImageSpec, img, actorID); err != nil {
		return err
	}
	return nil
}
