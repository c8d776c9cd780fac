package transform

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/mapping"
	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

// FarmTransformer maps one field inventory plot captured during a farm visit.
type FarmTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewFarmTransformer(r *resolver.Resolver, logger ectologger.Logger) *FarmTransformer {
	return &FarmTransformer{
		resolver: r,
		logger:   logger,
	}
}

// Transform builds a farm record from one general_plot_information block.
func (t *FarmTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload, plot Map) (*models.Farm, error) {
	form := p.Form()

	farmVisitID, err := t.resolver.Resolve(ctx, cache, "Farm Visit", FarmVisitSubmissionID(p), "submission_id", "farm_visits")
	if err != nil {
		return nil, err
	}

	farm := t.mapFarm(p, plot)
	farm.FarmVisitID = farmVisitID

	// The household reference arrives as a PIMA id; older rows may predate
	// the id, so an unresolved household is tolerated.
	householdID, err := t.resolver.ResolveColumn(ctx, cache, "Household", form.String("household_pima_id"), "sf_id", "households", "id")
	if err != nil {
		if !apperrors.IsKind(err, apperrors.KindNotFound) && !apperrors.IsKind(err, apperrors.KindMalformedPayload) {
			return nil, err
		}
		t.logger.WithContext(ctx).WithFields(map[string]any{
			"household_pima_id": form.String("household_pima_id"),
		}).Info("Farm household not resolved")
	} else {
		farm.HouseholdID = &householdID
	}

	return farm, nil
}

func (t *FarmTransformer) mapFarm(p Payload, plot Map) *models.Farm {
	form := p.Form()
	index := plot.String("current_index")
	gps := ParseGPS(plot.String("final_gps"))

	bestPracticePlot := plot.String("best_practice_plot")
	mainField := bestPracticePlot == "1" || !plot.Has("best_practice_plot")

	notes := plot.Map("important_notes_planting_dates")
	outOfSeason := notes.String("planting_period_note_out_of_season") == "yes"
	onVisitDate := notes.String("planting_period_note_same_date_as_visit") == "yes"

	trees := 0
	if n := ParseIntPtr(plot.String("total_coffee")); n != nil {
		trees = *n
	}

	return &models.Farm{
		SubmissionID:               fmt.Sprintf("F-0%s-%s", index, form.String("household_pima_id")),
		FarmName:                   "0" + index,
		TNSID:                      fmt.Sprintf("F-0%s-%s", index, form.String("household_tns_id")),
		FarmSizeCoffeeTrees:        &trees,
		FarmSizeLandMeasurements:   ParseFloatPtr(plot.String("farm_size_ha")),
		MainCoffeeField:            BoolPtr(mainField),
		PlantingMonthAndYear:       ParseDate(plot.String("date_planted")),
		PlantedOutOfSeason:         BoolPtr(outOfSeason),
		PlantedOutOfSeasonComments: StringPtr(notes.String("planting_period_comment_out_of_season")),
		PlantedOnVisitDate:         BoolPtr(onVisitDate),
		LocationGPSLatitude:        gps.Latitude,
		LocationGPSLongitude:       gps.Longitude,
		LocationGPSAltitude:        gps.Altitude,
	}
}

// CoffeeVarietyTransformer maps one variety count on a field inventory plot.
type CoffeeVarietyTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewCoffeeVarietyTransformer(r *resolver.Resolver, logger ectologger.Logger) *CoffeeVarietyTransformer {
	return &CoffeeVarietyTransformer{
		resolver: r,
		logger:   logger,
	}
}

// Variety code map. Code 9 carries a free text variety name.
var coffeeVarietyNames = map[string]string{
	"1": "Costa Rica 95",
	"2": "SL28 or 34",
	"3": "K7",
	"4": "Catimor 129",
	"5": "Catuai",
	"6": "Yellow Catuai",
	"7": "F6",
	"8": "Caturra",
}

func (t *CoffeeVarietyTransformer) Transform(ctx context.Context, cache *resolver.Cache, farmSubmissionID, varietyCode, otherVariety string, numberOfTrees *int) (*models.CoffeeVariety, error) {
	farmID, err := t.resolver.Resolve(ctx, cache, "Farm", farmSubmissionID, "submission_id", "farms")
	if err != nil {
		return nil, err
	}

	name := mapping.MapCode(varietyCode, coffeeVarietyNames, "")
	if varietyCode == "9" {
		name = otherVariety
	}

	trees := 0
	if numberOfTrees != nil {
		trees = *numberOfTrees
	}

	return &models.CoffeeVariety{
		SubmissionID:  fmt.Sprintf("CV-0%s-%s", varietyCode, farmSubmissionID),
		FarmID:        farmID,
		VarietyName:   name,
		NumberOfTrees: trees,
	}, nil
}
