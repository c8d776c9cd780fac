package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformInfrastructure_RepairSubtraction(t *testing.T) {
	survey := Map{
		"are_the_following_in_good_state_of_repair":               "1 4 6",
		"which_of_the_following_needs_repair_check_all_that_apply": "4",
	}

	out := TransformInfrastructure(survey, "https://host/attachments", Map{})

	// Anything flagged for repair drops out of the good state list.
	good, ok := out["are_the_following_in_good_state_of_repair"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Constant, clean source of water", "Fermentation tanks"}, good)

	repairs, ok := out["which_of_the_following_needs_repair"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Floatation tank"}, repairs)
}

func TestTransformInfrastructure_CodeMaps(t *testing.T) {
	survey := Map{
		"main_water_source":    "6",
		"pulping_machine_brand": "2",
		"pulping_machine_type":  "1",
		"network_coverage":      "3",
	}

	out := TransformInfrastructure(survey, "https://host/attachments", Map{})
	assert.Equal(t, "Spring", out["main_water_source"])
	assert.Equal(t, "Mckinnon", out["pulping_machine_brand"])
	assert.Equal(t, "Disc", out["pulping_machine_type"])
	assert.Equal(t, "4G", out["network_coverage"])
}

func TestTransformCherryWeeklyPrice(t *testing.T) {
	survey := Map{
		"cherry_week":      "2025-03-17",
		"cherry_price":     "55",
		"general_feedback": "prices rising",
	}

	out := TransformCherryWeeklyPrice(survey, "https://host/attachments", Map{})
	assert.Equal(t, "2025-03-17", out["date"])
	assert.Equal(t, "12", out["cherry_week"])
	assert.Equal(t, "55", out["cherry_price"])

	t.Run("should null the week when the date is unparseable", func(t *testing.T) {
		out := TransformCherryWeeklyPrice(Map{"cherry_week": "last week"}, "", Map{})
		assert.Nil(t, out["cherry_week"])
	})
}

func TestTransformCPQI(t *testing.T) {
	survey := Map{
		"pulping": map[string]any{
			"machine_calibration": "1",
			"machine_cleanliness": "0",
		},
	}

	out := TransformCPQI(survey, "", Map{})
	pulping := Map(out["pulping"].(map[string]any))
	assert.Equal(t, "yes", pulping.String("machine_calibration"))
	assert.Equal(t, "no", pulping.String("machine_cleanliness"))
}

func TestTransformRoutineVisit(t *testing.T) {
	survey := Map{
		"purpose_of_visit":    "2",
		"summary_of_activity": "walked the drying tables",
		"picture_of_activity": "tables.jpg",
	}

	out := TransformRoutineVisit(survey, "https://host/attachments", Map{})
	assert.Equal(t, "Process quality check", out["purpose_of_visit"])
	assert.Equal(t, "https://host/attachments/tables.jpg", out["picture_of_activity"])

	t.Run("should expand the free text purpose", func(t *testing.T) {
		out := TransformRoutineVisit(Map{
			"purpose_of_visit":             "99",
			"specify_the_purpose_of_visit": "price negotiation",
		}, "", Map{})
		assert.Equal(t, "Other: price negotiation", out["purpose_of_visit"])
	})

	t.Run("should null a missing photo", func(t *testing.T) {
		out := TransformRoutineVisit(Map{"purpose_of_visit": "1"}, "https://host/attachments", Map{})
		assert.Nil(t, out["picture_of_activity"])
	})
}

func TestTransformWetmillTraining_TopicVersions(t *testing.T) {
	survey := Map{
		"training_topic":          "1",
		"training_status":         "2",
		"training_topic_category": "a",
	}

	t.Run("should use the current topic list by default", func(t *testing.T) {
		out := TransformWetmillTraining(copyMap(survey), "", Map{"survey_type": "Wet Mill Visit - KE"})
		assert.Equal(t, "Post Harvest Coffee Quality and Processing", out["training_topic"])
		assert.Equal(t, "Refresher", out["training_status"])
		assert.False(t, out.Has("training_topic_category"))
	})

	t.Run("should use the original topic list for old Ethiopia builds", func(t *testing.T) {
		form := Map{"survey_type": "Wet Mill Visit - ET", "@version": "54"}
		out := TransformWetmillTraining(copyMap(survey), "", form)
		assert.Equal(t, "Environmental Responsibility", out["training_topic"])
	})
}

func TestTransformEmployees(t *testing.T) {
	survey := Map{
		"accountant":            "1",
		"machine_operator":      "0",
		"full_time_employees":   "14",
		"manager_name":          "A. Mwangi",
	}

	out := TransformEmployees(survey, "", Map{})
	assert.Equal(t, "yes", out["accountant"])
	assert.Equal(t, "no", out["machine_operator"])
	assert.Equal(t, float64(14), out["full_time_employees"])
	assert.Equal(t, "A. Mwangi", out["manager_name"])
}

func TestTransformWaterAndEnergyUse(t *testing.T) {
	survey := Map{
		"water_usage": map[string]any{
			"what_method_is_used_to_measure_water_use": "1",
			"are_there_any_efforts_going_on_to_reduce_water_consumption": "2 3",
			"is_there_a_record_book": "1",
			"photo_of_water_meter":   "meter.jpg",
		},
		"energy_use": map[string]any{
			"which_energy_source_is_used_at_the_wet_mill":   "1 3",
			"is_there_an_energy_record_book_to_track_energy": "0",
		},
	}

	out := TransformWaterAndEnergyUse(survey, "https://host/attachments", Map{})

	water := Map(out["water_usage"].(map[string]any))
	assert.Equal(t, "Water meter", water.String("what_method_is_used_to_measure_water_use"))
	assert.Equal(t, []any{"Recirculation pump", "Eco pulper"}, water["are_there_any_efforts_going_on_to_reduce_water_consumption"])
	assert.Equal(t, "yes", water.String("is_there_a_record_book"))
	assert.Equal(t, "https://host/attachments/meter.jpg", water["photo_of_water_meter"])
	assert.Nil(t, water["photo_fo_the_office_records"])

	energy := Map(out["energy_use"].(map[string]any))
	assert.Equal(t, []any{"Mains electricity", "Solar panels"}, energy["which_energy_source_is_used_at_the_wet_mill"])
	assert.Equal(t, "no", energy.String("is_there_an_energy_record_book_to_track_energy"))
}

func TestTransformGenderEquitableBusinessPractices(t *testing.T) {
	survey := Map{
		"assessment_form": map[string]any{
			"leadership": map[string]any{
				"women_hold_leadership_positions": "y",
				"board_reviewed_gender_policy":    "n",
			},
		},
		"action_plan": map[string]any{
			"commitments": map[string]any{
				"delivers_meetings_and_training_in_ways_women_and_men_prefer": map[string]any{
					"meetings_scheduled_at_convenient_times": "y",
				},
			},
		},
		"general_feedback": "strong participation",
	}

	out := TransformGenderEquitableBusinessPractices(survey, "", Map{})

	assert.Equal(t, "Yes", out["women_hold_leadership_positions"])
	assert.Equal(t, "No", out["board_reviewed_gender_policy"])
	assert.Equal(t, "strong participation", out["general_feedback"])

	section, ok := out["commitments-delivers_meetings_and_training_in_ways_women_and_men_prefer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Yes, most of the time", section["meetings_scheduled_at_convenient_times"])
}
