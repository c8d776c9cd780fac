package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechnoServe/pima-integration/internal/resolver"
)

func bestPracticeTransformer() *FVBestPracticeAnswerTransformer {
	logger := testLogger()
	return NewFVBestPracticeAnswerTransformer(resolver.NewResolver(nil, logger), logger)
}

func TestMapAnswer_VisitTypeFiltered(t *testing.T) {
	tr := bestPracticeTransformer()
	p := Payload{
		"id":   "sub-201",
		"form": map[string]any{"survey_type": "Farm Visit Full - ET"},
	}

	record := tr.mapAnswer(p, BestPracticeAnswer{
		Section:  "nutrition",
		Question: "type_chemical_applied_on_coffee_last_12_months",
		Answer:   "2",
	})

	require.NotNil(t, record.AnswerText)
	assert.Equal(t, "Manure", *record.AnswerText)
	assert.Nil(t, record.AnswerBoolean)
	assert.Nil(t, record.AnswerNumeric)
}

func TestMapAnswer_YearStumpingShiftsWithProgramYear(t *testing.T) {
	tr := bestPracticeTransformer()
	p := Payload{
		"id":     "sub-202",
		"app_id": "521097abbcfd4fa79668cb6ca3dca28a",
		"form":   map[string]any{"survey_type": "Farm Visit Full - KE"},
	}

	record := tr.mapAnswer(p, BestPracticeAnswer{
		Section:  "stumping",
		Question: "year_stumping",
		Answer:   "0",
	})

	require.NotNil(t, record.AnswerText)
	assert.Equal(t, "January to March 2025 at the start of the first year of training", *record.AnswerText)
}

func TestMapAnswer_YesNoCodedAnswerBecomesBoolean(t *testing.T) {
	tr := bestPracticeTransformer()
	p := Payload{"id": "sub-203", "form": map[string]any{}}

	record := tr.mapAnswer(p, BestPracticeAnswer{
		Section:  "pesticide_use",
		Question: "used_pesticides",
		Answer:   "1",
	})

	require.NotNil(t, record.AnswerBoolean)
	assert.True(t, *record.AnswerBoolean)
	assert.Nil(t, record.AnswerText)
}

func TestMapAnswer_OtherExpandsFreeText(t *testing.T) {
	tr := bestPracticeTransformer()
	p := Payload{"id": "sub-204", "form": map[string]any{}}

	record := tr.mapAnswer(p, BestPracticeAnswer{
		Section:  "weeding",
		Question: "which_product_have_you_used",
		Answer:   "3",
		Other:    "Touchdown",
	})

	require.NotNil(t, record.AnswerText)
	assert.Equal(t, "Other: Touchdown", *record.AnswerText)
}

func TestMapAnswer_YNSuffixQuestion(t *testing.T) {
	tr := bestPracticeTransformer()
	p := Payload{"id": "sub-205", "form": map[string]any{}}

	record := tr.mapAnswer(p, BestPracticeAnswer{
		Section:  "other",
		Question: "attended_training",
		Answer:   "0",
	})

	require.NotNil(t, record.AnswerBoolean)
	assert.False(t, *record.AnswerBoolean)
}

func TestMapAnswer_UnmappedNumericAndText(t *testing.T) {
	tr := bestPracticeTransformer()
	p := Payload{"id": "sub-206", "form": map[string]any{}}

	numeric := tr.mapAnswer(p, BestPracticeAnswer{
		Section:  "main_stems",
		Question: "number_of_main_stems",
		Answer:   "3",
	})
	require.NotNil(t, numeric.AnswerNumeric)
	assert.InDelta(t, 3.0, *numeric.AnswerNumeric, 1e-9)

	text := tr.mapAnswer(p, BestPracticeAnswer{
		Section:  "other",
		Question: "farm_visit_notes",
		Answer:   "tree rows look healthy",
	})
	require.NotNil(t, text.AnswerText)
	assert.Equal(t, "tree rows look healthy", *text.AnswerText)
}

func TestMapAnswer_PhotoQuestionCarriesNoAnswer(t *testing.T) {
	tr := bestPracticeTransformer()
	p := Payload{"id": "sub-207", "form": map[string]any{}}

	record := tr.mapAnswer(p, BestPracticeAnswer{
		Section:  "compost",
		Question: "compost_photo",
		Answer:   "1598482183276.jpg",
	})

	assert.Nil(t, record.AnswerText)
	assert.Nil(t, record.AnswerNumeric)
	assert.Nil(t, record.AnswerBoolean)
}

func TestMapAnswer_SubmissionIDs(t *testing.T) {
	tr := bestPracticeTransformer()
	p := Payload{"id": "sub-208", "form": map[string]any{}}

	single := tr.mapAnswer(p, BestPracticeAnswer{Section: "weeding", Question: "used_herbicides", Answer: "yes"})
	assert.Equal(t, "FVBPA-sub-208-used_herbicides", single.SubmissionID)

	multi := tr.mapAnswer(p, BestPracticeAnswer{
		Section:     "erosion_control",
		Question:    "methods_of_erosion_control",
		Answer:      "2",
		Multiselect: true,
	})
	assert.Equal(t, "FVBPA-sub-208-methods_of_erosion_control-2", multi.SubmissionID)
}

func TestBestPracticeSubmissionID(t *testing.T) {
	p := Payload{"id": "sub-209"}
	assert.Equal(t, "FVBP-sub-209-weeding", BestPracticeSubmissionID(p, "weeding"))
}
