package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechnoServe/pima-integration/internal/resolver"
)

func TestAttendedLastMonth(t *testing.T) {
	yes := attendedLastMonth("Yes")
	require.NotNil(t, yes)
	assert.True(t, *yes)

	no := attendedLastMonth("No")
	require.NotNil(t, no)
	assert.False(t, *no)

	t.Run("should count a month with no training as not attended", func(t *testing.T) {
		answer := attendedLastMonth("No_training_was_offered")
		require.NotNil(t, answer)
		assert.False(t, *answer)
	})

	assert.Nil(t, attendedLastMonth(""))
	assert.Nil(t, attendedLastMonth("---"))
}

func TestMapFarmVisitCheck(t *testing.T) {
	logger := testLogger()
	tr := NewCheckTransformer(resolver.NewResolver(nil, logger), logger)

	p := Payload{
		"id": "sub-101",
		"form": map[string]any{
			"date_of_visit": "2025-05-20",
		},
	}
	block := Map{
		"farmer_id":                           "case-farmer-9",
		"attended_training":                   "1",
		"number_of_trainings":                 "4",
		"Attendend_Previous_Training_Module": "Yes",
	}

	check := tr.mapFarmVisitCheck(p, block)
	assert.Equal(t, "CHK-sub-101-case-farmer-9", check.SubmissionID)
	assert.Equal(t, CheckTypeFarmVisit, check.CheckType)
	require.NotNil(t, check.DateCompleted)
	require.NotNil(t, check.AttendedTrainings)
	assert.True(t, *check.AttendedTrainings)
	require.NotNil(t, check.NumberOfTrainingsAttended)
	assert.Equal(t, 4, *check.NumberOfTrainingsAttended)
	require.NotNil(t, check.AttendedLastMonthsTraining)
	assert.True(t, *check.AttendedLastMonthsTraining)
}

func TestMapObservationCheck(t *testing.T) {
	logger := testLogger()
	tr := NewCheckTransformer(resolver.NewResolver(nil, logger), logger)

	p := Payload{
		"id": "sub-102",
		"form": map[string]any{
			"Date": "2025-05-21",
		},
	}
	block := Map{
		"participant_id":                      "case-farmer-3",
		"Attendend_Previous_Training_Module": "No_training_was_offered",
	}

	check := tr.mapObservationCheck(p, block)
	assert.Equal(t, "CHK-sub-102-case-farmer-3", check.SubmissionID)
	assert.Equal(t, CheckTypeTrainingObservation, check.CheckType)
	require.NotNil(t, check.AttendedLastMonthsTraining)
	assert.False(t, *check.AttendedLastMonthsTraining)
	assert.Nil(t, check.AttendedTrainings)
}
