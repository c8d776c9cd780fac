package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWetmillVisitSubmissionIDs(t *testing.T) {
	p := Payload{"id": "sub-301"}
	assert.Equal(t, "WV-sub-301", WetmillVisitSubmissionID(p))
	assert.Equal(t, "SR-sub-301-cpqi", SurveyResponseSubmissionID(p, "cpqi"))
}

func TestClassifyAnswer(t *testing.T) {
	t.Run("should classify boolean strings", func(t *testing.T) {
		for raw, want := range map[string]bool{"TRUE": true, "true": true, "1": true, "FALSE": false, "0": false} {
			record := classifyAnswer(raw)
			assert.Equal(t, "boolean", record.FieldType, raw)
			require.NotNil(t, record.ValueBoolean, raw)
			assert.Equal(t, want, *record.ValueBoolean, raw)
		}
	})

	t.Run("should classify dates", func(t *testing.T) {
		record := classifyAnswer("2025-03-17")
		assert.Equal(t, "date", record.FieldType)
		require.NotNil(t, record.ValueDate)
		assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), *record.ValueDate)
	})

	t.Run("should classify numbers", func(t *testing.T) {
		record := classifyAnswer("42.5")
		assert.Equal(t, "number", record.FieldType)
		require.NotNil(t, record.ValueNumber)
		assert.InDelta(t, 42.5, *record.ValueNumber, 1e-9)
	})

	t.Run("should fall back to text", func(t *testing.T) {
		record := classifyAnswer("  mains electricity  ")
		assert.Equal(t, "text", record.FieldType)
		require.NotNil(t, record.ValueText)
		assert.Equal(t, "mains electricity", *record.ValueText)
	})

	t.Run("should keep native JSON types", func(t *testing.T) {
		boolean := classifyAnswer(true)
		assert.Equal(t, "boolean", boolean.FieldType)
		require.NotNil(t, boolean.ValueBoolean)
		assert.True(t, *boolean.ValueBoolean)

		number := classifyAnswer(float64(7))
		assert.Equal(t, "number", number.FieldType)
		require.NotNil(t, number.ValueNumber)
		assert.InDelta(t, 7.0, *number.ValueNumber, 1e-9)
	})

	t.Run("should leave nil answers empty", func(t *testing.T) {
		record := classifyAnswer(nil)
		assert.Equal(t, "text", record.FieldType)
		assert.Nil(t, record.ValueText)
		assert.Nil(t, record.ValueNumber)
		assert.Nil(t, record.ValueBoolean)
		assert.Nil(t, record.ValueDate)
	})
}
