package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	SubmissionID string   `db:"submission_id"`
	Name         *string  `db:"name"`
	Count        *int     `db:"count"`
	Score        float64  `db:"score"`
	Ignored      string   `db:"-"`
	Untagged     string
}

func TestRecordColumns(t *testing.T) {
	name := "field one"
	record := &testRecord{
		SubmissionID: "FV-123",
		Name:         &name,
		Score:        2.5,
		Ignored:      "skip",
		Untagged:     "skip",
	}

	cols, err := recordColumns(record)
	require.NoError(t, err)

	byName := map[string]any{}
	for _, c := range cols {
		byName[c.name] = c.value
	}

	assert.Equal(t, "FV-123", byName["submission_id"])
	assert.Equal(t, "field one", byName["name"])
	assert.Equal(t, 2.5, byName["score"])

	t.Run("should treat nil pointers as absent", func(t *testing.T) {
		_, present := byName["count"]
		assert.False(t, present)
	})

	t.Run("should skip untagged and dash tagged fields", func(t *testing.T) {
		assert.Len(t, cols, 3)
	})
}

func TestRecordColumns_RejectsNonStructs(t *testing.T) {
	_, err := recordColumns(nil)
	assert.Error(t, err)

	_, err = recordColumns("not a struct")
	assert.Error(t, err)

	var nilRecord *testRecord
	_, err = recordColumns(nilRecord)
	assert.Error(t, err)
}

func TestSameValue(t *testing.T) {
	assert.True(t, sameValue("abc", "abc"))
	assert.True(t, sameValue([]byte("abc"), "abc"))
	assert.True(t, sameValue(int64(4), 4))
	assert.False(t, sameValue("abc", "abd"))

	t.Run("should compare times in UTC", func(t *testing.T) {
		loc := time.FixedZone("EAT", 3*60*60)
		local := time.Date(2025, 6, 14, 12, 0, 0, 0, loc)
		utc := local.UTC()
		assert.True(t, sameValue(local, utc))
		assert.True(t, sameValue(&local, utc))
	})

	t.Run("should treat nil as empty", func(t *testing.T) {
		assert.True(t, sameValue(nil, nil))
		assert.False(t, sameValue(nil, "x"))
		var nilTime *time.Time
		assert.True(t, sameValue(nilTime, nil))
	})
}
