package resolver

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

func TestCache(t *testing.T) {
	cache := NewCache()
	assert.Equal(t, 0, cache.Len())

	id := uuid.New()
	cache.Put("Farmer", "case-1", "id", id)
	assert.Equal(t, 1, cache.Len())

	got, ok := cache.get("Farmer", "case-1", "id")
	require.True(t, ok)
	assert.Equal(t, id, got)

	t.Run("should key entries by select column", func(t *testing.T) {
		_, ok := cache.get("Farmer", "case-1", "household_id")
		assert.False(t, ok)
	})

	t.Run("should miss other entities", func(t *testing.T) {
		_, ok := cache.get("Household", "case-1", "id")
		assert.False(t, ok)
	})
}

func TestResolve_BlankExternalID(t *testing.T) {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	r := NewResolver(nil, logger)

	_, err := r.Resolve(context.Background(), NewCache(), "Farmer", "  ", "commcare_case_id", "farmers")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedPayload))
}

func TestResolve_CacheHitSkipsQuery(t *testing.T) {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	r := NewResolver(nil, logger)

	id := uuid.New()
	cache := NewCache()
	cache.Put("Farmer", "case-2", "id", id)

	got, err := r.Resolve(context.Background(), cache, "Farmer", "case-2", "commcare_case_id", "farmers")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
