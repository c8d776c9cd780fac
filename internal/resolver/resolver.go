package resolver

import (
	"context"
	"strings"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/pkg/apperrors"
	"github.com/TechnoServe/pima-integration/pkg/database"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

type cacheKey struct {
	entity     string
	externalID string
	column     string
}

// Cache memoizes resolved ids for the lifetime of one dispatch batch. It is
// passed explicitly so the scope of the memoization is visible at call sites.
type Cache struct {
	ids map[cacheKey]uuid.UUID
}

func NewCache() *Cache {
	return &Cache{ids: make(map[cacheKey]uuid.UUID)}
}

func (c *Cache) get(entity, externalID, column string) (uuid.UUID, bool) {
	id, ok := c.ids[cacheKey{entity: entity, externalID: externalID, column: column}]
	return id, ok
}

func (c *Cache) put(entity, externalID, column string, id uuid.UUID) {
	c.ids[cacheKey{entity: entity, externalID: externalID, column: column}] = id
}

// Put seeds an entry, keyed the way ResolveColumn caches hits.
func (c *Cache) Put(entity, externalID, selectColumn string, id uuid.UUID) {
	c.put(entity, externalID, selectColumn, id)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.ids)
}

// Resolver translates external identifiers carried in form payloads into
// database ids.
type Resolver struct {
	db     database.DB
	logger ectologger.Logger
}

func NewResolver(db database.DB, logger ectologger.Logger) *Resolver {
	return &Resolver{
		db:     db,
		logger: logger,
	}
}

// Resolve looks up the id of the row in table whose column equals externalID.
// A blank externalID is a malformed payload; a missing row is NotFound naming
// the entity. Hits are cached by (entity, externalID).
func (r *Resolver) Resolve(ctx context.Context, cache *Cache, entity, externalID, column, table string) (uuid.UUID, error) {
	return r.ResolveColumn(ctx, cache, entity, externalID, column, table, "id")
}

// ResolveColumn is Resolve for a foreign key column other than id, e.g. a
// farmer's household_id or a project role's staff_id.
func (r *Resolver) ResolveColumn(ctx context.Context, cache *Cache, entity, externalID, column, table, selectColumn string) (uuid.UUID, error) {
	ctx, span := tracing.StartSpan(ctx, "resolver.Resolver.ResolveColumn")
	defer span.End()

	if strings.TrimSpace(externalID) == "" {
		return uuid.Nil, apperrors.NewMalformedPayloadf("empty external id for %s", entity).AddEntity(entity)
	}

	if cache != nil {
		if id, ok := cache.get(entity, externalID, selectColumn); ok {
			return id, nil
		}
	}

	sb := database.NewSelectBuilder()
	sb.Select(selectColumn)
	sb.From(table)
	sb.Where(
		sb.Equal(column, externalID),
		sb.Equal("is_deleted", false),
	)
	sb.Limit(1)

	query, args := sb.Build()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return uuid.Nil, apperrors.NewStoreError(err, "failed to open transaction")
	}

	var id uuid.UUID
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		if err.Error() == "sql: no rows in result set" {
			r.logger.WithContext(ctx).WithFields(map[string]any{
				"entity":      entity,
				"external_id": externalID,
			}).Errorf("No %s found", entity)
			return uuid.Nil, apperrors.NewNotFoundf(entity, "no %s found for %s: %s", entity, column, externalID)
		}
		r.logger.WithContext(ctx).WithError(err).Errorf("Failed to resolve %s", entity)
		return uuid.Nil, apperrors.NewStoreError(err, "failed to resolve "+entity)
	}

	if cache != nil {
		cache.put(entity, externalID, selectColumn, id)
	}
	return id, nil
}
