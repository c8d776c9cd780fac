package store

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/pkg/apperrors"
	"github.com/TechnoServe/pima-integration/pkg/database"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

// UpsertSpec describes how one entity table is written.
type UpsertSpec struct {
	// Table is the target table name.
	Table string
	// EntityLabel names the entity in errors and logs.
	EntityLabel string
	// KeyColumn is the natural key column the upsert is keyed by.
	KeyColumn string
	// AlwaysUpdate lists columns overwritten on every merge (foreign keys and
	// natural keys). Columns absent from the incoming record are left alone.
	AlwaysUpdate []string
	// Strict makes the upsert update-only: a missing row is a NotFound error.
	Strict bool
}

// Engine performs create-or-merge writes for entity records. Records are
// db-tagged structs; nil pointer fields are treated as absent and never erase
// stored values.
type Engine struct {
	db     database.DB
	logger ectologger.Logger
}

func NewEngine(db database.DB, logger ectologger.Logger) *Engine {
	return &Engine{
		db:     db,
		logger: logger,
	}
}

type column struct {
	name  string
	value any
}

// Upsert writes record into spec.Table and returns the row id and whether a
// new row was inserted. It joins the transaction carried by ctx.
func (e *Engine) Upsert(ctx context.Context, spec UpsertSpec, record any, actorID *uuid.UUID) (uuid.UUID, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "store.Engine.Upsert")
	defer span.End()

	cols, err := recordColumns(record)
	if err != nil {
		return uuid.Nil, false, apperrors.NewValidationf("invalid %s record: %v", spec.EntityLabel, err)
	}

	keyValue := ""
	for _, c := range cols {
		if c.name == spec.KeyColumn {
			keyValue = fmt.Sprintf("%v", c.value)
		}
	}
	if keyValue == "" {
		return uuid.Nil, false, apperrors.NewMalformedPayloadf("missing %s on %s record", spec.KeyColumn, spec.EntityLabel)
	}

	ctx, tx, err := e.db.GetTx(ctx, nil)
	if err != nil {
		return uuid.Nil, false, apperrors.NewStoreError(err, "failed to open transaction")
	}

	existing, err := e.findExisting(ctx, tx, spec, keyValue)
	if err != nil {
		return uuid.Nil, false, err
	}

	if existing == nil {
		if spec.Strict {
			e.logger.WithContext(ctx).WithFields(map[string]any{
				"entity": spec.EntityLabel,
				"key":    keyValue,
			}).Error("Record not found for strict upsert")
			return uuid.Nil, false, apperrors.NewNotFoundf(spec.EntityLabel, "%s not found for %s: %s", spec.EntityLabel, spec.KeyColumn, keyValue)
		}
		id, err := e.insert(ctx, tx, spec, cols, actorID)
		if err != nil {
			return uuid.Nil, false, err
		}
		e.logger.WithContext(ctx).WithFields(map[string]any{
			"entity": spec.EntityLabel,
			"key":    keyValue,
		}).Infof("Created new %s record", spec.EntityLabel)
		return id, true, nil
	}

	id, err := e.merge(ctx, tx, spec, existing, cols, actorID)
	if err != nil {
		return uuid.Nil, false, err
	}
	e.logger.WithContext(ctx).WithFields(map[string]any{
		"entity": spec.EntityLabel,
		"key":    keyValue,
	}).Infof("Updated existing %s record", spec.EntityLabel)
	return id, false, nil
}

func (e *Engine) findExisting(ctx context.Context, tx database.Tx, spec UpsertSpec, keyValue string) (map[string]any, error) {
	sb := database.NewSelectBuilder()
	sb.Select("*")
	sb.From(spec.Table)
	sb.Where(
		sb.Equal(spec.KeyColumn, keyValue),
		sb.Equal("is_deleted", false),
	)
	sb.Limit(1)

	query, args := sb.Build()
	rows, err := tx.QueryxContext(ctx, query, args...)
	if err != nil {
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to look up %s by %s", spec.EntityLabel, spec.KeyColumn)
		return nil, apperrors.NewStoreError(err, fmt.Sprintf("failed to look up %s", spec.EntityLabel))
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, apperrors.NewStoreError(err, fmt.Sprintf("failed to look up %s", spec.EntityLabel))
		}
		return nil, nil
	}

	row := map[string]any{}
	if err := rows.MapScan(row); err != nil {
		return nil, apperrors.NewStoreError(err, fmt.Sprintf("failed to scan %s row", spec.EntityLabel))
	}
	return row, nil
}

func (e *Engine) insert(ctx context.Context, tx database.Tx, spec UpsertSpec, cols []column, actorID *uuid.UUID) (uuid.UUID, error) {
	names := make([]string, 0, len(cols)+3)
	values := make([]any, 0, len(cols)+3)

	names = append(names, "id")
	values = append(values, uuid.New())
	for _, c := range cols {
		names = append(names, c.name)
		values = append(values, c.value)
	}
	if actorID != nil {
		names = append(names, "created_by_id", "last_updated_by_id")
		values = append(values, *actorID, *actorID)
	}

	ib := database.NewInsertBuilder()
	ib = ib.InsertInto(spec.Table).Cols(names...).Values(values...).Returning("id")

	query, args := ib.Build()
	var id uuid.UUID
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to insert %s", spec.EntityLabel)
		return uuid.Nil, apperrors.NewStoreError(err, fmt.Sprintf("failed to insert %s", spec.EntityLabel))
	}
	return id, nil
}

func (e *Engine) merge(ctx context.Context, tx database.Tx, spec UpsertSpec, existing map[string]any, cols []column, actorID *uuid.UUID) (uuid.UUID, error) {
	id, err := parseUUIDValue(existing["id"])
	if err != nil {
		return uuid.Nil, apperrors.NewStoreError(err, fmt.Sprintf("invalid id on existing %s row", spec.EntityLabel))
	}

	always := map[string]bool{spec.KeyColumn: true}
	for _, c := range spec.AlwaysUpdate {
		always[c] = true
	}

	ub := database.NewUpdateBuilder()
	ub.Update(spec.Table)

	assignments := []string{}
	for _, c := range cols {
		if always[c.name] {
			assignments = append(assignments, ub.Assign(c.name, c.value))
			continue
		}
		current, ok := existing[c.name]
		if !ok || current == nil || !sameValue(current, c.value) {
			assignments = append(assignments, ub.Assign(c.name, c.value))
		}
	}

	if actorID != nil {
		assignments = append(assignments, ub.Assign("last_updated_by_id", *actorID))
	}
	assignments = append(assignments, ub.Assign("updated_at", time.Now().UTC()))

	ub.Set(assignments...)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to update %s", spec.EntityLabel)
		return uuid.Nil, apperrors.NewStoreError(err, fmt.Sprintf("failed to update %s", spec.EntityLabel))
	}
	return id, nil
}

// recordColumns extracts (column, value) pairs from a db-tagged struct.
// Nil pointer fields are absent; non-pointer fields are always present.
func recordColumns(record any) ([]column, error) {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("record is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	cols := make([]column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" || !field.IsExported() {
			continue
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			cols = append(cols, column{name: tag, value: fv.Elem().Interface()})
			continue
		}
		cols = append(cols, column{name: tag, value: fv.Interface()})
	}
	return cols, nil
}

// sameValue compares a scanned database value against an incoming Go value.
// Comparison is textual; a false negative only causes a redundant write.
func sameValue(current, incoming any) bool {
	return normalizeValue(current) == normalizeValue(incoming)
}

func normalizeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func parseUUIDValue(v any) (uuid.UUID, error) {
	switch t := v.(type) {
	case []byte:
		return uuid.Parse(string(t))
	case string:
		return uuid.Parse(t)
	case uuid.UUID:
		return t, nil
	default:
		return uuid.Nil, fmt.Errorf("unexpected uuid value of type %T", v)
	}
}
