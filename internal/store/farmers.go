package store

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
	"github.com/TechnoServe/pima-integration/pkg/database"
	"github.com/TechnoServe/pima-integration/pkg/tracing"
)

// FarmerStore holds farmer writes that fall outside the generic upsert.
type FarmerStore struct {
	db     database.DB
	logger ectologger.Logger
}

func NewFarmerStore(db database.DB, logger ectologger.Logger) *FarmerStore {
	return &FarmerStore{
		db:     db,
		logger: logger,
	}
}

// Deactivate marks the farmer with the given case id Inactive and flags the
// row for sync back to CommCare. A missing farmer is logged, not an error:
// the replacement registration still stands on its own.
func (s *FarmerStore) Deactivate(ctx context.Context, commcareCaseID string, actorID *uuid.UUID) error {
	ctx, span := tracing.StartSpan(ctx, "store.FarmerStore.Deactivate")
	defer span.End()

	ctx, tx, err := s.db.GetTx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError(err, "failed to open transaction")
	}

	ub := database.NewUpdateBuilder()
	ub.Update("farmers")
	assignments := []string{
		ub.Assign("status", models.FarmerStatusInactive),
		ub.Assign("status_notes", "Deactivated. Replaced"),
		ub.Assign("send_to_commcare", true),
		ub.Assign("updated_at", time.Now().UTC()),
	}
	if actorID != nil {
		assignments = append(assignments, ub.Assign("last_updated_by_id", *actorID))
	}
	ub.Set(assignments...)
	ub.Where(
		ub.Equal("commcare_case_id", commcareCaseID),
		ub.Equal("is_deleted", false),
	)

	query, args := ub.Build()
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Errorf("Failed to deactivate farmer %s", commcareCaseID)
		return apperrors.NewStoreError(err, "failed to deactivate farmer")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError(err, "failed to read deactivation result")
	}
	if affected == 0 {
		s.logger.WithContext(ctx).WithFields(map[string]any{
			"commcare_case_id": commcareCaseID,
		}).Info("No farmer found to deactivate")
		return nil
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"commcare_case_id": commcareCaseID,
	}).Info("Deactivated farmer")
	return nil
}
