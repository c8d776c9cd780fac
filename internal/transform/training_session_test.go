package transform

import (
	"context"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func attendanceLightPayload(session string) Payload {
	return Payload{
		"id": "sub-001",
		"form": map[string]any{
			"@name":                    "Attendance Light - Current Module",
			"trainer":                  "0051n000002xxx",
			"selected_training_module": "case-module-7",
			"session":                  session,
			"gps_coordinates":          "-1.5 36.9 1700.0 5.0",
			"Current_session_participants": map[string]any{
				"date":              "2025-06-14",
				"male_attendance":   "12",
				"female_attendance": "18",
				"total_attendance":  "30",
			},
		},
	}
}

func TestTrainingSessionTransform_LightFirstSession(t *testing.T) {
	logger := testLogger()
	tr := NewTrainingSessionTransformer(resolver.NewResolver(nil, logger), logger)

	trainerID := uuid.New()
	cache := resolver.NewCache()
	cache.Put("Trainer", "0051n000002xxx", "id", trainerID)

	session, err := tr.Transform(context.Background(), cache, attendanceLightPayload("first_session"))
	require.NoError(t, err)

	assert.Equal(t, "case-module-7", session.CommCareCaseID)
	require.NotNil(t, session.TrainerID)
	assert.Equal(t, trainerID, *session.TrainerID)

	require.NotNil(t, session.DateSession1)
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), *session.DateSession1)
	require.NotNil(t, session.MaleAttendeesSession1)
	assert.Equal(t, 12, *session.MaleAttendeesSession1)
	require.NotNil(t, session.FemaleAttendeesSession1)
	assert.Equal(t, 18, *session.FemaleAttendeesSession1)
	require.NotNil(t, session.TotalAttendeesSession1)
	assert.Equal(t, 30, *session.TotalAttendeesSession1)
	require.NotNil(t, session.LocationGPSLatitudeSession1)
	assert.InDelta(t, -1.5, *session.LocationGPSLatitudeSession1, 1e-9)

	assert.Nil(t, session.DateSession2)
	assert.Nil(t, session.TotalAttendeesSession2)
}

func TestTrainingSessionTransform_LightSecondSession(t *testing.T) {
	logger := testLogger()
	tr := NewTrainingSessionTransformer(resolver.NewResolver(nil, logger), logger)

	cache := resolver.NewCache()
	cache.Put("Trainer", "0051n000002xxx", "id", uuid.New())

	session, err := tr.Transform(context.Background(), cache, attendanceLightPayload("second_session"))
	require.NoError(t, err)

	assert.Nil(t, session.DateSession1)
	require.NotNil(t, session.DateSession2)
	require.NotNil(t, session.TotalAttendeesSession2)
	assert.Equal(t, 30, *session.TotalAttendeesSession2)
	require.NotNil(t, session.LocationGPSLongitudeSession2)
	assert.InDelta(t, 36.9, *session.LocationGPSLongitudeSession2, 1e-9)
}

func TestTrainingSessionTransform_FollowupIsAttendanceLight(t *testing.T) {
	logger := testLogger()
	tr := NewTrainingSessionTransformer(resolver.NewResolver(nil, logger), logger)

	p := attendanceLightPayload("")
	form := p.Form()
	form["@name"] = "Followup"
	form["survey_type"] = "Attendance Light"

	cache := resolver.NewCache()
	cache.Put("Trainer", "0051n000002xxx", "id", uuid.New())

	session, err := tr.Transform(context.Background(), cache, p)
	require.NoError(t, err)
	assert.Equal(t, "case-module-7", session.CommCareCaseID)
	assert.NotNil(t, session.DateSession1)
}

func TestTrainingSessionTransform_FullSession(t *testing.T) {
	logger := testLogger()
	tr := NewTrainingSessionTransformer(resolver.NewResolver(nil, logger), logger)

	p := Payload{
		"id": "sub-002",
		"form": map[string]any{
			"@name":            "Attendance Full - Current Module",
			"trainer":          "0051n000002yyy",
			"training_session": "case-session-2",
			"date":             "2025-07-01",
			"gps_coordinates":  "9.03 38.74 2300.0 4.0",
		},
	}

	cache := resolver.NewCache()
	cache.Put("Trainer", "0051n000002yyy", "id", uuid.New())

	session, err := tr.Transform(context.Background(), cache, p)
	require.NoError(t, err)
	assert.Equal(t, "case-session-2", session.CommCareCaseID)
	require.NotNil(t, session.DateSession1)
	require.NotNil(t, session.LocationGPSAltitudeSession1)
	assert.InDelta(t, 2300.0, *session.LocationGPSAltitudeSession1, 1e-9)
}

func TestTrainingSessionTransform_SkipsUnhandledForms(t *testing.T) {
	logger := testLogger()
	tr := NewTrainingSessionTransformer(resolver.NewResolver(nil, logger), logger)

	p := Payload{
		"id": "sub-003",
		"form": map[string]any{
			"@name":   "Some Unrelated Form",
			"trainer": "0051n000002zzz",
		},
	}

	cache := resolver.NewCache()
	cache.Put("Trainer", "0051n000002zzz", "id", uuid.New())

	_, err := tr.Transform(context.Background(), cache, p)
	require.Error(t, err)
	assert.True(t, apperrors.IsSkip(err))
}
