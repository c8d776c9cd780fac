package orchestrators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechnoServe/pima-integration/config"
	"github.com/TechnoServe/pima-integration/internal/resolver"
	"github.com/TechnoServe/pima-integration/pkg/apperrors"
)

func testRegistry() *Registry {
	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewRegistry(&config.Config{}, nil, logger)
}

func TestRegistryProcess_UnhandledJobType(t *testing.T) {
	reg := testRegistry()

	err := reg.Process(context.Background(), resolver.NewCache(), "Unknown Form", json.RawMessage(`{}`), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnhandledJobType))
}

func TestRegistryProcess_MalformedPayload(t *testing.T) {
	reg := testRegistry()

	err := reg.Process(context.Background(), resolver.NewCache(), "Farm Visit Full", json.RawMessage(`{"form":`), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindMalformedPayload))
}

func TestRegistryJobTypes(t *testing.T) {
	reg := testRegistry()
	types := reg.JobTypes()

	expected := []string{
		"Farmer Registration",
		"Edit Farmer Details",
		"Attendance Full - Current Module",
		"Field Day Attendance Full",
		"Field Day Farmer Registration",
		"Attendance Light - Current Module",
		"Followup",
		"Training Observation",
		"Demo Plot Observation",
		"Farm Visit Full",
		"Farm Visit - AA",
		"Wet Mill Registration Form",
		"Wet Mill Visit",
	}
	assert.ElementsMatch(t, expected, types)
}
