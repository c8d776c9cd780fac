package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := NewNotFoundf("Farmer", "no farmer found for commcare_case_id: %s", "case-1")
	assert.Equal(t, "not_found: entity 'Farmer': no farmer found for commcare_case_id: case-1", err.Error())

	t.Run("should include the field path", func(t *testing.T) {
		err := NewMalformedPayloadf("empty value").AddEntity("Farm Visit").AddField("date_of_visit")
		assert.Equal(t, "malformed_payload: entity 'Farm Visit' -> field 'date_of_visit': empty value", err.Error())
	})
}

func TestIsKind(t *testing.T) {
	err := NewUnhandledJobType("Mystery Form")
	assert.True(t, IsKind(err, KindUnhandledJobType))
	assert.False(t, IsKind(err, KindNotFound))

	t.Run("should unwrap wrapped errors", func(t *testing.T) {
		wrapped := fmt.Errorf("processing failed: %w", NewValidationf("bad record"))
		assert.True(t, IsKind(wrapped, KindValidation))
	})

	assert.False(t, IsKind(nil, KindValidation))
	assert.False(t, IsKind(fmt.Errorf("plain"), KindValidation))
}

func TestStoreErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewStoreError(cause, "failed to insert Farmer")
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, IsKind(err, KindStore))
}

func TestToHTTPError(t *testing.T) {
	cases := map[Kind]int{
		KindMalformedPayload: http.StatusBadRequest,
		KindValidation:       http.StatusBadRequest,
		KindUnhandledJobType: http.StatusBadRequest,
		KindNotFound:         http.StatusNotFound,
		KindStore:            http.StatusInternalServerError,
	}

	for kind, status := range cases {
		httpErr := (&Error{Kind: kind, Message: "boom"}).ToHTTPError()
		assert.True(t, httperror.IsHTTPError(httpErr), string(kind))
		assert.Equal(t, status, httperror.GetStatusCode(httpErr), string(kind))
	}
}

func TestSkip(t *testing.T) {
	err := NewSkip("unhandled survey variant")
	assert.Equal(t, "transformation skipped: unhandled survey variant", err.Error())
	assert.True(t, IsSkip(err))

	t.Run("should detect skips through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("transform: %w", err)
		assert.True(t, IsSkip(wrapped))
	})

	require.False(t, IsSkip(fmt.Errorf("real failure")))
	assert.False(t, IsSkip(nil))
}
