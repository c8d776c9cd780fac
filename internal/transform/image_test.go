package transform

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechnoServe/pima-integration/internal/models"
)

func TestNewImageReference(t *testing.T) {
	id := uuid.New()
	ref := NewImageReference("farm_visits", id)
	assert.Equal(t, "Farm Visit", ref.Type)
	assert.Equal(t, id, ref.ID)

	assert.Equal(t, "Unknown", NewImageReference("mystery_table", id).Type)
}

func TestMapImage(t *testing.T) {
	p := Payload{"id": "sub-401"}
	refID := uuid.New()
	ref := NewImageReference("observations", refID)

	img := MapImage(p, "https://host/media/1598482183276.jpg", ref, "Attendees Photo")

	// One form can carry several photos; the file stem keeps the ids distinct.
	assert.Equal(t, "sub-401"+refID.String()+"1598482183276", img.SubmissionID)
	assert.Equal(t, "Observation", img.ImageReferenceType)
	assert.Equal(t, refID, img.ImageReferenceID)
	require.NotNil(t, img.ImageDescription)
	assert.Equal(t, "Attendees Photo", *img.ImageDescription)
	assert.Equal(t, "https://host/media/1598482183276.jpg", img.ImageURL)
	assert.Equal(t, models.ImageVerificationPending, img.VerificationStatus)
}
