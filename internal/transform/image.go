package transform

import (
	"strings"

	"github.com/google/uuid"

	"github.com/TechnoServe/pima-integration/internal/models"
)

// ImageReference names the record an image is attached to.
type ImageReference struct {
	// Type is the display name of the referenced entity.
	Type string
	ID   uuid.UUID
}

// Image reference display names by table.
var imageReferenceNames = map[string]string{
	"training_sessions":        "Training Session",
	"farm_visits":              "Farm Visit",
	"farms":                    "Farm",
	"fv_best_practice_answers": "FV Best Practice Answer",
	"fv_best_practices":        "FV Best Practice",
	"observations":             "Observation",
	"observation_results":      "Observation Result",
}

// NewImageReference builds a reference for a row in table.
func NewImageReference(table string, id uuid.UUID) ImageReference {
	name, ok := imageReferenceNames[table]
	if !ok {
		name = "Unknown"
	}
	return ImageReference{Type: name, ID: id}
}

// MapImage builds an image record for an attachment URL linked to ref. The
// submission id folds in the referenced row and the file stem so one form can
// carry several photos.
func MapImage(p Payload, imageURL string, ref ImageReference, description string) *models.Image {
	stem := imageURL
	if i := strings.LastIndex(stem, "/"); i >= 0 {
		stem = stem[i+1:]
	}
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i]
	}

	return &models.Image{
		SubmissionID:       p.SubmissionID() + ref.ID.String() + stem,
		ImageReferenceType: ref.Type,
		ImageReferenceID:   ref.ID,
		ImageDescription:   StringPtr(description),
		ImageURL:           imageURL,
		VerificationStatus: models.ImageVerificationPending,
	}
}

// AttachmentURLFor returns the hosted URL for a named form attachment, empty
// when the attachment is absent.
func AttachmentURLFor(p Payload, name string) string {
	if name == "" {
		return ""
	}
	return Map(p).Map("attachments").Map(name).String("url")
}
