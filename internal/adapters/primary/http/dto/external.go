package dto

import "github.com/google/uuid"

// ResolveExternalArtifactRequest carries a not-yet-resolved artifact
// reference: an explicit ID, or a name with optional version, optionally
// anchored to a model version whose link index answers the lookup.
type ResolveExternalArtifactRequest struct {
	ID             *uuid.UUID `json:"id"`
	Name           string     `json:"name"`
	Version        string     `json:"version"`
	ModelVersionID *uuid.UUID `json:"model_version_id"`
}
