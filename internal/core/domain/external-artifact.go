package domain

import "github.com/google/uuid"

// ExternalArtifactRef is a not-yet-resolved pointer to an artifact version:
// either an explicit ID or a (name, optional version) pair, optionally
// anchored to an in-flight model version whose link index should answer the
// name lookup. Exactly one resolution path must succeed.
type ExternalArtifactRef struct {
	ID             *uuid.UUID `json:"id"`
	Name           string     `json:"name"`
	Version        string     `json:"version"`
	ModelVersionID *uuid.UUID `json:"model_version_id"`
}

// Validate rejects malformed reference combinations before any store work.
func (r ExternalArtifactRef) Validate() error {
	if r.ID != nil && r.Name != "" {
		return ErrConflictingReference
	}
	if r.ID == nil && r.Name == "" {
		return ErrEmptyReference
	}
	return nil
}
