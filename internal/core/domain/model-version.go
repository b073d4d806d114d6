package domain

import (
	"time"

	"github.com/google/uuid"
)

// ModelVersion is a numbered, stage-taggable snapshot of a model's lineage.
// Model and Number are immutable after creation; Stage and the link
// collections mutate additively over the life of the entity.
type ModelVersion struct {
	ID          uuid.UUID  `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ModelID     uuid.UUID  `json:"model_id"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	UserID      *uuid.UUID `json:"user_id"`
	Number      int        `json:"number"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Stage       Stage      `json:"stage"`

	// Lineage collections, loaded separately from the link tables.
	Links  LinkCollections      `json:"-"`
	RunIDs map[string]uuid.UUID `json:"-"`
}

// ModelVersionMetadata carries the optional, more expensive fields attached
// to a model version response only when the caller asks for hydration.
type ModelVersionMetadata struct {
	Description   string `json:"description"`
	WorkspaceName string `json:"workspace_name"`
	ModelName     string `json:"model_name"`
}

// ModelVersionDetails is the materialized read-path view of a model version:
// the body fields plus an explicitly hydrated metadata block. Reading the
// metadata of a non-hydrated details object is a programming error, not a
// lazily triggered fetch.
type ModelVersionDetails struct {
	ModelVersion

	hydrated bool
	metadata ModelVersionMetadata
}

// NewModelVersionDetails builds a non-hydrated details object.
func NewModelVersionDetails(mv ModelVersion) *ModelVersionDetails {
	return &ModelVersionDetails{ModelVersion: mv}
}

// Hydrate attaches the metadata block.
func (d *ModelVersionDetails) Hydrate(meta ModelVersionMetadata) {
	d.metadata = meta
	d.hydrated = true
}

// Hydrated reports whether the metadata block is present.
func (d *ModelVersionDetails) Hydrated() bool { return d.hydrated }

// Metadata returns the metadata block, or ErrNotHydrated when the object was
// materialized without it.
func (d *ModelVersionDetails) Metadata() (ModelVersionMetadata, error) {
	if !d.hydrated {
		return ModelVersionMetadata{}, ErrNotHydrated
	}
	return d.metadata, nil
}
