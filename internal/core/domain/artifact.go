package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ArtifactType string

const (
	ArtifactTypeData    ArtifactType = "data"
	ArtifactTypeModel   ArtifactType = "model"
	ArtifactTypeSchema  ArtifactType = "schema"
	ArtifactTypeService ArtifactType = "service"
	ArtifactTypeBase    ArtifactType = "base"
)

func ParseArtifactType(raw string) (ArtifactType, error) {
	switch ArtifactType(raw) {
	case ArtifactTypeData, ArtifactTypeModel, ArtifactTypeSchema, ArtifactTypeService, ArtifactTypeBase:
		return ArtifactType(raw), nil
	}
	return "", ErrInvalidArtifactType
}

// Artifact is a named container of ordered artifact versions. Versions are
// cascade-deleted with the artifact. HasCustomName distinguishes user-assigned
// names from system-generated ones.
type Artifact struct {
	ID            uuid.UUID `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	WorkspaceID   uuid.UUID `json:"workspace_id"`
	Name          string    `json:"name"`
	HasCustomName bool      `json:"has_custom_name"`
}

// ArtifactVersion is one immutable materialization of an artifact. Version is
// either a system-assigned integer rendered as text (VersionNumber set) or a
// user-assigned opaque label (VersionNumber nil).
type ArtifactVersion struct {
	ID              uuid.UUID    `json:"id"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	ArtifactID      uuid.UUID    `json:"artifact_id"`
	WorkspaceID     uuid.UUID    `json:"workspace_id"`
	UserID          *uuid.UUID   `json:"user_id"`
	ArtifactStoreID *uuid.UUID   `json:"artifact_store_id"`
	Version         string       `json:"version"`
	VersionNumber   *int         `json:"version_number"`
	Type            ArtifactType `json:"type"`
	URI             string       `json:"uri"`
	Materializer    Source       `json:"materializer"`
	DataType        Source       `json:"data_type"`
}

// SetVersion records the version label and, when it parses as a base-10
// integer, the numeric rendering used for latest resolution.
func (v *ArtifactVersion) SetVersion(label string) {
	v.Version = label
	v.VersionNumber = nil
	if n, err := strconv.Atoi(label); err == nil {
		v.VersionNumber = &n
	}
}

// Source is a descriptor of a code object (a materializer or data type
// implementation): dotted module path, attribute within it, and a source
// type discriminator.
type Source struct {
	Module    string `json:"module"`
	Attribute string `json:"attribute,omitempty"`
	Type      string `json:"type"`
}

const sourceTypeUnknown = "unknown"

// ParseSource decodes a persisted source descriptor. Legacy rows hold a bare
// dotted import path instead of the JSON object; those are wrapped into a
// descriptor with the last path segment as the attribute.
func ParseSource(raw string) Source {
	if raw == "" {
		return Source{}
	}
	var s Source
	if err := json.Unmarshal([]byte(raw), &s); err == nil && s.Module != "" {
		return s
	}
	module, attribute := raw, ""
	if i := strings.LastIndex(raw, "."); i >= 0 {
		module, attribute = raw[:i], raw[i+1:]
	}
	return Source{Module: module, Attribute: attribute, Type: sourceTypeUnknown}
}

// Encode renders the descriptor for persistence. Empty descriptors encode as
// the empty string so the column stays NULL-equivalent.
func (s Source) Encode() string {
	if s == (Source{}) {
		return ""
	}
	b, _ := json.Marshal(s)
	return string(b)
}

// Path renders the dotted import path of the descriptor.
func (s Source) Path() string {
	if s.Attribute == "" {
		return s.Module
	}
	return s.Module + "." + s.Attribute
}
