package dto

import "github.com/google/uuid"

type CreateArtifactRequest struct {
	Name          string `json:"name" binding:"required,max=250"`
	HasCustomName bool   `json:"has_custom_name"`
}

type ArtifactResponse struct {
	ID            uuid.UUID `json:"id"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
	WorkspaceID   uuid.UUID `json:"workspace_id"`
	Name          string    `json:"name"`
	HasCustomName bool      `json:"has_custom_name"`
}

type ListArtifactsResponse struct {
	Items      []ArtifactResponse `json:"items"`
	Total      int                `json:"total"`
	PageSize   int                `json:"page_size"`
	NextOffset int                `json:"next_offset"`
}

type SourceDTO struct {
	Module    string `json:"module"`
	Attribute string `json:"attribute,omitempty"`
	Type      string `json:"type"`
}

type CreateArtifactVersionRequest struct {
	Version         string     `json:"version"`
	Type            string     `json:"type" binding:"required"`
	URI             string     `json:"uri"`
	UserID          *uuid.UUID `json:"user_id"`
	ArtifactStoreID *uuid.UUID `json:"artifact_store_id"`
	Materializer    *SourceDTO `json:"materializer"`
	DataType        *SourceDTO `json:"data_type"`
}

type ArtifactVersionResponse struct {
	ID              uuid.UUID  `json:"id"`
	CreatedAt       string     `json:"created_at"`
	UpdatedAt       string     `json:"updated_at"`
	ArtifactID      uuid.UUID  `json:"artifact_id"`
	WorkspaceID     uuid.UUID  `json:"workspace_id"`
	UserID          *uuid.UUID `json:"user_id"`
	ArtifactStoreID *uuid.UUID `json:"artifact_store_id"`
	Version         string     `json:"version"`
	VersionNumber   *int       `json:"version_number"`
	Type            string     `json:"type"`
	URI             string     `json:"uri"`
	Materializer    *SourceDTO `json:"materializer,omitempty"`
	DataType        *SourceDTO `json:"data_type,omitempty"`
}

type ListArtifactVersionsResponse struct {
	Items      []ArtifactVersionResponse `json:"items"`
	Total      int                       `json:"total"`
	PageSize   int                       `json:"page_size"`
	NextOffset int                       `json:"next_offset"`
}
