package dto

import "github.com/google/uuid"

type CreateModelVersionRequest struct {
	Name        string     `json:"name" binding:"max=100"`
	UserID      *uuid.UUID `json:"user_id"`
	Description string     `json:"description"`
}

// UpdateModelVersionRequest patches a version. When Stage is present the
// lifecycle transition runs; Force archives an incumbent instead of failing.
type UpdateModelVersionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Stage       *string `json:"stage"`
	Force       bool    `json:"force"`
}

type LinkArtifactRequest struct {
	Kind              string    `json:"kind" binding:"required"`
	Name              string    `json:"name" binding:"required"`
	VersionLabel      string    `json:"version_label"`
	ArtifactVersionID uuid.UUID `json:"artifact_version_id" binding:"required"`
}

type LinkRunRequest struct {
	Name          string    `json:"name" binding:"required"`
	PipelineRunID uuid.UUID `json:"pipeline_run_id" binding:"required"`
}

type ModelVersionMetadataResponse struct {
	Description   string `json:"description"`
	WorkspaceName string `json:"workspace_name"`
	ModelName     string `json:"model_name"`
}

type ModelVersionResponse struct {
	ID          uuid.UUID  `json:"id"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	ModelID     uuid.UUID  `json:"model_id"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	UserID      *uuid.UUID `json:"user_id"`
	Number      int        `json:"number"`
	Name        string     `json:"name"`
	Stage       string     `json:"stage"`

	ModelArtifactIDs    map[string]map[string]uuid.UUID `json:"model_artifact_ids"`
	DataArtifactIDs     map[string]map[string]uuid.UUID `json:"data_artifact_ids"`
	EndpointArtifactIDs map[string]map[string]uuid.UUID `json:"endpoint_artifact_ids"`
	PipelineRunIDs      map[string]uuid.UUID            `json:"pipeline_run_ids"`

	Metadata *ModelVersionMetadataResponse `json:"metadata,omitempty"`
}

type ListModelVersionsResponse struct {
	Items      []ModelVersionResponse `json:"items"`
	Total      int                    `json:"total"`
	PageSize   int                    `json:"page_size"`
	NextOffset int                    `json:"next_offset"`
}

type ArtifactLinkResponse struct {
	ID                uuid.UUID `json:"id"`
	ModelVersionID    uuid.UUID `json:"model_version_id"`
	ArtifactVersionID uuid.UUID `json:"artifact_version_id"`
	Kind              string    `json:"kind"`
	Name              string    `json:"name"`
	VersionLabel      string    `json:"version_label"`
}

type RunLinkResponse struct {
	ID             uuid.UUID `json:"id"`
	ModelVersionID uuid.UUID `json:"model_version_id"`
	PipelineRunID  uuid.UUID `json:"pipeline_run_id"`
	Name           string    `json:"name"`
}

// LineageResponse is the fully hydrated lineage of one model version: every
// link partition resolved to artifact version details plus the linked runs.
type LineageResponse struct {
	ModelVersionID    uuid.UUID                                         `json:"model_version_id"`
	ModelArtifacts    map[string]map[string]ArtifactVersionResponse     `json:"model_artifacts"`
	DataArtifacts     map[string]map[string]ArtifactVersionResponse     `json:"data_artifacts"`
	EndpointArtifacts map[string]map[string]ArtifactVersionResponse     `json:"endpoint_artifacts"`
	Runs              map[string]PipelineRunResponse                    `json:"runs"`
}
