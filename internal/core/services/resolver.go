package services

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

// Resolver turns name-or-ID references into canonical entities. A structural
// UUID parse is attempted first (no I/O); on failure exactly one repository
// lookup runs within the given scope. Ambiguity reported by the store is
// propagated, never swallowed.
type Resolver struct {
	workspaces ports.WorkspaceRepository
	models     ports.ModelRepository
	versions   ports.ModelVersionRepository
	artifacts  ports.ArtifactRepository
	runs       ports.PipelineRunRepository
}

func NewResolver(
	workspaces ports.WorkspaceRepository,
	models ports.ModelRepository,
	versions ports.ModelVersionRepository,
	artifacts ports.ArtifactRepository,
	runs ports.PipelineRunRepository,
) *Resolver {
	return &Resolver{
		workspaces: workspaces,
		models:     models,
		versions:   versions,
		artifacts:  artifacts,
		runs:       runs,
	}
}

func (r *Resolver) Workspace(ctx context.Context, ref string) (*domain.Workspace, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return r.workspaces.GetByID(ctx, id)
	}
	return r.workspaces.GetByName(ctx, ref)
}

func (r *Resolver) Model(ctx context.Context, workspaceID uuid.UUID, ref string) (*domain.Model, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return r.models.GetByID(ctx, workspaceID, id)
	}
	return r.models.GetByName(ctx, workspaceID, ref)
}

// ModelVersion resolves a version reference within one model. References are
// tried structurally, cheapest first: a UUID, the literal "latest", a stage
// name, a decimal version number, and finally a version name. Each path costs
// at most one repository lookup.
func (r *Resolver) ModelVersion(ctx context.Context, workspaceID uuid.UUID, modelID uuid.UUID, ref string) (*domain.ModelVersion, error) {
	if id, err := uuid.Parse(ref); err == nil {
		mv, err := r.versions.GetByID(ctx, workspaceID, id)
		if err != nil {
			return nil, err
		}
		if mv.ModelID != modelID {
			return nil, domain.ErrModelVersionNotFound
		}
		return mv, nil
	}
	if ref == string(domain.StageLatest) {
		return r.versions.GetLatest(ctx, modelID)
	}
	if stage, err := domain.ParseStage(ref); err == nil {
		return r.versions.GetByStage(ctx, modelID, stage)
	}
	if number, err := strconv.Atoi(ref); err == nil {
		return r.versions.GetByNumber(ctx, modelID, number)
	}
	return r.versions.GetByName(ctx, modelID, ref)
}

func (r *Resolver) Artifact(ctx context.Context, workspaceID uuid.UUID, ref string) (*domain.Artifact, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return r.artifacts.GetByID(ctx, workspaceID, id)
	}
	return r.artifacts.GetByName(ctx, workspaceID, ref)
}

func (r *Resolver) PipelineRun(ctx context.Context, workspaceID uuid.UUID, ref string) (*domain.PipelineRun, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return r.runs.GetByID(ctx, workspaceID, id)
	}
	return r.runs.GetByName(ctx, workspaceID, ref)
}
