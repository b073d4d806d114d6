package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type ModelVersionService struct {
	repo         ports.ModelVersionRepository
	modelRepo    ports.ModelRepository
	linkRepo     ports.LinkRepository
	artifactVers ports.ArtifactVersionRepository
	runRepo      ports.PipelineRunRepository
}

func NewModelVersionService(
	repo ports.ModelVersionRepository,
	modelRepo ports.ModelRepository,
	linkRepo ports.LinkRepository,
	artifactVers ports.ArtifactVersionRepository,
	runRepo ports.PipelineRunRepository,
) *ModelVersionService {
	return &ModelVersionService{
		repo:         repo,
		modelRepo:    modelRepo,
		linkRepo:     linkRepo,
		artifactVers: artifactVers,
		runRepo:      runRepo,
	}
}

// Create registers a new version of a model. The version number is never
// client-supplied: the repository assigns max existing + 1 inside the insert
// transaction and defaults the name to the number's decimal rendering.
func (s *ModelVersionService) Create(ctx context.Context, workspaceID uuid.UUID, modelID uuid.UUID, userID *uuid.UUID, name, description string) (*domain.ModelVersion, error) {
	// Verify parent model exists AND belongs to this workspace
	if _, err := s.modelRepo.GetByID(ctx, workspaceID, modelID); err != nil {
		return nil, err
	}

	now := time.Now()
	version := &domain.ModelVersion{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		ModelID:     modelID,
		WorkspaceID: workspaceID,
		UserID:      userID,
		Name:        name,
		Description: description,
		Stage:       domain.StageNone,
	}
	if err := s.repo.Create(ctx, version); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, workspaceID, version.ID)
}

func (s *ModelVersionService) Get(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.ModelVersion, error) {
	return s.repo.GetByID(ctx, workspaceID, id)
}

func (s *ModelVersionService) List(ctx context.Context, filter ports.ModelVersionFilter) ([]*domain.ModelVersion, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

// SetStage transitions a version into a deployment stage. An incumbent in an
// exclusive stage blocks the transition unless force is set, in which case
// the incumbent is archived in the same transaction as the promotion.
func (s *ModelVersionService) SetStage(ctx context.Context, workspaceID uuid.UUID, modelID uuid.UUID, versionID uuid.UUID, rawStage string, force bool) (*domain.ModelVersion, error) {
	stage, err := domain.ParseStage(rawStage)
	if err != nil {
		return nil, err
	}
	if !stage.Assignable() {
		return nil, domain.ErrInvalidStage
	}
	if err := s.repo.SetStage(ctx, modelID, versionID, stage, force); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, workspaceID, versionID)
}

func (s *ModelVersionService) Update(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID, updates map[string]interface{}) (*domain.ModelVersion, error) {
	version, err := s.repo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["name"]; ok && v != nil {
		version.Name = v.(string)
	}
	if v, ok := updates["description"]; ok && v != nil {
		version.Description = v.(string)
	}

	if err := s.repo.Update(ctx, version); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, workspaceID, id)
}

func (s *ModelVersionService) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	return s.repo.Delete(ctx, workspaceID, id)
}

// LinkArtifact records one link index entry for a version. The target
// artifact version must exist; re-linking an existing (kind, name, label)
// key to the same target is an idempotent success.
func (s *ModelVersionService) LinkArtifact(ctx context.Context, modelVersionID uuid.UUID, rawKind, name, versionLabel string, artifactVersionID uuid.UUID) (*domain.ArtifactLink, error) {
	kind, err := domain.ParseLinkKind(rawKind)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	av, err := s.artifactVers.GetByID(ctx, artifactVersionID)
	if err != nil {
		return nil, err
	}
	if versionLabel == "" {
		versionLabel = av.Version
	}

	link := &domain.ArtifactLink{
		ID:                uuid.New(),
		ModelVersionID:    modelVersionID,
		ArtifactVersionID: artifactVersionID,
		Kind:              kind,
		Name:              name,
		VersionLabel:      versionLabel,
	}
	if err := s.linkRepo.LinkArtifact(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// LinkRun associates a pipeline run with a version under a unique name.
func (s *ModelVersionService) LinkRun(ctx context.Context, workspaceID uuid.UUID, modelVersionID uuid.UUID, name string, runID uuid.UUID) (*domain.RunLink, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if _, err := s.runRepo.GetByID(ctx, workspaceID, runID); err != nil {
		return nil, err
	}

	link := &domain.RunLink{
		ID:             uuid.New(),
		ModelVersionID: modelVersionID,
		PipelineRunID:  runID,
		Name:           name,
	}
	if err := s.linkRepo.LinkRun(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}
