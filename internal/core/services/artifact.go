package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type ArtifactService struct {
	repo        ports.ArtifactRepository
	versionRepo ports.ArtifactVersionRepository
}

func NewArtifactService(repo ports.ArtifactRepository, versionRepo ports.ArtifactVersionRepository) *ArtifactService {
	return &ArtifactService{repo: repo, versionRepo: versionRepo}
}

func (s *ArtifactService) Create(ctx context.Context, workspaceID uuid.UUID, name string, hasCustomName bool) (*domain.Artifact, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now()
	artifact := &domain.Artifact{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		WorkspaceID:   workspaceID,
		Name:          name,
		HasCustomName: hasCustomName,
	}
	if err := s.repo.Create(ctx, artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

func (s *ArtifactService) Get(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Artifact, error) {
	return s.repo.GetByID(ctx, workspaceID, id)
}

func (s *ArtifactService) List(ctx context.Context, filter ports.ArtifactFilter) ([]*domain.Artifact, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

func (s *ArtifactService) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	return s.repo.Delete(ctx, workspaceID, id)
}

// CreateVersion registers a new version of an artifact. A client-supplied
// label is taken as-is (conflicting labels fail); an empty label makes the
// repository assign the next integer, serialized per artifact.
func (s *ArtifactService) CreateVersion(ctx context.Context, workspaceID uuid.UUID, artifactID uuid.UUID, userID, artifactStoreID *uuid.UUID, label, rawType, uri string, materializer, dataType domain.Source) (*domain.ArtifactVersion, error) {
	if _, err := s.repo.GetByID(ctx, workspaceID, artifactID); err != nil {
		return nil, err
	}
	artifactType, err := domain.ParseArtifactType(rawType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	version := &domain.ArtifactVersion{
		ID:              uuid.New(),
		CreatedAt:       now,
		UpdatedAt:       now,
		ArtifactID:      artifactID,
		WorkspaceID:     workspaceID,
		UserID:          userID,
		ArtifactStoreID: artifactStoreID,
		Type:            artifactType,
		URI:             uri,
		Materializer:    materializer,
		DataType:        dataType,
	}
	version.SetVersion(label)
	if err := s.versionRepo.Create(ctx, version); err != nil {
		return nil, err
	}
	return version, nil
}

// GetVersion resolves a version label within one artifact. The literal
// "latest" or an empty label selects the maximum label under the collection
// ordering rule (numeric when every label parses as an integer, lexical
// otherwise).
func (s *ArtifactService) GetVersion(ctx context.Context, workspaceID uuid.UUID, artifactID uuid.UUID, label string) (*domain.ArtifactVersion, error) {
	if _, err := s.repo.GetByID(ctx, workspaceID, artifactID); err != nil {
		return nil, err
	}
	if label == "" || label == string(domain.StageLatest) {
		labels, err := s.versionRepo.ListLabels(ctx, artifactID)
		if err != nil {
			return nil, err
		}
		latest, ok := domain.LatestVersionLabel(labels)
		if !ok {
			return nil, domain.ErrArtifactVersionNotFound
		}
		label = latest
	}
	return s.versionRepo.GetByVersion(ctx, artifactID, label)
}

func (s *ArtifactService) ListVersions(ctx context.Context, filter ports.ArtifactVersionFilter) ([]*domain.ArtifactVersion, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.versionRepo.List(ctx, filter)
}
