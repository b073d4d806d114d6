package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type WorkspaceService struct {
	repo ports.WorkspaceRepository
}

func NewWorkspaceService(repo ports.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{repo: repo}
}

func (s *WorkspaceService) Create(ctx context.Context, name, description string) (*domain.Workspace, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now()
	ws := &domain.Workspace{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        name,
		Description: description,
	}
	if err := s.repo.Create(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *WorkspaceService) Get(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *WorkspaceService) List(ctx context.Context, limit, offset int) ([]*domain.Workspace, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *WorkspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
