package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type ModelService struct {
	repo ports.ModelRepository
}

func NewModelService(repo ports.ModelRepository) *ModelService {
	return &ModelService{repo: repo}
}

func (s *ModelService) Create(ctx context.Context, workspaceID uuid.UUID, userID *uuid.UUID, name, description, license, audience, useCases, limitations, tradeOffs, ethics string) (*domain.Model, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now()
	model := &domain.Model{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		WorkspaceID: workspaceID,
		UserID:      userID,
		Name:        name,
		Description: description,
		License:     license,
		Audience:    audience,
		UseCases:    useCases,
		Limitations: limitations,
		TradeOffs:   tradeOffs,
		Ethics:      ethics,
	}
	if err := s.repo.Create(ctx, model); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, workspaceID, model.ID)
}

func (s *ModelService) Get(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Model, error) {
	return s.repo.GetByID(ctx, workspaceID, id)
}

func (s *ModelService) List(ctx context.Context, filter ports.ModelFilter) ([]*domain.Model, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}

func (s *ModelService) Update(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID, updates map[string]interface{}) (*domain.Model, error) {
	model, err := s.repo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if v, ok := updates["name"]; ok && v != nil {
		model.Name = v.(string)
	}
	if v, ok := updates["description"]; ok && v != nil {
		model.Description = v.(string)
	}
	if v, ok := updates["license"]; ok && v != nil {
		model.License = v.(string)
	}
	if v, ok := updates["audience"]; ok && v != nil {
		model.Audience = v.(string)
	}
	if v, ok := updates["use_cases"]; ok && v != nil {
		model.UseCases = v.(string)
	}
	if v, ok := updates["limitations"]; ok && v != nil {
		model.Limitations = v.(string)
	}
	if v, ok := updates["trade_offs"]; ok && v != nil {
		model.TradeOffs = v.(string)
	}
	if v, ok := updates["ethics"]; ok && v != nil {
		model.Ethics = v.(string)
	}

	if err := s.repo.Update(ctx, model); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, workspaceID, id)
}

func (s *ModelService) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	return s.repo.Delete(ctx, workspaceID, id)
}
