package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type PipelineService struct {
	repo           ports.PipelineRepository
	runRepo        ports.PipelineRunRepository
	deploymentRepo ports.DeploymentRepository
	stepRepo       ports.StepRunRepository
}

func NewPipelineService(
	repo ports.PipelineRepository,
	runRepo ports.PipelineRunRepository,
	deploymentRepo ports.DeploymentRepository,
	stepRepo ports.StepRunRepository,
) *PipelineService {
	return &PipelineService{
		repo:           repo,
		runRepo:        runRepo,
		deploymentRepo: deploymentRepo,
		stepRepo:       stepRepo,
	}
}

func (s *PipelineService) Create(ctx context.Context, workspaceID uuid.UUID, name, description string) (*domain.Pipeline, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now()
	p := &domain.Pipeline{
		ID:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PipelineService) List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.Pipeline, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, workspaceID, limit, offset)
}

func (s *PipelineService) CreateDeployment(ctx context.Context, workspaceID uuid.UUID, pipelineID *uuid.UUID, stepConfigurations string) (*domain.PipelineDeployment, error) {
	if pipelineID != nil {
		if _, err := s.repo.GetByID(ctx, workspaceID, *pipelineID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	d := &domain.PipelineDeployment{
		ID:                 uuid.New(),
		CreatedAt:          now,
		UpdatedAt:          now,
		WorkspaceID:        workspaceID,
		PipelineID:         pipelineID,
		StepConfigurations: stepConfigurations,
	}
	if err := s.deploymentRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PipelineService) ListDeployments(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.PipelineDeployment, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.deploymentRepo.List(ctx, workspaceID, limit, offset)
}

func (s *PipelineService) CreateRun(ctx context.Context, workspaceID uuid.UUID, pipelineID, deploymentID *uuid.UUID, orchestratorRunID *string, name string, status domain.RunStatus) (*domain.PipelineRun, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if deploymentID != nil {
		if _, err := s.deploymentRepo.GetByID(ctx, workspaceID, *deploymentID); err != nil {
			return nil, err
		}
	}
	if status == "" {
		status = domain.RunStatusInitializing
	}

	now := time.Now()
	run := &domain.PipelineRun{
		ID:                uuid.New(),
		CreatedAt:         now,
		UpdatedAt:         now,
		WorkspaceID:       workspaceID,
		PipelineID:        pipelineID,
		DeploymentID:      deploymentID,
		OrchestratorRunID: orchestratorRunID,
		Name:              name,
		Status:            status,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *PipelineService) GetRun(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.PipelineRun, error) {
	return s.runRepo.GetByID(ctx, workspaceID, id)
}

func (s *PipelineService) ListRuns(ctx context.Context, filter ports.RunFilter) ([]*domain.PipelineRun, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.runRepo.List(ctx, filter)
}

func (s *PipelineService) CreateStepRun(ctx context.Context, workspaceID uuid.UUID, runID uuid.UUID, name string, status domain.RunStatus, stepConfiguration string) (*domain.StepRun, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if _, err := s.runRepo.GetByID(ctx, workspaceID, runID); err != nil {
		return nil, err
	}
	if status == "" {
		status = domain.RunStatusRunning
	}

	now := time.Now()
	step := &domain.StepRun{
		ID:                uuid.New(),
		CreatedAt:         now,
		UpdatedAt:         now,
		PipelineRunID:     runID,
		Name:              name,
		Status:            status,
		StepConfiguration: stepConfiguration,
	}
	if err := s.stepRepo.Create(ctx, step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *PipelineService) ListStepRuns(ctx context.Context, workspaceID uuid.UUID, runID uuid.UUID) ([]*domain.StepRun, error) {
	if _, err := s.runRepo.GetByID(ctx, workspaceID, runID); err != nil {
		return nil, err
	}
	return s.stepRepo.ListByRun(ctx, runID)
}
