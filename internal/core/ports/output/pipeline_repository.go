package ports

import (
	"context"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
)

type RunFilter struct {
	WorkspaceID  uuid.UUID
	PipelineID   uuid.UUID
	DeploymentID uuid.UUID
	Status       string
	SortBy       string
	Order        string
	Limit        int
	Offset       int
}

type PipelineRepository interface {
	Create(ctx context.Context, p *domain.Pipeline) error
	GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Pipeline, error)
	GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Pipeline, error)
	List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.Pipeline, int, error)
}

type PipelineRunRepository interface {
	Create(ctx context.Context, run *domain.PipelineRun) error
	GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.PipelineRun, error)
	GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.PipelineRun, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.PipelineRun, error)
	List(ctx context.Context, filter RunFilter) ([]*domain.PipelineRun, int, error)
}

type DeploymentRepository interface {
	Create(ctx context.Context, d *domain.PipelineDeployment) error
	GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.PipelineDeployment, error)
	List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.PipelineDeployment, int, error)
}

type StepRunRepository interface {
	Create(ctx context.Context, s *domain.StepRun) error
	ListByRun(ctx context.Context, runID uuid.UUID) ([]*domain.StepRun, error)
}
