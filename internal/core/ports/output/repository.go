package ports

import (
	"context"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
)

type ModelFilter struct {
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	Name        string
	Search      string
	SortBy      string
	Order       string
	Limit       int
	Offset      int
}

// ModelVersionFilter scopes version listing. ModelID is the injected parent
// scope applied on top of the generic workspace scoping.
type ModelVersionFilter struct {
	WorkspaceID uuid.UUID
	ModelID     uuid.UUID
	UserID      uuid.UUID
	Name        string
	Number      int
	Stage       string
	SortBy      string
	Order       string
	Limit       int
	Offset      int
}

type WorkspaceRepository interface {
	Create(ctx context.Context, ws *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	GetByName(ctx context.Context, name string) (*domain.Workspace, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Workspace, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ModelRepository interface {
	Create(ctx context.Context, model *domain.Model) error
	GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Model, error)
	GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Model, error)
	Update(ctx context.Context, model *domain.Model) error
	Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, filter ModelFilter) ([]*domain.Model, int, error)
}

type ModelVersionRepository interface {
	// Create assigns version.Number server-side (max existing + 1, serialized
	// per model by locking the parent row) and defaults version.Name to the
	// decimal rendering of the number when empty, inside one transaction.
	Create(ctx context.Context, version *domain.ModelVersion) error
	GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.ModelVersion, error)
	GetByName(ctx context.Context, modelID uuid.UUID, name string) (*domain.ModelVersion, error)
	GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error)
	GetByStage(ctx context.Context, modelID uuid.UUID, stage domain.Stage) (*domain.ModelVersion, error)
	GetLatest(ctx context.Context, modelID uuid.UUID) (*domain.ModelVersion, error)
	// SetStage runs the occupancy transition in one transaction: an incumbent
	// in an exclusive stage fails the call unless force is set, in which case
	// it is archived before the target version is promoted.
	SetStage(ctx context.Context, modelID uuid.UUID, versionID uuid.UUID, stage domain.Stage, force bool) error
	Update(ctx context.Context, version *domain.ModelVersion) error
	Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, filter ModelVersionFilter) ([]*domain.ModelVersion, int, error)
}
