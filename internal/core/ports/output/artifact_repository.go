package ports

import (
	"context"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
)

type ArtifactFilter struct {
	WorkspaceID   uuid.UUID
	Name          string
	HasCustomName *bool
	SortBy        string
	Order         string
	Limit         int
	Offset        int
}

type ArtifactVersionFilter struct {
	WorkspaceID uuid.UUID
	ArtifactID  uuid.UUID
	Version     string
	Type        string
	SortBy      string
	Order       string
	Limit       int
	Offset      int
}

type ArtifactRepository interface {
	Create(ctx context.Context, artifact *domain.Artifact) error
	GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Artifact, error)
	GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Artifact, error)
	Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, filter ArtifactFilter) ([]*domain.Artifact, int, error)
}

type ArtifactVersionRepository interface {
	// Create assigns the next numeric version (serialized per artifact by
	// locking the parent row) when version.Version is empty.
	Create(ctx context.Context, version *domain.ArtifactVersion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ArtifactVersion, error)
	GetByVersion(ctx context.Context, artifactID uuid.UUID, label string) (*domain.ArtifactVersion, error)
	// ListLabels returns every version label of one artifact; latest
	// resolution over them is a domain concern.
	ListLabels(ctx context.Context, artifactID uuid.UUID) ([]string, error)
	// ListByIDs batch-fetches versions, preserving no particular order.
	// Missing IDs are omitted, not errors.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.ArtifactVersion, error)
	List(ctx context.Context, filter ArtifactVersionFilter) ([]*domain.ArtifactVersion, int, error)
}
