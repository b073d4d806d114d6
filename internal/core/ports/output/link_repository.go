package ports

import (
	"context"

	"github.com/google/uuid"

	"ml-metadata-service/internal/core/domain"
)

// LinkRepository persists the artifact link index and the run links of model
// versions. Inserts are additive: re-linking an existing key to the same
// target is an idempotent success, to a different target a conflict.
type LinkRepository interface {
	LinkArtifact(ctx context.Context, link *domain.ArtifactLink) error
	LinkRun(ctx context.Context, link *domain.RunLink) error
	LoadLinks(ctx context.Context, modelVersionID uuid.UUID) (domain.LinkCollections, error)
	LoadRuns(ctx context.Context, modelVersionID uuid.UUID) (map[string]uuid.UUID, error)
}
