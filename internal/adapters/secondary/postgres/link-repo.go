package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type linkRepo struct {
	pool *pgxpool.Pool
}

func NewLinkRepository(pool *pgxpool.Pool) ports.LinkRepository {
	return &linkRepo{pool: pool}
}

// LinkArtifact inserts one link index entry. ON CONFLICT DO NOTHING keeps
// the insert race-free; when the key already existed the stored target is
// compared so a re-link to the same artifact version is an idempotent
// success and a divergent one a conflict. A written mapping is never
// rebound.
func (r *linkRepo) LinkArtifact(ctx context.Context, link *domain.ArtifactLink) error {
	query := `
		INSERT INTO model_version_artifact
			(id, model_version_id, artifact_version_id, link_type, name, version_label)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (model_version_id, link_type, name, version_label) DO NOTHING
	`
	result, err := r.pool.Exec(ctx, query,
		link.ID, link.ModelVersionID, link.ArtifactVersionID,
		string(link.Kind), link.Name, link.VersionLabel,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrModelVersionNotFound
		}
		return fmt.Errorf("link artifact: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var existingID, existingTarget uuid.UUID
	err = r.pool.QueryRow(ctx, `
		SELECT id, artifact_version_id FROM model_version_artifact
		WHERE model_version_id = $1 AND link_type = $2 AND name = $3 AND version_label = $4
	`, link.ModelVersionID, string(link.Kind), link.Name, link.VersionLabel).
		Scan(&existingID, &existingTarget)
	if err != nil {
		return fmt.Errorf("inspect existing artifact link: %w", err)
	}
	if existingTarget != link.ArtifactVersionID {
		return domain.ErrLinkConflict
	}
	link.ID = existingID
	return nil
}

// LinkRun behaves like LinkArtifact for the run link collection.
func (r *linkRepo) LinkRun(ctx context.Context, link *domain.RunLink) error {
	query := `
		INSERT INTO model_version_run (id, model_version_id, pipeline_run_id, name)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (model_version_id, name) DO NOTHING
	`
	result, err := r.pool.Exec(ctx, query,
		link.ID, link.ModelVersionID, link.PipelineRunID, link.Name,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrModelVersionNotFound
		}
		return fmt.Errorf("link run: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var existingID, existingRun uuid.UUID
	err = r.pool.QueryRow(ctx, `
		SELECT id, pipeline_run_id FROM model_version_run
		WHERE model_version_id = $1 AND name = $2
	`, link.ModelVersionID, link.Name).Scan(&existingID, &existingRun)
	if err != nil {
		return fmt.Errorf("inspect existing run link: %w", err)
	}
	if existingRun != link.PipelineRunID {
		return domain.ErrRunLinkConflict
	}
	link.ID = existingID
	return nil
}

func (r *linkRepo) LoadLinks(ctx context.Context, modelVersionID uuid.UUID) (domain.LinkCollections, error) {
	links := domain.NewLinkCollections()

	rows, err := r.pool.Query(ctx, `
		SELECT link_type, name, version_label, artifact_version_id
		FROM model_version_artifact
		WHERE model_version_id = $1
	`, modelVersionID)
	if err != nil {
		return links, fmt.Errorf("load artifact links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawKind, name, label string
			target               uuid.UUID
		)
		if err := rows.Scan(&rawKind, &name, &label, &target); err != nil {
			return links, fmt.Errorf("scan artifact link row: %w", err)
		}
		kind, err := domain.ParseLinkKind(rawKind)
		if err != nil {
			return links, fmt.Errorf("artifact link %s/%s: %w", name, label, err)
		}
		if err := links.Insert(kind, name, label, target); err != nil {
			return links, err
		}
	}
	if err := rows.Err(); err != nil {
		return links, fmt.Errorf("iterate artifact link rows: %w", err)
	}
	return links, nil
}

func (r *linkRepo) LoadRuns(ctx context.Context, modelVersionID uuid.UUID) (map[string]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, pipeline_run_id
		FROM model_version_run
		WHERE model_version_id = $1
	`, modelVersionID)
	if err != nil {
		return nil, fmt.Errorf("load run links: %w", err)
	}
	defer rows.Close()

	runs := map[string]uuid.UUID{}
	for rows.Next() {
		var (
			name  string
			runID uuid.UUID
		)
		if err := rows.Scan(&name, &runID); err != nil {
			return nil, fmt.Errorf("scan run link row: %w", err)
		}
		runs[name] = runID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run link rows: %w", err)
	}
	return runs, nil
}
