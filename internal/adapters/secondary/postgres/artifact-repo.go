package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type artifactRepo struct {
	pool *pgxpool.Pool
}

func NewArtifactRepository(pool *pgxpool.Pool) ports.ArtifactRepository {
	return &artifactRepo{pool: pool}
}

var artifactSortColumns = map[string]string{
	"name":       "a.name",
	"created_at": "a.created_at",
	"updated_at": "a.updated_at",
}

func (r *artifactRepo) Create(ctx context.Context, artifact *domain.Artifact) error {
	query := `
		INSERT INTO artifact (id, created_at, updated_at, workspace_id, name, has_custom_name)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err := r.pool.Exec(ctx, query,
		artifact.ID, artifact.CreatedAt, artifact.UpdatedAt,
		artifact.WorkspaceID, artifact.Name, artifact.HasCustomName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrArtifactNameConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrWorkspaceNotFound
		}
		return fmt.Errorf("create artifact: %w", err)
	}
	return nil
}

func (r *artifactRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Artifact, error) {
	query := `
		SELECT a.id, a.created_at, a.updated_at, a.workspace_id, a.name, a.has_custom_name
		FROM artifact a
		WHERE a.id = $1 AND a.workspace_id = $2
	`
	artifact, err := scanArtifact(r.pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("get artifact by id: %w", err)
	}
	return artifact, nil
}

func (r *artifactRepo) GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Artifact, error) {
	query := `
		SELECT a.id, a.created_at, a.updated_at, a.workspace_id, a.name, a.has_custom_name
		FROM artifact a
		WHERE a.name = $1 AND a.workspace_id = $2
	`
	artifact, err := scanArtifact(r.pool.QueryRow(ctx, query, name, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("get artifact by name: %w", err)
	}
	return artifact, nil
}

func (r *artifactRepo) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM artifact WHERE id = $1 AND workspace_id = $2`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrArtifactNotFound
	}
	return nil
}

func (r *artifactRepo) List(ctx context.Context, filter ports.ArtifactFilter) ([]*domain.Artifact, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.WorkspaceID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("a.workspace_id = $%d", argPos))
		args = append(args, filter.WorkspaceID)
		argPos++
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("a.name = $%d", argPos))
		args = append(args, filter.Name)
		argPos++
	}
	if filter.HasCustomName != nil {
		conditions = append(conditions, fmt.Sprintf("a.has_custom_name = $%d", argPos))
		args = append(args, *filter.HasCustomName)
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM artifact a WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count artifacts: %w", err)
	}

	orderBy := "a.created_at DESC"
	if col, ok := artifactSortColumns[filter.SortBy]; ok {
		dir := "DESC"
		if filter.Order == "asc" {
			dir = "ASC"
		}
		orderBy = fmt.Sprintf("%s %s", col, dir)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.created_at, a.updated_at, a.workspace_id, a.name, a.has_custom_name
		FROM artifact a
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*domain.Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan artifact row: %w", err)
		}
		artifacts = append(artifacts, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate artifact rows: %w", err)
	}
	return artifacts, total, nil
}

func scanArtifact(row pgx.Row) (*domain.Artifact, error) {
	a := &domain.Artifact{}
	err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.WorkspaceID, &a.Name, &a.HasCustomName)
	if err != nil {
		return nil, err
	}
	return a, nil
}
