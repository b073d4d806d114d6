package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type artifactVersionRepo struct {
	pool *pgxpool.Pool
}

func NewArtifactVersionRepository(pool *pgxpool.Pool) ports.ArtifactVersionRepository {
	return &artifactVersionRepo{pool: pool}
}

const artifactVersionColumns = `
	av.id, av.created_at, av.updated_at, av.artifact_id, av.workspace_id,
	av.user_id, av.artifact_store_id, av.version, av.version_number,
	av.type, av.uri, COALESCE(av.materializer, ''), COALESCE(av.data_type, '')
`

var artifactVersionSortColumns = map[string]string{
	"version":        "av.version",
	"version_number": "av.version_number",
	"created_at":     "av.created_at",
	"updated_at":     "av.updated_at",
}

// Create inserts a version. When no label was supplied the next integer is
// assigned under a lock on the parent artifact row, so concurrent creations
// serialize per artifact.
func (r *artifactVersionRepo) Create(ctx context.Context, version *domain.ArtifactVersion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create artifact version: %w", err)
	}
	defer tx.Rollback(ctx)

	var artifactID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM artifact WHERE id = $1 FOR UPDATE`,
		version.ArtifactID,
	).Scan(&artifactID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrArtifactNotFound
		}
		return fmt.Errorf("lock artifact row: %w", err)
	}

	if version.Version == "" {
		var number int
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(version_number), 0) + 1 FROM artifact_version WHERE artifact_id = $1`,
			version.ArtifactID,
		).Scan(&number)
		if err != nil {
			return fmt.Errorf("next artifact version number: %w", err)
		}
		version.SetVersion(strconv.Itoa(number))
	}

	query := `
		INSERT INTO artifact_version
			(id, created_at, updated_at, artifact_id, workspace_id, user_id,
			 artifact_store_id, version, version_number, type, uri,
			 materializer, data_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	_, err = tx.Exec(ctx, query,
		version.ID, version.CreatedAt, version.UpdatedAt,
		version.ArtifactID, version.WorkspaceID, version.UserID,
		version.ArtifactStoreID, version.Version, version.VersionNumber,
		string(version.Type), version.URI,
		version.Materializer.Encode(), version.DataType.Encode(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrArtifactVersionConflict
		}
		return fmt.Errorf("create artifact version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create artifact version: %w", err)
	}
	return nil
}

func (r *artifactVersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ArtifactVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM artifact_version av
		WHERE av.id = $1
	`, artifactVersionColumns)
	v, err := scanArtifactVersion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactVersionNotFound
		}
		return nil, fmt.Errorf("get artifact version by id: %w", err)
	}
	return v, nil
}

func (r *artifactVersionRepo) GetByVersion(ctx context.Context, artifactID uuid.UUID, label string) (*domain.ArtifactVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM artifact_version av
		WHERE av.artifact_id = $1 AND av.version = $2
	`, artifactVersionColumns)
	v, err := scanArtifactVersion(r.pool.QueryRow(ctx, query, artifactID, label))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArtifactVersionNotFound
		}
		return nil, fmt.Errorf("get artifact version by label: %w", err)
	}
	return v, nil
}

func (r *artifactVersionRepo) ListLabels(ctx context.Context, artifactID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT version FROM artifact_version WHERE artifact_id = $1`, artifactID)
	if err != nil {
		return nil, fmt.Errorf("list artifact version labels: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan version label: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate version labels: %w", err)
	}
	return labels, nil
}

func (r *artifactVersionRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.ArtifactVersion, error) {
	if len(ids) == 0 {
		return []*domain.ArtifactVersion{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM artifact_version av
		WHERE av.id = ANY($1)
	`, artifactVersionColumns)
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list artifact versions by ids: %w", err)
	}
	defer rows.Close()

	var versions []*domain.ArtifactVersion
	for rows.Next() {
		v, err := scanArtifactVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artifact version row: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifact version rows: %w", err)
	}
	return versions, nil
}

func (r *artifactVersionRepo) List(ctx context.Context, filter ports.ArtifactVersionFilter) ([]*domain.ArtifactVersion, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.WorkspaceID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("av.workspace_id = $%d", argPos))
		args = append(args, filter.WorkspaceID)
		argPos++
	}
	if filter.ArtifactID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("av.artifact_id = $%d", argPos))
		args = append(args, filter.ArtifactID)
		argPos++
	}
	if filter.Version != "" {
		conditions = append(conditions, fmt.Sprintf("av.version = $%d", argPos))
		args = append(args, filter.Version)
		argPos++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("av.type = $%d", argPos))
		args = append(args, filter.Type)
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM artifact_version av WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count artifact versions: %w", err)
	}

	orderBy := "av.created_at DESC"
	if col, ok := artifactVersionSortColumns[filter.SortBy]; ok {
		dir := "DESC"
		if filter.Order == "asc" {
			dir = "ASC"
		}
		orderBy = fmt.Sprintf("%s %s", col, dir)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM artifact_version av
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, artifactVersionColumns, whereClause, orderBy, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list artifact versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.ArtifactVersion
	for rows.Next() {
		v, err := scanArtifactVersion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan artifact version row: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate artifact version rows: %w", err)
	}
	return versions, total, nil
}

func scanArtifactVersion(row pgx.Row) (*domain.ArtifactVersion, error) {
	v := &domain.ArtifactVersion{}
	var artifactType, materializer, dataType string
	err := row.Scan(
		&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.ArtifactID, &v.WorkspaceID,
		&v.UserID, &v.ArtifactStoreID, &v.Version, &v.VersionNumber,
		&artifactType, &v.URI, &materializer, &dataType,
	)
	if err != nil {
		return nil, err
	}
	v.Type = domain.ArtifactType(artifactType)
	v.Materializer = domain.ParseSource(materializer)
	v.DataType = domain.ParseSource(dataType)
	return v, nil
}
