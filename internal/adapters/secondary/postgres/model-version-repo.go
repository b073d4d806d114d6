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

type modelVersionRepo struct {
	pool *pgxpool.Pool
}

func NewModelVersionRepository(pool *pgxpool.Pool) ports.ModelVersionRepository {
	return &modelVersionRepo{pool: pool}
}

const modelVersionColumns = `
	mv.id, mv.created_at, mv.updated_at, mv.model_id, mv.workspace_id,
	mv.user_id, mv.number, mv.name, mv.description, mv.stage
`

var modelVersionSortColumns = map[string]string{
	"number":     "mv.number",
	"name":       "mv.name",
	"stage":      "mv.stage",
	"created_at": "mv.created_at",
	"updated_at": "mv.updated_at",
}

// Create inserts a version with a server-assigned number. The parent model
// row is locked for the duration of the transaction so concurrent creations
// for the same model serialize and never reuse a number.
func (r *modelVersionRepo) Create(ctx context.Context, version *domain.ModelVersion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create model version: %w", err)
	}
	defer tx.Rollback(ctx)

	var modelID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM model WHERE id = $1 FOR UPDATE`,
		version.ModelID,
	).Scan(&modelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrModelNotFound
		}
		return fmt.Errorf("lock model row: %w", err)
	}

	var number int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(number), 0) + 1 FROM model_version WHERE model_id = $1`,
		version.ModelID,
	).Scan(&number)
	if err != nil {
		return fmt.Errorf("next version number: %w", err)
	}
	version.Number = number
	if version.Name == "" {
		version.Name = strconv.Itoa(number)
	}

	query := `
		INSERT INTO model_version
			(id, created_at, updated_at, model_id, workspace_id, user_id,
			 number, name, description, stage)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err = tx.Exec(ctx, query,
		version.ID, version.CreatedAt, version.UpdatedAt,
		version.ModelID, version.WorkspaceID, version.UserID,
		version.Number, version.Name, version.Description, string(version.Stage),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionNameConflict
		}
		return fmt.Errorf("create model version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create model version: %w", err)
	}
	return nil
}

func (r *modelVersionRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE mv.id = $1 AND mv.workspace_id = $2
	`, modelVersionColumns)
	v, err := scanModelVersion(r.pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelVersionNotFound
		}
		return nil, fmt.Errorf("get model version by id: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) GetByName(ctx context.Context, modelID uuid.UUID, name string) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE mv.model_id = $1 AND mv.name = $2
	`, modelVersionColumns)
	v, err := scanModelVersion(r.pool.QueryRow(ctx, query, modelID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelVersionNotFound
		}
		return nil, fmt.Errorf("get model version by name: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE mv.model_id = $1 AND mv.number = $2
	`, modelVersionColumns)
	v, err := scanModelVersion(r.pool.QueryRow(ctx, query, modelID, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelVersionNotFound
		}
		return nil, fmt.Errorf("get model version by number: %w", err)
	}
	return v, nil
}

// GetByStage answers stage references. More than one match means the
// occupancy invariant is broken for this model; that is surfaced, not
// papered over with LIMIT 1.
func (r *modelVersionRepo) GetByStage(ctx context.Context, modelID uuid.UUID, stage domain.Stage) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE mv.model_id = $1 AND mv.stage = $2
	`, modelVersionColumns)
	rows, err := r.pool.Query(ctx, query, modelID, string(stage))
	if err != nil {
		return nil, fmt.Errorf("get model version by stage: %w", err)
	}
	defer rows.Close()

	var matches []*domain.ModelVersion
	for rows.Next() {
		v, err := scanModelVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan model version row: %w", err)
		}
		matches = append(matches, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate model version rows: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, domain.ErrModelVersionNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, domain.ErrAmbiguousReference
	}
}

func (r *modelVersionRepo) GetLatest(ctx context.Context, modelID uuid.UUID) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE mv.model_id = $1
		ORDER BY mv.number DESC
		LIMIT 1
	`, modelVersionColumns)
	v, err := scanModelVersion(r.pool.QueryRow(ctx, query, modelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelVersionNotFound
		}
		return nil, fmt.Errorf("get latest model version: %w", err)
	}
	return v, nil
}

// SetStage runs the occupancy transition atomically. The incumbent row is
// locked before inspection; archiving it and promoting the target either
// both happen or neither does.
func (r *modelVersionRepo) SetStage(ctx context.Context, modelID uuid.UUID, versionID uuid.UUID, stage domain.Stage, force bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set stage: %w", err)
	}
	defer tx.Rollback(ctx)

	if stage.Exclusive() {
		var incumbentID uuid.UUID
		err = tx.QueryRow(ctx, `
			SELECT id FROM model_version
			WHERE model_id = $1 AND stage = $2 AND id <> $3
			FOR UPDATE
		`, modelID, string(stage), versionID).Scan(&incumbentID)
		switch {
		case err == nil:
			if !force {
				return domain.ErrStageOccupied
			}
			if _, err := tx.Exec(ctx, `
				UPDATE model_version SET stage = $1, updated_at = NOW() WHERE id = $2
			`, string(domain.StageArchived), incumbentID); err != nil {
				return fmt.Errorf("archive incumbent: %w", err)
			}
		case errors.Is(err, pgx.ErrNoRows):
			// stage is free
		default:
			return fmt.Errorf("find incumbent: %w", err)
		}
	}

	result, err := tx.Exec(ctx, `
		UPDATE model_version SET stage = $1, updated_at = NOW()
		WHERE id = $2 AND model_id = $3
	`, string(stage), versionID, modelID)
	if err != nil {
		return fmt.Errorf("assign stage: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelVersionNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set stage: %w", err)
	}
	return nil
}

func (r *modelVersionRepo) Update(ctx context.Context, version *domain.ModelVersion) error {
	query := `
		UPDATE model_version
		SET name=$1, description=$2, updated_at=NOW()
		WHERE id=$3 AND workspace_id=$4
	`
	result, err := r.pool.Exec(ctx, query,
		version.Name, version.Description, version.ID, version.WorkspaceID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionNameConflict
		}
		return fmt.Errorf("update model version: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelVersionNotFound
	}
	return nil
}

func (r *modelVersionRepo) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM model_version WHERE id = $1 AND workspace_id = $2`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("delete model version: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelVersionNotFound
	}
	return nil
}

func (r *modelVersionRepo) List(ctx context.Context, filter ports.ModelVersionFilter) ([]*domain.ModelVersion, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.WorkspaceID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("mv.workspace_id = $%d", argPos))
		args = append(args, filter.WorkspaceID)
		argPos++
	}
	// Injected parent scope on top of the workspace scoping
	if filter.ModelID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("mv.model_id = $%d", argPos))
		args = append(args, filter.ModelID)
		argPos++
	}
	if filter.UserID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("mv.user_id = $%d", argPos))
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("mv.name = $%d", argPos))
		args = append(args, filter.Name)
		argPos++
	}
	if filter.Number > 0 {
		conditions = append(conditions, fmt.Sprintf("mv.number = $%d", argPos))
		args = append(args, filter.Number)
		argPos++
	}
	if filter.Stage != "" {
		conditions = append(conditions, fmt.Sprintf("mv.stage = $%d", argPos))
		args = append(args, filter.Stage)
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM model_version mv WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count model versions: %w", err)
	}

	orderBy := "mv.number DESC"
	if col, ok := modelVersionSortColumns[filter.SortBy]; ok {
		dir := "DESC"
		if filter.Order == "asc" {
			dir = "ASC"
		}
		orderBy = fmt.Sprintf("%s %s", col, dir)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, modelVersionColumns, whereClause, orderBy, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list model versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.ModelVersion
	for rows.Next() {
		v, err := scanModelVersion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan model version row: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate model version rows: %w", err)
	}
	return versions, total, nil
}

func scanModelVersion(row pgx.Row) (*domain.ModelVersion, error) {
	v := &domain.ModelVersion{}
	var stage string
	err := row.Scan(
		&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.ModelID, &v.WorkspaceID,
		&v.UserID, &v.Number, &v.Name, &v.Description, &stage,
	)
	if err != nil {
		return nil, err
	}
	v.Stage = domain.Stage(stage)
	return v, nil
}
