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

type modelRepo struct {
	pool *pgxpool.Pool
}

func NewModelRepository(pool *pgxpool.Pool) ports.ModelRepository {
	return &modelRepo{pool: pool}
}

const modelColumns = `
	m.id, m.created_at, m.updated_at, m.workspace_id, m.user_id,
	m.name, m.description, m.license, m.audience, m.use_cases,
	m.limitations, m.trade_offs, m.ethics,
	(SELECT COUNT(*) FROM model_version mv WHERE mv.model_id = m.id) AS version_count,
	(SELECT MAX(mv.number) FROM model_version mv WHERE mv.model_id = m.id) AS latest_version
`

var modelSortColumns = map[string]string{
	"name":       "m.name",
	"created_at": "m.created_at",
	"updated_at": "m.updated_at",
}

func (r *modelRepo) Create(ctx context.Context, model *domain.Model) error {
	query := `
		INSERT INTO model
			(id, created_at, updated_at, workspace_id, user_id, name, description,
			 license, audience, use_cases, limitations, trade_offs, ethics)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`
	_, err := r.pool.Exec(ctx, query,
		model.ID, model.CreatedAt, model.UpdatedAt, model.WorkspaceID, model.UserID,
		model.Name, model.Description, model.License, model.Audience,
		model.UseCases, model.Limitations, model.TradeOffs, model.Ethics,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrModelNameConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrWorkspaceNotFound
		}
		return fmt.Errorf("create model: %w", err)
	}
	return nil
}

func (r *modelRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Model, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model m
		WHERE m.id = $1 AND m.workspace_id = $2
	`, modelColumns)
	model, err := scanModel(r.pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get model by id: %w", err)
	}
	return model, nil
}

func (r *modelRepo) GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Model, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model m
		WHERE m.name = $1 AND m.workspace_id = $2
	`, modelColumns)
	model, err := scanModel(r.pool.QueryRow(ctx, query, name, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get model by name: %w", err)
	}
	return model, nil
}

func (r *modelRepo) Update(ctx context.Context, model *domain.Model) error {
	query := `
		UPDATE model
		SET name=$1, description=$2, license=$3, audience=$4, use_cases=$5,
			limitations=$6, trade_offs=$7, ethics=$8, updated_at=NOW()
		WHERE id=$9 AND workspace_id=$10
	`
	result, err := r.pool.Exec(ctx, query,
		model.Name, model.Description, model.License, model.Audience,
		model.UseCases, model.Limitations, model.TradeOffs, model.Ethics,
		model.ID, model.WorkspaceID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrModelNameConflict
		}
		return fmt.Errorf("update model: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelNotFound
	}
	return nil
}

func (r *modelRepo) Delete(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM model WHERE id = $1 AND workspace_id = $2`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelNotFound
	}
	return nil
}

func (r *modelRepo) List(ctx context.Context, filter ports.ModelFilter) ([]*domain.Model, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.WorkspaceID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("m.workspace_id = $%d", argPos))
		args = append(args, filter.WorkspaceID)
		argPos++
	}
	if filter.UserID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("m.user_id = $%d", argPos))
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("m.name = $%d", argPos))
		args = append(args, filter.Name)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("m.name ILIKE $%d", argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM model m WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count models: %w", err)
	}

	orderBy := "m.created_at DESC"
	if col, ok := modelSortColumns[filter.SortBy]; ok {
		dir := "DESC"
		if filter.Order == "asc" {
			dir = "ASC"
		}
		orderBy = fmt.Sprintf("%s %s", col, dir)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM model m
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, modelColumns, whereClause, orderBy, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var models []*domain.Model
	for rows.Next() {
		model, err := scanModel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan model row: %w", err)
		}
		models = append(models, model)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate model rows: %w", err)
	}
	return models, total, nil
}

func scanModel(row pgx.Row) (*domain.Model, error) {
	m := &domain.Model{}
	err := row.Scan(
		&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.WorkspaceID, &m.UserID,
		&m.Name, &m.Description, &m.License, &m.Audience, &m.UseCases,
		&m.Limitations, &m.TradeOffs, &m.Ethics,
		&m.VersionCount, &m.LatestVersion,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
