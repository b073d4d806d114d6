package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ml-metadata-service/internal/core/domain"
	ports "ml-metadata-service/internal/core/ports/output"
)

type workspaceRepo struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepository(pool *pgxpool.Pool) ports.WorkspaceRepository {
	return &workspaceRepo{pool: pool}
}

func (r *workspaceRepo) Create(ctx context.Context, ws *domain.Workspace) error {
	query := `
		INSERT INTO workspace (id, created_at, updated_at, name, description)
		VALUES ($1,$2,$3,$4,$5)
	`
	_, err := r.pool.Exec(ctx, query, ws.ID, ws.CreatedAt, ws.UpdatedAt, ws.Name, ws.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrWorkspaceNameConflict
		}
		return fmt.Errorf("create workspace: %w", err)
	}
	return nil
}

func (r *workspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, created_at, updated_at, name, description
		FROM workspace
		WHERE id = $1
	`
	ws, err := scanWorkspace(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace by id: %w", err)
	}
	return ws, nil
}

func (r *workspaceRepo) GetByName(ctx context.Context, name string) (*domain.Workspace, error) {
	query := `
		SELECT id, created_at, updated_at, name, description
		FROM workspace
		WHERE name = $1
	`
	ws, err := scanWorkspace(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace by name: %w", err)
	}
	return ws, nil
}

func (r *workspaceRepo) List(ctx context.Context, limit, offset int) ([]*domain.Workspace, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM workspace`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count workspaces: %w", err)
	}

	query := `
		SELECT id, created_at, updated_at, name, description
		FROM workspace
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []*domain.Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan workspace row: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate workspace rows: %w", err)
	}
	return workspaces, total, nil
}

func (r *workspaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM workspace WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrWorkspaceNotFound
	}
	return nil
}

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	ws := &domain.Workspace{}
	if err := row.Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt, &ws.Name, &ws.Description); err != nil {
		return nil, err
	}
	return ws, nil
}
