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

type pipelineRepo struct {
	pool *pgxpool.Pool
}

func NewPipelineRepository(pool *pgxpool.Pool) ports.PipelineRepository {
	return &pipelineRepo{pool: pool}
}

func (r *pipelineRepo) Create(ctx context.Context, p *domain.Pipeline) error {
	query := `
		INSERT INTO pipeline (id, created_at, updated_at, workspace_id, name, description)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.CreatedAt, p.UpdatedAt, p.WorkspaceID, p.Name, p.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPipelineNameConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrWorkspaceNotFound
		}
		return fmt.Errorf("create pipeline: %w", err)
	}
	return nil
}

func (r *pipelineRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.Pipeline, error) {
	query := `
		SELECT id, created_at, updated_at, workspace_id, name, description
		FROM pipeline
		WHERE id = $1 AND workspace_id = $2
	`
	p, err := scanPipeline(r.pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPipelineNotFound
		}
		return nil, fmt.Errorf("get pipeline by id: %w", err)
	}
	return p, nil
}

func (r *pipelineRepo) GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.Pipeline, error) {
	query := `
		SELECT id, created_at, updated_at, workspace_id, name, description
		FROM pipeline
		WHERE name = $1 AND workspace_id = $2
	`
	p, err := scanPipeline(r.pool.QueryRow(ctx, query, name, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPipelineNotFound
		}
		return nil, fmt.Errorf("get pipeline by name: %w", err)
	}
	return p, nil
}

func (r *pipelineRepo) List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.Pipeline, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pipeline WHERE workspace_id = $1`, workspaceID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pipelines: %w", err)
	}

	query := `
		SELECT id, created_at, updated_at, workspace_id, name, description
		FROM pipeline
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()

	var pipelines []*domain.Pipeline
	for rows.Next() {
		p, err := scanPipeline(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pipeline row: %w", err)
		}
		pipelines = append(pipelines, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate pipeline rows: %w", err)
	}
	return pipelines, total, nil
}

func scanPipeline(row pgx.Row) (*domain.Pipeline, error) {
	p := &domain.Pipeline{}
	err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.WorkspaceID, &p.Name, &p.Description)
	if err != nil {
		return nil, err
	}
	return p, nil
}

type pipelineRunRepo struct {
	pool *pgxpool.Pool
}

func NewPipelineRunRepository(pool *pgxpool.Pool) ports.PipelineRunRepository {
	return &pipelineRunRepo{pool: pool}
}

const pipelineRunColumns = `
	pr.id, pr.created_at, pr.updated_at, pr.workspace_id, pr.pipeline_id,
	pr.deployment_id, pr.orchestrator_run_id, pr.name, pr.status
`

func (r *pipelineRunRepo) Create(ctx context.Context, run *domain.PipelineRun) error {
	query := `
		INSERT INTO pipeline_run
			(id, created_at, updated_at, workspace_id, pipeline_id,
			 deployment_id, orchestrator_run_id, name, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err := r.pool.Exec(ctx, query,
		run.ID, run.CreatedAt, run.UpdatedAt, run.WorkspaceID, run.PipelineID,
		run.DeploymentID, run.OrchestratorRunID, run.Name, string(run.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRunConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrDeploymentNotFound
		}
		return fmt.Errorf("create pipeline run: %w", err)
	}
	return nil
}

func (r *pipelineRunRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.PipelineRun, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM pipeline_run pr
		WHERE pr.id = $1 AND pr.workspace_id = $2
	`, pipelineRunColumns)
	run, err := scanPipelineRun(r.pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get pipeline run by id: %w", err)
	}
	return run, nil
}

func (r *pipelineRunRepo) GetByName(ctx context.Context, workspaceID uuid.UUID, name string) (*domain.PipelineRun, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM pipeline_run pr
		WHERE pr.name = $1 AND pr.workspace_id = $2
	`, pipelineRunColumns)
	run, err := scanPipelineRun(r.pool.QueryRow(ctx, query, name, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get pipeline run by name: %w", err)
	}
	return run, nil
}

func (r *pipelineRunRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.PipelineRun, error) {
	if len(ids) == 0 {
		return []*domain.PipelineRun{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM pipeline_run pr
		WHERE pr.id = ANY($1)
	`, pipelineRunColumns)
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list pipeline runs by ids: %w", err)
	}
	defer rows.Close()

	var runs []*domain.PipelineRun
	for rows.Next() {
		run, err := scanPipelineRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pipeline run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pipeline run rows: %w", err)
	}
	return runs, nil
}

func (r *pipelineRunRepo) List(ctx context.Context, filter ports.RunFilter) ([]*domain.PipelineRun, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.WorkspaceID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("pr.workspace_id = $%d", argPos))
		args = append(args, filter.WorkspaceID)
		argPos++
	}
	if filter.PipelineID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("pr.pipeline_id = $%d", argPos))
		args = append(args, filter.PipelineID)
		argPos++
	}
	if filter.DeploymentID != uuid.Nil {
		conditions = append(conditions, fmt.Sprintf("pr.deployment_id = $%d", argPos))
		args = append(args, filter.DeploymentID)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM pipeline_run pr WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pipeline runs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM pipeline_run pr
		WHERE %s
		ORDER BY pr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, pipelineRunColumns, whereClause, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pipeline runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.PipelineRun
	for rows.Next() {
		run, err := scanPipelineRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pipeline run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate pipeline run rows: %w", err)
	}
	return runs, total, nil
}

func scanPipelineRun(row pgx.Row) (*domain.PipelineRun, error) {
	run := &domain.PipelineRun{}
	var status string
	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.UpdatedAt, &run.WorkspaceID, &run.PipelineID,
		&run.DeploymentID, &run.OrchestratorRunID, &run.Name, &status,
	)
	if err != nil {
		return nil, err
	}
	run.Status = domain.RunStatus(status)
	return run, nil
}

type deploymentRepo struct {
	pool *pgxpool.Pool
}

func NewDeploymentRepository(pool *pgxpool.Pool) ports.DeploymentRepository {
	return &deploymentRepo{pool: pool}
}

func (r *deploymentRepo) Create(ctx context.Context, d *domain.PipelineDeployment) error {
	query := `
		INSERT INTO pipeline_deployment
			(id, created_at, updated_at, workspace_id, pipeline_id, step_configurations)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6, ''))
	`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.CreatedAt, d.UpdatedAt, d.WorkspaceID, d.PipelineID, d.StepConfigurations)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPipelineNotFound
		}
		return fmt.Errorf("create pipeline deployment: %w", err)
	}
	return nil
}

func (r *deploymentRepo) GetByID(ctx context.Context, workspaceID uuid.UUID, id uuid.UUID) (*domain.PipelineDeployment, error) {
	query := `
		SELECT id, created_at, updated_at, workspace_id, pipeline_id,
			   COALESCE(step_configurations, '')
		FROM pipeline_deployment
		WHERE id = $1 AND workspace_id = $2
	`
	d, err := scanDeployment(r.pool.QueryRow(ctx, query, id, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDeploymentNotFound
		}
		return nil, fmt.Errorf("get pipeline deployment by id: %w", err)
	}
	return d, nil
}

func (r *deploymentRepo) List(ctx context.Context, workspaceID uuid.UUID, limit, offset int) ([]*domain.PipelineDeployment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM pipeline_deployment WHERE workspace_id = $1`, workspaceID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pipeline deployments: %w", err)
	}

	query := `
		SELECT id, created_at, updated_at, workspace_id, pipeline_id,
			   COALESCE(step_configurations, '')
		FROM pipeline_deployment
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pipeline deployments: %w", err)
	}
	defer rows.Close()

	var deployments []*domain.PipelineDeployment
	for rows.Next() {
		d, err := scanDeployment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pipeline deployment row: %w", err)
		}
		deployments = append(deployments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate pipeline deployment rows: %w", err)
	}
	return deployments, total, nil
}

func scanDeployment(row pgx.Row) (*domain.PipelineDeployment, error) {
	d := &domain.PipelineDeployment{}
	err := row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt, &d.WorkspaceID, &d.PipelineID, &d.StepConfigurations)
	if err != nil {
		return nil, err
	}
	return d, nil
}

type stepRunRepo struct {
	pool *pgxpool.Pool
}

func NewStepRunRepository(pool *pgxpool.Pool) ports.StepRunRepository {
	return &stepRunRepo{pool: pool}
}

func (r *stepRunRepo) Create(ctx context.Context, s *domain.StepRun) error {
	query := `
		INSERT INTO step_run
			(id, created_at, updated_at, pipeline_run_id, name, status, step_configuration)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7, ''))
	`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.CreatedAt, s.UpdatedAt, s.PipelineRunID, s.Name,
		string(s.Status), s.StepConfiguration)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrRunNotFound
		}
		return fmt.Errorf("create step run: %w", err)
	}
	return nil
}

func (r *stepRunRepo) ListByRun(ctx context.Context, runID uuid.UUID) ([]*domain.StepRun, error) {
	query := `
		SELECT id, created_at, updated_at, pipeline_run_id, name, status,
			   COALESCE(step_configuration, '')
		FROM step_run
		WHERE pipeline_run_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list step runs: %w", err)
	}
	defer rows.Close()

	var steps []*domain.StepRun
	for rows.Next() {
		s := &domain.StepRun{}
		var status string
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt, &s.PipelineRunID,
			&s.Name, &status, &s.StepConfiguration); err != nil {
			return nil, fmt.Errorf("scan step run row: %w", err)
		}
		s.Status = domain.RunStatus(status)
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate step run rows: %w", err)
	}
	return steps, nil
}
