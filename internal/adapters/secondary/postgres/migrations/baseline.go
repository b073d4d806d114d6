package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// baselineRevision creates the full metadata schema. The pipeline_run
// uniqueness constraint is deliberately absent here; it arrives in a later
// revision once existing data has been validated.
var baselineRevision = Revision{
	ID:      "20231004_baseline",
	Parent:  "",
	Summary: "initial metadata schema",
	Upgrade: func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range baselineDDL {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("baseline DDL: %w", err)
			}
		}
		return nil
	},
	Downgrade: func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DROP TABLE IF EXISTS
				model_version_run, model_version_artifact, step_run,
				pipeline_run, pipeline_deployment, pipeline,
				artifact_version, artifact, model_version, model,
				workspace, schema_revision
			CASCADE
		`)
		return err
	},
}

var baselineDDL = []string{
	`CREATE TABLE workspace (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE model (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		workspace_id UUID NOT NULL REFERENCES workspace(id) ON DELETE CASCADE,
		user_id UUID,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		license TEXT NOT NULL DEFAULT '',
		audience TEXT NOT NULL DEFAULT '',
		use_cases TEXT NOT NULL DEFAULT '',
		limitations TEXT NOT NULL DEFAULT '',
		trade_offs TEXT NOT NULL DEFAULT '',
		ethics TEXT NOT NULL DEFAULT '',
		UNIQUE (workspace_id, name)
	)`,
	`CREATE TABLE model_version (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		model_id UUID NOT NULL REFERENCES model(id) ON DELETE CASCADE,
		workspace_id UUID NOT NULL REFERENCES workspace(id) ON DELETE CASCADE,
		user_id UUID,
		number INT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		stage TEXT NOT NULL DEFAULT 'none',
		UNIQUE (model_id, number),
		UNIQUE (model_id, name)
	)`,
	`CREATE TABLE artifact (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		workspace_id UUID NOT NULL REFERENCES workspace(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		has_custom_name BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE (workspace_id, name)
	)`,
	`CREATE TABLE artifact_version (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		artifact_id UUID NOT NULL REFERENCES artifact(id) ON DELETE CASCADE,
		workspace_id UUID NOT NULL REFERENCES workspace(id) ON DELETE CASCADE,
		user_id UUID,
		artifact_store_id UUID,
		version TEXT NOT NULL,
		version_number INT,
		type TEXT NOT NULL,
		uri TEXT NOT NULL DEFAULT '',
		materializer TEXT,
		data_type TEXT,
		UNIQUE (artifact_id, version)
	)`,
	`CREATE TABLE pipeline (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		workspace_id UUID NOT NULL REFERENCES workspace(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		UNIQUE (workspace_id, name)
	)`,
	`CREATE TABLE pipeline_deployment (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		workspace_id UUID NOT NULL REFERENCES workspace(id) ON DELETE CASCADE,
		pipeline_id UUID REFERENCES pipeline(id) ON DELETE SET NULL,
		step_configurations TEXT
	)`,
	`CREATE TABLE pipeline_run (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		workspace_id UUID NOT NULL REFERENCES workspace(id) ON DELETE CASCADE,
		pipeline_id UUID REFERENCES pipeline(id) ON DELETE SET NULL,
		deployment_id UUID REFERENCES pipeline_deployment(id) ON DELETE SET NULL,
		orchestrator_run_id TEXT,
		name TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'initializing'
	)`,
	`CREATE TABLE step_run (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		pipeline_run_id UUID NOT NULL REFERENCES pipeline_run(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'running',
		step_configuration TEXT,
		UNIQUE (pipeline_run_id, name)
	)`,
	`CREATE TABLE model_version_artifact (
		id UUID PRIMARY KEY,
		model_version_id UUID NOT NULL REFERENCES model_version(id) ON DELETE CASCADE,
		artifact_version_id UUID NOT NULL REFERENCES artifact_version(id) ON DELETE CASCADE,
		link_type TEXT NOT NULL,
		name TEXT NOT NULL,
		version_label TEXT NOT NULL,
		UNIQUE (model_version_id, link_type, name, version_label)
	)`,
	`CREATE TABLE model_version_run (
		id UUID PRIMARY KEY,
		model_version_id UUID NOT NULL REFERENCES model_version(id) ON DELETE CASCADE,
		pipeline_run_id UUID NOT NULL REFERENCES pipeline_run(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		UNIQUE (model_version_id, name)
	)`,
	`CREATE TABLE schema_revision (
		revision TEXT NOT NULL
	)`,
}
