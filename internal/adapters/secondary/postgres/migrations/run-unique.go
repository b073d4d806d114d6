package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"ml-metadata-service/internal/core/domain"
)

// runUniqueConstraintRevision introduces the (deployment_id,
// orchestrator_run_id) uniqueness rule on pipeline_run. Existing rows are
// validated first: rows carrying neither value get a placeholder derived
// from their own ID, which cannot collide with real orchestrator run IDs or
// with each other, so re-running the backfill changes nothing. Any remaining
// duplicate group aborts the whole revision; a migration never drops or
// merges rows on its own.
var runUniqueConstraintRevision = Revision{
	ID:      "20231115_run_unique_constraint",
	Parent:  "20231018_step_config_external_artifacts",
	Summary: "enforce orchestrator run uniqueness per deployment",
	Upgrade: func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE pipeline_run
			SET orchestrator_run_id = 'dummy_' || id::text
			WHERE deployment_id IS NULL AND orchestrator_run_id IS NULL
		`); err != nil {
			return fmt.Errorf("backfill orchestrator run ids: %w", err)
		}

		rows, err := tx.Query(ctx, `
			SELECT COALESCE(deployment_id::text, '<null>'),
				   COALESCE(orchestrator_run_id, '<null>'),
				   COUNT(*)
			FROM pipeline_run
			GROUP BY deployment_id, orchestrator_run_id
			HAVING COUNT(*) > 1
		`)
		if err != nil {
			return fmt.Errorf("scan for duplicate runs: %w", err)
		}
		defer rows.Close()

		var groups []string
		for rows.Next() {
			var deploymentID, orchestratorRunID string
			var count int
			if err := rows.Scan(&deploymentID, &orchestratorRunID, &count); err != nil {
				return fmt.Errorf("scan duplicate group: %w", err)
			}
			groups = append(groups, fmt.Sprintf("(deployment=%s, orchestrator_run=%s, count=%d)",
				deploymentID, orchestratorRunID, count))
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate duplicate groups: %w", err)
		}
		if len(groups) > 0 {
			return fmt.Errorf(
				"%w: pipeline_run rows share a (deployment_id, orchestrator_run_id) pair: %s; "+
					"resolve these rows manually before migrating",
				domain.ErrMigrationAbort, strings.Join(groups, ", "),
			)
		}

		if _, err := tx.Exec(ctx, `
			ALTER TABLE pipeline_run
			ADD CONSTRAINT unique_orchestrator_run_id_for_deployment_id
			UNIQUE (deployment_id, orchestrator_run_id)
		`); err != nil {
			return fmt.Errorf("add uniqueness constraint: %w", err)
		}
		return nil
	},
	Downgrade: func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			ALTER TABLE pipeline_run
			DROP CONSTRAINT unique_orchestrator_run_id_for_deployment_id
		`)
		return err
	},
}
