package migrations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// stepConfigExternalArtifactsRevision rewrites legacy step configuration
// blobs: external_input_artifacts values used to be bare artifact version
// IDs and are canonically {"id": <value>} objects. Rows that do not parse
// as JSON predate that encoding and are outside this revision's authority,
// so they are skipped, not fatal. Rows are rewritten only when the
// transform actually changed something, which also makes the revision
// idempotent. The downgrade undoes the rewrite exactly.
var stepConfigExternalArtifactsRevision = Revision{
	ID:      "20231018_step_config_external_artifacts",
	Parent:  "20231004_baseline",
	Summary: "canonicalize external input artifact references in step configs",
	Upgrade: func(ctx context.Context, tx pgx.Tx) error {
		if err := rewriteBlobs(ctx, tx, "pipeline_deployment", "step_configurations", upgradeStepConfigMap); err != nil {
			return err
		}
		return rewriteBlobs(ctx, tx, "step_run", "step_configuration", upgradeStepConfig)
	},
	Downgrade: func(ctx context.Context, tx pgx.Tx) error {
		if err := rewriteBlobs(ctx, tx, "pipeline_deployment", "step_configurations", downgradeStepConfigMap); err != nil {
			return err
		}
		return rewriteBlobs(ctx, tx, "step_run", "step_configuration", downgradeStepConfig)
	},
}

// rewriteBlobs walks every non-NULL blob of a column, applies the transform,
// and persists only the rows the transform changed.
func rewriteBlobs(ctx context.Context, tx pgx.Tx, table, column string, transform func(raw string) (string, bool)) error {
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE %s IS NOT NULL`, column, table, column)
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("scan %s: %w", table, err)
	}
	defer rows.Close()

	type update struct {
		id   uuid.UUID
		blob string
	}
	var updates []update
	for rows.Next() {
		var (
			id  uuid.UUID
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("scan %s row: %w", table, err)
		}
		if rewritten, changed := transform(raw); changed {
			updates = append(updates, update{id: id, blob: rewritten})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate %s rows: %w", table, err)
	}
	rows.Close()

	stmt := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE id = $2`, table, column)
	for _, u := range updates {
		if _, err := tx.Exec(ctx, stmt, u.blob, u.id); err != nil {
			return fmt.Errorf("rewrite %s: %w", table, err)
		}
	}
	return nil
}

// upgradeStepConfig canonicalizes one step config envelope. Unparseable
// blobs are skipped.
func upgradeStepConfig(raw string) (string, bool) {
	return transformStepConfig(raw, canonicalizeExternalInputs)
}

func downgradeStepConfig(raw string) (string, bool) {
	return transformStepConfig(raw, flattenExternalInputs)
}

// upgradeStepConfigMap canonicalizes a deployment's per-step map of config
// envelopes.
func upgradeStepConfigMap(raw string) (string, bool) {
	return transformStepConfigMap(raw, canonicalizeExternalInputs)
}

func downgradeStepConfigMap(raw string) (string, bool) {
	return transformStepConfigMap(raw, flattenExternalInputs)
}

func transformStepConfig(raw string, visit func(map[string]any) bool) (string, bool) {
	var envelope map[string]any
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return raw, false
	}
	if !visit(envelope) {
		return raw, false
	}
	out, err := json.Marshal(envelope)
	if err != nil {
		return raw, false
	}
	return string(out), true
}

func transformStepConfigMap(raw string, visit func(map[string]any) bool) (string, bool) {
	var steps map[string]any
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return raw, false
	}
	changed := false
	for _, v := range steps {
		if envelope, ok := v.(map[string]any); ok {
			if visit(envelope) {
				changed = true
			}
		}
	}
	if !changed {
		return raw, false
	}
	out, err := json.Marshal(steps)
	if err != nil {
		return raw, false
	}
	return string(out), true
}

// canonicalizeExternalInputs wraps every bare external input artifact value
// into {"id": value}. Values already shaped as objects are left alone.
func canonicalizeExternalInputs(envelope map[string]any) bool {
	inputs, ok := externalInputs(envelope)
	if !ok {
		return false
	}
	changed := false
	for name, value := range inputs {
		if _, isObject := value.(map[string]any); !isObject {
			inputs[name] = map[string]any{"id": value}
			changed = true
		}
	}
	return changed
}

// flattenExternalInputs is the exact inverse: {"id": value} objects become
// the bare value again.
func flattenExternalInputs(envelope map[string]any) bool {
	inputs, ok := externalInputs(envelope)
	if !ok {
		return false
	}
	changed := false
	for name, value := range inputs {
		if object, isObject := value.(map[string]any); isObject && len(object) == 1 {
			if id, ok := object["id"]; ok {
				inputs[name] = id
				changed = true
			}
		}
	}
	return changed
}

func externalInputs(envelope map[string]any) (map[string]any, bool) {
	config, ok := envelope["config"].(map[string]any)
	if !ok {
		return nil, false
	}
	inputs, ok := config["external_input_artifacts"].(map[string]any)
	if !ok {
		return nil, false
	}
	return inputs, true
}
