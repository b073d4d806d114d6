package migrations

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpgradeStepConfig_WrapsBareValues(t *testing.T) {
	raw := `{"config":{"external_input_artifacts":{"dataset":"av-123"}}}`

	out, changed := upgradeStepConfig(raw)
	assert.True(t, changed)

	var envelope map[string]any
	assert.NoError(t, json.Unmarshal([]byte(out), &envelope))
	inputs := envelope["config"].(map[string]any)["external_input_artifacts"].(map[string]any)
	assert.Equal(t, map[string]any{"id": "av-123"}, inputs["dataset"])
}

func TestUpgradeStepConfig_ObjectValueUntouched(t *testing.T) {
	raw := `{"config":{"external_input_artifacts":{"dataset":{"id":"av-123"}}}}`

	out, changed := upgradeStepConfig(raw)
	assert.False(t, changed)
	assert.Equal(t, raw, out)
}

func TestUpgradeStepConfig_NoExternalInputs(t *testing.T) {
	raw := `{"config":{"parameters":{"epochs":3}}}`

	out, changed := upgradeStepConfig(raw)
	assert.False(t, changed)
	assert.Equal(t, raw, out)
}

func TestUpgradeStepConfig_UnparseableSkipped(t *testing.T) {
	raw := `not json at all`

	out, changed := upgradeStepConfig(raw)
	assert.False(t, changed)
	assert.Equal(t, raw, out)
}

func TestStepConfig_RoundTrip(t *testing.T) {
	raw := `{"config":{"external_input_artifacts":{"dataset":"av-123","schema":42}}}`

	upgraded, changed := upgradeStepConfig(raw)
	assert.True(t, changed)

	downgraded, changed := downgradeStepConfig(upgraded)
	assert.True(t, changed)

	var want, got map[string]any
	assert.NoError(t, json.Unmarshal([]byte(raw), &want))
	assert.NoError(t, json.Unmarshal([]byte(downgraded), &got))
	assert.Equal(t, want, got)
}

func TestDowngradeStepConfig_OnlySingleKeyIDObjects(t *testing.T) {
	// An object carrying more than the id key is not the canonical wrapper
	// and must survive the downgrade untouched.
	raw := `{"config":{"external_input_artifacts":{"dataset":{"id":"av-123","pinned":true}}}}`

	out, changed := downgradeStepConfig(raw)
	assert.False(t, changed)
	assert.Equal(t, raw, out)
}

func TestUpgradeStepConfigMap(t *testing.T) {
	raw := `{"train":{"config":{"external_input_artifacts":{"dataset":"av-1"}}},"eval":{"config":{"parameters":{}}}}`

	out, changed := upgradeStepConfigMap(raw)
	assert.True(t, changed)

	var steps map[string]any
	assert.NoError(t, json.Unmarshal([]byte(out), &steps))
	train := steps["train"].(map[string]any)["config"].(map[string]any)["external_input_artifacts"].(map[string]any)
	assert.Equal(t, map[string]any{"id": "av-1"}, train["dataset"])

	// The untouched step is carried through unchanged.
	_, hasEval := steps["eval"]
	assert.True(t, hasEval)
}

func TestUpgradeStepConfigMap_NoChange(t *testing.T) {
	raw := `{"train":{"config":{"parameters":{"epochs":3}}}}`

	out, changed := upgradeStepConfigMap(raw)
	assert.False(t, changed)
	assert.Equal(t, raw, out)
}
