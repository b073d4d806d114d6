package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStage(t *testing.T) {
	for _, raw := range []string{"none", "staging", "production", "latest", "archived"} {
		stage, err := ParseStage(raw)
		assert.NoError(t, err)
		assert.Equal(t, Stage(raw), stage)
	}

	_, err := ParseStage("shadow")
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, err = ParseStage("")
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestStage_Assignable(t *testing.T) {
	assert.True(t, StageNone.Assignable())
	assert.True(t, StageStaging.Assignable())
	assert.True(t, StageProduction.Assignable())
	assert.True(t, StageArchived.Assignable())
	assert.False(t, StageLatest.Assignable())
}

func TestStage_Exclusive(t *testing.T) {
	assert.True(t, StageStaging.Exclusive())
	assert.True(t, StageProduction.Exclusive())
	assert.False(t, StageNone.Exclusive())
	assert.False(t, StageArchived.Exclusive())
	assert.False(t, StageLatest.Exclusive())
}
