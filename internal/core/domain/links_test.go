package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLinkSet_Insert(t *testing.T) {
	set := LinkSet{}
	id := uuid.New()

	assert.NoError(t, set.Insert("weights", "1", id))
	assert.Equal(t, 1, set.Names())

	resolved, ok := set.Resolve("weights", "1")
	assert.True(t, ok)
	assert.Equal(t, id, resolved)
}

func TestLinkSet_Insert_Idempotent(t *testing.T) {
	set := LinkSet{}
	id := uuid.New()

	assert.NoError(t, set.Insert("weights", "1", id))
	assert.NoError(t, set.Insert("weights", "1", id))
	assert.Equal(t, 1, set.Names())
}

func TestLinkSet_Insert_Conflict(t *testing.T) {
	set := LinkSet{}

	assert.NoError(t, set.Insert("weights", "1", uuid.New()))
	err := set.Insert("weights", "1", uuid.New())
	assert.ErrorIs(t, err, ErrLinkConflict)
}

func TestLinkSet_Resolve_LatestNumeric(t *testing.T) {
	set := LinkSet{}
	want := uuid.New()
	assert.NoError(t, set.Insert("weights", "1", uuid.New()))
	assert.NoError(t, set.Insert("weights", "2", uuid.New()))
	assert.NoError(t, set.Insert("weights", "10", want))

	// All labels numeric: 10 beats 2 despite lexical order.
	resolved, ok := set.Resolve("weights", "")
	assert.True(t, ok)
	assert.Equal(t, want, resolved)
}

func TestLinkSet_Resolve_LatestLexical(t *testing.T) {
	set := LinkSet{}
	want := uuid.New()
	assert.NoError(t, set.Insert("weights", "alpha", uuid.New()))
	assert.NoError(t, set.Insert("weights", "beta", want))

	resolved, ok := set.Resolve("weights", "")
	assert.True(t, ok)
	assert.Equal(t, want, resolved)
}

func TestLinkSet_Resolve_LatestMixedFallsBackToLexical(t *testing.T) {
	set := LinkSet{}
	want := uuid.New()
	assert.NoError(t, set.Insert("weights", "9", want))
	assert.NoError(t, set.Insert("weights", "10", uuid.New()))
	assert.NoError(t, set.Insert("weights", "rc1", uuid.New()))

	// One non-numeric label switches the whole bucket to lexical ordering,
	// under which "rc1" beats both digit strings.
	resolved, ok := set.Resolve("weights", "")
	assert.True(t, ok)
	assert.NotEqual(t, want, resolved)

	id, ok := set.Resolve("weights", "rc1")
	assert.True(t, ok)
	assert.Equal(t, resolved, id)
}

func TestLinkSet_Resolve_AbsentName(t *testing.T) {
	set := LinkSet{}
	_, ok := set.Resolve("missing", "")
	assert.False(t, ok)
}

func TestLinkSet_Resolve_AbsentLabel(t *testing.T) {
	set := LinkSet{}
	assert.NoError(t, set.Insert("weights", "1", uuid.New()))

	_, ok := set.Resolve("weights", "2")
	assert.False(t, ok)
}

func TestLatestVersionLabel(t *testing.T) {
	label, ok := LatestVersionLabel([]string{"1", "2", "10"})
	assert.True(t, ok)
	assert.Equal(t, "10", label)

	label, ok = LatestVersionLabel([]string{"v1", "v2", "v10"})
	assert.True(t, ok)
	assert.Equal(t, "v2", label)

	_, ok = LatestVersionLabel(nil)
	assert.False(t, ok)
}

func TestLinkCollections_ResolveAny_Precedence(t *testing.T) {
	c := NewLinkCollections()
	modelID := uuid.New()
	dataID := uuid.New()
	endpointID := uuid.New()

	assert.NoError(t, c.Insert(LinkKindEndpoint, "shared", "1", endpointID))
	assert.NoError(t, c.Insert(LinkKindData, "shared", "1", dataID))
	assert.NoError(t, c.Insert(LinkKindModel, "shared", "1", modelID))

	resolved, ok := c.ResolveAny("shared", "1")
	assert.True(t, ok)
	assert.Equal(t, modelID, resolved)
}

func TestLinkCollections_ResolveAny_FallsThroughPartitions(t *testing.T) {
	c := NewLinkCollections()
	endpointID := uuid.New()
	assert.NoError(t, c.Insert(LinkKindEndpoint, "svc", "1", endpointID))

	resolved, ok := c.ResolveAny("svc", "")
	assert.True(t, ok)
	assert.Equal(t, endpointID, resolved)

	_, ok = c.ResolveAny("absent", "")
	assert.False(t, ok)
}

func TestParseLinkKind(t *testing.T) {
	kind, err := ParseLinkKind("model")
	assert.NoError(t, err)
	assert.Equal(t, LinkKindModel, kind)

	_, err = ParseLinkKind("weights")
	assert.ErrorIs(t, err, ErrInvalidLinkKind)
}
