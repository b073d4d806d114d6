package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ml-metadata-service/internal/core/domain"
)

func TestOrderChain_Registry(t *testing.T) {
	chain, err := orderChain(registry())
	assert.NoError(t, err)
	assert.Len(t, chain, 3)
	assert.Equal(t, "", chain[0].Parent)
	for i := 1; i < len(chain); i++ {
		assert.Equal(t, chain[i-1].ID, chain[i].Parent)
	}
}

func TestOrderChain_DuplicateRevision(t *testing.T) {
	_, err := orderChain([]Revision{
		{ID: "a", Parent: ""},
		{ID: "a", Parent: ""},
	})
	assert.ErrorIs(t, err, domain.ErrRevisionChain)
}

func TestOrderChain_Fork(t *testing.T) {
	_, err := orderChain([]Revision{
		{ID: "a", Parent: ""},
		{ID: "b", Parent: "a"},
		{ID: "c", Parent: "a"},
	})
	assert.ErrorIs(t, err, domain.ErrRevisionChain)
}

func TestOrderChain_NoRoot(t *testing.T) {
	_, err := orderChain([]Revision{
		{ID: "b", Parent: "a"},
		{ID: "c", Parent: "b"},
	})
	assert.ErrorIs(t, err, domain.ErrRevisionChain)
}

func TestOrderChain_UnknownParent(t *testing.T) {
	_, err := orderChain([]Revision{
		{ID: "a", Parent: ""},
		{ID: "c", Parent: "ghost"},
	})
	assert.ErrorIs(t, err, domain.ErrRevisionChain)
}

func TestOrderChain_OrdersOutOfOrderInput(t *testing.T) {
	chain, err := orderChain([]Revision{
		{ID: "c", Parent: "b"},
		{ID: "a", Parent: ""},
		{ID: "b", Parent: "a"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, []string{chain[0].ID, chain[1].ID, chain[2].ID})
}
