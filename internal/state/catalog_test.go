package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techcorp/toolspend/internal/models"
)

func TestCatalogStoreLoad(t *testing.T) {
	store := NewCatalogStore()
	assert.Empty(t, store.Tools())

	gen := store.Begin()
	applied := store.Complete(gen, []models.Tool{{ID: 1, Name: "Slack"}}, nil)

	assert.True(t, applied)
	require.Len(t, store.Tools(), 1)
	assert.Empty(t, store.LastError())
}

func TestCatalogStoreDiscardsSupersededLoad(t *testing.T) {
	store := NewCatalogStore()

	first := store.Begin()
	second := store.Begin()

	// The newer load resolves first.
	store.Complete(second, []models.Tool{{ID: 2, Name: "fresh"}}, nil)
	applied := store.Complete(first, []models.Tool{{ID: 1, Name: "stale"}}, nil)

	assert.False(t, applied)
	require.Len(t, store.Tools(), 1)
	assert.Equal(t, "fresh", store.Tools()[0].Name)
}

func TestCatalogStoreFirstLoadFailure(t *testing.T) {
	store := NewCatalogStore()

	gen := store.Begin()
	store.Complete(gen, nil, errors.New("connection refused"))

	assert.Empty(t, store.Tools())
	assert.Equal(t, "connection refused", store.LastError())
}

func TestCatalogStoreKeepsLastGoodOnLaterFailure(t *testing.T) {
	store := NewCatalogStore()

	gen := store.Begin()
	store.Complete(gen, []models.Tool{{ID: 1}}, nil)

	gen = store.Begin()
	store.Complete(gen, nil, errors.New("upstream down"))

	assert.Len(t, store.Tools(), 1)
	assert.Equal(t, "upstream down", store.LastError())
}

func TestCatalogStoreToolsReturnsCopy(t *testing.T) {
	store := NewCatalogStore()
	gen := store.Begin()
	store.Complete(gen, []models.Tool{{ID: 1, Name: "Slack"}}, nil)

	tools := store.Tools()
	tools[0].Name = "mutated"

	assert.Equal(t, "Slack", store.Tools()[0].Name)
}

func TestCatalogStoreApplyWrites(t *testing.T) {
	store := NewCatalogStore()
	gen := store.Begin()
	store.Complete(gen, []models.Tool{{ID: 1, Name: "Slack"}, {ID: 2, Name: "Jira"}}, nil)

	store.ApplyCreate(models.Tool{ID: 3, Name: "Figma"})
	assert.Len(t, store.Tools(), 3)

	store.ApplyUpdate(models.Tool{ID: 1, Name: "Slack Pro"})
	assert.Equal(t, "Slack Pro", store.Tools()[0].Name)

	store.ApplyDelete(2)
	require.Len(t, store.Tools(), 2)
	assert.Equal(t, int64(3), store.Tools()[1].ID)
}

func TestCatalogStoreApplyBulkDeletePartial(t *testing.T) {
	store := NewCatalogStore()
	gen := store.Begin()
	store.Complete(gen, []models.Tool{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	// Only the ids whose upstream deletes succeeded are removed.
	store.ApplyBulkDelete([]int64{1, 3})

	tools := store.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, int64(2), tools[0].ID)
}
