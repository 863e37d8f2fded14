package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/encephalon/internal/core/domain"
)

func TestIngestionStore_SaveAndGet(t *testing.T) {
	store := NewIngestionStore()
	ctx := context.Background()

	entry := &domain.Ingestion{ID: "a", Kind: domain.KindPDF, Status: domain.IngestionRunning}
	require.NoError(t, store.Save(ctx, entry))

	entry.Status = domain.IngestionComplete
	require.NoError(t, store.Save(ctx, entry))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.IngestionComplete, got.Status)
}

func TestIngestionStore_GetMissing(t *testing.T) {
	_, err := NewIngestionStore().Get(context.Background(), "nope")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestIngestionStore_ListNewestFirst(t *testing.T) {
	store := NewIngestionStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	hours := map[string]int{"old": 0, "new": 2, "mid": 1}
	for id, h := range hours {
		require.NoError(t, store.Save(ctx, &domain.Ingestion{ID: id, StartedAt: base.Add(time.Duration(h) * time.Hour)}))
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
