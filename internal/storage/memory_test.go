package storage_test

import (
	"context"
	"testing"

	"github.com/Totarae/brevly/internal/repositories/repotest"
	"github.com/Totarae/brevly/internal/service"
	"github.com/Totarae/brevly/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	repotest.Run(t, func(t *testing.T) service.Repository {
		return storage.NewMemoryStorage()
	})
}

// Изменение возвращённой записи не влияет на хранилище.
func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	link, err := store.CreateLink(ctx, "https://example.com", "copy")
	require.NoError(t, err)
	link.AccessCount = 42

	all, err := store.AllLinks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Zero(t, all[0].AccessCount)
}
