package repositories_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Totarae/brevly/internal/repositories"
	"github.com/Totarae/brevly/internal/repositories/repotest"
	"github.com/Totarae/brevly/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) service.Repository {
	t.Helper()

	repo, err := repositories.NewSQLiteRepository(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newSQLiteFile(t *testing.T) service.Repository {
	t.Helper()

	repo, err := repositories.NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "links.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteRepository(t *testing.T) {
	repotest.Run(t, newSQLite)
}

func TestSQLiteRepository_File(t *testing.T) {
	repotest.Run(t, newSQLiteFile)
}

// Данные переживают повторное открытие файла, схема создаётся идемпотентно.
func TestSQLiteRepository_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "links.db")

	repo, err := repositories.NewSQLiteRepository(ctx, path)
	require.NoError(t, err)
	created, err := repo.CreateLink(ctx, "https://example.com", "persisted")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = repositories.NewSQLiteRepository(ctx, path)
	require.NoError(t, err)
	defer repo.Close()

	all, err := repo.AllLinks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, "persisted", all[0].ShortURL)
}

func TestSQLiteRepository_Ping(t *testing.T) {
	repo := newSQLite(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
