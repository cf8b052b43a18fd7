package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Totarae/brevly/internal/handlers"
	"github.com/Totarae/brevly/internal/model"
	"github.com/Totarae/brevly/internal/router"
	"github.com/Totarae/brevly/internal/service"
	"github.com/Totarae/brevly/internal/storage"
	"github.com/Totarae/brevly/pkg/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAPI(t *testing.T) string {
	t.Helper()

	svc := service.NewLinkService(storage.NewMemoryStorage(), zap.NewNop())
	srv := httptest.NewServer(router.NewRouter(handlers.NewHandler(svc, zap.NewNop()), zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd(zap.NewNop())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", apiURL}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLinkctl_CreateOpenDelete(t *testing.T) {
	api := newAPI(t)

	out, err := execute(t, api, "create", "https://go.dev", "go-dev")
	require.NoError(t, err)
	assert.Equal(t, "created go-dev -> https://go.dev\n", out)

	_, err = execute(t, api, "create", "https://go.dev/doc", "go-dev")
	assert.EqualError(t, err, "create link: this short URL already exists")

	out, err = execute(t, api, "open", "go-dev")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev\n", out)

	out, err = execute(t, api, "delete", "go-dev")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "deleted go-dev ("))

	_, err = execute(t, api, "open", "go-dev")
	assert.EqualError(t, err, "open link: this short URL was not found")
}

func TestLinkctl_CreateInvalid(t *testing.T) {
	_, err := execute(t, newAPI(t), "create", "not-a-url", "Bad Slug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "original_url must be a valid http or https URL")
}

func TestLinkctl_List(t *testing.T) {
	api := newAPI(t)
	for i := 1; i <= 3; i++ {
		_, err := execute(t, api, "create", fmt.Sprintf("https://example.com/%d", i), fmt.Sprintf("slug-%d", i))
		require.NoError(t, err)
	}

	out, err := execute(t, api, "list", "--page-size", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "slug-3")
	assert.Contains(t, out, "slug-2")
	assert.NotContains(t, out, "slug-1")
	assert.Contains(t, out, "2 of 3 links")

	out, err = execute(t, api, "list", "--page-size", "2", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "slug-1")
	assert.Contains(t, out, "3 of 3 links")
}

func TestLinkctl_Download(t *testing.T) {
	api := newAPI(t)
	_, err := execute(t, api, "create", "https://go.dev", "go-dev")
	require.NoError(t, err)

	dir := t.TempDir()
	out, err := execute(t, api, "download", "--dir", dir)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "linkscsv.csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "ID,Original URL,Short URL,Access Count,Created At\n"))
}

func TestLinkctl_DownloadFailsWithoutPanic(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	assert.NotPanics(t, func() {
		_, err := execute(t, url, "download", "--dir", t.TempDir())
		assert.EqualError(t, err, "download csv: unknown error")
	})
}

func TestSession_CreateAndDeleteUpdateList(t *testing.T) {
	ctx := context.Background()
	s := newSession(client.New(newAPI(t)), 10)

	link, err := s.create(ctx, modelRequest("https://go.dev", "go-dev"))
	require.NoError(t, err)
	require.Equal(t, 1, s.links.Len())
	assert.Equal(t, link.ID, s.links.Links()[0].ID)

	_, err = s.delete(ctx, "go-dev")
	require.NoError(t, err)
	assert.Zero(t, s.links.Len())
	assert.True(t, s.pager.HasNext())
}

func TestNewConsoleLogger(t *testing.T) {
	logger := newConsoleLogger()
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func modelRequest(originalURL, shortURL string) model.CreateLinkRequest {
	return model.CreateLinkRequest{OriginalURL: originalURL, ShortURL: shortURL}
}
