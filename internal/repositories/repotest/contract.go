// Package repotest содержит общий набор проверок для реализаций service.Repository.
package repotest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Totarae/brevly/internal/model"
	"github.com/Totarae/brevly/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Factory возвращает пустой репозиторий для одного подтеста.
type Factory func(t *testing.T) service.Repository

// Run прогоняет все проверки против репозиториев, созданных factory.
func Run(t *testing.T, factory Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, repo service.Repository)
	}{
		{"CreateAssignsFields", testCreateAssignsFields},
		{"CreateDuplicate", testCreateDuplicate},
		{"ResolveIncrements", testResolveIncrements},
		{"ResolveMissing", testResolveMissing},
		{"DeleteThenResolve", testDeleteThenResolve},
		{"DeleteMissing", testDeleteMissing},
		{"FirstPage", testFirstPage},
		{"SmallStore", testSmallStore},
		{"ForwardPagination", testForwardPagination},
		{"CursorIsInclusive", testCursorIsInclusive},
		{"Export", testExport},
		{"ConcurrentCreate", testConcurrentCreate},
		{"ConcurrentResolve", testConcurrentResolve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, factory(t))
		})
	}
}

// Seed создаёт n ссылок slug-1..slug-n и возвращает их в порядке создания.
func Seed(t *testing.T, repo service.Repository, n int) []*model.ShortenedLink {
	t.Helper()

	links := make([]*model.ShortenedLink, 0, n)
	for i := 1; i <= n; i++ {
		link, err := repo.CreateLink(context.Background(),
			fmt.Sprintf("https://example.com/page/%d", i), fmt.Sprintf("slug-%d", i))
		require.NoError(t, err)
		links = append(links, link)
	}
	return links
}

func testCreateAssignsFields(t *testing.T, repo service.Repository) {
	ctx := context.Background()

	link, err := repo.CreateLink(ctx, "https://go.dev/doc", "go-doc")
	require.NoError(t, err)

	assert.Equal(t, 7, int(link.ID.Version()))
	assert.Equal(t, "https://go.dev/doc", link.OriginalURL)
	assert.Equal(t, "go-doc", link.ShortURL)
	assert.Zero(t, link.AccessCount)
	assert.False(t, link.CreatedAt.IsZero())

	all, err := repo.AllLinks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, link.ID, all[0].ID)
	assert.True(t, link.CreatedAt.Equal(all[0].CreatedAt))
}

func testCreateDuplicate(t *testing.T, repo service.Repository) {
	ctx := context.Background()

	_, err := repo.CreateLink(ctx, "https://a.example", "same")
	require.NoError(t, err)

	_, err = repo.CreateLink(ctx, "https://b.example", "same")
	assert.ErrorIs(t, err, model.ErrDuplicateURL)

	count, err := repo.CountLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testResolveIncrements(t *testing.T, repo service.Repository) {
	ctx := context.Background()
	Seed(t, repo, 2)

	for want := 1; want <= 3; want++ {
		resolved, err := repo.IncrementAccessCount(ctx, "slug-1")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/page/1", resolved.OriginalURL)
		assert.Equal(t, want, resolved.AccessCount)
	}

	all, err := repo.AllLinks(ctx)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, link := range all {
		counts[link.ShortURL] = link.AccessCount
	}
	assert.Equal(t, map[string]int{"slug-1": 3, "slug-2": 0}, counts)
}

func testResolveMissing(t *testing.T, repo service.Repository) {
	ctx := context.Background()
	Seed(t, repo, 1)

	_, err := repo.IncrementAccessCount(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	all, err := repo.AllLinks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Zero(t, all[0].AccessCount)
}

func testDeleteThenResolve(t *testing.T, repo service.Repository) {
	ctx := context.Background()
	links := Seed(t, repo, 2)

	id, err := repo.DeleteLink(ctx, "slug-2")
	require.NoError(t, err)
	assert.Equal(t, links[1].ID, id)

	_, err = repo.IncrementAccessCount(ctx, "slug-2")
	assert.ErrorIs(t, err, model.ErrNotFound)

	count, err := repo.CountLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testDeleteMissing(t *testing.T, repo service.Repository) {
	_, err := repo.DeleteLink(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func testFirstPage(t *testing.T, repo service.Repository) {
	links := Seed(t, repo, 15)
	svc := service.NewLinkService(repo, zap.NewNop())

	page, err := svc.List(context.Background(), nil, 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 10)
	for i, item := range page.Items {
		assert.Equal(t, links[14-i].ID, item.ID)
	}
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, links[4].ID, *page.NextCursor)
	assert.Equal(t, 15, page.Total)
}

func testSmallStore(t *testing.T, repo service.Repository) {
	Seed(t, repo, 3)
	svc := service.NewLinkService(repo, zap.NewNop())

	page, err := svc.List(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Nil(t, page.NextCursor)
	assert.Equal(t, 3, page.Total)
}

func testForwardPagination(t *testing.T, repo service.Repository) {
	links := Seed(t, repo, 15)
	svc := service.NewLinkService(repo, zap.NewNop())
	ctx := context.Background()

	first, err := svc.List(ctx, nil, 10)
	require.NoError(t, err)
	require.NotNil(t, first.NextCursor)

	second, err := svc.List(ctx, first.NextCursor, 10)
	require.NoError(t, err)
	require.Len(t, second.Items, 5)
	assert.Equal(t, *first.NextCursor, second.Items[0].ID)
	assert.Nil(t, second.NextCursor)
	assert.Equal(t, 15, second.Total)

	seen := map[string]int{}
	for _, item := range append(first.Items, second.Items...) {
		seen[item.ShortURL]++
	}
	assert.Len(t, seen, len(links))
	for slug, n := range seen {
		assert.Equal(t, 1, n, slug)
	}
}

func testCursorIsInclusive(t *testing.T, repo service.Repository) {
	links := Seed(t, repo, 5)
	cursor := links[2].ID

	page, err := repo.ListLinks(context.Background(), &cursor, 10)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, cursor, page[0].ID)
	assert.Equal(t, links[0].ID, page[2].ID)
}

func testExport(t *testing.T, repo service.Repository) {
	links := Seed(t, repo, 3)
	svc := service.NewLinkService(repo, zap.NewNop())

	export, err := svc.Export(context.Background())
	require.NoError(t, err)

	lines := strings.Split(string(export.Body), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,Original URL,Short URL,Access Count,Created At", lines[0])
	for i, line := range lines[1:] {
		link := links[2-i]
		want := fmt.Sprintf("%s,%s,%s,0,%s", link.ID, link.OriginalURL, link.ShortURL,
			link.CreatedAt.UTC().Format("2006-01-02 15:04:05.000"))
		assert.Equal(t, want, line)
	}
}

func testConcurrentCreate(t *testing.T, repo service.Repository) {
	const workers = 8
	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		duplicate atomic.Int32
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateLink(context.Background(), fmt.Sprintf("https://example.com/%d", i), "contended")
			switch {
			case err == nil:
				created.Add(1)
			case model.CodeOf(err) == model.CodeDuplicateURL:
				duplicate.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, int32(workers-1), duplicate.Load())
}

func testConcurrentResolve(t *testing.T, repo service.Repository) {
	const workers = 20
	Seed(t, repo, 1)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementAccessCount(context.Background(), "slug-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	resolved, err := repo.IncrementAccessCount(context.Background(), "slug-1")
	require.NoError(t, err)
	assert.Equal(t, workers+1, resolved.AccessCount)
}
