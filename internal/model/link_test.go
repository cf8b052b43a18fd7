package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Totarae/brevly/internal/model"
)

func makeLinks(n int) []*model.ShortenedLink {
	links := make([]*model.ShortenedLink, 0, n)
	for i := 0; i < n; i++ {
		links = append(links, &model.ShortenedLink{ID: uuid.Must(uuid.NewV7())})
	}
	return links
}

func TestNewLinksPage(t *testing.T) {
	tests := []struct {
		name      string
		fetched   int
		pageSize  int
		wantItems int
		wantNext  bool
	}{
		{name: "empty", fetched: 0, pageSize: 10, wantItems: 0, wantNext: false},
		{name: "less than page", fetched: 5, pageSize: 10, wantItems: 5, wantNext: false},
		{name: "exactly page", fetched: 10, pageSize: 10, wantItems: 10, wantNext: false},
		{name: "one extra row", fetched: 11, pageSize: 10, wantItems: 10, wantNext: true},
		{name: "page size one", fetched: 2, pageSize: 1, wantItems: 1, wantNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetched := makeLinks(tt.fetched)
			page := model.NewLinksPage(fetched, tt.pageSize, 42)

			assert.Len(t, page.Items, tt.wantItems)
			assert.NotNil(t, page.Items)
			assert.Equal(t, 42, page.Total)
			if tt.wantNext {
				require.NotNil(t, page.NextCursor)
				assert.Equal(t, fetched[tt.pageSize].ID, *page.NextCursor)
			} else {
				assert.Nil(t, page.NextCursor)
			}
		})
	}
}

func TestShortenedLink_Clone(t *testing.T) {
	original := &model.ShortenedLink{ShortURL: "ex", AccessCount: 3}
	clone := original.Clone()

	clone.AccessCount = 10
	assert.Equal(t, 3, original.AccessCount)
	assert.Equal(t, "ex", clone.ShortURL)
}
