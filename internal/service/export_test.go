package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Totarae/brevly/internal/model"
)

func TestBuildCSV_Empty(t *testing.T) {
	assert.Equal(t, csvHeader, BuildCSV(nil))
}

func TestBuildCSV_RendersMillisecondsInUTC(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	link := &model.ShortenedLink{
		ID:          uuid.MustParse("0190f6a2-0000-7000-8000-000000000001"),
		OriginalURL: "https://example.com",
		ShortURL:    "ex",
		AccessCount: 0,
		CreatedAt:   time.Date(2024, 7, 1, 3, 4, 5, 6_789_000, moscow),
	}

	got := BuildCSV([]*model.ShortenedLink{link})
	assert.Equal(t, csvHeader+"\n0190f6a2-0000-7000-8000-000000000001,https://example.com,ex,0,2024-07-01 00:04:05.006", got)
}

func TestExportFilename(t *testing.T) {
	id := uuid.MustParse("11111111-2222-4333-8444-555555555555")
	now := time.Date(2025, 3, 9, 8, 7, 6, 5_000_000, time.UTC)

	assert.Equal(t, "11111111-2222-4333-8444-5555555555552025-03-09T080706005Zlinkscsv.csv", ExportFilename(id, now))
}
