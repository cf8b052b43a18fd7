package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPageSize размер страницы, если клиент его не передал.
	DefaultPageSize = 10
	// MaxPageSize верхняя граница размера страницы.
	MaxPageSize = 100
)

// ShortenedLink представляет запись таблицы urls.
type ShortenedLink struct {
	ID          uuid.UUID `json:"id"`
	OriginalURL string    `json:"original_url"`
	ShortURL    string    `json:"short_url"`
	AccessCount int       `json:"access_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clone возвращает независимую копию ссылки.
func (l *ShortenedLink) Clone() *ShortenedLink {
	c := *l
	return &c
}

// LinksPage страница списка ссылок.
type LinksPage struct {
	Items      []*ShortenedLink `json:"items"`
	NextCursor *uuid.UUID       `json:"next_cursor"`
	Total      int              `json:"total"`
}

// NewLinksPage собирает страницу из выборки размером до pageSize+1.
// Лишняя строка не попадает в Items, её id становится курсором следующей страницы.
// Выборка с курсором включает сам курсор (id <= cursor), поэтому граничная
// запись повторяется на соседних страницах.
func NewLinksPage(fetched []*ShortenedLink, pageSize, total int) *LinksPage {
	page := &LinksPage{Items: fetched, Total: total}

	hasMore := len(fetched) > pageSize
	if hasMore {
		next := fetched[pageSize].ID
		page.NextCursor = &next
		page.Items = fetched[:pageSize]
	}

	if page.Items == nil {
		page.Items = []*ShortenedLink{}
	}
	return page
}

// ResolvedLink результат перехода по короткой ссылке.
type ResolvedLink struct {
	OriginalURL string `json:"original_url"`
	AccessCount int    `json:"access_count"`
}

// DeletedLink ответ на удаление ссылки.
type DeletedLink struct {
	ID uuid.UUID `json:"id"`
}

// Export выгрузка всех ссылок в CSV.
type Export struct {
	Body     []byte
	Filename string
}
