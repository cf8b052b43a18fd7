package storage

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Totarae/brevly/internal/model"
	"github.com/google/uuid"
)

// MemoryStorage хранит ссылки в памяти процесса. Все операции выполняются
// под одной блокировкой, поэтому проверка уникальности и вставка атомарны.
type MemoryStorage struct {
	mu     sync.RWMutex
	bySlug map[string]*model.ShortenedLink
	now    func() time.Time
}

// NewMemoryStorage создает пустое хранилище.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		bySlug: make(map[string]*model.ShortenedLink),
		now:    time.Now,
	}
}

// ListLinks возвращает до limit ссылок по убыванию id, начиная с cursor включительно.
func (s *MemoryStorage) ListLinks(_ context.Context, cursor *uuid.UUID, limit int) ([]*model.ShortenedLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := s.sortedLocked()
	result := make([]*model.ShortenedLink, 0, limit)
	for _, link := range links {
		if cursor != nil && bytes.Compare(link.ID[:], cursor[:]) > 0 {
			continue
		}
		if len(result) == limit {
			break
		}
		result = append(result, link.Clone())
	}
	return result, nil
}

// CountLinks возвращает количество ссылок.
func (s *MemoryStorage) CountLinks(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bySlug), nil
}

// CreateLink сохраняет новую ссылку.
func (s *MemoryStorage) CreateLink(_ context.Context, originalURL, shortURL string) (*model.ShortenedLink, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bySlug[shortURL]; exists {
		return nil, model.ErrDuplicateURL
	}

	link := &model.ShortenedLink{
		ID:          id,
		OriginalURL: originalURL,
		ShortURL:    shortURL,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	s.bySlug[shortURL] = link
	return link.Clone(), nil
}

// IncrementAccessCount увеличивает счётчик переходов.
func (s *MemoryStorage) IncrementAccessCount(_ context.Context, shortURL string) (*model.ResolvedLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.bySlug[shortURL]
	if !ok {
		return nil, model.ErrNotFound
	}
	link.AccessCount++
	return &model.ResolvedLink{OriginalURL: link.OriginalURL, AccessCount: link.AccessCount}, nil
}

// DeleteLink удаляет ссылку.
func (s *MemoryStorage) DeleteLink(_ context.Context, shortURL string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.bySlug[shortURL]
	if !ok {
		return uuid.Nil, model.ErrNotFound
	}
	delete(s.bySlug, shortURL)
	return link.ID, nil
}

// AllLinks возвращает все ссылки по убыванию id.
func (s *MemoryStorage) AllLinks(_ context.Context) ([]*model.ShortenedLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := s.sortedLocked()
	for i, link := range links {
		links[i] = link.Clone()
	}
	return links, nil
}

// Ping всегда успешен.
func (s *MemoryStorage) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStorage) sortedLocked() []*model.ShortenedLink {
	links := make([]*model.ShortenedLink, 0, len(s.bySlug))
	for _, link := range s.bySlug {
		links = append(links, link)
	}
	slices.SortFunc(links, func(a, b *model.ShortenedLink) int {
		return bytes.Compare(b.ID[:], a.ID[:])
	})
	return links
}
