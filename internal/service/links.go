package service

//go:generate mockgen -destination=../mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Totarae/brevly/internal/metrics"
	"github.com/Totarae/brevly/internal/model"
)

// Repository хранилище ссылок. Все операции атомарны на уровне одного запроса.
type Repository interface {
	// ListLinks возвращает до limit ссылок по убыванию id, начиная с cursor включительно.
	ListLinks(ctx context.Context, cursor *uuid.UUID, limit int) ([]*model.ShortenedLink, error)
	// CountLinks возвращает общее число ссылок.
	CountLinks(ctx context.Context) (int, error)
	// CreateLink вставляет ссылку; id, счётчик и дату назначает хранилище.
	// Повтор short_url даёт model.ErrDuplicateURL.
	CreateLink(ctx context.Context, originalURL, shortURL string) (*model.ShortenedLink, error)
	// IncrementAccessCount увеличивает счётчик и возвращает новое значение.
	IncrementAccessCount(ctx context.Context, shortURL string) (*model.ResolvedLink, error)
	// DeleteLink удаляет ссылку и возвращает её id.
	DeleteLink(ctx context.Context, shortURL string) (uuid.UUID, error)
	// AllLinks возвращает все ссылки по убыванию id.
	AllLinks(ctx context.Context) ([]*model.ShortenedLink, error)
	Ping(ctx context.Context) error
}

// LinkService бизнес-логика сервиса коротких ссылок.
type LinkService struct {
	Repo   Repository
	Logger *zap.Logger
	Now    func() time.Time
}

// NewLinkService создаёт сервис поверх хранилища.
func NewLinkService(repo Repository, logger *zap.Logger) *LinkService {
	return &LinkService{
		Repo:   repo,
		Logger: logger,
		Now:    time.Now,
	}
}

// List возвращает страницу ссылок. Общее количество читается отдельным
// запросом, поэтому при параллельных вставках total может не совпадать с items.
func (s *LinkService) List(ctx context.Context, cursor *uuid.UUID, pageSize int) (*model.LinksPage, error) {
	if pageSize < 1 {
		return nil, &model.Error{Code: model.CodeValidation, Err: errPageSize}
	}
	if pageSize > model.MaxPageSize {
		pageSize = model.MaxPageSize
	}

	fetched, err := s.Repo.ListLinks(ctx, cursor, pageSize+1)
	if err != nil {
		s.Logger.Error("failed retrieving urls", zap.Error(err))
		return nil, model.ServerError(err)
	}

	total, err := s.Repo.CountLinks(ctx)
	if err != nil {
		s.Logger.Error("failed counting urls", zap.Error(err))
		return nil, model.ServerError(err)
	}

	return model.NewLinksPage(fetched, pageSize, total), nil
}

// Create сохраняет новую ссылку.
func (s *LinkService) Create(ctx context.Context, req model.CreateLinkRequest) (*model.ShortenedLink, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	link, err := s.Repo.CreateLink(ctx, req.OriginalURL, req.ShortURL)
	metrics.ObserveOperation("create", string(model.CodeOf(err)))
	if err != nil {
		s.Logger.Warn("failed saving url", zap.String("short_url", req.ShortURL), zap.Error(err))
		return nil, model.ServerError(err)
	}

	s.Logger.Info("url created", zap.String("short_url", link.ShortURL), zap.Stringer("id", link.ID))
	return link, nil
}

// Resolve увеличивает счётчик переходов и возвращает оригинальный URL.
func (s *LinkService) Resolve(ctx context.Context, shortURL string) (*model.ResolvedLink, error) {
	if err := model.ValidateSlug(shortURL); err != nil {
		return nil, err
	}

	resolved, err := s.Repo.IncrementAccessCount(ctx, shortURL)
	metrics.ObserveOperation("resolve", string(model.CodeOf(err)))
	if err != nil {
		s.Logger.Warn("failed retrieving url", zap.String("short_url", shortURL), zap.Error(err))
		return nil, model.ServerError(err)
	}
	return resolved, nil
}

// Delete удаляет ссылку по короткому адресу.
func (s *LinkService) Delete(ctx context.Context, shortURL string) (uuid.UUID, error) {
	if err := model.ValidateSlug(shortURL); err != nil {
		return uuid.Nil, err
	}

	id, err := s.Repo.DeleteLink(ctx, shortURL)
	metrics.ObserveOperation("delete", string(model.CodeOf(err)))
	if err != nil {
		s.Logger.Warn("failed deleting url", zap.String("short_url", shortURL), zap.Error(err))
		return uuid.Nil, model.ServerError(err)
	}
	return id, nil
}

// Export выгружает все ссылки в CSV.
func (s *LinkService) Export(ctx context.Context) (*model.Export, error) {
	links, err := s.Repo.AllLinks(ctx)
	metrics.ObserveOperation("export", string(model.CodeOf(err)))
	if err != nil {
		s.Logger.Error("failed retrieving urls for export", zap.Error(err))
		return nil, model.ServerError(err)
	}

	return &model.Export{
		Body:     []byte(BuildCSV(links)),
		Filename: ExportFilename(uuid.New(), s.Now()),
	}, nil
}

// Ping проверяет доступность хранилища.
func (s *LinkService) Ping(ctx context.Context) error {
	return s.Repo.Ping(ctx)
}
