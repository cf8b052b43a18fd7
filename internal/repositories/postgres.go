package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Totarae/brevly/internal/database"
	"github.com/Totarae/brevly/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const linkColumns = `id, original_url, short_url, access_count, created_at`

// uniqueViolation код SQLSTATE нарушения уникального ограничения.
const uniqueViolation = "23505"

// LinkRepository хранит ссылки в PostgreSQL.
type LinkRepository struct {
	DB database.Querier
}

// NewLinkRepository создаёт новый экземпляр LinkRepository.
func NewLinkRepository(db database.Querier) *LinkRepository {
	return &LinkRepository{DB: db}
}

// ListLinks возвращает до limit ссылок по убыванию id, начиная с cursor включительно.
func (r *LinkRepository) ListLinks(ctx context.Context, cursor *uuid.UUID, limit int) ([]*model.ShortenedLink, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor != nil {
		rows, err = r.DB.Query(ctx,
			`SELECT `+linkColumns+` FROM urls WHERE id <= $1 ORDER BY id DESC LIMIT $2`, *cursor, limit)
	} else {
		rows, err = r.DB.Query(ctx,
			`SELECT `+linkColumns+` FROM urls ORDER BY id DESC LIMIT $1`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}

	return collectLinks(rows)
}

// CountLinks возвращает общее количество ссылок.
func (r *LinkRepository) CountLinks(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM urls`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}

// CreateLink вставляет ссылку одним запросом. Нарушение уникальности
// short_url превращается в model.ErrDuplicateURL.
func (r *LinkRepository) CreateLink(ctx context.Context, originalURL, shortURL string) (*model.ShortenedLink, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `INSERT INTO urls (id, original_url, short_url)
              VALUES ($1, $2, $3)
              RETURNING ` + linkColumns

	link, err := scanLink(r.DB.QueryRow(ctx, query, id, originalURL, shortURL))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, model.ErrDuplicateURL
		}
		return nil, fmt.Errorf("database insert error: %w", err)
	}
	return link, nil
}

// IncrementAccessCount атомарно увеличивает счётчик переходов и возвращает исходный URL.
func (r *LinkRepository) IncrementAccessCount(ctx context.Context, shortURL string) (*model.ResolvedLink, error) {
	query := `UPDATE urls SET access_count = access_count + 1
              WHERE short_url = $1
              RETURNING original_url, access_count`

	resolved := &model.ResolvedLink{}
	err := r.DB.QueryRow(ctx, query, shortURL).Scan(&resolved.OriginalURL, &resolved.AccessCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("database update error: %w", err)
	}
	return resolved, nil
}

// DeleteLink удаляет ссылку и возвращает её id.
func (r *LinkRepository) DeleteLink(ctx context.Context, shortURL string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.DB.QueryRow(ctx, `DELETE FROM urls WHERE short_url = $1 RETURNING id`, shortURL).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, model.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("database delete error: %w", err)
	}
	return id, nil
}

// AllLinks возвращает все ссылки по убыванию id.
func (r *LinkRepository) AllLinks(ctx context.Context) ([]*model.ShortenedLink, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+linkColumns+` FROM urls ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	return collectLinks(rows)
}

// Ping проверяет доступность базы данных.
func (r *LinkRepository) Ping(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, "SELECT 1")
	return err
}

func scanLink(row pgx.Row) (*model.ShortenedLink, error) {
	link := &model.ShortenedLink{}
	err := row.Scan(&link.ID, &link.OriginalURL, &link.ShortURL, &link.AccessCount, &link.CreatedAt)
	if err != nil {
		return nil, err
	}
	link.CreatedAt = link.CreatedAt.UTC().Truncate(time.Millisecond)
	return link, nil
}

func collectLinks(rows pgx.Rows) ([]*model.ShortenedLink, error) {
	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.ShortenedLink, error) {
		return scanLink(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	return links, nil
}
