package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Totarae/brevly/internal/model"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS urls (
	id           TEXT PRIMARY KEY,
	original_url TEXT NOT NULL,
	short_url    TEXT NOT NULL UNIQUE,
	access_count INTEGER NOT NULL DEFAULT 0,
	created_at   INTEGER NOT NULL
);`

// SQLiteRepository хранит ссылки в SQLite. Идентификаторы UUIDv7 хранятся
// текстом, лексикографический порядок совпадает с порядком создания.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository открывает базу по пути path и создаёт схему.
func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite допускает одного писателя: запросы выстраиваются в очередь на
	// единственном соединении вместо SQLITE_BUSY. Для ":memory:" новое
	// соединение к тому же получило бы свою пустую базу.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// sqliteDSN добавляет к пути pragma для ожидания блокировки и WAL-журнала.
func sqliteDSN(path string) string {
	pragmas := "_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		pragmas += "&_pragma=journal_mode(WAL)"
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + pragmas
}

// Close закрывает базу.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// ListLinks возвращает до limit ссылок по убыванию id, начиная с cursor включительно.
func (r *SQLiteRepository) ListLinks(ctx context.Context, cursor *uuid.UUID, limit int) ([]*model.ShortenedLink, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cursor != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+linkColumns+` FROM urls WHERE id <= ? ORDER BY id DESC LIMIT ?`, cursor.String(), limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+linkColumns+` FROM urls ORDER BY id DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	return scanSQLiteLinks(rows)
}

// CountLinks возвращает общее количество ссылок.
func (r *SQLiteRepository) CountLinks(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM urls`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}

// CreateLink вставляет ссылку, дубликат short_url определяется по ограничению UNIQUE.
func (r *SQLiteRepository) CreateLink(ctx context.Context, originalURL, shortURL string) (*model.ShortenedLink, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `INSERT INTO urls (id, original_url, short_url, created_at)
              VALUES (?, ?, ?, ?)
              RETURNING ` + linkColumns

	row := r.db.QueryRowContext(ctx, query, id.String(), originalURL, shortURL, r.now().UnixMilli())
	link, err := scanSQLiteLink(row)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return nil, model.ErrDuplicateURL
		}
		return nil, fmt.Errorf("database insert error: %w", err)
	}
	return link, nil
}

// IncrementAccessCount атомарно увеличивает счётчик переходов.
func (r *SQLiteRepository) IncrementAccessCount(ctx context.Context, shortURL string) (*model.ResolvedLink, error) {
	query := `UPDATE urls SET access_count = access_count + 1
              WHERE short_url = ?
              RETURNING original_url, access_count`

	resolved := &model.ResolvedLink{}
	err := r.db.QueryRowContext(ctx, query, shortURL).Scan(&resolved.OriginalURL, &resolved.AccessCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("database update error: %w", err)
	}
	return resolved, nil
}

// DeleteLink удаляет ссылку и возвращает её id.
func (r *SQLiteRepository) DeleteLink(ctx context.Context, shortURL string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `DELETE FROM urls WHERE short_url = ? RETURNING id`, shortURL).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, model.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("database delete error: %w", err)
	}
	return id, nil
}

// AllLinks возвращает все ссылки по убыванию id.
func (r *SQLiteRepository) AllLinks(ctx context.Context) ([]*model.ShortenedLink, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+linkColumns+` FROM urls ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	return scanSQLiteLinks(rows)
}

// Ping проверяет доступность базы.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteLink(row rowScanner) (*model.ShortenedLink, error) {
	var (
		link    model.ShortenedLink
		created int64
	)
	if err := row.Scan(&link.ID, &link.OriginalURL, &link.ShortURL, &link.AccessCount, &created); err != nil {
		return nil, err
	}
	link.CreatedAt = time.UnixMilli(created).UTC()
	return &link, nil
}

func scanSQLiteLinks(rows *sql.Rows) ([]*model.ShortenedLink, error) {
	defer rows.Close()

	var links []*model.ShortenedLink
	for rows.Next() {
		link, err := scanSQLiteLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return links, nil
}
