// Package client HTTP-клиент API коротких ссылок и состояние списка на стороне клиента.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Totarae/brevly/internal/model"
	"github.com/google/uuid"
)

var filenameRegex = regexp.MustCompile(`filename="?([^"]+)"?`)

// errTransport запрос не дошёл до сервера или ответ не был получен.
var errTransport = errors.New("transport failure")

// Client клиент HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задаёт http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryDelay задаёт паузу перед повтором при переходе по ссылке.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// New создаёт клиента для сервера по адресу baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retryDelay: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List запрашивает страницу ссылок. pageSize 0 означает размер по умолчанию.
func (c *Client) List(ctx context.Context, cursor *uuid.UUID, pageSize int) (*model.LinksPage, error) {
	query := url.Values{}
	if cursor != nil {
		query.Set("cursor", cursor.String())
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}

	target := "/urls"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	page := &model.LinksPage{}
	if err := c.doJSON(ctx, http.MethodGet, target, nil, page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []*model.ShortenedLink{}
	}
	return page, nil
}

// Create проверяет запрос и создаёт ссылку.
func (c *Client) Create(ctx context.Context, req model.CreateLinkRequest) (*model.ShortenedLink, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	link := &model.ShortenedLink{}
	if err := c.doJSON(ctx, http.MethodPost, "/urls", req, link); err != nil {
		return nil, err
	}
	return link, nil
}

// Resolve возвращает исходный URL и увеличивает счётчик переходов.
// При сетевой ошибке или ответе 5xx запрос повторяется один раз.
func (c *Client) Resolve(ctx context.Context, shortURL string) (string, error) {
	resolved, err := c.resolve(ctx, shortURL)
	if err != nil && retryable(err) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.retryDelay):
		}
		resolved, err = c.resolve(ctx, shortURL)
	}
	if err != nil {
		return "", err
	}
	return resolved.OriginalURL, nil
}

func (c *Client) resolve(ctx context.Context, shortURL string) (*model.ResolvedLink, error) {
	resolved := &model.ResolvedLink{}
	if err := c.doJSON(ctx, http.MethodGet, "/urls/"+url.PathEscape(shortURL), nil, resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// Delete удаляет ссылку и возвращает её id.
func (c *Client) Delete(ctx context.Context, shortURL string) (uuid.UUID, error) {
	var deleted model.DeletedLink
	if err := c.doJSON(ctx, http.MethodDelete, "/urls/"+url.PathEscape(shortURL), nil, &deleted); err != nil {
		return uuid.Nil, err
	}
	return deleted.ID, nil
}

// Download скачивает CSV-выгрузку. Имя файла берётся из Content-Disposition,
// а если его нет, генерируется.
func (c *Client) Download(ctx context.Context) (*model.Export, error) {
	resp, err := c.do(ctx, http.MethodGet, "/downloads", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	return &model.Export{
		Body:     body,
		Filename: filenameFromHeader(resp.Header.Get("Content-Disposition")),
	}, nil
}

func filenameFromHeader(header string) string {
	if m := filenameRegex.FindStringSubmatch(header); m != nil {
		return m[1]
	}
	return uuid.NewString() + "_links.csv"
}

// do выполняет запрос. Ответ с кодом не 2xx превращается в *APIError.
func (c *Client) do(ctx context.Context, method, target string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, target, errTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, target string, payload, out any) error {
	resp, err := c.do(ctx, method, target, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// retryable сетевые ошибки и ответы 5xx.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return errors.Is(err, errTransport)
}
