package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Totarae/brevly/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=../mocks/mock_service.go -package=mocks . LinkService

// LinkService операции над ссылками, которые обслуживает HTTP API.
type LinkService interface {
	List(ctx context.Context, cursor *uuid.UUID, pageSize int) (*model.LinksPage, error)
	Create(ctx context.Context, req model.CreateLinkRequest) (*model.ShortenedLink, error)
	Resolve(ctx context.Context, shortURL string) (*model.ResolvedLink, error)
	Delete(ctx context.Context, shortURL string) (uuid.UUID, error)
	Export(ctx context.Context) (*model.Export, error)
	Ping(ctx context.Context) error
}

// Handler обработчики HTTP API ссылок.
type Handler struct {
	Service LinkService
	Logger  *zap.Logger
}

// NewHandler создаёт обработчики поверх сервиса.
func NewHandler(service LinkService, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// ListURLs GET /urls?cursor=&pageSize=
func (h *Handler) ListURLs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var cursor *uuid.UUID
	if raw := query.Get("cursor"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, &model.Error{Code: model.CodeValidation, Err: fmt.Errorf("cursor must be a UUID")}, model.CodeValidation)
			return
		}
		cursor = &id
	}

	pageSize := model.DefaultPageSize
	if raw := query.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, &model.Error{Code: model.CodeValidation, Err: fmt.Errorf("pageSize must be an integer")}, model.CodeValidation)
			return
		}
		pageSize = n
	}

	page, err := h.Service.List(r.Context(), cursor, pageSize)
	if err != nil {
		h.writeError(w, err, model.CodeServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// CreateURL POST /urls
func (h *Handler) CreateURL(w http.ResponseWriter, r *http.Request) {
	var req model.CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, &model.Error{Code: model.CodeValidation, Err: fmt.Errorf("invalid request body: %w", err)}, model.CodeValidation)
		return
	}

	link, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err, model.CodeServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, link)
}

// ResolveURL GET /urls/{shortUrl}. Любая ошибка отдаётся клиенту как URL_NOT_FOUND.
func (h *Handler) ResolveURL(w http.ResponseWriter, r *http.Request) {
	shortURL := chi.URLParam(r, "shortUrl")

	resolved, err := h.Service.Resolve(r.Context(), shortURL)
	if err != nil {
		h.writeError(w, err, model.CodeNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, resolved)
}

// DeleteURL DELETE /urls/{shortUrl}
func (h *Handler) DeleteURL(w http.ResponseWriter, r *http.Request) {
	shortURL := chi.URLParam(r, "shortUrl")

	id, err := h.Service.Delete(r.Context(), shortURL)
	if err != nil {
		h.writeError(w, err, model.CodeNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, model.DeletedLink{ID: id})
}

// DownloadCSV GET /downloads
func (h *Handler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	export, err := h.Service.Export(r.Context())
	if err != nil {
		h.writeError(w, err, model.CodeServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(export.Body); err != nil {
		h.Logger.Warn("failed to write export", zap.Error(err))
	}
}

// Ping GET /ping
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Ping(r.Context()); err != nil {
		h.Logger.Error("storage ping failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Warn("failed to encode response", zap.Error(err))
	}
}

// writeError отвечает кодом ошибки. Ошибки вне перечисленных доменных кодов
// отдаются с кодом fallback.
func (h *Handler) writeError(w http.ResponseWriter, err error, fallback model.ErrorCode) {
	code := fallback
	var domainErr *model.Error
	if errors.As(err, &domainErr) && domainErr.Code != model.CodeServerError {
		code = domainErr.Code
	}

	if code == model.CodeServerError || model.CodeOf(err) == model.CodeServerError {
		h.Logger.Error("request failed", zap.String("error_code", string(code)), zap.Error(err))
	}

	h.writeJSON(w, code.HTTPStatus(), model.ErrorResponse{ErrorCode: code, Message: code.Message()})
}
