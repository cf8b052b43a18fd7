package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Totarae/brevly/internal/model"
)

var (
	// ErrDuplicateURL короткая ссылка уже занята.
	ErrDuplicateURL = errors.New("this short URL already exists")
	// ErrLinkNotFound короткая ссылка не найдена.
	ErrLinkNotFound = errors.New("this short URL was not found")
)

// APIError ответ сервера с кодом ошибки.
type APIError struct {
	Status int
	Code   model.ErrorCode
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Code)
}

// Unwrap позволяет сравнивать ошибку с ErrDuplicateURL и ErrLinkNotFound.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case model.CodeDuplicateURL:
		return ErrDuplicateURL
	case model.CodeNotFound:
		return ErrLinkNotFound
	case model.CodeServerError, model.CodeValidation, model.CodeUnknown:
		return nil
	default:
		return nil
	}
}

// Message текст ошибки для пользователя.
func Message(err error) string {
	var (
		apiErr    *APIError
		domainErr *model.Error
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateURL):
		return ErrDuplicateURL.Error()
	case errors.Is(err, ErrLinkNotFound):
		return ErrLinkNotFound.Error()
	case errors.As(err, &domainErr) && domainErr.Code == model.CodeValidation && domainErr.Err != nil:
		return domainErr.Err.Error()
	case errors.As(err, &apiErr):
		return apiErr.Code.Message()
	default:
		return model.CodeUnknown.Message()
	}
}

// decodeError читает тело ответа с ошибкой. Тело без известного error_code
// превращается в UNKNOWN_ERROR.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Code: model.CodeUnknown}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var body model.ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}
	apiErr.Code = model.ParseErrorCode(string(body.ErrorCode))
	return apiErr
}
