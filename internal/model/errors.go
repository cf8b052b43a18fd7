package model

import (
	"errors"
	"net/http"
)

// ErrorCode код ошибки, который уходит клиенту в поле error_code.
type ErrorCode string

const (
	CodeNotFound     ErrorCode = "URL_NOT_FOUND"
	CodeDuplicateURL ErrorCode = "DUPLICATE_URL"
	CodeServerError  ErrorCode = "SERVER_ERROR"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeUnknown      ErrorCode = "UNKNOWN_ERROR"
)

// ParseErrorCode разбирает код из ответа сервера. Незнакомые значения
// превращаются в CodeUnknown.
func ParseErrorCode(s string) ErrorCode {
	switch code := ErrorCode(s); code {
	case CodeNotFound, CodeDuplicateURL, CodeServerError, CodeValidation, CodeUnknown:
		return code
	default:
		return CodeUnknown
	}
}

// HTTPStatus возвращает HTTP-статус для кода ошибки.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicateURL:
		return http.StatusUnprocessableEntity
	case CodeValidation:
		return http.StatusBadRequest
	case CodeServerError, CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Message текст ошибки для пользователя.
func (c ErrorCode) Message() string {
	switch c {
	case CodeNotFound:
		return "this short URL was not found"
	case CodeDuplicateURL:
		return "this short URL already exists"
	case CodeValidation:
		return "invalid request"
	case CodeServerError, CodeUnknown:
		return "unknown error"
	default:
		return "unknown error"
	}
}

// Error ошибка предметной области с кодом.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по коду, так что errors.Is(err, ErrNotFound)
// срабатывает для любой ошибки с кодом URL_NOT_FOUND.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrNotFound     = &Error{Code: CodeNotFound}
	ErrDuplicateURL = &Error{Code: CodeDuplicateURL}
	ErrValidation   = &Error{Code: CodeValidation}
)

// CodeOf классифицирует ошибку. Всё, что не является *Error, считается
// ошибкой сервера.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeServerError
}

// ServerError оборачивает непредвиденную ошибку хранилища.
func ServerError(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Code: CodeServerError, Err: err}
}
