package model

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	ErrorCode ErrorCode `json:"error_code"`
	Message   string    `json:"message,omitempty"`
}
