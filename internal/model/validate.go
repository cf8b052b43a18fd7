package model

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsSlug проверяет, что строка годится в короткую ссылку:
// строчные буквы и цифры, группы разделены одиночным дефисом.
func IsSlug(s string) bool {
	return slugRegex.MatchString(s)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// в сообщениях используем имена полей из json
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// CreateLinkRequest тело запроса POST /urls.
type CreateLinkRequest struct {
	OriginalURL string `json:"original_url" validate:"required,http_url"`
	ShortURL    string `json:"short_url" validate:"required,slug"`
}

// Validate проверяет запрос на создание ссылки.
func (r CreateLinkRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &Error{Code: CodeValidation, Err: err}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldMessage(fe))
	}
	return &Error{Code: CodeValidation, Err: errors.New(strings.Join(messages, "; "))}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "http_url":
		return fmt.Sprintf("%s must be a valid http or https URL", fe.Field())
	case "slug":
		return fmt.Sprintf("%s must be lowercase letters and digits separated by single hyphens", fe.Field())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

// ValidateSlug проверяет slug из пути запроса.
func ValidateSlug(slug string) error {
	if !IsSlug(slug) {
		return &Error{Code: CodeValidation, Err: fmt.Errorf("invalid short url %q", slug)}
	}
	return nil
}
