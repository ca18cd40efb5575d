package entities

import (
	"context"
	"errors"
	"fmt"
)

// Категории ошибок внешних хранилищ.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrStorage          = errors.New("storage error")
	ErrTransientNetwork = errors.New("transient network error")
)

// Kind - категория ошибки.
type Kind string

// Значения Kind.
const (
	KindNone       Kind = ""
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage"
	KindTransient  Kind = "transient_network"
	KindCanceled   Kind = "canceled"
	KindUnknown    Kind = "unknown"
)

// NewValidationError сообщает об отсутствующем обязательном поле.
func NewValidationError(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}

// KindOf классифицирует ошибку.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStorage):
		return KindStorage
	case errors.Is(err, ErrTransientNetwork):
		return KindTransient
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}
