package services

import (
	"context"
	"errors"
)

// Ошибки проверки токена.
var (
	ErrInvalidJWTToken = errors.New("invalid token")
	ErrExpiredJWTToken = errors.New("token has expired")
)

// TokenService проверяет токен доступа и возвращает идентификатор субъекта.
type TokenService interface {
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
