// Package services provides implementations of service interfaces.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"noteboard/internal/board/ports/services"
	"noteboard/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodValidateToken = "ValidateAccessToken"
	msgValidatingToken  = "validating token"
	msgTokenValidated   = "token validated successfully"
	msgInvalidToken     = "invalid token claims"
	msgTokenExpired     = "token has expired"
	msgErrParsingToken  = "error parsing token" //nolint:gosec
	errCtxValidating    = "validating token"
)

// Claims - утверждения токена. Субъект берется из user_id, а при его отсутствии из sub.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Owner возвращает идентификатор владельца токена.
func (c *Claims) Owner() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}

var _ services.TokenService = (*ServiceJWT)(nil)

// ServiceJWT проверяет токены HS256.
type ServiceJWT struct {
	secretKey []byte
	issuer    string
}

// NewJWT создает новый экземпляр сервиса JWT. Пустой issuer не проверяется.
func NewJWT(secretKey, issuer string) *ServiceJWT {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}
}

// ValidateAccessToken проверяет JWT токен и возвращает субъект.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxValidating, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, msgErrParsingToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxValidating, services.ErrInvalidJWTToken)
	}

	subject := claims.Owner()
	if !token.Valid || subject == "" {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w", errCtxValidating, services.ErrInvalidJWTToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("subject", subject))
	return subject, nil
}
