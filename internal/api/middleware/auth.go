package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
)

type contextKey string

const businessIDKey contextKey = "businessID"

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
)

// OwnerClaims claims токена владельца бизнеса
type OwnerClaims struct {
	BusinessID int64 `json:"business_id"`
	jwt.RegisteredClaims
}

// Auth проверяет HMAC-подписанный JWT владельца и кладёт business_id в контекст
func Auth(secret, issuer string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				logger.Warn("Auth: missing bearer token for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := ParseOwnerToken(strings.TrimPrefix(header, "Bearer "), secret, issuer)
			if err != nil {
				logger.Warn("Auth: rejected token for %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := WithBusinessID(r.Context(), claims.BusinessID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseOwnerToken проверяет подпись, срок действия и issuer токена
func ParseOwnerToken(tokenString, secret, issuer string) (*OwnerClaims, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &OwnerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.BusinessID <= 0 {
		return nil, errors.New("business_id claim is missing")
	}

	return claims, nil
}

// IssueOwnerToken подписывает токен владельца (используется в тестах и утилитах)
func IssueOwnerToken(businessID int64, secret, issuer string, claims jwt.RegisteredClaims) (string, error) {
	claims.Issuer = issuer
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, OwnerClaims{
		BusinessID:       businessID,
		RegisteredClaims: claims,
	})
	return token.SignedString([]byte(secret))
}

// WithBusinessID кладёт идентификатор бизнеса владельца в контекст
func WithBusinessID(ctx context.Context, businessID int64) context.Context {
	return context.WithValue(ctx, businessIDKey, businessID)
}

// BusinessIDFromContext возвращает идентификатор бизнеса владельца из контекста
func BusinessIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(businessIDKey).(int64)
	return id, ok
}
