package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"concept_flash/internal/config"
	"concept_flash/internal/model"
	"concept_flash/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

type subjectCtxKey struct{}

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークン (HS256) を検証するミドルウェア。
// auth.enabled が false の場合は何もしない。
func JWTAuthMiddleware(cfg config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				appErr := model.NewAppError("UNAUTHORIZED", "Authorization header format must be 'Bearer {token}'.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			token, err := jwt.Parse(headerParts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				if cfg.JWTSecret == "" {
					return nil, errors.New("jwt secret is not configured")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "The token is invalid.", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			subject, _ := token.Claims.GetSubject()
			ctx := context.WithValue(r.Context(), subjectCtxKey{}, subject)
			next.ServeHTTP(w, r.WithContext(WithLogger(ctx, logger.With("sub", subject))))
		})
	}
}

// SubjectFromContext は認証済みリクエストのトークン subject を返します。
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectCtxKey{}).(string)
	return sub, ok
}
