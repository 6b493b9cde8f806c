package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/aidar/team-users-service/internal/domain"
	"github.com/aidar/team-users-service/internal/handler"
	"github.com/aidar/team-users-service/internal/metrics"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// CallerKey ключ контекста для аутентифицированного вызывающего
const CallerKey ContextKey = "caller"

// Authenticator превращает bearer токен в вызывающего
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (*domain.Caller, error)
}

// Authenticate создает middleware, которое требует API ключ или access token в заголовке Authorization
func Authenticate(auth Authenticator, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, ok := bearerToken(r)
			if !ok {
				metrics.IncAuthOutcome("authenticate", "missing")
				handler.RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "missing or malformed authorization header")
				return
			}

			caller, err := auth.Authenticate(r.Context(), credential)
			if err != nil {
				if isCredentialError(err) {
					metrics.IncAuthOutcome("authenticate", "rejected")
					handler.RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "invalid credentials")
					return
				}
				metrics.IncAuthOutcome("authenticate", "error")
				handler.HandleError(w, r, log, err)
				return
			}

			metrics.IncAuthOutcome("authenticate", string(caller.Method))
			next.ServeHTTP(w, r.WithContext(ContextWithCaller(r.Context(), caller)))
		})
	}
}

// bearerToken извлекает токен из заголовка вида "Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isCredentialError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrInvalidAPIKey)
}

// ContextWithCaller кладет вызывающего в контекст
func ContextWithCaller(ctx context.Context, caller *domain.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}

// CallerFromContext извлекает вызывающего из контекста
func CallerFromContext(ctx context.Context) *domain.Caller {
	caller, ok := ctx.Value(CallerKey).(*domain.Caller)
	if !ok {
		return nil
	}
	return caller
}
