package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/kar1timmins/DineLocal/internal/api/handlers"
)

// UserIDHeader заголовок, которым API-gateway передает ID аутентифицированного пользователя
const UserIDHeader = "X-User-ID"

const msgUnauthorized = "требуется авторизация"

type contextKey string

const userIDKey contextKey = "user_id"

// Auth требует валидный X-User-ID и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.Header.Get(UserIDHeader))
		if err != nil {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, id.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID возвращает контекст с ID пользователя
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
