package utils

import "context"

type contextKey string

const authTokenKey contextKey = "authToken"

// WithAuthToken кладет токен бэкенда в контекст запроса.
// Его выставляет сессионный middleware, а читает backend-адаптер.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

// AuthTokenFromContext возвращает токен бэкенда из контекста, если он там есть.
func AuthTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(authTokenKey).(string)
	return token, ok && token != ""
}
