// Package common — context.go передаёт id игрока через context запроса.
// Кладёт его auth-middleware после проверки токена, читают все обработчики.
package common

import "context"

type ctxKey int

const playerIDKey ctxKey = iota

// WithPlayerID кладёт id игрока в контекст.
func WithPlayerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, playerIDKey, id)
}

// PlayerIDFromContext достаёт id игрока. Пустая строка — запрос без авторизации.
func PlayerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(playerIDKey).(string)
	return id
}
