package helpers

import (
	"context"
	"errors"
)

var errNoUserService = errors.New("helpers: no user service configured")

// ResolveUser fetches a domain record through any service exposing Get by
// Telegram ID. The generic type keeps the bot layer decoupled from a
// concrete user model.
func ResolveUser[T any](
	ctx context.Context,
	service interface {
		Get(context.Context, int64) (T, error)
	},
	tgID int64,
) (T, error) {
	var zero T
	if service == nil {
		return zero, errNoUserService
	}
	return service.Get(ctx, tgID)
}
