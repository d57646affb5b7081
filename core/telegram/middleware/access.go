package middleware

import (
	"context"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// AdminChecker reports whether a user currently holds admin rights.
// Implementations are expected to consult authoritative storage rather
// than a process-local cache, so grants and revocations apply immediately.
type AdminChecker func(ctx context.Context, userID int64) (bool, error)

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	IsAdmin  AdminChecker
	OnReject tele.HandlerFunc
}

// AdminOnlyMiddleware ensures that only admin users can invoke downstream handlers.
// A missing checker or a check failure denies access.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			reject := func() error {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			if opts.IsAdmin == nil {
				return reject()
			}
			ctx := tghelpers.BuildContext(c)
			ok, err := opts.IsAdmin(ctx, c.Sender().ID)
			if err != nil {
				logger.TG.LogAttrs(ctx, slog.LevelError, "access.admin_check_failed",
					slog.Int64("user_id", c.Sender().ID),
					slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
				)
				return reject()
			}
			if !ok {
				return reject()
			}
			return next(c)
		}
	}
}
