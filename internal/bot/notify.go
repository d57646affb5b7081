package bot

import (
	"context"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"

	tele "gopkg.in/telebot.v4"
)

// notify delivers a best-effort message to an arbitrary user through
// the async sender. Delivery failures are logged and swallowed so the
// triggering operation is never rolled back over a blocked chat.
func (a *App) notify(ctx context.Context, userID int64, text string, markup ...*tele.ReplyMarkup) {
	b := a.telebot()
	if b == nil {
		return
	}
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	run := func() error {
		var err error
		if rm != nil {
			_, err = b.Send(tele.ChatID(userID), text, &tele.SendOptions{ReplyMarkup: rm})
		} else {
			_, err = b.Send(tele.ChatID(userID), text)
		}
		return err
	}

	disp := a.dispatcher.Load()
	if disp == nil {
		logFailure(ctx, userID, run())
		return
	}
	if err := disp.Enqueue(ctx, "notify.user", "sendMessage", run); err != nil {
		logFailure(ctx, userID, run())
	}
}

// notifyAdmins fans a message out to every admin.
func (a *App) notifyAdmins(ctx context.Context, text string, markup ...*tele.ReplyMarkup) {
	ids, err := a.admin.AdminIDs(ctx)
	if err != nil {
		logOr(logger.TG).LogAttrs(ctx, slog.LevelWarn, "notify.admins_lookup_failed",
			slog.String("err", err.Error()),
		)
		return
	}
	for _, id := range ids {
		a.notify(ctx, id, text, markup...)
	}
}

func logFailure(ctx context.Context, userID int64, err error) {
	if err == nil {
		return
	}
	logOr(logger.TG).LogAttrs(ctx, slog.LevelWarn, "notify.send_failed",
		slog.Int64("user_id", userID),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
}
