package bot

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/NogiBatia/BOT2/core/logger"
	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleAdminBroadcastStart(c tele.Context) error {
	if err := a.setState(c, StateBroadcast, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgBroadcastPrompt)
}

// stepBroadcast sends the text to every registered user sequentially.
// Blocked chats and other per-user failures are counted, not fatal.
func (a *App) stepBroadcast(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return tghelpers.SendText(c, msgBroadcastPrompt)
	}
	a.clearState(c)

	ctx := tghelpers.BuildContext(c)
	users, err := a.admin.Users(ctx)
	if err != nil {
		return a.sendMainMenu(c, msgTryLater)
	}

	b := a.telebot()
	if b == nil {
		return a.sendMainMenu(c, msgTryLater)
	}

	var sentOK, sentFail int
	for _, u := range users {
		if u.IsBanned {
			continue
		}
		if _, err := b.Send(tele.ChatID(u.TelegramID), text); err != nil {
			sentFail++
			continue
		}
		sentOK++
	}

	logOr(logger.TG).LogAttrs(ctx, slog.LevelInfo, "broadcast.done",
		slog.Int64("user_id", c.Sender().ID),
		slog.Int("sent_ok", sentOK),
		slog.Int("sent_fail", sentFail),
	)
	return a.sendMainMenu(c,
		fmt.Sprintf("📢 Broadcast finished: %d delivered, %d failed.", sentOK, sentFail))
}
