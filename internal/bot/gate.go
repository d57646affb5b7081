package bot

import (
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"
	"github.com/NogiBatia/BOT2/core/telegram/keyboard"
	"github.com/NogiBatia/BOT2/internal/model"

	tele "gopkg.in/telebot.v4"
)

const userKey = "market_user"

// channel adapts the configured channel username to a tele.Recipient.
type channel string

func (c channel) Recipient() string { return string(c) }

// gate applies the access rules to an entry point: ensure the user row
// exists, hard-stop banned users, let admins through, and require a
// live channel subscription from everyone else.
func (a *App) gate(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		u, err := a.ensureUser(c)
		if err != nil {
			return tghelpers.SendText(c, msgTryLater)
		}
		if u.IsBanned {
			return tghelpers.SendText(c, msgBanned)
		}
		if u.IsAdmin {
			return next(c)
		}
		if !a.isSubscribed(c) {
			return a.promptSubscription(c)
		}
		if !u.HasSubscribed {
			ctx := tghelpers.BuildContext(c)
			_ = a.users.MarkSubscribed(ctx, u.TelegramID)
		}
		return next(c)
	}
}

// adminOnly is the gate for admin surfaces: ban check plus a direct
// is-admin store lookup. Non-admins get no response at all.
func (a *App) adminOnly(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		u, err := a.ensureUser(c)
		if err != nil {
			return tghelpers.SendText(c, msgTryLater)
		}
		if u.IsBanned {
			return tghelpers.SendText(c, msgBanned)
		}
		if !u.IsAdmin {
			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: msgNotAllowed})
			}
			return nil
		}
		return next(c)
	}
}

// ensureUser upserts the sender and caches the row on the update
// context for the rest of the handler chain.
func (a *App) ensureUser(c tele.Context) (*model.User, error) {
	if u, ok := c.Get(userKey).(*model.User); ok && u != nil {
		return u, nil
	}
	sender := c.Sender()
	ctx := tghelpers.BuildContext(c)
	u, err := a.users.Ensure(ctx, sender.ID, sender.Username, displayName(sender))
	if err != nil {
		logOr(logger.SVCUsers).LogAttrs(ctx, slog.LevelError, "user.ensure_failed",
			slog.Int64("user_id", sender.ID),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	c.Set(userKey, u)
	return u, nil
}

func displayName(u *tele.User) string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}

// isSubscribed performs the live membership query. Transport errors
// degrade to "not subscribed".
func (a *App) isSubscribed(c tele.Context) bool {
	chUsername := a.cfg.Channel.Username
	if chUsername == "" {
		return true
	}
	b := a.telebot()
	if b == nil {
		return false
	}
	member, err := b.ChatMemberOf(channel(chUsername), c.Sender())
	if err != nil {
		ctx := tghelpers.BuildContext(c)
		logOr(logger.TG).LogAttrs(ctx, slog.LevelWarn, "gate.subscription_check_failed",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return false
	}
	switch member.Role {
	case tele.Member, tele.Administrator, tele.Creator:
		return true
	}
	return false
}

func (a *App) promptSubscription(c tele.Context) error {
	url := a.cfg.Channel.URL
	if url == "" {
		url = "https://t.me/" + trimAt(a.cfg.Channel.Username)
	}
	markup := &tele.ReplyMarkup{}
	joinBtn := markup.URL("📢 Join the channel", url)
	checkBtn := markup.Data("✅ I subscribed", "check_sub", "1")
	markup.InlineKeyboard = keyboard.ToInlineKeyboard([][]tele.Btn{{joinBtn}, {checkBtn}})
	return tghelpers.SendText(c, msgSubscribeRequired, &tele.SendOptions{ReplyMarkup: markup})
}

func trimAt(s string) string {
	if len(s) > 0 && s[0] == '@' {
		return s[1:]
	}
	return s
}

// handleCheckSubscription re-runs the gate after the user claims to
// have joined; reaching the handler body means every check passed.
func (a *App) handleCheckSubscription(c tele.Context) error {
	_ = c.Respond(&tele.CallbackResponse{Text: "✅"})
	return a.handleStart(c)
}
