package bot

import (
	"strings"

	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"
	"github.com/NogiBatia/BOT2/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// handleProfile shows the sender's card with the wallet actions.
func (a *App) handleProfile(c tele.Context) error {
	u, err := a.ensureUser(c)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✏️ Change name", Unique: "change_name", Data: "1"},
			{Text: "⭐ My reviews", Unique: "my_reviews", Data: "1"},
		},
		[]keyboard.InlineBtn{
			{Text: "💸 Withdraw", Unique: "withdraw", Data: "1"},
			{Text: "🔁 Transfer", Unique: "transfer", Data: "1"},
		},
		[]keyboard.InlineBtn{
			{Text: "🎁 Promo code", Unique: "promo_enter", Data: "1"},
		},
	)
	return tghelpers.SendMD(c, profileText(u), markup)
}

func (a *App) handleChangeNameStart(c tele.Context) error {
	if err := a.setState(c, StateNameChange, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgNamePrompt)
}

func (a *App) stepNameChange(c tele.Context) error {
	name := strings.TrimSpace(c.Text())
	if len([]rune(name)) < 2 {
		return tghelpers.SendText(c, msgNameTooShort)
	}
	ctx := tghelpers.BuildContext(c)
	if err := a.users.ChangeName(ctx, c.Sender().ID, name); err != nil {
		a.clearState(c)
		return a.sendMainMenu(c, msgTryLater)
	}
	a.clearState(c)
	return a.sendMainMenu(c, msgNameChanged)
}
