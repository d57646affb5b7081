package bot

import (
	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	return a.sendMainMenu(c, msgWelcome)
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendText(c, msgHelp)
}

// handleUnknownText is the terminal fallback: no menu label, no
// command, no pending conversation matched the message.
func (a *App) handleUnknownText(c tele.Context) error {
	return a.sendMainMenu(c, msgUseMenu)
}

// handleUnexpectedPhoto covers photos sent outside the one flow step
// that expects them.
func (a *App) handleUnexpectedPhoto(c tele.Context) error {
	return a.sendMainMenu(c, msgUseMenu)
}

// App satisfies ui.FallbackProvider so the registry and routes can be
// wired against the interface instead of individual handlers.
func (a *App) UnknownText() tele.HandlerFunc  { return a.gate(a.handleUnknownText) }
func (a *App) UnknownPhoto() tele.HandlerFunc { return a.gate(a.handleUnexpectedPhoto) }

func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: msgNotAllowed})
	}
}

// sendMainMenu replies with text plus the persistent reply keyboard,
// shaped by the sender's admin flag.
func (a *App) sendMainMenu(c tele.Context, text string) error {
	isAdmin := false
	if u, err := a.ensureUser(c); err == nil {
		isAdmin = u.IsAdmin
	}
	return tghelpers.SendText(c, text, &tele.SendOptions{ReplyMarkup: mainMenu(isAdmin)})
}
