package router

import (
	"time"

	tg "github.com/NogiBatia/BOT2/core/telegram"
	"github.com/NogiBatia/BOT2/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversation is the minimal interface the message router needs from a
// conversation state tracker.
type Conversation interface {
	// InProgress reports whether the sender has a pending conversation step.
	InProgress(c tele.Context) (bool, error)
	// Resume feeds the update to the handler of the pending step.
	Resume(c tele.Context) error
	// Abandon discards the pending step, if any.
	Abandon(c tele.Context) error
}

// TextOptions controls fallback behaviour for text/photo updates.
type TextOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownPhoto tele.HandlerFunc
}

// TextRoutes builds handlers for text and photo routing.
//
// Menu buttons and commands win over a pending conversation: matching
// either abandons the in-flight step before dispatch, so a user who taps
// a button mid-flow starts fresh instead of having the label swallowed
// as flow input. Only unmatched text reaches the pending step.
func TextRoutes(conv Conversation, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if menuHandler, ok := reg.LookupMenu(text); ok {
				name := "menu." + normalizeHandlerName(text)
				return handleWithSummary(c, name, start, "", "", func() error {
					if conv != nil {
						if err := conv.Abandon(c); err != nil {
							return err
						}
					}
					return menuHandler(c)
				})
			}
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					if conv != nil {
						if err := conv.Abandon(c); err != nil {
							return err
						}
					}
					return cmd.Handler(c)
				})
			}
		}

		if conv != nil {
			pending, err := conv.InProgress(c)
			if err != nil {
				return err
			}
			if pending {
				return handleWithSummary(c, "conversation", start, "", "", func() error {
					return conv.Resume(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	photoHandler := func(c tele.Context) error {
		start := time.Now()
		if conv != nil {
			pending, err := conv.InProgress(c)
			if err != nil {
				return err
			}
			if pending {
				return handleWithSummary(c, "conversation_photo", start, "", "", func() error {
					return conv.Resume(c)
				})
			}
		}
		if opts.UnknownPhoto != nil {
			return handleWithSummary(c, "unexpected_photo", start, "", "", func() error {
				return opts.UnknownPhoto(c)
			})
		}
		logHandlerSummary(c, "unexpected_photo", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
		{
			Endpoint: tele.OnPhoto,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(photoHandler)),
		},
	}
}
