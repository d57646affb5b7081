package router

import (
	"github.com/NogiBatia/BOT2/core/logger"
	tg "github.com/NogiBatia/BOT2/core/telegram"
	"github.com/NogiBatia/BOT2/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	// Conversation, when set, is abandoned before every command so a
	// slash command always interrupts an in-flight flow.
	Conversation  Conversation
	IsAdmin       middleware.AdminChecker
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares per-endpoint command handlers wrapped with
// shared middleware. Registered commands dispatch here directly; the
// text router only sees aliases and unregistered slash text.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOpts := middleware.AdminOptions{
		IsAdmin:  opts.IsAdmin,
		OnReject: opts.OnAdminReject,
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		if opts.Conversation != nil {
			inner := h
			h = func(c tele.Context) error {
				if err := opts.Conversation.Abandon(c); err != nil {
					return err
				}
				return inner(c)
			}
		}
		if def.AdminOnly {
			h = middleware.AdminOnlyMiddleware(adminOpts)(h)
		}
		h = middleware.LoggerMiddleware(h)
		h = middleware.RecoverMiddleware(h)
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("menus", reg.MenuCount()),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
