// Package bot wires the marketplace behavior onto the Telegram runtime:
// menus, conversation flows, callbacks, gating and notifications.
package bot

import (
	"context"
	"sync/atomic"

	coreconfig "github.com/NogiBatia/BOT2/core/config"
	coretelegram "github.com/NogiBatia/BOT2/core/telegram"
	"github.com/NogiBatia/BOT2/core/telegram/commands"
	"github.com/NogiBatia/BOT2/core/telegram/router"
	"github.com/NogiBatia/BOT2/core/telegram/sender"
	"github.com/NogiBatia/BOT2/core/telegram/state"
	"github.com/NogiBatia/BOT2/core/telegram/ui"
	"github.com/NogiBatia/BOT2/internal/health"
	"github.com/NogiBatia/BOT2/internal/service"
	"github.com/NogiBatia/BOT2/internal/store"

	tele "gopkg.in/telebot.v4"
)

// App is the assembled Telegram application.
type App struct {
	cfg    *coreconfig.Config
	store  store.Store
	states state.Manager

	users   *service.Users
	market  *service.Market
	deals   *service.Deals
	reviews *service.Reviews
	promo   *service.Promo
	wallet  *service.Wallet
	support *service.Support
	admin   *service.Admin

	bot        atomic.Pointer[tele.Bot]
	dispatcher atomic.Pointer[sender.Dispatcher]
	health     *health.Server
}

// New assembles the application over an initialized store.
func New(cfg *coreconfig.Config, st store.Store) *App {
	return &App{
		cfg:     cfg,
		store:   st,
		states:  state.NewManager(st),
		users:   service.NewUsers(st),
		market:  service.NewMarket(st),
		deals:   service.NewDeals(st),
		reviews: service.NewReviews(st),
		promo:   service.NewPromo(st),
		wallet:  service.NewWallet(st),
		support: service.NewSupport(st),
		admin:   service.NewAdmin(st, cfg.Telegram.AdminID),
	}
}

// TelegramRunOptions builds the runtime wiring consumed by core/cmd.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.gate(a.handleStart),
		Description: "Open the main menu",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.gate(a.handleHelp),
		Description: "How the marketplace works",
	})
	reg.RegisterCommand("/profile", commands.Command{
		Handler:     a.gate(a.handleProfile),
		Description: "Show your profile",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.adminOnly(a.handleAdminPanel),
		Description: "Admin panel",
		AdminOnly:   true,
		Hidden:      true,
	})

	a.registerMenus(reg)
	a.registerCallbacks(reg)

	var fb ui.FallbackProvider = a
	reg.SetTextFallback(fb.UnknownText())
	reg.SetCallbackNotFound(fb.UnknownCallback())

	routes := router.TextRoutes(a, reg, router.TextOptions{
		UnknownPhoto: fb.UnknownPhoto(),
	})
	routes = append(routes, router.CommandRoutes(reg, router.CommandRouteOptions{
		Conversation: a,
		IsAdmin: func(ctx context.Context, userID int64) (bool, error) {
			return a.users.IsAdmin(ctx, userID), nil
		},
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	var healthSrv *health.Server
	if a.cfg.Health.Listen != "" {
		healthSrv = health.New(a.cfg.Health.Listen)
	}
	a.health = healthSrv

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(_ context.Context, rt coretelegram.Runtime) error {
			a.bot.Store(rt.Bot)
			a.dispatcher.Store(rt.Dispatcher)
			if a.health != nil {
				a.health.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			if a.health != nil {
				return a.health.Stop(ctx)
			}
			return nil
		},
	}, nil
}

func (a *App) registerMenus(reg *coretelegram.Registry) {
	reg.RegisterMenu(MenuSellNFT, a.gate(a.handleSellNFT))
	reg.RegisterMenu(MenuBrowse, a.gate(a.handleBrowse))
	reg.RegisterMenu(MenuProfile, a.gate(a.handleProfile))
	reg.RegisterMenu(MenuMyNFTs, a.gate(a.handleMyNFTs))
	reg.RegisterMenu(MenuSupport, a.gate(a.handleSupportStart))
	reg.RegisterMenu(MenuAdmin, a.adminOnly(a.handleAdminPanel))
	reg.RegisterMenu(MenuMainBack, a.gate(a.handleStart))

	reg.RegisterMenu(MenuAdmStats, a.adminOnly(a.handleAdminStats))
	reg.RegisterMenu(MenuAdmTickets, a.adminOnly(a.handleAdminTickets))
	reg.RegisterMenu(MenuAdmUsers, a.adminOnly(a.handleAdminUsers))
	reg.RegisterMenu(MenuAdmBalance, a.adminOnly(a.handleAdminTopUpStart))
	reg.RegisterMenu(MenuAdmWithdraws, a.adminOnly(a.handleAdminWithdraws))
	reg.RegisterMenu(MenuAdmPromos, a.adminOnly(a.handleAdminPromos))
	reg.RegisterMenu(MenuAdmBroadcast, a.adminOnly(a.handleAdminBroadcastStart))
	reg.RegisterMenu(MenuAdmAdmins, a.adminOnly(a.handleAdminAdmins))
}

func (a *App) registerCallbacks(reg *coretelegram.Registry) {
	cb := func(key string, h tele.HandlerFunc) {
		_ = reg.RegisterCallback(key, a.gate(h))
	}
	adm := func(key string, h tele.HandlerFunc) {
		_ = reg.RegisterCallback(key, a.adminOnly(h))
	}

	cb("check_sub", a.handleCheckSubscription)

	cb("slot_view", a.handleSlotView)
	cb("slot_buy", a.handleBuy)
	cb("slot_del", a.handleSlotRetire)
	cb("seller_reviews", a.handleSellerReviews)

	cb("deal_sent", a.handleConfirmSent)
	cb("deal_recv", a.handleConfirmReceived)
	cb("deal_cancel", a.handleCancelDeal)

	cb("rate", a.handleRatePick)

	cb("change_name", a.handleChangeNameStart)
	cb("withdraw", a.handleWithdrawStart)
	cb("transfer", a.handleTransferStart)
	cb("my_reviews", a.handleMyReviews)
	cb("promo_enter", a.handlePromoEnterStart)

	adm("ban", a.handleBanToggle)
	adm("wd_approve", a.handleWithdrawApprove)
	adm("wd_reject", a.handleWithdrawRejectStart)
	adm("ticket_reply", a.handleTicketReplyStart)
	adm("promo_new", a.handlePromoCreateStart)
	adm("adm_add", a.handleAdminAddStart)
	adm("adm_del", a.handleAdminRemove)
}

func (a *App) telebot() *tele.Bot {
	return a.bot.Load()
}
