package bot

import (
	"errors"
	"fmt"
	"strings"

	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"
	"github.com/NogiBatia/BOT2/core/telegram/keyboard"
	"github.com/NogiBatia/BOT2/core/telegram/state"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/service"
	"github.com/NogiBatia/BOT2/internal/store"

	tele "gopkg.in/telebot.v4"
)

// User side: promo code activation.

func (a *App) handlePromoEnterStart(c tele.Context) error {
	if err := a.setState(c, StatePromoEnter, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgPromoPrompt)
}

func (a *App) stepPromoEnter(c tele.Context) error {
	code := strings.TrimSpace(c.Text())
	if code == "" {
		return tghelpers.SendText(c, msgPromoPrompt)
	}

	ctx := tghelpers.BuildContext(c)
	promo, err := a.promo.Activate(ctx, c.Sender().ID, code)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return tghelpers.SendText(c, msgPromoNotFound)
	case errors.Is(err, service.ErrPromoAlreadyActivated):
		a.clearState(c)
		return a.sendMainMenu(c, msgPromoUsed)
	case errors.Is(err, store.ErrPromoExhausted):
		a.clearState(c)
		return a.sendMainMenu(c, msgPromoExhausted)
	case err != nil:
		a.clearState(c)
		return a.sendMainMenu(c, msgTryLater)
	}
	a.clearState(c)
	return a.sendMainMenu(c,
		fmt.Sprintf("🎉 Promo code activated, %s added to your balance!", fmtAmount(promo.Amount)))
}

// Admin side: listing and creation.

func (a *App) handleAdminPromos(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	promos, err := a.promo.List(ctx)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}

	var b strings.Builder
	if len(promos) == 0 {
		b.WriteString(msgNoPromos)
	} else {
		b.WriteString("🎁 Promo codes:\n")
		for _, p := range promos {
			fmt.Fprintf(&b, "  %s · %s · %d/%d used\n",
				p.Code, fmtAmount(p.Amount), p.UsedCount, p.MaxActivations)
		}
	}
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "➕ New promo code", Unique: "promo_new", Data: "1"},
	})
	return tghelpers.SendText(c, b.String(), &tele.SendOptions{ReplyMarkup: markup})
}

func (a *App) handlePromoCreateStart(c tele.Context) error {
	if err := a.setState(c, StatePromoName, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgPromoName)
}

func (a *App) stepPromoName(c tele.Context) error {
	code := strings.TrimSpace(c.Text())
	if len([]rune(code)) < 3 {
		return tghelpers.SendText(c, msgPromoNameShort)
	}
	if err := a.setState(c, StatePromoAmount, PromoDraft{Code: code}); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgPromoAmount)
}

func (a *App) stepPromoAmount(c tele.Context, rec state.Record) error {
	d, ok := draft[PromoDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	amount, ok := tghelpers.ParseAmount(c.Text())
	if !ok {
		return tghelpers.SendText(c, msgTopUpBadAmount)
	}
	d.Amount = amount
	if err := a.setState(c, StatePromoUses, d); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgPromoUses)
}

func (a *App) stepPromoUses(c tele.Context, rec state.Record) error {
	d, ok := draft[PromoDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	uses, ok := tghelpers.ParsePositiveInt(c.Text())
	if !ok {
		return tghelpers.SendText(c, msgPromoUsesBad)
	}

	ctx := tghelpers.BuildContext(c)
	promo := &model.PromoCode{
		Code:           d.Code,
		Amount:         d.Amount,
		MaxActivations: uses,
		CreatedBy:      c.Sender().ID,
	}
	err := a.promo.Create(ctx, promo)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		if err := a.setState(c, StatePromoName, nil); err != nil {
			return tghelpers.SendText(c, msgTryLater)
		}
		return tghelpers.SendText(c, msgPromoExists)
	case err != nil:
		a.clearState(c)
		return a.sendMainMenu(c, msgTryLater)
	}
	a.clearState(c)
	return a.sendMainMenu(c,
		fmt.Sprintf(msgPromoCreatedFmt, promo.Code, fmtAmount(promo.Amount), promo.MaxActivations))
}
