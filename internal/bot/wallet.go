package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"
	"github.com/NogiBatia/BOT2/core/telegram/keyboard"
	"github.com/NogiBatia/BOT2/core/telegram/state"
	"github.com/NogiBatia/BOT2/internal/service"
	"github.com/NogiBatia/BOT2/internal/store"

	tele "gopkg.in/telebot.v4"
)

// Withdrawal flow: card, then amount. The amount is debited
// immediately and held until an admin decides.

func (a *App) handleWithdrawStart(c tele.Context) error {
	if err := a.setState(c, StateWithdrawCard, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgWithdrawCard)
}

func (a *App) stepWithdrawCard(c tele.Context) error {
	card := strings.TrimSpace(c.Text())
	if len(card) < 16 {
		return tghelpers.SendText(c, msgWithdrawCardShort)
	}
	if err := a.setState(c, StateWithdrawAmount, WithdrawDraft{Card: card}); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgWithdrawAmount)
}

func (a *App) stepWithdrawAmount(c tele.Context, rec state.Record) error {
	d, ok := draft[WithdrawDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	amount, ok := tghelpers.ParseAmount(c.Text())
	if !ok {
		return tghelpers.SendText(c, msgWithdrawAmountBad)
	}

	ctx := tghelpers.BuildContext(c)
	req, err := a.wallet.RequestWithdraw(ctx, c.Sender().ID, d.Card, amount)
	switch {
	case errors.Is(err, store.ErrInsufficientFunds):
		return tghelpers.SendText(c, msgWithdrawAmountBad)
	case err != nil:
		a.clearState(c)
		return a.sendMainMenu(c, msgTryLater)
	}
	a.clearState(c)

	payload := strconv.FormatInt(req.ID, 10)
	a.notifyAdmins(ctx,
		fmt.Sprintf("💸 Withdrawal request #%d\nUser: %d\nAmount: %s\nCard: %s",
			req.ID, req.UserID, fmtAmount(req.Amount), req.Card),
		keyboard.InlineButtonsRows([]keyboard.InlineBtn{
			{Text: "✅ Approve", Unique: "wd_approve", Data: payload},
			{Text: "❌ Reject", Unique: "wd_reject", Data: payload},
		}))

	return a.sendMainMenu(c, msgWithdrawRequested)
}

// Transfer flow: recipient id, then amount.

func (a *App) handleTransferStart(c tele.Context) error {
	if err := a.setState(c, StateTransferRecipient, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgTransferRecipient)
}

func (a *App) stepTransferRecipient(c tele.Context) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil || id <= 0 {
		return tghelpers.SendText(c, msgTransferBadID)
	}
	if id == c.Sender().ID {
		return tghelpers.SendText(c, msgTransferSelf)
	}

	ctx := tghelpers.BuildContext(c)
	if _, err := tghelpers.ResolveUser(ctx, a.users, id); err != nil {
		return tghelpers.SendText(c, msgTransferNoUser)
	}
	if err := a.setState(c, StateTransferAmount, TransferDraft{RecipientID: id}); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgTransferAmount)
}

func (a *App) stepTransferAmount(c tele.Context, rec state.Record) error {
	d, ok := draft[TransferDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	amount, ok := tghelpers.ParseAmount(c.Text())
	if !ok {
		return tghelpers.SendText(c, msgTransferAmountBad)
	}

	ctx := tghelpers.BuildContext(c)
	err := a.wallet.Transfer(ctx, c.Sender().ID, d.RecipientID, amount)
	switch {
	case errors.Is(err, store.ErrInsufficientFunds):
		return tghelpers.SendText(c, msgTransferAmountBad)
	case errors.Is(err, service.ErrSelfTransfer):
		a.clearState(c)
		return a.sendMainMenu(c, msgTransferSelf)
	case errors.Is(err, store.ErrNotFound):
		a.clearState(c)
		return a.sendMainMenu(c, msgTransferNoUser)
	case err != nil:
		a.clearState(c)
		return a.sendMainMenu(c, msgTryLater)
	}
	a.clearState(c)

	a.notify(ctx, d.RecipientID,
		fmt.Sprintf("💰 You received a transfer of %s from user %d.",
			fmtAmount(amount), c.Sender().ID))
	return a.sendMainMenu(c, msgTransferDone)
}
