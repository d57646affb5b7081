package bot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/NogiBatia/BOT2/core/telegram/callbacks"
	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"
	"github.com/NogiBatia/BOT2/core/telegram/keyboard"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/service"
	"github.com/NogiBatia/BOT2/internal/store"

	tele "gopkg.in/telebot.v4"
)

// handleBuy reserves a slot: the buyer's funds move into escrow and
// the seller is asked to hand the NFT over.
func (a *App) handleBuy(c tele.Context) error {
	slotID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	purchase, slot, err := a.deals.Reserve(ctx, c.Sender().ID, slotID)
	switch {
	case errors.Is(err, service.ErrSelfPurchase):
		return tghelpers.SendText(c, msgSelfPurchase)
	case errors.Is(err, store.ErrInsufficientFunds):
		return tghelpers.SendText(c, msgNoFunds)
	case errors.Is(err, store.ErrSlotUnavailable), errors.Is(err, store.ErrNotFound):
		return tghelpers.SendText(c, msgSlotGone)
	case err != nil:
		return tghelpers.SendText(c, msgTryLater)
	}

	a.notify(ctx, slot.SellerID,
		fmt.Sprintf("💰 Your NFT #%d has been bought for %s!\n"+
			"Deliver it to the buyer, then press the button below.",
			slot.ID, fmtAmount(purchase.Amount)),
		keyboard.InlineButtons([]keyboard.InlineBtn{{
			Text:   "📤 I sent the NFT",
			Unique: "deal_sent",
			Data:   strconv.FormatInt(purchase.ID, 10),
		}}))

	return tghelpers.SendText(c,
		msgDealReserved+fmt.Sprintf("\n\n📞 Seller contact: %s", slot.Contact))
}

// handleConfirmSent is the seller's half of the handshake.
func (a *App) handleConfirmSent(c tele.Context) error {
	purchaseID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	purchase, err := a.deals.ConfirmSent(ctx, c.Sender().ID, purchaseID)
	switch {
	case errors.Is(err, service.ErrNotDealParty):
		return tghelpers.SendText(c, msgDealNotYours)
	case errors.Is(err, store.ErrNotFound):
		return tghelpers.SendText(c, msgDealGone)
	case err != nil:
		return tghelpers.SendText(c, msgTryLater)
	}

	payload := strconv.FormatInt(purchase.ID, 10)
	a.notify(ctx, purchase.BuyerID,
		fmt.Sprintf("📤 The seller marked deal #%d as sent.\n"+
			"Confirm once you actually receive the NFT.", purchase.ID),
		keyboard.InlineButtonsRows(
			[]keyboard.InlineBtn{{Text: "✅ I received the NFT", Unique: "deal_recv", Data: payload}},
			[]keyboard.InlineBtn{{Text: "❌ Cancel the deal", Unique: "deal_cancel", Data: payload}},
		))

	return tghelpers.SendText(c, msgDealSent)
}

// handleConfirmReceived settles the deal: the escrowed amount is paid
// out to the seller and both sides are asked to rate each other.
func (a *App) handleConfirmReceived(c tele.Context) error {
	purchaseID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	purchase, err := a.deals.ConfirmReceived(ctx, c.Sender().ID, purchaseID)
	switch {
	case errors.Is(err, service.ErrNotDealParty):
		return tghelpers.SendText(c, msgDealNotYours)
	case errors.Is(err, service.ErrSellerNotConfirmed):
		return tghelpers.SendText(c, msgSellerNotConfirm)
	case errors.Is(err, store.ErrNotFound):
		return tghelpers.SendText(c, msgDealGone)
	case err != nil:
		return tghelpers.SendText(c, msgTryLater)
	}

	a.notify(ctx, purchase.SellerID,
		fmt.Sprintf("🎉 Deal #%d is complete, %s is on your balance!\n%s",
			purchase.ID, fmtAmount(purchase.Amount), msgRatePrompt),
		rateMarkup(purchase.ID, model.RoleBuyer))

	return tghelpers.SendText(c, msgDealCompleted+"\n"+msgRatePrompt,
		&tele.SendOptions{ReplyMarkup: rateMarkup(purchase.ID, model.RoleSeller)})
}

// handleCancelDeal refunds the buyer and relists the slot. The buyer
// can do this at any point before confirming receipt, including after
// the seller already pressed "sent".
func (a *App) handleCancelDeal(c tele.Context) error {
	purchaseID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	purchase, err := a.deals.Cancel(ctx, c.Sender().ID, purchaseID)
	switch {
	case errors.Is(err, service.ErrNotDealParty):
		return tghelpers.SendText(c, msgDealNotYours)
	case errors.Is(err, store.ErrNotFound):
		return tghelpers.SendText(c, msgDealGone)
	case err != nil:
		return tghelpers.SendText(c, msgTryLater)
	}

	a.notify(ctx, purchase.SellerID,
		fmt.Sprintf("↩️ The buyer cancelled deal #%d. Your NFT is listed again.", purchase.ID))

	return tghelpers.SendText(c, msgDealCancelled)
}

// rateMarkup builds the five star buttons; role names the side being
// rated.
func rateMarkup(purchaseID int64, rated model.Role) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, 5)
	for stars := 1; stars <= 5; stars++ {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   strconv.Itoa(stars) + "⭐",
			Unique: "rate",
			Data:   fmt.Sprintf("%d|%s|%d", purchaseID, rated, stars),
		})
	}
	return keyboard.InlineButtonsNPerRow(buttons, 5)
}
