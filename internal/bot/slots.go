package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NogiBatia/BOT2/core/telegram/callbacks"
	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"
	"github.com/NogiBatia/BOT2/core/telegram/keyboard"
	"github.com/NogiBatia/BOT2/core/telegram/state"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/service"
	"github.com/NogiBatia/BOT2/internal/store"

	tele "gopkg.in/telebot.v4"
)

// Slot creation flow: photo, description, price, contact.

func (a *App) handleSellNFT(c tele.Context) error {
	if err := a.setState(c, StateSlotPhoto, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgSlotPhoto)
}

func (a *App) stepSlotPhoto(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return tghelpers.SendText(c, msgSlotPhotoOnly)
	}
	d := SlotDraft{PhotoID: msg.Photo.FileID}
	if err := a.setState(c, StateSlotDescription, d); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgSlotDescription)
}

func (a *App) stepSlotDescription(c tele.Context, rec state.Record) error {
	d, ok := draft[SlotDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return tghelpers.SendText(c, msgSlotDescription)
	}
	d.Description = text
	if err := a.setState(c, StateSlotPrice, d); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgSlotPrice)
}

func (a *App) stepSlotPrice(c tele.Context, rec state.Record) error {
	d, ok := draft[SlotDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	price, ok := tghelpers.ParseAmount(c.Text())
	if !ok {
		return tghelpers.SendText(c, msgSlotPriceInvalid)
	}
	d.Price = price
	if err := a.setState(c, StateSlotContact, d); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgSlotContact)
}

func (a *App) stepSlotContact(c tele.Context, rec state.Record) error {
	d, ok := draft[SlotDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	contact := strings.TrimSpace(c.Text())
	if len([]rune(contact)) < 3 {
		return tghelpers.SendText(c, msgSlotContactShort)
	}

	ctx := tghelpers.BuildContext(c)
	slot := &model.Slot{
		SellerID:    c.Sender().ID,
		PhotoID:     d.PhotoID,
		Description: d.Description,
		Price:       d.Price,
		Contact:     contact,
	}
	if err := a.market.Create(ctx, slot); err != nil {
		a.clearState(c)
		return a.sendMainMenu(c, msgTryLater)
	}
	a.clearState(c)
	return a.sendMainMenu(c, msgSlotCreated)
}

// handleBrowse lists active slots of other sellers, one line per slot
// with a view button.
func (a *App) handleBrowse(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	slots, err := a.market.Browse(ctx, c.Sender().ID)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	if len(slots) == 0 {
		return tghelpers.SendText(c, msgNoSlots)
	}

	buttons := make([]keyboard.InlineBtn, 0, len(slots))
	for _, s := range slots {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fmt.Sprintf("🎁 #%d · %s", s.ID, fmtAmount(s.Price)),
			Unique: "slot_view",
			Data:   strconv.FormatInt(s.ID, 10),
		})
	}
	return tghelpers.SendText(c,
		fmt.Sprintf("🔍 %d slots on sale, pick one:", len(slots)),
		&tele.SendOptions{ReplyMarkup: keyboard.InlineButtons(buttons)})
}

// handleSlotView shows one slot card: photo, caption and purchase
// actions.
func (a *App) handleSlotView(c tele.Context) error {
	slotID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	slot, err := a.market.Get(ctx, slotID)
	if err != nil || !slot.IsActive {
		return tghelpers.SendText(c, msgSlotGone)
	}
	seller, err := tghelpers.ResolveUser(ctx, a.users, slot.SellerID)
	if err != nil {
		seller = nil
	}

	payload := strconv.FormatInt(slot.ID, 10)
	markup := keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "💰 Buy", Unique: "slot_buy", Data: payload}},
		[]keyboard.InlineBtn{{
			Text:   "⭐ Seller reviews",
			Unique: "seller_reviews",
			Data:   strconv.FormatInt(slot.SellerID, 10),
		}},
	)
	photo := &tele.Photo{File: tele.File{FileID: slot.PhotoID}, Caption: slotCaption(slot, seller)}
	return tghelpers.SendPhoto(c, photo, &tele.SendOptions{
		ParseMode:   tele.ModeMarkdown,
		ReplyMarkup: markup,
	})
}

// handleMyNFTs shows the sender's listed slots and any deals awaiting
// an action on their side.
func (a *App) handleMyNFTs(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	mine, err := a.market.Mine(ctx, userID)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	buying, err := a.deals.BuyerDeals(ctx, userID, model.PurchasePending)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	selling, err := a.deals.SellerDeals(ctx, userID, model.PurchasePending)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}

	if len(mine) == 0 && len(buying) == 0 && len(selling) == 0 {
		return tghelpers.SendText(c, msgMySlotsEmpty)
	}

	var rows [][]keyboard.InlineBtn
	var b strings.Builder
	if len(mine) > 0 {
		b.WriteString("🎁 Your listed NFTs:\n")
		for _, s := range mine {
			fmt.Fprintf(&b, "  #%d · %s · %s\n", s.ID, fmtAmount(s.Price), s.Description)
			rows = append(rows, []keyboard.InlineBtn{{
				Text:   fmt.Sprintf("🗑 Remove #%d", s.ID),
				Unique: "slot_del",
				Data:   strconv.FormatInt(s.ID, 10),
			}})
		}
	}
	if len(selling) > 0 {
		b.WriteString("\n📤 You are selling:\n")
		for _, p := range selling {
			fmt.Fprintf(&b, "  deal #%d · %s\n", p.ID, fmtAmount(p.Amount))
			if !p.NFTSent {
				rows = append(rows, []keyboard.InlineBtn{{
					Text:   fmt.Sprintf("📤 I sent the NFT (deal #%d)", p.ID),
					Unique: "deal_sent",
					Data:   strconv.FormatInt(p.ID, 10),
				}})
			}
		}
	}
	if len(buying) > 0 {
		b.WriteString("\n📥 You are buying:\n")
		for _, p := range buying {
			fmt.Fprintf(&b, "  deal #%d · %s\n", p.ID, fmtAmount(p.Amount))
			payload := strconv.FormatInt(p.ID, 10)
			rows = append(rows, []keyboard.InlineBtn{
				{Text: fmt.Sprintf("✅ I received it (deal #%d)", p.ID), Unique: "deal_recv", Data: payload},
				{Text: "❌ Cancel", Unique: "deal_cancel", Data: payload},
			})
		}
	}

	return tghelpers.SendText(c, b.String(),
		&tele.SendOptions{ReplyMarkup: keyboard.InlineButtonsRows(rows...)})
}

// handleSlotRetire removes an active slot of the sender.
func (a *App) handleSlotRetire(c tele.Context) error {
	slotID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	err := a.market.Retire(ctx, c.Sender().ID, slotID)
	switch {
	case errors.Is(err, service.ErrNotSlotOwner):
		return c.Respond(&tele.CallbackResponse{Text: msgNotAllowed})
	case errors.Is(err, store.ErrSlotUnavailable):
		return tghelpers.SendText(c, msgSlotHeld)
	case errors.Is(err, store.ErrNotFound):
		return tghelpers.SendText(c, msgSlotGone)
	case err != nil:
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgSlotRetired)
}

