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
	"github.com/NogiBatia/BOT2/internal/store"

	tele "gopkg.in/telebot.v4"
)

// User side: opening a ticket.

func (a *App) handleSupportStart(c tele.Context) error {
	if err := a.setState(c, StateSupportMessage, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgSupportPrompt)
}

func (a *App) stepSupportMessage(c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return tghelpers.SendText(c, msgSupportPrompt)
	}

	ctx := tghelpers.BuildContext(c)
	ticket, err := a.support.Open(ctx, c.Sender().ID, text)
	if err != nil {
		a.clearState(c)
		return a.sendMainMenu(c, msgTryLater)
	}
	a.clearState(c)

	a.notifyAdmins(ctx,
		fmt.Sprintf("📞 New ticket #%d from user %d:\n\n%s", ticket.ID, ticket.UserID, ticket.Message),
		ticketReplyMarkup(ticket.ID))

	return a.sendMainMenu(c, msgSupportCreated)
}

// Admin side: listing and answering.

func (a *App) handleAdminTickets(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	tickets, err := a.support.OpenTickets(ctx)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	if len(tickets) == 0 {
		return tghelpers.SendText(c, msgNoTickets)
	}
	for _, t := range tickets {
		err := tghelpers.SendText(c,
			fmt.Sprintf("📞 Ticket #%d from user %d:\n\n%s", t.ID, t.UserID, t.Message),
			&tele.SendOptions{ReplyMarkup: ticketReplyMarkup(t.ID)})
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) handleTicketReplyStart(c tele.Context) error {
	ticketID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	d := TicketReplyDraft{TicketID: ticketID}
	if err := a.setState(c, StateTicketReply, d); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgTicketReply)
}

func (a *App) stepTicketReply(c tele.Context, rec state.Record) error {
	d, ok := draft[TicketReplyDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	answer := strings.TrimSpace(c.Text())
	if answer == "" {
		return tghelpers.SendText(c, msgTicketReply)
	}

	ctx := tghelpers.BuildContext(c)
	ticket, err := a.support.Answer(ctx, d.TicketID, answer)
	a.clearState(c)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return a.sendMainMenu(c, msgTicketGone)
	case err != nil:
		return a.sendMainMenu(c, msgTryLater)
	}

	a.notify(ctx, ticket.UserID,
		fmt.Sprintf("📞 Support replied to your ticket #%d:\n\n%s", ticket.ID, ticket.Answer))
	return a.sendMainMenu(c, msgTicketAnswered)
}

func ticketReplyMarkup(ticketID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{{
		Text:   "📝 Reply",
		Unique: "ticket_reply",
		Data:   strconv.FormatInt(ticketID, 10),
	}})
}
