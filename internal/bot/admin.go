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
	"github.com/NogiBatia/BOT2/internal/service"
	"github.com/NogiBatia/BOT2/internal/store"

	tele "gopkg.in/telebot.v4"
)

// maxUserRows caps the user listing; beyond it admins work by id.
const maxUserRows = 30

func (a *App) handleAdminPanel(c tele.Context) error {
	return tghelpers.SendText(c, msgAdminPanel, &tele.SendOptions{ReplyMarkup: adminMenu()})
}

func (a *App) handleAdminStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	stats, err := a.admin.Stats(ctx)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendMD(c, statsText(stats))
}

// handleAdminUsers lists users with a ban toggle per row.
func (a *App) handleAdminUsers(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	users, err := a.admin.Users(ctx)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 Users: %d\n", len(users))
	shown := users
	if len(shown) > maxUserRows {
		shown = shown[:maxUserRows]
		fmt.Fprintf(&b, "Showing the first %d.\n", maxUserRows)
	}
	var rows [][]keyboard.InlineBtn
	for _, u := range shown {
		flag := ""
		if u.IsBanned {
			flag = " 🚫"
		}
		if u.IsAdmin {
			flag += " 👑"
		}
		fmt.Fprintf(&b, "  %d · %s · %s%s\n", u.TelegramID, u.FullName, fmtAmount(u.Balance), flag)

		label := "🚫 Ban " + strconv.FormatInt(u.TelegramID, 10)
		if u.IsBanned {
			label = "✅ Unban " + strconv.FormatInt(u.TelegramID, 10)
		}
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   label,
			Unique: "ban",
			Data:   strconv.FormatInt(u.TelegramID, 10),
		}})
	}
	return tghelpers.SendText(c, b.String(),
		&tele.SendOptions{ReplyMarkup: keyboard.InlineButtonsRows(rows...)})
}

// handleBanToggle flips the ban flag of the user in the payload.
func (a *App) handleBanToggle(c tele.Context) error {
	userID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	u, err := tghelpers.ResolveUser(ctx, a.users, userID)
	if err != nil {
		return tghelpers.SendText(c, msgUserNotFound)
	}
	if err := a.admin.SetBanned(ctx, userID, !u.IsBanned); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	if u.IsBanned {
		a.notify(ctx, userID, msgYouUnbanned)
		return tghelpers.SendText(c, fmt.Sprintf("✅ User %d unbanned.", userID))
	}
	a.notify(ctx, userID, msgYouBanned)
	return tghelpers.SendText(c, fmt.Sprintf("🚫 User %d banned.", userID))
}

// Balance top-up flow: user id, then amount.

func (a *App) handleAdminTopUpStart(c tele.Context) error {
	if err := a.setState(c, StateTopUpUser, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgTopUpUser)
}

func (a *App) stepTopUpUser(c tele.Context) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil || id <= 0 {
		return tghelpers.SendText(c, msgBadID)
	}
	ctx := tghelpers.BuildContext(c)
	if _, err := tghelpers.ResolveUser(ctx, a.users, id); err != nil {
		return tghelpers.SendText(c, msgUserNotFound)
	}
	if err := a.setState(c, StateTopUpAmount, TopUpDraft{UserID: id}); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgTopUpAmount)
}

func (a *App) stepTopUpAmount(c tele.Context, rec state.Record) error {
	d, ok := draft[TopUpDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	amount, ok := tghelpers.ParseAmount(c.Text())
	if !ok {
		return tghelpers.SendText(c, msgTopUpBadAmount)
	}

	ctx := tghelpers.BuildContext(c)
	if err := a.wallet.TopUp(ctx, d.UserID, amount); err != nil {
		a.clearState(c)
		return a.sendMainMenu(c, msgTryLater)
	}
	a.clearState(c)

	a.notify(ctx, d.UserID,
		fmt.Sprintf("💰 An admin credited %s to your balance.", fmtAmount(amount)))
	return a.sendMainMenu(c, msgTopUpDone)
}

// Admin roster management.

func (a *App) handleAdminAdmins(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	ids, err := a.admin.AdminIDs(ctx)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}

	var b strings.Builder
	b.WriteString("👑 Admins:\n")
	var rows [][]keyboard.InlineBtn
	for _, id := range ids {
		fmt.Fprintf(&b, "  %d", id)
		if id == a.cfg.Telegram.AdminID {
			b.WriteString(" (primary)")
		}
		b.WriteString("\n")
		if id != a.cfg.Telegram.AdminID {
			rows = append(rows, []keyboard.InlineBtn{{
				Text:   "➖ Revoke " + strconv.FormatInt(id, 10),
				Unique: "adm_del",
				Data:   strconv.FormatInt(id, 10),
			}})
		}
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "➕ Add admin", Unique: "adm_add", Data: "1"}})
	return tghelpers.SendText(c, b.String(),
		&tele.SendOptions{ReplyMarkup: keyboard.InlineButtonsRows(rows...)})
}

func (a *App) handleAdminAddStart(c tele.Context) error {
	if err := a.setState(c, StateAdminAdd, nil); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgAdminAddPrompt)
}

func (a *App) stepAdminAdd(c tele.Context) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil || id <= 0 {
		return tghelpers.SendText(c, msgBadID)
	}
	ctx := tghelpers.BuildContext(c)
	err = a.admin.Promote(ctx, id)
	a.clearState(c)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return a.sendMainMenu(c, msgUserNotFound)
	case err != nil:
		return a.sendMainMenu(c, msgTryLater)
	}
	a.notify(ctx, id, "👑 You have been granted admin rights.")
	return a.sendMainMenu(c, msgAdminAdded)
}

// handleAdminRemove demotes the admin in the payload; without one it
// asks for an id.
func (a *App) handleAdminRemove(c tele.Context) error {
	id, ok := callbacks.ID(c)
	if !ok {
		if err := a.setState(c, StateAdminRemove, nil); err != nil {
			return tghelpers.SendText(c, msgTryLater)
		}
		return tghelpers.SendText(c, msgAdminAddPrompt)
	}
	return a.demote(c, id)
}

func (a *App) stepAdminRemove(c tele.Context) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil || id <= 0 {
		return tghelpers.SendText(c, msgBadID)
	}
	a.clearState(c)
	return a.demote(c, id)
}

func (a *App) demote(c tele.Context, id int64) error {
	ctx := tghelpers.BuildContext(c)
	err := a.admin.Demote(ctx, id)
	switch {
	case errors.Is(err, service.ErrPrimaryAdmin):
		return tghelpers.SendText(c, msgPrimaryAdmin)
	case errors.Is(err, store.ErrNotFound):
		return tghelpers.SendText(c, msgUserNotFound)
	case err != nil:
		return tghelpers.SendText(c, msgTryLater)
	}
	a.notify(ctx, id, "👑 Your admin rights have been revoked.")
	return tghelpers.SendText(c, msgAdminRemoved)
}

// Withdrawal processing.

func (a *App) handleAdminWithdraws(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	requests, err := a.wallet.PendingWithdraws(ctx)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	if len(requests) == 0 {
		return tghelpers.SendText(c, msgNoWithdraws)
	}
	for _, req := range requests {
		payload := strconv.FormatInt(req.ID, 10)
		err := tghelpers.SendText(c,
			fmt.Sprintf("💸 Request #%d\nUser: %d\nAmount: %s\nCard: %s",
				req.ID, req.UserID, fmtAmount(req.Amount), req.Card),
			&tele.SendOptions{ReplyMarkup: keyboard.InlineButtonsRows([]keyboard.InlineBtn{
				{Text: "✅ Approve", Unique: "wd_approve", Data: payload},
				{Text: "❌ Reject", Unique: "wd_reject", Data: payload},
			})})
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) handleWithdrawApprove(c tele.Context) error {
	reqID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	req, err := a.wallet.ApproveWithdraw(ctx, reqID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return tghelpers.SendText(c, msgNoWithdraws)
	case err != nil:
		return tghelpers.SendText(c, msgTryLater)
	}
	a.notify(ctx, req.UserID, fmt.Sprintf(msgWithdrawApprovedFmt, req.ID))
	return tghelpers.SendText(c, fmt.Sprintf("✅ Request #%d approved.", req.ID))
}

func (a *App) handleWithdrawRejectStart(c tele.Context) error {
	reqID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	if err := a.setState(c, StateWithdrawReject, RejectDraft{RequestID: reqID}); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgRejectReason)
}

func (a *App) stepWithdrawReject(c tele.Context, rec state.Record) error {
	d, ok := draft[RejectDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	reason := strings.TrimSpace(c.Text())
	if reason == "" {
		return tghelpers.SendText(c, msgRejectReason)
	}

	ctx := tghelpers.BuildContext(c)
	req, err := a.wallet.RejectWithdraw(ctx, d.RequestID, reason)
	a.clearState(c)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return a.sendMainMenu(c, msgNoWithdraws)
	case err != nil:
		return a.sendMainMenu(c, msgTryLater)
	}
	a.notify(ctx, req.UserID, fmt.Sprintf(msgWithdrawRejectedFmt, req.ID, req.Reason))
	return a.sendMainMenu(c, fmt.Sprintf("❌ Request #%d rejected.", req.ID))
}
