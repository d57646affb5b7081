package bot

import (
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"
	"github.com/NogiBatia/BOT2/core/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// App implements router.Conversation: the message router consults these
// three methods to decide whether unmatched input belongs to an
// in-flight flow.

// InProgress reports whether the sender has a pending conversation step.
func (a *App) InProgress(c tele.Context) (bool, error) {
	ctx := tghelpers.BuildContext(c)
	return a.states.InProgress(ctx, c.Sender().ID)
}

// Abandon drops the pending step. The router calls it before any menu
// button or command dispatch, which is what guarantees users can always
// escape a broken flow.
func (a *App) Abandon(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return a.states.Clear(ctx, c.Sender().ID)
}

// Resume feeds the update to the handler of the pending step. Only the
// ban check applies here: a mid-form user is not interrupted by a
// subscription lapse.
func (a *App) Resume(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	u, err := a.ensureUser(c)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	if u.IsBanned {
		_ = a.states.Clear(ctx, userID)
		return tghelpers.SendText(c, msgBanned)
	}

	rec, ok, err := a.states.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return a.handleUnknownText(c)
	}

	switch rec.State {
	case StateSlotPhoto:
		return a.stepSlotPhoto(c)
	case StateSlotDescription:
		return a.stepSlotDescription(c, rec)
	case StateSlotPrice:
		return a.stepSlotPrice(c, rec)
	case StateSlotContact:
		return a.stepSlotContact(c, rec)
	case StateNameChange:
		return a.stepNameChange(c)
	case StatePromoEnter:
		return a.stepPromoEnter(c)
	case StateWithdrawCard:
		return a.stepWithdrawCard(c)
	case StateWithdrawAmount:
		return a.stepWithdrawAmount(c, rec)
	case StateTransferRecipient:
		return a.stepTransferRecipient(c)
	case StateTransferAmount:
		return a.stepTransferAmount(c, rec)
	case StateSupportMessage:
		return a.stepSupportMessage(c)
	case StateReviewText:
		return a.stepReviewText(c, rec)
	case StateTopUpUser:
		return a.stepTopUpUser(c)
	case StateTopUpAmount:
		return a.stepTopUpAmount(c, rec)
	case StateAdminAdd:
		return a.stepAdminAdd(c)
	case StateAdminRemove:
		return a.stepAdminRemove(c)
	case StateWithdrawReject:
		return a.stepWithdrawReject(c, rec)
	case StateTicketReply:
		return a.stepTicketReply(c, rec)
	case StatePromoName:
		return a.stepPromoName(c)
	case StatePromoAmount:
		return a.stepPromoAmount(c, rec)
	case StatePromoUses:
		return a.stepPromoUses(c, rec)
	case StateBroadcast:
		return a.stepBroadcast(c)
	}

	// Stored labels can predate a deploy; treat them as recoverable.
	logOr(logger.TG).LogAttrs(ctx, slog.LevelWarn, "fsm.unknown_state",
		slog.Int64("user_id", userID),
		slog.String("state", string(rec.State)),
	)
	_ = a.states.Clear(ctx, userID)
	return a.sendMainMenu(c, msgFlowReset)
}

// setState is a thin wrapper shared by all flow starters.
func (a *App) setState(c tele.Context, st state.State, payload any) error {
	ctx := tghelpers.BuildContext(c)
	return a.states.Set(ctx, c.Sender().ID, st, payload)
}

// clearState drops the sender's pending step.
func (a *App) clearState(c tele.Context) {
	ctx := tghelpers.BuildContext(c)
	_ = a.states.Clear(ctx, c.Sender().ID)
}

// draft decodes the record payload; a corrupt draft aborts the flow.
func draft[T any](a *App, c tele.Context, rec state.Record) (T, bool) {
	v, err := state.Decode[T](rec)
	if err != nil {
		a.clearState(c)
		return v, false
	}
	return v, true
}
