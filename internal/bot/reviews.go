package bot

import (
	"errors"
	"strconv"
	"strings"

	"github.com/NogiBatia/BOT2/core/telegram/callbacks"
	tghelpers "github.com/NogiBatia/BOT2/core/telegram/helpers"
	"github.com/NogiBatia/BOT2/core/telegram/state"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/service"
	"github.com/NogiBatia/BOT2/internal/store"

	tele "gopkg.in/telebot.v4"
)

// handleRatePick receives a star button press and opens the optional
// review text step.
func (a *App) handleRatePick(c tele.Context) error {
	args := callbacks.Args(c)
	if len(args) != 3 {
		return nil
	}
	purchaseID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || purchaseID <= 0 {
		return nil
	}
	role := model.Role(args[1])
	if role != model.RoleSeller && role != model.RoleBuyer {
		return nil
	}
	rating, err := strconv.Atoi(args[2])
	if err != nil || rating < 1 || rating > 5 {
		return nil
	}

	d := ReviewDraft{PurchaseID: purchaseID, Role: role, Rating: rating}
	if err := a.setState(c, StateReviewText, d); err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, msgReviewText)
}

func (a *App) stepReviewText(c tele.Context, rec state.Record) error {
	d, ok := draft[ReviewDraft](a, c, rec)
	if !ok {
		return a.sendMainMenu(c, msgFlowReset)
	}
	text := strings.TrimSpace(c.Text())
	if text == "-" {
		text = ""
	}

	ctx := tghelpers.BuildContext(c)
	review, err := a.reviews.Submit(ctx, c.Sender().ID, d.PurchaseID, d.Role, d.Rating, text)
	a.clearState(c)
	switch {
	case errors.Is(err, service.ErrAlreadyRated):
		return a.sendMainMenu(c, msgAlreadyRated)
	case errors.Is(err, service.ErrNotDealParty):
		return a.sendMainMenu(c, msgDealNotYours)
	case errors.Is(err, store.ErrNotFound):
		return a.sendMainMenu(c, msgDealGone)
	case err != nil:
		return a.sendMainMenu(c, msgTryLater)
	}

	a.notify(ctx, review.UserID,
		"⭐ You received a new "+strconv.Itoa(review.Rating)+"-star review!")
	return a.sendMainMenu(c, msgReviewThanks)
}

// handleMyReviews shows the reviews the sender has received, split by
// role.
func (a *App) handleMyReviews(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	asSeller, err := a.reviews.For(ctx, userID, model.RoleSeller)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	asBuyer, err := a.reviews.For(ctx, userID, model.RoleBuyer)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}

	text := "⭐ As a seller:\n" + reviewLines(asSeller) +
		"\n⭐ As a buyer:\n" + reviewLines(asBuyer)
	return tghelpers.SendText(c, text)
}

// handleSellerReviews shows another user's seller-side reviews from a
// slot card.
func (a *App) handleSellerReviews(c tele.Context) error {
	sellerID, ok := callbacks.ID(c)
	if !ok {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	reviews, err := a.reviews.For(ctx, sellerID, model.RoleSeller)
	if err != nil {
		return tghelpers.SendText(c, msgTryLater)
	}
	return tghelpers.SendText(c, "⭐ Seller reviews:\n"+reviewLines(reviews))
}
