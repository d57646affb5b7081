package service

import (
	"context"
	"testing"

	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"

	"github.com/stretchr/testify/require"
)

// completeDeal runs one full escrow cycle and returns the purchase.
func completeDeal(t *testing.T, ctx context.Context, st store.Store, deals *Deals, slot *model.Slot) *model.Purchase {
	t.Helper()
	p, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)
	_, err = deals.ConfirmSent(ctx, sellerID, p.ID)
	require.NoError(t, err)
	_, err = deals.ConfirmReceived(ctx, buyerID, p.ID)
	require.NoError(t, err)
	return p
}

func TestSubmitReviewUpdatesAggregate(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)
	reviews := NewReviews(st)

	p := completeDeal(t, ctx, st, deals, slot)

	r, err := reviews.Submit(ctx, buyerID, p.ID, model.RoleSeller, 4, "smooth deal")
	require.NoError(t, err)
	require.Equal(t, sellerID, r.UserID)

	seller, err := st.GetUser(ctx, sellerID)
	require.NoError(t, err)
	require.Equal(t, 4.0, seller.RatingSeller)
	require.Equal(t, 0.0, seller.RatingBuyer, "buyer-side aggregate stays untouched")

	got, err := st.GetPurchase(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.BuyerRated)
	require.Equal(t, 4, got.BuyerRating)
	require.Equal(t, "smooth deal", got.BuyerReview)
	require.Zero(t, got.SellerRating, "seller side not rated yet")
}

func TestAggregateIsMeanAcrossDeals(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)
	reviews := NewReviews(st)

	p1 := completeDeal(t, ctx, st, deals, slot)
	_, err := reviews.Submit(ctx, buyerID, p1.ID, model.RoleSeller, 5, "")
	require.NoError(t, err)

	slot2 := &model.Slot{SellerID: sellerID, PhotoID: "p2", Description: "d2", Price: 10, Contact: "@s"}
	require.NoError(t, st.CreateSlot(ctx, slot2))
	p2 := completeDeal(t, ctx, st, deals, slot2)
	_, err = reviews.Submit(ctx, buyerID, p2.ID, model.RoleSeller, 2, "late")
	require.NoError(t, err)

	seller, err := st.GetUser(ctx, sellerID)
	require.NoError(t, err)
	require.Equal(t, 3.5, seller.RatingSeller)
}

func TestBothSidesRateIndependently(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)
	reviews := NewReviews(st)

	p := completeDeal(t, ctx, st, deals, slot)

	_, err := reviews.Submit(ctx, buyerID, p.ID, model.RoleSeller, 5, "")
	require.NoError(t, err)
	_, err = reviews.Submit(ctx, sellerID, p.ID, model.RoleBuyer, 3, "slow to confirm")
	require.NoError(t, err)

	buyer, err := st.GetUser(ctx, buyerID)
	require.NoError(t, err)
	require.Equal(t, 3.0, buyer.RatingBuyer)

	got, err := st.GetPurchase(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.BuyerRating)
	require.Equal(t, 3, got.SellerRating)
}

func TestDoubleRatingRejected(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)
	reviews := NewReviews(st)

	p := completeDeal(t, ctx, st, deals, slot)

	_, err := reviews.Submit(ctx, buyerID, p.ID, model.RoleSeller, 5, "")
	require.NoError(t, err)
	_, err = reviews.Submit(ctx, buyerID, p.ID, model.RoleSeller, 1, "changed my mind")
	require.ErrorIs(t, err, ErrAlreadyRated)

	seller, err := st.GetUser(ctx, sellerID)
	require.NoError(t, err)
	require.Equal(t, 5.0, seller.RatingSeller)
}

func TestRatingValidation(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)
	reviews := NewReviews(st)

	p := completeDeal(t, ctx, st, deals, slot)

	_, err := reviews.Submit(ctx, buyerID, p.ID, model.RoleSeller, 0, "")
	require.ErrorIs(t, err, ErrInvalidRating)
	_, err = reviews.Submit(ctx, buyerID, p.ID, model.RoleSeller, 6, "")
	require.ErrorIs(t, err, ErrInvalidRating)

	// The seller cannot rate themselves through the buyer's direction.
	_, err = reviews.Submit(ctx, sellerID, p.ID, model.RoleSeller, 5, "")
	require.ErrorIs(t, err, ErrNotDealParty)
}
