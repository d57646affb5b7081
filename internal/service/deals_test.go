package service

import (
	"context"
	"testing"

	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"

	"github.com/stretchr/testify/require"
)

const (
	buyerID  = int64(100)
	sellerID = int64(200)
	otherID  = int64(300)
)

func newDealFixture(t *testing.T) (context.Context, *store.MemStore, *Deals, *model.Slot) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemStore()

	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: buyerID, FullName: "Buyer", Balance: 100}))
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: sellerID, FullName: "Seller"}))
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: otherID, FullName: "Other", Balance: 100}))

	slot := &model.Slot{SellerID: sellerID, PhotoID: "photo", Description: "rare gift", Price: 40, Contact: "@seller"}
	require.NoError(t, st.CreateSlot(ctx, slot))

	return ctx, st, NewDeals(st), slot
}

func balance(t *testing.T, st store.Store, id int64) float64 {
	t.Helper()
	u, err := st.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u.Balance
}

func TestReserveHoldsFundsAndSlot(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)

	p, gotSlot, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)
	require.Equal(t, slot.Price, p.Amount)
	require.Equal(t, model.PurchasePending, p.Status)
	require.Equal(t, "@seller", gotSlot.Contact)

	require.Equal(t, 60.0, balance(t, st, buyerID))
	require.Equal(t, 0.0, balance(t, st, sellerID), "seller is paid only on receipt confirmation")

	s, err := st.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	require.False(t, s.IsActive)

	txs, err := st.ListTransactions(ctx, buyerID, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, model.TxPurchase, txs[0].Type)
	require.Equal(t, -40.0, txs[0].Amount)
}

func TestReserveInsufficientFundsLeavesNoTrace(t *testing.T) {
	ctx, st, deals, _ := newDealFixture(t)

	pricey := &model.Slot{SellerID: sellerID, PhotoID: "p", Description: "d", Price: 500, Contact: "@s"}
	require.NoError(t, st.CreateSlot(ctx, pricey))

	_, _, err := deals.Reserve(ctx, buyerID, pricey.ID)
	require.ErrorIs(t, err, store.ErrInsufficientFunds)

	require.Equal(t, 100.0, balance(t, st, buyerID))
	s, err := st.GetSlot(ctx, pricey.ID)
	require.NoError(t, err)
	require.True(t, s.IsActive, "failed reservation must not hold the slot")

	pending, err := st.ListPurchasesByBuyer(ctx, buyerID, model.PurchasePending)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestReserveOwnSlot(t *testing.T) {
	ctx, _, deals, slot := newDealFixture(t)

	_, _, err := deals.Reserve(ctx, sellerID, slot.ID)
	require.ErrorIs(t, err, ErrSelfPurchase)
}

func TestReserveTwiceSecondBuyerLoses(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)

	_, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)

	_, _, err = deals.Reserve(ctx, otherID, slot.ID)
	require.ErrorIs(t, err, store.ErrSlotUnavailable)
	require.Equal(t, 100.0, balance(t, st, otherID), "losing buyer keeps their funds")
}

func TestEscrowHappyPath(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)

	p, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)

	_, err = deals.ConfirmSent(ctx, sellerID, p.ID)
	require.NoError(t, err)

	done, err := deals.ConfirmReceived(ctx, buyerID, p.ID)
	require.NoError(t, err)
	require.Equal(t, model.PurchaseCompleted, done.Status)
	require.True(t, done.NFTReceived)

	// The escrowed amount ends up with the seller and nowhere else.
	require.Equal(t, 60.0, balance(t, st, buyerID))
	require.Equal(t, 40.0, balance(t, st, sellerID))

	seller, err := st.GetUser(ctx, sellerID)
	require.NoError(t, err)
	require.Equal(t, 1, seller.TotalSales)
	require.Equal(t, 1, seller.SuccessfulSales)
	require.Equal(t, 0, seller.FailedSales)

	buyer, err := st.GetUser(ctx, buyerID)
	require.NoError(t, err)
	require.Equal(t, 1, buyer.TotalPurchases)
	require.Equal(t, 1, buyer.SuccessfulPurchases)

	txs, err := st.ListTransactions(ctx, sellerID, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, model.TxSale, txs[0].Type)
}

func TestConfirmReceivedRequiresSellerConfirmation(t *testing.T) {
	ctx, _, deals, slot := newDealFixture(t)

	p, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)

	_, err = deals.ConfirmReceived(ctx, buyerID, p.ID)
	require.ErrorIs(t, err, ErrSellerNotConfirmed)
}

func TestConfirmByNonParty(t *testing.T) {
	ctx, _, deals, slot := newDealFixture(t)

	p, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)

	_, err = deals.ConfirmSent(ctx, otherID, p.ID)
	require.ErrorIs(t, err, ErrNotDealParty)
	_, err = deals.ConfirmReceived(ctx, otherID, p.ID)
	require.ErrorIs(t, err, ErrNotDealParty)
	_, err = deals.Cancel(ctx, otherID, p.ID)
	require.ErrorIs(t, err, ErrNotDealParty)
	_, err = deals.Cancel(ctx, sellerID, p.ID)
	require.ErrorIs(t, err, ErrNotDealParty)
}

func TestCancelRestoresEverything(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)

	p, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)

	_, err = deals.Cancel(ctx, buyerID, p.ID)
	require.NoError(t, err)

	require.Equal(t, 100.0, balance(t, st, buyerID))
	require.Equal(t, 0.0, balance(t, st, sellerID))

	s, err := st.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	require.True(t, s.IsActive, "cancelled slot is sellable again")

	_, err = st.GetPurchase(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound, "cancelled purchase is removed")

	seller, err := st.GetUser(ctx, sellerID)
	require.NoError(t, err)
	require.Equal(t, 1, seller.FailedSales)
	require.Equal(t, 0, seller.TotalSales, "only the failed counter moves on cancellation")

	buyer, err := st.GetUser(ctx, buyerID)
	require.NoError(t, err)
	require.Equal(t, 1, buyer.FailedPurchases)

	txs, err := st.ListTransactions(ctx, buyerID, 10)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, model.TxRefund, txs[0].Type)
}

// TestCancelAfterSellerConfirmedSend pins down a sharp edge of the
// escrow protocol: the buyer can still cancel and get a full refund
// AFTER the seller has marked the NFT as sent. The seller may have
// already parted with the item at that point and has no recourse
// inside the bot. Anyone changing the cancellation rules should start
// here.
func TestCancelAfterSellerConfirmedSend(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)

	p, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)
	_, err = deals.ConfirmSent(ctx, sellerID, p.ID)
	require.NoError(t, err)

	_, err = deals.Cancel(ctx, buyerID, p.ID)
	require.NoError(t, err, "cancellation is allowed even after nft_sent")

	require.Equal(t, 100.0, balance(t, st, buyerID), "buyer is made whole")
	require.Equal(t, 0.0, balance(t, st, sellerID), "seller gets nothing for the sent item")

	s, err := st.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	require.True(t, s.IsActive)
}

func TestCancelCompletedDeal(t *testing.T) {
	ctx, _, deals, slot := newDealFixture(t)

	p, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)
	_, err = deals.ConfirmSent(ctx, sellerID, p.ID)
	require.NoError(t, err)
	_, err = deals.ConfirmReceived(ctx, buyerID, p.ID)
	require.NoError(t, err)

	_, err = deals.Cancel(ctx, buyerID, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound, "settled deals cannot be cancelled")
}
