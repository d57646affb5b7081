package service

import (
	"context"
	"testing"

	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"

	"github.com/stretchr/testify/require"
)

func TestBrowseExcludesOwnSlots(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	market := NewMarket(st)

	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: sellerID}))
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: buyerID}))
	require.NoError(t, market.Create(ctx, &model.Slot{SellerID: sellerID, PhotoID: "p", Description: "d", Price: 5, Contact: "@s"}))
	require.NoError(t, market.Create(ctx, &model.Slot{SellerID: buyerID, PhotoID: "p", Description: "d", Price: 5, Contact: "@b"}))

	slots, err := market.Browse(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	require.Equal(t, sellerID, slots[0].SellerID)
}

func TestRetireOwnership(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	market := NewMarket(st)

	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: sellerID}))
	slot := &model.Slot{SellerID: sellerID, PhotoID: "p", Description: "d", Price: 5, Contact: "@s"}
	require.NoError(t, market.Create(ctx, slot))

	require.ErrorIs(t, market.Retire(ctx, buyerID, slot.ID), ErrNotSlotOwner)
	require.NoError(t, market.Retire(ctx, sellerID, slot.ID))

	_, err := st.GetSlot(ctx, slot.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRetireHeldSlot(t *testing.T) {
	ctx, st, deals, slot := newDealFixture(t)
	market := NewMarket(st)

	_, _, err := deals.Reserve(ctx, buyerID, slot.ID)
	require.NoError(t, err)

	require.ErrorIs(t, market.Retire(ctx, sellerID, slot.ID), store.ErrSlotUnavailable)
}
