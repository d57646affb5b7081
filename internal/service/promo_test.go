package service

import (
	"context"
	"testing"

	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"

	"github.com/stretchr/testify/require"
)

func newPromoFixture(t *testing.T) (context.Context, *store.MemStore, *Promo) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemStore()
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: buyerID}))
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: otherID}))
	promo := NewPromo(st)
	require.NoError(t, promo.Create(ctx, &model.PromoCode{Code: "WELCOME", Amount: 25, MaxActivations: 2}))
	return ctx, st, promo
}

func TestPromoActivationCreditsBalance(t *testing.T) {
	ctx, st, promo := newPromoFixture(t)

	p, err := promo.Activate(ctx, buyerID, "WELCOME")
	require.NoError(t, err)
	require.Equal(t, 25.0, p.Amount)
	require.Equal(t, 25.0, balance(t, st, buyerID))

	txs, err := st.ListTransactions(ctx, buyerID, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, model.TxPromo, txs[0].Type)
}

func TestPromoDoubleActivationRejected(t *testing.T) {
	ctx, st, promo := newPromoFixture(t)

	_, err := promo.Activate(ctx, buyerID, "WELCOME")
	require.NoError(t, err)
	_, err = promo.Activate(ctx, buyerID, "WELCOME")
	require.ErrorIs(t, err, ErrPromoAlreadyActivated)
	require.Equal(t, 25.0, balance(t, st, buyerID), "credited exactly once")
}

func TestPromoExhaustion(t *testing.T) {
	ctx, st, promo := newPromoFixture(t)

	_, err := promo.Activate(ctx, buyerID, "WELCOME")
	require.NoError(t, err)
	_, err = promo.Activate(ctx, otherID, "WELCOME")
	require.NoError(t, err)

	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: sellerID}))
	_, err = promo.Activate(ctx, sellerID, "WELCOME")
	require.ErrorIs(t, err, store.ErrPromoExhausted)
	require.Equal(t, 0.0, balance(t, st, sellerID))
}

func TestPromoUnknownCode(t *testing.T) {
	ctx, _, promo := newPromoFixture(t)

	_, err := promo.Activate(ctx, buyerID, "NOPE")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPromoDuplicateCreate(t *testing.T) {
	ctx, _, promo := newPromoFixture(t)

	err := promo.Create(ctx, &model.PromoCode{Code: "WELCOME", Amount: 1, MaxActivations: 1})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}
