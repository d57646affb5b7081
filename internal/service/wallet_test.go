package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"

	"github.com/stretchr/testify/require"
)

func newWalletFixture(t *testing.T) (context.Context, *store.MemStore, *Wallet) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemStore()
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: buyerID, Balance: 100}))
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: otherID}))
	return ctx, st, NewWallet(st)
}

func TestTransferMovesFundsWithLedgerPair(t *testing.T) {
	ctx, st, wallet := newWalletFixture(t)

	require.NoError(t, wallet.Transfer(ctx, buyerID, otherID, 30))

	require.Equal(t, 70.0, balance(t, st, buyerID))
	require.Equal(t, 30.0, balance(t, st, otherID))

	out, err := st.ListTransactions(ctx, buyerID, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, model.TxTransferOut, out[0].Type)
	require.Equal(t, -30.0, out[0].Amount)

	in, err := st.ListTransactions(ctx, otherID, 10)
	require.NoError(t, err)
	require.Len(t, in, 1)
	require.Equal(t, model.TxTransferIn, in[0].Type)
	require.Equal(t, 30.0, in[0].Amount)
}

func TestTransferLogTagsRecipient(t *testing.T) {
	ctx, _, wallet := newWalletFixture(t)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	require.NoError(t, wallet.Transfer(ctx, buyerID, otherID, 30))

	line := buf.String()
	require.Contains(t, line, `"recipient_id"`)
	require.NotContains(t, line, `"buyer_id"`, "transfer recipient is not a deal buyer")
}

func TestTransferGuards(t *testing.T) {
	ctx, st, wallet := newWalletFixture(t)

	require.ErrorIs(t, wallet.Transfer(ctx, buyerID, buyerID, 10), ErrSelfTransfer)
	require.ErrorIs(t, wallet.Transfer(ctx, buyerID, 999, 10), store.ErrNotFound)
	require.ErrorIs(t, wallet.Transfer(ctx, buyerID, otherID, 1000), store.ErrInsufficientFunds)
	require.Equal(t, 100.0, balance(t, st, buyerID))
}

func TestWithdrawRequestHoldsFunds(t *testing.T) {
	ctx, st, wallet := newWalletFixture(t)

	req, err := wallet.RequestWithdraw(ctx, buyerID, "1234567812345678", 60)
	require.NoError(t, err)
	require.Equal(t, model.WithdrawPending, req.Status)
	require.Equal(t, 40.0, balance(t, st, buyerID), "requested amount is debited immediately")

	_, err = wallet.RequestWithdraw(ctx, buyerID, "1234567812345678", 50)
	require.ErrorIs(t, err, store.ErrInsufficientFunds)
}

func TestApproveWithdrawKeepsDebit(t *testing.T) {
	ctx, st, wallet := newWalletFixture(t)

	req, err := wallet.RequestWithdraw(ctx, buyerID, "1234567812345678", 60)
	require.NoError(t, err)

	got, err := wallet.ApproveWithdraw(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, model.WithdrawApproved, got.Status)
	require.Equal(t, 40.0, balance(t, st, buyerID))
}

func TestRejectWithdrawRefunds(t *testing.T) {
	ctx, st, wallet := newWalletFixture(t)

	req, err := wallet.RequestWithdraw(ctx, buyerID, "1234567812345678", 60)
	require.NoError(t, err)

	got, err := wallet.RejectWithdraw(ctx, req.ID, "card unsupported")
	require.NoError(t, err)
	require.Equal(t, model.WithdrawRejected, got.Status)
	require.Equal(t, "card unsupported", got.Reason)
	require.Equal(t, 100.0, balance(t, st, buyerID), "rejected request refunds in full")
}

func TestTopUpCreditsAndRecords(t *testing.T) {
	ctx, st, wallet := newWalletFixture(t)

	require.NoError(t, wallet.TopUp(ctx, otherID, 15))
	require.Equal(t, 15.0, balance(t, st, otherID))

	txs, err := st.ListTransactions(ctx, otherID, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, model.TxAdminTopUp, txs[0].Type)
}
