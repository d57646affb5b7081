package service

import (
	"context"
	"testing"

	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"

	"github.com/stretchr/testify/require"
)

func TestEnsureCreatesOnFirstContact(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	users := NewUsers(st)

	u, err := users.Ensure(ctx, buyerID, "alice", "Alice")
	require.NoError(t, err)
	require.Equal(t, buyerID, u.TelegramID)
	require.Equal(t, 0.0, u.Balance)
	require.False(t, u.IsAdmin)
}

func TestEnsureRefreshesProfile(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	users := NewUsers(st)

	_, err := users.Ensure(ctx, buyerID, "alice", "Alice")
	require.NoError(t, err)
	require.NoError(t, st.AdjustBalance(ctx, buyerID, 50))

	u, err := users.Ensure(ctx, buyerID, "alice_new", "Alice N")
	require.NoError(t, err)
	require.Equal(t, "alice_new", u.Username)
	require.Equal(t, "Alice N", u.FullName)
	require.Equal(t, 50.0, u.Balance, "re-contact never resets state")
}

func TestAdminRoster(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: buyerID}))
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: sellerID, IsAdmin: true}))

	admin := NewAdmin(st, sellerID)

	require.NoError(t, admin.Promote(ctx, buyerID))
	ids, err := admin.AdminIDs(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{buyerID, sellerID}, ids)

	require.ErrorIs(t, admin.Demote(ctx, sellerID), ErrPrimaryAdmin)
	require.NoError(t, admin.Demote(ctx, buyerID))

	ids, err = admin.AdminIDs(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{sellerID}, ids)
}

func TestSupportTicketLifecycle(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	require.NoError(t, st.CreateUser(ctx, &model.User{TelegramID: buyerID}))
	support := NewSupport(st)

	ticket, err := support.Open(ctx, buyerID, "my balance looks wrong")
	require.NoError(t, err)
	require.Equal(t, model.TicketOpen, ticket.Status)

	open, err := support.OpenTickets(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	answered, err := support.Answer(ctx, ticket.ID, "fixed, sorry")
	require.NoError(t, err)
	require.Equal(t, model.TicketAnswered, answered.Status)
	require.Equal(t, "fixed, sorry", answered.Answer)

	_, err = support.Answer(ctx, ticket.ID, "again")
	require.ErrorIs(t, err, store.ErrNotFound, "a ticket takes exactly one answer")

	open, err = support.OpenTickets(ctx)
	require.NoError(t, err)
	require.Empty(t, open)
}
