package store

import (
	"context"
	"fmt"

	"github.com/NogiBatia/BOT2/internal/model"
)

func (s *SQLStore) Stats(ctx context.Context) (*model.Stats, error) {
	var row struct {
		Users              int     `db:"users"`
		BannedUsers        int     `db:"banned_users"`
		ActiveSlots        int     `db:"active_slots"`
		PendingPurchases   int     `db:"pending_purchases"`
		CompletedPurchases int     `db:"completed_purchases"`
		OpenTickets        int     `db:"open_tickets"`
		PendingWithdrawals int     `db:"pending_withdrawals"`
		TotalBalance       float64 `db:"total_balance"`
	}
	err := sqlxGet(ctx, s.ext, &row, `
		SELECT
			(SELECT COUNT(*) FROM users)                                          AS users,
			(SELECT COUNT(*) FROM users WHERE is_banned)                          AS banned_users,
			(SELECT COUNT(*) FROM slots WHERE is_active)                          AS active_slots,
			(SELECT COUNT(*) FROM purchases WHERE status = 'pending')             AS pending_purchases,
			(SELECT COUNT(*) FROM purchases WHERE status = 'completed')           AS completed_purchases,
			(SELECT COUNT(*) FROM support_tickets WHERE status = 'open')          AS open_tickets,
			(SELECT COUNT(*) FROM withdraw_requests WHERE status = 'pending')     AS pending_withdrawals,
			(SELECT COALESCE(SUM(balance), 0) FROM users)                         AS total_balance`,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &model.Stats{
		Users:              row.Users,
		BannedUsers:        row.BannedUsers,
		ActiveSlots:        row.ActiveSlots,
		PendingPurchases:   row.PendingPurchases,
		CompletedPurchases: row.CompletedPurchases,
		OpenTickets:        row.OpenTickets,
		PendingWithdrawals: row.PendingWithdrawals,
		TotalBalance:       row.TotalBalance,
	}, nil
}
