package store

import (
	"context"
	"fmt"

	"github.com/NogiBatia/BOT2/internal/model"
)

func (s *SQLStore) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	var u model.User
	err := sqlxGet(ctx, s.ext, &u, `SELECT * FROM users WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return nil, notFoundOr(err, "get user")
	}
	return &u, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.ext.ExecContext(ctx, `
		INSERT INTO users (telegram_id, username, full_name, is_admin)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO NOTHING`,
		u.TelegramID, u.Username, u.FullName, u.IsAdmin,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *SQLStore) UpdateUserProfile(ctx context.Context, telegramID int64, username, fullName string) error {
	_, err := s.ext.ExecContext(ctx,
		`UPDATE users SET username = $2, full_name = $3 WHERE telegram_id = $1`,
		telegramID, username, fullName,
	)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

func (s *SQLStore) UpdateUserName(ctx context.Context, telegramID int64, fullName string) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE users SET full_name = $2 WHERE telegram_id = $1`,
		telegramID, fullName,
	)
	if err != nil {
		return fmt.Errorf("update user name: %w", err)
	}
	return requireAffected(res)
}

// AdjustBalance applies a signed delta. The non-negative balance
// constraint turns an overdraft into ErrInsufficientFunds.
func (s *SQLStore) AdjustBalance(ctx context.Context, telegramID int64, delta float64) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE users SET balance = balance + $2 WHERE telegram_id = $1`,
		telegramID, delta,
	)
	if err != nil {
		return checkConstraint(err)
	}
	return requireAffected(res)
}

func (s *SQLStore) SetBanned(ctx context.Context, telegramID int64, banned bool) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE users SET is_banned = $2 WHERE telegram_id = $1`,
		telegramID, banned,
	)
	if err != nil {
		return fmt.Errorf("set banned: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLStore) SetAdmin(ctx context.Context, telegramID int64, admin bool) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE users SET is_admin = $2 WHERE telegram_id = $1`,
		telegramID, admin,
	)
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLStore) SetSubscribed(ctx context.Context, telegramID int64, subscribed bool) error {
	_, err := s.ext.ExecContext(ctx,
		`UPDATE users SET has_subscribed = $2 WHERE telegram_id = $1`,
		telegramID, subscribed,
	)
	if err != nil {
		return fmt.Errorf("set subscribed: %w", err)
	}
	return nil
}

func (s *SQLStore) IsAdmin(ctx context.Context, telegramID int64) (bool, error) {
	var admin bool
	err := sqlxGet(ctx, s.ext, &admin,
		`SELECT is_admin FROM users WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return false, notFoundOr(err, "is admin")
	}
	return admin, nil
}

func (s *SQLStore) BumpSaleCounters(ctx context.Context, telegramID int64, success bool) error {
	var q string
	if success {
		q = `UPDATE users SET total_sales = total_sales + 1,
			successful_sales = successful_sales + 1 WHERE telegram_id = $1`
	} else {
		q = `UPDATE users SET failed_sales = failed_sales + 1 WHERE telegram_id = $1`
	}
	if _, err := s.ext.ExecContext(ctx, q, telegramID); err != nil {
		return fmt.Errorf("bump sale counters: %w", err)
	}
	return nil
}

func (s *SQLStore) BumpPurchaseCounters(ctx context.Context, telegramID int64, success bool) error {
	var q string
	if success {
		q = `UPDATE users SET total_purchases = total_purchases + 1,
			successful_purchases = successful_purchases + 1 WHERE telegram_id = $1`
	} else {
		q = `UPDATE users SET failed_purchases = failed_purchases + 1 WHERE telegram_id = $1`
	}
	if _, err := s.ext.ExecContext(ctx, q, telegramID); err != nil {
		return fmt.Errorf("bump purchase counters: %w", err)
	}
	return nil
}

func (s *SQLStore) SetRating(ctx context.Context, telegramID int64, role model.Role, value float64) error {
	col := "rating_seller"
	if role == model.RoleBuyer {
		col = "rating_buyer"
	}
	q := fmt.Sprintf(`UPDATE users SET %s = $2 WHERE telegram_id = $1`, col)
	if _, err := s.ext.ExecContext(ctx, q, telegramID, value); err != nil {
		return fmt.Errorf("set rating: %w", err)
	}
	return nil
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := sqlxSelect(ctx, s.ext, &users, `SELECT * FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *SQLStore) ListAdminIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := sqlxSelect(ctx, s.ext, &ids,
		`SELECT telegram_id FROM users WHERE is_admin ORDER BY telegram_id`)
	if err != nil {
		return nil, fmt.Errorf("list admin ids: %w", err)
	}
	return ids, nil
}
