package store

import (
	"context"
	"fmt"

	"github.com/NogiBatia/BOT2/internal/model"
)

func (s *SQLStore) CreateReview(ctx context.Context, r *model.Review) error {
	err := sqlxGet(ctx, s.ext, &r.ID, `
		INSERT INTO reviews (user_id, reviewer_id, purchase_id, role, rating, text)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		r.UserID, r.ReviewerID, r.PurchaseID, r.Role, r.Rating, r.Text,
	)
	if err != nil {
		return fmt.Errorf("create review: %w", checkConstraint(err))
	}
	return nil
}

func (s *SQLStore) ListReviewsForUser(ctx context.Context, userID int64, role model.Role) ([]model.Review, error) {
	var out []model.Review
	err := sqlxSelect(ctx, s.ext, &out, `
		SELECT * FROM reviews
		WHERE user_id = $1 AND role = $2
		ORDER BY created_at DESC`,
		userID, role,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

// AverageRating recomputes the mean over every stored review of that
// role, never incrementally. Returns 0 when the user has no reviews.
func (s *SQLStore) AverageRating(ctx context.Context, userID int64, role model.Role) (float64, error) {
	var avg float64
	err := sqlxGet(ctx, s.ext, &avg, `
		SELECT COALESCE(AVG(rating), 0) FROM reviews
		WHERE user_id = $1 AND role = $2`,
		userID, role,
	)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}

func (s *SQLStore) AddTransaction(ctx context.Context, t *model.Transaction) error {
	err := sqlxGet(ctx, s.ext, &t.ID, `
		INSERT INTO transactions (user_id, amount, type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		t.UserID, t.Amount, t.Type, t.Description,
	)
	if err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) ListTransactions(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []model.Transaction
	err := sqlxSelect(ctx, s.ext, &out, `
		SELECT * FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}
