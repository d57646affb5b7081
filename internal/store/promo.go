package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/NogiBatia/BOT2/internal/model"
)

func (s *SQLStore) CreatePromo(ctx context.Context, p *model.PromoCode) error {
	_, err := s.ext.ExecContext(ctx, `
		INSERT INTO promo_codes (code, amount, max_activations, created_by)
		VALUES ($1, $2, $3, $4)`,
		p.Code, p.Amount, p.MaxActivations, p.CreatedBy,
	)
	if err != nil {
		if errors.Is(checkConstraint(err), ErrAlreadyExists) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create promo: %w", err)
	}
	return nil
}

func (s *SQLStore) GetPromo(ctx context.Context, code string) (*model.PromoCode, error) {
	var p model.PromoCode
	err := sqlxGet(ctx, s.ext, &p, `SELECT * FROM promo_codes WHERE code = $1`, code)
	if err != nil {
		return nil, notFoundOr(err, "get promo")
	}
	return &p, nil
}

func (s *SQLStore) ListPromos(ctx context.Context) ([]model.PromoCode, error) {
	var out []model.PromoCode
	err := sqlxSelect(ctx, s.ext, &out, `SELECT * FROM promo_codes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list promos: %w", err)
	}
	return out, nil
}

// ConsumePromoActivation bumps used_count only while activations remain;
// the predicate makes exhaustion atomic with the bump.
func (s *SQLStore) ConsumePromoActivation(ctx context.Context, code string) error {
	res, err := s.ext.ExecContext(ctx, `
		UPDATE promo_codes SET used_count = used_count + 1
		WHERE code = $1 AND used_count < max_activations`,
		code,
	)
	if err != nil {
		return fmt.Errorf("consume promo activation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume promo activation: rows affected: %w", err)
	}
	if n == 0 {
		return ErrPromoExhausted
	}
	return nil
}

func (s *SQLStore) HasPromoActivation(ctx context.Context, code string, userID int64) (bool, error) {
	var exists bool
	err := sqlxGet(ctx, s.ext, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM promo_activations WHERE code = $1 AND user_id = $2
		)`,
		code, userID,
	)
	if err != nil {
		return false, fmt.Errorf("has promo activation: %w", err)
	}
	return exists, nil
}

func (s *SQLStore) AddPromoActivation(ctx context.Context, code string, userID int64) error {
	_, err := s.ext.ExecContext(ctx,
		`INSERT INTO promo_activations (code, user_id) VALUES ($1, $2)`,
		code, userID,
	)
	if err != nil {
		return fmt.Errorf("add promo activation: %w", checkConstraint(err))
	}
	return nil
}
