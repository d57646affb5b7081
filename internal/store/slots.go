package store

import (
	"context"
	"fmt"

	"github.com/NogiBatia/BOT2/internal/model"
)

func (s *SQLStore) CreateSlot(ctx context.Context, slot *model.Slot) error {
	err := sqlxGet(ctx, s.ext, &slot.ID, `
		INSERT INTO slots (seller_id, photo_id, description, price, contact)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		slot.SellerID, slot.PhotoID, slot.Description, slot.Price, slot.Contact,
	)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

func (s *SQLStore) GetSlot(ctx context.Context, id int64) (*model.Slot, error) {
	var slot model.Slot
	err := sqlxGet(ctx, s.ext, &slot, `SELECT * FROM slots WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "get slot")
	}
	return &slot, nil
}

func (s *SQLStore) ListActiveSlots(ctx context.Context, excludeSeller int64) ([]model.Slot, error) {
	var slots []model.Slot
	err := sqlxSelect(ctx, s.ext, &slots, `
		SELECT * FROM slots
		WHERE is_active AND seller_id <> $1
		ORDER BY created_at`,
		excludeSeller,
	)
	if err != nil {
		return nil, fmt.Errorf("list active slots: %w", err)
	}
	return slots, nil
}

func (s *SQLStore) ListSlotsBySeller(ctx context.Context, sellerID int64) ([]model.Slot, error) {
	var slots []model.Slot
	err := sqlxSelect(ctx, s.ext, &slots,
		`SELECT * FROM slots WHERE seller_id = $1 ORDER BY created_at`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller slots: %w", err)
	}
	return slots, nil
}

// DeactivateSlot reports false when the slot was already inactive (or
// missing), which the reservation path treats as a lost race.
func (s *SQLStore) DeactivateSlot(ctx context.Context, id int64) (bool, error) {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE slots SET is_active = FALSE WHERE id = $1 AND is_active`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deactivate slot: rows affected: %w", err)
	}
	return n == 1, nil
}

func (s *SQLStore) ReactivateSlot(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx,
		`UPDATE slots SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reactivate slot: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLStore) DeleteSlot(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return requireAffected(res)
}
