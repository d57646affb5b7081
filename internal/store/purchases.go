package store

import (
	"context"
	"fmt"

	"github.com/NogiBatia/BOT2/internal/model"
)

func (s *SQLStore) CreatePurchase(ctx context.Context, p *model.Purchase) error {
	err := sqlxGet(ctx, s.ext, &p.ID, `
		INSERT INTO purchases (slot_id, buyer_id, seller_id, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.SlotID, p.BuyerID, p.SellerID, p.Amount, model.PurchasePending,
	)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	p.Status = model.PurchasePending
	return nil
}

func (s *SQLStore) GetPurchase(ctx context.Context, id int64) (*model.Purchase, error) {
	var p model.Purchase
	err := sqlxGet(ctx, s.ext, &p, `SELECT * FROM purchases WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "get purchase")
	}
	return &p, nil
}

func (s *SQLStore) ListPurchasesByBuyer(ctx context.Context, buyerID int64, status model.PurchaseStatus) ([]model.Purchase, error) {
	var out []model.Purchase
	err := sqlxSelect(ctx, s.ext, &out, `
		SELECT * FROM purchases
		WHERE buyer_id = $1 AND status = $2
		ORDER BY created_at`,
		buyerID, status,
	)
	if err != nil {
		return nil, fmt.Errorf("list buyer purchases: %w", err)
	}
	return out, nil
}

func (s *SQLStore) ListPurchasesBySeller(ctx context.Context, sellerID int64, status model.PurchaseStatus) ([]model.Purchase, error) {
	var out []model.Purchase
	err := sqlxSelect(ctx, s.ext, &out, `
		SELECT * FROM purchases
		WHERE seller_id = $1 AND status = $2
		ORDER BY created_at`,
		sellerID, status,
	)
	if err != nil {
		return nil, fmt.Errorf("list seller purchases: %w", err)
	}
	return out, nil
}

func (s *SQLStore) MarkPurchaseSent(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `
		UPDATE purchases SET nft_sent = TRUE
		WHERE id = $1 AND status = $2`,
		id, model.PurchasePending,
	)
	if err != nil {
		return fmt.Errorf("mark purchase sent: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLStore) CompletePurchase(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `
		UPDATE purchases SET status = $2, nft_received = TRUE
		WHERE id = $1 AND status = $3`,
		id, model.PurchaseCompleted, model.PurchasePending,
	)
	if err != nil {
		return fmt.Errorf("complete purchase: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLStore) SetPurchaseRated(ctx context.Context, id int64, role model.Role, rating int, text string) error {
	// role names the side being rated: the buyer's review rates the
	// seller and vice versa.
	var q string
	if role == model.RoleSeller {
		q = `UPDATE purchases SET buyer_rated = TRUE, buyer_rating = $2, buyer_review = $3 WHERE id = $1`
	} else {
		q = `UPDATE purchases SET seller_rated = TRUE, seller_rating = $2, seller_review = $3 WHERE id = $1`
	}
	res, err := s.ext.ExecContext(ctx, q, id, rating, text)
	if err != nil {
		return fmt.Errorf("set purchase rated: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLStore) DeletePurchase(ctx context.Context, id int64) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return requireAffected(res)
}
