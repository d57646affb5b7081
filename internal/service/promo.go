package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// Promo manages promo codes: admin-created fixed-amount credits with a
// bounded number of distinct activations.
type Promo struct {
	store store.Store
}

// NewPromo constructs the promo code service.
func NewPromo(st store.Store) *Promo {
	return &Promo{store: st}
}

// Activate credits the promo amount to the user once. The duplicate
// check, the activation-limit bump, the activation row and the credit
// commit together or not at all.
func (s *Promo) Activate(ctx context.Context, userID int64, code string) (*model.PromoCode, error) {
	promo, err := s.store.GetPromo(ctx, code)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		used, err := tx.HasPromoActivation(ctx, code, userID)
		if err != nil {
			return err
		}
		if used {
			return ErrPromoAlreadyActivated
		}
		if err := tx.ConsumePromoActivation(ctx, code); err != nil {
			return err
		}
		if err := tx.AddPromoActivation(ctx, code, userID); err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, userID, promo.Amount); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, &model.Transaction{
			UserID:      userID,
			Amount:      promo.Amount,
			Type:        model.TxPromo,
			Description: fmt.Sprintf("Promo code %s", code),
		})
	})
	if err != nil {
		return nil, err
	}

	logOr(logger.SVCPromo).LogAttrs(ctx, slog.LevelInfo, "promo.activated",
		slog.String("code", code),
		slog.Int64("user_id", userID),
		slog.Float64("amount", promo.Amount),
	)
	return promo, nil
}

// Create registers a new promo code.
func (s *Promo) Create(ctx context.Context, p *model.PromoCode) error {
	if err := s.store.CreatePromo(ctx, p); err != nil {
		return err
	}
	logOr(logger.SVCPromo).LogAttrs(ctx, slog.LevelInfo, "promo.created",
		slog.String("code", p.Code),
		slog.Float64("amount", p.Amount),
		slog.Int("count", p.MaxActivations),
	)
	return nil
}

// List returns all promo codes.
func (s *Promo) List(ctx context.Context) ([]model.PromoCode, error) {
	return s.store.ListPromos(ctx)
}
