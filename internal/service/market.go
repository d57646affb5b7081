package service

import (
	"context"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// Market manages the listing lifecycle: create, browse, retire.
type Market struct {
	store store.Store
}

// NewMarket constructs the listing service.
func NewMarket(st store.Store) *Market {
	return &Market{store: st}
}

// Create inserts one active slot.
func (s *Market) Create(ctx context.Context, slot *model.Slot) error {
	if err := s.store.CreateSlot(ctx, slot); err != nil {
		return err
	}
	logOr(logger.SVCMarket).LogAttrs(ctx, slog.LevelInfo, "slot.created",
		slog.Int64("slot_id", slot.ID),
		slog.Int64("seller_id", slot.SellerID),
		slog.Float64("price", slot.Price),
	)
	return nil
}

// Browse lists all active slots excluding the viewer's own.
func (s *Market) Browse(ctx context.Context, viewerID int64) ([]model.Slot, error) {
	return s.store.ListActiveSlots(ctx, viewerID)
}

// Mine lists the seller's own slots, active or not.
func (s *Market) Mine(ctx context.Context, sellerID int64) ([]model.Slot, error) {
	return s.store.ListSlotsBySeller(ctx, sellerID)
}

// Get returns one slot by id.
func (s *Market) Get(ctx context.Context, id int64) (*model.Slot, error) {
	return s.store.GetSlot(ctx, id)
}

// Retire deletes a still-active slot; owner only. A deactivated slot is
// held by a pending purchase and cannot be retired.
func (s *Market) Retire(ctx context.Context, sellerID, slotID int64) error {
	slot, err := s.store.GetSlot(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.SellerID != sellerID {
		return ErrNotSlotOwner
	}
	if !slot.IsActive {
		return store.ErrSlotUnavailable
	}
	if err := s.store.DeleteSlot(ctx, slotID); err != nil {
		return err
	}
	logOr(logger.SVCMarket).LogAttrs(ctx, slog.LevelInfo, "slot.retired",
		slog.Int64("slot_id", slotID),
		slog.Int64("seller_id", sellerID),
	)
	return nil
}
