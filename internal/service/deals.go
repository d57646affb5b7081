package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// Deals orchestrates the escrow purchase protocol:
// reserve → seller confirms send → buyer confirms receipt → settlement,
// or buyer cancellation with refund. Funds leave the buyer at
// reservation and reach the seller only at receipt confirmation. There
// is deliberately no timeout anywhere in the handshake.
type Deals struct {
	store store.Store
}

// NewDeals constructs the purchase protocol service.
func NewDeals(st store.Store) *Deals {
	return &Deals{store: st}
}

// Reserve places an escrow hold: debits the buyer by the slot price,
// deactivates the slot and creates a pending purchase with the price
// snapshotted, all in one transaction. If any precondition fails no
// effect applies.
func (s *Deals) Reserve(ctx context.Context, buyerID, slotID int64) (*model.Purchase, *model.Slot, error) {
	slot, err := s.store.GetSlot(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}
	if slot.SellerID == buyerID {
		return nil, nil, ErrSelfPurchase
	}
	if !slot.IsActive {
		return nil, nil, store.ErrSlotUnavailable
	}

	purchase := &model.Purchase{
		SlotID:   slot.ID,
		BuyerID:  buyerID,
		SellerID: slot.SellerID,
		Amount:   slot.Price,
	}
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.AdjustBalance(ctx, buyerID, -slot.Price); err != nil {
			return err
		}
		// The rows-affected guard closes the double-sale race: a
		// concurrent reservation loses here and rolls back.
		ok, err := tx.DeactivateSlot(ctx, slot.ID)
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrSlotUnavailable
		}
		if err := tx.CreatePurchase(ctx, purchase); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, &model.Transaction{
			UserID:      buyerID,
			Amount:      -slot.Price,
			Type:        model.TxPurchase,
			Description: fmt.Sprintf("Purchase of slot #%d", slot.ID),
		})
	})
	if err != nil {
		return nil, nil, err
	}

	logOr(logger.SVCDeals).LogAttrs(ctx, slog.LevelInfo, "deal.reserved",
		slog.Int64("purchase_id", purchase.ID),
		slog.Int64("slot_id", slot.ID),
		slog.Int64("buyer_id", buyerID),
		slog.Int64("seller_id", slot.SellerID),
		slog.Float64("price", slot.Price),
	)
	return purchase, slot, nil
}

// ConfirmSent is the seller-only acknowledgement that the item went
// out. No funds move.
func (s *Deals) ConfirmSent(ctx context.Context, sellerID, purchaseID int64) (*model.Purchase, error) {
	p, err := s.store.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p.SellerID != sellerID {
		return nil, ErrNotDealParty
	}
	if err := s.store.MarkPurchaseSent(ctx, purchaseID); err != nil {
		return nil, err
	}
	p.NFTSent = true

	logOr(logger.SVCDeals).LogAttrs(ctx, slog.LevelInfo, "deal.sent",
		slog.Int64("purchase_id", p.ID),
		slog.Int64("seller_id", sellerID),
	)
	return p, nil
}

// ConfirmReceived settles the deal: the only point money reaches the
// seller. Requires the seller's send confirmation first.
func (s *Deals) ConfirmReceived(ctx context.Context, buyerID, purchaseID int64) (*model.Purchase, error) {
	p, err := s.store.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p.BuyerID != buyerID {
		return nil, ErrNotDealParty
	}
	if !p.NFTSent {
		return nil, ErrSellerNotConfirmed
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.CompletePurchase(ctx, p.ID); err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, p.SellerID, p.Amount); err != nil {
			return err
		}
		if err := tx.BumpSaleCounters(ctx, p.SellerID, true); err != nil {
			return err
		}
		if err := tx.BumpPurchaseCounters(ctx, p.BuyerID, true); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, &model.Transaction{
			UserID:      p.SellerID,
			Amount:      p.Amount,
			Type:        model.TxSale,
			Description: fmt.Sprintf("Sale of slot #%d", p.SlotID),
		})
	})
	if err != nil {
		return nil, err
	}
	p.Status = model.PurchaseCompleted
	p.NFTReceived = true

	logOr(logger.SVCDeals).LogAttrs(ctx, slog.LevelInfo, "deal.completed",
		slog.Int64("purchase_id", p.ID),
		slog.Int64("buyer_id", p.BuyerID),
		slog.Int64("seller_id", p.SellerID),
		slog.Float64("price", p.Amount),
	)
	return p, nil
}

// Cancel refunds the buyer, reactivates the slot, bumps both failed
// counters and deletes the purchase row. Permitted while the purchase
// is pending, including after the seller confirmed sending.
func (s *Deals) Cancel(ctx context.Context, buyerID, purchaseID int64) (*model.Purchase, error) {
	p, err := s.store.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p.BuyerID != buyerID {
		return nil, ErrNotDealParty
	}
	if p.Status != model.PurchasePending {
		return nil, store.ErrNotFound
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.AdjustBalance(ctx, p.BuyerID, p.Amount); err != nil {
			return err
		}
		if err := tx.BumpSaleCounters(ctx, p.SellerID, false); err != nil {
			return err
		}
		if err := tx.BumpPurchaseCounters(ctx, p.BuyerID, false); err != nil {
			return err
		}
		if err := tx.ReactivateSlot(ctx, p.SlotID); err != nil {
			return err
		}
		if err := tx.DeletePurchase(ctx, p.ID); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, &model.Transaction{
			UserID:      p.BuyerID,
			Amount:      p.Amount,
			Type:        model.TxRefund,
			Description: fmt.Sprintf("Refund for slot #%d", p.SlotID),
		})
	})
	if err != nil {
		return nil, err
	}

	logOr(logger.SVCDeals).LogAttrs(ctx, slog.LevelInfo, "deal.cancelled",
		slog.Int64("purchase_id", p.ID),
		slog.Int64("buyer_id", p.BuyerID),
		slog.Int64("slot_id", p.SlotID),
		slog.Float64("price", p.Amount),
	)
	return p, nil
}

// BuyerDeals lists the buyer's purchases with the given status.
func (s *Deals) BuyerDeals(ctx context.Context, buyerID int64, status model.PurchaseStatus) ([]model.Purchase, error) {
	return s.store.ListPurchasesByBuyer(ctx, buyerID, status)
}

// SellerDeals lists the seller's purchases with the given status.
func (s *Deals) SellerDeals(ctx context.Context, sellerID int64, status model.PurchaseStatus) ([]model.Purchase, error) {
	return s.store.ListPurchasesBySeller(ctx, sellerID, status)
}

// Get returns one purchase by id.
func (s *Deals) Get(ctx context.Context, id int64) (*model.Purchase, error) {
	return s.store.GetPurchase(ctx, id)
}
