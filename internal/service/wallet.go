package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// Wallet moves funds between users and out of the system: transfers,
// withdrawal requests and admin top-ups. Every movement leaves ledger
// rows behind.
type Wallet struct {
	store store.Store
}

// NewWallet constructs the wallet service.
func NewWallet(st store.Store) *Wallet {
	return &Wallet{store: st}
}

// Transfer moves amount from one user to another, writing both ledger
// sides in the same transaction.
func (s *Wallet) Transfer(ctx context.Context, fromID, toID int64, amount float64) error {
	if fromID == toID {
		return ErrSelfTransfer
	}
	if _, err := s.store.GetUser(ctx, toID); err != nil {
		return err
	}

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.AdjustBalance(ctx, fromID, -amount); err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, toID, amount); err != nil {
			return err
		}
		if err := tx.AddTransaction(ctx, &model.Transaction{
			UserID:      fromID,
			Amount:      -amount,
			Type:        model.TxTransferOut,
			Description: fmt.Sprintf("Transfer to %d", toID),
		}); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, &model.Transaction{
			UserID:      toID,
			Amount:      amount,
			Type:        model.TxTransferIn,
			Description: fmt.Sprintf("Transfer from %d", fromID),
		})
	})
	if err != nil {
		return err
	}

	logOr(logger.SVCWallet).LogAttrs(ctx, slog.LevelInfo, "wallet.transfer",
		slog.Int64("user_id", fromID),
		slog.Int64("recipient_id", toID),
		slog.Float64("amount", amount),
	)
	return nil
}

// RequestWithdraw debits the user immediately and opens a pending
// request for an admin to process.
func (s *Wallet) RequestWithdraw(ctx context.Context, userID int64, card string, amount float64) (*model.WithdrawRequest, error) {
	req := &model.WithdrawRequest{UserID: userID, Amount: amount, Card: card}
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.AdjustBalance(ctx, userID, -amount); err != nil {
			return err
		}
		if err := tx.CreateWithdraw(ctx, req); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, &model.Transaction{
			UserID:      userID,
			Amount:      -amount,
			Type:        model.TxWithdraw,
			Description: fmt.Sprintf("Withdrawal request #%d", req.ID),
		})
	})
	if err != nil {
		return nil, err
	}

	logOr(logger.SVCWallet).LogAttrs(ctx, slog.LevelInfo, "wallet.withdraw_requested",
		slog.Int64("request_id", req.ID),
		slog.Int64("user_id", userID),
		slog.Float64("amount", amount),
	)
	return req, nil
}

// ApproveWithdraw marks a pending request approved. The funds were
// already debited at request time.
func (s *Wallet) ApproveWithdraw(ctx context.Context, id int64) (*model.WithdrawRequest, error) {
	req, err := s.store.GetWithdraw(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetWithdrawStatus(ctx, id, model.WithdrawApproved, ""); err != nil {
		return nil, err
	}
	req.Status = model.WithdrawApproved

	logOr(logger.SVCWallet).LogAttrs(ctx, slog.LevelInfo, "wallet.withdraw_approved",
		slog.Int64("request_id", id),
		slog.Int64("user_id", req.UserID),
		slog.Float64("amount", req.Amount),
	)
	return req, nil
}

// RejectWithdraw refunds the held amount and records the reason, in one
// transaction.
func (s *Wallet) RejectWithdraw(ctx context.Context, id int64, reason string) (*model.WithdrawRequest, error) {
	req, err := s.store.GetWithdraw(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.SetWithdrawStatus(ctx, id, model.WithdrawRejected, reason); err != nil {
			return err
		}
		if err := tx.AdjustBalance(ctx, req.UserID, req.Amount); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, &model.Transaction{
			UserID:      req.UserID,
			Amount:      req.Amount,
			Type:        model.TxRefund,
			Description: fmt.Sprintf("Withdrawal #%d rejected", id),
		})
	})
	if err != nil {
		return nil, err
	}
	req.Status = model.WithdrawRejected
	req.Reason = reason

	logOr(logger.SVCWallet).LogAttrs(ctx, slog.LevelInfo, "wallet.withdraw_rejected",
		slog.Int64("request_id", id),
		slog.Int64("user_id", req.UserID),
		slog.Float64("amount", req.Amount),
	)
	return req, nil
}

// PendingWithdraws lists requests awaiting an admin decision.
func (s *Wallet) PendingWithdraws(ctx context.Context) ([]model.WithdrawRequest, error) {
	return s.store.ListPendingWithdraws(ctx)
}

// TopUp credits a user's balance by admin action.
func (s *Wallet) TopUp(ctx context.Context, userID int64, amount float64) error {
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.AdjustBalance(ctx, userID, amount); err != nil {
			return err
		}
		return tx.AddTransaction(ctx, &model.Transaction{
			UserID:      userID,
			Amount:      amount,
			Type:        model.TxAdminTopUp,
			Description: "Balance top-up by administration",
		})
	})
	if err != nil {
		return err
	}

	logOr(logger.SVCWallet).LogAttrs(ctx, slog.LevelInfo, "wallet.topup",
		slog.Int64("user_id", userID),
		slog.Float64("amount", amount),
	)
	return nil
}

// History returns the user's most recent ledger entries.
func (s *Wallet) History(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	return s.store.ListTransactions(ctx, userID, limit)
}
