package service

import (
	"context"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// Admin covers the administrative operations: stats, bans, admin roster
// management. The primary admin from configuration can never be
// demoted.
type Admin struct {
	store          store.Store
	primaryAdminID int64
}

// NewAdmin constructs the admin service.
func NewAdmin(st store.Store, primaryAdminID int64) *Admin {
	return &Admin{store: st, primaryAdminID: primaryAdminID}
}

// Stats returns the aggregate snapshot for the admin panel.
func (s *Admin) Stats(ctx context.Context) (*model.Stats, error) {
	return s.store.Stats(ctx)
}

// Users lists every known user.
func (s *Admin) Users(ctx context.Context) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}

// SetBanned bans or unbans a user.
func (s *Admin) SetBanned(ctx context.Context, userID int64, banned bool) error {
	if err := s.store.SetBanned(ctx, userID, banned); err != nil {
		return err
	}
	logOr(logger.SVCUsers).LogAttrs(ctx, slog.LevelInfo, "user.ban_changed",
		slog.Int64("user_id", userID),
		slog.Bool("banned", banned),
	)
	return nil
}

// Promote grants admin rights.
func (s *Admin) Promote(ctx context.Context, userID int64) error {
	if err := s.store.SetAdmin(ctx, userID, true); err != nil {
		return err
	}
	logOr(logger.SVCUsers).LogAttrs(ctx, slog.LevelInfo, "admin.promoted",
		slog.Int64("user_id", userID),
	)
	return nil
}

// Demote revokes admin rights, refusing for the primary admin.
func (s *Admin) Demote(ctx context.Context, userID int64) error {
	if userID == s.primaryAdminID {
		return ErrPrimaryAdmin
	}
	if err := s.store.SetAdmin(ctx, userID, false); err != nil {
		return err
	}
	logOr(logger.SVCUsers).LogAttrs(ctx, slog.LevelInfo, "admin.demoted",
		slog.Int64("user_id", userID),
	)
	return nil
}

// AdminIDs lists all current admin user ids.
func (s *Admin) AdminIDs(ctx context.Context) ([]int64, error) {
	return s.store.ListAdminIDs(ctx)
}
