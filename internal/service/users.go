package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// Users manages user identity and profile data.
type Users struct {
	store store.Store
}

// NewUsers constructs the user service.
func NewUsers(st store.Store) *Users {
	return &Users{store: st}
}

// Ensure creates the user on first contact and keeps the Telegram
// profile fields fresh on subsequent ones.
func (s *Users) Ensure(ctx context.Context, telegramID int64, username, fullName string) (*model.User, error) {
	u, err := s.store.GetUser(ctx, telegramID)
	if err == nil {
		if u.Username != username || u.FullName != fullName {
			if err := s.store.UpdateUserProfile(ctx, telegramID, username, fullName); err != nil {
				return nil, err
			}
			u.Username = username
			u.FullName = fullName
		}
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	u = &model.User{TelegramID: telegramID, Username: username, FullName: fullName}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	logOr(logger.SVCUsers).LogAttrs(ctx, slog.LevelInfo, "user.created",
		slog.Int64("user_id", telegramID),
		slog.String("username", username),
	)
	return s.store.GetUser(ctx, telegramID)
}

// Get returns a user by Telegram id.
func (s *Users) Get(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.store.GetUser(ctx, telegramID)
}

// ChangeName updates the display name.
func (s *Users) ChangeName(ctx context.Context, telegramID int64, fullName string) error {
	return s.store.UpdateUserName(ctx, telegramID, fullName)
}

// IsAdmin is a direct store lookup. Lookup failures degrade to false:
// the gate favours availability over strictness for read-only checks.
func (s *Users) IsAdmin(ctx context.Context, telegramID int64) bool {
	admin, err := s.store.IsAdmin(ctx, telegramID)
	if err != nil {
		return false
	}
	return admin
}

// IsBanned reports the ban flag, degrading to false on lookup failure.
func (s *Users) IsBanned(ctx context.Context, telegramID int64) bool {
	u, err := s.store.GetUser(ctx, telegramID)
	if err != nil {
		return false
	}
	return u.IsBanned
}

// MarkSubscribed persists a successful subscription verification.
func (s *Users) MarkSubscribed(ctx context.Context, telegramID int64) error {
	return s.store.SetSubscribed(ctx, telegramID, true)
}
