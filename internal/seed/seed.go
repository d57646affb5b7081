// Package seed loads reference rows required before the bot serves
// its first update.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/bootstrap"
	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// PrimaryAdmin guarantees the configured primary admin has a user row
// with the admin flag set, so the admin panel works before that
// account ever messages the bot.
func PrimaryAdmin(adminID int64) bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, storage bootstrap.Storage) error {
		if adminID == 0 {
			return nil
		}
		st, ok := storage.(store.Store)
		if !ok {
			return fmt.Errorf("seed: unexpected storage type %T", storage)
		}

		_, err := st.GetUser(ctx, adminID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			u := &model.User{TelegramID: adminID, FullName: "Admin", IsAdmin: true, HasSubscribed: true}
			if err := st.CreateUser(ctx, u); err != nil {
				return fmt.Errorf("seed: create primary admin: %w", err)
			}
		case err != nil:
			return fmt.Errorf("seed: lookup primary admin: %w", err)
		default:
			if err := st.SetAdmin(ctx, adminID, true); err != nil {
				return fmt.Errorf("seed: flag primary admin: %w", err)
			}
		}

		logger.SEED.LogAttrs(ctx, slog.LevelInfo, "primary admin ensured",
			slog.Int64("user_id", adminID),
		)
		return nil
	})
}

// Run executes all seeders against the storage.
func Run(ctx context.Context, storage bootstrap.Storage, seeders ...bootstrap.Seeder) error {
	for _, s := range seeders {
		if s == nil {
			continue
		}
		if err := s.Seed(ctx, storage); err != nil {
			return err
		}
	}
	return nil
}
