package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
)

type manager struct {
	store Store
}

// NewManager constructs a Manager backed by the given Store.
func NewManager(store Store) Manager {
	return &manager{store: store}
}

func (m *manager) Set(ctx context.Context, userID int64, st State, payload any) error {
	rec := Record{State: st}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("state: encode payload for %s: %w", st, err)
		}
		rec.Data = data
	}
	if err := m.store.Save(ctx, userID, rec); err != nil {
		return fmt.Errorf("state: save: %w", err)
	}
	logger.Debug(ctx, "tg", "fsm.set",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(st)),
	)
	return nil
}

func (m *manager) Get(ctx context.Context, userID int64) (Record, bool, error) {
	rec, ok, err := m.store.Load(ctx, userID)
	if err != nil {
		return Record{}, false, fmt.Errorf("state: load: %w", err)
	}
	return rec, ok, nil
}

func (m *manager) Clear(ctx context.Context, userID int64) error {
	if err := m.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("state: clear: %w", err)
	}
	logger.Debug(ctx, "tg", "fsm.clear",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
	)
	return nil
}

func (m *manager) InProgress(ctx context.Context, userID int64) (bool, error) {
	_, ok, err := m.store.Load(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("state: load: %w", err)
	}
	return ok, nil
}
