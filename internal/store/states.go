package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NogiBatia/BOT2/core/telegram/state"
)

// Load, Save and Delete implement state.Store so conversation state
// survives process restarts.

func (s *SQLStore) Load(ctx context.Context, userID int64) (state.Record, bool, error) {
	var row struct {
		State string `db:"state"`
		Data  []byte `db:"data"`
	}
	err := sqlxGet(ctx, s.ext, &row,
		`SELECT state, data FROM user_states WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return state.Record{}, false, nil
		}
		return state.Record{}, false, fmt.Errorf("load state: %w", err)
	}
	return state.Record{State: state.State(row.State), Data: json.RawMessage(row.Data)}, true, nil
}

func (s *SQLStore) Save(ctx context.Context, userID int64, rec state.Record) error {
	_, err := s.ext.ExecContext(ctx, `
		INSERT INTO user_states (user_id, state, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET state = EXCLUDED.state, data = EXCLUDED.data, updated_at = NOW()`,
		userID, string(rec.State), []byte(rec.Data),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, userID int64) error {
	_, err := s.ext.ExecContext(ctx,
		`DELETE FROM user_states WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}
