package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// State identifies a single step of a multi-message conversation.
type State string

// Record is a pending conversation step together with its accumulated input.
// Data holds a JSON-encoded draft struct owned by the handler that set the state.
type Record struct {
	State State           `json:"state"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Store persists conversation records keyed by user ID.
type Store interface {
	Load(ctx context.Context, userID int64) (Record, bool, error)
	Save(ctx context.Context, userID int64, rec Record) error
	Delete(ctx context.Context, userID int64) error
}

// Manager tracks per-user conversation state. Each user has at most one
// pending record at a time; setting a new one replaces the old.
type Manager interface {
	// Set stores a state with an optional payload. A nil payload stores
	// the state with no data.
	Set(ctx context.Context, userID int64, st State, payload any) error
	// Get returns the pending record for a user, if any.
	Get(ctx context.Context, userID int64) (Record, bool, error)
	// Clear removes the pending record for a user. Clearing a user with
	// no record is a no-op.
	Clear(ctx context.Context, userID int64) error
	// InProgress reports whether the user has a pending record.
	InProgress(ctx context.Context, userID int64) (bool, error)
}

// ErrPayloadDecode wraps payload unmarshalling failures so callers can
// distinguish a corrupt draft from a missing one.
var ErrPayloadDecode = errors.New("state: payload decode failed")

// Decode unmarshals a record payload into the draft type the handler expects.
func Decode[T any](rec Record) (T, error) {
	var out T
	if len(rec.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(rec.Data, &out); err != nil {
		return out, fmt.Errorf("%w: state %s: %v", ErrPayloadDecode, rec.State, err)
	}
	return out, nil
}
