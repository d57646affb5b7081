package state

import (
	"context"
	"errors"
	"testing"
)

type testDraft struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestManagerSetGetClear(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	ok, err := m.InProgress(ctx, 1)
	if err != nil {
		t.Fatalf("in progress: %v", err)
	}
	if ok {
		t.Fatal("fresh user should have no state")
	}

	if err := m.Set(ctx, 1, State("step_one"), testDraft{Name: "gift", Price: 9.5}); err != nil {
		t.Fatalf("set: %v", err)
	}

	rec, ok, err := m.Get(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if rec.State != State("step_one") {
		t.Fatalf("state = %s", rec.State)
	}
	d, err := Decode[testDraft](rec)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Name != "gift" || d.Price != 9.5 {
		t.Fatalf("draft = %+v", d)
	}

	if err := m.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := m.Get(ctx, 1); ok {
		t.Fatal("state survived clear")
	}
}

func TestSetReplacesPreviousState(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore())

	if err := m.Set(ctx, 7, State("a"), testDraft{Name: "first"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Set(ctx, 7, State("b"), nil); err != nil {
		t.Fatalf("set: %v", err)
	}

	rec, ok, err := m.Get(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if rec.State != State("b") {
		t.Fatalf("state = %s", rec.State)
	}
	if len(rec.Data) != 0 {
		t.Fatalf("nil payload should store no data, got %s", rec.Data)
	}
}

func TestDecodeCorruptPayload(t *testing.T) {
	rec := Record{State: State("x"), Data: []byte("{not json")}
	if _, err := Decode[testDraft](rec); !errors.Is(err, ErrPayloadDecode) {
		t.Fatalf("expected ErrPayloadDecode, got %v", err)
	}
}

func TestDecodeEmptyPayloadYieldsZeroDraft(t *testing.T) {
	rec := Record{State: State("x")}
	d, err := Decode[testDraft](rec)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d != (testDraft{}) {
		t.Fatalf("draft = %+v", d)
	}
}

func TestClearWithoutStateIsNoop(t *testing.T) {
	m := NewManager(NewMemoryStore())
	if err := m.Clear(context.Background(), 42); err != nil {
		t.Fatalf("clear: %v", err)
	}
}
