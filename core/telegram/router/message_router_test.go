package router

import (
	"testing"

	tg "github.com/NogiBatia/BOT2/core/telegram"
	"github.com/NogiBatia/BOT2/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements just enough of tele.Context for routing.
// Calls to anything else panic via the embedded nil interface.
type fakeContext struct {
	tele.Context
	text  string
	photo bool
	store map[string]any
}

func newFakeContext(text string) *fakeContext {
	return &fakeContext{text: text, store: make(map[string]any)}
}

func (f *fakeContext) Text() string       { return f.text }
func (f *fakeContext) Sender() *tele.User { return &tele.User{ID: 99} }
func (f *fakeContext) Chat() *tele.Chat   { return &tele.Chat{ID: 99} }
func (f *fakeContext) Update() tele.Update {
	return tele.Update{ID: 1, Message: f.Message()}
}
func (f *fakeContext) Message() *tele.Message {
	m := &tele.Message{Text: f.text}
	if f.photo {
		m.Photo = &tele.Photo{File: tele.File{FileID: "x"}}
	}
	return m
}
func (f *fakeContext) Callback() *tele.Callback { return nil }
func (f *fakeContext) Get(k string) any         { return f.store[k] }
func (f *fakeContext) Set(k string, v any)      { f.store[k] = v }

type fakeConversation struct {
	pending   bool
	abandoned int
	resumed   int
}

func (f *fakeConversation) InProgress(tele.Context) (bool, error) { return f.pending, nil }
func (f *fakeConversation) Resume(tele.Context) error             { f.resumed++; return nil }
func (f *fakeConversation) Abandon(tele.Context) error            { f.abandoned++; return nil }

func textHandler(t *testing.T, conv *fakeConversation, reg *tg.Registry, opts TextOptions) tele.HandlerFunc {
	t.Helper()
	routes := TextRoutes(conv, reg, opts)
	if len(routes) != 2 {
		t.Fatalf("expected text+photo routes, got %d", len(routes))
	}
	return routes[0].Handler
}

func photoHandler(t *testing.T, conv *fakeConversation, reg *tg.Registry, opts TextOptions) tele.HandlerFunc {
	t.Helper()
	return TextRoutes(conv, reg, opts)[1].Handler
}

func TestMenuLabelInterruptsPendingConversation(t *testing.T) {
	reg := tg.NewRegistry()
	menuCalled := 0
	reg.RegisterMenu("📊 My profile", func(tele.Context) error { menuCalled++; return nil })
	conv := &fakeConversation{pending: true}

	h := textHandler(t, conv, reg, TextOptions{})
	if err := h(newFakeContext("📊 My profile")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if menuCalled != 1 {
		t.Fatalf("menu handler called %d times", menuCalled)
	}
	if conv.abandoned != 1 {
		t.Fatalf("pending step abandoned %d times", conv.abandoned)
	}
	if conv.resumed != 0 {
		t.Fatal("menu label must not be fed into the pending step")
	}
}

func TestCommandInterruptsPendingConversation(t *testing.T) {
	reg := tg.NewRegistry()
	cmdCalled := 0
	reg.RegisterCommand("/start", commands.Command{
		Handler:     func(tele.Context) error { cmdCalled++; return nil },
		Description: "Main menu",
	})
	conv := &fakeConversation{pending: true}

	h := textHandler(t, conv, reg, TextOptions{})
	if err := h(newFakeContext("/start")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if cmdCalled != 1 || conv.abandoned != 1 || conv.resumed != 0 {
		t.Fatalf("cmd=%d abandoned=%d resumed=%d", cmdCalled, conv.abandoned, conv.resumed)
	}
}

func TestUnmatchedTextResumesPendingStep(t *testing.T) {
	reg := tg.NewRegistry()
	reg.RegisterMenu("📊 My profile", func(tele.Context) error { return nil })
	conv := &fakeConversation{pending: true}

	h := textHandler(t, conv, reg, TextOptions{})
	if err := h(newFakeContext("some flow input")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if conv.resumed != 1 || conv.abandoned != 0 {
		t.Fatalf("resumed=%d abandoned=%d", conv.resumed, conv.abandoned)
	}
}

func TestIdleTextFallsBack(t *testing.T) {
	reg := tg.NewRegistry()
	fallbackCalled := 0
	reg.SetTextFallback(func(tele.Context) error { fallbackCalled++; return nil })
	conv := &fakeConversation{}

	h := textHandler(t, conv, reg, TextOptions{})
	if err := h(newFakeContext("whatever")); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if fallbackCalled != 1 {
		t.Fatalf("fallback called %d times", fallbackCalled)
	}
}

func TestPhotoRouting(t *testing.T) {
	reg := tg.NewRegistry()
	unexpected := 0
	opts := TextOptions{UnknownPhoto: func(tele.Context) error { unexpected++; return nil }}

	conv := &fakeConversation{pending: true}
	h := photoHandler(t, conv, reg, opts)
	c := newFakeContext("")
	c.photo = true
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if conv.resumed != 1 {
		t.Fatal("pending step should receive the photo")
	}

	idle := &fakeConversation{}
	h = photoHandler(t, idle, reg, opts)
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if unexpected != 1 {
		t.Fatalf("unexpected photo handler called %d times", unexpected)
	}
}
