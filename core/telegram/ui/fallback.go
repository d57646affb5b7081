package ui

import tele "gopkg.in/telebot.v4"

// FallbackProvider exposes handlers used when incoming updates
// cannot be mapped to menu buttons, commands, callbacks, or an
// expected photo upload.
type FallbackProvider interface {
	UnknownText() tele.HandlerFunc
	UnknownPhoto() tele.HandlerFunc
	UnknownCallback() tele.HandlerFunc
}
