package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// payload returns the data carried by the pressed inline button.
// Telebot strips the \f<unique>| prefix before dispatch, so cb.Data
// holds just the button payload.
func payload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	return cb.Data
}

// Args splits the payload into its "|" separated parts.
func Args(c tele.Context) []string {
	p := payload(c)
	if p == "" {
		return nil
	}
	return strings.Split(p, "|")
}
