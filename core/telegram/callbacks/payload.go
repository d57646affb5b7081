package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ID parses the single positive numeric id most buttons carry as
// their whole payload, or as its first "|" separated field.
func ID(c tele.Context) (int64, bool) {
	args := Args(c)
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
