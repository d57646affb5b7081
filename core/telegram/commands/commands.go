package commands

import tele "gopkg.in/telebot.v4"

// Command describes a slash command. Hidden commands are left out
// of the command list shown to users, AdminOnly ones additionally
// get the admin access check. Aliases match during lookup but are
// never advertised.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
