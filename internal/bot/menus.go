package bot

import (
	"github.com/NogiBatia/BOT2/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Menu button labels, the fixed closed set the router matches exactly.
// A recognized label always interrupts any in-flight conversation.
const (
	MenuSellNFT  = "🎁 Sell NFT"
	MenuBrowse   = "🔍 Browse slots"
	MenuProfile  = "📊 My profile"
	MenuMyNFTs   = "🛒 My NFTs"
	MenuSupport  = "📞 Support"
	MenuAdmin    = "👑 Admin panel"
	MenuMainBack = "⬅️ Main menu"

	MenuAdmStats     = "📊 Stats"
	MenuAdmTickets   = "📞 Tickets"
	MenuAdmUsers     = "👥 Users"
	MenuAdmBalance   = "💳 Balance management"
	MenuAdmWithdraws = "💰 Withdraw requests"
	MenuAdmPromos    = "🎁 Promo codes"
	MenuAdmBroadcast = "📢 Broadcast"
	MenuAdmAdmins    = "👑 Admin management"
)

// mainMenu is the reply keyboard everyone sees; admins get one extra
// row leading to the admin panel.
func mainMenu(isAdmin bool) *tele.ReplyMarkup {
	rows := [][]string{
		{MenuSellNFT, MenuBrowse},
		{MenuProfile, MenuMyNFTs},
		{MenuSupport},
	}
	if isAdmin {
		rows = append(rows, []string{MenuAdmin})
	}
	return keyboard.ReplyButtons(rows...)
}

func adminMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{MenuAdmStats, MenuAdmTickets},
		[]string{MenuAdmUsers, MenuAdmBalance},
		[]string{MenuAdmWithdraws, MenuAdmPromos},
		[]string{MenuAdmBroadcast, MenuAdmAdmins},
		[]string{MenuMainBack},
	)
}
