package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NogiBatia/BOT2/core/telegram/format"
	"github.com/NogiBatia/BOT2/internal/model"
)

// fmtAmount renders a balance or price without trailing zero noise.
func fmtAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + " ₽"
}

// fmtRating renders a per-role mean; zero means not rated yet.
func fmtRating(v float64) string {
	if v == 0 {
		return "—"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " ⭐"
}

// escapeMD shields user-supplied text embedded into Markdown messages.
func escapeMD(s string) string {
	out, err := format.EscapeMarkdown(s, format.MarkdownV1)
	if err != nil {
		return s
	}
	return out
}

func slotCaption(s *model.Slot, seller *model.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎁 *NFT #%d*\n\n", s.ID)
	fmt.Fprintf(&b, "📝 %s\n", escapeMD(s.Description))
	fmt.Fprintf(&b, "💵 Price: %s\n", fmtAmount(s.Price))
	if seller != nil {
		fmt.Fprintf(&b, "👤 Seller: %s\n", escapeMD(seller.FullName))
		fmt.Fprintf(&b, "⭐ Seller rating: %s (%d sales)\n", fmtRating(seller.RatingSeller), seller.SuccessfulSales)
	}
	return b.String()
}

func profileText(u *model.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *Your profile*\n\n")
	fmt.Fprintf(&b, "👤 Name: %s\n", escapeMD(u.FullName))
	fmt.Fprintf(&b, "🆔 ID: `%d`\n", u.TelegramID)
	fmt.Fprintf(&b, "💰 Balance: %s\n\n", fmtAmount(u.Balance))
	fmt.Fprintf(&b, "⭐ Seller rating: %s\n", fmtRating(u.RatingSeller))
	fmt.Fprintf(&b, "⭐ Buyer rating: %s\n\n", fmtRating(u.RatingBuyer))
	fmt.Fprintf(&b, "📈 Sales: %d total, %d successful, %d failed\n",
		u.TotalSales, u.SuccessfulSales, u.FailedSales)
	fmt.Fprintf(&b, "📉 Purchases: %d total, %d successful, %d failed\n",
		u.TotalPurchases, u.SuccessfulPurchases, u.FailedPurchases)
	return b.String()
}

func reviewLines(reviews []model.Review) string {
	if len(reviews) == 0 {
		return msgNoReviews
	}
	var b strings.Builder
	for _, r := range reviews {
		fmt.Fprintf(&b, "%s (deal #%d)", strings.Repeat("⭐", r.Rating), r.PurchaseID)
		if r.Text != "" {
			fmt.Fprintf(&b, ": %s", r.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func statsText(st *model.Stats) string {
	var b strings.Builder
	b.WriteString("📊 *Marketplace stats*\n\n")
	fmt.Fprintf(&b, "👥 Users: %d (%d banned)\n", st.Users, st.BannedUsers)
	fmt.Fprintf(&b, "🎁 Active slots: %d\n", st.ActiveSlots)
	fmt.Fprintf(&b, "🤝 Deals: %d pending, %d completed\n", st.PendingPurchases, st.CompletedPurchases)
	fmt.Fprintf(&b, "📞 Open tickets: %d\n", st.OpenTickets)
	fmt.Fprintf(&b, "💰 Pending withdrawals: %d\n", st.PendingWithdrawals)
	fmt.Fprintf(&b, "🏦 Total user balance: %s\n", fmtAmount(st.TotalBalance))
	return b.String()
}
