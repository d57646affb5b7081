package bot

// User-facing message strings, grouped loosely by flow.
const (
	msgTryLater   = "Something went wrong, please try again later."
	msgBanned     = "🚫 You are banned from using this bot."
	msgNotAllowed = "Not allowed"

	msgSubscribeRequired = "📢 To use the bot, subscribe to our channel first, then press the button below."

	msgWelcome = "👋 Welcome to the NFT gift marketplace!\n\n" +
		"List your NFTs for sale, browse other users' slots and trade " +
		"safely: the buyer's funds are held until they confirm receipt."
	msgHelp = "ℹ️ How it works:\n\n" +
		"🎁 Sell NFT — list an item: photo, description, price, contact.\n" +
		"🔍 Browse slots — see what others sell and buy with your balance.\n" +
		"💰 When you buy, your funds are held until you confirm receipt.\n" +
		"📊 My profile — balance, ratings, transfers and withdrawals.\n" +
		"📞 Support — message the team, we reply in the bot."
	msgUseMenu   = "Please use the menu buttons below."
	msgFlowReset = "⚠️ That action is no longer available. Back to the main menu."

	msgSlotPhoto        = "🖼 Send a photo of the NFT you want to sell."
	msgSlotPhotoOnly    = "Please send the NFT as a photo."
	msgSlotDescription  = "📝 Now send a description for your NFT."
	msgSlotPrice        = "💵 Now send the price (a positive number)."
	msgSlotPriceInvalid = "❌ The price must be a positive number, try again."
	msgSlotContact      = "📞 Finally, send your contact (at least 3 characters)."
	msgSlotContactShort = "❌ The contact is too short, try again."
	msgSlotCreated      = "✅ Your NFT is listed!"

	msgNoSlots       = "😔 No active slots right now, check back later."
	msgMySlotsEmpty  = "You have no listed NFTs yet."
	msgSlotGone      = "❌ This slot is no longer available."
	msgSelfPurchase  = "❌ You cannot buy your own slot."
	msgNoFunds       = "❌ Insufficient balance for this purchase."
	msgSlotRetired   = "🗑 The slot has been removed."
	msgSlotHeld      = "❌ A pending deal holds this slot, it cannot be removed."

	msgDealReserved = "✅ Purchase reserved! Your funds are held until you confirm receipt.\n" +
		"The seller has been notified; contact them to receive the NFT."
	msgDealNotYours     = "❌ This deal is not yours."
	msgDealGone         = "❌ Deal not found."
	msgSellerNotConfirm = "⏳ The seller has not confirmed sending yet."
	msgDealSent         = "✅ Marked as sent. The buyer has been asked to confirm receipt."
	msgDealCompleted    = "🎉 Deal completed! The seller has been paid."
	msgDealCancelled    = "↩️ Deal cancelled, your funds are back on your balance."

	msgRatePrompt      = "⭐ Please rate your counterparty (1-5):"
	msgReviewText      = "💬 Leave a short review, or send \"-\" to skip."
	msgReviewThanks    = "🙏 Thank you for your feedback!"
	msgAlreadyRated    = "❌ You have already rated this deal."
	msgNoReviews       = "No reviews yet."

	msgNamePrompt   = "✏️ Send your new display name (at least 2 characters)."
	msgNameTooShort = "❌ The name is too short, try again."
	msgNameChanged  = "✅ Name updated."

	msgPromoPrompt    = "🎁 Send the promo code."
	msgPromoNotFound  = "❌ Unknown promo code, try again."
	msgPromoUsed      = "❌ You have already activated this promo code."
	msgPromoExhausted = "❌ This promo code has no activations left."

	msgWithdrawCard        = "💳 Send your card number (at least 16 characters)."
	msgWithdrawCardShort   = "❌ The card number is too short, try again."
	msgWithdrawAmount      = "💵 Send the amount to withdraw."
	msgWithdrawAmountBad   = "❌ Enter a positive number not larger than your balance."
	msgWithdrawRequested   = "✅ Withdrawal request created, an admin will process it soon."
	msgWithdrawApprovedFmt = "✅ Your withdrawal request #%d has been paid out."
	msgWithdrawRejectedFmt = "❌ Your withdrawal request #%d was rejected: %s\nThe funds are back on your balance."

	msgTransferRecipient = "👤 Send the recipient's numeric id."
	msgTransferBadID     = "❌ Send a numeric user id."
	msgTransferSelf      = "❌ You cannot transfer to yourself."
	msgTransferNoUser    = "❌ No such user."
	msgTransferAmount    = "💵 Send the amount to transfer."
	msgTransferAmountBad = "❌ Enter a positive number not larger than your balance."
	msgTransferDone      = "✅ Transfer complete."

	msgSupportPrompt  = "📞 Describe your problem in one message, the team will reply here."
	msgSupportCreated = "✅ Ticket created, we will get back to you."

	msgAdminPanel      = "👑 Admin panel."
	msgTopUpUser       = "👤 Send the user id to top up."
	msgTopUpAmount     = "💵 Send the top-up amount."
	msgTopUpBadAmount  = "❌ Enter a positive number."
	msgTopUpDone       = "✅ Balance topped up."
	msgUserNotFound    = "❌ User not found."
	msgYouBanned       = "🚫 You have been banned by an administrator."
	msgYouUnbanned     = "✅ You have been unbanned, welcome back."
	msgBadID           = "❌ Send a numeric id."
	msgAdminAddPrompt  = "👤 Send the user id to grant admin rights."
	msgAdminAdded      = "✅ Admin rights granted."
	msgAdminRemoved    = "✅ Admin rights revoked."
	msgPrimaryAdmin    = "❌ The primary admin cannot be removed."
	msgRejectReason    = "📝 Send the rejection reason."
	msgTicketReply     = "📝 Send the reply to the ticket."
	msgTicketAnswered  = "✅ Reply sent, ticket closed."
	msgTicketGone      = "❌ Ticket not found or already answered."
	msgPromoName       = "🎁 Send the promo code name (at least 3 characters)."
	msgPromoNameShort  = "❌ The code is too short, try again."
	msgPromoExists     = "❌ This code already exists, send another one."
	msgPromoAmount     = "💵 Send the credit amount."
	msgPromoUses       = "🔢 Send the number of activations."
	msgPromoUsesBad    = "❌ Enter a positive whole number."
	msgPromoCreatedFmt = "✅ Promo code %s created: %s × %d activations."
	msgBroadcastPrompt = "📢 Send the broadcast text."
	msgNoTickets       = "No open tickets."
	msgNoWithdraws     = "No pending withdrawal requests."
	msgNoPromos        = "No promo codes yet."
)
