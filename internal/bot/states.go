package bot

import (
	"github.com/NogiBatia/BOT2/core/telegram/state"
	"github.com/NogiBatia/BOT2/internal/model"
)

// Conversation states, a closed set. Each multi-step flow threads its
// accumulated input forward through a typed draft struct serialized
// into the state record, so field order mistakes and delimiter
// collisions cannot happen.
const (
	// Slot creation: photo → description → price → contact.
	StateSlotPhoto       state.State = "slot_photo"
	StateSlotDescription state.State = "slot_description"
	StateSlotPrice       state.State = "slot_price"
	StateSlotContact     state.State = "slot_contact"

	StateNameChange state.State = "name_change"
	StatePromoEnter state.State = "promo_enter"

	StateWithdrawCard   state.State = "withdraw_card"
	StateWithdrawAmount state.State = "withdraw_amount"

	StateTransferRecipient state.State = "transfer_recipient"
	StateTransferAmount    state.State = "transfer_amount"

	StateSupportMessage state.State = "support_message"
	StateReviewText     state.State = "review_text"

	// Admin flows.
	StateTopUpUser      state.State = "admin_topup_user"
	StateTopUpAmount    state.State = "admin_topup_amount"
	StateAdminAdd       state.State = "admin_add"
	StateAdminRemove    state.State = "admin_remove"
	StateWithdrawReject state.State = "admin_withdraw_reject"
	StateTicketReply    state.State = "admin_ticket_reply"
	StatePromoName      state.State = "admin_promo_name"
	StatePromoAmount    state.State = "admin_promo_amount"
	StatePromoUses      state.State = "admin_promo_uses"
	StateBroadcast      state.State = "admin_broadcast"
)

// SlotDraft accumulates the slot creation flow.
type SlotDraft struct {
	PhotoID     string  `json:"photo_id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// WithdrawDraft carries the card between the withdrawal steps.
type WithdrawDraft struct {
	Card string `json:"card"`
}

// TransferDraft carries the recipient between the transfer steps.
type TransferDraft struct {
	RecipientID int64 `json:"recipient_id"`
}

// ReviewDraft carries the picked star value into the review text step.
type ReviewDraft struct {
	PurchaseID int64      `json:"purchase_id"`
	Role       model.Role `json:"role"`
	Rating     int        `json:"rating"`
}

// TopUpDraft carries the target user into the top-up amount step.
type TopUpDraft struct {
	UserID int64 `json:"user_id"`
}

// RejectDraft carries the withdrawal request into the reason step.
type RejectDraft struct {
	RequestID int64 `json:"request_id"`
}

// TicketReplyDraft carries the ticket into the reply step.
type TicketReplyDraft struct {
	TicketID int64 `json:"ticket_id"`
}

// PromoDraft accumulates the promo creation flow.
type PromoDraft struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}
