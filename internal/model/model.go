// Package model defines the persistent entities of the marketplace.
package model

import "time"

// Role distinguishes which side of a deal a rating or counter refers to.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// PurchaseStatus tracks the escrow handshake. Cancellation has no status
// of its own: a cancelled purchase is deleted together with its
// compensating updates.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
)

// User is created on first contact and never deleted.
type User struct {
	TelegramID int64  `db:"telegram_id"`
	Username   string `db:"username"`
	FullName   string `db:"full_name"`

	Balance float64 `db:"balance"`

	// Aggregate ratings per role, mean of received reviews, 0 = unrated.
	RatingSeller float64 `db:"rating_seller"`
	RatingBuyer  float64 `db:"rating_buyer"`

	TotalSales          int `db:"total_sales"`
	SuccessfulSales     int `db:"successful_sales"`
	FailedSales         int `db:"failed_sales"`
	TotalPurchases      int `db:"total_purchases"`
	SuccessfulPurchases int `db:"successful_purchases"`
	FailedPurchases     int `db:"failed_purchases"`

	IsBanned      bool `db:"is_banned"`
	IsAdmin       bool `db:"is_admin"`
	HasSubscribed bool `db:"has_subscribed"`

	CreatedAt time.Time `db:"created_at"`
}

// Slot is a single sellable offer. Deactivated while a purchase holds
// it, reactivated on cancellation, deleted only by explicit owner action
// while still active.
type Slot struct {
	ID          int64     `db:"id"`
	SellerID    int64     `db:"seller_id"`
	PhotoID     string    `db:"photo_id"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	Contact     string    `db:"contact"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

// Purchase links one buyer, one seller and one slot from reservation to
// settlement. Amount snapshots the slot price at reservation time.
type Purchase struct {
	ID       int64          `db:"id"`
	SlotID   int64          `db:"slot_id"`
	BuyerID  int64          `db:"buyer_id"`
	SellerID int64          `db:"seller_id"`
	Amount   float64        `db:"amount"`
	Status   PurchaseStatus `db:"status"`

	NFTSent     bool `db:"nft_sent"`
	NFTReceived bool `db:"nft_received"`

	// Rating values are 1..5 once the side has rated, 0 before.
	BuyerRated   bool   `db:"buyer_rated"`
	SellerRated  bool   `db:"seller_rated"`
	BuyerRating  int    `db:"buyer_rating"`
	SellerRating int    `db:"seller_rating"`
	BuyerReview  string `db:"buyer_review"`
	SellerReview string `db:"seller_review"`

	CreatedAt time.Time `db:"created_at"`
}

// Review is one received rating; append-only.
type Review struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	ReviewerID int64     `db:"reviewer_id"`
	PurchaseID int64     `db:"purchase_id"`
	Role       Role      `db:"role"`
	Rating     int       `db:"rating"`
	Text       string    `db:"text"`
	CreatedAt  time.Time `db:"created_at"`
}

// TransactionType tags ledger entries.
type TransactionType string

const (
	TxPurchase    TransactionType = "purchase"
	TxSale        TransactionType = "sale"
	TxRefund      TransactionType = "refund"
	TxPromo       TransactionType = "promo"
	TxTransferIn  TransactionType = "transfer_in"
	TxTransferOut TransactionType = "transfer_out"
	TxAdminTopUp  TransactionType = "admin_topup"
	TxWithdraw    TransactionType = "withdraw"
)

// Transaction is an append-only audit record of a balance delta.
type Transaction struct {
	ID          int64           `db:"id"`
	UserID      int64           `db:"user_id"`
	Amount      float64         `db:"amount"`
	Type        TransactionType `db:"type"`
	Description string          `db:"description"`
	CreatedAt   time.Time       `db:"created_at"`
}

// PromoCode credits a fixed amount to up to MaxActivations distinct users.
type PromoCode struct {
	Code           string    `db:"code"`
	Amount         float64   `db:"amount"`
	MaxActivations int       `db:"max_activations"`
	UsedCount      int       `db:"used_count"`
	CreatedBy      int64     `db:"created_by"`
	CreatedAt      time.Time `db:"created_at"`
}

// TicketStatus tracks a support ticket through its lifecycle.
type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketAnswered TicketStatus = "answered"
)

// SupportTicket is a user message awaiting an admin reply.
type SupportTicket struct {
	ID         int64        `db:"id"`
	UserID     int64        `db:"user_id"`
	Message    string       `db:"message"`
	Status     TicketStatus `db:"status"`
	Answer     string       `db:"answer"`
	CreatedAt  time.Time    `db:"created_at"`
	AnsweredAt *time.Time   `db:"answered_at"`
}

// WithdrawStatus tracks a withdrawal request.
type WithdrawStatus string

const (
	WithdrawPending  WithdrawStatus = "pending"
	WithdrawApproved WithdrawStatus = "approved"
	WithdrawRejected WithdrawStatus = "rejected"
)

// WithdrawRequest holds funds debited from the user until an admin
// approves or rejects it.
type WithdrawRequest struct {
	ID          int64          `db:"id"`
	UserID      int64          `db:"user_id"`
	Amount      float64        `db:"amount"`
	Card        string         `db:"card"`
	Status      WithdrawStatus `db:"status"`
	Reason      string         `db:"reason"`
	CreatedAt   time.Time      `db:"created_at"`
	ProcessedAt *time.Time     `db:"processed_at"`
}

// Stats is the aggregate snapshot shown on the admin panel.
type Stats struct {
	Users              int
	BannedUsers        int
	ActiveSlots        int
	PendingPurchases   int
	CompletedPurchases int
	OpenTickets        int
	PendingWithdrawals int
	TotalBalance       float64
}
