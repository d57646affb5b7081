// Package store persists marketplace entities and exposes the
// transaction boundary every multi-write effect set runs inside.
package store

import (
	"context"
	"errors"

	"github.com/NogiBatia/BOT2/core/telegram/state"
	"github.com/NogiBatia/BOT2/internal/model"
)

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrInsufficientFunds is returned when a debit would drive a
	// balance negative.
	ErrInsufficientFunds = errors.New("store: insufficient funds")
	// ErrSlotUnavailable is returned when a slot is already reserved,
	// retired or otherwise not active.
	ErrSlotUnavailable = errors.New("store: slot unavailable")
	// ErrPromoExhausted is returned when a promo code has no
	// activations left.
	ErrPromoExhausted = errors.New("store: promo code exhausted")
	// ErrAlreadyExists is returned on unique-key conflicts such as a
	// duplicate promo code.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the persistence contract for the marketplace. Implementations
// must make WithTx atomic: either every write made through the passed
// Store commits, or none do.
type Store interface {
	state.Store

	WithTx(ctx context.Context, fn func(Store) error) error

	// Users
	GetUser(ctx context.Context, telegramID int64) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUserProfile(ctx context.Context, telegramID int64, username, fullName string) error
	UpdateUserName(ctx context.Context, telegramID int64, fullName string) error
	AdjustBalance(ctx context.Context, telegramID int64, delta float64) error
	SetBanned(ctx context.Context, telegramID int64, banned bool) error
	SetAdmin(ctx context.Context, telegramID int64, admin bool) error
	SetSubscribed(ctx context.Context, telegramID int64, subscribed bool) error
	IsAdmin(ctx context.Context, telegramID int64) (bool, error)
	BumpSaleCounters(ctx context.Context, telegramID int64, success bool) error
	BumpPurchaseCounters(ctx context.Context, telegramID int64, success bool) error
	SetRating(ctx context.Context, telegramID int64, role model.Role, value float64) error
	ListUsers(ctx context.Context) ([]model.User, error)
	ListAdminIDs(ctx context.Context) ([]int64, error)

	// Slots
	CreateSlot(ctx context.Context, s *model.Slot) error
	GetSlot(ctx context.Context, id int64) (*model.Slot, error)
	ListActiveSlots(ctx context.Context, excludeSeller int64) ([]model.Slot, error)
	ListSlotsBySeller(ctx context.Context, sellerID int64) ([]model.Slot, error)
	// DeactivateSlot flips is_active off only if it is currently on,
	// reporting whether the flip happened. The rows-affected guard is
	// what prevents a double sale.
	DeactivateSlot(ctx context.Context, id int64) (bool, error)
	ReactivateSlot(ctx context.Context, id int64) error
	DeleteSlot(ctx context.Context, id int64) error

	// Purchases
	CreatePurchase(ctx context.Context, p *model.Purchase) error
	GetPurchase(ctx context.Context, id int64) (*model.Purchase, error)
	ListPurchasesByBuyer(ctx context.Context, buyerID int64, status model.PurchaseStatus) ([]model.Purchase, error)
	ListPurchasesBySeller(ctx context.Context, sellerID int64, status model.PurchaseStatus) ([]model.Purchase, error)
	MarkPurchaseSent(ctx context.Context, id int64) error
	CompletePurchase(ctx context.Context, id int64) error
	SetPurchaseRated(ctx context.Context, id int64, role model.Role, rating int, text string) error
	DeletePurchase(ctx context.Context, id int64) error

	// Reviews
	CreateReview(ctx context.Context, r *model.Review) error
	ListReviewsForUser(ctx context.Context, userID int64, role model.Role) ([]model.Review, error)
	AverageRating(ctx context.Context, userID int64, role model.Role) (float64, error)

	// Ledger
	AddTransaction(ctx context.Context, t *model.Transaction) error
	ListTransactions(ctx context.Context, userID int64, limit int) ([]model.Transaction, error)

	// Promo codes
	CreatePromo(ctx context.Context, p *model.PromoCode) error
	GetPromo(ctx context.Context, code string) (*model.PromoCode, error)
	ListPromos(ctx context.Context) ([]model.PromoCode, error)
	// ConsumePromoActivation bumps used_count only while activations
	// remain (rows-affected guard).
	ConsumePromoActivation(ctx context.Context, code string) error
	HasPromoActivation(ctx context.Context, code string, userID int64) (bool, error)
	AddPromoActivation(ctx context.Context, code string, userID int64) error

	// Support tickets
	CreateTicket(ctx context.Context, t *model.SupportTicket) error
	GetTicket(ctx context.Context, id int64) (*model.SupportTicket, error)
	ListOpenTickets(ctx context.Context) ([]model.SupportTicket, error)
	AnswerTicket(ctx context.Context, id int64, answer string) error

	// Withdrawals
	CreateWithdraw(ctx context.Context, w *model.WithdrawRequest) error
	GetWithdraw(ctx context.Context, id int64) (*model.WithdrawRequest, error)
	ListPendingWithdraws(ctx context.Context) ([]model.WithdrawRequest, error)
	SetWithdrawStatus(ctx context.Context, id int64, status model.WithdrawStatus, reason string) error

	// Stats
	Stats(ctx context.Context) (*model.Stats, error)
}
