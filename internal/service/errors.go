// Package service implements the marketplace domain operations over the
// store. Every multi-write effect set runs inside a single store
// transaction; partial application is treated as a correctness bug.
package service

import "errors"

var (
	// ErrSelfPurchase rejects buying one's own slot.
	ErrSelfPurchase = errors.New("service: cannot buy own slot")
	// ErrSelfTransfer rejects transferring funds to oneself.
	ErrSelfTransfer = errors.New("service: cannot transfer to self")
	// ErrSellerNotConfirmed rejects receipt confirmation before the
	// seller has marked the item sent.
	ErrSellerNotConfirmed = errors.New("service: seller has not confirmed sending")
	// ErrNotDealParty rejects deal actions by anyone but the side the
	// action belongs to.
	ErrNotDealParty = errors.New("service: not a party of this deal")
	// ErrAlreadyRated rejects a second review for the same purchase
	// and role direction.
	ErrAlreadyRated = errors.New("service: already rated")
	// ErrInvalidRating rejects ratings outside 1..5.
	ErrInvalidRating = errors.New("service: rating must be between 1 and 5")
	// ErrPromoAlreadyActivated rejects a repeat activation of a promo
	// code by the same user.
	ErrPromoAlreadyActivated = errors.New("service: promo code already activated")
	// ErrNotSlotOwner rejects retiring a slot one does not own.
	ErrNotSlotOwner = errors.New("service: not the slot owner")
	// ErrPrimaryAdmin protects the configured primary admin from
	// demotion.
	ErrPrimaryAdmin = errors.New("service: primary admin cannot be removed")
)
