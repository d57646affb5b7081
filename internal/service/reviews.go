package service

import (
	"context"
	"log/slog"

	"github.com/NogiBatia/BOT2/core/logger"
	"github.com/NogiBatia/BOT2/internal/model"
	"github.com/NogiBatia/BOT2/internal/store"
)

// Reviews handles post-settlement bilateral ratings. Aggregates are
// recomputed as a full mean over all stored reviews on every write,
// never maintained incrementally.
type Reviews struct {
	store store.Store
}

// NewReviews constructs the review service.
func NewReviews(st store.Store) *Reviews {
	return &Reviews{store: st}
}

// Submit records one review of the given role direction for a completed
// purchase. role names the side being rated: RoleSeller means the buyer
// rates the seller. Each direction is allowed exactly once per purchase.
func (s *Reviews) Submit(ctx context.Context, reviewerID, purchaseID int64, role model.Role, rating int, text string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	p, err := s.store.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	var ratedID int64
	switch role {
	case model.RoleSeller:
		if p.BuyerID != reviewerID {
			return nil, ErrNotDealParty
		}
		if p.BuyerRated {
			return nil, ErrAlreadyRated
		}
		ratedID = p.SellerID
	case model.RoleBuyer:
		if p.SellerID != reviewerID {
			return nil, ErrNotDealParty
		}
		if p.SellerRated {
			return nil, ErrAlreadyRated
		}
		ratedID = p.BuyerID
	default:
		return nil, ErrInvalidRating
	}

	review := &model.Review{
		UserID:     ratedID,
		ReviewerID: reviewerID,
		PurchaseID: purchaseID,
		Role:       role,
		Rating:     rating,
		Text:       text,
	}
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.CreateReview(ctx, review); err != nil {
			return err
		}
		if err := tx.SetPurchaseRated(ctx, purchaseID, role, rating, text); err != nil {
			return err
		}
		avg, err := tx.AverageRating(ctx, ratedID, role)
		if err != nil {
			return err
		}
		return tx.SetRating(ctx, ratedID, role, avg)
	})
	if err != nil {
		return nil, err
	}

	logOr(logger.SVCReviews).LogAttrs(ctx, slog.LevelInfo, "review.submitted",
		slog.Int64("purchase_id", purchaseID),
		slog.Int64("user_id", ratedID),
		slog.String("role", string(role)),
		slog.Int("rating", rating),
	)
	return review, nil
}

// For lists reviews received by a user in the given role.
func (s *Reviews) For(ctx context.Context, userID int64, role model.Role) ([]model.Review, error) {
	return s.store.ListReviewsForUser(ctx, userID, role)
}
