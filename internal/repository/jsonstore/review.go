package jsonstore

import (
	"context"
	"fmt"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/repository"
	"github.com/utafrali/LocalBizGo/internal/store"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

// ReviewRepository stores reviews in the "reviews" collection. Author and
// business names are copied in at creation and never refreshed.
type ReviewRepository struct {
	col *store.Collection[domain.Review]
	now Clock
}

func NewReviewRepository(s *store.Store) *ReviewRepository {
	return &ReviewRepository{
		col: store.Open[domain.Review](s, store.Reviews),
		now: utcNow,
	}
}

func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	items, err := r.col.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return items, nil
}

func (r *ReviewRepository) filter(ctx context.Context, keep func(domain.Review) bool) ([]domain.Review, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0)
	for _, rv := range items {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *ReviewRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Review, error) {
	return r.filter(ctx, func(rv domain.Review) bool { return rv.BusinessID == businessID })
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	return r.filter(ctx, func(rv domain.Review) bool { return rv.UserID == userID })
}

func (r *ReviewRepository) Create(ctx context.Context, in domain.NewReview) (*domain.Review, error) {
	review := domain.Review{
		ID:           newID(),
		Rating:       in.Rating,
		Comment:      in.Comment,
		UserID:       in.UserID,
		UserName:     in.UserName,
		UserEmail:    in.UserEmail,
		BusinessID:   in.BusinessID,
		BusinessName: in.BusinessName,
		CreatedAt:    r.now(),
	}

	err := r.col.Mutate(ctx, func(items []domain.Review) ([]domain.Review, error) {
		return append(items, review), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id, requesterID string) (bool, error) {
	err := r.col.Mutate(ctx, func(items []domain.Review) ([]domain.Review, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if items[i].UserID != requesterID {
				return nil, apperrors.Forbidden("review is owned by another user")
			}
			return append(items[:i], items[i+1:]...), nil
		}
		return nil, apperrors.NotFound("review", id)
	})
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	return true, nil
}

func (r *ReviewRepository) AverageRating(ctx context.Context, businessID string) (float64, error) {
	reviews, err := r.ListByBusiness(ctx, businessID)
	if err != nil {
		return 0, err
	}
	return domain.Summarize(reviews).AverageRating, nil
}
