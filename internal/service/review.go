package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/event"
	"github.com/utafrali/LocalBizGo/internal/repository"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	reviews    repository.ReviewRepository
	businesses repository.BusinessRepository
	users      repository.UserRepository
	producer   *event.Producer
	logger     *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviews repository.ReviewRepository,
	businesses repository.BusinessRepository,
	users repository.UserRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		businesses: businesses,
		users:      users,
		producer:   producer,
		logger:     logger,
	}
}

// List returns the reviews of one business, or of one author, or all of them.
// A business filter takes precedence over a user filter.
func (s *ReviewService) List(ctx context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	switch {
	case filter.BusinessID != "":
		return s.reviews.ListByBusiness(ctx, filter.BusinessID)
	case filter.UserID != "":
		return s.reviews.ListByUser(ctx, filter.UserID)
	default:
		return s.reviews.List(ctx)
	}
}

// Create stores a review by actor. Administrators cannot review. The author's
// display name and e-mail and the business name are copied into the review.
func (s *ReviewService) Create(ctx context.Context, actor domain.Actor, input domain.CreateReviewInput) (*domain.Review, error) {
	if actor.UserID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if actor.IsAdmin() {
		return nil, apperrors.Forbidden("administrators cannot write reviews")
	}
	if !domain.ValidRating(input.Rating) {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	businessID := strings.TrimSpace(input.BusinessID)
	if businessID == "" {
		return nil, apperrors.InvalidInput("businessId is required")
	}

	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.Create(ctx, domain.NewReview{
		Rating:       input.Rating,
		Comment:      strings.TrimSpace(input.Comment),
		UserID:       author.ID,
		UserName:     author.DisplayName(),
		UserEmail:    author.Email,
		BusinessID:   business.ID,
		BusinessName: business.Name,
	})
	if err != nil {
		return nil, err
	}

	publishErr(ctx, s.logger, event.TopicReviewCreated, s.producer.PublishReviewCreated(ctx, review))

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("business_id", review.BusinessID),
		slog.String("user_id", review.UserID),
		slog.Int("rating", review.Rating),
	)
	return review, nil
}

// Delete removes a review written by actor. A missing review and someone
// else's review produce the same client-facing error; the cause is kept in
// the chain for logs and errors.Is.
func (s *ReviewService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	ok, err := s.reviews.Delete(ctx, id, actor.UserID)
	if ok {
		publishErr(ctx, s.logger, event.TopicReviewDeleted, s.producer.PublishReviewDeleted(ctx, id, actor.UserID))
		s.logger.InfoContext(ctx, "review deleted",
			slog.String("review_id", id),
			slog.String("user_id", actor.UserID),
		)
		return nil
	}

	if err == nil {
		err = apperrors.ErrNotFound
	}
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrForbidden) {
		reason := "not_found"
		if errors.Is(err, apperrors.ErrForbidden) {
			reason = "not_owner"
		}
		s.logger.WarnContext(ctx, "review delete refused",
			slog.String("review_id", id),
			slog.String("user_id", actor.UserID),
			slog.String("reason", reason),
		)
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: "review not found or not owned by requester",
			Status:  http.StatusNotFound,
			Err:     err,
		}
	}
	return err
}
