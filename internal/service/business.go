package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/event"
	"github.com/utafrali/LocalBizGo/internal/repository"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

// BusinessService implements the business logic for business listings.
type BusinessService struct {
	businesses repository.BusinessRepository
	categories repository.CategoryRepository
	producer   *event.Producer
	logger     *slog.Logger
}

// NewBusinessService creates a new business service.
func NewBusinessService(
	businesses repository.BusinessRepository,
	categories repository.CategoryRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *BusinessService {
	return &BusinessService{
		businesses: businesses,
		categories: categories,
		producer:   producer,
		logger:     logger,
	}
}

func (s *BusinessService) List(ctx context.Context) ([]domain.Business, error) {
	return s.businesses.List(ctx)
}

func (s *BusinessService) Get(ctx context.Context, id string) (*domain.Business, error) {
	return s.businesses.GetByID(ctx, id)
}

func (s *BusinessService) ListByCategory(ctx context.Context, categoryID string) ([]domain.Business, error) {
	return s.businesses.ListByCategory(ctx, categoryID)
}

// requireCategory fails with NotFound when categoryID does not exist.
func (s *BusinessService) requireCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return err
	}
	return nil
}

// Create adds a business after checking that its category exists.
func (s *BusinessService) Create(ctx context.Context, input domain.CreateBusinessInput) (*domain.Business, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	input.CategoryID = strings.TrimSpace(input.CategoryID)

	switch {
	case input.Name == "":
		return nil, apperrors.InvalidInput("name is required")
	case input.Location == "":
		return nil, apperrors.InvalidInput("location is required")
	case input.CategoryID == "":
		return nil, apperrors.InvalidInput("categoryId is required")
	}

	if err := s.requireCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	business, err := s.businesses.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	publishErr(ctx, s.logger, event.TopicBusinessCreated, s.producer.PublishBusinessCreated(ctx, business))

	s.logger.InfoContext(ctx, "business created",
		slog.String("business_id", business.ID),
		slog.String("category_id", business.CategoryID),
	)
	return business, nil
}

// Update applies a partial update. A new category id must exist.
func (s *BusinessService) Update(ctx context.Context, id string, input domain.UpdateBusinessInput) (*domain.Business, error) {
	input.Name = trimPtr(input.Name)
	input.Location = trimPtr(input.Location)
	input.CategoryID = trimPtr(input.CategoryID)

	if input.IsEmpty() {
		return nil, apperrors.InvalidInput("no fields to update")
	}
	switch {
	case input.Name != nil && *input.Name == "":
		return nil, apperrors.InvalidInput("name must not be empty")
	case input.Location != nil && *input.Location == "":
		return nil, apperrors.InvalidInput("location must not be empty")
	case input.CategoryID != nil && *input.CategoryID == "":
		return nil, apperrors.InvalidInput("categoryId must not be empty")
	}

	if input.CategoryID != nil {
		if err := s.requireCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	business, err := s.businesses.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	publishErr(ctx, s.logger, event.TopicBusinessUpdated, s.producer.PublishBusinessUpdated(ctx, business))

	s.logger.InfoContext(ctx, "business updated", slog.String("business_id", business.ID))
	return business, nil
}

func (s *BusinessService) Delete(ctx context.Context, id string) error {
	ok, err := s.businesses.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if !ok {
		return apperrors.NotFound("business", id)
	}

	publishErr(ctx, s.logger, event.TopicBusinessDeleted, s.producer.PublishBusinessDeleted(ctx, id))

	s.logger.InfoContext(ctx, "business deleted", slog.String("business_id", id))
	return nil
}
