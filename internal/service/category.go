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

// CategoryService implements the business logic for category operations.
type CategoryService struct {
	repo     repository.CategoryRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, producer *event.Producer, logger *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, producer: producer, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a category. Names are trimmed and must be unique ignoring case.
func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.InvalidInput("category name is required")
	}

	category, err := s.repo.CreateUnique(ctx, name)
	if err != nil {
		return nil, err
	}

	publishErr(ctx, s.logger, event.TopicCategoryCreated, s.producer.PublishCategoryCreated(ctx, category))

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name),
	)
	return category, nil
}

// Delete removes a category. Businesses that reference it are kept and
// report the category as "Unknown" afterwards.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !ok {
		return apperrors.NotFound("category", id)
	}

	publishErr(ctx, s.logger, event.TopicCategoryDeleted, s.producer.PublishCategoryDeleted(ctx, id))

	s.logger.InfoContext(ctx, "category deleted", slog.String("category_id", id))
	return nil
}
