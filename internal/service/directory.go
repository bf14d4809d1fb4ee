package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/repository"
	"github.com/utafrali/LocalBizGo/pkg/pagination"
)

// DirectoryService builds the read-side views: listings with rating
// summaries, business detail pages and dashboard totals.
type DirectoryService struct {
	categories repository.CategoryRepository
	businesses repository.BusinessRepository
	reviews    repository.ReviewRepository
	users      repository.UserRepository
	logger     *slog.Logger
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(
	categories repository.CategoryRepository,
	businesses repository.BusinessRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *DirectoryService {
	return &DirectoryService{
		categories: categories,
		businesses: businesses,
		reviews:    reviews,
		users:      users,
		logger:     logger,
	}
}

// Summarize returns the rating summary of one business.
func (s *DirectoryService) Summarize(ctx context.Context, businessID string) (domain.RatingSummary, error) {
	reviews, err := s.reviews.ListByBusiness(ctx, businessID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return domain.Summarize(reviews), nil
}

func groupByBusiness(reviews []domain.Review) map[string][]domain.Review {
	out := make(map[string][]domain.Review)
	for _, r := range reviews {
		out[r.BusinessID] = append(out[r.BusinessID], r)
	}
	return out
}

func matches(b domain.Business, f domain.BusinessFilter) bool {
	if f.CategoryID != "" && b.CategoryID != f.CategoryID {
		return false
	}
	if f.Location != "" && !containsFold(b.Location, f.Location) {
		return false
	}
	if f.Search != "" && !containsFold(b.Name, f.Search) && !containsFold(b.Location, f.Search) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

// ListDirectory returns one page of businesses matching filter, each with its
// rating summary, in stored order.
func (s *DirectoryService) ListDirectory(ctx context.Context, filter domain.BusinessFilter, params pagination.Params) (pagination.Result[domain.BusinessListing], error) {
	businesses, err := s.businesses.List(ctx)
	if err != nil {
		return pagination.Result[domain.BusinessListing]{}, fmt.Errorf("list directory: %w", err)
	}
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return pagination.Result[domain.BusinessListing]{}, fmt.Errorf("list directory: %w", err)
	}
	byBusiness := groupByBusiness(reviews)

	listings := make([]domain.BusinessListing, 0, len(businesses))
	for _, b := range businesses {
		if !matches(b, filter) {
			continue
		}
		listings = append(listings, domain.BusinessListing{
			Business:      b,
			RatingSummary: domain.Summarize(byBusiness[b.ID]),
		})
	}
	return pagination.Paginate(listings, params), nil
}

// GetBusiness returns a business with its summary and reviews, newest first.
func (s *DirectoryService) GetBusiness(ctx context.Context, id string) (*domain.BusinessDetail, error) {
	business, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByBusiness(ctx, id)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})

	return &domain.BusinessDetail{
		BusinessListing: domain.BusinessListing{
			Business:      *business,
			RatingSummary: domain.Summarize(reviews),
		},
		Reviews: reviews,
	}, nil
}

// Stats returns the dashboard totals.
func (s *DirectoryService) Stats(ctx context.Context) (*domain.DirectoryStats, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	businesses, err := s.businesses.List(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(categories))
	for _, b := range businesses {
		counts[b.CategoryID]++
	}
	byCategory := make([]domain.CategoryCount, 0, len(categories))
	for _, c := range categories {
		byCategory = append(byCategory, domain.CategoryCount{
			CategoryID:    c.ID,
			CategoryName:  c.Name,
			BusinessCount: counts[c.ID],
		})
	}

	stats := &domain.DirectoryStats{
		Categories:           len(categories),
		Businesses:           len(businesses),
		Reviews:              len(reviews),
		Users:                len(users),
		AverageRating:        domain.RoundRating(domain.Summarize(reviews).AverageRating),
		BusinessesByCategory: byCategory,
	}
	if len(categories) > 0 {
		stats.BusinessesPerCategory = domain.RoundRating(float64(len(businesses)) / float64(len(categories)))
	}
	return stats, nil
}
