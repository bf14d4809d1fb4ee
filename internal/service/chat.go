package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/utafrali/LocalBizGo/internal/assistant"
	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/repository"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

// ChatService answers questions about the directory with a language model.
type ChatService struct {
	businesses repository.BusinessRepository
	reviews    repository.ReviewRepository
	generator  assistant.Generator
	logger     *slog.Logger
}

// NewChatService creates a new chat service.
func NewChatService(
	businesses repository.BusinessRepository,
	reviews repository.ReviewRepository,
	generator assistant.Generator,
	logger *slog.Logger,
) *ChatService {
	return &ChatService{
		businesses: businesses,
		reviews:    reviews,
		generator:  generator,
		logger:     logger,
	}
}

// BuildContext collects every business with its category name, formatted
// average rating and reviews. When businessID names an existing business the
// context is narrowed to that business alone.
func (s *ChatService) BuildContext(ctx context.Context, businessID string) ([]domain.ChatContextBusiness, error) {
	businesses, err := s.businesses.List(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, err
	}
	byBusiness := groupByBusiness(reviews)

	out := make([]domain.ChatContextBusiness, 0, len(businesses))
	for _, b := range businesses {
		rs := byBusiness[b.ID]
		summary := domain.Summarize(rs)
		entry := domain.ChatContextBusiness{
			ID:            b.ID,
			Name:          b.Name,
			Location:      b.Location,
			CategoryID:    b.CategoryID,
			CategoryName:  b.CategoryName,
			AverageRating: strconv.FormatFloat(summary.AverageRating, 'f', 1, 64),
			ReviewCount:   summary.ReviewCount,
			Reviews:       make([]domain.ChatContextReview, 0, len(rs)),
		}
		for _, r := range rs {
			entry.Reviews = append(entry.Reviews, domain.ChatContextReview{Rating: r.Rating, Comment: r.Comment})
		}
		if businessID != "" && b.ID == businessID {
			return []domain.ChatContextBusiness{entry}, nil
		}
		out = append(out, entry)
	}
	return out, nil
}

// Ask answers req.Message. Generator failures surface as ServiceUnavailable.
func (s *ChatService) Ask(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.InvalidInput("message is required")
	}

	chatContext, err := s.BuildContext(ctx, strings.TrimSpace(req.BusinessID))
	if err != nil {
		return nil, fmt.Errorf("build chat context: %w", err)
	}

	prompt, err := assistant.BuildPrompt(chatContext, message)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "assistant failed",
			slog.Int("context_businesses", len(chatContext)),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.ServiceUnavailable("the assistant is currently unavailable", err)
	}

	return &domain.ChatResponse{
		Response: answer,
		Segments: assistant.ParseAnswer(answer),
	}, nil
}
