package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/LocalBizGo/internal/domain"
	pkgkafka "github.com/utafrali/LocalBizGo/pkg/kafka"
	"github.com/utafrali/LocalBizGo/pkg/logger"
)

// Kafka topic constants for directory events.
const (
	TopicCategoryCreated = "localbiz.category.created"
	TopicCategoryDeleted = "localbiz.category.deleted"
	TopicBusinessCreated = "localbiz.business.created"
	TopicBusinessUpdated = "localbiz.business.updated"
	TopicBusinessDeleted = "localbiz.business.deleted"
	TopicReviewCreated   = "localbiz.review.created"
	TopicReviewDeleted   = "localbiz.review.deleted"
	TopicUserRegistered  = "localbiz.user.registered"
	TopicUserRoleChanged = "localbiz.user.role_changed"
)

// Aggregate types.
const (
	AggregateCategory = "category"
	AggregateBusiness = "business"
	AggregateReview   = "review"
	AggregateUser     = "user"
)

// Source identifies events published by this service.
const Source = "localbiz-api"

// Publisher is satisfied by *pkgkafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

type discard struct{}

func (discard) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

// Discard drops every event. It is used when Kafka is disabled.
var Discard Publisher = discard{}

// CategoryData is the payload of category events.
type CategoryData struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// BusinessData is the payload of business events.
type BusinessData struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Location   string `json:"location,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// ReviewData is the payload of review events.
type ReviewData struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id,omitempty"`
	UserID     string `json:"user_id"`
	Rating     int    `json:"rating,omitempty"`
}

// UserData is the payload of user events.
type UserData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Producer publishes directory domain events.
type Producer struct {
	publisher Publisher
	log       *slog.Logger
}

// NewProducer creates a new event producer. A nil publisher discards events.
func NewProducer(publisher Publisher, log *slog.Logger) *Producer {
	if publisher == nil {
		publisher = Discard
	}
	return &Producer{publisher: publisher, log: log}
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	agg := pkgkafka.Aggregate{Kind: aggregateType, ID: aggregateID}
	evt, err := pkgkafka.NewEvent(topic, agg, Source, logger.CorrelationIDFromContext(ctx), data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.log.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

func (p *Producer) PublishCategoryCreated(ctx context.Context, c *domain.Category) error {
	return p.publish(ctx, TopicCategoryCreated, c.ID, AggregateCategory, CategoryData{ID: c.ID, Name: c.Name})
}

func (p *Producer) PublishCategoryDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicCategoryDeleted, id, AggregateCategory, CategoryData{ID: id})
}

func (p *Producer) PublishBusinessCreated(ctx context.Context, b *domain.Business) error {
	return p.publish(ctx, TopicBusinessCreated, b.ID, AggregateBusiness, businessData(b))
}

func (p *Producer) PublishBusinessUpdated(ctx context.Context, b *domain.Business) error {
	return p.publish(ctx, TopicBusinessUpdated, b.ID, AggregateBusiness, businessData(b))
}

func (p *Producer) PublishBusinessDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicBusinessDeleted, id, AggregateBusiness, BusinessData{ID: id})
}

func businessData(b *domain.Business) BusinessData {
	return BusinessData{ID: b.ID, Name: b.Name, Location: b.Location, CategoryID: b.CategoryID}
}

func (p *Producer) PublishReviewCreated(ctx context.Context, r *domain.Review) error {
	return p.publish(ctx, TopicReviewCreated, r.ID, AggregateReview, ReviewData{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		UserID:     r.UserID,
		Rating:     r.Rating,
	})
}

func (p *Producer) PublishReviewDeleted(ctx context.Context, id, userID string) error {
	return p.publish(ctx, TopicReviewDeleted, id, AggregateReview, ReviewData{ID: id, UserID: userID})
}

func (p *Producer) PublishUserRegistered(ctx context.Context, u *domain.User) error {
	return p.publish(ctx, TopicUserRegistered, u.ID, AggregateUser, UserData{ID: u.ID, Email: u.Email, Role: string(u.Role)})
}

func (p *Producer) PublishUserRoleChanged(ctx context.Context, u *domain.User) error {
	return p.publish(ctx, TopicUserRoleChanged, u.ID, AggregateUser, UserData{ID: u.ID, Email: u.Email, Role: string(u.Role)})
}
