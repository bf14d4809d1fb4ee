package repository

import (
	"context"

	"github.com/utafrali/LocalBizGo/internal/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	// List returns every category in insertion order.
	List(ctx context.Context) ([]domain.Category, error)

	// GetByID retrieves a category by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Category, error)

	// GetByName retrieves a category by name, ignoring case.
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// Create appends a category with a fresh id.
	Create(ctx context.Context, name string) (*domain.Category, error)

	// CreateUnique is Create that fails with ErrAlreadyExists when a category
	// with the same name (ignoring case) is already stored. The check and the
	// insert happen under one collection lock.
	CreateUnique(ctx context.Context, name string) (*domain.Category, error)

	// Delete removes a category and reports whether it existed. Businesses in
	// the category are left untouched.
	Delete(ctx context.Context, id string) (bool, error)
}

// BusinessRepository defines persistence operations for businesses. Every
// business returned carries the current name of its category.
type BusinessRepository interface {
	List(ctx context.Context) ([]domain.Business, error)
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Business, error)

	// Create stores a business. The category id is not checked.
	Create(ctx context.Context, input domain.CreateBusinessInput) (*domain.Business, error)

	// Update merges the non-nil fields of input into the stored business and
	// bumps UpdatedAt.
	Update(ctx context.Context, id string, input domain.UpdateBusinessInput) (*domain.Business, error)

	Delete(ctx context.Context, id string) (bool, error)
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	List(ctx context.Context) ([]domain.Review, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Review, error)

	// Create stores a review as given. Rating bounds are checked by callers.
	Create(ctx context.Context, review domain.NewReview) (*domain.Review, error)

	// Delete removes the review only when requesterID is its author.
	// Unlike the other repositories, a missing id is not (false, nil): both
	// failures return false with a non-nil error, ErrNotFound for a missing
	// review and ErrForbidden for someone else's, so callers can tell them
	// apart while reporting the same outcome.
	Delete(ctx context.Context, id, requesterID string) (bool, error)

	// AverageRating is the unrounded mean rating of a business, 0 with no reviews.
	AverageRating(ctx context.Context, businessID string) (float64, error)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail matches the stored address exactly.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create stores a user without checking for duplicates. Role defaults to USER.
	Create(ctx context.Context, user domain.NewUser) (*domain.User, error)

	// CreateUnique is Create that fails with ErrAlreadyExists when the e-mail
	// is taken, checking under the collection lock.
	CreateUnique(ctx context.Context, user domain.NewUser) (*domain.User, error)

	Update(ctx context.Context, id string, input domain.UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}
