package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/event"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

// seedReviewable creates a category, a business and a USER account.
func seedReviewable(t *testing.T, f *fixture) (*domain.Business, domain.Actor) {
	t.Helper()
	ctx := context.Background()

	c, err := f.categories.Create(ctx, "Cafes")
	require.NoError(t, err)
	b, err := f.businesses.Create(ctx, domain.CreateBusinessInput{Name: "Bean There", Location: "Main St", CategoryID: c.ID})
	require.NoError(t, err)
	res, err := f.users.Signup(ctx, domain.SignupInput{Email: "jane.doe@example.com", Password: "secret1"})
	require.NoError(t, err)

	return b, domain.Actor{UserID: res.User.ID, Role: domain.RoleUser}
}

func TestReviewCreate_SnapshotsNames(t *testing.T) {
	f := newFixture(t)
	b, actor := seedReviewable(t, f)
	ctx := context.Background()

	rv, err := f.reviews.Create(ctx, actor, domain.CreateReviewInput{Rating: 5, Comment: " Lovely ", BusinessID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", rv.UserName)
	assert.Equal(t, "jane.doe@example.com", rv.UserEmail)
	assert.Equal(t, "Bean There", rv.BusinessName)
	assert.Equal(t, "Lovely", rv.Comment)
	assert.Contains(t, f.events.topics, event.TopicReviewCreated)

	_, err = f.businesses.Update(ctx, b.ID, domain.UpdateBusinessInput{Name: strPtr("Renamed")})
	require.NoError(t, err)

	list, err := f.reviews.List(ctx, domain.ReviewFilter{BusinessID: b.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bean There", list[0].BusinessName)
}

func TestReviewCreate_RatingBounds(t *testing.T) {
	f := newFixture(t)
	b, actor := seedReviewable(t, f)
	ctx := context.Background()

	for _, rating := range []int{1, 5} {
		_, err := f.reviews.Create(ctx, actor, domain.CreateReviewInput{Rating: rating, BusinessID: b.ID})
		assert.NoError(t, err, "rating %d", rating)
	}
	for _, rating := range []int{0, 6, -1} {
		_, err := f.reviews.Create(ctx, actor, domain.CreateReviewInput{Rating: rating, BusinessID: b.ID})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "rating %d", rating)
	}
}

func TestReviewCreate_EmptyCommentAllowed(t *testing.T) {
	f := newFixture(t)
	b, actor := seedReviewable(t, f)

	rv, err := f.reviews.Create(context.Background(), actor, domain.CreateReviewInput{Rating: 3, BusinessID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, "", rv.Comment)
}

func TestReviewCreate_Rejections(t *testing.T) {
	reviews := new(mockReviewRepository)
	businesses := new(mockBusinessRepository)
	users := new(mockUserRepository)
	producer, _ := newTestProducer()
	svc := NewReviewService(reviews, businesses, users, producer, newTestLogger())
	ctx := context.Background()

	businesses.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("business", "missing"))

	tests := []struct {
		name  string
		actor domain.Actor
		input domain.CreateReviewInput
		want  error
	}{
		{"anonymous", domain.Actor{}, domain.CreateReviewInput{Rating: 4, BusinessID: "b1"}, apperrors.ErrUnauthorized},
		{"admin", domain.Actor{UserID: "a1", Role: domain.RoleAdmin}, domain.CreateReviewInput{Rating: 4, BusinessID: "b1"}, apperrors.ErrForbidden},
		{"no business", domain.Actor{UserID: "u1", Role: domain.RoleUser}, domain.CreateReviewInput{Rating: 4}, apperrors.ErrInvalidInput},
		{"unknown business", domain.Actor{UserID: "u1", Role: domain.RoleUser}, domain.CreateReviewInput{Rating: 4, BusinessID: "missing"}, apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.actor, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewDelete(t *testing.T) {
	f := newFixture(t)
	b, actor := seedReviewable(t, f)
	ctx := context.Background()

	rv, err := f.reviews.Create(ctx, actor, domain.CreateReviewInput{Rating: 4, BusinessID: b.ID})
	require.NoError(t, err)

	other := domain.Actor{UserID: "someone-else", Role: domain.RoleUser}
	err = f.reviews.Delete(ctx, other, rv.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = f.reviews.Delete(ctx, actor, "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.HTTPStatus(err))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, f.reviews.Delete(ctx, actor, rv.ID))
	assert.Contains(t, f.events.topics, event.TopicReviewDeleted)
}

func TestReviewList_BusinessFilterWins(t *testing.T) {
	reviews := new(mockReviewRepository)
	producer, _ := newTestProducer()
	svc := NewReviewService(reviews, new(mockBusinessRepository), new(mockUserRepository), producer, newTestLogger())
	ctx := context.Background()

	reviews.On("ListByBusiness", ctx, "b1").Return([]domain.Review{{ID: "r1"}}, nil)
	reviews.On("ListByUser", ctx, "u1").Return([]domain.Review{{ID: "r2"}}, nil)
	reviews.On("List", ctx).Return([]domain.Review{{ID: "r1"}, {ID: "r2"}}, nil)

	got, err := svc.List(ctx, domain.ReviewFilter{BusinessID: "b1", UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "r1", got[0].ID)

	got, err = svc.List(ctx, domain.ReviewFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "r2", got[0].ID)

	got, err = svc.List(ctx, domain.ReviewFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	reviews.AssertNumberOfCalls(t, "ListByUser", 1)
}
