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

func strPtr(s string) *string { return &s }

func TestBusinessCreate_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.categories.Create(ctx, "Cafes")
	require.NoError(t, err)

	b, err := f.businesses.Create(ctx, domain.CreateBusinessInput{Name: " Bean There ", Location: "Main St 1", CategoryID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, "Bean There", b.Name)
	assert.Equal(t, "Cafes", b.CategoryName)
	assert.Contains(t, f.events.topics, event.TopicBusinessCreated)
}

func TestBusinessCreate_Validation(t *testing.T) {
	businesses := new(mockBusinessRepository)
	categories := new(mockCategoryRepository)
	producer, _ := newTestProducer()
	svc := NewBusinessService(businesses, categories, producer, newTestLogger())
	ctx := context.Background()

	tests := []struct {
		name  string
		input domain.CreateBusinessInput
	}{
		{"missing name", domain.CreateBusinessInput{Location: "x", CategoryID: "c1"}},
		{"blank location", domain.CreateBusinessInput{Name: "x", Location: "  ", CategoryID: "c1"}},
		{"missing category", domain.CreateBusinessInput{Name: "x", Location: "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
	businesses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBusinessCreate_UnknownCategory(t *testing.T) {
	f := newFixture(t)
	_, err := f.businesses.Create(context.Background(), domain.CreateBusinessInput{Name: "x", Location: "y", CategoryID: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := f.businesses.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBusinessUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cafes, err := f.categories.Create(ctx, "Cafes")
	require.NoError(t, err)
	b, err := f.businesses.Create(ctx, domain.CreateBusinessInput{Name: "Bean There", Location: "Main St", CategoryID: cafes.ID})
	require.NoError(t, err)

	updated, err := f.businesses.Update(ctx, b.ID, domain.UpdateBusinessInput{Name: strPtr(" Beans ")})
	require.NoError(t, err)
	assert.Equal(t, "Beans", updated.Name)
	assert.Equal(t, "Main St", updated.Location)

	_, err = f.businesses.Update(ctx, b.ID, domain.UpdateBusinessInput{CategoryID: strPtr("missing")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.businesses.Update(ctx, b.ID, domain.UpdateBusinessInput{Location: strPtr(" ")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.businesses.Update(ctx, b.ID, domain.UpdateBusinessInput{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = f.businesses.Update(ctx, "missing", domain.UpdateBusinessInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBusinessDelete(t *testing.T) {
	businesses := new(mockBusinessRepository)
	producer, events := newTestProducer()
	svc := NewBusinessService(businesses, new(mockCategoryRepository), producer, newTestLogger())
	ctx := context.Background()

	businesses.On("Delete", ctx, "b1").Return(true, nil)
	businesses.On("Delete", ctx, "b2").Return(false, nil)

	require.NoError(t, svc.Delete(ctx, "b1"))
	assert.ErrorIs(t, svc.Delete(ctx, "b2"), apperrors.ErrNotFound)
	assert.Equal(t, []string{event.TopicBusinessDeleted}, events.topics)
}
