package jsonstore

import (
	"context"
	"fmt"
	"time"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/repository"
	"github.com/utafrali/LocalBizGo/internal/store"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

var _ repository.BusinessRepository = (*BusinessRepository)(nil)

// businessRecord is the persisted shape of a business. It has no category
// name; that is joined in on every read.
type businessRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (b businessRecord) withCategoryName(name string) domain.Business {
	return domain.Business{
		ID:           b.ID,
		Name:         b.Name,
		Location:     b.Location,
		CategoryID:   b.CategoryID,
		CategoryName: name,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// BusinessRepository stores businesses in the "businesses" collection and
// resolves category names from the "categories" collection.
type BusinessRepository struct {
	col        *store.Collection[businessRecord]
	categories *store.Collection[domain.Category]
	now        Clock
}

func NewBusinessRepository(s *store.Store) *BusinessRepository {
	return &BusinessRepository{
		col:        store.Open[businessRecord](s, store.Businesses),
		categories: store.Open[domain.Category](s, store.Categories),
		now:        utcNow,
	}
}

func (r *BusinessRepository) categoryNames(ctx context.Context) (map[string]string, error) {
	categories, err := r.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (r *BusinessRepository) enrich(ctx context.Context, records []businessRecord) ([]domain.Business, error) {
	names, err := r.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Business, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.withCategoryName(categoryName(names, rec.CategoryID)))
	}
	return out, nil
}

func categoryName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return domain.UnknownCategory
}

func (r *BusinessRepository) List(ctx context.Context) ([]domain.Business, error) {
	records, err := r.col.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	businesses, err := r.enrich(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return businesses, nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	businesses, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range businesses {
		if businesses[i].ID == id {
			return &businesses[i], nil
		}
	}
	return nil, apperrors.NotFound("business", id)
}

func (r *BusinessRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Business, error) {
	businesses, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Business, 0)
	for _, b := range businesses {
		if b.CategoryID == categoryID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BusinessRepository) Create(ctx context.Context, input domain.CreateBusinessInput) (*domain.Business, error) {
	now := r.now()
	rec := businessRecord{
		ID:         newID(),
		Name:       input.Name,
		Location:   input.Location,
		CategoryID: input.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.col.Mutate(ctx, func(items []businessRecord) ([]businessRecord, error) {
		return append(items, rec), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	return r.resolve(ctx, rec)
}

func (r *BusinessRepository) Update(ctx context.Context, id string, input domain.UpdateBusinessInput) (*domain.Business, error) {
	var updated businessRecord
	err := r.col.Mutate(ctx, func(items []businessRecord) ([]businessRecord, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if input.Name != nil {
				items[i].Name = *input.Name
			}
			if input.Location != nil {
				items[i].Location = *input.Location
			}
			if input.CategoryID != nil {
				items[i].CategoryID = *input.CategoryID
			}
			items[i].UpdatedAt = r.now()
			updated = items[i]
			return items, nil
		}
		return nil, apperrors.NotFound("business", id)
	})
	if err != nil {
		return nil, fmt.Errorf("update business: %w", err)
	}
	return r.resolve(ctx, updated)
}

func (r *BusinessRepository) resolve(ctx context.Context, rec businessRecord) (*domain.Business, error) {
	names, err := r.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	b := rec.withCategoryName(categoryName(names, rec.CategoryID))
	return &b, nil
}

func (r *BusinessRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.col.Mutate(ctx, func(items []businessRecord) ([]businessRecord, error) {
		var ok bool
		items, ok = removeFirst(items, func(b businessRecord) bool { return b.ID == id })
		if !ok {
			return nil, store.ErrSkipWrite
		}
		removed = true
		return items, nil
	})
	if err != nil {
		return false, fmt.Errorf("delete business: %w", err)
	}
	return removed, nil
}
