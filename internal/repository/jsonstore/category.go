package jsonstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/repository"
	"github.com/utafrali/LocalBizGo/internal/store"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository stores categories in the "categories" collection.
type CategoryRepository struct {
	col *store.Collection[domain.Category]
	now Clock
}

func NewCategoryRepository(s *store.Store) *CategoryRepository {
	return &CategoryRepository{
		col: store.Open[domain.Category](s, store.Categories),
		now: utcNow,
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	items, err := r.col.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperrors.NotFound("category", id)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if c := findByName(items, name); c != nil {
		return c, nil
	}
	return nil, apperrors.NotFoundBy("category", "name", name)
}

func findByName(items []domain.Category, name string) *domain.Category {
	for i := range items {
		if strings.EqualFold(items[i].Name, name) {
			return &items[i]
		}
	}
	return nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*domain.Category, error) {
	return r.create(ctx, name, false)
}

func (r *CategoryRepository) CreateUnique(ctx context.Context, name string) (*domain.Category, error) {
	return r.create(ctx, name, true)
}

func (r *CategoryRepository) create(ctx context.Context, name string, unique bool) (*domain.Category, error) {
	category := domain.Category{
		ID:        newID(),
		Name:      name,
		CreatedAt: r.now(),
	}

	err := r.col.Mutate(ctx, func(items []domain.Category) ([]domain.Category, error) {
		if unique && findByName(items, name) != nil {
			return nil, apperrors.AlreadyExists("category", "name", name)
		}
		return append(items, category), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.col.Mutate(ctx, func(items []domain.Category) ([]domain.Category, error) {
		var ok bool
		items, ok = removeFirst(items, func(c domain.Category) bool { return c.ID == id })
		if !ok {
			return nil, store.ErrSkipWrite
		}
		removed = true
		return items, nil
	})
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return removed, nil
}
