package jsonstore

import (
	"context"
	"fmt"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/repository"
	"github.com/utafrali/LocalBizGo/internal/store"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository stores accounts in the "users" collection.
type UserRepository struct {
	col *store.Collection[domain.User]
	now Clock
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{
		col: store.Open[domain.User](s, store.Users),
		now: utcNow,
	}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	items, err := r.col.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

func (r *UserRepository) find(ctx context.Context, match func(domain.User) bool) (*domain.User, bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range items {
		if match(items[i]) {
			return &items[i], true, nil
		}
	}
	return nil, false, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok, err := r.find(ctx, func(u domain.User) bool { return u.ID == id })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok, err := r.find(ctx, func(u domain.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFoundBy("user", "email", email)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	return r.create(ctx, in, false)
}

func (r *UserRepository) CreateUnique(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	return r.create(ctx, in, true)
}

func (r *UserRepository) create(ctx context.Context, in domain.NewUser, unique bool) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	now := r.now()
	user := domain.User{
		ID:           newID(),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.col.Mutate(ctx, func(items []domain.User) ([]domain.User, error) {
		if unique {
			for _, u := range items {
				if u.Email == in.Email {
					return nil, apperrors.AlreadyExists("user", "email", in.Email)
				}
			}
		}
		return append(items, user), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.User, error) {
	var updated domain.User
	err := r.col.Mutate(ctx, func(items []domain.User) ([]domain.User, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if in.Email != nil {
				items[i].Email = *in.Email
			}
			if in.PasswordHash != nil {
				items[i].PasswordHash = *in.PasswordHash
			}
			if in.Role != nil {
				items[i].Role = *in.Role
			}
			items[i].UpdatedAt = r.now()
			updated = items[i]
			return items, nil
		}
		return nil, apperrors.NotFound("user", id)
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.col.Mutate(ctx, func(items []domain.User) ([]domain.User, error) {
		var ok bool
		items, ok = removeFirst(items, func(u domain.User) bool { return u.ID == id })
		if !ok {
			return nil, store.ErrSkipWrite
		}
		removed = true
		return items, nil
	})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return removed, nil
}
