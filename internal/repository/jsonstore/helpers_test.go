package jsonstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/utafrali/LocalBizGo/internal/store"
	"github.com/utafrali/LocalBizGo/internal/store/file"
	"github.com/utafrali/LocalBizGo/internal/store/memory"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newMemoryStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New("memory", memory.New(), nil)
}

// openFileStore opens a store on dir, simulating a fresh process each call.
func openFileStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	b, err := file.New(dir)
	require.NoError(t, err)
	return store.New("file", b, nil)
}

type repos struct {
	categories *CategoryRepository
	businesses *BusinessRepository
	reviews    *ReviewRepository
	users      *UserRepository
}

func newRepos(s *store.Store) repos {
	r := repos{
		categories: NewCategoryRepository(s),
		businesses: NewBusinessRepository(s),
		reviews:    NewReviewRepository(s),
		users:      NewUserRepository(s),
	}
	r.categories.now = fixedClock
	r.businesses.now = fixedClock
	r.reviews.now = fixedClock
	r.users.now = fixedClock
	return r
}
