package service

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/utafrali/LocalBizGo/internal/auth"
	"github.com/utafrali/LocalBizGo/internal/repository/jsonstore"
	"github.com/utafrali/LocalBizGo/internal/store"
	"github.com/utafrali/LocalBizGo/internal/store/memory"
)

// fixture wires every service over an in-memory store.
type fixture struct {
	categories *CategoryService
	businesses *BusinessService
	reviews    *ReviewService
	users      *UserService
	directory  *DirectoryService
	chat       *ChatService
	generator  *stubGenerator
	events     *recordingPublisher
	jwt        *auth.JWTManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.New("memory", memory.New(), nil)
	categoryRepo := jsonstore.NewCategoryRepository(s)
	businessRepo := jsonstore.NewBusinessRepository(s)
	reviewRepo := jsonstore.NewReviewRepository(s)
	userRepo := jsonstore.NewUserRepository(s)

	producer, events := newTestProducer()
	logger := newTestLogger()
	jwt := auth.NewJWTManager("fixture-secret", time.Hour)
	gen := &stubGenerator{answer: "Try Bean There."}

	users := NewUserService(userRepo, jwt, producer, logger)
	users.bcryptCost = bcrypt.MinCost

	return &fixture{
		categories: NewCategoryService(categoryRepo, producer, logger),
		businesses: NewBusinessService(businessRepo, categoryRepo, producer, logger),
		reviews:    NewReviewService(reviewRepo, businessRepo, userRepo, producer, logger),
		users:      users,
		directory:  NewDirectoryService(categoryRepo, businessRepo, reviewRepo, userRepo, logger),
		chat:       NewChatService(businessRepo, reviewRepo, gen, logger),
		generator:  gen,
		events:     events,
		jwt:        jwt,
	}
}
