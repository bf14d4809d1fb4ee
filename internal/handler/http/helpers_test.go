package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/utafrali/LocalBizGo/internal/auth"
	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/event"
	"github.com/utafrali/LocalBizGo/internal/repository/jsonstore"
	"github.com/utafrali/LocalBizGo/internal/service"
	"github.com/utafrali/LocalBizGo/internal/store"
	"github.com/utafrali/LocalBizGo/internal/store/memory"
	"github.com/utafrali/LocalBizGo/pkg/health"
	"github.com/utafrali/LocalBizGo/pkg/httputil"
	"github.com/utafrali/LocalBizGo/pkg/middleware"
)

type stubGenerator struct {
	answer string
	err    error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	return g.answer, g.err
}

type testServer struct {
	handler   http.Handler
	jwt       *auth.JWTManager
	services  Services
	generator *stubGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newLimitedTestServer(t, middleware.RateLimitConfig{})
}

func newLimitedTestServer(t *testing.T, limits middleware.RateLimitConfig) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := store.New("memory", memory.New(), logger)

	categories := jsonstore.NewCategoryRepository(s)
	businesses := jsonstore.NewBusinessRepository(s)
	reviews := jsonstore.NewReviewRepository(s)
	users := jsonstore.NewUserRepository(s)

	producer := event.NewProducer(nil, logger)
	jwtManager := auth.NewJWTManager("handler-test-secret", time.Hour)
	gen := &stubGenerator{answer: "Hello"}

	svc := Services{
		Categories: service.NewCategoryService(categories, producer, logger),
		Businesses: service.NewBusinessService(businesses, categories, producer, logger),
		Reviews:    service.NewReviewService(reviews, businesses, users, producer, logger),
		Users:      service.NewUserService(users, jwtManager, producer, logger),
		Directory:  service.NewDirectoryService(categories, businesses, reviews, users, logger),
		Chat:       service.NewChatService(businesses, reviews, gen, logger),
	}

	hh := health.NewHandler()
	hh.RegisterCritical("store", s.Ping)

	router := NewRouter(svc, jwtManager, hh, logger, middleware.DefaultCORSConfig(), AdminSeed{
		Email:    "admin@gmail.com",
		Password: "admin1234",
	}, limits)
	return &testServer{handler: router, jwt: jwtManager, services: svc, generator: gen}
}

// token mints a bearer token without going through signup.
func (ts *testServer) token(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(userID, userID+"@example.com", string(role))
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" member of the envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func (ts *testServer) seedCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := ts.services.Categories.Create(context.Background(), name)
	require.NoError(t, err)
	return c
}

func (ts *testServer) seedBusiness(t *testing.T, categoryID, name, location string) *domain.Business {
	t.Helper()
	b, err := ts.services.Businesses.Create(context.Background(), domain.CreateBusinessInput{
		Name:       name,
		Location:   location,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return b
}

func newRawRequest(method, path, contentType, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

func serve(ts *testServer, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}
