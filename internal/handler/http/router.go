package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/LocalBizGo/internal/auth"
	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/service"
	"github.com/utafrali/LocalBizGo/pkg/health"
	"github.com/utafrali/LocalBizGo/pkg/middleware"
)

const serviceName = "localbiz"

// Services groups the application services the router dispatches to.
type Services struct {
	Categories *service.CategoryService
	Businesses *service.BusinessService
	Reviews    *service.ReviewService
	Users      *service.UserService
	Directory  *service.DirectoryService
	Chat       *service.ChatService
}

// AdminSeed holds the credentials used by the one-time admin seeding endpoint.
type AdminSeed struct {
	Email    string
	Password string
}

// NewRouter creates a chi router with all directory routes registered.
func NewRouter(
	svc Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
	seed AdminSeed,
	limits middleware.RateLimitConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Token validator that bridges to our internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}
	requireAuth := middleware.Auth(tokenValidator)
	requireAdmin := middleware.RequireRole(string(domain.RoleAdmin))
	limited := middleware.RateLimit(limits, logger)

	authHandler := NewAuthHandler(svc.Users, logger)
	userHandler := NewUserHandler(svc.Users, seed, logger)
	categoryHandler := NewCategoryHandler(svc.Categories, logger)
	businessHandler := NewBusinessHandler(svc.Businesses, svc.Directory, logger)
	reviewHandler := NewReviewHandler(svc.Reviews, logger)
	chatHandler := NewChatHandler(svc.Chat, logger)
	statsHandler := NewStatsHandler(svc.Directory, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/auth", func(r chi.Router) {
			r.With(limited).Post("/signup", authHandler.Signup)
			r.With(limited).Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.Me)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		r.Post("/admin/seed", userHandler.SeedAdmin)

		r.With(requireAuth, requireAdmin).Put("/users/{id}/role", userHandler.ChangeRole)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Get("/{id}", categoryHandler.Get)
			r.With(requireAuth, requireAdmin).Post("/", categoryHandler.Create)
			r.With(requireAuth, requireAdmin).Delete("/{id}", categoryHandler.Delete)
		})

		r.Route("/businesses", func(r chi.Router) {
			r.Get("/", businessHandler.List)
			r.Get("/{id}", businessHandler.Get)
			r.With(requireAuth, requireAdmin).Post("/", businessHandler.Create)
			r.With(requireAuth, requireAdmin).Put("/{id}", businessHandler.Update)
			r.With(requireAuth, requireAdmin).Delete("/{id}", businessHandler.Delete)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.List)
			r.With(requireAuth).Post("/", reviewHandler.Create)
			r.With(requireAuth).Delete("/{id}", reviewHandler.Delete)
		})

		r.With(limited).Post("/chat", chatHandler.Ask)

		r.With(requireAuth, requireAdmin).Get("/stats", statsHandler.Get)
	})

	return r
}
