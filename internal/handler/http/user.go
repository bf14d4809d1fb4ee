package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/service"
	"github.com/utafrali/LocalBizGo/pkg/httputil"
	"github.com/utafrali/LocalBizGo/pkg/validator"
)

// UserHandler handles account administration endpoints.
type UserHandler struct {
	service *service.UserService
	seed    AdminSeed
	logger  *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(svc *service.UserService, seed AdminSeed, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, seed: seed, logger: logger}
}

// SeedAdmin handles POST /api/v1/admin/seed. It answers 201 when the
// administrator account was created and 200 when it already existed.
func (h *UserHandler) SeedAdmin(w http.ResponseWriter, r *http.Request) {
	user, created, err := h.service.SeedAdmin(r.Context(), h.seed.Email, h.seed.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	status := http.StatusOK
	message := "admin account already exists"
	if created {
		status = http.StatusCreated
		message = "admin account created"
	}
	httputil.WriteData(w, status, map[string]any{
		"message": message,
		"user":    user,
	})
}

// ChangeRole handles PUT /api/v1/users/{id}/role
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangeRoleInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	user, err := h.service.ChangeRole(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, user)
}
