package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/service"
	"github.com/utafrali/LocalBizGo/pkg/httputil"
	"github.com/utafrali/LocalBizGo/pkg/pagination"
	"github.com/utafrali/LocalBizGo/pkg/validator"
)

// BusinessHandler handles HTTP requests for business endpoints. Reads go
// through the directory service so every business carries its rating summary.
type BusinessHandler struct {
	service   *service.BusinessService
	directory *service.DirectoryService
	logger    *slog.Logger
}

// NewBusinessHandler creates a new business HTTP handler.
func NewBusinessHandler(svc *service.BusinessService, directory *service.DirectoryService, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{service: svc, directory: directory, logger: logger}
}

// List handles GET /api/v1/businesses?q=&location=&categoryId=&page=&per_page=
func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.BusinessFilter{
		Search:     q.Get("q"),
		Location:   q.Get("location"),
		CategoryID: q.Get("categoryId"),
	}

	result, err := h.directory.ListDirectory(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/businesses/{id}
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.directory.GetBusiness(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, detail)
}

// Create handles POST /api/v1/businesses
func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBusinessInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	business, err := h.service.Create(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, business)
}

// Update handles PUT /api/v1/businesses/{id}. Omitted fields are left as they are.
func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateBusinessInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	business, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, business)
}

// Delete handles DELETE /api/v1/businesses/{id}
func (h *BusinessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
