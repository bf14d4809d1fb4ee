package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/internal/service"
	"github.com/utafrali/LocalBizGo/pkg/httputil"
	"github.com/utafrali/LocalBizGo/pkg/validator"
)

// ChatHandler serves the assistant endpoint.
type ChatHandler struct {
	service *service.ChatService
	logger  *slog.Logger
}

func NewChatHandler(svc *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{service: svc, logger: logger}
}

// Ask handles POST /api/v1/chat
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	resp, err := h.service.Ask(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}
