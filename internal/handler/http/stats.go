package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/LocalBizGo/internal/service"
	"github.com/utafrali/LocalBizGo/pkg/httputil"
)

type StatsHandler struct {
	directory *service.DirectoryService
	logger    *slog.Logger
}

func NewStatsHandler(directory *service.DirectoryService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{directory: directory, logger: logger}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.directory.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, stats)
}
