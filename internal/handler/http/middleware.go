package http

import (
	"net/http"
	"strings"

	"github.com/utafrali/LocalBizGo/internal/domain"
	"github.com/utafrali/LocalBizGo/pkg/httputil"
	"github.com/utafrali/LocalBizGo/pkg/middleware"
)

// ContentTypeJSON rejects POST and PUT bodies that are not application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasBody := r.ContentLength != 0 && (r.Method == http.MethodPost || r.Method == http.MethodPut)
		if hasBody && !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "UNSUPPORTED_MEDIA_TYPE",
					Message: "Content-Type must be application/json",
				},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// actorFrom returns the authenticated caller, or a zero Actor.
func actorFrom(r *http.Request) domain.Actor {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return domain.Actor{}
	}
	return domain.Actor{UserID: claims.UserID, Role: domain.Role(claims.Role)}
}
