package handlers

import (
	"net/http"

	"github.com/AndreyZherdetskiy/balance-hub/internal/httputil"
)

func (h *Handler) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HealthDBHandler pings the database; failure maps to 503.
func (h *Handler) HealthDBHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := h.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			httputil.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
