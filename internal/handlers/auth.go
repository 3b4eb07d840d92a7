package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AndreyZherdetskiy/balance-hub/internal/httputil"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			httputil.WriteError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}
