package handlers

import (
	"net/http"

	"github.com/AndreyZherdetskiy/balance-hub/internal/httputil"
	"github.com/AndreyZherdetskiy/balance-hub/internal/middleware"
	"github.com/AndreyZherdetskiy/balance-hub/internal/models"
)

func (h *Handler) writeAccounts(w http.ResponseWriter, accounts []models.Account) {
	resp := make([]AccountPublic, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, toAccountPublic(&accounts[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// MyAccountsHandler lists the caller's own accounts.
func (h *Handler) MyAccountsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.FromContext(r.Context())
		if !ok {
			httputil.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		limit, offset, err := httputil.Pagination(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		accounts, err := h.Accounts.ListOwned(r.Context(), identity.UserID, limit, offset)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		h.writeAccounts(w, accounts)
	}
}

// UserAccountsHandler lists a user's accounts for the owner or an admin.
func (h *Handler) UserAccountsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.FromContext(r.Context())
		if !ok {
			httputil.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		userID, err := userIDParam(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if identity.UserID != userID && !identity.IsAdmin {
			httputil.WriteError(w, http.StatusForbidden, "access denied")
			return
		}
		limit, offset, err := httputil.Pagination(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := h.Users.GetByID(r.Context(), userID); err != nil {
			h.writeServiceError(w, err)
			return
		}
		accounts, err := h.Accounts.ListOwned(r.Context(), userID, limit, offset)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		h.writeAccounts(w, accounts)
	}
}

// AdminCreateAccountHandler creates a fresh zero-balance account for a user.
func (h *Handler) AdminCreateAccountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := h.Users.GetByID(r.Context(), userID); err != nil {
			h.writeServiceError(w, err)
			return
		}
		account, err := h.Accounts.CreateForUser(r.Context(), userID)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, toAccountPublic(account))
	}
}
