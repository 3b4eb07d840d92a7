package handlers

import (
	"net/http"

	"github.com/AndreyZherdetskiy/balance-hub/internal/httputil"
	"github.com/AndreyZherdetskiy/balance-hub/internal/middleware"
	"github.com/AndreyZherdetskiy/balance-hub/internal/models"
)

func (h *Handler) writePayments(w http.ResponseWriter, payments []models.Payment) {
	resp := make([]PaymentPublic, 0, len(payments))
	for i := range payments {
		resp = append(resp, toPaymentPublic(&payments[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// MyPaymentsHandler lists the caller's own payments in insertion order.
func (h *Handler) MyPaymentsHandler() http.HandlerFunc {
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
		payments, err := h.Payments.ListForUser(r.Context(), identity.UserID, limit, offset)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		h.writePayments(w, payments)
	}
}

// AdminUserPaymentsHandler lists any user's payments.
func (h *Handler) AdminUserPaymentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
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
		payments, err := h.Payments.ListForUser(r.Context(), userID, limit, offset)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		h.writePayments(w, payments)
	}
}
