package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AndreyZherdetskiy/balance-hub/internal/httputil"
	"github.com/AndreyZherdetskiy/balance-hub/internal/service"
	"github.com/shopspring/decimal"
)

// WebhookPaymentRequest is the trusted sender's top-up notification. Amount
// may arrive as a JSON number or string; decimal handles both.
type WebhookPaymentRequest struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     uint64          `json:"account_id"`
	UserID        uint64          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Signature     string          `json:"signature"`
}

// WebhookPaymentHandler validates the payload and signature, then hands off
// to the orchestrator. Nothing is persisted before the signature check.
func (h *Handler) WebhookPaymentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WebhookPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		in := service.TopupInput{
			TransactionID: req.TransactionID,
			AccountID:     req.AccountID,
			UserID:        req.UserID,
			Amount:        req.Amount,
		}
		if err := in.Validate(); err != nil {
			h.writeServiceError(w, err)
			return
		}

		secret := h.Cfg.WebhookSecret()
		if !service.VerifySignature(req.AccountID, req.Amount, req.TransactionID, req.UserID, secret, req.Signature) {
			h.writeServiceError(w, service.ErrInvalidSignature)
			return
		}

		payment, err := h.Webhook.ProcessTopup(r.Context(), in)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, toPaymentPublic(payment))
	}
}
