package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AndreyZherdetskiy/balance-hub/configs"
	"github.com/AndreyZherdetskiy/balance-hub/internal/httputil"
	"github.com/AndreyZherdetskiy/balance-hub/internal/models"
	"github.com/AndreyZherdetskiy/balance-hub/internal/service"
	"github.com/AndreyZherdetskiy/balance-hub/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Webhook  *service.WebhookService
	Accounts *store.AccountStore
	Payments *store.PaymentStore
	Cfg      *configs.Config
	DB       *gorm.DB
	Logger   *zap.Logger
}

func New(auth *service.AuthService, users *service.UserService, webhook *service.WebhookService,
	accounts *store.AccountStore, payments *store.PaymentStore,
	cfg *configs.Config, db *gorm.DB, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:     auth,
		Users:    users,
		Webhook:  webhook,
		Accounts: accounts,
		Payments: payments,
		Cfg:      cfg,
		DB:       db,
		Logger:   logger,
	}
}

type UserPublic struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type AccountPublic struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentPublic struct {
	ID            uint64 `json:"id"`
	TransactionID string `json:"transaction_id"`
	UserID        uint64 `json:"user_id"`
	AccountID     uint64 `json:"account_id"`
	Amount        string `json:"amount"`
}

func toUserPublic(u *models.User) UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email, FullName: u.FullName, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt}
}

func toAccountPublic(a *models.Account) AccountPublic {
	return AccountPublic{ID: a.ID, UserID: a.UserID, Balance: a.Balance.StringFixed(2), CreatedAt: a.CreatedAt}
}

func toPaymentPublic(p *models.Payment) PaymentPublic {
	return PaymentPublic{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		UserID:        p.UserID,
		AccountID:     p.AccountID,
		Amount:        p.Amount.StringFixed(2),
	}
}

// writeServiceError translates a domain error to its HTTP status. This is the
// single place the error taxonomy meets the wire.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateTransaction),
		errors.Is(err, service.ErrEmailExists):
		httputil.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		httputil.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, service.ErrInvalidPaymentData),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidFullName),
		errors.Is(err, service.ErrWeakPassword):
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Error("internal error", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func userIDParam(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
