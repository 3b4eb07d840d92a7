package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AndreyZherdetskiy/balance-hub/internal/httputil"
	"github.com/AndreyZherdetskiy/balance-hub/internal/middleware"
	"github.com/AndreyZherdetskiy/balance-hub/internal/service"
)

type CreateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
}

func (h *Handler) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.FromContext(r.Context())
		if !ok {
			httputil.WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		user, err := h.Users.GetByID(r.Context(), identity.UserID)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toUserPublic(user))
	}
}

func (h *Handler) AdminCreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		user, err := h.Users.Create(r.Context(), service.CreateUserInput{
			Email:    req.Email,
			FullName: req.FullName,
			Password: req.Password,
			IsAdmin:  req.IsAdmin,
		})
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, toUserPublic(user))
	}
}

func (h *Handler) AdminListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := httputil.Pagination(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		users, err := h.Users.List(r.Context(), limit, offset)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		resp := make([]UserPublic, 0, len(users))
		for i := range users {
			resp = append(resp, toUserPublic(&users[i]))
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) AdminGetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		user, err := h.Users.GetByID(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toUserPublic(user))
	}
}

func (h *Handler) AdminUpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		user, err := h.Users.Update(r.Context(), id, service.UpdateUserInput{
			Email:    req.Email,
			FullName: req.FullName,
			Password: req.Password,
			IsAdmin:  req.IsAdmin,
		})
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, toUserPublic(user))
	}
}

func (h *Handler) AdminDeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.Users.Delete(r.Context(), id); err != nil {
			h.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
