package routes

import (
	"github.com/AndreyZherdetskiy/balance-hub/internal/handlers"
	appmw "github.com/AndreyZherdetskiy/balance-hub/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

func New(h *handlers.Handler, jwtSecret string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	authed := appmw.Authenticated(jwtSecret)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler())
		r.Get("/health/db", h.HealthDBHandler())

		r.Post("/auth/login", h.LoginHandler())

		r.Post("/webhook/payment", h.WebhookPaymentHandler())

		r.Group(func(r chi.Router) {
			r.Use(authed)

			r.Get("/users/me", h.MeHandler())
			r.Get("/users/{userID}/accounts", h.UserAccountsHandler())
			r.Get("/accounts", h.MyAccountsHandler())
			r.Get("/payments", h.MyPaymentsHandler())

			r.Group(func(r chi.Router) {
				r.Use(appmw.RequireAdmin)

				r.Post("/admin/users", h.AdminCreateUserHandler())
				r.Get("/admin/users", h.AdminListUsersHandler())
				r.Get("/admin/users/{userID}", h.AdminGetUserHandler())
				r.Patch("/admin/users/{userID}", h.AdminUpdateUserHandler())
				r.Delete("/admin/users/{userID}", h.AdminDeleteUserHandler())
				r.Post("/admin/users/{userID}/accounts", h.AdminCreateAccountHandler())
				r.Get("/admin/users/{userID}/payments", h.AdminUserPaymentsHandler())
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
