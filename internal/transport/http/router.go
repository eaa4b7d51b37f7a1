package http

import (
	"net/http"

	"github.com/caioolkk/semcensura-loja/internal/application/account"
	"github.com/caioolkk/semcensura-loja/internal/application/checkout"
	"github.com/caioolkk/semcensura-loja/internal/config"
	"github.com/caioolkk/semcensura-loja/internal/transport/http/handler"
	appmiddleware "github.com/caioolkk/semcensura-loja/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. Route paths match
// what the storefront frontend has always called.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	accountSvc := account.NewService(account.ServiceDeps{
		AccountRepo:     deps.AccountRepo,
		Mailer:          deps.Mailer,
		FrontendBaseURL: cfg.FrontendBaseURL,
	})
	checkoutSvc := checkout.NewService(checkout.ServiceDeps{
		OrderRepo: deps.OrderRepo,
		Payments:  deps.Payments,
		Currency:  cfg.Currency,
	})

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc, cfg.FrontendBaseURL)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)
	adminH := handler.NewAdminHandler(accountSvc, checkoutSvc)

	r.Get("/health-check/{action}", healthH.Ping)
	r.Post("/health-check/{action}", healthH.Ping)

	r.With(sensitiveRL.Limit).Post("/register", accountH.Register)
	r.Get("/confirmar", accountH.Confirm)
	r.With(sensitiveRL.Limit).Post("/login", accountH.Login)
	r.With(sensitiveRL.Limit).Post("/create_preference", checkoutH.CreatePreference)

	r.Get("/admin/usuarios", adminH.ListAccounts)
	r.Get("/admin/pedidos", adminH.ListOrders)

	return r
}
