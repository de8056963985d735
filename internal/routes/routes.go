package routes

import (
	"net/http"
	"time"

	"github.com/dealmarket/bff/internal/app"
	"github.com/dealmarket/bff/internal/handler"
	"github.com/dealmarket/bff/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	deals := handler.NewDealHandler(app.DealService)
	categories := handler.NewCategoryHandler(app.CategoryService)
	ads := handler.NewAdvertisementHandler(app.AdvertisementService)
	users := handler.NewUserHandler(app.UserService)
	addresses := handler.NewAddressHandler(app.AddressService)
	comments := handler.NewCommentHandler(app.CommentService)
	orders := handler.NewOrderHandler(app.OrderService)
	payments := handler.NewPaymentHandler(app.PaymentService)
	webhooks := handler.NewWebhookHandler(app.ImageReconciler, app.Cfg.StorageWebhookToken)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	if app.Cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Auth - token flows. Each endpoint has its own budget; refreshes run
	// every few minutes and must not exhaust the login budget.
	loginLimiter := middleware.RateLimitAuth(5, 15*time.Minute)
	refreshLimiter := middleware.RateLimitAuth(60, 15*time.Minute)

	mux.HandleFunc("POST /auth/login", loginLimiter(auth.Login))
	mux.HandleFunc("POST /auth/refresh", refreshLimiter(auth.Refresh))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	requireAuth := middleware.RequireBearer(app.TokenVerifier)

	mux.HandleFunc("GET /api/me", requireAuth(users.Me))
	mux.HandleFunc("GET /api/me/compte", requireAuth(auth.Account))

	// Deals
	mux.HandleFunc("GET /api/deals", requireAuth(deals.List))
	mux.HandleFunc("POST /api/deals", requireAuth(deals.Create))
	mux.HandleFunc("GET /api/deals/{id}", requireAuth(deals.Get))
	mux.HandleFunc("PUT /api/deals/{id}", requireAuth(deals.Update))
	mux.HandleFunc("DELETE /api/deals/{id}", requireAuth(deals.Delete))
	mux.HandleFunc("GET /api/deals/{id}/commentaires", requireAuth(comments.ByDeal))
	mux.HandleFunc("GET /api/deals/{id}/commandes", requireAuth(orders.ByDeal))

	// Categories
	mux.HandleFunc("GET /api/categories", requireAuth(categories.List))
	mux.HandleFunc("POST /api/categories", requireAuth(categories.Create))
	mux.HandleFunc("GET /api/categories/{id}", requireAuth(categories.Get))
	mux.HandleFunc("PUT /api/categories/{id}", requireAuth(categories.Update))
	mux.HandleFunc("DELETE /api/categories/{id}", requireAuth(categories.Delete))

	// Advertisements
	mux.HandleFunc("GET /api/publicites", requireAuth(ads.List))
	mux.HandleFunc("GET /api/publicites/actives", requireAuth(ads.Active))
	mux.HandleFunc("POST /api/publicites", requireAuth(ads.Create))
	mux.HandleFunc("GET /api/publicites/{id}", requireAuth(ads.Get))
	mux.HandleFunc("PUT /api/publicites/{id}", requireAuth(ads.Update))
	mux.HandleFunc("DELETE /api/publicites/{id}", requireAuth(ads.Delete))

	// Users
	mux.HandleFunc("GET /api/utilisateurs", requireAuth(users.List))
	mux.HandleFunc("POST /api/utilisateurs", requireAuth(users.Create))
	mux.HandleFunc("GET /api/utilisateurs/{id}", requireAuth(users.Get))
	mux.HandleFunc("PUT /api/utilisateurs/{id}", requireAuth(users.Update))
	mux.HandleFunc("PATCH /api/utilisateurs/{id}", requireAuth(users.Update))
	mux.HandleFunc("DELETE /api/utilisateurs/{id}", requireAuth(users.Delete))
	mux.HandleFunc("GET /api/utilisateurs/{id}/photo", requireAuth(users.AvatarURL))
	mux.HandleFunc("PUT /api/utilisateurs/{id}/photo", requireAuth(users.SetAvatar))
	mux.HandleFunc("PUT /api/utilisateurs/{id}/activation", requireAuth(users.SetEnabled))
	mux.HandleFunc("PUT /api/utilisateurs/{id}/role", requireAuth(users.AssignRole))
	mux.HandleFunc("PUT /api/utilisateurs/{id}/mot-de-passe", requireAuth(users.ResetPassword))
	mux.HandleFunc("GET /api/utilisateurs/{id}/adresses", requireAuth(addresses.ByUser))
	mux.HandleFunc("GET /api/utilisateurs/{id}/commandes", requireAuth(orders.ByUser))

	// Addresses
	mux.HandleFunc("POST /api/adresses", requireAuth(addresses.Create))
	mux.HandleFunc("GET /api/adresses/{id}", requireAuth(addresses.Get))
	mux.HandleFunc("PUT /api/adresses/{id}", requireAuth(addresses.Update))
	mux.HandleFunc("DELETE /api/adresses/{id}", requireAuth(addresses.Delete))

	// Comments
	mux.HandleFunc("POST /api/commentaires", requireAuth(comments.Create))
	mux.HandleFunc("GET /api/commentaires/{id}", requireAuth(comments.Get))
	mux.HandleFunc("PUT /api/commentaires/{id}", requireAuth(comments.Update))
	mux.HandleFunc("DELETE /api/commentaires/{id}", requireAuth(comments.Delete))

	// Orders
	mux.HandleFunc("POST /api/commandes", requireAuth(orders.Create))
	mux.HandleFunc("GET /api/commandes/{id}", requireAuth(orders.Get))
	mux.HandleFunc("PUT /api/commandes/{id}", requireAuth(orders.Update))
	mux.HandleFunc("DELETE /api/commandes/{id}", requireAuth(orders.Delete))
	mux.HandleFunc("GET /api/commandes/{id}/paiements", requireAuth(payments.ByOrder))

	// Payments
	mux.HandleFunc("POST /api/paiements", requireAuth(payments.Create))
	mux.HandleFunc("GET /api/paiements/{id}", requireAuth(payments.Get))
	mux.HandleFunc("PUT /api/paiements/{id}", requireAuth(payments.Update))
	mux.HandleFunc("DELETE /api/paiements/{id}", requireAuth(payments.Delete))

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	// Object storage upload notifications (MinIO / S3 event format)
	mux.HandleFunc("POST /webhooks/storage", webhooks.Storage)

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.Metrics, // Innermost so r.Pattern is set by the mux when it reads it
	)

	return handler
}
