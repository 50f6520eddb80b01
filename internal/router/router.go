package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hawkerhub/api/internal/config"
	"github.com/hawkerhub/api/internal/database"
	"github.com/hawkerhub/api/internal/enum"
	"github.com/hawkerhub/api/internal/handler"
	mw "github.com/hawkerhub/api/internal/middleware"
	"github.com/hawkerhub/api/internal/notify"
	"github.com/hawkerhub/api/internal/service"
	"github.com/hawkerhub/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Public ordering/tracking routes need no auth; kitchen and admin
// routes sit behind JWT + role middleware.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "https://*.hawkerhub.example"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket routes. The customer socket is open; the kitchen socket
	// authenticates via query param inside the handler because browsers
	// cannot set headers on WebSocket upgrades.
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})
	r.Get("/ws/kitchen", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeKitchenWS(hub, cfg.JWTSecret, w, r)
	})

	notifier := notify.New(hub)

	newOrderStore := func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}
	orderService := service.NewOrderService(pool, newOrderStore, notifier)
	statusService := service.NewStatusService(queries, notifier, nil)
	orderHandler := handler.NewOrderHandler(orderService, statusService, queries)

	stallHandler := handler.NewStallHandler(queries)
	menuHandler := handler.NewMenuHandler(queries)
	modifierHandler := handler.NewModifierHandler(queries)

	// Public routes: browsing, ordering, order tracking.
	orderHandler.RegisterPublicRoutes(r)
	stallHandler.RegisterPublicRoutes(r)
	menuHandler.RegisterPublicRoutes(r)
	modifierHandler.RegisterPublicRoutes(r)

	// Kitchen routes (staff or admin).
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))
		r.Use(mw.RequireStaff)

		orderHandler.RegisterStaffRoutes(r)
	})

	// Management routes (admin only).
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))
		r.Use(mw.RequireRole(enum.UserRoleAdmin))

		stallHandler.RegisterAdminRoutes(r)
		menuHandler.RegisterAdminRoutes(r)
		modifierHandler.RegisterAdminRoutes(r)

		inventoryHandler := handler.NewInventoryHandler(queries)
		inventoryHandler.RegisterAdminRoutes(r)

		recipeHandler := handler.NewRecipeHandler(queries)
		recipeHandler.RegisterAdminRoutes(r)

		reportHandler := handler.NewReportHandler(queries)
		reportHandler.RegisterAdminRoutes(r)
	})

	return r
}
