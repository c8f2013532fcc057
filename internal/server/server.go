package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/shoplist/internal/config"
	"github.com/dukerupert/shoplist/internal/handler"
	"github.com/dukerupert/shoplist/internal/i18n"
	"github.com/dukerupert/shoplist/internal/metrics"
	"github.com/dukerupert/shoplist/internal/middleware"
	"github.com/dukerupert/shoplist/internal/shopping"
	"github.com/dukerupert/shoplist/internal/store"
	ws "github.com/dukerupert/shoplist/internal/websocket"
	"github.com/dukerupert/shoplist/web"
)

const (
	loginLimit  = 10
	loginWindow = time.Minute
)

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	metrics       *metrics.Metrics
	authH         *handler.AuthHandler
	apiH          *handler.APIHandler
	viewH         *handler.ViewHandler
	sessionStore  *store.SessionStore
	userStore     *store.UserStore
	rateLimiter   *middleware.RateLimiter
	exposeMetrics bool
	logger        *slog.Logger
}

func New(db *sql.DB, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	m := metrics.New()

	hub := ws.NewHub(logger.With("component", "websocket"))
	hub.OnCountChange = m.SetWebSocketClients

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)

	bundle := i18n.NewBundle(cfg.DefaultLang, logger.With("component", "i18n"))
	renderer, err := handler.NewRenderer(web.Templates, bundle, logger.With("component", "template"))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	svc := shopping.NewService(db, logger.With("component", "shopping"))

	return &Server{
		db:            db,
		hub:           hub,
		metrics:       m,
		authH:         handler.NewAuthHandler(svc, sessionStore, userStore, renderer, cfg.SessionTTL, cfg.SecureCookies, logger.With("component", "auth")),
		apiH:          handler.NewAPIHandler(svc, bundle, m, hub, logger.With("component", "api")),
		viewH:         handler.NewViewHandler(svc, renderer, m, hub, cfg.DevFallback, logger.With("component", "view")),
		sessionStore:  sessionStore,
		userStore:     userStore,
		rateLimiter:   middleware.NewRateLimiter(),
		exposeMetrics: cfg.MetricsEnabled,
		logger:        logger,
	}, nil
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /{$}", s.authH.Entry)
	mux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	mux.HandleFunc("POST /logout", s.authH.Logout)
	mux.HandleFunc("GET /health", s.healthHandler)
	if s.exposeMetrics {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	s.registerProtectedRoutes(mux)

	// Metrics sits directly on the mux so it sees the matched pattern.
	var h http.Handler = middleware.Metrics(s.metrics)(mux)
	h = middleware.RequestLogger(s.logger.With("component", "http"))(h)
	return middleware.RequestID(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"status": "ok", "websocket_clients": s.hub.ClientCount()})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, loginLimit, loginWindow)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	requireSession := middleware.RequireSession(s.sessionStore, s.userStore, s.logger.With("component", "session"))
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireSession(h))
	}

	// Live updates
	handle("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	// API routes
	handle("GET /api/session", s.authH.Session)
	handle("GET /api/stores", s.apiH.ListStores)
	handle("POST /api/stores", s.apiH.CreateStore)
	handle("GET /api/stores/{id}", s.apiH.GetStore)
	handle("DELETE /api/stores/{id}", s.apiH.DeleteStore)
	handle("GET /api/stores/{id}/items", s.apiH.ListItems)
	handle("POST /api/stores/{id}/items", s.apiH.AddItem)
	handle("POST /api/items/{id}/purchase", s.apiH.Purchase)
	handle("GET /api/stores/{id}/history", s.apiH.ListHistory)
	handle("DELETE /api/history/{id}", s.apiH.DeleteHistoryEntry)
	handle("POST /api/history/{id}/readd", s.apiH.ReAdd)
	handle("GET /api/summary", s.apiH.Summary)

	// Page routes
	handle("GET /stores", s.viewH.Stores)
	handle("POST /stores", s.viewH.CreateStore)
	handle("POST /stores/{id}/delete", s.viewH.DeleteStore)
	handle("GET /shopping-list/{storeId}", s.viewH.ShoppingList)
	handle("POST /shopping-list/{storeId}/items", s.viewH.AddItem)
	handle("POST /shopping-list/{storeId}/items/{id}/purchase", s.viewH.PurchaseFromList)
	handle("GET /summary-list", s.viewH.Summary)
	handle("POST /summary-list/items/{id}/purchase", s.viewH.PurchaseFromSummary)
	handle("GET /stores/{storeId}/history", s.viewH.History)
	handle("POST /stores/{storeId}/history/{id}/delete", s.viewH.DeleteHistoryEntry)
	handle("POST /stores/{storeId}/history/{id}/readd", s.viewH.ReAdd)
}
