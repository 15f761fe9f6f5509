package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joestump/bookmarks/internal/auth"
	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/middleware"
	"github.com/joestump/bookmarks/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerAuth *auth.BearerTokenMiddleware
	Bookmarks  store.BookmarkRepository
	Logger     logger.Logger
}

// NewRouter assembles the full chi router: request ids, access logging,
// panic recovery, the unauthenticated health and metrics endpoints, and the
// token-protected bookmark routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Log(deps.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/bookmarks", NewAPIRouter(deps))

	return r
}

// NewAPIRouter creates the chi sub-router serving /bookmarks.
// The bearer token check runs before any handler or storage access.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(deps.BearerAuth.Authenticate)

	registerBookmarkRoutes(r, deps.Bookmarks, deps.Logger)

	return r
}
