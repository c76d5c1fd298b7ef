package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes constructs the chi router containing all API endpoints.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	allowed := a.config.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           int((10 * time.Minute).Seconds()),
	}))

	r.Use(httprate.Limit(100, time.Minute))
	r.Use(recordMetrics(a.metrics))

	r.Get("/", a.handleIndex)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(a.authenticate)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/google", a.handleGoogleLogin)
			r.Post("/token/refresh", a.handleRefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(a.requireAuth)
				r.Post("/logout", a.handleLogout)
				r.Get("/profile", a.handleGetProfile)
				r.Put("/profile", a.handleUpdateProfile)
				r.Patch("/profile", a.handleUpdateProfile)
			})
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", a.handleListListings)

			r.Group(func(r chi.Router) {
				r.Use(a.requireAuth)
				r.Post("/", a.handleCreateListing)
				r.Get("/my_listings", a.handleMyListings)
			})

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", a.handleGetListing)

				r.Group(func(r chi.Router) {
					r.Use(a.requireAuth)
					r.Put("/", a.handleUpdateListing)
					r.Patch("/", a.handleUpdateListing)
					r.Delete("/", a.handleDeleteListing)
					r.Post("/image", a.handleListingImage)
				})
			})
		})
	})

	return r
}

func (a *API) handleIndex(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to BitsBay API",
		"status":  "success",
		"endpoints": map[string]any{
			"auth":        "/api/auth/",
			"marketplace": "/api/listings/",
		},
	})
}
