package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zxclownhd/fishing-app/api/controllers"
	"github.com/zxclownhd/fishing-app/api/middleware"
	"github.com/zxclownhd/fishing-app/internal/auth"
	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/internal/favorites"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/internal/reviews"
	"github.com/zxclownhd/fishing-app/internal/users"
	"github.com/zxclownhd/fishing-app/pkg/auth/session"
	"github.com/zxclownhd/fishing-app/pkg/config"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"github.com/zxclownhd/fishing-app/pkg/metrics"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions session.AccessSessionChecker

	// Ready lists the dependencies pinged by /health/ready.
	Ready map[string]controllers.Pinger

	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer

	Auth      auth.Service
	Profile   users.ProfileService
	Catalog   catalog.Service
	Locations locations.Service
	Reviews   reviews.Service
	Favorites favorites.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.Origins),
	)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	authenticated := middleware.Auth(cfg.JWT, d.Sessions, logg)
	engaging := middleware.RequireRole(logg, enums.RoleUser, enums.RoleOwner)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.Health())
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Ready))
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(d.Auth, logg))
		r.Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.With(authenticated).Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/me", func(r chi.Router) {
		r.Use(authenticated)
		r.Get("/", controllers.MeGet(d.Profile, logg))
		r.Patch("/", controllers.MeUpdate(d.Profile, logg))
		r.Patch("/password", controllers.MeChangePassword(d.Profile, logg))
	})

	r.Route("/locations", func(r chi.Router) {
		// static segments must be registered before /{id}
		r.Get("/fish", controllers.CatalogFish(d.Catalog, logg))
		r.Get("/seasons", controllers.CatalogSeasons(d.Catalog, logg))

		r.Get("/", controllers.LocationsList(d.Locations, logg))
		r.With(authenticated, middleware.RequireRole(logg, enums.RoleOwner)).
			Post("/", controllers.LocationsCreate(d.Locations, logg))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.LocationsGet(d.Locations, logg))
			r.With(authenticated).Get("/contact", controllers.LocationsContact(d.Locations, logg))
			r.Get("/reviews", controllers.ReviewsList(d.Reviews, logg))
			r.With(authenticated, engaging).Post("/reviews", controllers.ReviewsCreate(d.Reviews, logg))
		})
	})

	r.Route("/owner/locations", func(r chi.Router) {
		r.Use(authenticated, middleware.RequireRole(logg, enums.RoleOwner))
		r.Get("/", controllers.OwnerList(d.Locations, logg))
		r.Get("/{id}", controllers.OwnerGet(d.Locations, logg))
		r.Patch("/{id}", controllers.OwnerUpdate(d.Locations, logg))
		r.Post("/{id}/hide", controllers.OwnerHide(d.Locations, logg))
		r.Post("/{id}/unhide", controllers.OwnerUnhide(d.Locations, logg))
	})

	r.Route("/admin/locations", func(r chi.Router) {
		r.Use(authenticated, middleware.RequireRole(logg, enums.RoleAdmin))
		r.Get("/", controllers.AdminList(d.Locations, logg))
		r.Get("/{id}", controllers.AdminGet(d.Locations, logg))
		r.Delete("/{id}", controllers.AdminDelete(d.Locations, logg))
		r.Get("/{id}/history", controllers.AdminHistory(d.Locations, logg))
		r.Patch("/{id}/status", controllers.AdminSetStatus(d.Locations, logg))
		r.Patch("/{id}/approve", controllers.AdminStatusShortcut(d.Locations, enums.LocationStatusApproved, logg))
		r.Patch("/{id}/reject", controllers.AdminStatusShortcut(d.Locations, enums.LocationStatusRejected, logg))
		r.Patch("/{id}/hide", controllers.AdminStatusShortcut(d.Locations, enums.LocationStatusHidden, logg))
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Use(authenticated, engaging)
		r.Get("/", controllers.FavoritesList(d.Favorites, logg))
		r.Post("/{locationId}", controllers.FavoritesAdd(d.Favorites, logg))
		r.Delete("/{locationId}", controllers.FavoritesRemove(d.Favorites, logg))
	})

	return r
}
