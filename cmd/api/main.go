package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/zxclownhd/fishing-app/api/controllers"
	"github.com/zxclownhd/fishing-app/api/routes"
	"github.com/zxclownhd/fishing-app/internal/auth"
	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/internal/favorites"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/internal/reviews"
	"github.com/zxclownhd/fishing-app/internal/users"
	"github.com/zxclownhd/fishing-app/pkg/auth/session"
	"github.com/zxclownhd/fishing-app/pkg/config"
	"github.com/zxclownhd/fishing-app/pkg/db"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"github.com/zxclownhd/fishing-app/pkg/metrics"
	"github.com/zxclownhd/fishing-app/pkg/migrate"
	"github.com/zxclownhd/fishing-app/pkg/redis"
	"github.com/zxclownhd/fishing-app/pkg/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := dbClient.Ping(ctx); err != nil {
		return err
	}
	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()
	redisClient.AddHook(metrics.NewRedisMetrics(reg).Hook())

	sessions, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}


	conn := dbClient.DB()
	hasher := security.NewHasher(cfg.Password)
	userRepo := users.NewRepository(conn)
	locationRepo := locations.NewRepository(conn)
	catalogRepo := catalog.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		Hasher:         hasher,
		SessionManager: sessions,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return err
	}
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		return err
	}
	locationService, err := locations.NewService(locations.ServiceParams{
		TxRunner:    dbClient,
		Repo:        locationRepo,
		CatalogRepo: catalogRepo,
		Metrics:     metrics.NewModerationMetrics(reg),
		Logger:      logg,
	})
	if err != nil {
		return err
	}
	reviewService, err := reviews.NewService(reviews.ServiceParams{
		ReviewRepo:   reviews.NewRepository(conn),
		LocationRepo: locationRepo,
	})
	if err != nil {
		return err
	}
	favoriteService, err := favorites.NewService(favorites.ServiceParams{
		FavoriteRepo: favorites.NewRepository(conn),
		LocationRepo: locationRepo,
	})
	if err != nil {
		return err
	}

	profileService, err := users.NewProfileService(users.ProfileServiceParams{
		Repo:     userRepo,
		Hasher:   hasher,
		Sessions: sessions,
	})
	if err != nil {
		return err
	}

	handler := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Logger:   logg,
		Sessions: sessions,
		Ready: map[string]controllers.Pinger{
			"postgres": dbClient,
			"redis":    redisClient,
		},
		Metrics:   metrics.NewHTTPMetrics(reg),
		Gatherer:  reg,
		Auth:      authService,
		Profile:   profileService,
		Catalog:   catalogService,
		Locations: locationService,
		Reviews:   reviewService,
		Favorites: favoriteService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithField(ctx, "addr", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
