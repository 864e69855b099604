package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"

	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/internal/reviews"
	"github.com/zxclownhd/fishing-app/internal/seed"
	"github.com/zxclownhd/fishing-app/internal/users"
	"github.com/zxclownhd/fishing-app/pkg/config"
	"github.com/zxclownhd/fishing-app/pkg/db"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"github.com/zxclownhd/fishing-app/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})
	_ = godotenv.Load()

	demo := flag.Int("demo", 0, "number of approved demo locations to create")
	fakerSeed := flag.Int64("faker-seed", 0, "gofakeit seed for reproducible demo data (0 = random)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{"demo": *demo})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	conn := dbClient.DB()
	locationRepo := locations.NewRepository(conn)
	catalogRepo := catalog.NewRepository(conn)

	locationSvc, err := locations.NewService(locations.ServiceParams{
		TxRunner:    dbClient,
		Repo:        locationRepo,
		CatalogRepo: catalogRepo,
		Logger:      logg,
	})
	requireResource(ctx, logg, "location service", err)
	reviewSvc, err := reviews.NewService(reviews.ServiceParams{
		ReviewRepo:   reviews.NewRepository(conn),
		LocationRepo: locationRepo,
	})
	requireResource(ctx, logg, "review service", err)

	seeder, err := seed.New(seed.Params{
		Users:     users.NewRepository(conn),
		Catalog:   catalogRepo,
		Locations: locationSvc,
		Reviews:   reviewSvc,
		Hasher:    security.NewHasher(cfg.Password),
		Logger:    logg,
		Faker:     gofakeit.New(*fakerSeed),
	})
	requireResource(ctx, logg, "seeder", err)

	if err := seeder.Catalog(ctx); err != nil {
		fail(ctx, logg, "seed catalog", err)
	}
	admin, err := seeder.Admin(ctx, cfg.Seed)
	if err != nil {
		fail(ctx, logg, "seed admin", err)
	}

	if *demo > 0 {
		if _, err := seeder.Demo(ctx, admin, *demo); err != nil {
			fail(ctx, logg, "seed demo data", err)
		}
	}
	fmt.Println("seed completed")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	fail(ctx, logg, fmt.Sprintf("resource not working: %s", resource), err)
}

func fail(ctx context.Context, logg *logger.Logger, msg string, err error) {
	logg.Error(ctx, msg, err)
	os.Exit(1)
}
