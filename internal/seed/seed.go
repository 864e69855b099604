package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/internal/reviews"
	"github.com/zxclownhd/fishing-app/internal/users"
	"github.com/zxclownhd/fishing-app/pkg/config"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"github.com/zxclownhd/fishing-app/pkg/logger"
)

// Coordinates of demo locations stay inside the mainland bounding box.
var (
	demoLatMin, demoLatMax = 46.0, 52.0
	demoLngMin, demoLngMax = 23.0, 38.0
)

const (
	demoOwnerEmail = "demo.owner@fishing.local"
	demoPassword   = "demo-password"
)

type passwordHasher interface {
	Hash(password string) (string, error)
}

// Params wires the seeder to the application services.
type Params struct {
	Users     *users.Repository
	Catalog   *catalog.Repository
	Locations locations.Service
	Reviews   reviews.Service
	Hasher    passwordHasher
	Logger    *logger.Logger
	Faker     *gofakeit.Faker
}

// Seeder provisions reference data, the admin account and optional demo content.
type Seeder struct {
	users     *users.Repository
	catalog   *catalog.Repository
	locations locations.Service
	reviews   reviews.Service
	hasher    passwordHasher
	logg      *logger.Logger
	faker     *gofakeit.Faker
}

func New(p Params) (*Seeder, error) {
	if p.Users == nil || p.Catalog == nil || p.Hasher == nil || p.Logger == nil {
		return nil, errors.New("seed: users, catalog, hasher and logger are required")
	}
	faker := p.Faker
	if faker == nil {
		faker = gofakeit.New(0)
	}
	return &Seeder{
		users:     p.Users,
		catalog:   p.Catalog,
		locations: p.Locations,
		reviews:   p.Reviews,
		hasher:    p.Hasher,
		logg:      p.Logger,
		faker:     faker,
	}, nil
}

// Catalog inserts the season set and the starter fish list. Safe to rerun.
func (s *Seeder) Catalog(ctx context.Context) error {
	if err := s.catalog.EnsureSeasons(ctx); err != nil {
		return fmt.Errorf("seed seasons: %w", err)
	}
	fish, err := s.catalog.EnsureFish(ctx, catalog.StarterFish)
	if err != nil {
		return fmt.Errorf("seed fish: %w", err)
	}
	s.logg.Info(s.logg.WithField(ctx, "fish", len(fish)), "seed.catalog.done")
	return nil
}

// Admin makes sure the configured account exists with the ADMIN role. An
// existing account is promoted and keeps its password.
func (s *Seeder) Admin(ctx context.Context, cfg config.SeedConfig) (*models.User, error) {
	email, err := users.NormalizeEmail(cfg.AdminEmail)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithField(ctx, "email", email)

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != enums.RoleAdmin {
			if err := s.users.UpdateRole(ctx, existing.ID, enums.RoleAdmin); err != nil {
				return nil, fmt.Errorf("promote admin: %w", err)
			}
			existing.Role = enums.RoleAdmin
			s.logg.Info(ctx, "seed.admin.promoted")
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	if cfg.AdminPassword == "" {
		s.logg.Warn(ctx, "seed.admin.skipped: no password configured")
		return nil, nil
	}
	if err := users.CheckPassword("adminPassword", cfg.AdminPassword); err != nil {
		return nil, err
	}

	var displayName *string
	if strings.TrimSpace(cfg.AdminDisplayName) != "" {
		name, err := users.NormalizeDisplayName(cfg.AdminDisplayName)
		if err != nil {
			return nil, err
		}
		displayName = &name
	}

	admin, err := s.createUser(ctx, email, cfg.AdminPassword, displayName, enums.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.logg.Info(ctx, "seed.admin.created")
	return admin, nil
}

// Demo creates count approved locations owned by a demo owner, each with a
// few reviews from fresh demo users. admin performs the approvals.
func (s *Seeder) Demo(ctx context.Context, admin *models.User, count int) ([]uuid.UUID, error) {
	if s.locations == nil || s.reviews == nil {
		return nil, errors.New("seed: demo data needs the location and review services")
	}
	if admin == nil || admin.Role != enums.RoleAdmin {
		return nil, errors.New("seed: demo data needs an admin account")
	}

	owner, err := s.demoOwner(ctx)
	if err != nil {
		return nil, err
	}
	ownerActor := locations.Actor{ID: owner.ID, Role: owner.Role}
	adminActor := locations.Actor{ID: admin.ID, Role: admin.Role}

	ids := make([]uuid.UUID, 0, count)
	var errs error
	for i := 0; i < count; i++ {
		loc, err := s.locations.Create(ctx, ownerActor, s.demoLocation())
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, err := s.locations.SetStatus(ctx, adminActor, loc.ID, string(enums.LocationStatusApproved)); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		errs = multierr.Append(errs, s.demoReviews(ctx, loc.ID))
		ids = append(ids, loc.ID)
	}

	s.logg.Info(s.logg.WithField(ctx, "locations", len(ids)), "seed.demo.done")
	return ids, errs
}

func (s *Seeder) demoOwner(ctx context.Context) (*models.User, error) {
	owner, err := s.users.FindByEmail(ctx, demoOwnerEmail)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	name := "demo_owner"
	return s.createUser(ctx, demoOwnerEmail, demoPassword, &name, enums.RoleOwner)
}

func (s *Seeder) demoLocation() locations.CreateInput {
	f := s.faker
	regions := enums.Regions()
	waterTypes := enums.WaterTypes()
	waterType := waterTypes[f.IntRange(0, len(waterTypes)-1)]

	fish := append([]string(nil), catalog.StarterFish...)
	f.ShuffleStrings(fish)

	var seasons []string
	for _, code := range enums.SeasonCodes() {
		if f.Bool() {
			seasons = append(seasons, string(code))
		}
	}

	contact := f.Phone()
	return locations.CreateInput{
		Title:       fmt.Sprintf("%s %s", f.Adjective(), strings.ToLower(string(waterType))),
		Description: f.Sentence(12),
		Region:      string(regions[f.IntRange(0, len(regions)-1)]),
		WaterType:   string(waterType),
		Lat:         decimal.NewFromFloat(f.Float64Range(demoLatMin, demoLatMax)).Round(6),
		Lng:         decimal.NewFromFloat(f.Float64Range(demoLngMin, demoLngMax)).Round(6),
		ContactInfo: &contact,
		FishNames:   fish[:f.IntRange(1, 3)],
		SeasonCodes: seasons,
		PhotoURLs:   []string{fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.UUID())},
	}
}

func (s *Seeder) demoReviews(ctx context.Context, locationID uuid.UUID) error {
	f := s.faker
	n := f.IntRange(0, 3)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s_%s", strings.ToLower(f.LetterN(6)), uuid.NewString()[:6])
		user, err := s.createUser(ctx, name+"@demo.fishing.local", demoPassword, &name, enums.RoleUser)
		if err != nil {
			return err
		}
		_, err = s.reviews.Create(ctx, user.ID, user.Role, locationID, reviews.CreateInput{
			Rating:  f.IntRange(1, 5),
			Comment: f.Sentence(8),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) createUser(ctx context.Context, email, password string, displayName *string, role enums.Role) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         role,
	})
	if err != nil {
		if conflict := users.ConflictFromUnique(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
