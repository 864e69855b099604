// Package testdb provides an in-memory SQLite database whose schema mirrors
// the Postgres migrations, plus fixture helpers for repository and service
// tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zxclownhd/fishing-app/pkg/db"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		display_name TEXT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		CONSTRAINT users_email_key UNIQUE (email),
		CONSTRAINT users_display_name_key UNIQUE (display_name)
	)`,
	`CREATE TABLE locations (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		region TEXT NOT NULL,
		water_type TEXT NOT NULL,
		lat TEXT NOT NULL,
		lng TEXT NOT NULL,
		contact_info TEXT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE photos (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE fish (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		CONSTRAINT fish_name_key UNIQUE (name)
	)`,
	`CREATE TABLE seasons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		CONSTRAINT seasons_code_key UNIQUE (code)
	)`,
	`CREATE TABLE location_fish (
		location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		fish_id TEXT NOT NULL REFERENCES fish(id) ON DELETE CASCADE,
		PRIMARY KEY (location_id, fish_id)
	)`,
	`CREATE TABLE location_seasons (
		location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		season_id INTEGER NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
		PRIMARY KEY (location_id, season_id)
	)`,
	`CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		CONSTRAINT reviews_user_id_location_id_key UNIQUE (user_id, location_id)
	)`,
	`CREATE TABLE favorites (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL,
		CONSTRAINT favorites_user_id_location_id_key UNIQUE (user_id, location_id)
	)`,
	`CREATE TABLE location_status_events (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		actor_id TEXT NOT NULL,
		actor_role TEXT NOT NULL,
		from_status TEXT NOT NULL,
		to_status TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`INSERT INTO seasons (code, name) VALUES
		('SPRING', 'Spring'), ('SUMMER', 'Summer'), ('AUTUMN', 'Autumn'), ('WINTER', 'Winter')`,
}

// Open returns a fresh, isolated database. A single connection is used, so
// code under test must not issue queries outside an open transaction while
// that transaction is in flight.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("apply schema: %v\n%s", err, stmt)
		}
	}
	return conn
}

// Client wraps a fresh database in the application db client.
func Client(t testing.TB) (*db.Client, *gorm.DB) {
	t.Helper()
	conn := Open(t)
	return db.Wrap(conn), conn
}

// MustCreateUser inserts a user with the given role and a unique email.
func MustCreateUser(t testing.TB, conn *gorm.DB, role enums.Role) *models.User {
	t.Helper()
	name := strings.ToLower(gofakeit.LetterN(6)) + "_" + uuid.NewString()[:8]
	user := &models.User{
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "hash",
		DisplayName:  &name,
		Role:         role,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// LocationOption customizes a fixture location before insert.
type LocationOption func(*models.Location)

func WithRegion(region enums.Region) LocationOption {
	return func(l *models.Location) { l.Region = region }
}

func WithWaterType(waterType enums.WaterType) LocationOption {
	return func(l *models.Location) { l.WaterType = waterType }
}

func WithCreatedAt(at time.Time) LocationOption {
	return func(l *models.Location) { l.CreatedAt = at }
}

func WithContact(contact string) LocationOption {
	return func(l *models.Location) { l.ContactInfo = &contact }
}

// MustCreateLocation inserts a location with fake text in the given status.
func MustCreateLocation(t testing.TB, conn *gorm.DB, ownerID uuid.UUID, status enums.LocationStatus, opts ...LocationOption) *models.Location {
	t.Helper()
	loc := &models.Location{
		OwnerID:     ownerID,
		Title:       gofakeit.Sentence(3),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Region:      enums.RegionKyiv,
		WaterType:   enums.WaterTypeLake,
		Lat:         decimal.RequireFromString("50.450100"),
		Lng:         decimal.RequireFromString("30.523400"),
		Status:      status,
	}
	for _, opt := range opts {
		opt(loc)
	}
	if err := conn.Create(loc).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return loc
}

// MustAttachPhotos inserts photos in order, each one newer than the last.
func MustAttachPhotos(t testing.TB, conn *gorm.DB, locationID uuid.UUID, urls ...string) []models.Photo {
	t.Helper()
	base := time.Now().Add(-time.Hour)
	photos := make([]models.Photo, 0, len(urls))
	for i, url := range urls {
		photo := models.Photo{LocationID: locationID, URL: url, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := conn.Create(&photo).Error; err != nil {
			t.Fatalf("create photo: %v", err)
		}
		photos = append(photos, photo)
	}
	return photos
}

// MustAttachFish links the named fish, creating catalog rows as needed.
func MustAttachFish(t testing.TB, conn *gorm.DB, locationID uuid.UUID, names ...string) {
	t.Helper()
	for _, name := range names {
		fish := models.Fish{Name: name}
		if err := conn.Where("name = ?", name).FirstOrCreate(&fish).Error; err != nil {
			t.Fatalf("create fish: %v", err)
		}
		if err := conn.Create(&models.LocationFish{LocationID: locationID, FishID: fish.ID}).Error; err != nil {
			t.Fatalf("link fish: %v", err)
		}
	}
}

// MustAttachSeasons links the seeded seasons with the given codes.
func MustAttachSeasons(t testing.TB, conn *gorm.DB, locationID uuid.UUID, codes ...enums.SeasonCode) {
	t.Helper()
	for _, code := range codes {
		var season models.Season
		if err := conn.Where("code = ?", code).First(&season).Error; err != nil {
			t.Fatalf("find season %s: %v", code, err)
		}
		if err := conn.Create(&models.LocationSeason{LocationID: locationID, SeasonID: season.ID}).Error; err != nil {
			t.Fatalf("link season: %v", err)
		}
	}
}

// MustCreateReview inserts a review with a fake comment.
func MustCreateReview(t testing.TB, conn *gorm.DB, locationID, userID uuid.UUID, rating int) *models.Review {
	t.Helper()
	review := &models.Review{
		LocationID: locationID,
		UserID:     userID,
		Rating:     rating,
		Comment:    gofakeit.Sentence(6),
	}
	if err := conn.Create(review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	return review
}
