package catalog

import (
	"context"
	"strings"

	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists the fish and season catalogs.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository that issues its queries on tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// EnsureFish returns the catalog rows for names, inserting missing ones.
// Concurrent inserts of the same name collapse on the unique constraint.
func (r *Repository) EnsureFish(ctx context.Context, names []string) ([]models.Fish, error) {
	names = NormalizeFishNames(names)
	if len(names) == 0 {
		return []models.Fish{}, nil
	}

	rows := make([]models.Fish, 0, len(names))
	for _, name := range names {
		rows = append(rows, models.Fish{Name: name})
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return nil, err
	}

	var fish []models.Fish
	if err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("name ASC").
		Find(&fish).Error; err != nil {
		return nil, err
	}
	return fish, nil
}

// SeasonsByCodes resolves codes against the seeded seasons. Codes without a
// row are left out of the result.
func (r *Repository) SeasonsByCodes(ctx context.Context, codes []enums.SeasonCode) ([]models.Season, error) {
	if len(codes) == 0 {
		return []models.Season{}, nil
	}
	var seasons []models.Season
	if err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Order("id ASC").
		Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

// ListFish returns the whole fish catalog ordered by name.
func (r *Repository) ListFish(ctx context.Context) ([]models.Fish, error) {
	var fish []models.Fish
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&fish).Error; err != nil {
		return nil, err
	}
	return fish, nil
}

// ListSeasons returns the fixed season set ordered by id.
func (r *Repository) ListSeasons(ctx context.Context) ([]models.Season, error) {
	var seasons []models.Season
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&seasons).Error; err != nil {
		return nil, err
	}
	return seasons, nil
}

// StarterFish is the fish list provisioned on a fresh catalog.
var StarterFish = []string{
	"Carp", "Crucian carp", "Pike", "Perch", "Zander",
	"Catfish", "Bream", "Roach", "Trout", "Salmon",
}

// EnsureSeasons inserts any missing season rows.
func (r *Repository) EnsureSeasons(ctx context.Context) error {
	codes := enums.SeasonCodes()
	rows := make([]models.Season, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, models.Season{Code: code, Name: code.DisplayName()})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows).Error
}

// NormalizeFishNames trims names, drops blanks and collapses duplicates while
// keeping first-seen order. Matching stays case-sensitive.
func NormalizeFishNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ParseSeasonCodes keeps the recognised codes of raw, deduplicated.
func ParseSeasonCodes(raw []string) []enums.SeasonCode {
	seen := make(map[enums.SeasonCode]struct{}, len(raw))
	out := make([]enums.SeasonCode, 0, len(raw))
	for _, value := range raw {
		code, err := enums.ParseSeasonCode(value)
		if err != nil {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
