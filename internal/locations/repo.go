package locations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists locations together with their photos, catalog links
// and status history.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a location repository bound to the provided gorm DB.
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

// Create inserts the location row only; relations are written separately.
func (r *Repository) Create(ctx context.Context, loc *models.Location) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(loc).Error
}

// FindByID loads the bare location row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// FindByIDForUpdate loads the location row and locks it for the surrounding
// transaction.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// LoadDetail loads a location with owner, photos (newest first), fish and seasons.
func (r *Repository) LoadDetail(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var loc models.Location
	if err := withRelations(r.db.WithContext(ctx)).Where("locations.id = ?", id).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// LoadMany loads locations with their relations, returned in the order of
// ids. Missing ids are skipped.
func (r *Repository) LoadMany(ctx context.Context, ids []uuid.UUID) ([]models.Location, error) {
	if len(ids) == 0 {
		return []models.Location{}, nil
	}
	var rows []models.Location
	if err := withRelations(r.db.WithContext(ctx)).Where("locations.id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Location, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	ordered := make([]models.Location, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Owner").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.created_at DESC").Order("photos.id DESC")
		}).
		Preload("Fish", func(db *gorm.DB) *gorm.DB {
			return db.Order("fish.name ASC")
		}).
		Preload("Seasons", func(db *gorm.DB) *gorm.DB {
			return db.Order("seasons.id ASC")
		})
}

// UpdateFields writes the given columns and bumps updated_at.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if updates == nil {
		updates = map[string]any{}
	}
	updates["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateStatus sets the moderation status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LocationStatus) error {
	return r.UpdateFields(ctx, id, map[string]any{"status": status})
}

// ReplacePhotos removes every photo of the location and inserts urls in order.
func (r *Repository) ReplacePhotos(ctx context.Context, locationID uuid.UUID, urls []string) error {
	if err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Delete(&models.Photo{}).Error; err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	rows := make([]models.Photo, 0, len(urls))
	for _, url := range urls {
		rows = append(rows, models.Photo{LocationID: locationID, URL: url})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ReplaceFish swaps the fish links of the location for fishIDs.
func (r *Repository) ReplaceFish(ctx context.Context, locationID uuid.UUID, fishIDs []uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Delete(&models.LocationFish{}).Error; err != nil {
		return err
	}
	if len(fishIDs) == 0 {
		return nil
	}
	rows := make([]models.LocationFish, 0, len(fishIDs))
	for _, id := range fishIDs {
		rows = append(rows, models.LocationFish{LocationID: locationID, FishID: id})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// ReplaceSeasons swaps the season links of the location for seasonIDs.
func (r *Repository) ReplaceSeasons(ctx context.Context, locationID uuid.UUID, seasonIDs []int) error {
	if err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Delete(&models.LocationSeason{}).Error; err != nil {
		return err
	}
	if len(seasonIDs) == 0 {
		return nil
	}
	rows := make([]models.LocationSeason, 0, len(seasonIDs))
	for _, id := range seasonIDs {
		rows = append(rows, models.LocationSeason{LocationID: locationID, SeasonID: id})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// AppendStatusEvent records one status change.
func (r *Repository) AppendStatusEvent(ctx context.Context, event *models.LocationStatusEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListStatusEvents returns the history of a location, oldest first.
func (r *Repository) ListStatusEvents(ctx context.Context, locationID uuid.UUID) ([]models.LocationStatusEvent, error) {
	var events []models.LocationStatusEvent
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Delete removes the location; photos, links, reviews, favorites and status
// events go with it through the foreign key cascades.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ratingRow struct {
	LocationID   uuid.UUID       `gorm:"column:location_id"`
	AvgRating    decimal.Decimal `gorm:"column:avg_rating"`
	ReviewsCount int64           `gorm:"column:reviews_count"`
}

// RatingsFor aggregates reviews of the given locations only. Locations
// without reviews are absent from the result.
func (r *Repository) RatingsFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Rating, error) {
	out := make(map[uuid.UUID]Rating, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []ratingRow
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("location_id, AVG(rating) AS avg_rating, COUNT(*) AS reviews_count").
		Where("location_id IN ?", ids).
		Group("location_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		avg := row.AvgRating.Round(2).InexactFloat64()
		out[row.LocationID] = Rating{Average: &avg, Count: row.ReviewsCount}
	}
	return out, nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Location not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}

func trimmedURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		if url := strings.TrimSpace(raw); url != "" {
			out = append(out, url)
		}
	}
	return out
}
