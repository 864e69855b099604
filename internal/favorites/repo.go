package favorites

import (
	"context"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"github.com/zxclownhd/fishing-app/pkg/pagination"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists user bookmarks.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert creates the bookmark unless it already exists and returns the stored row.
func (r *Repository) Upsert(ctx context.Context, userID, locationID uuid.UUID) (*models.Favorite, error) {
	fav := &models.Favorite{UserID: userID, LocationID: locationID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "location_id"}},
			DoNothing: true,
		}).
		Create(fav).Error
	if err != nil {
		return nil, err
	}

	var stored models.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Delete removes the bookmark and reports how many rows went away.
func (r *Repository) Delete(ctx context.Context, userID, locationID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Delete(&models.Favorite{})
	return res.RowsAffected, res.Error
}

// PageLocationIDs returns one page of the user's bookmarked location ids,
// most recently bookmarked first, together with the total. Bookmarks of
// locations that are no longer approved are skipped.
func (r *Repository) PageLocationIDs(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]uuid.UUID, int64, error) {
	g, gctx := errgroup.WithContext(ctx)
	scope := func() *gorm.DB {
		return r.db.WithContext(gctx).
			Model(&models.Favorite{}).
			Joins("JOIN locations ON locations.id = favorites.location_id").
			Where("favorites.user_id = ?", userID).
			Where("locations.status = ?", enums.LocationStatusApproved)
	}

	var (
		ids   []uuid.UUID
		total int64
	)
	g.Go(func() error {
		return scope().Count(&total).Error
	})
	g.Go(func() error {
		return scope().
			Order("favorites.created_at DESC").
			Order("favorites.id DESC").
			Limit(page.Limit).
			Offset(page.Offset()).
			Pluck("favorites.location_id", &ids).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
