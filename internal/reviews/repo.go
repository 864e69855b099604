package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists location reviews.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the review. A second review by the same user for the same
// location fails on the reviews unique constraint.
func (r *Repository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("User").Create(review).Error
}

// FindByID loads a review with its author.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListForLocation returns every review of a location, newest first.
func (r *Repository) ListForLocation(ctx context.Context, locationID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
