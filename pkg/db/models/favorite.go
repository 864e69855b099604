package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite bookmarks a location for a user.
type Favorite struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:favorites_user_id_location_id_key,priority:1"`
	LocationID uuid.UUID `gorm:"column:location_id;type:uuid;not null;uniqueIndex:favorites_user_id_location_id_key,priority:2"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (f *Favorite) BeforeCreate(*gorm.DB) error {
	return assignID(&f.ID)
}
