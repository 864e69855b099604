package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a user's rating and comment on a location, one per user per location.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LocationID uuid.UUID `gorm:"column:location_id;type:uuid;not null;uniqueIndex:reviews_user_id_location_id_key,priority:2;index:reviews_location_created_idx"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:reviews_user_id_location_id_key,priority:1"`
	Rating     int       `gorm:"column:rating;type:smallint;not null"`
	Comment    string    `gorm:"column:comment;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`

	User *User `gorm:"foreignKey:UserID"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	return assignID(&r.ID)
}
