package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"gorm.io/gorm"
)

// LocationStatusEvent records an immutable moderation status change.
type LocationStatusEvent struct {
	ID         uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LocationID uuid.UUID            `gorm:"column:location_id;type:uuid;not null;index:location_status_events_location_idx"`
	ActorID    uuid.UUID            `gorm:"column:actor_id;type:uuid;not null"`
	ActorRole  enums.Role           `gorm:"column:actor_role;type:user_role;not null"`
	FromStatus enums.LocationStatus `gorm:"column:from_status;type:location_status;not null"`
	ToStatus   enums.LocationStatus `gorm:"column:to_status;type:location_status;not null"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (e *LocationStatusEvent) BeforeCreate(*gorm.DB) error {
	return assignID(&e.ID)
}
