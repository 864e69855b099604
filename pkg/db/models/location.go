package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"gorm.io/gorm"
)

// Location is a fishing spot submitted by an owner and gated by moderation.
type Location struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID     uuid.UUID            `gorm:"column:owner_id;type:uuid;not null;index:locations_owner_created_idx"`
	Title       string               `gorm:"column:title;type:text;not null"`
	Description string               `gorm:"column:description;type:text;not null"`
	Region      enums.Region         `gorm:"column:region;type:text;not null;index:locations_region_idx"`
	WaterType   enums.WaterType      `gorm:"column:water_type;type:text;not null;index:locations_water_type_idx"`
	Lat         decimal.Decimal      `gorm:"column:lat;type:numeric(9,6);not null"`
	Lng         decimal.Decimal      `gorm:"column:lng;type:numeric(9,6);not null"`
	ContactInfo *string              `gorm:"column:contact_info;type:varchar(255)"`
	Status      enums.LocationStatus `gorm:"column:status;type:location_status;not null;default:'PENDING';index:locations_status_created_idx"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	Owner   *User    `gorm:"foreignKey:OwnerID"`
	Photos  []Photo  `gorm:"foreignKey:LocationID"`
	Fish    []Fish   `gorm:"many2many:location_fish;"`
	Seasons []Season `gorm:"many2many:location_seasons;"`
}

func (l *Location) BeforeCreate(*gorm.DB) error {
	return assignID(&l.ID)
}

// Photo is an externally hosted image attached to a location.
type Photo struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LocationID uuid.UUID `gorm:"column:location_id;type:uuid;not null;index:photos_location_id_idx"`
	URL        string    `gorm:"column:url;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (p *Photo) BeforeCreate(*gorm.DB) error {
	return assignID(&p.ID)
}
