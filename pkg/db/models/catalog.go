package models

import (
	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"gorm.io/gorm"
)

// Fish is a species in the global catalog. Rows are created on first reference.
type Fish struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;type:text;not null;uniqueIndex:fish_name_key"`
}

func (Fish) TableName() string {
	return "fish"
}

func (f *Fish) BeforeCreate(*gorm.DB) error {
	return assignID(&f.ID)
}

// Season is one of the fixed seasons; rows are seeded, never user-created.
type Season struct {
	ID   int              `gorm:"column:id;primaryKey;autoIncrement"`
	Code enums.SeasonCode `gorm:"column:code;type:text;not null;uniqueIndex:seasons_code_key"`
	Name string           `gorm:"column:name;type:text;not null"`
}

// LocationFish links a location to a fish species.
type LocationFish struct {
	LocationID uuid.UUID `gorm:"column:location_id;type:uuid;primaryKey"`
	FishID     uuid.UUID `gorm:"column:fish_id;type:uuid;primaryKey"`
}

func (LocationFish) TableName() string {
	return "location_fish"
}

// LocationSeason links a location to a season.
type LocationSeason struct {
	LocationID uuid.UUID `gorm:"column:location_id;type:uuid;primaryKey"`
	SeasonID   int       `gorm:"column:season_id;primaryKey"`
}

func (LocationSeason) TableName() string {
	return "location_seasons"
}
