package locations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
)

// OwnerDTO is the owner identity embedded in location payloads. Email is
// only populated for admin views.
type OwnerDTO struct {
	ID          uuid.UUID `json:"id"`
	DisplayName *string   `json:"displayName"`
	Email       *string   `json:"email,omitempty"`
}

type PhotoDTO struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// LocationDTO is the view model returned by every location endpoint.
type LocationDTO struct {
	ID           uuid.UUID            `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Region       enums.Region         `json:"region"`
	WaterType    enums.WaterType      `json:"waterType"`
	Lat          decimal.Decimal      `json:"lat"`
	Lng          decimal.Decimal      `json:"lng"`
	ContactInfo  *string              `json:"contactInfo,omitempty"`
	Status       enums.LocationStatus `json:"status"`
	Owner        *OwnerDTO            `json:"owner,omitempty"`
	Photos       []PhotoDTO           `json:"photos"`
	Fish         []catalog.FishDTO    `json:"fish"`
	Seasons      []catalog.SeasonDTO  `json:"seasons"`
	AvgRating    *float64             `json:"avgRating"`
	ReviewsCount int64                `json:"reviewsCount"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// ContactDTO exposes only the contact line of an approved location.
type ContactDTO struct {
	ContactInfo *string `json:"contactInfo"`
}

// StatusEventDTO is one entry of a location's moderation history.
type StatusEventDTO struct {
	ID         uuid.UUID            `json:"id"`
	LocationID uuid.UUID            `json:"locationId"`
	ActorID    uuid.UUID            `json:"actorId"`
	ActorRole  enums.Role           `json:"actorRole"`
	FromStatus enums.LocationStatus `json:"fromStatus"`
	ToStatus   enums.LocationStatus `json:"toStatus"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// Rating is the review aggregate of one location.
type Rating struct {
	Average *float64
	Count   int64
}

type view int

const (
	viewPublic view = iota
	viewOwner
	viewAdmin
)

// Actor identifies the authenticated caller of a mutating operation.
type Actor struct {
	ID   uuid.UUID
	Role enums.Role
}

func toLocationDTO(loc *models.Location, v view, rating Rating) LocationDTO {
	dto := LocationDTO{
		ID:           loc.ID,
		Title:        loc.Title,
		Description:  loc.Description,
		Region:       loc.Region,
		WaterType:    loc.WaterType,
		Lat:          loc.Lat,
		Lng:          loc.Lng,
		Status:       loc.Status,
		Photos:       make([]PhotoDTO, 0, len(loc.Photos)),
		Fish:         catalog.FishFromModels(loc.Fish),
		Seasons:      catalog.SeasonsFromModels(loc.Seasons),
		AvgRating:    rating.Average,
		ReviewsCount: rating.Count,
		CreatedAt:    loc.CreatedAt,
		UpdatedAt:    loc.UpdatedAt,
	}

	if v != viewPublic {
		dto.ContactInfo = loc.ContactInfo
	}

	if loc.Owner != nil {
		owner := &OwnerDTO{ID: loc.Owner.ID, DisplayName: loc.Owner.DisplayName}
		if v == viewAdmin {
			email := loc.Owner.Email
			owner.Email = &email
		}
		dto.Owner = owner
	}

	for _, photo := range loc.Photos {
		dto.Photos = append(dto.Photos, PhotoDTO{ID: photo.ID, URL: photo.URL, CreatedAt: photo.CreatedAt})
	}
	return dto
}

// cards maps list rows; public cards carry only the newest photo.
func cards(rows []models.Location, ratings map[uuid.UUID]Rating, v view) []LocationDTO {
	items := make([]LocationDTO, 0, len(rows))
	for i := range rows {
		dto := toLocationDTO(&rows[i], v, ratings[rows[i].ID])
		if v == viewPublic && len(dto.Photos) > 1 {
			dto.Photos = dto.Photos[:1]
		}
		items = append(items, dto)
	}
	return items
}

// PublicCards maps rows to the guest list representation.
func PublicCards(rows []models.Location, ratings map[uuid.UUID]Rating) []LocationDTO {
	return cards(rows, ratings, viewPublic)
}

func toStatusEventDTO(event models.LocationStatusEvent) StatusEventDTO {
	return StatusEventDTO{
		ID:         event.ID,
		LocationID: event.LocationID,
		ActorID:    event.ActorID,
		ActorRole:  event.ActorRole,
		FromStatus: event.FromStatus,
		ToStatus:   event.ToStatus,
		CreatedAt:  event.CreatedAt,
	}
}
