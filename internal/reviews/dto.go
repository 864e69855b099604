package reviews

import (
	"time"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
)

// ReviewerDTO is the public identity of a review author.
type ReviewerDTO struct {
	ID          uuid.UUID `json:"id"`
	DisplayName *string   `json:"displayName"`
}

type ReviewDTO struct {
	ID         uuid.UUID    `json:"id"`
	LocationID uuid.UUID    `json:"locationId"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment"`
	CreatedAt  time.Time    `json:"createdAt"`
	User       *ReviewerDTO `json:"user"`
}

// CreateInput is a new review submission.
type CreateInput struct {
	Rating  int
	Comment string
}

func toReviewDTO(review models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:         review.ID,
		LocationID: review.LocationID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
	if review.User != nil {
		dto.User = &ReviewerDTO{ID: review.User.ID, DisplayName: review.User.DisplayName}
	}
	return dto
}
