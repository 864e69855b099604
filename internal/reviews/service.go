package reviews

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/pkg/db"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"github.com/zxclownhd/fishing-app/pkg/types"
	"github.com/zxclownhd/fishing-app/pkg/visibility"
	"gorm.io/gorm"
)

const (
	minRating        = 1
	maxRating        = 5
	minCommentLength = 3
)

// ServiceParams groups dependencies for the review service.
type ServiceParams struct {
	ReviewRepo   *Repository
	LocationRepo *locations.Repository
}

// Service exposes review creation and listing.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, role enums.Role, locationID uuid.UUID, input CreateInput) (ReviewDTO, error)
	ListForLocation(ctx context.Context, locationID uuid.UUID) (types.ListEnvelope[ReviewDTO], error)
}

type service struct {
	reviews   *Repository
	locations *locations.Repository
}

// NewService builds a review service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ReviewRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	if params.LocationRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location repo is required")
	}
	return &service{reviews: params.ReviewRepo, locations: params.LocationRepo}, nil
}

// Create validates the submission, requires an approved location and relies
// on the storage constraint for one review per user and location.
func (s *service) Create(ctx context.Context, userID uuid.UUID, role enums.Role, locationID uuid.UUID, input CreateInput) (ReviewDTO, error) {
	if !role.CanEngage() {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "reviews are limited to users and owners")
	}
	comment, err := validateInput(input)
	if err != nil {
		return ReviewDTO{}, err
	}

	loc, err := s.locations.FindByID(ctx, locationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load location")
	}
	if err := visibility.EnsureReviewable(loc); err != nil {
		return ReviewDTO{}, err
	}

	review := &models.Review{
		LocationID: locationID,
		UserID:     userID,
		Rating:     input.Rating,
		Comment:    comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "reviews") {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "You already reviewed this location").
				WithDetails(map[string]any{"field": "review"})
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}

	created, err := s.reviews.FindByID(ctx, review.ID)
	if err != nil {
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}
	return toReviewDTO(*created), nil
}

func validateInput(input CreateInput) (string, error) {
	if input.Rating < minRating || input.Rating > maxRating {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "rating must be an integer from 1 to 5").
			WithDetails(map[string]any{"field": "rating"})
	}
	comment := strings.TrimSpace(input.Comment)
	if utf8.RuneCountInString(comment) < minCommentLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "comment is required (min 3 chars)").
			WithDetails(map[string]any{"field": "comment"})
	}
	return comment, nil
}

// ListForLocation returns all reviews of a location regardless of its status.
func (s *service) ListForLocation(ctx context.Context, locationID uuid.UUID) (types.ListEnvelope[ReviewDTO], error) {
	rows, err := s.reviews.ListForLocation(ctx, locationID)
	if err != nil {
		return types.ListEnvelope[ReviewDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	items := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toReviewDTO(row))
	}
	return types.NewList(items), nil
}
