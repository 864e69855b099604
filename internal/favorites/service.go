package favorites

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"github.com/zxclownhd/fishing-app/pkg/pagination"
	"github.com/zxclownhd/fishing-app/pkg/types"
	"github.com/zxclownhd/fishing-app/pkg/visibility"
	"gorm.io/gorm"
)

// FavoriteDTO acknowledges a bookmark.
type FavoriteDTO struct {
	LocationID uuid.UUID `json:"locationId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RemoveResult reports whether a bookmark existed before removal.
type RemoveResult struct {
	Removed bool `json:"removed"`
}

type ServiceParams struct {
	FavoriteRepo *Repository
	LocationRepo *locations.Repository
}

// Service manages a user's bookmarked locations.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, role enums.Role, locationID uuid.UUID) (FavoriteDTO, error)
	Remove(ctx context.Context, userID uuid.UUID, role enums.Role, locationID uuid.UUID) (RemoveResult, error)
	List(ctx context.Context, userID uuid.UUID, role enums.Role, page pagination.Params) (types.PageEnvelope[locations.LocationDTO], error)
}

type service struct {
	favorites *Repository
	locations *locations.Repository
}

func NewService(params ServiceParams) (Service, error) {
	if params.FavoriteRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorite repo is required")
	}
	if params.LocationRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location repo is required")
	}
	return &service{favorites: params.FavoriteRepo, locations: params.LocationRepo}, nil
}

// Add bookmarks an approved location. Repeating the call is a no-op that
// returns the original bookmark.
func (s *service) Add(ctx context.Context, userID uuid.UUID, role enums.Role, locationID uuid.UUID) (FavoriteDTO, error) {
	if err := ensureEngaging(role); err != nil {
		return FavoriteDTO{}, err
	}
	loc, err := s.locations.FindByID(ctx, locationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load location")
	}
	if err := visibility.EnsurePubliclyVisible(loc); err != nil {
		return FavoriteDTO{}, err
	}

	fav, err := s.favorites.Upsert(ctx, userID, locationID)
	if err != nil {
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add favorite")
	}
	return FavoriteDTO{LocationID: fav.LocationID, CreatedAt: fav.CreatedAt}, nil
}

// Remove is idempotent; it never fails because the bookmark is missing.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, role enums.Role, locationID uuid.UUID) (RemoveResult, error) {
	if err := ensureEngaging(role); err != nil {
		return RemoveResult{}, err
	}
	count, err := s.favorites.Delete(ctx, userID, locationID)
	if err != nil {
		return RemoveResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove favorite")
	}
	return RemoveResult{Removed: count > 0}, nil
}

// List returns the user's bookmarked locations as public cards.
func (s *service) List(ctx context.Context, userID uuid.UUID, role enums.Role, page pagination.Params) (types.PageEnvelope[locations.LocationDTO], error) {
	var empty types.PageEnvelope[locations.LocationDTO]
	if err := ensureEngaging(role); err != nil {
		return empty, err
	}
	page = pagination.Favorites.Normalize(page)

	ids, total, err := s.favorites.PageLocationIDs(ctx, userID, page)
	if err != nil {
		return empty, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list favorites")
	}
	rows, err := s.locations.LoadMany(ctx, ids)
	if err != nil {
		return empty, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load favorite locations")
	}
	ratings, err := s.locations.RatingsFor(ctx, ids)
	if err != nil {
		return empty, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ratings")
	}

	items := locations.PublicCards(rows, ratings)
	return types.NewPage(items, total, page.Page, page.Limit).
		WithPages(pagination.Pages(total, page.Limit)), nil
}

func ensureEngaging(role enums.Role) error {
	if !role.CanEngage() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "favorites are limited to users and owners")
	}
	return nil
}
