package locations

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/pkg/db"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"github.com/zxclownhd/fishing-app/pkg/pagination"
	"github.com/zxclownhd/fishing-app/pkg/types"
	"github.com/zxclownhd/fishing-app/pkg/visibility"
	"gorm.io/gorm"
)

// CreateInput is an owner's new location submission.
type CreateInput struct {
	Title       string
	Description string
	Region      string
	WaterType   string
	Lat         decimal.Decimal
	Lng         decimal.Decimal
	ContactInfo *string
	FishNames   []string
	SeasonCodes []string
	PhotoURLs   []string
}

// UpdateInput is a partial owner edit. Nil fields are left untouched; non-nil
// slices replace the whole relation.
type UpdateInput struct {
	Title       *string
	Description *string
	Region      *string
	WaterType   *string
	Lat         *decimal.Decimal
	Lng         *decimal.Decimal
	ContactInfo types.Nullable[string]
	FishNames   *[]string
	SeasonCodes *[]string
	PhotoURLs   *[]string
}

// TransitionRecorder counts moderation status changes.
type TransitionRecorder interface {
	IncTransition(from, to, actor string)
}

// Service exposes location search, owner self-service and moderation.
type Service interface {
	ListPublic(ctx context.Context, filter ListFilter, page pagination.Params) (types.PageEnvelope[LocationDTO], error)
	GetPublic(ctx context.Context, id uuid.UUID) (LocationDTO, error)
	GetContact(ctx context.Context, id uuid.UUID) (ContactDTO, error)

	Create(ctx context.Context, actor Actor, input CreateInput) (LocationDTO, error)
	ListOwned(ctx context.Context, ownerID uuid.UUID, status string, page pagination.Params) (types.PageEnvelope[LocationDTO], error)
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (LocationDTO, error)
	UpdateOwned(ctx context.Context, actor Actor, id uuid.UUID, input UpdateInput) (LocationDTO, error)
	Hide(ctx context.Context, actor Actor, id uuid.UUID) (LocationDTO, error)
	Unhide(ctx context.Context, actor Actor, id uuid.UUID) (LocationDTO, error)

	ListAll(ctx context.Context, status string, page pagination.Params) (types.PageEnvelope[LocationDTO], error)
	GetAny(ctx context.Context, id uuid.UUID) (LocationDTO, error)
	SetStatus(ctx context.Context, actor Actor, id uuid.UUID, target string) (LocationDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	History(ctx context.Context, id uuid.UUID) ([]StatusEventDTO, error)
}

// ServiceParams groups dependencies for the location service.
type ServiceParams struct {
	TxRunner    db.TxRunner
	Repo        *Repository
	CatalogRepo *catalog.Repository
	Metrics     TransitionRecorder
	Logger      *logger.Logger
}

type service struct {
	tx      db.TxRunner
	repo    *Repository
	catalog *catalog.Repository
	metrics TransitionRecorder
	logg    *logger.Logger
}

// NewService builds a location service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tx runner is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		tx:      params.TxRunner,
		repo:    params.Repo,
		catalog: params.CatalogRepo,
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

// statusChange is a committed transition, reported after the transaction.
type statusChange struct {
	from, to enums.LocationStatus
}

func (s *service) ListPublic(ctx context.Context, filter ListFilter, page pagination.Params) (types.PageEnvelope[LocationDTO], error) {
	q, err := publicQuery(filter, page)
	if err != nil {
		return types.PageEnvelope[LocationDTO]{}, err
	}
	return s.list(ctx, q, viewPublic)
}

func (s *service) GetPublic(ctx context.Context, id uuid.UUID) (LocationDTO, error) {
	loc, err := s.repo.LoadDetail(ctx, id)
	if err != nil {
		return LocationDTO{}, notFoundOr(err, "load location")
	}
	if err := visibility.EnsurePubliclyVisible(loc); err != nil {
		return LocationDTO{}, err
	}
	return s.withRating(ctx, loc, viewPublic)
}

func (s *service) GetContact(ctx context.Context, id uuid.UUID) (ContactDTO, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ContactDTO{}, notFoundOr(err, "load location")
	}
	if err := visibility.EnsurePubliclyVisible(loc); err != nil {
		return ContactDTO{}, err
	}
	return ContactDTO{ContactInfo: loc.ContactInfo}, nil
}

// Create stores a new location in PENDING together with its photos and
// catalog links.
func (s *service) Create(ctx context.Context, actor Actor, input CreateInput) (LocationDTO, error) {
	if !actor.Role.CanSubmitLocations() {
		return LocationDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "only owners can submit locations")
	}

	loc, err := buildLocation(actor.ID, input)
	if err != nil {
		return LocationDTO{}, err
	}
	photos := trimmedURLs(input.PhotoURLs)
	fishNames := catalog.NormalizeFishNames(input.FishNames)
	seasonCodes := catalog.ParseSeasonCodes(input.SeasonCodes)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, loc); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create location")
		}
		if err := repo.ReplacePhotos(ctx, loc.ID, photos); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store photos")
		}
		if err := s.linkFish(ctx, tx, loc.ID, fishNames); err != nil {
			return err
		}
		return s.linkSeasons(ctx, tx, loc.ID, seasonCodes)
	})
	if err != nil {
		return LocationDTO{}, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"location_id": loc.ID.String(), "owner_id": actor.ID.String()})
	s.logg.Info(logCtx, "location.created")

	return s.loadView(ctx, loc.ID, viewOwner)
}

func buildLocation(ownerID uuid.UUID, input CreateInput) (*models.Location, error) {
	title, err := requireText("title", input.Title)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", input.Description)
	if err != nil {
		return nil, err
	}
	region, err := parseRegion(input.Region)
	if err != nil {
		return nil, err
	}
	waterType, err := parseWaterType(input.WaterType)
	if err != nil {
		return nil, err
	}
	if err := checkLat(input.Lat); err != nil {
		return nil, err
	}
	if err := checkLng(input.Lng); err != nil {
		return nil, err
	}
	contact, err := normalizeContact(input.ContactInfo)
	if err != nil {
		return nil, err
	}

	return &models.Location{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Region:      region,
		WaterType:   waterType,
		Lat:         input.Lat,
		Lng:         input.Lng,
		ContactInfo: contact,
		Status:      enums.LocationStatusPending,
	}, nil
}

func (s *service) ListOwned(ctx context.Context, ownerID uuid.UUID, status string, page pagination.Params) (types.PageEnvelope[LocationDTO], error) {
	filter, err := ParseStatusFilter(status)
	if err != nil {
		return types.PageEnvelope[LocationDTO]{}, err
	}
	q := listQuery{ownerID: &ownerID, page: pagination.Moderation.Normalize(page)}
	if filter != nil {
		q.statuses = []enums.LocationStatus{*filter}
	}
	return s.list(ctx, q, viewOwner)
}

func (s *service) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (LocationDTO, error) {
	loc, err := s.repo.LoadDetail(ctx, id)
	if err != nil {
		return LocationDTO{}, notFoundOr(err, "load location")
	}
	if err := visibility.EnsureOwnedBy(loc, ownerID); err != nil {
		return LocationDTO{}, err
	}
	return s.withRating(ctx, loc, viewOwner)
}

// UpdateOwned applies a partial edit in one transaction. Present relation
// arrays fully replace the stored set, and an approved location always goes
// back to PENDING.
func (s *service) UpdateOwned(ctx context.Context, actor Actor, id uuid.UUID, input UpdateInput) (LocationDTO, error) {
	updates, err := scalarUpdates(input)
	if err != nil {
		return LocationDTO{}, err
	}

	var change *statusChange
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loc, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, "load location")
		}
		if err := visibility.EnsureOwnedBy(loc, actor.ID); err != nil {
			return err
		}

		next := statusAfterOwnerEdit(loc.Status)
		if next != loc.Status {
			updates["status"] = next
		}
		if len(updates) > 0 || input.touchesRelations() {
			if err := repo.UpdateFields(ctx, id, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update location")
			}
		}

		if input.PhotoURLs != nil {
			if err := repo.ReplacePhotos(ctx, id, trimmedURLs(*input.PhotoURLs)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace photos")
			}
		}
		if input.FishNames != nil {
			if err := s.linkFish(ctx, tx, id, catalog.NormalizeFishNames(*input.FishNames)); err != nil {
				return err
			}
		}
		if input.SeasonCodes != nil {
			if err := s.linkSeasons(ctx, tx, id, catalog.ParseSeasonCodes(*input.SeasonCodes)); err != nil {
				return err
			}
		}

		if next != loc.Status {
			if err := appendEvent(ctx, repo, id, actor, loc.Status, next); err != nil {
				return err
			}
			change = &statusChange{from: loc.Status, to: next}
		}
		return nil
	})
	if err != nil {
		return LocationDTO{}, err
	}

	s.reportChange(ctx, id, actor, change)
	return s.loadView(ctx, id, viewOwner)
}

func (in UpdateInput) touchesRelations() bool {
	return in.PhotoURLs != nil || in.FishNames != nil || in.SeasonCodes != nil
}

func scalarUpdates(input UpdateInput) (map[string]any, error) {
	updates := map[string]any{}
	if input.Title != nil {
		title, err := requireText("title", *input.Title)
		if err != nil {
			return nil, err
		}
		updates["title"] = title
	}
	if input.Description != nil {
		description, err := requireText("description", *input.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = description
	}
	if input.Region != nil {
		region, err := parseRegion(*input.Region)
		if err != nil {
			return nil, err
		}
		updates["region"] = region
	}
	if input.WaterType != nil {
		waterType, err := parseWaterType(*input.WaterType)
		if err != nil {
			return nil, err
		}
		updates["water_type"] = waterType
	}
	if input.Lat != nil {
		if err := checkLat(*input.Lat); err != nil {
			return nil, err
		}
		updates["lat"] = *input.Lat
	}
	if input.Lng != nil {
		if err := checkLng(*input.Lng); err != nil {
			return nil, err
		}
		updates["lng"] = *input.Lng
	}
	if input.ContactInfo.Set {
		contact, err := normalizeContact(input.ContactInfo.Value)
		if err != nil {
			return nil, err
		}
		updates["contact_info"] = contact
	}
	return updates, nil
}

func (s *service) Hide(ctx context.Context, actor Actor, id uuid.UUID) (LocationDTO, error) {
	return s.ownerSetStatus(ctx, actor, id, enums.LocationStatusHidden)
}

func (s *service) Unhide(ctx context.Context, actor Actor, id uuid.UUID) (LocationDTO, error) {
	return s.ownerSetStatus(ctx, actor, id, enums.LocationStatusPending)
}

func (s *service) ownerSetStatus(ctx context.Context, actor Actor, id uuid.UUID, target enums.LocationStatus) (LocationDTO, error) {
	var change *statusChange
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loc, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, "load location")
		}
		if err := visibility.EnsureOwnedBy(loc, actor.ID); err != nil {
			return err
		}
		change, err = transition(ctx, repo, loc, actor, target)
		return err
	})
	if err != nil {
		return LocationDTO{}, err
	}
	s.reportChange(ctx, id, actor, change)
	return s.loadView(ctx, id, viewOwner)
}

func (s *service) ListAll(ctx context.Context, status string, page pagination.Params) (types.PageEnvelope[LocationDTO], error) {
	filter, err := ParseStatusFilter(status)
	if err != nil {
		return types.PageEnvelope[LocationDTO]{}, err
	}
	q := listQuery{page: pagination.Moderation.Normalize(page)}
	if filter != nil {
		q.statuses = []enums.LocationStatus{*filter}
	}
	return s.list(ctx, q, viewAdmin)
}

func (s *service) GetAny(ctx context.Context, id uuid.UUID) (LocationDTO, error) {
	return s.loadView(ctx, id, viewAdmin)
}

// SetStatus is the single admin moderation entry point. Any moderation target
// is reachable from any status, so hidden locations can be restored and
// approved ones rejected. Setting the current status again records nothing.
func (s *service) SetStatus(ctx context.Context, actor Actor, id uuid.UUID, target string) (LocationDTO, error) {
	if !actor.Role.CanModerate() {
		return LocationDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "only admins can moderate locations")
	}
	to, err := ParseModerationTarget(target)
	if err != nil {
		return LocationDTO{}, err
	}

	var change *statusChange
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loc, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, "load location")
		}
		if loc.Status == to {
			return nil
		}
		change, err = transition(ctx, repo, loc, actor, to)
		return err
	})
	if err != nil {
		return LocationDTO{}, err
	}
	s.reportChange(ctx, id, actor, change)
	return s.loadView(ctx, id, viewAdmin)
}

// Delete removes a hidden location and everything attached to it.
func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.Role.CanModerate() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only admins can delete locations")
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loc, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, "load location")
		}
		if err := checkDeletable(loc.Status); err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return notFoundOr(err, "delete location")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"location_id": id.String(), "actor_id": actor.ID.String()})
	s.logg.Info(logCtx, "location.deleted")
	return nil
}

func (s *service) History(ctx context.Context, id uuid.UUID) ([]StatusEventDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "load location")
	}
	events, err := s.repo.ListStatusEvents(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list status events")
	}
	out := make([]StatusEventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toStatusEventDTO(event))
	}
	return out, nil
}

// transition writes the new status and its audit row. Callers hold the
// transaction; a same-status request is a no-op.
func transition(ctx context.Context, repo *Repository, loc *models.Location, actor Actor, to enums.LocationStatus) (*statusChange, error) {
	if loc.Status == to {
		return nil, nil
	}
	if err := repo.UpdateStatus(ctx, loc.ID, to); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
	}
	if err := appendEvent(ctx, repo, loc.ID, actor, loc.Status, to); err != nil {
		return nil, err
	}
	return &statusChange{from: loc.Status, to: to}, nil
}

func appendEvent(ctx context.Context, repo *Repository, id uuid.UUID, actor Actor, from, to enums.LocationStatus) error {
	event := &models.LocationStatusEvent{
		LocationID: id,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		FromStatus: from,
		ToStatus:   to,
	}
	if err := repo.AppendStatusEvent(ctx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record status event")
	}
	return nil
}

func (s *service) reportChange(ctx context.Context, id uuid.UUID, actor Actor, change *statusChange) {
	if change == nil {
		return
	}
	if s.metrics != nil {
		s.metrics.IncTransition(change.from.String(), change.to.String(), actor.Role.String())
	}
	logCtx := s.logg.WithFields(ctx, map[string]any{
		"location_id": id.String(),
		"actor_id":    actor.ID.String(),
		"actor_role":  actor.Role.String(),
		"from":        change.from.String(),
		"to":          change.to.String(),
	})
	s.logg.Info(logCtx, "location.status_changed")
}

func (s *service) linkFish(ctx context.Context, tx *gorm.DB, locationID uuid.UUID, names []string) error {
	fish, err := s.catalog.WithTx(tx).EnsureFish(ctx, names)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve fish")
	}
	ids := make([]uuid.UUID, 0, len(fish))
	for _, f := range fish {
		ids = append(ids, f.ID)
	}
	if err := s.repo.WithTx(tx).ReplaceFish(ctx, locationID, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "link fish")
	}
	return nil
}

func (s *service) linkSeasons(ctx context.Context, tx *gorm.DB, locationID uuid.UUID, codes []enums.SeasonCode) error {
	seasons, err := s.catalog.WithTx(tx).SeasonsByCodes(ctx, codes)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve seasons")
	}
	ids := make([]int, 0, len(seasons))
	for _, season := range seasons {
		ids = append(ids, season.ID)
	}
	if err := s.repo.WithTx(tx).ReplaceSeasons(ctx, locationID, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "link seasons")
	}
	return nil
}

func (s *service) list(ctx context.Context, q listQuery, v view) (types.PageEnvelope[LocationDTO], error) {
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return types.PageEnvelope[LocationDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list locations")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	ratings, err := s.repo.RatingsFor(ctx, ids)
	if err != nil {
		return types.PageEnvelope[LocationDTO]{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate ratings")
	}

	return types.NewPage(cards(rows, ratings, v), total, q.page.Page, q.page.Limit), nil
}

func (s *service) loadView(ctx context.Context, id uuid.UUID, v view) (LocationDTO, error) {
	loc, err := s.repo.LoadDetail(ctx, id)
	if err != nil {
		return LocationDTO{}, notFoundOr(err, "load location")
	}
	return s.withRating(ctx, loc, v)
}

func (s *service) withRating(ctx context.Context, loc *models.Location, v view) (LocationDTO, error) {
	ratings, err := s.repo.RatingsFor(ctx, []uuid.UUID{loc.ID})
	if err != nil {
		return LocationDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate ratings")
	}
	return toLocationDTO(loc, v, ratings[loc.ID]), nil
}
