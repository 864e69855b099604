package locations

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"github.com/zxclownhd/fishing-app/pkg/pagination"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	fishExistsClause   = "EXISTS (SELECT 1 FROM location_fish lf JOIN fish f ON f.id = lf.fish_id WHERE lf.location_id = locations.id AND f.name IN ?)"
	seasonExistsClause = "EXISTS (SELECT 1 FROM location_seasons ls JOIN seasons s ON s.id = ls.season_id WHERE ls.location_id = locations.id AND s.code IN ?)"
)

// ListFilter carries the raw search dimensions of the public listing.
type ListFilter struct {
	Region    string
	WaterType string
	Fish      []string
	Seasons   []string
}

// listQuery is a validated filter set. Every populated dimension narrows the
// result (logical AND); multi-valued dimensions match any of their values.
type listQuery struct {
	statuses  []enums.LocationStatus
	ownerID   *uuid.UUID
	region    *enums.Region
	waterType string
	fish      []string
	seasons   []string
	page      pagination.Params
}

func publicQuery(filter ListFilter, page pagination.Params) (listQuery, error) {
	q := listQuery{
		statuses:  []enums.LocationStatus{enums.LocationStatusApproved},
		waterType: strings.TrimSpace(filter.WaterType),
		fish:      nonEmpty(filter.Fish, false),
		seasons:   nonEmpty(filter.Seasons, true),
		page:      pagination.Public.Normalize(page),
	}
	if raw := strings.TrimSpace(filter.Region); raw != "" {
		region, err := enums.ParseRegion(raw)
		if err != nil {
			return listQuery{}, invalidRegion()
		}
		q.region = &region
	}
	return q, nil
}

func invalidRegion() error {
	return pkgerrors.InvalidChoice("region", enums.Regions())
}

func nonEmpty(values []string, upper bool) []string {
	out := make([]string, 0, len(values))
	for _, raw := range values {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if upper {
			value = strings.ToUpper(value)
		}
		out = append(out, value)
	}
	return out
}

func (q listQuery) apply(db *gorm.DB) *gorm.DB {
	if q.ownerID != nil {
		db = db.Where("locations.owner_id = ?", *q.ownerID)
	}
	if len(q.statuses) > 0 {
		db = db.Where("locations.status IN ?", q.statuses)
	}
	if q.region != nil {
		db = db.Where("locations.region = ?", *q.region)
	}
	if q.waterType != "" {
		db = db.Where("locations.water_type = ?", q.waterType)
	}
	if len(q.fish) > 0 {
		db = db.Where(fishExistsClause, q.fish)
	}
	if len(q.seasons) > 0 {
		db = db.Where(seasonExistsClause, q.seasons)
	}
	return db
}

// List returns one page of matching locations, newest first, together with
// the total number of matches. The page and the count run concurrently.
func (r *Repository) List(ctx context.Context, q listQuery) ([]models.Location, int64, error) {
	var (
		items []models.Location
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return q.apply(r.db.WithContext(gctx).Model(&models.Location{})).Count(&total).Error
	})
	g.Go(func() error {
		return withRelations(q.apply(r.db.WithContext(gctx).Model(&models.Location{}))).
			Order("locations.created_at DESC").
			Order("locations.id DESC").
			Offset(q.page.Offset()).
			Limit(q.page.Limit).
			Find(&items).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
