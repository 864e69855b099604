package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/zxclownhd/fishing-app/api/responses"
	"github.com/zxclownhd/fishing-app/api/validators"
	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/internal/locations"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"github.com/zxclownhd/fishing-app/pkg/types"
)

const maxFilterLen = 64

// createLocationBody accepts lat/lng as JSON numbers or numeric strings.
type createLocationBody struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Region      string           `json:"region"`
	WaterType   string           `json:"waterType"`
	Lat         *decimal.Decimal `json:"lat"`
	Lng         *decimal.Decimal `json:"lng"`
	ContactInfo *string          `json:"contactInfo"`
	FishNames   []string         `json:"fishNames"`
	SeasonCodes []string         `json:"seasonCodes"`
	PhotoURLs   []string         `json:"photoUrls"`
}

func (b createLocationBody) toInput() (locations.CreateInput, error) {
	if b.Lat == nil || b.Lng == nil {
		return locations.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng are required").
			WithDetails(map[string]any{"field": "lat"})
	}
	return locations.CreateInput{
		Title:       b.Title,
		Description: b.Description,
		Region:      b.Region,
		WaterType:   b.WaterType,
		Lat:         *b.Lat,
		Lng:         *b.Lng,
		ContactInfo: b.ContactInfo,
		FishNames:   b.FishNames,
		SeasonCodes: b.SeasonCodes,
		PhotoURLs:   b.PhotoURLs,
	}, nil
}

// LocationsList is the public search over approved locations.
func LocationsList(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := locations.ListFilter{
			Region:    validators.QueryString(r, "region", maxFilterLen),
			WaterType: validators.QueryString(r, "waterType", maxFilterLen),
			Fish:      validators.ParseCSV(r, "fish"),
			Seasons:   validators.ParseCSV(r, "season", "seasons"),
		}
		result, err := svc.ListPublic(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func LocationsGet(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		loc, err := svc.GetPublic(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loc)
	}
}

func LocationsContact(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contact, err := svc.GetContact(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, contact)
	}
}

func LocationsCreate(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body createLocationBody
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), actorOf(p), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, created)
	}
}

func CatalogFish(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fish, err := svc.ListFish(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.NewList(fish))
	}
}

func CatalogSeasons(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasons, err := svc.ListSeasons(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.NewList(seasons))
	}
}
