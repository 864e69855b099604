package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zxclownhd/fishing-app/api/responses"
	"github.com/zxclownhd/fishing-app/api/validators"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"github.com/zxclownhd/fishing-app/pkg/types"
)

// updateLocationBody mirrors the owner edit. Absent keys are left alone;
// contactInfo distinguishes absent from null.
type updateLocationBody struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Region      *string                `json:"region"`
	WaterType   *string                `json:"waterType"`
	Lat         *decimal.Decimal       `json:"lat"`
	Lng         *decimal.Decimal       `json:"lng"`
	ContactInfo types.Nullable[string] `json:"contactInfo"`
	FishNames   *[]string              `json:"fishNames"`
	SeasonCodes *[]string              `json:"seasonCodes"`
	PhotoURLs   *[]string              `json:"photoUrls"`
}

func (b updateLocationBody) toInput() locations.UpdateInput {
	return locations.UpdateInput{
		Title:       b.Title,
		Description: b.Description,
		Region:      b.Region,
		WaterType:   b.WaterType,
		Lat:         b.Lat,
		Lng:         b.Lng,
		ContactInfo: b.ContactInfo,
		FishNames:   b.FishNames,
		SeasonCodes: b.SeasonCodes,
		PhotoURLs:   b.PhotoURLs,
	}
}

func OwnerList(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListOwned(r.Context(), p.UserID, validators.QueryString(r, "status", maxFilterLen), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func OwnerGet(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		loc, err := svc.GetOwned(r.Context(), p.UserID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loc)
	}
}

func OwnerUpdate(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateLocationBody
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		loc, err := svc.UpdateOwned(r.Context(), actorOf(p), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loc)
	}
}

// OwnerHide and OwnerUnhide share this shape.
func ownerToggle(
	logg *logger.Logger,
	apply func(r *http.Request, actor locations.Actor, id uuid.UUID) (locations.LocationDTO, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		loc, err := apply(r, actorOf(p), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loc)
	}
}

func OwnerHide(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return ownerToggle(logg, func(r *http.Request, actor locations.Actor, id uuid.UUID) (locations.LocationDTO, error) {
		return svc.Hide(r.Context(), actor, id)
	})
}

func OwnerUnhide(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return ownerToggle(logg, func(r *http.Request, actor locations.Actor, id uuid.UUID) (locations.LocationDTO, error) {
		return svc.Unhide(r.Context(), actor, id)
	})
}
