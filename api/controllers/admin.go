package controllers

import (
	"net/http"

	"github.com/zxclownhd/fishing-app/api/responses"
	"github.com/zxclownhd/fishing-app/api/validators"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"github.com/zxclownhd/fishing-app/pkg/types"
)

type setStatusBody struct {
	Status string `json:"status"`
}

func AdminList(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListAll(r.Context(), validators.QueryString(r, "status", maxFilterLen), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminGet(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		loc, err := svc.GetAny(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loc)
	}
}

// AdminSetStatus applies a moderation decision read from the body.
func AdminSetStatus(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return adminDecision(svc, logg, func(w http.ResponseWriter, r *http.Request) (string, error) {
		var body setStatusBody
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			return "", err
		}
		return body.Status, nil
	})
}

// AdminStatusShortcut applies a fixed decision (approve, reject, hide).
func AdminStatusShortcut(svc locations.Service, target enums.LocationStatus, logg *logger.Logger) http.HandlerFunc {
	return adminDecision(svc, logg, func(http.ResponseWriter, *http.Request) (string, error) {
		return string(target), nil
	})
}

func adminDecision(svc locations.Service, logg *logger.Logger, target func(http.ResponseWriter, *http.Request) (string, error)) http.HandlerFunc {
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
		status, err := target(w, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		loc, err := svc.SetStatus(r.Context(), actorOf(p), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loc)
	}
}

func AdminDelete(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
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
		if err := svc.Delete(r.Context(), actorOf(p), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteOK(w)
	}
}

func AdminHistory(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		events, err := svc.History(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.NewList(events))
	}
}
