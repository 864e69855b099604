package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/api/middleware"
	"github.com/zxclownhd/fishing-app/internal/locations"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
)

// pathUUID parses a uuid route parameter.
func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").
			WithDetails(map[string]any{"field": key})
	}
	return id, nil
}

// principal returns the authenticated caller; routes using it sit behind Auth.
func principal(r *http.Request) (middleware.Principal, error) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return middleware.Principal{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "Missing Bearer token")
	}
	return p, nil
}

func actorOf(p middleware.Principal) locations.Actor {
	return locations.Actor{ID: p.UserID, Role: p.Role}
}

func serviceUnavailable(name string) error {
	return pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable")
}
