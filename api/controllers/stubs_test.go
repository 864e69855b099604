package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/api/middleware"
	"github.com/zxclownhd/fishing-app/internal/auth"
	"github.com/zxclownhd/fishing-app/internal/favorites"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/internal/reviews"
	"github.com/zxclownhd/fishing-app/internal/users"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"github.com/zxclownhd/fishing-app/pkg/pagination"
	"github.com/zxclownhd/fishing-app/pkg/types"
)

// stubLocations records the last call and returns canned results.
type stubLocations struct {
	err error

	filter   locations.ListFilter
	page     pagination.Params
	status   string
	actor    locations.Actor
	id       uuid.UUID
	create   locations.CreateInput
	update   locations.UpdateInput
	target   string
	deleted  bool
	location locations.LocationDTO
}

func (s *stubLocations) pageResult() (types.PageEnvelope[locations.LocationDTO], error) {
	return types.NewPage([]locations.LocationDTO{s.location}, 1, 1, 10), s.err
}

func (s *stubLocations) ListPublic(_ context.Context, filter locations.ListFilter, page pagination.Params) (types.PageEnvelope[locations.LocationDTO], error) {
	s.filter, s.page = filter, page
	return s.pageResult()
}

func (s *stubLocations) GetPublic(_ context.Context, id uuid.UUID) (locations.LocationDTO, error) {
	s.id = id
	return s.location, s.err
}

func (s *stubLocations) GetContact(_ context.Context, id uuid.UUID) (locations.ContactDTO, error) {
	s.id = id
	return locations.ContactDTO{ContactInfo: s.location.ContactInfo}, s.err
}

func (s *stubLocations) Create(_ context.Context, actor locations.Actor, input locations.CreateInput) (locations.LocationDTO, error) {
	s.actor, s.create = actor, input
	return s.location, s.err
}

func (s *stubLocations) ListOwned(_ context.Context, ownerID uuid.UUID, status string, page pagination.Params) (types.PageEnvelope[locations.LocationDTO], error) {
	s.id, s.status, s.page = ownerID, status, page
	return s.pageResult()
}

func (s *stubLocations) GetOwned(_ context.Context, ownerID, id uuid.UUID) (locations.LocationDTO, error) {
	s.actor.ID, s.id = ownerID, id
	return s.location, s.err
}

func (s *stubLocations) UpdateOwned(_ context.Context, actor locations.Actor, id uuid.UUID, input locations.UpdateInput) (locations.LocationDTO, error) {
	s.actor, s.id, s.update = actor, id, input
	return s.location, s.err
}

func (s *stubLocations) Hide(_ context.Context, actor locations.Actor, id uuid.UUID) (locations.LocationDTO, error) {
	s.actor, s.id, s.target = actor, id, string(enums.LocationStatusHidden)
	return s.location, s.err
}

func (s *stubLocations) Unhide(_ context.Context, actor locations.Actor, id uuid.UUID) (locations.LocationDTO, error) {
	s.actor, s.id, s.target = actor, id, string(enums.LocationStatusPending)
	return s.location, s.err
}

func (s *stubLocations) ListAll(_ context.Context, status string, page pagination.Params) (types.PageEnvelope[locations.LocationDTO], error) {
	s.status, s.page = status, page
	return s.pageResult()
}

func (s *stubLocations) GetAny(_ context.Context, id uuid.UUID) (locations.LocationDTO, error) {
	s.id = id
	return s.location, s.err
}

func (s *stubLocations) SetStatus(_ context.Context, actor locations.Actor, id uuid.UUID, target string) (locations.LocationDTO, error) {
	s.actor, s.id, s.target = actor, id, target
	return s.location, s.err
}

func (s *stubLocations) Delete(_ context.Context, actor locations.Actor, id uuid.UUID) error {
	s.actor, s.id, s.deleted = actor, id, true
	return s.err
}

func (s *stubLocations) History(_ context.Context, id uuid.UUID) ([]locations.StatusEventDTO, error) {
	s.id = id
	return nil, s.err
}

type stubReviews struct {
	err    error
	input  reviews.CreateInput
	userID uuid.UUID
}

func (s *stubReviews) Create(_ context.Context, userID uuid.UUID, _ enums.Role, _ uuid.UUID, input reviews.CreateInput) (reviews.ReviewDTO, error) {
	s.userID, s.input = userID, input
	return reviews.ReviewDTO{Rating: input.Rating, Comment: input.Comment}, s.err
}

func (s *stubReviews) ListForLocation(context.Context, uuid.UUID) (types.ListEnvelope[reviews.ReviewDTO], error) {
	return types.NewList[reviews.ReviewDTO](nil), s.err
}

type stubFavorites struct {
	err     error
	removed bool
	page    pagination.Params
}

func (s *stubFavorites) Add(_ context.Context, _ uuid.UUID, _ enums.Role, locationID uuid.UUID) (favorites.FavoriteDTO, error) {
	return favorites.FavoriteDTO{LocationID: locationID}, s.err
}

func (s *stubFavorites) Remove(context.Context, uuid.UUID, enums.Role, uuid.UUID) (favorites.RemoveResult, error) {
	return favorites.RemoveResult{Removed: s.removed}, s.err
}

func (s *stubFavorites) List(_ context.Context, _ uuid.UUID, _ enums.Role, page pagination.Params) (types.PageEnvelope[locations.LocationDTO], error) {
	s.page = page
	return types.NewPage[locations.LocationDTO](nil, 0, 1, 12).WithPages(0), s.err
}

type stubAuth struct {
	err       error
	register  auth.RegisterRequest
	access    string
	refresh   string
	loggedOut string
}

func (s *stubAuth) Register(_ context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	s.register = req
	if s.err != nil {
		return nil, s.err
	}
	return &auth.AuthResponse{User: &users.UserDTO{Email: req.Email}, Token: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuth) Login(context.Context, auth.LoginRequest) (*auth.AuthResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &auth.AuthResponse{Token: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuth) Refresh(_ context.Context, accessToken, refreshToken string) (*auth.TokenPair, error) {
	s.access, s.refresh = accessToken, refreshToken
	if s.err != nil {
		return nil, s.err
	}
	return &auth.TokenPair{Token: "new-access", RefreshToken: "new-refresh"}, nil
}

func (s *stubAuth) Logout(_ context.Context, _ uuid.UUID, accessID string) error {
	s.loggedOut = accessID
	return s.err
}

type stubProfile struct {
	err      error
	password users.ChangePasswordInput
}

func (s *stubProfile) Get(_ context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID}, s.err
}

func (s *stubProfile) UpdateDisplayName(_ context.Context, userID uuid.UUID, name string) (*users.UserDTO, error) {
	return &users.UserDTO{ID: userID, DisplayName: &name}, s.err
}

func (s *stubProfile) ChangePassword(_ context.Context, _ uuid.UUID, input users.ChangePasswordInput) error {
	s.password = input
	return s.err
}

// serve routes a single request through a chi router so URL params resolve,
// with the principal injected when given.
func serve(t *testing.T, method, pattern, target string, body string, p *middleware.Principal, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if p != nil {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), *p))
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var env types.ErrorEnvelope
	decodeBody(t, resp, &env)
	return env.Error.Code
}

func owner() *middleware.Principal {
	return &middleware.Principal{UserID: uuid.New(), Role: enums.RoleOwner, AccessID: "jti-owner"}
}

func admin() *middleware.Principal {
	return &middleware.Principal{UserID: uuid.New(), Role: enums.RoleAdmin, AccessID: "jti-admin"}
}

func serveWithHeader(t *testing.T, method, target, body, authorization string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}
