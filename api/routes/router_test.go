package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zxclownhd/fishing-app/api/controllers"
	"github.com/zxclownhd/fishing-app/internal/auth"
	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/internal/favorites"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/internal/reviews"
	"github.com/zxclownhd/fishing-app/internal/testdb"
	"github.com/zxclownhd/fishing-app/internal/users"
	pkgAuth "github.com/zxclownhd/fishing-app/pkg/auth"
	"github.com/zxclownhd/fishing-app/pkg/auth/session"
	"github.com/zxclownhd/fishing-app/pkg/config"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"github.com/zxclownhd/fishing-app/pkg/metrics"
	redisclient "github.com/zxclownhd/fishing-app/pkg/redis"
	"github.com/zxclownhd/fishing-app/pkg/security"
)

type app struct {
	handler  http.Handler
	conn     *gorm.DB
	sessions *session.Manager
	cfg      *config.Config
}

func newApp(t *testing.T) app {
	t.Helper()

	cfg := &config.Config{
		App:  config.AppConfig{Env: "test"},
		JWT:  config.JWTConfig{Secret: "secret", Issuer: "fishing-app", ExpirationMinutes: 60, RefreshTokenTTLMinutes: 120},
		CORS: config.CORSConfig{Origins: []string{"http://localhost:5173"}},
	}
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	client, conn := testdb.Client(t)
	mr := miniredis.RunT(t)
	raw := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = raw.Close() })
	rdb := redisclient.Wrap(raw)

	sessions, err := session.NewManager(rdb, cfg.JWT)
	require.NoError(t, err)

	hasher := security.NewHasher(config.PasswordConfig{ArgonMemoryKB: 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32})
	userRepo := users.NewRepository(conn)
	locationRepo := locations.NewRepository(conn)
	catalogRepo := catalog.NewRepository(conn)

	reg := prometheus.NewRegistry()

	authSvc, err := auth.NewService(auth.ServiceParams{UserRepo: userRepo, Hasher: hasher, SessionManager: sessions, JWTConfig: cfg.JWT})
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(catalogRepo)
	require.NoError(t, err)
	locationSvc, err := locations.NewService(locations.ServiceParams{
		TxRunner:    client,
		Repo:        locationRepo,
		CatalogRepo: catalogRepo,
		Metrics:     metrics.NewModerationMetrics(reg),
		Logger:      logg,
	})
	require.NoError(t, err)
	reviewSvc, err := reviews.NewService(reviews.ServiceParams{ReviewRepo: reviews.NewRepository(conn), LocationRepo: locationRepo})
	require.NoError(t, err)
	favoriteSvc, err := favorites.NewService(favorites.ServiceParams{FavoriteRepo: favorites.NewRepository(conn), LocationRepo: locationRepo})
	require.NoError(t, err)

	profileSvc, err := users.NewProfileService(users.ProfileServiceParams{Repo: userRepo, Hasher: hasher, Sessions: sessions})
	require.NoError(t, err)

	handler := NewRouter(Deps{
		Config:    cfg,
		Logger:    logg,
		Sessions:  sessions,
		Ready:     map[string]controllers.Pinger{"db": client, "redis": rdb},
		Metrics:   metrics.NewHTTPMetrics(reg),
		Gatherer:  reg,
		Auth:      authSvc,
		Profile:   profileSvc,
		Catalog:   catalogSvc,
		Locations: locationSvc,
		Reviews:   reviewSvc,
		Favorites: favoriteSvc,
	})
	return app{handler: handler, conn: conn, sessions: sessions, cfg: cfg}
}

func (a app) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	a.handler.ServeHTTP(resp, req)
	return resp
}

// tokenFor mints a token with a live session for a user created directly in the database.
func (a app) tokenFor(t *testing.T, role enums.Role) string {
	t.Helper()
	user := testdb.MustCreateUser(t, a.conn, role)
	jti := session.NewAccessID()
	_, err := a.sessions.Generate(context.Background(), user.ID.String(), jti)
	require.NoError(t, err)
	token, err := pkgAuth.MintAccessToken(a.cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Role:   role,
		Email:  user.Email,
		JTI:    jti,
	})
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return out
}

type pageBody struct {
	Items []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"items"`
	Total int64 `json:"total"`
}

const lakeBody = `{"title":"Quiet lake","description":"Reeds on the north bank","region":"KYIV","waterType":"LAKE",
	"lat":50.45,"lng":30.52,"fishNames":["Pike"],"seasonCodes":["SPRING"],"photoUrls":["https://img.example/1.jpg"]}`

func TestLocationLifecycle(t *testing.T) {
	a := newApp(t)

	resp := a.do(t, http.MethodPost, "/auth/register", "", `{"email":"owner@example.com","password":"long-enough","role":"OWNER"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	ownerToken := decode[auth.AuthResponse](t, resp).Token

	resp = a.do(t, http.MethodPost, "/locations", ownerToken, lakeBody)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	created := decode[locations.LocationDTO](t, resp)
	assert.Equal(t, enums.LocationStatusPending, created.Status)
	id := created.ID.String()

	resp = a.do(t, http.MethodGet, "/locations", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 0, decode[pageBody](t, resp).Total)

	adminToken := a.tokenFor(t, enums.RoleAdmin)
	resp = a.do(t, http.MethodPatch, "/admin/locations/"+id+"/approve", adminToken, "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = a.do(t, http.MethodGet, "/locations", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	page := decode[pageBody](t, resp)
	require.EqualValues(t, 1, page.Total)
	assert.Equal(t, id, page.Items[0].ID)

	resp = a.do(t, http.MethodPatch, "/owner/locations/"+id, ownerToken, `{"description":"New jetty"}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, enums.LocationStatusPending, decode[locations.LocationDTO](t, resp).Status)

	resp = a.do(t, http.MethodGet, "/locations", "", "")
	assert.EqualValues(t, 0, decode[pageBody](t, resp).Total)

	resp = a.do(t, http.MethodGet, "/admin/locations/"+id+"/history", adminToken, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.GreaterOrEqual(t, decode[struct {
		Total int `json:"total"`
	}](t, resp).Total, 2)
}

func TestRegionValidationListsAllowedCodes(t *testing.T) {
	a := newApp(t)
	resp := a.do(t, http.MethodGet, "/locations?region=ATLANTIS", "", "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "KYIV")
}

func TestRoleGates(t *testing.T) {
	a := newApp(t)
	userToken := a.tokenFor(t, enums.RoleUser)
	adminToken := a.tokenFor(t, enums.RoleAdmin)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"guest cannot favorite", http.MethodGet, "/favorites", "", "", http.StatusUnauthorized},
		{"user cannot create location", http.MethodPost, "/locations", userToken, lakeBody, http.StatusForbidden},
		{"admin cannot favorite", http.MethodPost, "/favorites/0190a3c4-0000-7000-8000-000000000000", adminToken, "", http.StatusForbidden},
		{"user cannot moderate", http.MethodGet, "/admin/locations", userToken, "", http.StatusForbidden},
		{"admin cannot use owner area", http.MethodGet, "/owner/locations", adminToken, "", http.StatusForbidden},
		{"contact requires auth", http.MethodGet, "/locations/0190a3c4-0000-7000-8000-000000000000/contact", "", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/me", "not-a-jwt", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := a.do(t, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.want, resp.Code, resp.Body.String())
		})
	}
}

func TestCatalogRoutesAreNotShadowedByID(t *testing.T) {
	a := newApp(t)
	resp := a.do(t, http.MethodGet, "/locations/seasons", "", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	body := decode[struct {
		Items []catalog.SeasonDTO `json:"items"`
		Total int                 `json:"total"`
	}](t, resp)
	assert.Equal(t, 4, body.Total)
	assert.Equal(t, enums.SeasonSpring, body.Items[0].Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	a := newApp(t)
	token := a.tokenFor(t, enums.RoleUser)

	resp := a.do(t, http.MethodGet, "/me", token, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = a.do(t, http.MethodPost, "/auth/logout", token, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = a.do(t, http.MethodGet, "/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)

	resp := a.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true}`, resp.Body.String())

	resp = a.do(t, http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = a.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `http_requests_total{method="GET",route="/health/ready",status="200"}`)
}
