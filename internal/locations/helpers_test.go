package locations

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/zxclownhd/fishing-app/internal/catalog"
	"github.com/zxclownhd/fishing-app/internal/testdb"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"github.com/zxclownhd/fishing-app/pkg/logger"
	"gorm.io/gorm"
)

type transitionRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *transitionRecorder) IncTransition(from, to, actor string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("%s>%s:%s", from, to, actor))
}

func (r *transitionRecorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func newTestService(t *testing.T) (Service, *gorm.DB, *transitionRecorder) {
	t.Helper()
	client, conn := testdb.Client(t)
	recorder := &transitionRecorder{}
	svc, err := NewService(ServiceParams{
		TxRunner:    client,
		Repo:        NewRepository(conn),
		CatalogRepo: catalog.NewRepository(conn),
		Metrics:     recorder,
		Logger:      logger.New(logger.Options{ServiceName: "locations-test", Output: io.Discard}),
	})
	require.NoError(t, err)
	return svc, conn, recorder
}

func ownerActor(user *models.User) Actor {
	return Actor{ID: user.ID, Role: enums.RoleOwner}
}

func adminActor(user *models.User) Actor {
	return Actor{ID: user.ID, Role: enums.RoleAdmin}
}

func validCreateInput() CreateInput {
	contact := "  +380 67 123 4567 "
	return CreateInput{
		Title:       " Quiet bay ",
		Description: "Reed beds on the east shore",
		Region:      "kyiv",
		WaterType:   "LAKE",
		Lat:         decimal.RequireFromString("50.450100"),
		Lng:         decimal.RequireFromString("30.523400"),
		ContactInfo: &contact,
		FishNames:   []string{"Pike", "Carp", "Pike"},
		SeasonCodes: []string{"SPRING", "MONSOON"},
		PhotoURLs:   []string{"https://img.example/a.jpg", "  "},
	}
}

func statusOf(t *testing.T, conn *gorm.DB, id uuid.UUID) enums.LocationStatus {
	t.Helper()
	var loc models.Location
	require.NoError(t, conn.Where("id = ?", id).First(&loc).Error)
	return loc.Status
}

func countRows(t *testing.T, conn *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(model).Where(where, args...).Count(&count).Error)
	return count
}

func photoURLs(t *testing.T, conn *gorm.DB, id uuid.UUID) []string {
	t.Helper()
	var urls []string
	require.NoError(t, conn.Model(&models.Photo{}).Where("location_id = ?", id).Order("url ASC").Pluck("url", &urls).Error)
	return urls
}
