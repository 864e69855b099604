package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zxclownhd/fishing-app/internal/locations"
	"github.com/zxclownhd/fishing-app/internal/testdb"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
	"github.com/zxclownhd/fishing-app/pkg/pagination"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := testdb.Open(t)
	svc, err := NewService(ServiceParams{
		FavoriteRepo: NewRepository(conn),
		LocationRepo: locations.NewRepository(conn),
	})
	require.NoError(t, err)
	return svc, conn
}

func favoriteCount(t *testing.T, conn *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestAddIsIdempotent(t *testing.T) {
	svc, conn := newTestService(t)
	owner := testdb.MustCreateUser(t, conn, enums.RoleOwner)
	user := testdb.MustCreateUser(t, conn, enums.RoleUser)
	loc := testdb.MustCreateLocation(t, conn, owner.ID, enums.LocationStatusApproved)

	first, err := svc.Add(context.Background(), user.ID, user.Role, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, loc.ID, first.LocationID)

	second, err := svc.Add(context.Background(), user.ID, user.Role, loc.ID)
	require.NoError(t, err)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.EqualValues(t, 1, favoriteCount(t, conn, user.ID))
}

func TestAddRequiresApprovedLocation(t *testing.T) {
	svc, conn := newTestService(t)
	owner := testdb.MustCreateUser(t, conn, enums.RoleOwner)
	user := testdb.MustCreateUser(t, conn, enums.RoleUser)
	pending := testdb.MustCreateLocation(t, conn, owner.ID, enums.LocationStatusPending)

	_, err := svc.Add(context.Background(), user.ID, user.Role, pending.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.Add(context.Background(), user.ID, user.Role, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Zero(t, favoriteCount(t, conn, user.ID))
}

func TestRemoveReportsExistence(t *testing.T) {
	svc, conn := newTestService(t)
	owner := testdb.MustCreateUser(t, conn, enums.RoleOwner)
	user := testdb.MustCreateUser(t, conn, enums.RoleUser)
	loc := testdb.MustCreateLocation(t, conn, owner.ID, enums.LocationStatusApproved)

	_, err := svc.Add(context.Background(), user.ID, user.Role, loc.ID)
	require.NoError(t, err)

	res, err := svc.Remove(context.Background(), user.ID, user.Role, loc.ID)
	require.NoError(t, err)
	assert.True(t, res.Removed)

	res, err = svc.Remove(context.Background(), user.ID, user.Role, loc.ID)
	require.NoError(t, err)
	assert.False(t, res.Removed)
}

func TestAdminsCannotFavorite(t *testing.T) {
	svc, conn := newTestService(t)
	admin := testdb.MustCreateUser(t, conn, enums.RoleAdmin)

	_, err := svc.Add(context.Background(), admin.ID, admin.Role, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	_, err = svc.Remove(context.Background(), admin.ID, admin.Role, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
	_, err = svc.List(context.Background(), admin.ID, admin.Role, pagination.Params{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
}

func TestListNewestBookmarkFirstAndSkipsHidden(t *testing.T) {
	svc, conn := newTestService(t)
	owner := testdb.MustCreateUser(t, conn, enums.RoleOwner)
	user := testdb.MustCreateUser(t, conn, enums.RoleUser)

	base := time.Now().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		loc := testdb.MustCreateLocation(t, conn, owner.ID, enums.LocationStatusApproved)
		testdb.MustAttachPhotos(t, conn, loc.ID, "https://img.example.com/a.jpg", "https://img.example.com/b.jpg")
		_, err := svc.Add(context.Background(), user.ID, user.Role, loc.ID)
		require.NoError(t, err)
		require.NoError(t, conn.Model(&models.Favorite{}).
			Where("user_id = ? AND location_id = ?", user.ID, loc.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
		ids = append(ids, loc.ID)
	}
	testdb.MustCreateReview(t, conn, ids[2], owner.ID, 4)

	// A bookmarked location that is later hidden drops out of the listing.
	require.NoError(t, conn.Model(&models.Location{}).Where("id = ?", ids[0]).
		Update("status", enums.LocationStatusHidden).Error)

	page, err := svc.List(context.Background(), user.ID, user.Role, pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.NotNil(t, page.Pages)
	assert.Equal(t, 2, *page.Pages)
	assert.Equal(t, 1, page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, ids[2], page.Items[0].ID)
	assert.Len(t, page.Items[0].Photos, 1)
	assert.Nil(t, page.Items[0].ContactInfo)
	require.NotNil(t, page.Items[0].AvgRating)
	assert.InDelta(t, 4.0, *page.Items[0].AvgRating, 0.001)

	second, err := svc.List(context.Background(), user.ID, user.Role, pagination.Params{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, ids[1], second.Items[0].ID)

	defaults, err := svc.List(context.Background(), user.ID, user.Role, pagination.Params{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, pagination.Favorites.MaxLimit, defaults.Limit)
}

func TestPageLocationIDsStopsOnCancelledContext(t *testing.T) {
	conn := testdb.Open(t)
	repo := NewRepository(conn)
	user := testdb.MustCreateUser(t, conn, enums.RoleUser)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ids, total, err := repo.PageLocationIDs(ctx, user.ID, pagination.Params{Page: 1, Limit: 12})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, ids)
	assert.Zero(t, total)
}
