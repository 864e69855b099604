package db

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zxclownhd/fishing-app/pkg/logger"
)

func newLoggedDB(t *testing.T, slow time.Duration) (*gorm.DB, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "db-test", Output: buf, Format: logger.FormatJSON})
	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), gormConfig(logg, slow))
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&catchRecord{}))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	buf.Reset()
	return conn, buf
}

func TestQueryLoggerReportsFailuresButNotExpectedOutcomes(t *testing.T) {
	conn, buf := newLoggedDB(t, 0)
	ctx := context.Background()

	require.NoError(t, conn.WithContext(ctx).Create(&catchRecord{Name: "pike"}).Error)
	require.Error(t, conn.WithContext(ctx).Create(&catchRecord{Name: "pike"}).Error)
	var missing catchRecord
	require.ErrorIs(t, conn.WithContext(ctx).First(&missing, "name = ?", "zander").Error, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "duplicates and missing rows are not failures")

	require.Error(t, conn.WithContext(ctx).Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), "db.query.failed")
	assert.Contains(t, buf.String(), "no_such_table")
}

func TestQueryLoggerFlagsSlowStatements(t *testing.T) {
	conn, buf := newLoggedDB(t, time.Nanosecond)
	var count int64
	require.NoError(t, conn.Model(&catchRecord{}).Count(&count).Error)
	assert.Contains(t, buf.String(), "db.query.slow")
	assert.Contains(t, buf.String(), "elapsed_ms")
}

func TestQueryLoggerWithoutLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = newQueryLogger(nil, time.Second).LogMode(4)
	})
}
