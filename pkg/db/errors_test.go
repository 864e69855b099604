package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig(nil, 0))
	require.NoError(t, err)
	return conn, mock
}

func TestWithTx_PostgresUniqueViolationRollsBack(t *testing.T) {
	conn, mock := setupMockDB(t)
	client := Wrap(conn)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").WillReturnError(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "users_display_name_key",
		Message:        "duplicate key value violates unique constraint \"users_display_name_key\"",
	})
	mock.ExpectRollback()

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("UPDATE users SET display_name = ? WHERE id = ?", "pike_master", "u-1").Error
	})

	require.Error(t, err)
	require.True(t, IsUniqueViolation(err, "display_name"))
	require.False(t, IsUniqueViolation(err, "email"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		hints []string
		want  bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "pgconn without hint", err: &pgconn.PgError{Code: "23505", ConstraintName: "reviews_user_id_location_id_key"}, want: true},
		{name: "pgconn hint matches", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, hints: []string{"email"}, want: true},
		{name: "pgconn other code", err: &pgconn.PgError{Code: "23503", ConstraintName: "users_email_key"}, want: false},
		{name: "pgconn wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "favorites_user_id_location_id_key"}), hints: []string{"favorites"}, want: true},
		{name: "pq hint matches", err: &pq.Error{Code: "23505", Constraint: "users_display_name_key"}, hints: []string{"display_name"}, want: true},
		{name: "pq hint mismatch", err: &pq.Error{Code: "23505", Constraint: "users_display_name_key"}, hints: []string{"email"}, want: false},
		{name: "sqlite text", err: errors.New("UNIQUE constraint failed: reviews.user_id, reviews.location_id"), hints: []string{"reviews"}, want: true},
		{name: "plain text", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.hints...))
		})
	}
}
