package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpCapturesPgxDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "reviews_user_id_location_id_key",
		TableName:      "reviews",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeConflict, fmt.Errorf("insert review: %w", pgErr), "duplicate review")

	d := Dump(err)
	if d.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGConstraint != "reviews_user_id_location_id_key" {
		t.Fatalf("unexpected pg diagnostics %+v", d)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected three chain entries, got %d: %v", len(d.Chain), d.Chain)
	}

	fields := d.Fields()
	if fields["pg_table"] != "reviews" {
		t.Fatalf("expected pg_table field, got %v", fields)
	}
	if _, ok := fields["pg_column"]; ok {
		t.Fatalf("empty pg_column should be skipped")
	}
}

func TestDumpCapturesPqDiagnostics(t *testing.T) {
	d := Dump(&pq.Error{Code: "23505", Constraint: "users_email_key", Table: "users"})
	if d.PGCode != "23505" || d.PGConstraint != "users_email_key" || d.PGTable != "users" {
		t.Fatalf("unexpected pq diagnostics %+v", d)
	}
	if d.Code != "" {
		t.Fatalf("untyped error should not carry a code")
	}
	if _, ok := d.Fields()["error_code"]; ok {
		t.Fatalf("error_code should be omitted for untyped errors")
	}
}

func TestDumpNil(t *testing.T) {
	if d := Dump(nil); d.TopMessage != "" || d.Chain != nil {
		t.Fatalf("expected empty dump, got %+v", d)
	}
}
