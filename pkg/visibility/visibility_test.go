package visibility

import (
	"testing"

	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	"github.com/zxclownhd/fishing-app/pkg/errors"
)

func locationWithStatus(status enums.LocationStatus) *models.Location {
	return &models.Location{ID: uuid.New(), OwnerID: uuid.New(), Status: status}
}

func assertCode(t *testing.T, err error, code errors.Code) {
	t.Helper()
	typed := errors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error with code %s, got %v", code, err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestEnsurePubliclyVisible(t *testing.T) {
	if err := EnsurePubliclyVisible(locationWithStatus(enums.LocationStatusApproved)); err != nil {
		t.Fatalf("approved location should be visible: %v", err)
	}
	for _, status := range []enums.LocationStatus{
		enums.LocationStatusPending,
		enums.LocationStatusRejected,
		enums.LocationStatusHidden,
	} {
		assertCode(t, EnsurePubliclyVisible(locationWithStatus(status)), errors.CodeNotFound)
	}
	assertCode(t, EnsurePubliclyVisible(nil), errors.CodeNotFound)
}

func TestEnsureOwnedBy(t *testing.T) {
	loc := locationWithStatus(enums.LocationStatusPending)
	if err := EnsureOwnedBy(loc, loc.OwnerID); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}
	assertCode(t, EnsureOwnedBy(loc, uuid.New()), errors.CodeNotFound)
	assertCode(t, EnsureOwnedBy(nil, uuid.New()), errors.CodeNotFound)
}

func TestEnsureReviewable(t *testing.T) {
	if err := EnsureReviewable(locationWithStatus(enums.LocationStatusApproved)); err != nil {
		t.Fatalf("approved location should accept reviews: %v", err)
	}
	assertCode(t, EnsureReviewable(locationWithStatus(enums.LocationStatusPending)), errors.CodeForbidden)
	assertCode(t, EnsureReviewable(locationWithStatus(enums.LocationStatusHidden)), errors.CodeForbidden)
	assertCode(t, EnsureReviewable(nil), errors.CodeNotFound)
}
