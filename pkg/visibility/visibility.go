package visibility

import (
	"github.com/google/uuid"
	"github.com/zxclownhd/fishing-app/pkg/db/models"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
)

// IsPublic reports whether a location in the given status may be shown to guests.
func IsPublic(status enums.LocationStatus) bool {
	switch status {
	case enums.LocationStatusApproved:
		return true
	case enums.LocationStatusPending, enums.LocationStatusRejected, enums.LocationStatusHidden:
		return false
	}
	return false
}

// EnsurePubliclyVisible hides every non-approved location behind a not-found.
func EnsurePubliclyVisible(loc *models.Location) error {
	if loc == nil || !IsPublic(loc.Status) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Location not found")
	}
	return nil
}

// EnsureOwnedBy reports foreign locations as not found so ownership does not
// reveal existence.
func EnsureOwnedBy(loc *models.Location, ownerID uuid.UUID) error {
	if loc == nil || loc.OwnerID != ownerID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Location not found")
	}
	return nil
}

// EnsureReviewable requires an existing location that is currently approved.
func EnsureReviewable(loc *models.Location) error {
	if loc == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Location not found")
	}
	if !IsPublic(loc.Status) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "You can review only APPROVED locations")
	}
	return nil
}
