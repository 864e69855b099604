package locations

import (
	"strings"

	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
)

var moderationTargets = []enums.LocationStatus{
	enums.LocationStatusApproved,
	enums.LocationStatusRejected,
	enums.LocationStatusHidden,
}

// ModerationTargets lists the statuses an admin may set directly.
func ModerationTargets() []enums.LocationStatus {
	out := make([]enums.LocationStatus, len(moderationTargets))
	copy(out, moderationTargets)
	return out
}

// ParseModerationTarget accepts only APPROVED, REJECTED or HIDDEN.
func ParseModerationTarget(raw string) (enums.LocationStatus, error) {
	normalized := enums.LocationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, target := range moderationTargets {
		if target == normalized {
			return target, nil
		}
	}
	return "", pkgerrors.InvalidChoice("status", ModerationTargets())
}

// ParseStatusFilter validates the optional status query of moderation listings.
func ParseStatusFilter(raw string) (*enums.LocationStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	status, err := enums.ParseLocationStatus(strings.ToUpper(raw))
	if err != nil {
		return nil, pkgerrors.InvalidChoice("status", enums.LocationStatuses())
	}
	return &status, nil
}

// statusAfterOwnerEdit returns the status a location takes after its owner
// changes it. Approved content goes back to the moderation queue.
func statusAfterOwnerEdit(current enums.LocationStatus) enums.LocationStatus {
	switch current {
	case enums.LocationStatusApproved:
		return enums.LocationStatusPending
	case enums.LocationStatusPending, enums.LocationStatusRejected, enums.LocationStatusHidden:
		return current
	}
	return current
}

// checkDeletable allows removal of hidden locations only.
func checkDeletable(status enums.LocationStatus) error {
	switch status {
	case enums.LocationStatusHidden:
		return nil
	case enums.LocationStatusPending, enums.LocationStatusApproved, enums.LocationStatusRejected:
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "Only hidden locations can be deleted").
		WithDetails(map[string]any{"status": status})
}
