package enums

import "fmt"

// LocationStatus is the moderation state of a location.
type LocationStatus string

const (
	LocationStatusPending  LocationStatus = "PENDING"
	LocationStatusApproved LocationStatus = "APPROVED"
	LocationStatusRejected LocationStatus = "REJECTED"
	LocationStatusHidden   LocationStatus = "HIDDEN"
)

var validLocationStatuses = []LocationStatus{
	LocationStatusPending,
	LocationStatusApproved,
	LocationStatusRejected,
	LocationStatusHidden,
}

// String implements fmt.Stringer.
func (s LocationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known LocationStatus.
func (s LocationStatus) IsValid() bool {
	for _, candidate := range validLocationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseLocationStatus converts raw input into a LocationStatus.
func ParseLocationStatus(value string) (LocationStatus, error) {
	for _, candidate := range validLocationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location status %q", value)
}

// LocationStatuses returns every known status in declaration order.
func LocationStatuses() []LocationStatus {
	out := make([]LocationStatus, len(validLocationStatuses))
	copy(out, validLocationStatuses)
	return out
}
