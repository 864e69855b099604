package enums

import "fmt"

// Role is the account-level permission role carried in access tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

var validRoles = []Role{
	RoleUser,
	RoleOwner,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// Roles returns every known role in declaration order.
func Roles() []Role {
	out := make([]Role, len(validRoles))
	copy(out, validRoles)
	return out
}

// RolesWith returns the roles for which the capability holds.
func RolesWith(capability func(Role) bool) []Role {
	out := make([]Role, 0, len(validRoles))
	for _, candidate := range validRoles {
		if capability(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// CanSubmitLocations reports whether the role creates and manages its own locations.
func (r Role) CanSubmitLocations() bool {
	switch r {
	case RoleOwner:
		return true
	case RoleUser, RoleAdmin:
		return false
	}
	return false
}

// CanModerate reports whether the role may change any location's status or delete it.
func (r Role) CanModerate() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser, RoleOwner:
		return false
	}
	return false
}

// CanEngage reports whether the role may review and favorite locations.
func (r Role) CanEngage() bool {
	switch r {
	case RoleUser, RoleOwner:
		return true
	case RoleAdmin:
		return false
	}
	return false
}

// CanSelfRegister reports whether public registration may produce the role.
func (r Role) CanSelfRegister() bool {
	switch r {
	case RoleUser, RoleOwner:
		return true
	case RoleAdmin:
		return false
	}
	return false
}
