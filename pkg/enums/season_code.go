package enums

import (
	"fmt"
	"strings"
)

// SeasonCode identifies one of the fixed fishing seasons.
type SeasonCode string

const (
	SeasonSpring SeasonCode = "SPRING"
	SeasonSummer SeasonCode = "SUMMER"
	SeasonAutumn SeasonCode = "AUTUMN"
	SeasonWinter SeasonCode = "WINTER"
)

var validSeasonCodes = []SeasonCode{
	SeasonSpring,
	SeasonSummer,
	SeasonAutumn,
	SeasonWinter,
}

// String implements fmt.Stringer.
func (s SeasonCode) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SeasonCode.
func (s SeasonCode) IsValid() bool {
	for _, candidate := range validSeasonCodes {
		if candidate == s {
			return true
		}
	}
	return false
}

// DisplayName is the human label stored alongside the code.
func (s SeasonCode) DisplayName() string {
	switch s {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	}
	return ""
}

// ParseSeasonCode trims and upper-cases the input before matching it.
func ParseSeasonCode(value string) (SeasonCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validSeasonCodes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid season code %q", value)
}

// SeasonCodes returns every known season in calendar order.
func SeasonCodes() []SeasonCode {
	out := make([]SeasonCode, len(validSeasonCodes))
	copy(out, validSeasonCodes)
	return out
}
