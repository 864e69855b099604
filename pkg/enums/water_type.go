package enums

import "fmt"

// WaterType classifies the body of water at a location.
type WaterType string

const (
	WaterTypeLake  WaterType = "LAKE"
	WaterTypeRiver WaterType = "RIVER"
	WaterTypePond  WaterType = "POND"
	WaterTypeSea   WaterType = "SEA"
	WaterTypeOther WaterType = "OTHER"
)

var validWaterTypes = []WaterType{
	WaterTypeLake,
	WaterTypeRiver,
	WaterTypePond,
	WaterTypeSea,
	WaterTypeOther,
}

// String implements fmt.Stringer.
func (w WaterType) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WaterType.
func (w WaterType) IsValid() bool {
	for _, candidate := range validWaterTypes {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWaterType converts raw input into a WaterType.
func ParseWaterType(value string) (WaterType, error) {
	for _, candidate := range validWaterTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid water type %q", value)
}

// WaterTypes returns every known water type in declaration order.
func WaterTypes() []WaterType {
	out := make([]WaterType, len(validWaterTypes))
	copy(out, validWaterTypes)
	return out
}
