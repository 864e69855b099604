package locations

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/zxclownhd/fishing-app/pkg/enums"
	pkgerrors "github.com/zxclownhd/fishing-app/pkg/errors"
)

const maxContactInfoLength = 255

var (
	minLat = decimal.NewFromInt(-90)
	maxLat = decimal.NewFromInt(90)
	minLng = decimal.NewFromInt(-180)
	maxLng = decimal.NewFromInt(180)
)

func fieldError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).
		WithDetails(map[string]any{"field": field})
}

func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fieldError(field, field+" is required")
	}
	return trimmed, nil
}

func parseRegion(raw string) (enums.Region, error) {
	region, err := enums.ParseRegion(raw)
	if err != nil {
		return "", invalidRegion()
	}
	return region, nil
}

func parseWaterType(raw string) (enums.WaterType, error) {
	waterType, err := enums.ParseWaterType(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return "", pkgerrors.InvalidChoice("waterType", enums.WaterTypes())
	}
	return waterType, nil
}

func checkLat(lat decimal.Decimal) error {
	if lat.LessThan(minLat) || lat.GreaterThan(maxLat) {
		return fieldError("lat", "lat must be between -90 and 90")
	}
	return nil
}

func checkLng(lng decimal.Decimal) error {
	if lng.LessThan(minLng) || lng.GreaterThan(maxLng) {
		return fieldError("lng", "lng must be between -180 and 180")
	}
	return nil
}

// normalizeContact trims the contact line; blank input clears it.
func normalizeContact(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxContactInfoLength {
		return nil, fieldError("contactInfo", "contactInfo is too long (max 255 chars)")
	}
	return &trimmed, nil
}
