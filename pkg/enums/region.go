package enums

import (
	"fmt"
	"strings"
)

// Region is an administrative region code of Ukraine.
type Region string

const (
	RegionVinnytsia      Region = "VINNYTSIA"
	RegionVolyn          Region = "VOLYN"
	RegionDnipropetrovsk Region = "DNIPROPETROVSK"
	RegionDonetsk        Region = "DONETSK"
	RegionZhytomyr       Region = "ZHYTOMYR"
	RegionZakarpattia    Region = "ZAKARPATTIA"
	RegionZaporizhzhia   Region = "ZAPORIZHZHIA"
	RegionIvanoFrankivsk Region = "IVANO_FRANKIVSK"
	RegionKyiv           Region = "KYIV"
	RegionKirovohrad     Region = "KIROVOHRAD"
	RegionLuhansk        Region = "LUHANSK"
	RegionLviv           Region = "LVIV"
	RegionMykolaiv       Region = "MYKOLAIV"
	RegionOdesa          Region = "ODESA"
	RegionPoltava        Region = "POLTAVA"
	RegionRivne          Region = "RIVNE"
	RegionSumy           Region = "SUMY"
	RegionTernopil       Region = "TERNOPIL"
	RegionKharkiv        Region = "KHARKIV"
	RegionKherson        Region = "KHERSON"
	RegionKhmelnytskyi   Region = "KHMELNYTSKYI"
	RegionCherkasy       Region = "CHERKASY"
	RegionChernivtsi     Region = "CHERNIVTSI"
	RegionChernihiv      Region = "CHERNIHIV"
	RegionCrimea         Region = "CRIMEA"
)

var validRegions = []Region{
	RegionVinnytsia,
	RegionVolyn,
	RegionDnipropetrovsk,
	RegionDonetsk,
	RegionZhytomyr,
	RegionZakarpattia,
	RegionZaporizhzhia,
	RegionIvanoFrankivsk,
	RegionKyiv,
	RegionKirovohrad,
	RegionLuhansk,
	RegionLviv,
	RegionMykolaiv,
	RegionOdesa,
	RegionPoltava,
	RegionRivne,
	RegionSumy,
	RegionTernopil,
	RegionKharkiv,
	RegionKherson,
	RegionKhmelnytskyi,
	RegionCherkasy,
	RegionChernivtsi,
	RegionChernihiv,
	RegionCrimea,
}

// String implements fmt.Stringer.
func (r Region) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Region.
func (r Region) IsValid() bool {
	for _, candidate := range validRegions {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRegion trims and upper-cases the input before matching it against the known codes.
func ParseRegion(value string) (Region, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validRegions {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid region %q", value)
}

// Regions returns every known region code in declaration order.
func Regions() []Region {
	out := make([]Region, len(validRegions))
	copy(out, validRegions)
	return out
}
