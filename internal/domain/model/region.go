package model

import "vaultvpn-bot/internal/domain"

// Region identifies a VPN endpoint location. RegionBoth is the combined
// marker: the purchase is split across the two real regions.
type Region string

const (
	RegionUS   Region = "us"
	RegionSG   Region = "sg"
	RegionBoth Region = "both"
)

// ParseRegion validates a wire token against the configured region set.
func ParseRegion(s string) (Region, error) {
	switch Region(s) {
	case RegionUS, RegionSG, RegionBoth:
		return Region(s), nil
	}
	return "", domain.ErrUnknownRegion
}

// Targets expands a selection into the concrete regions to provision.
func (r Region) Targets() []Region {
	if r == RegionBoth {
		return []Region{RegionUS, RegionSG}
	}
	return []Region{r}
}

func (r Region) Display() string {
	switch r {
	case RegionUS:
		return "🇺🇸 US Server"
	case RegionSG:
		return "🇸🇬 SG Server"
	case RegionBoth:
		return "🌐 Both Servers"
	}
	return string(r)
}
