package model

import (
	"vaultvpn-bot/internal/domain"
)

// Plan represents a purchasable VPN bundle with a fixed data quota,
// validity period, and price in MMK.
type Plan struct {
	Key      string
	Name     string
	GB       int64
	PriceMMK int64
	Days     int
}

func (p *Plan) IsZero() bool { return p == nil || p.Key == "" }

// QuotaBytes returns the per-key data limit in bytes for the given server
// selection. A "both" selection splits the plan quota evenly across the two
// regions, so each key carries half the bytes.
func (p *Plan) QuotaBytes(region Region) int64 {
	total := p.GB << 30
	if region == RegionBoth {
		return total / 2
	}
	return total
}

// NewPlan validates and constructs a plan.
func NewPlan(key, name string, gb, priceMMK int64, days int) (*Plan, error) {
	if key == "" || name == "" || gb <= 0 || priceMMK <= 0 || days <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Plan{Key: key, Name: name, GB: gb, PriceMMK: priceMMK, Days: days}, nil
}

// Catalog is the immutable set of plans defined at startup.
type Catalog struct {
	plans map[string]*Plan
	order []string
}

func NewCatalog(plans ...*Plan) *Catalog {
	c := &Catalog{plans: make(map[string]*Plan, len(plans))}
	for _, p := range plans {
		if p.IsZero() {
			continue
		}
		if _, dup := c.plans[p.Key]; dup {
			continue
		}
		c.plans[p.Key] = p
		c.order = append(c.order, p.Key)
	}
	return c
}

func (c *Catalog) Get(key string) (*Plan, error) {
	p, ok := c.plans[key]
	if !ok {
		return nil, domain.ErrUnknownPlan
	}
	return p, nil
}

// List returns plans in declaration order.
func (c *Catalog) List() []*Plan {
	out := make([]*Plan, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.plans[k])
	}
	return out
}

// DefaultCatalog mirrors the production plan table. The key suffix encodes
// the validity period in days.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		&Plan{Key: "mini_30", Name: "Mini Vault", GB: 100, PriceMMK: 3000, Days: 30},
		&Plan{Key: "power_30", Name: "Power Vault", GB: 300, PriceMMK: 6000, Days: 30},
		&Plan{Key: "ultra_90", Name: "Ultra Vault", GB: 500, PriceMMK: 8000, Days: 90},
	)
}
