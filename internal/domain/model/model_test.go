package model

import (
	"errors"
	"testing"

	"vaultvpn-bot/internal/domain"
)

func TestPlanQuotaBytes(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("single region gets the full quota", func(t *testing.T) {
		plan, _ := catalog.Get("mini_30")
		if got := plan.QuotaBytes(RegionUS); got != 100<<30 {
			t.Errorf("us quota = %d, want %d", got, int64(100)<<30)
		}
		if got := plan.QuotaBytes(RegionSG); got != 100<<30 {
			t.Errorf("sg quota = %d, want %d", got, int64(100)<<30)
		}
	})

	t.Run("both split halves the per-key quota", func(t *testing.T) {
		plan, _ := catalog.Get("ultra_90")
		if got := plan.QuotaBytes(RegionBoth); got != 250<<30 {
			t.Errorf("split quota = %d, want %d", got, int64(250)<<30)
		}
	})

	t.Run("split keys sum to the single-region total", func(t *testing.T) {
		for _, plan := range catalog.List() {
			perKey := plan.QuotaBytes(RegionBoth)
			if 2*perKey != plan.QuotaBytes(RegionUS) {
				t.Errorf("plan %s: 2x%d != %d", plan.Key, perKey, plan.QuotaBytes(RegionUS))
			}
		}
	})
}

func TestParseRegion(t *testing.T) {
	for _, ok := range []string{"us", "sg", "both"} {
		if _, err := ParseRegion(ok); err != nil {
			t.Errorf("ParseRegion(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "eu", "USA", "us "} {
		if _, err := ParseRegion(bad); !errors.Is(err, domain.ErrUnknownRegion) {
			t.Errorf("ParseRegion(%q) should fail, got %v", bad, err)
		}
	}
}

func TestRegionTargets(t *testing.T) {
	if got := RegionBoth.Targets(); len(got) != 2 || got[0] != RegionUS || got[1] != RegionSG {
		t.Errorf("both targets = %v", got)
	}
	if got := RegionSG.Targets(); len(got) != 1 || got[0] != RegionSG {
		t.Errorf("sg targets = %v", got)
	}
}

func TestCatalog(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		if _, err := DefaultCatalog().Get("mega"); !errors.Is(err, domain.ErrUnknownPlan) {
			t.Errorf("expected ErrUnknownPlan, got %v", err)
		}
	})

	t.Run("list preserves declaration order", func(t *testing.T) {
		plans := DefaultCatalog().List()
		want := []string{"mini_30", "power_30", "ultra_90"}
		if len(plans) != len(want) {
			t.Fatalf("len = %d", len(plans))
		}
		for i, p := range plans {
			if p.Key != want[i] {
				t.Errorf("plans[%d] = %s, want %s", i, p.Key, want[i])
			}
		}
	})

	t.Run("NewPlan validates", func(t *testing.T) {
		if _, err := NewPlan("", "x", 1, 1, 1); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("empty key: %v", err)
		}
		if _, err := NewPlan("k", "x", 0, 1, 1); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("zero gb: %v", err)
		}
	})
}

func TestPendingPaymentShortRef(t *testing.T) {
	p := &PendingPayment{ID: "123e4567-e89b-12d3-a456-426614174000"}
	if got := p.ShortRef(); got != "74174000" {
		t.Errorf("short ref = %q", got)
	}
	short := &PendingPayment{ID: "abc"}
	if got := short.ShortRef(); got != "abc" {
		t.Errorf("short ref = %q", got)
	}
}
