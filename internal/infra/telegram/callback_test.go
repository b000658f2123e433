package telegram

import (
	"errors"
	"testing"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
)

func TestCallbackRoundTrip(t *testing.T) {
	cases := []Callback{
		{Kind: CallbackPlan, PlanKey: "mini_30", Lang: "en"},
		{Kind: CallbackPlan, PlanKey: "ultra_90", Lang: "my"},
		{Kind: CallbackServer, Region: model.RegionUS, PlanKey: "mini_30", Lang: "en"},
		{Kind: CallbackServer, Region: model.RegionBoth, PlanKey: "power_30", Lang: "my"},
		{Kind: CallbackPay, Method: "kpay", Region: model.RegionSG, PlanKey: "ultra_90", Lang: "en"},
		{Kind: CallbackPay, Method: "wave", Region: model.RegionBoth, PlanKey: "mini_30", Lang: "my"},
		{Kind: CallbackProof, PaymentID: "123e4567-e89b-12d3-a456-426614174000"},
		{Kind: CallbackApprove, PaymentID: "123e4567-e89b-12d3-a456-426614174000"},
		{Kind: CallbackReject, PaymentID: "pay-1"},
		{Kind: CallbackBackPlans},
		{Kind: CallbackLang, Lang: "my"},
	}
	for _, want := range cases {
		wire := want.Encode()
		got, err := ParseCallback(wire)
		if err != nil {
			t.Errorf("ParseCallback(%q): %v", wire, err)
			continue
		}
		if got != want {
			t.Errorf("round trip %q: got %+v, want %+v", wire, got, want)
		}
	}
}

func TestParseCallbackWire(t *testing.T) {
	// Exact wire strings the buttons carry; plan keys contain underscores.
	got, err := ParseCallback("pay_kpay_both_ultra_90_en")
	if err != nil {
		t.Fatal(err)
	}
	want := Callback{Kind: CallbackPay, Method: "kpay", Region: model.RegionBoth, PlanKey: "ultra_90", Lang: "en"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	got, err = ParseCallback("srv_us_mini_30_my")
	if err != nil {
		t.Fatal(err)
	}
	if got.Region != model.RegionUS || got.PlanKey != "mini_30" || got.Lang != "my" {
		t.Errorf("got %+v", got)
	}
}

func TestParseCallbackGarbage(t *testing.T) {
	for _, bad := range []string{
		"",
		"plan_",
		"plan_x",
		"srv_mars_mini_30_en",
		"pay_kpay_us",
		"proof_",
		"approve_",
		"lang_",
		"lang_en_us",
		"subscribe_42",
		"back_servers",
	} {
		if _, err := ParseCallback(bad); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("ParseCallback(%q) should reject, got %v", bad, err)
		}
	}
}
