// File: internal/infra/telegram/callback.go
package telegram

import (
	"fmt"
	"strings"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
)

// CallbackKind tags the decoded variant of an inline-button payload.
type CallbackKind int

const (
	CallbackPlan CallbackKind = iota
	CallbackServer
	CallbackPay
	CallbackProof
	CallbackApprove
	CallbackReject
	CallbackBackPlans
	CallbackLang
)

// Callback is the typed form of an inline-button payload. The string wire
// format exists only at this boundary; everything past the adapter works with
// the decoded struct.
//
// Wire grammar:
//
//	plan_<planKey>_<lang>
//	srv_<region>_<planKey>_<lang>
//	pay_<method>_<region>_<planKey>_<lang>
//	proof_<paymentId>
//	approve_<paymentId>
//	reject_<paymentId>
//	back_plans
//	lang_<code>
//
// Plan keys may contain underscores, so positional fields are split from the
// anchored ends: region, method, and lang never contain one.
type Callback struct {
	Kind      CallbackKind
	PlanKey   string
	Region    model.Region
	Method    string
	Lang      string
	PaymentID string
}

// Encode renders the callback into its wire string.
func (c Callback) Encode() string {
	switch c.Kind {
	case CallbackPlan:
		return "plan_" + c.PlanKey + "_" + c.Lang
	case CallbackServer:
		return "srv_" + string(c.Region) + "_" + c.PlanKey + "_" + c.Lang
	case CallbackPay:
		return "pay_" + c.Method + "_" + string(c.Region) + "_" + c.PlanKey + "_" + c.Lang
	case CallbackProof:
		return "proof_" + c.PaymentID
	case CallbackApprove:
		return "approve_" + c.PaymentID
	case CallbackReject:
		return "reject_" + c.PaymentID
	case CallbackBackPlans:
		return "back_plans"
	case CallbackLang:
		return "lang_" + c.Lang
	}
	return ""
}

// ParseCallback decodes a wire payload. Unknown prefixes and malformed
// payloads return domain.ErrInvalidArgument so the router can answer with a
// generic "unknown action" instead of crashing on stale buttons.
func ParseCallback(data string) (Callback, error) {
	switch {
	case data == "back_plans":
		return Callback{Kind: CallbackBackPlans}, nil

	case strings.HasPrefix(data, "plan_"):
		rest := strings.TrimPrefix(data, "plan_")
		plan, lang, ok := splitTail(rest)
		if !ok {
			return Callback{}, malformed(data)
		}
		return Callback{Kind: CallbackPlan, PlanKey: plan, Lang: lang}, nil

	case strings.HasPrefix(data, "srv_"):
		rest := strings.TrimPrefix(data, "srv_")
		regionStr, rest, ok := splitHead(rest)
		if !ok {
			return Callback{}, malformed(data)
		}
		plan, lang, ok := splitTail(rest)
		if !ok {
			return Callback{}, malformed(data)
		}
		region, err := model.ParseRegion(regionStr)
		if err != nil {
			return Callback{}, malformed(data)
		}
		return Callback{Kind: CallbackServer, Region: region, PlanKey: plan, Lang: lang}, nil

	case strings.HasPrefix(data, "pay_"):
		rest := strings.TrimPrefix(data, "pay_")
		method, rest, ok := splitHead(rest)
		if !ok {
			return Callback{}, malformed(data)
		}
		regionStr, rest, ok := splitHead(rest)
		if !ok {
			return Callback{}, malformed(data)
		}
		plan, lang, ok := splitTail(rest)
		if !ok {
			return Callback{}, malformed(data)
		}
		region, err := model.ParseRegion(regionStr)
		if err != nil {
			return Callback{}, malformed(data)
		}
		return Callback{Kind: CallbackPay, Method: method, Region: region, PlanKey: plan, Lang: lang}, nil

	case strings.HasPrefix(data, "proof_"):
		return paymentCallback(CallbackProof, strings.TrimPrefix(data, "proof_"), data)
	case strings.HasPrefix(data, "approve_"):
		return paymentCallback(CallbackApprove, strings.TrimPrefix(data, "approve_"), data)
	case strings.HasPrefix(data, "reject_"):
		return paymentCallback(CallbackReject, strings.TrimPrefix(data, "reject_"), data)

	case strings.HasPrefix(data, "lang_"):
		code := strings.TrimPrefix(data, "lang_")
		if code == "" || strings.Contains(code, "_") {
			return Callback{}, malformed(data)
		}
		return Callback{Kind: CallbackLang, Lang: code}, nil
	}
	return Callback{}, malformed(data)
}

func paymentCallback(kind CallbackKind, id, raw string) (Callback, error) {
	if id == "" {
		return Callback{}, malformed(raw)
	}
	return Callback{Kind: kind, PaymentID: id}, nil
}

// splitHead cuts the segment before the first underscore.
func splitHead(s string) (head, rest string, ok bool) {
	i := strings.Index(s, "_")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// splitTail cuts the segment after the last underscore.
func splitTail(s string) (rest, tail string, ok bool) {
	i := strings.LastIndex(s, "_")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

func malformed(data string) error {
	return fmt.Errorf("callback %q: %w", data, domain.ErrInvalidArgument)
}
