package model

import "time"

// IssuedAccess is one provisioned access key. Immutable once created; the
// remote quota is not synchronized back.
type IssuedAccess struct {
	Region     Region
	AccessURL  string // ss:// URI the client pastes or scans
	QuotaBytes int64
	KeyID      string // id assigned by the management API, kept for support
}

func (a *IssuedAccess) QuotaGB() float64 {
	return float64(a.QuotaBytes) / float64(1<<30)
}

// UserPlanRecord is the entitlement written on approval. One record per chat:
// a new approval overwrites the previous record.
type UserPlanRecord struct {
	ChatID      int64
	PlanKey     string
	Region      Region
	Lang        string
	Keys        []IssuedAccess
	PurchasedAt time.Time
	ExpiresAt   time.Time
	DataUsed    int64 // reserved; usage metering is not enforced
	Expired     bool
}

func (r *UserPlanRecord) ExpiredAt(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Session is the transient per-chat conversation state. Overwritten on every
// menu navigation step, never explicitly deleted.
type Session struct {
	PlanKey string
	Lang    string
}
