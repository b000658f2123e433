package model

import "time"

// PendingPayment records a purchase waiting for an out-of-band payment and a
// manual admin decision. It is created when the user reaches the payment
// details step and removed when an admin approves or rejects it.
type PendingPayment struct {
	ID        string // UUID handed to the user as a payment reference
	ChatID    int64  // Telegram chat the purchase belongs to
	Username  string // best-effort display name for the admin review message
	PlanKey   string
	Region    Region
	Method    string // payment method tag, e.g. "kpay"
	Lang      string
	CreatedAt time.Time
}

// ShortRef is the trailing fragment of the payment id shown to the user as a
// transfer reference.
func (p *PendingPayment) ShortRef() string {
	if len(p.ID) <= 8 {
		return p.ID
	}
	return p.ID[len(p.ID)-8:]
}
