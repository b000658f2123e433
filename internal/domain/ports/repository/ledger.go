package repository

import (
	"context"

	"vaultvpn-bot/internal/domain/model"
)

// PaymentLedger owns PendingPayment records. Entries are created when the
// user reaches the payment details step and deleted only on a terminal admin
// decision; an entry that is never acted on simply stays behind.
type PaymentLedger interface {
	Save(ctx context.Context, p *model.PendingPayment) error
	// Find looks up without removing; returns domain.ErrPaymentNotFound for
	// unknown or already-processed ids.
	Find(ctx context.Context, id string) (*model.PendingPayment, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
