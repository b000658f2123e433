// File: internal/infra/memstore/ledger.go
package memstore

import (
	"context"
	"sync"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/repository"
)

var _ repository.PaymentLedger = (*Ledger)(nil)

// Ledger is the in-memory pending-payment store.
type Ledger struct {
	mu    sync.RWMutex
	store map[string]*model.PendingPayment
}

func NewLedger() *Ledger {
	return &Ledger{store: make(map[string]*model.PendingPayment)}
}

func (l *Ledger) Save(ctx context.Context, p *model.PendingPayment) error {
	if p == nil || p.ID == "" {
		return domain.ErrInvalidArgument
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *p
	l.store[p.ID] = &cp
	return nil
}

func (l *Ledger) Find(ctx context.Context, id string) (*model.PendingPayment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.store[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.store, id)
	return nil
}

func (l *Ledger) Count(ctx context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.store), nil
}
