// File: internal/infra/memstore/records.go
package memstore

import (
	"context"
	"sort"
	"sync"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/repository"
)

var _ repository.PlanRecordRepository = (*RecordStore)(nil)

// RecordStore keeps one issued-plan record per chat. Save overwrites.
type RecordStore struct {
	mu    sync.RWMutex
	store map[int64]*model.UserPlanRecord
}

func NewRecordStore() *RecordStore {
	return &RecordStore{store: make(map[int64]*model.UserPlanRecord)}
}

func (r *RecordStore) Save(ctx context.Context, rec *model.UserPlanRecord) error {
	if rec == nil || rec.ChatID == 0 {
		return domain.ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	cp.Keys = append([]model.IssuedAccess(nil), rec.Keys...)
	r.store[rec.ChatID] = &cp
	return nil
}

func (r *RecordStore) Find(ctx context.Context, chatID int64) (*model.UserPlanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.store[chatID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	cp.Keys = append([]model.IssuedAccess(nil), rec.Keys...)
	return &cp, nil
}

func (r *RecordStore) All(ctx context.Context) ([]*model.UserPlanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.UserPlanRecord, 0, len(r.store))
	for _, rec := range r.store {
		cp := *rec
		cp.Keys = append([]model.IssuedAccess(nil), rec.Keys...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out, nil
}
