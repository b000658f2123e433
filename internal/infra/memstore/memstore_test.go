package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()

	t.Run("missing session returns ErrNotFound", func(t *testing.T) {
		if _, err := s.Find(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("save then find returns a copy", func(t *testing.T) {
		if err := s.Save(ctx, 42, &model.Session{PlanKey: "mini", Lang: "en"}); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Find(ctx, 42)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		got.PlanKey = "mutated"
		again, _ := s.Find(ctx, 42)
		if again.PlanKey != "mini" {
			t.Errorf("store leaked internal pointer; got %q", again.PlanKey)
		}
	})

	t.Run("save overwrites on navigation", func(t *testing.T) {
		_ = s.Save(ctx, 42, &model.Session{PlanKey: "ultra", Lang: "my"})
		got, _ := s.Find(ctx, 42)
		if got.PlanKey != "ultra" || got.Lang != "my" {
			t.Errorf("overwrite failed: %+v", got)
		}
	})
}

func TestLedger(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()

	p := &model.PendingPayment{
		ID: "pay-1", ChatID: 7, PlanKey: "mini", Region: model.RegionUS,
		Method: "kpay", CreatedAt: time.Now(),
	}

	t.Run("find unknown id", func(t *testing.T) {
		if _, err := l.Find(ctx, "nope"); !errors.Is(err, domain.ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("save find delete lifecycle", func(t *testing.T) {
		if err := l.Save(ctx, p); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := l.Find(ctx, "pay-1")
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.ChatID != 7 || got.Region != model.RegionUS {
			t.Errorf("wrong record: %+v", got)
		}
		if err := l.Delete(ctx, "pay-1"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := l.Find(ctx, "pay-1"); !errors.Is(err, domain.ErrPaymentNotFound) {
			t.Errorf("deleted id should be gone, got %v", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		if err := l.Delete(ctx, "pay-1"); err != nil {
			t.Errorf("second delete should be a no-op, got %v", err)
		}
	})

	t.Run("save rejects empty id", func(t *testing.T) {
		if err := l.Save(ctx, &model.PendingPayment{}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestRecordStore(t *testing.T) {
	ctx := context.Background()
	r := NewRecordStore()

	first := &model.UserPlanRecord{
		ChatID:  7,
		PlanKey: "mini",
		Region:  model.RegionUS,
		Keys:    []model.IssuedAccess{{Region: model.RegionUS, AccessURL: "ss://a"}},
	}

	t.Run("overwrite keeps a single record per chat", func(t *testing.T) {
		if err := r.Save(ctx, first); err != nil {
			t.Fatalf("save: %v", err)
		}
		second := &model.UserPlanRecord{
			ChatID:  7,
			PlanKey: "ultra",
			Region:  model.RegionBoth,
			Keys: []model.IssuedAccess{
				{Region: model.RegionUS, AccessURL: "ss://b"},
				{Region: model.RegionSG, AccessURL: "ss://c"},
			},
		}
		if err := r.Save(ctx, second); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := r.Find(ctx, 7)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.PlanKey != "ultra" || len(got.Keys) != 2 {
			t.Errorf("expected overwritten record, got %+v", got)
		}
		all, _ := r.All(ctx)
		if len(all) != 1 {
			t.Errorf("expected one record, got %d", len(all))
		}
	})

	t.Run("keys slice is copied", func(t *testing.T) {
		got, _ := r.Find(ctx, 7)
		got.Keys[0].AccessURL = "ss://mutated"
		again, _ := r.Find(ctx, 7)
		if again.Keys[0].AccessURL != "ss://b" {
			t.Errorf("store leaked keys slice")
		}
	})
}
