// File: internal/infra/sched/expiry_worker.go
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/adapter"
	"vaultvpn-bot/internal/domain/ports/repository"
	"vaultvpn-bot/internal/infra/metrics"
	"vaultvpn-bot/internal/usecase"
)

// ExpiryWorker periodically sweeps plan records, marks expired ones, and
// tells the affected users. The remote keys are not revoked; quota
// enforcement already lives on the Outline servers.
type ExpiryWorker struct {
	interval time.Duration
	records  repository.PlanRecordRepository
	catalog  *model.Catalog
	notifier adapter.Notifier
	tr       usecase.Translator
	log      *zerolog.Logger

	now func() time.Time
}

func NewExpiryWorker(
	interval time.Duration,
	records repository.PlanRecordRepository,
	catalog *model.Catalog,
	notifier adapter.Notifier,
	tr usecase.Translator,
	logger *zerolog.Logger,
) *ExpiryWorker {
	l := logger.With().Str("component", "ExpiryWorker").Logger()
	return &ExpiryWorker{
		interval: interval,
		records:  records,
		catalog:  catalog,
		notifier: notifier,
		tr:       tr,
		log:      &l,
		now:      time.Now,
	}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("starting expiry worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping expiry worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.Sweep(ctx)
			if err != nil {
				w.log.Error().Err(err).Msg("expiry sweep failed")
			}
			if n > 0 {
				metrics.IncPlansExpired(n)
				w.log.Info().Int("count", n).Msg("plans expired")
			}
		}
	}
}

// Sweep marks every overdue record expired and notifies its user once. It
// returns how many records flipped this pass.
func (w *ExpiryWorker) Sweep(ctx context.Context) (int, error) {
	recs, err := w.records.All(ctx)
	if err != nil {
		return 0, err
	}
	now := w.now()

	expired := 0
	for _, rec := range recs {
		if rec.Expired || !rec.ExpiredAt(now) {
			continue
		}
		rec.Expired = true
		if err := w.records.Save(ctx, rec); err != nil {
			w.log.Error().Err(err).Int64("chat_id", rec.ChatID).Msg("mark expired failed")
			continue
		}
		expired++

		planName := rec.PlanKey
		if plan, err := w.catalog.Get(rec.PlanKey); err == nil {
			planName = plan.Name
		}
		lang := rec.Lang
		if lang == "" {
			lang = "en"
		}
		if err := w.notifier.SendMessage(ctx, rec.ChatID, w.tr.T(lang, "plan_expired_notice", planName)); err != nil {
			w.log.Warn().Err(err).Int64("chat_id", rec.ChatID).Msg("expiry notice failed")
		}
	}
	return expired, nil
}
