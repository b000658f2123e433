// File: internal/application/bot_facade.go
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/usecase"
)

// BotFacade composes the use cases into high-level bot commands. Methods
// return display strings so the Telegram adapter just forwards them to the
// chat.
type BotFacade struct {
	Purchase *usecase.PurchaseUseCase
	Review   *usecase.ReviewUseCase
	Watcher  *usecase.ProofWatcher

	tr           usecase.Translator
	supportURL   string
	supportEmail string
	startedAt    time.Time
}

func NewBotFacade(
	purchase *usecase.PurchaseUseCase,
	review *usecase.ReviewUseCase,
	watcher *usecase.ProofWatcher,
	tr usecase.Translator,
	supportURL, supportEmail string,
) *BotFacade {
	return &BotFacade{
		Purchase:     purchase,
		Review:       review,
		Watcher:      watcher,
		tr:           tr,
		supportURL:   supportURL,
		supportEmail: supportEmail,
		startedAt:    time.Now(),
	}
}

// HandleMyPlan shows the chat's active entitlement, if any.
func (b *BotFacade) HandleMyPlan(ctx context.Context, chatID int64, lang string) (string, error) {
	rec, err := b.Purchase.ActivePlan(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return b.tr.T(lang, "myplan_none"), nil
		}
		return "", err
	}

	planName := rec.PlanKey
	if plan, err := b.Purchase.Plan(rec.PlanKey); err == nil {
		planName = plan.Name
	}
	if rec.ExpiredAt(time.Now()) {
		return b.tr.T(lang, "myplan_expired", planName, rec.ExpiresAt.Format("2006-01-02")), nil
	}
	return b.tr.T(lang, "myplan",
		planName, rec.Region.Display(), len(rec.Keys),
		rec.PurchasedAt.Format("2006-01-02"), rec.ExpiresAt.Format("2006-01-02"),
	), nil
}

func (b *BotFacade) HandleHelp(lang string) string {
	return b.tr.T(lang, "help")
}

func (b *BotFacade) HandleSupport(lang string) string {
	return b.tr.T(lang, "support", b.supportURL, b.supportEmail)
}

// HandleUsers is the admin roster: every issued plan with its expiry.
func (b *BotFacade) HandleUsers(ctx context.Context) (string, error) {
	recs, err := b.Purchase.AllPlans(ctx)
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "No users with active plans.", nil
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👥 Users with plans: %d\n\n", len(recs)))
	for _, r := range recs {
		status := "active"
		if r.Expired || r.ExpiredAt(time.Now()) {
			status = "expired"
		}
		sb.WriteString(fmt.Sprintf("• %d — %s (%s), %d key(s), expires %s [%s]\n",
			r.ChatID, r.PlanKey, r.Region.Display(), len(r.Keys),
			r.ExpiresAt.Format("2006-01-02"), status))
	}
	return sb.String(), nil
}

// HandleDebug is the admin runtime snapshot.
func (b *BotFacade) HandleDebug(ctx context.Context) (string, error) {
	pending, err := b.Purchase.PendingCount(ctx)
	if err != nil {
		return "", err
	}
	recs, err := b.Purchase.AllPlans(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"🛠 Debug\n\nPending payments: %d\nArmed proof watches: %d\nIssued plans: %d\nUptime: %s",
		pending, b.Watcher.Len(), len(recs), time.Since(b.startedAt).Round(time.Second),
	), nil
}
