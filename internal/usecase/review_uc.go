// File: internal/usecase/review_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/adapter"
	"vaultvpn-bot/internal/domain/ports/repository"
	"vaultvpn-bot/internal/infra/metrics"
)

// Translator is the slice of i18n the use cases need.
type Translator interface {
	T(lang, key string, args ...interface{}) string
}

// ReviewUseCase is the admin review gateway: it gates on the configured admin
// identity, then turns a decision into key provisioning and user
// notifications. Approval is at-most-once: the ledger entry is deleted on any
// terminal decision, including a provisioning failure, and there is no
// automatic retry. A partial multi-region grant is not rolled back.
type ReviewUseCase struct {
	adminID     int64
	catalog     *model.Catalog
	ledger      repository.PaymentLedger
	records     repository.PlanRecordRepository
	provisioner adapter.KeyProvisioner
	notifier    adapter.Notifier
	watcher     *ProofWatcher
	tr          Translator
	supportURL  string
	log         *zerolog.Logger

	now func() time.Time
}

func NewReviewUseCase(
	adminID int64,
	catalog *model.Catalog,
	ledger repository.PaymentLedger,
	records repository.PlanRecordRepository,
	provisioner adapter.KeyProvisioner,
	notifier adapter.Notifier,
	watcher *ProofWatcher,
	tr Translator,
	supportURL string,
	logger *zerolog.Logger,
) *ReviewUseCase {
	l := logger.With().Str("component", "ReviewUC").Logger()
	return &ReviewUseCase{
		adminID:     adminID,
		catalog:     catalog,
		ledger:      ledger,
		records:     records,
		provisioner: provisioner,
		notifier:    notifier,
		watcher:     watcher,
		tr:          tr,
		supportURL:  supportURL,
		log:         &l,
		now:         time.Now,
	}
}

func (u *ReviewUseCase) IsAdmin(actorID int64) bool { return actorID == u.adminID }

// RequestProof arms the screenshot watch for an existing pending payment.
// Unknown or already-decided ids get the "session expired" reply instead.
func (u *ReviewUseCase) RequestProof(ctx context.Context, chatID int64, paymentID, lang string) error {
	if _, err := u.ledger.Find(ctx, paymentID); err != nil {
		_ = u.notifier.SendMessage(ctx, chatID, u.tr.T(lang, "payment_expired"))
		return err
	}
	u.watcher.Register(chatID, paymentID)
	return u.notifier.SendMessage(ctx, chatID, u.tr.T(lang, "send_screenshot"))
}

// SubmitProof handles a photo from a chat with an armed watch: acknowledge
// the user, forward the photo to the admin, and post the review message with
// approve/reject controls. A photo past the window is dropped without any
// admin notification.
func (u *ReviewUseCase) SubmitProof(ctx context.Context, chatID int64, messageID int, from string) error {
	paymentID, err := u.watcher.Take(chatID)
	if err != nil {
		// No armed watch, or the window elapsed. Either way the admin is
		// not notified.
		return err
	}

	p, err := u.ledger.Find(ctx, paymentID)
	if err != nil {
		_ = u.notifier.SendMessage(ctx, chatID, u.tr.T("en", "payment_expired"))
		return err
	}
	plan, err := u.catalog.Get(p.PlanKey)
	if err != nil {
		return err
	}

	if err := u.notifier.SendMessage(ctx, chatID, u.tr.T(p.Lang, "proof_received")); err != nil {
		return err
	}
	if err := u.notifier.ForwardMessage(ctx, u.adminID, chatID, messageID); err != nil {
		u.log.Error().Err(err).Str("payment_id", paymentID).Msg("forward proof to admin failed")
	}

	rows := [][]adapter.InlineButton{
		{{Text: "✅ Approve Payment", Data: "approve_" + p.ID}},
		{{Text: "❌ Reject Payment", Data: "reject_" + p.ID}},
	}
	return u.notifier.SendButtons(ctx, u.adminID, u.reviewText(p, plan, from), rows)
}

func (u *ReviewUseCase) reviewText(p *model.PendingPayment, plan *model.Plan, from string) string {
	serverInfo := fmt.Sprintf("%s - %dGB", p.Region.Display(), plan.GB)
	if p.Region == model.RegionBoth {
		serverInfo = fmt.Sprintf("%s - %dGB each", p.Region.Display(), plan.GB/2)
	}
	return fmt.Sprintf(
		"🔔 New Payment for Review\n\n👤 User: %s\n🆔 User ID: %d\n📦 Plan: %s\n🌍 Server: %s\n💰 Amount: %d MMK\n💳 Method: %s\n🔑 Payment ID: %s\n📅 Time: %s\n\nReview and approve/reject:",
		from, p.ChatID, plan.Name, serverInfo, plan.PriceMMK, p.Method, p.ID,
		u.now().Format(time.RFC1123),
	)
}

// Approve provisions keys for the pending payment's selection and records the
// entitlement. Returns the admin-facing result text for the message edit.
func (u *ReviewUseCase) Approve(ctx context.Context, actorID int64, paymentID string) (string, error) {
	if !u.IsAdmin(actorID) {
		return "", domain.ErrUnauthorized
	}
	p, err := u.ledger.Find(ctx, paymentID)
	if err != nil {
		return "❌ Payment not found or already processed.", err
	}
	plan, err := u.catalog.Get(p.PlanKey)
	if err != nil {
		return fmt.Sprintf("❌ Payment %s references unknown plan %q.", paymentID, p.PlanKey), err
	}

	quota := plan.QuotaBytes(p.Region)
	keys := make([]model.IssuedAccess, 0, 2)
	for _, region := range p.Region.Targets() {
		label := fmt.Sprintf("vault_%d_%s_%s", p.ChatID, region, ulid.Make())
		key, perr := u.provisioner.CreateKey(ctx, region, label, quota)
		if perr != nil {
			return u.failApproval(ctx, p, region, keys, perr)
		}
		keys = append(keys, *key)
		metrics.IncKeyIssued(string(region))
	}

	// Terminal decision: the ledger entry goes away regardless of what
	// follows, so a second approve reports "not found".
	_ = u.ledger.Delete(ctx, p.ID)
	u.watcher.Cancel(p.ChatID, p.ID)

	purchasedAt := u.now()
	rec := &model.UserPlanRecord{
		ChatID:      p.ChatID,
		PlanKey:     p.PlanKey,
		Region:      p.Region,
		Lang:        p.Lang,
		Keys:        keys,
		PurchasedAt: purchasedAt,
		ExpiresAt:   purchasedAt.AddDate(0, 0, plan.Days),
	}
	if err := u.records.Save(ctx, rec); err != nil {
		u.log.Error().Err(err).Str("payment_id", p.ID).Msg("save plan record failed")
	}

	if err := u.notifier.SendAccessKeys(ctx, p.ChatID, p.Lang, keys); err != nil {
		u.log.Error().Err(err).Str("payment_id", p.ID).Msg("deliver keys failed")
	}
	metrics.IncPaymentDecided("approved")
	u.log.Info().Str("payment_id", p.ID).Int64("chat_id", p.ChatID).
		Int("keys", len(keys)).Msg("payment approved")

	return fmt.Sprintf("✅ Payment Approved & Processed\n\nPayment ID: %s\nUser: %d\nKeys generated successfully!", p.ID, p.ChatID), nil
}

// failApproval applies the at-most-once policy after a provisioning error:
// deliver whatever was already minted, tell both sides, drop the ledger
// entry, and do not write a plan record. The orphaned remote key from a
// partial grant is left in place.
func (u *ReviewUseCase) failApproval(ctx context.Context, p *model.PendingPayment, region model.Region, minted []model.IssuedAccess, perr error) (string, error) {
	metrics.IncProvisioningError(string(region))
	metrics.IncPaymentDecided("failed")

	_ = u.ledger.Delete(ctx, p.ID)
	u.watcher.Cancel(p.ChatID, p.ID)

	if len(minted) > 0 {
		if err := u.notifier.SendAccessKeys(ctx, p.ChatID, p.Lang, minted); err != nil {
			u.log.Error().Err(err).Str("payment_id", p.ID).Msg("deliver partial keys failed")
		}
	}
	_ = u.notifier.SendMessage(ctx, p.ChatID, u.tr.T(p.Lang, "provision_error"))

	u.log.Error().Err(perr).Str("payment_id", p.ID).Str("region", string(region)).
		Int("minted", len(minted)).Msg("provisioning failed; payment closed without retry")

	return fmt.Sprintf("❌ Error processing payment %s: %v", p.ID, perr),
		fmt.Errorf("provision %s: %w", region, perr)
}

// Reject notifies the user and removes the ledger entry.
func (u *ReviewUseCase) Reject(ctx context.Context, actorID int64, paymentID string) (string, error) {
	if !u.IsAdmin(actorID) {
		return "", domain.ErrUnauthorized
	}
	p, err := u.ledger.Find(ctx, paymentID)
	if err != nil {
		return "❌ Payment not found or already processed.", err
	}

	if err := u.notifier.SendMessage(ctx, p.ChatID, u.tr.T(p.Lang, "rejected", u.supportURL)); err != nil {
		u.log.Error().Err(err).Str("payment_id", p.ID).Msg("rejection notice failed")
	}
	_ = u.ledger.Delete(ctx, p.ID)
	u.watcher.Cancel(p.ChatID, p.ID)
	metrics.IncPaymentDecided("rejected")
	u.log.Info().Str("payment_id", p.ID).Int64("chat_id", p.ChatID).Msg("payment rejected")

	return fmt.Sprintf("❌ Payment Rejected\n\nPayment ID: %s\nUser: %d\nReason: Manual rejection by admin", p.ID, p.ChatID), nil
}

// NotFound reports whether an error from Approve/Reject means the ledger
// entry was missing (already decided or never existed).
func NotFound(err error) bool {
	return errors.Is(err, domain.ErrPaymentNotFound)
}
