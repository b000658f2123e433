// File: internal/usecase/purchase_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/repository"
	"vaultvpn-bot/internal/infra/metrics"
)

// PurchaseUseCase drives the user-facing half of the flow: plan selection,
// session state, and pending-payment creation. Rendering stays in the
// transport adapter; this layer owns validation and state.
type PurchaseUseCase struct {
	catalog  *model.Catalog
	sessions repository.SessionRepository
	ledger   repository.PaymentLedger
	records  repository.PlanRecordRepository
	log      *zerolog.Logger
}

func NewPurchaseUseCase(
	catalog *model.Catalog,
	sessions repository.SessionRepository,
	ledger repository.PaymentLedger,
	records repository.PlanRecordRepository,
	logger *zerolog.Logger,
) *PurchaseUseCase {
	l := logger.With().Str("component", "PurchaseUC").Logger()
	return &PurchaseUseCase{
		catalog:  catalog,
		sessions: sessions,
		ledger:   ledger,
		records:  records,
		log:      &l,
	}
}

func (u *PurchaseUseCase) Plans() []*model.Plan { return u.catalog.List() }

func (u *PurchaseUseCase) Plan(key string) (*model.Plan, error) { return u.catalog.Get(key) }

// SelectPlan validates the plan key and remembers it in the session.
func (u *PurchaseUseCase) SelectPlan(ctx context.Context, chatID int64, planKey, lang string) (*model.Plan, error) {
	plan, err := u.catalog.Get(planKey)
	if err != nil {
		return nil, err
	}
	if err := u.sessions.Save(ctx, chatID, &model.Session{PlanKey: planKey, Lang: lang}); err != nil {
		return nil, err
	}
	return plan, nil
}

// CreatePending validates the accumulated selection and writes the ledger
// entry the admin will later decide on.
func (u *PurchaseUseCase) CreatePending(ctx context.Context, chatID int64, username, planKey string, region model.Region, method, lang string) (*model.PendingPayment, *model.Plan, error) {
	plan, err := u.catalog.Get(planKey)
	if err != nil {
		return nil, nil, err
	}
	if _, err := model.ParseRegion(string(region)); err != nil {
		return nil, nil, err
	}
	if method == "" {
		return nil, nil, domain.ErrInvalidArgument
	}

	p := &model.PendingPayment{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Username:  username,
		PlanKey:   planKey,
		Region:    region,
		Method:    method,
		Lang:      lang,
		CreatedAt: time.Now(),
	}
	if err := u.ledger.Save(ctx, p); err != nil {
		return nil, nil, err
	}
	metrics.IncPaymentPending()
	u.log.Info().Int64("chat_id", chatID).Str("payment_id", p.ID).
		Str("plan", planKey).Str("region", string(region)).Str("method", method).
		Msg("pending payment created")
	return p, plan, nil
}

// Language returns the chat's chosen language, defaulting to English.
func (u *PurchaseUseCase) Language(ctx context.Context, chatID int64) string {
	sess, err := u.sessions.Find(ctx, chatID)
	if err != nil || sess.Lang == "" {
		return "en"
	}
	return sess.Lang
}

// SetLanguage stores the language without disturbing a selected plan.
func (u *PurchaseUseCase) SetLanguage(ctx context.Context, chatID int64, lang string) error {
	sess, err := u.sessions.Find(ctx, chatID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		sess = &model.Session{}
	}
	sess.Lang = lang
	return u.sessions.Save(ctx, chatID, sess)
}

// ActivePlan returns the chat's issued-plan record, if any.
func (u *PurchaseUseCase) ActivePlan(ctx context.Context, chatID int64) (*model.UserPlanRecord, error) {
	return u.records.Find(ctx, chatID)
}

// AllPlans lists every issued-plan record (admin view).
func (u *PurchaseUseCase) AllPlans(ctx context.Context) ([]*model.UserPlanRecord, error) {
	return u.records.All(ctx)
}

// PendingCount reports the ledger size (admin debug view).
func (u *PurchaseUseCase) PendingCount(ctx context.Context) (int, error) {
	return u.ledger.Count(ctx)
}
