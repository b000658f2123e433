// File: internal/infra/telegram/bot.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"vaultvpn-bot/internal/application"
	"vaultvpn-bot/internal/config"
	"vaultvpn-bot/internal/domain"
	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/adapter"
	"vaultvpn-bot/internal/infra/i18n"
)

const (
	pollTimeout = 30 * time.Second
	maxBackoff  = 30 * time.Second
)

// Bot polls Telegram for updates and routes them: commands, inline-button
// callbacks, and proof photos. Menu rendering lives here; state and rules
// live in the use cases behind the facade.
type Bot struct {
	api      *tgbotapi.BotAPI
	notifier *Notifier
	facade   *application.BotFacade
	tr       *i18n.Translator
	payment  config.PaymentConfig
	log      *zerolog.Logger
}

func NewBot(
	api *tgbotapi.BotAPI,
	notifier *Notifier,
	facade *application.BotFacade,
	tr *i18n.Translator,
	payment config.PaymentConfig,
	logger *zerolog.Logger,
) (*Bot, error) {
	if api == nil || notifier == nil || facade == nil || tr == nil {
		return nil, errors.New("telegram: nil dependency")
	}
	l := logger.With().Str("component", "TelegramBot").Logger()
	return &Bot{
		api:      api,
		notifier: notifier,
		facade:   facade,
		tr:       tr,
		payment:  payment,
		log:      &l,
	}, nil
}

// Run polls getUpdates until ctx is canceled. Transient transport errors are
// retried with exponential backoff; a 409 conflict means another process is
// polling with the same token, and that is returned as domain.ErrConflict so
// the caller can release the instance lock and exit instead of fighting over
// updates.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info().Str("bot", b.api.Self.UserName).Msg("polling started")

	offset := 0
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req := tgbotapi.NewUpdate(offset)
		req.Timeout = int(pollTimeout / time.Second)

		updates, err := b.api.GetUpdates(req)
		if err != nil {
			if isConflict(err) {
				return fmt.Errorf("another instance is polling this token: %w", domain.ErrConflict)
			}
			b.log.Warn().Err(err).Dur("retry_in", backoff).Msg("getUpdates failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		backoff = time.Second

		for _, upd := range updates {
			offset = upd.UpdateID + 1
			if err := b.handleUpdate(ctx, upd); err != nil {
				b.log.Error().Err(err).Int("update_id", upd.UpdateID).Msg("update handling failed")
			}
		}
	}
}

func isConflict(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.Code == 409 {
		return true
	}
	return strings.Contains(err.Error(), "Conflict")
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) error {
	if upd.CallbackQuery != nil {
		return b.handleCallback(ctx, upd.CallbackQuery)
	}
	m := upd.Message
	if m == nil || m.From == nil {
		return nil
	}
	chatID := m.Chat.ID
	lang := b.facade.Purchase.Language(ctx, chatID)

	if len(m.Photo) > 0 {
		err := b.facade.Review.SubmitProof(ctx, chatID, m.MessageID, displayName(m.From))
		switch {
		case err == nil:
			return nil
		case errors.Is(err, domain.ErrNotFound):
			// Stray photo with no armed watch; ignore.
			return nil
		case errors.Is(err, domain.ErrProofWindowClosed):
			return b.notifier.SendMessage(ctx, chatID, b.tr.T(lang, "payment_expired"))
		default:
			return err
		}
	}

	if m.IsCommand() {
		return b.handleCommand(ctx, m, lang)
	}
	return b.notifier.SendMessage(ctx, chatID, b.tr.T(lang, "unknown_action"))
}

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message, lang string) error {
	chatID := m.Chat.ID
	switch m.Command() {
	case "start", "menu", "plans":
		return b.sendPlanMenu(ctx, chatID, lang)
	case "help":
		return b.notifier.SendMessage(ctx, chatID, b.facade.HandleHelp(lang))
	case "support":
		return b.notifier.SendMessage(ctx, chatID, b.facade.HandleSupport(lang))
	case "myplan":
		text, err := b.facade.HandleMyPlan(ctx, chatID, lang)
		if err != nil {
			return err
		}
		return b.notifier.SendMessage(ctx, chatID, text)
	case "lang":
		return b.sendLangMenu(ctx, chatID, lang)
	case "users":
		return b.adminReply(ctx, m, lang, b.facade.HandleUsers)
	case "debug":
		return b.adminReply(ctx, m, lang, b.facade.HandleDebug)
	case "clearwebhook":
		if !b.facade.Review.IsAdmin(m.From.ID) {
			return b.notifier.SendMessage(ctx, chatID, b.tr.T(lang, "unauthorized"))
		}
		if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
			return b.notifier.SendMessage(ctx, chatID, fmt.Sprintf("Webhook cleanup failed: %v", err))
		}
		return b.notifier.SendMessage(ctx, chatID, "Webhook cleared. Polling owns updates now.")
	default:
		return b.notifier.SendMessage(ctx, chatID, b.tr.T(lang, "unknown_action"))
	}
}

func (b *Bot) adminReply(ctx context.Context, m *tgbotapi.Message, lang string, h func(context.Context) (string, error)) error {
	if !b.facade.Review.IsAdmin(m.From.ID) {
		return b.notifier.SendMessage(ctx, m.Chat.ID, b.tr.T(lang, "unauthorized"))
	}
	text, err := h(ctx)
	if err != nil {
		return err
	}
	return b.notifier.SendMessage(ctx, m.Chat.ID, text)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	// Always answer so the button stops spinning, even on errors.
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			b.log.Debug().Err(err).Msg("answer callback failed")
		}
	}()

	if cq.Message == nil || cq.From == nil {
		return nil
	}
	chatID := cq.Message.Chat.ID

	cb, err := ParseCallback(cq.Data)
	if err != nil {
		b.log.Warn().Str("data", cq.Data).Msg("unparseable callback payload")
		lang := b.facade.Purchase.Language(ctx, chatID)
		return b.notifier.SendMessage(ctx, chatID, b.tr.T(lang, "unknown_action"))
	}

	switch cb.Kind {
	case CallbackPlan:
		return b.showServerChoice(ctx, chatID, cb)
	case CallbackBackPlans:
		return b.sendPlanMenu(ctx, chatID, b.facade.Purchase.Language(ctx, chatID))
	case CallbackServer:
		return b.showMethodChoice(ctx, chatID, cb)
	case CallbackPay:
		return b.showPaymentDetails(ctx, chatID, cq.From, cb)
	case CallbackProof:
		lang := b.facade.Purchase.Language(ctx, chatID)
		// RequestProof answers the chat itself, both on success and on a
		// dead payment id.
		_ = b.facade.Review.RequestProof(ctx, chatID, cb.PaymentID, lang)
		return nil
	case CallbackApprove:
		return b.decide(ctx, cq, cb.PaymentID, b.facade.Review.Approve)
	case CallbackReject:
		return b.decide(ctx, cq, cb.PaymentID, b.facade.Review.Reject)
	case CallbackLang:
		if err := b.facade.Purchase.SetLanguage(ctx, chatID, cb.Lang); err != nil {
			return err
		}
		if err := b.notifier.SendMessage(ctx, chatID, b.tr.T(cb.Lang, "lang_set")); err != nil {
			return err
		}
		return b.sendPlanMenu(ctx, chatID, cb.Lang)
	}
	return nil
}

// decide runs an admin decision and edits the review message in place with
// the outcome, so double presses show the final state instead of re-running.
func (b *Bot) decide(ctx context.Context, cq *tgbotapi.CallbackQuery, paymentID string, fn func(context.Context, int64, string) (string, error)) error {
	text, err := fn(ctx, cq.From.ID, paymentID)
	if errors.Is(err, domain.ErrUnauthorized) {
		_, aerr := b.api.Request(tgbotapi.NewCallbackWithAlert(cq.ID, b.tr.T("en", "unauthorized")))
		return aerr
	}
	if text != "" {
		if eerr := b.notifier.EditMessage(ctx, cq.Message.Chat.ID, cq.Message.MessageID, text); eerr != nil {
			b.log.Error().Err(eerr).Msg("edit review message failed")
		}
	}
	if err != nil && !errors.Is(err, domain.ErrPaymentNotFound) {
		return err
	}
	return nil
}

func (b *Bot) sendPlanMenu(ctx context.Context, chatID int64, lang string) error {
	rows := make([][]adapter.InlineButton, 0, len(b.facade.Purchase.Plans()))
	for _, p := range b.facade.Purchase.Plans() {
		rows = append(rows, []adapter.InlineButton{{
			Text: b.tr.T(lang, "plan_button", p.Name, p.GB, p.PriceMMK),
			Data: Callback{Kind: CallbackPlan, PlanKey: p.Key, Lang: lang}.Encode(),
		}})
	}
	return b.notifier.SendButtons(ctx, chatID, b.tr.T(lang, "welcome"), rows)
}

func (b *Bot) sendLangMenu(ctx context.Context, chatID int64, lang string) error {
	rows := make([][]adapter.InlineButton, 0, 2)
	for _, code := range b.tr.Languages() {
		rows = append(rows, []adapter.InlineButton{{
			Text: b.tr.T(code, "lang_name"),
			Data: Callback{Kind: CallbackLang, Lang: code}.Encode(),
		}})
	}
	return b.notifier.SendButtons(ctx, chatID, b.tr.T(lang, "lang_prompt"), rows)
}

func (b *Bot) showServerChoice(ctx context.Context, chatID int64, cb Callback) error {
	plan, err := b.facade.Purchase.SelectPlan(ctx, chatID, cb.PlanKey, cb.Lang)
	if err != nil {
		return b.notifier.SendMessage(ctx, chatID, b.tr.T(cb.Lang, "unknown_action"))
	}
	srv := func(region model.Region, key string) []adapter.InlineButton {
		return []adapter.InlineButton{{
			Text: b.tr.T(cb.Lang, key),
			Data: Callback{Kind: CallbackServer, Region: region, PlanKey: cb.PlanKey, Lang: cb.Lang}.Encode(),
		}}
	}
	rows := [][]adapter.InlineButton{
		srv(model.RegionUS, "srv_us_btn"),
		srv(model.RegionSG, "srv_sg_btn"),
		srv(model.RegionBoth, "srv_both_btn"),
		{{Text: b.tr.T(cb.Lang, "back_plans_btn"), Data: Callback{Kind: CallbackBackPlans}.Encode()}},
	}
	text := b.tr.T(cb.Lang, "plan_detail", plan.Name, plan.GB, plan.PriceMMK, plan.Days)
	return b.notifier.SendButtons(ctx, chatID, text, rows)
}

func (b *Bot) showMethodChoice(ctx context.Context, chatID int64, cb Callback) error {
	method := func(m, key string) []adapter.InlineButton {
		return []adapter.InlineButton{{
			Text: b.tr.T(cb.Lang, key),
			Data: Callback{Kind: CallbackPay, Method: m, Region: cb.Region, PlanKey: cb.PlanKey, Lang: cb.Lang}.Encode(),
		}}
	}
	rows := [][]adapter.InlineButton{
		method("kpay", "method_kpay_btn"),
		method("wave", "method_wave_btn"),
		{{
			Text: b.tr.T(cb.Lang, "back_servers_btn"),
			Data: Callback{Kind: CallbackPlan, PlanKey: cb.PlanKey, Lang: cb.Lang}.Encode(),
		}},
	}
	text := b.tr.T(cb.Lang, "server_desc_"+string(cb.Region)) + "\n\n" + b.tr.T(cb.Lang, "choose_method")
	return b.notifier.SendButtons(ctx, chatID, text, rows)
}

func (b *Bot) showPaymentDetails(ctx context.Context, chatID int64, from *tgbotapi.User, cb Callback) error {
	p, plan, err := b.facade.Purchase.CreatePending(ctx, chatID, displayName(from), cb.PlanKey, cb.Region, cb.Method, cb.Lang)
	if err != nil {
		return b.notifier.SendMessage(ctx, chatID, b.tr.T(cb.Lang, "unknown_action"))
	}
	methodName, payNumber := b.methodContact(cb.Method)
	text := b.tr.T(cb.Lang, "payment_required",
		b.tr.T(cb.Lang, "server_desc_"+string(cb.Region)),
		plan.Name, plan.GB, plan.PriceMMK, methodName, payNumber, p.ShortRef(),
	)
	rows := [][]adapter.InlineButton{{{
		Text: b.tr.T(cb.Lang, "upload_proof_btn"),
		Data: Callback{Kind: CallbackProof, PaymentID: p.ID}.Encode(),
	}}}
	return b.notifier.SendButtons(ctx, chatID, text, rows)
}

func (b *Bot) methodContact(method string) (name, number string) {
	if method == "wave" {
		return "Wave Money", b.payment.WaveNumber
	}
	return "KPay", b.payment.KPayNumber
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return "unknown"
	}
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
