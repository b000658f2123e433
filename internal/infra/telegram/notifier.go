// File: internal/infra/telegram/notifier.go
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	"vaultvpn-bot/internal/domain/model"
	"vaultvpn-bot/internal/domain/ports/adapter"
	"vaultvpn-bot/internal/infra/i18n"
)

var _ adapter.Notifier = (*Notifier)(nil)

// Notifier is the outbound side of the Telegram transport. The use cases talk
// to it through adapter.Notifier and never see tgbotapi types.
type Notifier struct {
	api          *tgbotapi.BotAPI
	tr           *i18n.Translator
	supportURL   string
	supportEmail string
	log          *zerolog.Logger
}

func NewNotifier(api *tgbotapi.BotAPI, tr *i18n.Translator, supportURL, supportEmail string, logger *zerolog.Logger) *Notifier {
	l := logger.With().Str("component", "TelegramNotifier").Logger()
	return &Notifier{
		api:          api,
		tr:           tr,
		supportURL:   supportURL,
		supportEmail: supportEmail,
		log:          &l,
	}
}

func (n *Notifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := n.api.Send(msg)
	return err
}

func (n *Notifier) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
			} else {
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
		}
		keyboard = append(keyboard, btns)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(keyboard...)
	_, err := n.api.Send(msg)
	return err
}

// SendAccessKeys delivers the full key bundle: a header, then per key a
// caption, the raw ss:// URI as its own plain message so long-press copy
// grabs just the key, and a QR image. Ends with setup instructions.
func (n *Notifier) SendAccessKeys(ctx context.Context, chatID int64, lang string, keys []model.IssuedAccess) error {
	if err := n.SendMessage(ctx, chatID, n.tr.T(lang, "approved_header")); err != nil {
		return err
	}
	for _, key := range keys {
		caption := n.tr.T(lang, "key_caption", key.Region.Display(), fmt.Sprintf("%g", key.QuotaGB()))
		if err := n.SendMessage(ctx, chatID, caption); err != nil {
			return err
		}
		// The raw key goes without parse mode: ss:// URIs contain characters
		// Markdown would mangle.
		if _, err := n.api.Send(tgbotapi.NewMessage(chatID, key.AccessURL)); err != nil {
			return err
		}
		if err := n.sendQR(chatID, lang, key); err != nil {
			// Key text already made it to the chat; a QR failure is not fatal.
			n.log.Warn().Err(err).Int64("chat_id", chatID).Str("region", string(key.Region)).Msg("qr delivery failed")
		}
	}
	return n.SendMessage(ctx, chatID, n.tr.T(lang, "instructions", n.supportURL, n.supportEmail))
}

func (n *Notifier) sendQR(chatID int64, lang string, key model.IssuedAccess) error {
	png, err := qrcode.Encode(key.AccessURL, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "vpn-key.png", Bytes: png})
	photo.Caption = n.tr.T(lang, "qr_caption", key.Region.Display())
	_, err = n.api.Send(photo)
	return err
}

func (n *Notifier) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := n.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

func (n *Notifier) ForwardMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error {
	_, err := n.api.Send(tgbotapi.NewForward(toChatID, fromChatID, messageID))
	return err
}
