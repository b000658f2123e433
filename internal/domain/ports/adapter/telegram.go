// File: internal/domain/ports/adapter/telegram.go
package adapter

import (
	"context"

	"vaultvpn-bot/internal/domain/model"
)

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// Notifier is the outbound half of the chat transport: everything the use
// cases need to say to users and to the admin.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	// SendAccessKeys delivers key material: a caption, the raw key as its own
	// copyable message, and a QR image per key.
	SendAccessKeys(ctx context.Context, chatID int64, lang string, keys []model.IssuedAccess) error
	// EditMessage rewrites a previously sent message (admin review messages
	// are edited in place on decision).
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
	// ForwardMessage relays the user's proof photo to the admin chat.
	ForwardMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error
}
